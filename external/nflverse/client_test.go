package nflverse

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/platform/resilience"
	"github.com/gridironlab/playcore/internal/usecase"
)

func TestFetchPlays_DecodesRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("season"); got != "2023" {
			t.Errorf("expected season=2023, got=%q", got)
		}
		if got := r.URL.Query().Get("week"); got != "5" {
			t.Errorf("expected week=5, got=%q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer token header, got=%q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"esbid":401547417,"play_id":105,"season":2023,"week":5,"qtr":1,"dwn":3,"off":"KC","def":"NYJ","game_clock_start":"2:00"},
			{"esbid":0,"play_id":7,"off":"BUF"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Logger:  logging.NewNop(),
	})

	plays, err := client.FetchPlays(context.Background(), 2023, 5)
	if err != nil {
		t.Fatalf("FetchPlays: %v", err)
	}
	if len(plays) != 1 {
		t.Fatalf("expected rows without identity to be dropped, got=%d plays", len(plays))
	}
	row := plays[0]
	if row.Esbid != 401547417 || row.PlayID != 105 {
		t.Fatalf("unexpected identity esbid=%d play_id=%d", row.Esbid, row.PlayID)
	}
	if row.Qtr == nil || *row.Qtr != 1 {
		t.Fatalf("expected qtr=1, got=%v", row.Qtr)
	}
	if row.Off != "KC" || row.Def != "NYJ" {
		t.Fatalf("unexpected teams off=%q def=%q", row.Off, row.Def)
	}
	if row.GameClockStart != "2:00" {
		t.Fatalf("expected raw clock untouched, got=%q", row.GameClockStart)
	}
}

func TestFetchPlays_FillsSeasonWeekFromRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"esbid":401547404,"play_id":40}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})

	plays, err := client.FetchPlays(context.Background(), 2023, 3)
	if err != nil {
		t.Fatalf("FetchPlays: %v", err)
	}
	if len(plays) != 1 {
		t.Fatalf("expected one play, got=%d", len(plays))
	}
	if plays[0].Year != 2023 || plays[0].Week != 3 {
		t.Fatalf("expected season/week backfilled from request, got year=%d week=%d", plays[0].Year, plays[0].Week)
	}
}

func TestFetchPlays_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"esbid":401547404,"play_id":1}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	plays, err := client.FetchPlays(context.Background(), 2023, 1)
	if err != nil {
		t.Fatalf("FetchPlays after retry: %v", err)
	}
	if len(plays) != 1 {
		t.Fatalf("expected one play, got=%d", len(plays))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got=%d", got)
	}
}

func TestFetchPlays_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	if _, err := client.FetchPlays(context.Background(), 2023, 1); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected single request for non-retryable status, got=%d", got)
	}
}

func TestFetchPlays_CircuitOpenRejectsFast(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      resilience.DefaultCircuitBreakerConfig().OpenTimeout,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchPlays(context.Background(), 2023, 1); err == nil {
		t.Fatal("expected first request to fail")
	}

	_, err := client.FetchPlays(context.Background(), 2023, 1)
	if !stderrors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable after breaker opened, got=%v", err)
	}
}

func TestFetchPlays_ValidatesInput(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchPlays(context.Background(), 0, 1); !stderrors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input for year=0, got=%v", err)
	}
	if _, err := client.FetchPlays(context.Background(), 2023, 0); !stderrors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input for week=0, got=%v", err)
	}
}
