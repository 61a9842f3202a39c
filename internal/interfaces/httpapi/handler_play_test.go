package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironlab/playcore/internal/infrastructure/repository/memory"
	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/playcache"
	"github.com/gridironlab/playcore/internal/usecase"
)

const testJobToken = "test-job-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	plays := memory.NewPlayRepository(memory.SeedPlays())
	cache := playcache.New(plays, logging.NewNop())
	if err := cache.Preload(context.Background(), playcache.PreloadOptions{AllPlays: true}); err != nil {
		t.Fatalf("Preload: %v", err)
	}

	handler := NewHandler(
		usecase.NewLookupService(cache),
		usecase.NewReconcileService(plays, memory.NewChangelogRepository(), logging.NewNop()),
		nil,
		logging.NewNop(),
	)
	return NewRouter(handler, logging.NewNop(), []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestGetPlay_Found(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/plays/%d/105", memory.EsbidChiefsJets), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data object")
	}
	if got, _ := data["play_id"].(float64); int(got) != 105 {
		t.Fatalf("play_id=%v", data["play_id"])
	}
	if got, _ := data["play_type"].(string); got != "PASS" {
		t.Fatalf("play_type=%v", data["play_type"])
	}
}

func TestGetPlay_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/plays/%d/999999", memory.EsbidChiefsJets), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
}

func TestGetPlay_BadEsbid(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/plays/not-a-number/105", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestFindPlay_ByContext(t *testing.T) {
	router := newTestRouter(t)

	payload := fmt.Sprintf(`{"esbid":%d,"qtr":2,"dwn":2,"yards_to_go":7,"ydl_100":50,"off":"NYJ"}`, memory.EsbidChiefsJets)
	req := httptest.NewRequest(http.MethodPost, "/v1/plays/find", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if got, _ := data["play_id"].(float64); int(got) != 205 {
		t.Fatalf("play_id=%v, want context match 205", data["play_id"])
	}
}

func TestFindPlay_RequiresEsbid(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/plays/find", strings.NewReader(`{"qtr":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestFindPlay_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	payload := fmt.Sprintf(`{"esbid":%d,"surprise":true}`, memory.EsbidChiefsJets)
	req := httptest.NewRequest(http.MethodPost, "/v1/plays/find", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestCacheStats(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/cache/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if got, _ := data["is_initialized"].(bool); !got {
		t.Fatalf("is_initialized=%v", data["is_initialized"])
	}
	if got, _ := data["total_plays"].(float64); int(got) != 7 {
		t.Fatalf("total_plays=%v", data["total_plays"])
	}
}

func TestUpdatePlay_RequiresJobToken(t *testing.T) {
	router := newTestRouter(t)

	payload := fmt.Sprintf(`{"esbid":%d,"play_id":301,"fields":{"qtr":3}}`, memory.EsbidChiefsJets)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/plays/update", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401 without token", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/plays/update", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if got, _ := data["fields_written"].(float64); int(got) != 1 {
		t.Fatalf("fields_written=%v", data["fields_written"])
	}
}

func TestRunImportJob_UnconfiguredProvider(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/import", strings.NewReader(`{"years":[2023]}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503 when no provider is configured", rec.Code)
	}
}

func TestReloadCache_RequiresScope(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/cache/reload", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400 without scope", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/cache/reload", strings.NewReader(`{"all_plays":true}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}
