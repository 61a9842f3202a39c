package nflverse

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/platform/resilience"
	"github.com/gridironlab/playcore/internal/usecase"
)

const (
	defaultBaseURL      = "https://feeds.nflverse.dev/v1"
	maxResponseBytes    = 16 << 20
	defaultFetchTimeout = 30 * time.Second
)

var clientTracer = otel.Tracer("playcore/external/nflverse")

var errNFLVerseTransient = crerr.New("nflverse transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches play-by-play feeds over HTTP. It implements
// usecase.PlayProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultFetchTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type playPayload struct {
	Data []playRecord `json:"data"`
}

type playRecord struct {
	Esbid  int64 `json:"esbid"`
	PlayID int   `json:"play_id"`

	Season int `json:"season"`
	Week   int `json:"week"`

	Qtr       *int   `json:"qtr"`
	Dwn       *int   `json:"dwn"`
	YardsToGo *int   `json:"yards_to_go"`
	Ydl100    *int   `json:"ydl_100"`
	YdlSide   string `json:"ydl_side"`
	YdlNum    *int   `json:"ydl_num"`

	Off      string `json:"off"`
	Def      string `json:"def"`
	PlayType string `json:"play_type"`

	GameClockStart string `json:"game_clock_start"`
	GameClockEnd   string `json:"game_clock_end"`

	Desc         string `json:"desc"`
	DescNFLFastR string `json:"desc_nflfastr"`

	KickResult     string `json:"kick_result"`
	TwoPointResult string `json:"two_point_result"`
	ScoreType      string `json:"score_type"`
	PenTeam        string `json:"pen_team"`
}

func (c *Client) FetchPlays(ctx context.Context, year, week int) ([]usecase.ExternalPlay, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", usecase.ErrInvalidInput)
	}
	if week <= 0 {
		return nil, fmt.Errorf("%w: week must be positive", usecase.ErrInvalidInput)
	}

	ctx, span := clientTracer.Start(ctx, "nflverse.FetchPlays", trace.WithAttributes(
		attribute.Int("nflverse.season", year),
		attribute.Int("nflverse.week", week),
	))
	defer span.End()

	var payload playPayload
	if err := c.doJSON(ctx, "/plays", map[string]string{
		"season": strconv.Itoa(year),
		"week":   strconv.Itoa(week),
	}, &payload); err != nil {
		span.RecordError(err)
		return nil, err
	}

	plays := make([]usecase.ExternalPlay, 0, len(payload.Data))
	for _, record := range payload.Data {
		if record.Esbid <= 0 || record.PlayID <= 0 {
			c.logger.WarnContext(ctx, "nflverse record missing identity, skipping",
				"esbid", record.Esbid, "play_id", record.PlayID)
			continue
		}
		season := record.Season
		if season == 0 {
			season = year
		}
		recordWeek := record.Week
		if recordWeek == 0 {
			recordWeek = week
		}
		plays = append(plays, usecase.ExternalPlay{
			Esbid:          record.Esbid,
			PlayID:         record.PlayID,
			Year:           season,
			Week:           recordWeek,
			Qtr:            record.Qtr,
			Dwn:            record.Dwn,
			YardsToGo:      record.YardsToGo,
			Ydl100:         record.Ydl100,
			YdlSide:        record.YdlSide,
			YdlNum:         record.YdlNum,
			Off:            record.Off,
			Def:            record.Def,
			PlayType:       record.PlayType,
			GameClockStart: record.GameClockStart,
			GameClockEnd:   record.GameClockEnd,
			Desc:           record.Desc,
			DescNFLFastR:   record.DescNFLFastR,
			KickResult:     record.KickResult,
			TwoPointResult: record.TwoPointResult,
			ScoreType:      record.ScoreType,
			PenTeam:        record.PenTeam,
		})
	}

	span.SetAttributes(attribute.Int("nflverse.plays", len(plays)))
	return plays, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nflverse circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: play feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.sendOnce(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !stderrors.Is(err, errNFLVerseTransient) {
			break
		}
		if attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "nflverse request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) sendOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set("authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errNFLVerseTransient, err)
	}
	defer func() { _ = resp.Body.Close() }()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errNFLVerseTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: feed status=%d body=%s", errNFLVerseTransient, resp.StatusCode, abbreviateBody(buf.Bytes()))
		}
		return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(buf.Bytes()))
	}

	// The buffer goes back to the pool, so hand the caller its own copy.
	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())
	return raw, nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errNFLVerseTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
