package playcache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gridironlab/playcore/internal/domain/play"
	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/platform/resilience"
)

// ErrNotInitialized is returned when the cache is queried before Preload has
// completed. This is a call-order bug in the caller, not a retryable state.
var ErrNotInitialized = errors.New("play cache is not initialized; call Preload first")

type contextKey struct {
	esbid     int64
	qtr       int
	dwn       int
	yardsToGo int
	ydl100    int
}

// Cache is a read-only multi-index projection of the plays table, used by
// import and merge steps to resolve a freshly parsed play to the stored row
// for the same event when the natural key differs across providers.
//
// Lifecycle: constructed empty, populated once by Preload, then queried.
// The cache never updates incrementally; Reload swaps in a fresh snapshot.
type Cache struct {
	repo   play.Repository
	logger *logging.Logger
	flight resilience.SingleFlight

	mu          sync.RWMutex
	initialized bool
	plays       []play.Play
	byKey       map[play.Key]*play.Play
	byGame      map[int64][]*play.Play
	byContext   map[contextKey][]*play.Play
}

func New(repo play.Repository, logger *logging.Logger) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{
		repo:   repo,
		logger: logger,
	}
}

// PreloadOptions selects which plays to snapshot. AllPlays wins over Esbids;
// Esbids win over Years/Weeks; Years and Weeks narrow independently.
type PreloadOptions struct {
	Years    []int
	Weeks    []int
	Esbids   []int64
	AllPlays bool
	// WithoutContextIndex skips building the fuzzy-lookup index; exact and
	// per-game lookups still work.
	WithoutContextIndex bool
}

// Preload fetches the selected plays and builds the indexes. Calling Preload
// on an initialized cache is a logged no-op; a failed fetch leaves the cache
// uninitialized so a retry starts clean. Concurrent callers collapse onto a
// single fetch.
func (c *Cache) Preload(ctx context.Context, opts PreloadOptions) error {
	c.mu.RLock()
	initialized := c.initialized
	c.mu.RUnlock()
	if initialized {
		c.logger.InfoContext(ctx, "play cache already initialized, skipping preload")
		return nil
	}

	_, err, _ := c.flight.Do("preload", func() (any, error) {
		return nil, c.preload(ctx, opts)
	})
	return err
}

func (c *Cache) preload(ctx context.Context, opts PreloadOptions) error {
	c.mu.RLock()
	initialized := c.initialized
	c.mu.RUnlock()
	if initialized {
		return nil
	}

	plays, err := c.repo.List(ctx, selectionFilter(opts))
	if err != nil {
		return fmt.Errorf("preload plays: %w", err)
	}

	byKey := make(map[play.Key]*play.Play, len(plays))
	byGame := make(map[int64][]*play.Play)
	var byContext map[contextKey][]*play.Play
	if !opts.WithoutContextIndex {
		byContext = make(map[contextKey][]*play.Play)
	}

	for i := range plays {
		p := &plays[i]
		byKey[p.Key()] = p
		byGame[p.Esbid] = append(byGame[p.Esbid], p)

		if byContext == nil || !p.HasContextKey() {
			// Incomplete rows stay reachable through the per-game scan.
			continue
		}
		key := contextKey{
			esbid:     p.Esbid,
			qtr:       *p.Qtr,
			dwn:       *p.Dwn,
			yardsToGo: *p.YardsToGo,
			ydl100:    *p.Ydl100,
		}
		byContext[key] = append(byContext[key], p)
	}

	c.mu.Lock()
	c.plays = plays
	c.byKey = byKey
	c.byGame = byGame
	c.byContext = byContext
	c.initialized = true
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "play cache preloaded",
		"total_plays", len(plays),
		"games", len(byGame),
		"context_entries", len(byContext),
	)
	return nil
}

// Reset drops the snapshot and returns the cache to its uninitialized state.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.plays = nil
	c.byKey = nil
	c.byGame = nil
	c.byContext = nil
	c.initialized = false
	c.mu.Unlock()
}

// Reload resets and preloads in one step, picking up rows written since the
// last snapshot.
func (c *Cache) Reload(ctx context.Context, opts PreloadOptions) error {
	c.Reset()
	return c.Preload(ctx, opts)
}

func selectionFilter(opts PreloadOptions) play.Filter {
	if opts.AllPlays {
		return play.Filter{All: true}
	}
	if len(opts.Esbids) > 0 {
		return play.Filter{Esbids: opts.Esbids}
	}
	return play.Filter{Years: opts.Years, Weeks: opts.Weeks}
}

// Query carries the identifying information for one play lookup. Zero-valued
// optional fields impose no constraint.
type Query struct {
	Esbid  int64
	PlayID *int

	Qtr       *int
	Dwn       *int
	YardsToGo *int
	Ydl100    *int

	Off            string
	Def            string
	PlayType       string
	GameClockStart string
	YdlSide        string
	YdlNum         *int
}

func (q Query) hasContextKey() bool {
	return q.Qtr != nil && q.Dwn != nil && q.YardsToGo != nil && q.Ydl100 != nil
}

// Find resolves a play. With esbid and playID it is an exact O(1) lookup that
// bypasses all fuzzy matching; with esbid alone it falls back to context
// resolution. Not-found is (nil, nil). A copy of the cached row is returned.
func (c *Cache) Find(q Query) (*play.Play, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return nil, ErrNotInitialized
	}

	if q.Esbid != 0 && q.PlayID != nil {
		if p, ok := c.byKey[play.Key{Esbid: q.Esbid, PlayID: *q.PlayID}]; ok {
			out := *p
			return &out, nil
		}
		return nil, nil
	}

	if q.Esbid != 0 {
		return c.findByContext(q), nil
	}

	return nil, nil
}

// findByContext tries the context index first and falls back to scanning the
// game's plays with the full filter set. The first surviving candidate wins;
// candidates are expected to be distinguishable by the extra filters, and the
// per-game storage order breaks residual ties.
func (c *Cache) findByContext(q Query) *play.Play {
	if c.byContext != nil && q.hasContextKey() {
		key := contextKey{
			esbid:     q.Esbid,
			qtr:       *q.Qtr,
			dwn:       *q.Dwn,
			yardsToGo: *q.YardsToGo,
			ydl100:    *q.Ydl100,
		}
		if matched := firstMatch(c.byContext[key], q); matched != nil {
			out := *matched
			return &out
		}
	}

	if matched := firstMatch(c.byGame[q.Esbid], q); matched != nil {
		out := *matched
		return &out
	}
	return nil
}

// Stats reports operational counters for dashboards and smoke checks.
type Stats struct {
	Initialized    bool `json:"is_initialized"`
	TotalPlays     int  `json:"total_plays"`
	GamesCached    int  `json:"games_cached"`
	ContextEntries int  `json:"game_context_entries"`
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Initialized:    c.initialized,
		TotalPlays:     len(c.plays),
		GamesCached:    len(c.byGame),
		ContextEntries: len(c.byContext),
	}
}
