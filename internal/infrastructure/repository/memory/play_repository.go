package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridironlab/playcore/internal/domain/play"
)

// PlayRepository is an in-memory play.Repository used by tests and the
// databaseless local mode. Plays keep their insertion order, which is the
// storage order the cache's tie-break relies on.
type PlayRepository struct {
	mu    sync.RWMutex
	plays []play.Play
	index map[play.Key]int
}

func NewPlayRepository(plays []play.Play) *PlayRepository {
	repo := &PlayRepository{index: make(map[play.Key]int, len(plays))}
	for _, p := range plays {
		repo.insertLocked(p)
	}
	return repo
}

func (r *PlayRepository) List(_ context.Context, filter play.Filter) ([]play.Play, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]play.Play, 0, len(r.plays))
	for _, p := range r.plays {
		if matchesFilter(p, filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayRepository) Get(_ context.Context, esbid int64, playID int) (play.Play, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[play.Key{Esbid: esbid, PlayID: playID}]
	if !ok {
		return play.Play{}, false, nil
	}
	return r.plays[idx], true, nil
}

func (r *PlayRepository) UpdateFields(_ context.Context, esbid int64, playID int, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[play.Key{Esbid: esbid, PlayID: playID}]
	if !ok {
		return fmt.Errorf("update play: esbid=%d play_id=%d not found", esbid, playID)
	}

	updated := r.plays[idx]
	for name, value := range fields {
		if !play.KnownField(name) {
			return fmt.Errorf("update play: unknown field %q", name)
		}
		if play.ImmutableField(name) {
			return fmt.Errorf("update play: field %q is immutable", name)
		}
		if err := updated.SetField(name, value); err != nil {
			return fmt.Errorf("update play: %w", err)
		}
	}
	now := time.Now()
	updated.Updated = &now
	r.plays[idx] = updated
	return nil
}

func (r *PlayRepository) InsertMany(_ context.Context, plays []play.Play) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range plays {
		if _, exists := r.index[p.Key()]; exists {
			continue
		}
		r.insertLocked(p)
	}
	return nil
}

func (r *PlayRepository) insertLocked(p play.Play) {
	r.index[p.Key()] = len(r.plays)
	r.plays = append(r.plays, p)
}

func matchesFilter(p play.Play, filter play.Filter) bool {
	if filter.All {
		return true
	}
	if len(filter.Esbids) > 0 {
		for _, esbid := range filter.Esbids {
			if p.Esbid == esbid {
				return true
			}
		}
		return false
	}
	if len(filter.Years) > 0 && !containsInt(filter.Years, p.Year) {
		return false
	}
	if len(filter.Weeks) > 0 && !containsInt(filter.Weeks, p.Week) {
		return false
	}
	return true
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
