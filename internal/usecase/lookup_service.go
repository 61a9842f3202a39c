package usecase

import (
	"context"
	"fmt"

	"github.com/gridironlab/playcore/internal/domain/play"
	"github.com/gridironlab/playcore/internal/playcache"
)

// LookupService fronts the play cache for route handlers: input validation,
// sentinel errors, and cache lifecycle operations.
type LookupService struct {
	cache *playcache.Cache
}

func NewLookupService(cache *playcache.Cache) *LookupService {
	return &LookupService{cache: cache}
}

// FindPlay resolves a play through the cache. Not-found maps onto ErrNotFound
// so handlers can translate it to a 404.
func (s *LookupService) FindPlay(ctx context.Context, q playcache.Query) (play.Play, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.FindPlay")
	defer span.End()

	if q.Esbid == 0 {
		return play.Play{}, fmt.Errorf("%w: esbid is required", ErrInvalidInput)
	}

	found, err := s.cache.Find(q)
	if err != nil {
		return play.Play{}, fmt.Errorf("find play: %w", err)
	}
	if found == nil {
		return play.Play{}, fmt.Errorf("%w: esbid=%d", ErrNotFound, q.Esbid)
	}
	return *found, nil
}

func (s *LookupService) CacheStats(ctx context.Context) playcache.Stats {
	_, span := startUsecaseSpan(ctx, "usecase.LookupService.CacheStats")
	defer span.End()

	return s.cache.Stats()
}

// ReloadCache swaps in a fresh snapshot; used when imports have written rows
// the current snapshot predates.
func (s *LookupService) ReloadCache(ctx context.Context, opts playcache.PreloadOptions) (playcache.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LookupService.ReloadCache")
	defer span.End()

	if err := s.cache.Reload(ctx, opts); err != nil {
		return playcache.Stats{}, fmt.Errorf("reload play cache: %w", err)
	}
	return s.cache.Stats(), nil
}
