package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/gridironlab/playcore/internal/infrastructure/repository/memory"
	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/playcache"
)

func newLookupFixture(t *testing.T) *LookupService {
	t.Helper()

	cache := playcache.New(memory.NewPlayRepository(memory.SeedPlays()), logging.NewNop())
	if err := cache.Preload(context.Background(), playcache.PreloadOptions{AllPlays: true}); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	return NewLookupService(cache)
}

func TestFindPlay(t *testing.T) {
	t.Parallel()

	svc := newLookupFixture(t)
	ctx := context.Background()

	playID := 105
	found, err := svc.FindPlay(ctx, playcache.Query{Esbid: memory.EsbidChiefsJets, PlayID: &playID})
	if err != nil {
		t.Fatalf("FindPlay: %v", err)
	}
	if found.PlayID != 105 {
		t.Fatalf("play_id=%d", found.PlayID)
	}

	missing := 424242
	_, err = svc.FindPlay(ctx, playcache.Query{Esbid: memory.EsbidChiefsJets, PlayID: &missing})
	if !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}

	_, err = svc.FindPlay(ctx, playcache.Query{PlayID: &playID})
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without esbid, got=%v", err)
	}
}

func TestReloadCache(t *testing.T) {
	t.Parallel()

	repo := memory.NewPlayRepository(memory.SeedPlays())
	cache := playcache.New(repo, logging.NewNop())
	svc := NewLookupService(cache)
	ctx := context.Background()

	if err := cache.Preload(ctx, playcache.PreloadOptions{AllPlays: true}); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	stats := svc.CacheStats(ctx)
	if !stats.Initialized {
		t.Fatal("expected initialized cache")
	}

	after, err := svc.ReloadCache(ctx, playcache.PreloadOptions{Years: []int{2022}})
	if err != nil {
		t.Fatalf("ReloadCache: %v", err)
	}
	if after.TotalPlays != 1 {
		t.Fatalf("total_plays=%d, want the single 2022 play", after.TotalPlays)
	}
}
