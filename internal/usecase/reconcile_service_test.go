package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/gridironlab/playcore/internal/infrastructure/repository/memory"
	"github.com/gridironlab/playcore/internal/platform/logging"
)

func newReconcileFixture() (*ReconcileService, *memory.PlayRepository, *memory.ChangelogRepository) {
	plays := memory.NewPlayRepository(memory.SeedPlays())
	changelogRepo := memory.NewChangelogRepository()
	svc := NewReconcileService(plays, changelogRepo, logging.NewNop())
	return svc, plays, changelogRepo
}

func TestApply_FillsEmptyFieldsWithoutChangelog(t *testing.T) {
	t.Parallel()

	svc, plays, changelogRepo := newReconcileFixture()
	ctx := context.Background()

	// Play 301 has no qtr or clock yet.
	written, err := svc.Apply(ctx, UpdatePlayInput{
		Esbid:  memory.EsbidChiefsJets,
		PlayID: 301,
		Fields: map[string]any{
			"qtr":              3,
			"game_clock_start": "15:00",
		},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 2 {
		t.Fatalf("written=%d, want=2", written)
	}

	row, ok, err := plays.Get(ctx, memory.EsbidChiefsJets, 301)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if row.Qtr == nil || *row.Qtr != 3 {
		t.Fatalf("qtr=%v", row.Qtr)
	}
	if row.GameClockStart != "15:00" {
		t.Fatalf("game_clock_start=%q", row.GameClockStart)
	}
	if row.Updated == nil {
		t.Fatal("expected updated timestamp to be stamped")
	}

	// Filling a gap is not an overwrite.
	if entries := changelogRepo.Entries(); len(entries) != 0 {
		t.Fatalf("expected no changelog rows, got=%d", len(entries))
	}
}

func TestApply_ProtectsExistingValues(t *testing.T) {
	t.Parallel()

	svc, plays, changelogRepo := newReconcileFixture()
	ctx := context.Background()

	written, err := svc.Apply(ctx, UpdatePlayInput{
		Esbid:  memory.EsbidChiefsJets,
		PlayID: 105,
		Fields: map[string]any{"play_type": "RUSH"},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 0 {
		t.Fatalf("written=%d, want=0 for conflicting value", written)
	}

	row, _, _ := plays.Get(ctx, memory.EsbidChiefsJets, 105)
	if row.PlayType != "PASS" {
		t.Fatalf("play_type=%q, stored value must survive", row.PlayType)
	}
	if entries := changelogRepo.Entries(); len(entries) != 0 {
		t.Fatalf("skipped conflicts must not be audited, got=%d entries", len(entries))
	}
}

func TestApply_IgnoreConflictsAuditsOverwrite(t *testing.T) {
	t.Parallel()

	svc, plays, changelogRepo := newReconcileFixture()
	ctx := context.Background()

	written, err := svc.Apply(ctx, UpdatePlayInput{
		Esbid:           memory.EsbidChiefsJets,
		PlayID:          105,
		Fields:          map[string]any{"play_type": "RUSH"},
		IgnoreConflicts: true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 1 {
		t.Fatalf("written=%d, want=1", written)
	}

	row, _, _ := plays.Get(ctx, memory.EsbidChiefsJets, 105)
	if row.PlayType != "RUSH" {
		t.Fatalf("play_type=%q, want overwritten value", row.PlayType)
	}

	entries := changelogRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one changelog row, got=%d", len(entries))
	}
	entry := entries[0]
	if entry.Esbid != memory.EsbidChiefsJets || entry.PlayID != 105 {
		t.Fatalf("changelog identity %+v", entry)
	}
	if entry.Field != "play_type" || entry.PrevValue != "PASS" || entry.NewValue != "RUSH" {
		t.Fatalf("changelog values %+v", entry)
	}
}

func TestApply_EqualClockVariantIsNoChange(t *testing.T) {
	t.Parallel()

	svc, _, changelogRepo := newReconcileFixture()

	// Stored clock is "9:31"; "09:31" is the same instant.
	written, err := svc.Apply(context.Background(), UpdatePlayInput{
		Esbid:           memory.EsbidChiefsJets,
		PlayID:          201,
		Fields:          map[string]any{"game_clock_start": "09:31"},
		IgnoreConflicts: true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 0 {
		t.Fatalf("written=%d, clock variants must compare equal", written)
	}
	if entries := changelogRepo.Entries(); len(entries) != 0 {
		t.Fatalf("expected no changelog rows, got=%d", len(entries))
	}
}

func TestApply_EmptyIncomingValuesNeverErase(t *testing.T) {
	t.Parallel()

	svc, plays, _ := newReconcileFixture()
	ctx := context.Background()

	written, err := svc.Apply(ctx, UpdatePlayInput{
		Esbid:           memory.EsbidChiefsJets,
		PlayID:          105,
		Fields:          map[string]any{"desc": "", "qtr": nil, "score_type": (*string)(nil)},
		IgnoreConflicts: true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 0 {
		t.Fatalf("written=%d, empty values must be ignored", written)
	}

	row, _, _ := plays.Get(ctx, memory.EsbidChiefsJets, 105)
	if row.Desc == "" || row.Qtr == nil {
		t.Fatal("stored values must survive empty incoming values")
	}
}

func TestApply_SkipsImmutableAndUnknownFields(t *testing.T) {
	t.Parallel()

	svc, plays, _ := newReconcileFixture()
	ctx := context.Background()

	written, err := svc.Apply(ctx, UpdatePlayInput{
		Esbid:  memory.EsbidChiefsJets,
		PlayID: 301,
		Fields: map[string]any{
			"esbid":       int64(1),
			"play_id":     2,
			"updated":     "2024-01-01T00:00:00Z",
			"win_percent": 0.61,
			"qtr":         4,
		},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 1 {
		t.Fatalf("written=%d, only qtr should land", written)
	}

	row, ok, _ := plays.Get(ctx, memory.EsbidChiefsJets, 301)
	if !ok {
		t.Fatal("identity must be untouched")
	}
	if row.Qtr == nil || *row.Qtr != 4 {
		t.Fatalf("qtr=%v", row.Qtr)
	}
}

func TestApply_MissingRowIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _, _ := newReconcileFixture()

	written, err := svc.Apply(context.Background(), UpdatePlayInput{
		Esbid:  memory.EsbidChiefsJets,
		PlayID: 424242,
		Fields: map[string]any{"qtr": 1},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if written != 0 {
		t.Fatalf("written=%d, want=0 for missing row", written)
	}
}

func TestApply_RequiresEsbid(t *testing.T) {
	t.Parallel()

	svc, _, _ := newReconcileFixture()

	_, err := svc.Apply(context.Background(), UpdatePlayInput{
		PlayID: 105,
		Fields: map[string]any{"qtr": 1},
	})
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestApply_ReappliedOverwriteIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _, changelogRepo := newReconcileFixture()
	ctx := context.Background()

	in := UpdatePlayInput{
		Esbid:           memory.EsbidChiefsJets,
		PlayID:          105,
		Fields:          map[string]any{"play_type": "RUSH"},
		IgnoreConflicts: true,
	}

	if _, err := svc.Apply(ctx, in); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	written, err := svc.Apply(ctx, in)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if written != 0 {
		t.Fatalf("written=%d, re-applying the same value must change nothing", written)
	}
	if entries := changelogRepo.Entries(); len(entries) != 1 {
		t.Fatalf("expected a single changelog row, got=%d", len(entries))
	}
}
