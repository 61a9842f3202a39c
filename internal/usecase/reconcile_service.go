package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gridironlab/playcore/internal/domain/changelog"
	"github.com/gridironlab/playcore/internal/domain/play"
	"github.com/gridironlab/playcore/internal/platform/logging"
)

// ReconcileService applies incoming field values to a stored play with
// conflict-aware, audited semantics. Several providers supply overlapping
// play data with different completeness; the reconciler fills gaps without
// letting a less authoritative source clobber an established value unless
// the caller explicitly opts in.
type ReconcileService struct {
	plays     play.Repository
	changelog changelog.Repository
	logger    *logging.Logger
}

func NewReconcileService(plays play.Repository, changelogRepo changelog.Repository, logger *logging.Logger) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		plays:     plays,
		changelog: changelogRepo,
		logger:    logger,
	}
}

type UpdatePlayInput struct {
	Esbid  int64
	PlayID int
	// Row short-circuits the lookup when the caller already holds the stored
	// play, e.g. straight out of the play cache.
	Row *play.Play
	// Fields maps column names to proposed values. Unknown names are skipped.
	Fields map[string]any
	// IgnoreConflicts permits overwriting existing non-empty values; every
	// overwrite is recorded in the changelog before it is applied.
	IgnoreConflicts bool
}

// Apply reconciles one play and returns how many fields were actually
// written. A missing target row is a no-op, not an error.
func (s *ReconcileService) Apply(ctx context.Context, in UpdatePlayInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Apply")
	defer span.End()

	row, ok, err := s.resolveRow(ctx, in)
	if err != nil {
		return 0, err
	}
	if !ok {
		s.logger.WarnContext(ctx, "update skipped, play not found",
			"esbid", in.Esbid, "play_id", in.PlayID)
		return 0, nil
	}

	names := make([]string, 0, len(in.Fields))
	for name := range in.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	changed := make(map[string]any, len(names))
	var entries []changelog.Entry
	now := time.Now()

	for _, name := range names {
		if !play.KnownField(name) {
			s.logger.WarnContext(ctx, "update skipped unknown field",
				"esbid", row.Esbid, "play_id", row.PlayID, "field", name)
			continue
		}
		if play.ImmutableField(name) {
			continue
		}

		next, nextOK := play.CanonicalFieldValue(name, in.Fields[name])
		if !nextOK {
			// Updates never erase data.
			continue
		}

		current, _ := row.FieldValue(name)
		prev, prevOK := play.CanonicalFieldValue(name, current)
		if prevOK && prev == next {
			continue
		}

		if prevOK && !in.IgnoreConflicts {
			s.logger.WarnContext(ctx, "update conflict, field protected",
				"esbid", row.Esbid, "play_id", row.PlayID,
				"field", name, "existing", prev, "incoming", next)
			continue
		}

		if prevOK {
			entries = append(entries, changelog.Entry{
				Esbid:     row.Esbid,
				PlayID:    row.PlayID,
				Field:     name,
				PrevValue: prev,
				NewValue:  next,
				Timestamp: now,
			})
		}
		changed[name] = in.Fields[name]
	}

	if len(changed) == 0 {
		return 0, nil
	}

	if len(entries) > 0 {
		if err := s.changelog.Append(ctx, entries); err != nil {
			return 0, fmt.Errorf("append play changelog: %w", err)
		}
	}

	if err := s.plays.UpdateFields(ctx, row.Esbid, row.PlayID, changed); err != nil {
		return 0, fmt.Errorf("update play fields: %w", err)
	}

	s.logger.InfoContext(ctx, "play updated",
		"esbid", row.Esbid, "play_id", row.PlayID,
		"changed", len(changed), "overwrites", len(entries))
	return len(changed), nil
}

func (s *ReconcileService) resolveRow(ctx context.Context, in UpdatePlayInput) (play.Play, bool, error) {
	if in.Row != nil {
		return *in.Row, true, nil
	}
	if in.Esbid == 0 {
		return play.Play{}, false, fmt.Errorf("%w: esbid is required", ErrInvalidInput)
	}

	row, ok, err := s.plays.Get(ctx, in.Esbid, in.PlayID)
	if err != nil {
		return play.Play{}, false, fmt.Errorf("get play: %w", err)
	}
	return row, ok, nil
}
