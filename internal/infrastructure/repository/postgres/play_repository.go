package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/gridironlab/playcore/internal/domain/play"
	qb "github.com/gridironlab/playcore/internal/platform/querybuilder"
)

type PlayRepository struct {
	db *sqlx.DB
}

func NewPlayRepository(db *sqlx.DB) *PlayRepository {
	return &PlayRepository{db: db}
}

func (r *PlayRepository) List(ctx context.Context, filter play.Filter) ([]play.Play, error) {
	builder := qb.Select("*").From("plays")

	switch {
	case filter.All:
		// No predicate, full snapshot.
	case len(filter.Esbids) > 0:
		builder = builder.Where(qb.In("esbid", int64Args(filter.Esbids)))
	default:
		if len(filter.Years) > 0 {
			builder = builder.Where(qb.In("year", intArgs(filter.Years)))
		}
		if len(filter.Weeks) > 0 {
			builder = builder.Where(qb.In("week", intArgs(filter.Weeks)))
		}
	}

	query, args, err := builder.OrderBy("esbid", "play_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select plays query: %w", err)
	}

	var rows []playTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select plays: %w", err)
	}

	out := make([]play.Play, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayRepository) Get(ctx context.Context, esbid int64, playID int) (play.Play, bool, error) {
	query, args, err := qb.Select("*").From("plays").
		Where(qb.Eq("esbid", esbid), qb.Eq("play_id", playID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return play.Play{}, false, fmt.Errorf("build select play query: %w", err)
	}

	var row playTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return play.Play{}, false, nil
		}
		return play.Play{}, false, fmt.Errorf("select play esbid=%d play_id=%d: %w", esbid, playID, err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayRepository) UpdateFields(ctx context.Context, esbid int64, playID int, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	// Deterministic column order keeps generated SQL stable for tracing.
	names := make([]string, 0, len(fields))
	for name := range fields {
		if !play.KnownField(name) {
			return fmt.Errorf("update play: unknown field %q", name)
		}
		if play.ImmutableField(name) {
			return fmt.Errorf("update play: field %q is immutable", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	builder := qb.Update("plays")
	for _, name := range names {
		builder = builder.Set(quoteIdent(name), fields[name])
	}
	query, args, err := builder.
		SetRaw("updated", "NOW()").
		Where(qb.Eq("esbid", esbid), qb.Eq("play_id", playID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update play query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update play esbid=%d play_id=%d: %w", esbid, playID, err)
	}
	return nil
}

func (r *PlayRepository) InsertMany(ctx context.Context, plays []play.Play) error {
	if len(plays) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx insert plays: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range plays {
		query, args, err := qb.InsertModel("plays", insertModelFromDomain(p),
			"ON CONFLICT (esbid, play_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert play query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert play esbid=%d play_id=%d: %w", p.Esbid, p.PlayID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert plays tx: %w", err)
	}
	return nil
}

func intArgs(values []int) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func int64Args(values []int64) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
