package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironlab/playcore/internal/domain/changelog"
	qb "github.com/gridironlab/playcore/internal/platform/querybuilder"
)

type ChangelogRepository struct {
	db *sqlx.DB
}

func NewChangelogRepository(db *sqlx.DB) *ChangelogRepository {
	return &ChangelogRepository{db: db}
}

func (r *ChangelogRepository) Append(ctx context.Context, entries []changelog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx append changelog: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, entry := range entries {
		query, args, err := qb.InsertModel("play_changelog", changelogInsertModel{
			Esbid:     entry.Esbid,
			PlayID:    entry.PlayID,
			Prop:      entry.Field,
			PrevValue: entry.PrevValue,
			NewValue:  entry.NewValue,
			Timestamp: entry.Timestamp,
		}, "ON CONFLICT DO NOTHING")
		if err != nil {
			return fmt.Errorf("build append changelog query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("append changelog esbid=%d play_id=%d prop=%s: %w",
				entry.Esbid, entry.PlayID, entry.Field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append changelog tx: %w", err)
	}
	return nil
}

type changelogInsertModel struct {
	Esbid     int64     `db:"esbid"`
	PlayID    int       `db:"play_id"`
	Prop      string    `db:"prop"`
	PrevValue string    `db:"prev_value"`
	NewValue  string    `db:"new_value"`
	Timestamp time.Time `db:"recorded_at"`
}
