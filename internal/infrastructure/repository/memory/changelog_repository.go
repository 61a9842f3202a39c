package memory

import (
	"context"
	"sync"

	"github.com/gridironlab/playcore/internal/domain/changelog"
)

// ChangelogRepository is an in-memory append-only changelog sink with the
// same idempotent-insert behavior as the persisted table.
type ChangelogRepository struct {
	mu      sync.RWMutex
	entries []changelog.Entry
	seen    map[changelogKey]struct{}
}

type changelogKey struct {
	esbid  int64
	playID int
	field  string
	prev   string
	next   string
}

func NewChangelogRepository() *ChangelogRepository {
	return &ChangelogRepository{seen: make(map[changelogKey]struct{})}
}

func (r *ChangelogRepository) Append(_ context.Context, entries []changelog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		key := changelogKey{
			esbid:  entry.Esbid,
			playID: entry.PlayID,
			field:  entry.Field,
			prev:   entry.PrevValue,
			next:   entry.NewValue,
		}
		if _, dup := r.seen[key]; dup {
			continue
		}
		r.seen[key] = struct{}{}
		r.entries = append(r.entries, entry)
	}
	return nil
}

// Entries returns a copy of everything appended so far.
func (r *ChangelogRepository) Entries() []changelog.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]changelog.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
