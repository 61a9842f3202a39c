package changelog

import "context"

// Repository is an append-only sink. Appending an identical tuple twice is a
// no-op, so replayed imports do not duplicate audit rows.
type Repository interface {
	Append(ctx context.Context, entries []Entry) error
}
