package play

import "context"

// Filter narrows a bulk play read. All wins over Esbids, Esbids win over
// Years/Weeks; Years and Weeks narrow independently.
type Filter struct {
	Years  []int
	Weeks  []int
	Esbids []int64
	All    bool
}

// Repository exposes play read and update operations over the persisted store.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Play, error)
	Get(ctx context.Context, esbid int64, playID int) (Play, bool, error)
	// UpdateFields writes the named fields of one row. Field names must pass
	// KnownField; implementations also refresh the updated timestamp.
	UpdateFields(ctx context.Context, esbid int64, playID int, fields map[string]any) error
	InsertMany(ctx context.Context, plays []Play) error
}
