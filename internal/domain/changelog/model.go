package changelog

import "time"

// Entry is one append-only audit row recording a field overwrite on a play.
// Entries are recorded only when an existing non-empty value is replaced.
type Entry struct {
	Esbid     int64
	PlayID    int
	Field     string
	PrevValue string
	NewValue  string
	Timestamp time.Time
}
