package play

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Play is one offensive or defensive snap of one NFL game. Esbid plus PlayID
// is the natural key and is immutable once assigned; the context attributes
// (quarter, down, distance, field position) are not unique — several plays can
// share the same context within or across games.
type Play struct {
	Esbid  int64
	PlayID int

	Year int
	Week int

	Qtr       *int
	Dwn       *int
	YardsToGo *int
	Ydl100    *int
	YdlSide   string
	YdlNum    *int

	Off      string
	Def      string
	PlayType string

	GameClockStart string
	GameClockEnd   string

	Desc         string
	DescNFLFastR string

	KickResult     *string
	TwoPointResult *string
	ScoreType      *string
	PenType        *string
	PenTeam        string

	Updated *time.Time
}

// Key identifies a play across the pipeline.
type Key struct {
	Esbid  int64
	PlayID int
}

func (p Play) Key() Key {
	return Key{Esbid: p.Esbid, PlayID: p.PlayID}
}

// HasContextKey reports whether the play carries all four fields of the
// fuzzy-lookup context key.
func (p Play) HasContextKey() bool {
	return p.Qtr != nil && p.Dwn != nil && p.YardsToGo != nil && p.Ydl100 != nil
}

var gameClockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)

// NormalizeGameClock folds formatting variants of a game clock value into one
// form, so "02:00" and "2:00" compare equal. Values that do not look like a
// clock are returned trimmed and otherwise untouched.
func NormalizeGameClock(value string) string {
	trimmed := strings.TrimSpace(value)
	match := gameClockRegex.FindStringSubmatch(trimmed)
	if match == nil {
		return trimmed
	}

	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return trimmed
	}
	seconds, err := strconv.Atoi(match[2])
	if err != nil {
		return trimmed
	}

	return strconv.Itoa(minutes) + ":" + pad2(seconds)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
