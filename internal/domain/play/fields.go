package play

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column names of the plays table, which double as the field vocabulary of the
// update reconciler. Every updatable field must appear here; unknown names are
// rejected before they reach SQL.
var fieldNames = []string{
	"esbid",
	"play_id",
	"year",
	"week",
	"qtr",
	"dwn",
	"yards_to_go",
	"ydl_100",
	"ydl_side",
	"ydl_num",
	"off",
	"def",
	"play_type",
	"game_clock_start",
	"game_clock_end",
	"desc",
	"desc_nflfastr",
	"kick_result",
	"two_point_result",
	"score_type",
	"pen_type",
	"pen_team",
	"updated",
}

var knownFields = func() map[string]struct{} {
	out := make(map[string]struct{}, len(fieldNames))
	for _, name := range fieldNames {
		out[name] = struct{}{}
	}
	return out
}()

// Identity and bookkeeping fields are never written through the reconciler.
var immutableFields = map[string]struct{}{
	"esbid":   {},
	"play_id": {},
	"updated": {},
}

var clockFields = map[string]struct{}{
	"game_clock_start": {},
	"game_clock_end":   {},
}

func FieldNames() []string {
	return append([]string(nil), fieldNames...)
}

func KnownField(name string) bool {
	_, ok := knownFields[name]
	return ok
}

func ImmutableField(name string) bool {
	_, ok := immutableFields[name]
	return ok
}

func ClockField(name string) bool {
	_, ok := clockFields[name]
	return ok
}

// FieldValue returns the current value of one named field.
func (p Play) FieldValue(name string) (any, bool) {
	switch name {
	case "esbid":
		return p.Esbid, true
	case "play_id":
		return p.PlayID, true
	case "year":
		return p.Year, true
	case "week":
		return p.Week, true
	case "qtr":
		return p.Qtr, true
	case "dwn":
		return p.Dwn, true
	case "yards_to_go":
		return p.YardsToGo, true
	case "ydl_100":
		return p.Ydl100, true
	case "ydl_side":
		return p.YdlSide, true
	case "ydl_num":
		return p.YdlNum, true
	case "off":
		return p.Off, true
	case "def":
		return p.Def, true
	case "play_type":
		return p.PlayType, true
	case "game_clock_start":
		return p.GameClockStart, true
	case "game_clock_end":
		return p.GameClockEnd, true
	case "desc":
		return p.Desc, true
	case "desc_nflfastr":
		return p.DescNFLFastR, true
	case "kick_result":
		return p.KickResult, true
	case "two_point_result":
		return p.TwoPointResult, true
	case "score_type":
		return p.ScoreType, true
	case "pen_type":
		return p.PenType, true
	case "pen_team":
		return p.PenTeam, true
	case "updated":
		return p.Updated, true
	default:
		return nil, false
	}
}

// SetField writes one named field from a loosely typed value, coercing JSON
// and SQL shapes (float64, int64, *string) onto the struct field types.
func (p *Play) SetField(name string, value any) error {
	switch name {
	case "year":
		return setIntField(&p.Year, name, value)
	case "week":
		return setIntField(&p.Week, name, value)
	case "qtr":
		return setIntPtrField(&p.Qtr, name, value)
	case "dwn":
		return setIntPtrField(&p.Dwn, name, value)
	case "yards_to_go":
		return setIntPtrField(&p.YardsToGo, name, value)
	case "ydl_100":
		return setIntPtrField(&p.Ydl100, name, value)
	case "ydl_side":
		p.YdlSide = stringValue(value)
		return nil
	case "ydl_num":
		return setIntPtrField(&p.YdlNum, name, value)
	case "off":
		p.Off = stringValue(value)
		return nil
	case "def":
		p.Def = stringValue(value)
		return nil
	case "play_type":
		p.PlayType = stringValue(value)
		return nil
	case "game_clock_start":
		p.GameClockStart = stringValue(value)
		return nil
	case "game_clock_end":
		p.GameClockEnd = stringValue(value)
		return nil
	case "desc":
		p.Desc = stringValue(value)
		return nil
	case "desc_nflfastr":
		p.DescNFLFastR = stringValue(value)
		return nil
	case "kick_result":
		return setStringPtrField(&p.KickResult, value)
	case "two_point_result":
		return setStringPtrField(&p.TwoPointResult, value)
	case "score_type":
		return setStringPtrField(&p.ScoreType, value)
	case "pen_type":
		return setStringPtrField(&p.PenType, value)
	case "pen_team":
		p.PenTeam = stringValue(value)
		return nil
	default:
		return fmt.Errorf("field %q is not settable", name)
	}
}

// ValueEmpty reports whether a field value carries no data: nil, empty string,
// or a nil typed pointer. Zero numbers are data.
func ValueEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *string:
		return v == nil || strings.TrimSpace(*v) == ""
	case *int:
		return v == nil
	case *int64:
		return v == nil
	case *time.Time:
		return v == nil
	default:
		return false
	}
}

// CanonicalFieldValue renders a field value in the single comparable form used
// for diffing: pointers dereferenced, numbers without fraction noise, clocks
// normalized. The boolean is false when the value is empty.
func CanonicalFieldValue(name string, value any) (string, bool) {
	if ValueEmpty(value) {
		return "", false
	}

	text := valueText(value)
	if text == "" {
		return "", false
	}
	if ClockField(name) {
		text = NormalizeGameClock(text)
	}
	return text, true
}

func valueText(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case *string:
		return strings.TrimSpace(*v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case *int:
		return strconv.Itoa(*v)
	case *int64:
		return strconv.FormatInt(*v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func intFromValue(name string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("field %s: parse %q: %w", name, v, err)
		}
		return parsed, nil
	case *int:
		if v == nil {
			return 0, fmt.Errorf("field %s: nil value", name)
		}
		return *v, nil
	default:
		return 0, fmt.Errorf("field %s: cannot coerce %T to int", name, value)
	}
}

func setIntField(target *int, name string, value any) error {
	parsed, err := intFromValue(name, value)
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}

func setIntPtrField(target **int, name string, value any) error {
	if ValueEmpty(value) {
		*target = nil
		return nil
	}
	parsed, err := intFromValue(name, value)
	if err != nil {
		return err
	}
	*target = &parsed
	return nil
}

func setStringPtrField(target **string, value any) error {
	if ValueEmpty(value) {
		*target = nil
		return nil
	}
	text := valueText(value)
	*target = &text
	return nil
}

func stringValue(value any) string {
	if ValueEmpty(value) {
		return ""
	}
	return valueText(value)
}
