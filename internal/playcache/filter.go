package playcache

import "github.com/gridironlab/playcore/internal/domain/play"

// firstMatch returns the first candidate that survives every provided filter.
func firstMatch(candidates []*play.Play, q Query) *play.Play {
	for _, candidate := range candidates {
		if matches(candidate, q) {
			return candidate
		}
	}
	return nil
}

// matches is an exclusionary AND: a candidate is discarded as soon as any
// provided filter field disagrees with the play's value. Omitted fields
// impose no constraint. Team codes are canonicalized before comparing to
// absorb provider spelling differences.
func matches(p *play.Play, q Query) bool {
	if q.Qtr != nil && !intEqual(p.Qtr, *q.Qtr) {
		return false
	}
	if q.Dwn != nil && !intEqual(p.Dwn, *q.Dwn) {
		return false
	}
	if q.YardsToGo != nil && !intEqual(p.YardsToGo, *q.YardsToGo) {
		return false
	}
	if q.Ydl100 != nil && !intEqual(p.Ydl100, *q.Ydl100) {
		return false
	}
	if q.YdlNum != nil && !intEqual(p.YdlNum, *q.YdlNum) {
		return false
	}
	if q.Off != "" && !play.SameTeam(p.Off, q.Off) {
		return false
	}
	if q.Def != "" && !play.SameTeam(p.Def, q.Def) {
		return false
	}
	if q.YdlSide != "" && !play.SameTeam(p.YdlSide, q.YdlSide) {
		return false
	}
	if q.PlayType != "" && p.PlayType != q.PlayType {
		return false
	}
	if q.GameClockStart != "" &&
		play.NormalizeGameClock(p.GameClockStart) != play.NormalizeGameClock(q.GameClockStart) {
		return false
	}
	return true
}

func intEqual(value *int, want int) bool {
	return value != nil && *value == want
}
