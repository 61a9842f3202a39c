package play

import "strings"

const (
	KickResultMade    = "made"
	KickResultMissed  = "missed"
	KickResultBlocked = "blocked"
	KickResultAborted = "aborted"
)

const (
	ScoreTypeTouchdown = "TD"
	ScoreTypeFieldGoal = "FG"
	ScoreTypePAT       = "PAT"
	ScoreTypePAT2      = "PAT2"
	ScoreTypeSafety    = "SFTY"
)

var kickResultAliases = map[string]string{
	"good":   KickResultMade,
	"failed": KickResultMissed,
}

var scoreTypeAliases = map[string]string{
	"TOUCHDOWN":            ScoreTypeTouchdown,
	"FIELD GOAL":           ScoreTypeFieldGoal,
	"EXTRA POINT":          ScoreTypePAT,
	"TWO POINT CONVERSION": ScoreTypePAT2,
	"TWO-POINT CONVERSION": ScoreTypePAT2,
	"SAFETY":               ScoreTypeSafety,
}

// StandardizeKickResult maps provider kick-result vocabulary onto
// {made, missed, blocked, aborted}. Unrecognized values pass through.
func StandardizeKickResult(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	if canonical, ok := kickResultAliases[strings.ToLower(trimmed)]; ok {
		return &canonical
	}
	return &trimmed
}

// StandardizeTwoPointResult is an identity transform today. It is kept as an
// explicit pass-through so a provider that starts diverging gets one place to
// converge, and removing it would silently change call sites.
func StandardizeTwoPointResult(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StandardizeScoreType maps provider scoring vocabulary onto the short
// canonical codes. Unrecognized values pass through uppercased.
func StandardizeScoreType(value string) *string {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return nil
	}

	if canonical, ok := scoreTypeAliases[normalized]; ok {
		return &canonical
	}
	return &normalized
}
