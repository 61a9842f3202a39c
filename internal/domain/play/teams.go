package play

import "strings"

// Gamebook and feed providers disagree on a handful of franchise codes, and
// relocated franchises keep their old code in historical exports.
var teamCodeAliases = map[string]string{
	"ARZ": "ARI",
	"BLT": "BAL",
	"CLV": "CLE",
	"HST": "HOU",
	"JAC": "JAX",
	"LA":  "LAR",
	"OAK": "LV",
	"SD":  "LAC",
	"SL":  "LAR",
	"STL": "LAR",
	"WSH": "WAS",
}

// CanonicalTeam folds provider spellings of a team code into the single code
// used across the pipeline.
func CanonicalTeam(code string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := teamCodeAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// SameTeam compares two team codes after canonicalization.
func SameTeam(a, b string) bool {
	return CanonicalTeam(a) == CanonicalTeam(b)
}
