package penalty

import (
	"regexp"
	"strings"

	"github.com/gridironlab/playcore/internal/domain/play"
)

const (
	suffixOffense = " / Offense"
	suffixDefense = " / Defense"
	prefixOffense = "Offensive "
	prefixDefense = "Defensive "
)

// Extraction patterns in fixed precedence, most specific first: jersey-number
// player form, player-name form, kickoff "placed at" form, team-only form.
// The first capture group is the penalty phrase.
var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)penalty on [A-Z]{2,3}[ -]\d{1,2}-[A-Z][A-Za-z.'\- ]*,\s*([^,]+),`),
	regexp.MustCompile(`(?i)penalty on [A-Z]{2,3}-[A-Z][A-Za-z.'\- ]*,\s*([^,]+),`),
	regexp.MustCompile(`(?i)penalty on [A-Z]{2,3},\s*([^,]+),.*placed at`),
	regexp.MustCompile(`(?i)penalty on [A-Z]{2,3},\s*([^,]+),`),
}

// Parser ambiguity in some feeds yields a yard distance where the penalty
// name belongs; those matches are treated as failed extractions.
var invalidNameRegex = regexp.MustCompile(`(?i)^\d+\s*yards?$`)

// Extract recovers the raw penalty phrase from free-text play-by-play. The
// nflfastR description is preferred when both are given. Returns "" when no
// pattern matches or the matched phrase is a known-invalid token.
func Extract(desc, descNFLFastR string) string {
	text := strings.TrimSpace(descNFLFastR)
	if text == "" {
		text = strings.TrimSpace(desc)
	}
	if text == "" {
		return ""
	}

	for _, pattern := range extractPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		phrase := strings.TrimSpace(match[1])
		if phrase == "" || invalidNameRegex.MatchString(phrase) {
			return ""
		}
		return phrase
	}

	return ""
}

// Normalize folds a raw penalty phrase into the canonical side-qualified name.
// Already-suffixed input is returned unchanged, so the function can be
// re-applied to normalized data. When a side-specific penalty cannot be
// attributed (a team code is missing), the canonical base is returned without
// a suffix and the caller must handle the unresolved side.
func Normalize(raw, penTeam, offTeam string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || invalidNameRegex.MatchString(trimmed) {
		return ""
	}

	canonical := trimmed
	if mapped, ok := canonicalNames[trimmed]; ok {
		canonical = mapped
	}

	if hasUnitDesignation(canonical) {
		return canonical
	}

	switch SideOf(canonical) {
	case SideOffense:
		return canonical + suffixOffense
	case SideDefense:
		return canonical + suffixDefense
	case SideEither:
		if strings.TrimSpace(penTeam) == "" || strings.TrimSpace(offTeam) == "" {
			return canonical
		}
		if play.SameTeam(penTeam, offTeam) {
			return canonical + suffixOffense
		}
		return canonical + suffixDefense
	default:
		return canonical
	}
}

// CanonicalType composes extraction and normalization; "" when either fails.
func CanonicalType(desc, descNFLFastR, penTeam, offTeam string) string {
	raw := Extract(desc, descNFLFastR)
	if raw == "" {
		return ""
	}
	return Normalize(raw, penTeam, offTeam)
}

func hasUnitDesignation(name string) bool {
	return strings.HasPrefix(name, prefixOffense) ||
		strings.HasPrefix(name, prefixDefense) ||
		strings.HasSuffix(name, suffixOffense) ||
		strings.HasSuffix(name, suffixDefense)
}
