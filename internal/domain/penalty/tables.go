package penalty

// Side classifies which unit a penalty type can be committed by. Exactly one
// classification exists per known name; names absent from the table are
// passed through without side attribution.
type Side int

const (
	SideUnknown Side = iota
	// SideOffense penalties are only ever committed by the offense.
	SideOffense
	// SideDefense penalties are only ever committed by the defense.
	SideDefense
	// SideEither penalties need the penalized team and the offense team to
	// resolve which unit committed them.
	SideEither
)

// canonicalNames folds provider naming variants onto one vocabulary. Keys are
// matched exactly against the extracted phrase.
var canonicalNames = map[string]string{
	"Face Mask (15 Yards)":               "Face Mask",
	"Face Mask (5 Yards)":                "Face Mask",
	"Horse Collar":                       "Horse Collar Tackle",
	"Offside":                            "Defensive Offside",
	"Roughing Passer":                    "Roughing the Passer",
	"Roughing Kicker":                    "Roughing the Kicker",
	"Running Into Kicker":                "Running Into the Kicker",
	"Def. 12 On-field":                   "Defensive Too Many Men on Field",
	"Unsportsmanlike Conduct (Taunting)": "Taunting",
	"Illegal Substitution":               "Too Many Men on Field",
	"Invalid Fair Catch Signal (Kicks)":  "Invalid Fair Catch Signal",
}

// sideByName is the single classification per canonical name.
var sideByName = map[string]Side{
	"False Start":               SideOffense,
	"Intentional Grounding":     SideOffense,
	"Illegal Motion":            SideOffense,
	"Illegal Shift":             SideOffense,
	"Illegal Formation":         SideOffense,
	"Illegal Forward Pass":      SideOffense,
	"Illegal Touch Pass":        SideOffense,
	"Illegal Touch Kick":        SideOffense,
	"Ineligible Downfield Pass": SideOffense,
	"Ineligible Downfield Kick": SideOffense,
	"Chop Block":                SideOffense,
	"Invalid Fair Catch Signal": SideOffense,

	"Roughing the Passer":     SideDefense,
	"Roughing the Kicker":     SideDefense,
	"Running Into the Kicker": SideDefense,
	"Encroachment":            SideDefense,
	"Neutral Zone Infraction": SideDefense,
	"Illegal Contact":         SideDefense,
	"Fair Catch Interference": SideDefense,
	"Horse Collar Tackle":     SideDefense,
	"Leverage":                SideDefense,
	"Leaping":                 SideDefense,

	"Holding":                       SideEither,
	"Pass Interference":             SideEither,
	"Unnecessary Roughness":         SideEither,
	"Unsportsmanlike Conduct":       SideEither,
	"Taunting":                      SideEither,
	"Face Mask":                     SideEither,
	"Illegal Use of Hands":          SideEither,
	"Tripping":                      SideEither,
	"Delay of Game":                 SideEither,
	"Too Many Men on Field":         SideEither,
	"Illegal Block Above the Waist": SideEither,
	"Low Block":                     SideEither,
	"Disqualification":              SideEither,
}

// SideOf returns the classification for a canonical penalty name.
func SideOf(name string) Side {
	return sideByName[name]
}

// KnownNames lists every classified canonical name; the order is unspecified.
func KnownNames() []string {
	out := make([]string, 0, len(sideByName))
	for name := range sideByName {
		out = append(out, name)
	}
	return out
}
