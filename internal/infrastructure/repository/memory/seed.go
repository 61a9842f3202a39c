package memory

import "github.com/gridironlab/playcore/internal/domain/play"

// Known seed identifiers shared by tests and the local mode.
const (
	EsbidChiefsJets    int64 = 401547417
	EsbidBillsDolphins int64 = 401547404
	EsbidRams2022      int64 = 401437654
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// SeedPlays returns a small but structurally representative play set: a
// complete drive snippet, two plays sharing a full context key, a play with
// an incomplete context, and one play from an earlier season.
func SeedPlays() []play.Play {
	return []play.Play{
		{
			Esbid: EsbidChiefsJets, PlayID: 101, Year: 2023, Week: 4,
			Qtr: intPtr(1), Dwn: intPtr(1), YardsToGo: intPtr(10), Ydl100: intPtr(75),
			YdlSide: "KC", YdlNum: intPtr(25),
			Off: "KC", Def: "NYJ", PlayType: "RUSH",
			GameClockStart: "15:00", GameClockEnd: "14:21",
			Desc: "I.Pacheco left guard to KC 29 for 4 yards.",
		},
		{
			Esbid: EsbidChiefsJets, PlayID: 105, Year: 2023, Week: 4,
			Qtr: intPtr(1), Dwn: intPtr(3), YardsToGo: intPtr(2), Ydl100: intPtr(63),
			YdlSide: "KC", YdlNum: intPtr(37),
			Off: "KC", Def: "NYJ", PlayType: "PASS",
			GameClockStart: "13:05", GameClockEnd: "12:58",
			Desc: "P.Mahomes pass short right to T.Kelce to KC 45 for 8 yards.",
		},
		// Same context key as play 205 below within this game, resolved by
		// the off/def filters.
		{
			Esbid: EsbidChiefsJets, PlayID: 201, Year: 2023, Week: 4,
			Qtr: intPtr(2), Dwn: intPtr(2), YardsToGo: intPtr(7), Ydl100: intPtr(50),
			Off: "KC", Def: "NYJ", PlayType: "PASS",
			GameClockStart: "9:31",
		},
		{
			Esbid: EsbidChiefsJets, PlayID: 205, Year: 2023, Week: 4,
			Qtr: intPtr(2), Dwn: intPtr(2), YardsToGo: intPtr(7), Ydl100: intPtr(50),
			Off: "NYJ", Def: "KC", PlayType: "RUSH",
			GameClockStart: "4:12",
		},
		// No context key; reachable only through the per-game fallback scan.
		{
			Esbid: EsbidChiefsJets, PlayID: 301, Year: 2023, Week: 4,
			Off: "NYJ", Def: "KC", PlayType: "KICKOFF",
			Desc: "J.Gano kicks 65 yards from NYJ 35 to end zone, Touchback.",
		},
		{
			Esbid: EsbidBillsDolphins, PlayID: 88, Year: 2023, Week: 4,
			Qtr: intPtr(1), Dwn: intPtr(1), YardsToGo: intPtr(10), Ydl100: intPtr(75),
			Off: "BUF", Def: "MIA", PlayType: "PASS",
			GameClockStart: "15:00",
			KickResult:     nil,
			ScoreType:      strPtr("TD"),
		},
		{
			Esbid: EsbidRams2022, PlayID: 12, Year: 2022, Week: 9,
			Qtr: intPtr(1), Dwn: intPtr(2), YardsToGo: intPtr(5), Ydl100: intPtr(40),
			Off: "LAR", Def: "TB", PlayType: "RUSH",
			GameClockStart: "11:47",
		},
	}
}
