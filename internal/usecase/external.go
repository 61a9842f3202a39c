package usecase

import "context"

// ExternalPlay is one raw play-by-play record as a provider delivers it,
// before any vocabulary normalization.
type ExternalPlay struct {
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

	KickResult     string
	TwoPointResult string
	ScoreType      string
	PenTeam        string
}

// PlayProvider fetches raw play-by-play records for one season week.
type PlayProvider interface {
	FetchPlays(ctx context.Context, year, week int) ([]ExternalPlay, error)
}
