package postgres

import (
	"database/sql"
	"time"

	"github.com/gridironlab/playcore/internal/domain/play"
)

type playTableModel struct {
	Esbid  int64 `db:"esbid"`
	PlayID int   `db:"play_id"`

	Year int `db:"year"`
	Week int `db:"week"`

	Qtr       sql.NullInt64  `db:"qtr"`
	Dwn       sql.NullInt64  `db:"dwn"`
	YardsToGo sql.NullInt64  `db:"yards_to_go"`
	Ydl100    sql.NullInt64  `db:"ydl_100"`
	YdlSide   sql.NullString `db:"ydl_side"`
	YdlNum    sql.NullInt64  `db:"ydl_num"`

	Off      sql.NullString `db:"off"`
	Def      sql.NullString `db:"def"`
	PlayType sql.NullString `db:"play_type"`

	GameClockStart sql.NullString `db:"game_clock_start"`
	GameClockEnd   sql.NullString `db:"game_clock_end"`

	Desc         sql.NullString `db:"desc"`
	DescNFLFastR sql.NullString `db:"desc_nflfastr"`

	KickResult     sql.NullString `db:"kick_result"`
	TwoPointResult sql.NullString `db:"two_point_result"`
	ScoreType      sql.NullString `db:"score_type"`
	PenType        sql.NullString `db:"pen_type"`
	PenTeam        sql.NullString `db:"pen_team"`

	Updated *time.Time `db:"updated"`
}

func (m playTableModel) toDomain() play.Play {
	return play.Play{
		Esbid:          m.Esbid,
		PlayID:         m.PlayID,
		Year:           m.Year,
		Week:           m.Week,
		Qtr:            nullInt(m.Qtr),
		Dwn:            nullInt(m.Dwn),
		YardsToGo:      nullInt(m.YardsToGo),
		Ydl100:         nullInt(m.Ydl100),
		YdlSide:        m.YdlSide.String,
		YdlNum:         nullInt(m.YdlNum),
		Off:            m.Off.String,
		Def:            m.Def.String,
		PlayType:       m.PlayType.String,
		GameClockStart: m.GameClockStart.String,
		GameClockEnd:   m.GameClockEnd.String,
		Desc:           m.Desc.String,
		DescNFLFastR:   m.DescNFLFastR.String,
		KickResult:     nullString(m.KickResult),
		TwoPointResult: nullString(m.TwoPointResult),
		ScoreType:      nullString(m.ScoreType),
		PenType:        nullString(m.PenType),
		PenTeam:        m.PenTeam.String,
		Updated:        m.Updated,
	}
}

type playInsertModel struct {
	Esbid          int64   `db:"esbid"`
	PlayID         int     `db:"play_id"`
	Year           int     `db:"year"`
	Week           int     `db:"week"`
	Qtr            *int    `db:"qtr"`
	Dwn            *int    `db:"dwn"`
	YardsToGo      *int    `db:"yards_to_go"`
	Ydl100         *int    `db:"ydl_100"`
	YdlSide        *string `db:"ydl_side"`
	YdlNum         *int    `db:"ydl_num"`
	Off            *string `db:"off"`
	Def            *string `db:"def"`
	PlayType       *string `db:"play_type"`
	GameClockStart *string `db:"game_clock_start"`
	GameClockEnd   *string `db:"game_clock_end"`
	Desc           *string `db:"\"desc\""`
	DescNFLFastR   *string `db:"desc_nflfastr"`
	KickResult     *string `db:"kick_result"`
	TwoPointResult *string `db:"two_point_result"`
	ScoreType      *string `db:"score_type"`
	PenType        *string `db:"pen_type"`
	PenTeam        *string `db:"pen_team"`
}

func insertModelFromDomain(p play.Play) playInsertModel {
	return playInsertModel{
		Esbid:          p.Esbid,
		PlayID:         p.PlayID,
		Year:           p.Year,
		Week:           p.Week,
		Qtr:            p.Qtr,
		Dwn:            p.Dwn,
		YardsToGo:      p.YardsToGo,
		Ydl100:         p.Ydl100,
		YdlSide:        nullableString(p.YdlSide),
		YdlNum:         p.YdlNum,
		Off:            nullableString(p.Off),
		Def:            nullableString(p.Def),
		PlayType:       nullableString(p.PlayType),
		GameClockStart: nullableString(p.GameClockStart),
		GameClockEnd:   nullableString(p.GameClockEnd),
		Desc:           nullableString(p.Desc),
		DescNFLFastR:   nullableString(p.DescNFLFastR),
		KickResult:     p.KickResult,
		TwoPointResult: p.TwoPointResult,
		ScoreType:      p.ScoreType,
		PenType:        p.PenType,
		PenTeam:        nullableString(p.PenTeam),
	}
}
