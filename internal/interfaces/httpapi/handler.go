package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gridironlab/playcore/internal/domain/play"
	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/usecase"
)

type Handler struct {
	lookupService    *usecase.LookupService
	reconcileService *usecase.ReconcileService
	importService    *usecase.ImportService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	lookupService *usecase.LookupService,
	reconcileService *usecase.ReconcileService,
	importService *usecase.ImportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		lookupService:    lookupService,
		reconcileService: reconcileService,
		importService:    importService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type playDTO struct {
	Esbid  int64 `json:"esbid"`
	PlayID int   `json:"play_id"`
	Year   int   `json:"year"`
	Week   int   `json:"week"`

	Qtr       *int   `json:"qtr,omitempty"`
	Dwn       *int   `json:"dwn,omitempty"`
	YardsToGo *int   `json:"yards_to_go,omitempty"`
	Ydl100    *int   `json:"ydl_100,omitempty"`
	YdlSide   string `json:"ydl_side,omitempty"`
	YdlNum    *int   `json:"ydl_num,omitempty"`

	Off      string `json:"off,omitempty"`
	Def      string `json:"def,omitempty"`
	PlayType string `json:"play_type,omitempty"`

	GameClockStart string `json:"game_clock_start,omitempty"`
	GameClockEnd   string `json:"game_clock_end,omitempty"`

	Desc         string `json:"desc,omitempty"`
	DescNFLFastR string `json:"desc_nflfastr,omitempty"`

	KickResult     *string `json:"kick_result,omitempty"`
	TwoPointResult *string `json:"two_point_result,omitempty"`
	ScoreType      *string `json:"score_type,omitempty"`
	PenType        *string `json:"pen_type,omitempty"`
	PenTeam        string  `json:"pen_team,omitempty"`

	Updated *time.Time `json:"updated,omitempty"`
}

func playToDTO(p play.Play) playDTO {
	return playDTO{
		Esbid:          p.Esbid,
		PlayID:         p.PlayID,
		Year:           p.Year,
		Week:           p.Week,
		Qtr:            p.Qtr,
		Dwn:            p.Dwn,
		YardsToGo:      p.YardsToGo,
		Ydl100:         p.Ydl100,
		YdlSide:        p.YdlSide,
		YdlNum:         p.YdlNum,
		Off:            p.Off,
		Def:            p.Def,
		PlayType:       p.PlayType,
		GameClockStart: p.GameClockStart,
		GameClockEnd:   p.GameClockEnd,
		Desc:           p.Desc,
		DescNFLFastR:   p.DescNFLFastR,
		KickResult:     p.KickResult,
		TwoPointResult: p.TwoPointResult,
		ScoreType:      p.ScoreType,
		PenType:        p.PenType,
		PenTeam:        p.PenTeam,
		Updated:        p.Updated,
	}
}
