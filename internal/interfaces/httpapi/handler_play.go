package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironlab/playcore/internal/playcache"
	"github.com/gridironlab/playcore/internal/usecase"
)

type findPlayRequest struct {
	Esbid  int64 `json:"esbid" validate:"required,gt=0"`
	PlayID *int  `json:"play_id" validate:"omitempty,gt=0"`

	Qtr       *int `json:"qtr" validate:"omitempty,min=1,max=7"`
	Dwn       *int `json:"dwn" validate:"omitempty,min=1,max=4"`
	YardsToGo *int `json:"yards_to_go" validate:"omitempty,min=0"`
	Ydl100    *int `json:"ydl_100" validate:"omitempty,min=0,max=100"`

	Off            string `json:"off" validate:"omitempty,max=3"`
	Def            string `json:"def" validate:"omitempty,max=3"`
	PlayType       string `json:"play_type" validate:"omitempty,max=32"`
	GameClockStart string `json:"game_clock_start" validate:"omitempty,max=8"`
	YdlSide        string `json:"ydl_side" validate:"omitempty,max=3"`
	YdlNum         *int   `json:"ydl_num" validate:"omitempty,min=0,max=50"`
}

func (h *Handler) GetPlay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlay")
	defer span.End()

	esbid, err := strconv.ParseInt(r.PathValue("esbid"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid esbid: %v", usecase.ErrInvalidInput, err))
		return
	}
	playID, err := strconv.Atoi(r.PathValue("playID"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid play id: %v", usecase.ErrInvalidInput, err))
		return
	}

	found, err := h.lookupService.FindPlay(ctx, playcache.Query{Esbid: esbid, PlayID: &playID})
	if err != nil {
		h.logger.WarnContext(ctx, "get play failed", "esbid", esbid, "play_id", playID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playToDTO(found))
}

func (h *Handler) FindPlay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindPlay")
	defer span.End()

	var req findPlayRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	found, err := h.lookupService.FindPlay(ctx, playcache.Query{
		Esbid:          req.Esbid,
		PlayID:         req.PlayID,
		Qtr:            req.Qtr,
		Dwn:            req.Dwn,
		YardsToGo:      req.YardsToGo,
		Ydl100:         req.Ydl100,
		Off:            req.Off,
		Def:            req.Def,
		PlayType:       req.PlayType,
		GameClockStart: req.GameClockStart,
		YdlSide:        req.YdlSide,
		YdlNum:         req.YdlNum,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "find play failed", "esbid", req.Esbid, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playToDTO(found))
}

type updatePlayRequest struct {
	Esbid           int64          `json:"esbid" validate:"required,gt=0"`
	PlayID          int            `json:"play_id" validate:"required,gt=0"`
	Fields          map[string]any `json:"fields" validate:"required,min=1"`
	IgnoreConflicts bool           `json:"ignore_conflicts"`
}

type updatePlayResponse struct {
	Esbid         int64 `json:"esbid"`
	PlayID        int   `json:"play_id"`
	FieldsWritten int   `json:"fields_written"`
}

func (h *Handler) UpdatePlay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlay")
	defer span.End()

	var req updatePlayRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	written, err := h.reconcileService.Apply(ctx, usecase.UpdatePlayInput{
		Esbid:           req.Esbid,
		PlayID:          req.PlayID,
		Fields:          req.Fields,
		IgnoreConflicts: req.IgnoreConflicts,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update play failed", "esbid", req.Esbid, "play_id", req.PlayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, updatePlayResponse{
		Esbid:         req.Esbid,
		PlayID:        req.PlayID,
		FieldsWritten: written,
	})
}
