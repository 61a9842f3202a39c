package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironlab/playcore/internal/playcache"
	"github.com/gridironlab/playcore/internal/usecase"
)

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CacheStats")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.lookupService.CacheStats(ctx))
}

type reloadCacheRequest struct {
	Years    []int `json:"years" validate:"omitempty,dive,gt=0"`
	Weeks    []int `json:"weeks" validate:"omitempty,dive,min=1,max=22"`
	AllPlays bool  `json:"all_plays"`
}

func (h *Handler) ReloadCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadCache")
	defer span.End()

	var req reloadCacheRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if !req.AllPlays && len(req.Years) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: years or all_plays is required", usecase.ErrInvalidInput))
		return
	}

	stats, err := h.lookupService.ReloadCache(ctx, playcache.PreloadOptions{
		Years:    req.Years,
		Weeks:    req.Weeks,
		AllPlays: req.AllPlays,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "cache reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}
