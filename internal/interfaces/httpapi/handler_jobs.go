package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironlab/playcore/internal/usecase"
)

type importPlaysRequest struct {
	Years           []int `json:"years" validate:"required,min=1,dive,gt=0"`
	Weeks           []int `json:"weeks" validate:"omitempty,dive,min=1,max=22"`
	MaxWorkers      int   `json:"max_workers" validate:"omitempty,min=1,max=16"`
	IgnoreConflicts bool  `json:"ignore_conflicts"`
	DryRun          bool  `json:"dry_run"`
}

func (h *Handler) RunImportJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunImportJob")
	defer span.End()

	if h.importService == nil {
		writeError(ctx, w, fmt.Errorf("%w: play feed import is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req importPlaysRequest
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

	result, err := h.importService.Run(ctx, usecase.ImportInput{
		Years:           req.Years,
		Weeks:           req.Weeks,
		MaxWorkers:      req.MaxWorkers,
		IgnoreConflicts: req.IgnoreConflicts,
		DryRun:          req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "import job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
