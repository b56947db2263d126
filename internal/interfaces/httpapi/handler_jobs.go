package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

func (h *Handler) RunWarmFollowsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmFollowsJob")
	defer span.End()

	if h.warmService == nil {
		writeError(ctx, w, fmt.Errorf("%w: warm follows job is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req warmFollowsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.warmService.Run(ctx, usecase.WarmFollowsInput{MaxWorkers: req.MaxWorkers})
	if err != nil {
		h.logger.WarnContext(ctx, "run warm follows job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunPurgeSessionsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPurgeSessionsJob")
	defer span.End()

	if err := h.authService.PurgeExpiredSessions(ctx); err != nil {
		h.logger.WarnContext(ctx, "run purge sessions job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "purged"})
}

type warmFollowsRequest struct {
	MaxWorkers int `json:"maxWorkers"`
}
