package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/claim"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

func (h *Handler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClaim")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req createClaimRequest
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

	created, err := h.claimService.Claim(ctx, principal, usecase.ClaimInput{
		Platform: req.Platform,
		ClubID:   req.ClubID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create claim failed", "user_id", principal.UserID, "club_id", req.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, claimToDTO(ctx, created))
}

func (h *Handler) GetMyClaim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyClaim")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	mine, err := h.claimService.Mine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my claim failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, claimToDTO(ctx, mine))
}

func (h *Handler) DeleteClaim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteClaim")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.claimService.Release(ctx, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete claim failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "released"})
}

type createClaimRequest struct {
	Platform string `json:"platform"`
	ClubID   string `json:"clubId" validate:"required"`
}

type claimDTO struct {
	ID          string `json:"id"`
	Platform    string `json:"platform"`
	ClubID      string `json:"clubId"`
	PersonaID   string `json:"personaId,omitempty"`
	PersonaName string `json:"personaName"`
	CreatedAt   string `json:"createdAt"`
}

func claimToDTO(ctx context.Context, c claim.Claim) claimDTO {
	_ = ctx

	return claimDTO{
		ID:          c.ID,
		Platform:    c.Platform,
		ClubID:      c.ClubID,
		PersonaID:   c.PersonaID,
		PersonaName: c.PersonaName,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
