package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/follow"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

func (h *Handler) FollowClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FollowClub")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req followRequest
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

	created, err := h.followService.Follow(ctx, principal.UserID, usecase.FollowInput{
		ClubID:   req.ClubID,
		Platform: req.Platform,
		ClubName: req.ClubName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "follow club failed", "user_id", principal.UserID, "club_id", req.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, followToDTO(ctx, created))
}

func (h *Handler) UnfollowClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnfollowClub")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	query := r.URL.Query()
	if err := h.followService.Unfollow(ctx, principal.UserID, query.Get("clubId"), query.Get("platform")); err != nil {
		h.logger.WarnContext(ctx, "unfollow club failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "unfollowed"})
}

func (h *Handler) ListMyFollows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyFollows")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	follows, err := h.followService.Mine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my follows failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]followDTO, 0, len(follows))
	for _, f := range follows {
		items = append(items, followToDTO(ctx, f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type followRequest struct {
	ClubID   string `json:"clubId" validate:"required"`
	Platform string `json:"platform"`
	ClubName string `json:"clubName" validate:"omitempty,max=100"`
}

type followDTO struct {
	ClubID    string `json:"clubId"`
	Platform  string `json:"platform"`
	ClubName  string `json:"clubName,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func followToDTO(ctx context.Context, f follow.Follow) followDTO {
	_ = ctx

	return followDTO{
		ClubID:    f.ClubID,
		Platform:  f.Platform,
		ClubName:  f.ClubName,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
	}
}
