package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/vote"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CastVote")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req castVoteRequest
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

	cast, err := h.voteService.Cast(ctx, principal.UserID, usecase.CastVoteInput{
		SubjectKind: req.SubjectKind,
		SubjectID:   req.SubjectID,
		Platform:    req.Platform,
		Value:       req.Value,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "cast vote failed", "user_id", principal.UserID, "subject_id", req.SubjectID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, voteToDTO(ctx, cast))
}

func (h *Handler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteVote")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	query := r.URL.Query()
	err := h.voteService.Remove(ctx, principal.UserID, query.Get("subjectKind"), query.Get("subjectId"), query.Get("platform"))
	if err != nil {
		h.logger.WarnContext(ctx, "delete vote failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) GetClubVotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubVotes")
	defer span.End()

	h.writeTally(ctx, w, string(vote.SubjectClub), r.PathValue("clubID"), r.URL.Query().Get("platform"))
}

func (h *Handler) GetPlayerVotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerVotes")
	defer span.End()

	h.writeTally(ctx, w, string(vote.SubjectPlayer), r.PathValue("personaID"), r.URL.Query().Get("platform"))
}

func (h *Handler) writeTally(ctx context.Context, w http.ResponseWriter, subjectKind, subjectID, platform string) {
	callerUserID := ""
	if principal, ok := principalFromContext(ctx); ok {
		callerUserID = principal.UserID
	}

	result, err := h.voteService.Tally(ctx, callerUserID, subjectKind, subjectID, platform)
	if err != nil {
		h.logger.WarnContext(ctx, "tally votes failed", "subject_kind", subjectKind, "subject_id", subjectID, "error", err)
		writeError(ctx, w, err)
		return
	}

	payload := voteTallyDTO{
		SubjectKind: string(result.Tally.SubjectKind),
		SubjectID:   result.Tally.SubjectID,
		Platform:    result.Tally.Platform,
		Likes:       result.Tally.Likes,
		Dislikes:    result.Tally.Dislikes,
	}
	if result.Caller != nil {
		payload.MyVote = string(result.Caller.Value)
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}

type castVoteRequest struct {
	SubjectKind string `json:"subjectKind" validate:"required,oneof=club player"`
	SubjectID   string `json:"subjectId" validate:"required"`
	Platform    string `json:"platform"`
	Value       string `json:"value" validate:"required,oneof=like dislike"`
}

type voteDTO struct {
	SubjectKind string `json:"subjectKind"`
	SubjectID   string `json:"subjectId"`
	Platform    string `json:"platform"`
	Value       string `json:"value"`
}

type voteTallyDTO struct {
	SubjectKind string `json:"subjectKind"`
	SubjectID   string `json:"subjectId"`
	Platform    string `json:"platform"`
	Likes       int    `json:"likes"`
	Dislikes    int    `json:"dislikes"`
	MyVote      string `json:"myVote,omitempty"`
}

func voteToDTO(ctx context.Context, v vote.Vote) voteDTO {
	_ = ctx

	return voteDTO{
		SubjectKind: string(v.SubjectKind),
		SubjectID:   v.SubjectID,
		Platform:    v.Platform,
		Value:       string(v.Value),
	}
}
