package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

func (h *Handler) DiscordLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DiscordLogin")
	defer span.End()

	redirectURL, state, err := h.authService.LoginURL(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "build discord login url failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, loginDTO{
		RedirectURL: redirectURL,
		State:       state,
	})
}

func (h *Handler) DiscordCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DiscordCallback")
	defer span.End()

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	account, token, err := h.authService.HandleCallback(ctx, code, state)
	if err != nil {
		h.logger.WarnContext(ctx, "discord callback failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionDTO{
		Token: token,
		User:  userToDTO(ctx, account),
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	account, err := h.authService.Me(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get me failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, account))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		writeError(ctx, w, fmt.Errorf("%w: missing bearer token", usecase.ErrUnauthorized))
		return
	}

	if err := h.authService.Logout(ctx, strings.TrimSpace(parts[1])); err != nil {
		h.logger.WarnContext(ctx, "logout failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) SetConsoleName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetConsoleName")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req setConsoleNameRequest
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

	account, err := h.authService.SetConsoleName(ctx, principal.UserID, req.ConsoleName)
	if err != nil {
		h.logger.WarnContext(ctx, "set console name failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(ctx, account))
}

type loginDTO struct {
	RedirectURL string `json:"redirectUrl"`
	State       string `json:"state"`
}

type sessionDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID          string `json:"id"`
	DiscordID   string `json:"discordId"`
	Username    string `json:"username"`
	AvatarHash  string `json:"avatarHash,omitempty"`
	ConsoleName string `json:"consoleName,omitempty"`
}

type setConsoleNameRequest struct {
	ConsoleName string `json:"consoleName" validate:"required,max=64"`
}

func userToDTO(ctx context.Context, u user.User) userDTO {
	_ = ctx

	return userDTO{
		ID:          u.ID,
		DiscordID:   u.DiscordID,
		Username:    u.Username,
		AvatarHash:  u.AvatarHash,
		ConsoleName: u.ConsoleName,
	}
}
