package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

type Handler struct {
	clubService   *usecase.ClubService
	playerService *usecase.PlayerService
	authService   *usecase.AuthService
	claimService  *usecase.ClaimService
	voteService   *usecase.VoteService
	followService *usecase.FollowService
	warmService   *usecase.WarmFollowsService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	clubService *usecase.ClubService,
	playerService *usecase.PlayerService,
	authService *usecase.AuthService,
	claimService *usecase.ClaimService,
	voteService *usecase.VoteService,
	followService *usecase.FollowService,
	warmService *usecase.WarmFollowsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		clubService:   clubService,
		playerService: playerService,
		authService:   authService,
		claimService:  claimService,
		voteService:   voteService,
		followService: followService,
		warmService:   warmService,
		logger:        logger,
		validator:     validator.New(),
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
