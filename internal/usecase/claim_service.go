package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/claim"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
)

type ClaimInput struct {
	Platform string
	ClubID   string
}

type ClaimService struct {
	claims claim.Repository
	clubs  ClubProvider
	ids    id.Generator
	now    func() time.Time
}

func NewClaimService(claims claim.Repository, clubs ClubProvider, ids id.Generator) *ClaimService {
	return &ClaimService{
		claims: claims,
		clubs:  clubs,
		ids:    ids,
		now:    time.Now,
	}
}

// Claim asserts persona ownership for the caller. The caller's console
// name must appear in the club's current member list; the matched
// member becomes the claimed persona.
func (s *ClaimService) Claim(ctx context.Context, principal user.Principal, input ClaimInput) (claim.Claim, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiClaimCreate")
	defer span.End()

	platform, err := normalizePlatform(input.Platform)
	if err != nil {
		return claim.Claim{}, err
	}
	clubID := strings.TrimSpace(input.ClubID)
	if clubID == "" {
		return claim.Claim{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	consoleName := strings.TrimSpace(principal.ConsoleName)
	if consoleName == "" {
		return claim.Claim{}, fmt.Errorf("%w: set a console name before claiming a persona", ErrInvalidInput)
	}

	if _, exists, err := s.claims.GetByUserID(ctx, principal.UserID); err != nil {
		return claim.Claim{}, fmt.Errorf("get existing claim: %w", err)
	} else if exists {
		return claim.Claim{}, fmt.Errorf("%w: user already claimed a persona", ErrConflict)
	}

	members, err := s.clubs.ClubMembers(ctx, platform, clubID)
	if err != nil {
		return claim.Claim{}, fmt.Errorf("fetch club members: %w", err)
	}

	var matched *claim.Claim
	for _, m := range members {
		if strings.EqualFold(strings.TrimSpace(m.Name), consoleName) {
			matched = &claim.Claim{
				PersonaID:   m.PersonaID,
				PersonaName: m.Name,
			}
			break
		}
	}
	if matched == nil {
		return claim.Claim{}, fmt.Errorf("%w: no club member named %q", ErrNotFound, consoleName)
	}

	if owner, exists, err := s.claims.GetByPersona(ctx, platform, matched.PersonaName); err != nil {
		return claim.Claim{}, fmt.Errorf("get persona claim: %w", err)
	} else if exists && owner.UserID != principal.UserID {
		return claim.Claim{}, fmt.Errorf("%w: persona already claimed", ErrConflict)
	}

	claimID, err := s.ids.NewID()
	if err != nil {
		return claim.Claim{}, fmt.Errorf("generate claim id: %w", err)
	}
	out := claim.Claim{
		ID:          claimID,
		UserID:      principal.UserID,
		Platform:    platform,
		ClubID:      clubID,
		PersonaID:   matched.PersonaID,
		PersonaName: matched.PersonaName,
		CreatedAt:   s.now().UTC(),
	}
	if err := out.Validate(); err != nil {
		return claim.Claim{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.claims.Create(ctx, out); err != nil {
		return claim.Claim{}, fmt.Errorf("create claim: %w", err)
	}
	return out, nil
}

func (s *ClaimService) Mine(ctx context.Context, userID string) (claim.Claim, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiClaimMine")
	defer span.End()

	out, exists, err := s.claims.GetByUserID(ctx, userID)
	if err != nil {
		return claim.Claim{}, fmt.Errorf("get claim: %w", err)
	}
	if !exists {
		return claim.Claim{}, fmt.Errorf("%w: no claim for user", ErrNotFound)
	}
	return out, nil
}

func (s *ClaimService) Release(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiClaimRelease")
	defer span.End()

	if _, exists, err := s.claims.GetByUserID(ctx, userID); err != nil {
		return fmt.Errorf("get claim: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: no claim for user", ErrNotFound)
	}
	if err := s.claims.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	return nil
}
