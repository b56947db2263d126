package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/follow"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
)

type FollowInput struct {
	ClubID   string
	Platform string
	ClubName string
}

type FollowService struct {
	follows follow.Repository
	ids     id.Generator
	now     func() time.Time
}

func NewFollowService(follows follow.Repository, ids id.Generator) *FollowService {
	return &FollowService{follows: follows, ids: ids, now: time.Now}
}

func (s *FollowService) Follow(ctx context.Context, userID string, input FollowInput) (follow.Follow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiFollowCreate")
	defer span.End()

	platform, err := normalizePlatform(input.Platform)
	if err != nil {
		return follow.Follow{}, err
	}

	followID, err := s.ids.NewID()
	if err != nil {
		return follow.Follow{}, fmt.Errorf("generate follow id: %w", err)
	}
	out := follow.Follow{
		ID:        followID,
		UserID:    strings.TrimSpace(userID),
		ClubID:    strings.TrimSpace(input.ClubID),
		Platform:  platform,
		ClubName:  strings.TrimSpace(input.ClubName),
		CreatedAt: s.now().UTC(),
	}
	if err := out.Validate(); err != nil {
		return follow.Follow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.follows.Create(ctx, out); err != nil {
		return follow.Follow{}, fmt.Errorf("create follow: %w", err)
	}
	return out, nil
}

func (s *FollowService) Unfollow(ctx context.Context, userID, clubID, platform string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiFollowDelete")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return err
	}
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.follows.Delete(ctx, userID, clubID, platform); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (s *FollowService) Mine(ctx context.Context, userID string) ([]follow.Follow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiFollowMine")
	defer span.End()

	out, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	return out, nil
}
