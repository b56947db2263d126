package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/cache"
)

type PlayerService struct {
	provider PlayerProvider
	cache    *cache.Store
}

func NewPlayerService(provider PlayerProvider, cacheStore *cache.Store) *PlayerService {
	return &PlayerService{provider: provider, cache: cacheStore}
}

func (s *PlayerService) Search(ctx context.Context, platform, name string) ([]member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiPlayerSearch")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return nil, fmt.Errorf("%w: player name needs at least 3 characters", ErrInvalidInput)
	}

	out, err := s.cached(ctx, "players:search:"+platform+":"+strings.ToLower(name), func(ctx context.Context) (any, error) {
		return s.provider.SearchPlayers(ctx, platform, name)
	})
	if err != nil {
		return nil, err
	}
	return out.([]member.Member), nil
}

func (s *PlayerService) Career(ctx context.Context, platform, personaID string) (member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiPlayerCareer")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return member.Member{}, err
	}
	personaID = strings.TrimSpace(personaID)
	if personaID == "" {
		return member.Member{}, fmt.Errorf("%w: persona id is required", ErrInvalidInput)
	}

	out, err := s.cached(ctx, "players:career:"+platform+":"+personaID, func(ctx context.Context) (any, error) {
		return s.provider.PlayerCareer(ctx, platform, personaID)
	})
	if err != nil {
		return member.Member{}, err
	}

	career := out.(*member.Member)
	if career == nil {
		return member.Member{}, fmt.Errorf("%w: persona_id=%s", ErrNotFound, personaID)
	}
	return *career, nil
}

func (s *PlayerService) cached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, loader)
}
