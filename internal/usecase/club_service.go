package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/club"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/match"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/cache"
)

// ClubOverview joins a club's identity, aggregate record and roster in
// one response.
type ClubOverview struct {
	Info    *club.Info
	Stats   *club.Stats
	Members []member.Member
}

// MatchSummary is a fixture classified from the viewing club's side.
type MatchSummary struct {
	Match   match.Match
	Outcome match.Outcome
}

type ClubService struct {
	provider ClubProvider
	cache    *cache.Store
}

// NewClubService builds the club read service. cacheStore may be nil
// to disable upstream response caching.
func NewClubService(provider ClubProvider, cacheStore *cache.Store) *ClubService {
	return &ClubService{provider: provider, cache: cacheStore}
}

func (s *ClubService) Search(ctx context.Context, platform, name string) ([]club.Info, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiClubSearch")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}

	out, err := s.cached(ctx, "clubs:search:"+platform+":"+strings.ToLower(name), func(ctx context.Context) (any, error) {
		return s.provider.SearchClubs(ctx, platform, name)
	})
	if err != nil {
		return nil, err
	}
	return out.([]club.Info), nil
}

// Overview fetches info, stats and members concurrently and joins the
// results. A missing stats record is not an error; the overview just
// carries a nil Stats.
func (s *ClubService) Overview(ctx context.Context, platform, clubID string) (ClubOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiClubOverview")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return ClubOverview{}, err
	}
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return ClubOverview{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	var (
		overview   ClubOverview
		infoErr    error
		statsErr   error
		membersErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		overview.Info, infoErr = s.info(ctx, platform, clubID)
	})
	wg.Go(func() {
		overview.Stats, statsErr = s.stats(ctx, platform, clubID)
	})
	wg.Go(func() {
		overview.Members, membersErr = s.members(ctx, platform, clubID)
	})
	wg.Wait()

	if infoErr != nil {
		return ClubOverview{}, fmt.Errorf("fetch club info: %w", infoErr)
	}
	if overview.Info == nil {
		return ClubOverview{}, fmt.Errorf("%w: club_id=%s", ErrNotFound, clubID)
	}
	if statsErr != nil {
		return ClubOverview{}, fmt.Errorf("fetch club stats: %w", statsErr)
	}
	if membersErr != nil {
		return ClubOverview{}, fmt.Errorf("fetch club members: %w", membersErr)
	}
	return overview, nil
}

func (s *ClubService) Members(ctx context.Context, platform, clubID string) ([]member.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiClubMembers")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return nil, err
	}
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	return s.members(ctx, platform, clubID)
}

// Matches returns the club's recent fixtures with classified outcomes.
func (s *ClubService) Matches(ctx context.Context, platform, clubID, matchType string) ([]MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiClubMatches")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return nil, err
	}
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	matchType, err = normalizeMatchType(matchType)
	if err != nil {
		return nil, err
	}

	out, err := s.cached(ctx, "clubs:matches:"+platform+":"+clubID+":"+matchType, func(ctx context.Context) (any, error) {
		return s.provider.ClubMatches(ctx, platform, clubID, matchType)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch club matches: %w", err)
	}

	matches := out.([]match.Match)
	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		summaries = append(summaries, MatchSummary{
			Match:   m,
			Outcome: match.Classify(m, clubID),
		})
	}
	return summaries, nil
}

func (s *ClubService) info(ctx context.Context, platform, clubID string) (*club.Info, error) {
	out, err := s.cached(ctx, "clubs:info:"+platform+":"+clubID, func(ctx context.Context) (any, error) {
		return s.provider.ClubInfo(ctx, platform, clubID)
	})
	if err != nil {
		return nil, err
	}
	return out.(*club.Info), nil
}

func (s *ClubService) stats(ctx context.Context, platform, clubID string) (*club.Stats, error) {
	out, err := s.cached(ctx, "clubs:stats:"+platform+":"+clubID, func(ctx context.Context) (any, error) {
		return s.provider.ClubStats(ctx, platform, clubID)
	})
	if err != nil {
		return nil, err
	}
	return out.(*club.Stats), nil
}

func (s *ClubService) members(ctx context.Context, platform, clubID string) ([]member.Member, error) {
	out, err := s.cached(ctx, "clubs:members:"+platform+":"+clubID, func(ctx context.Context) (any, error) {
		return s.provider.ClubMembers(ctx, platform, clubID)
	})
	if err != nil {
		return nil, err
	}
	return out.([]member.Member), nil
}

func (s *ClubService) cached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, loader)
}

// Platforms recognized by the upstream API.
var knownPlatforms = map[string]struct{}{
	"common-gen5": {},
	"common-gen4": {},
	"ps5":         {},
	"ps4":         {},
	"xbox-series": {},
	"xboxone":     {},
	"pc":          {},
}

func normalizePlatform(platform string) (string, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return "common-gen5", nil
	}
	if _, ok := knownPlatforms[platform]; !ok {
		return "", fmt.Errorf("%w: unknown platform %q", ErrInvalidInput, platform)
	}
	return platform, nil
}

func normalizeMatchType(matchType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(matchType)) {
	case "", "league", "leaguematch":
		return "leagueMatch", nil
	case "playoff", "playoffmatch":
		return "playoffMatch", nil
	default:
		return "", fmt.Errorf("%w: unknown match type %q", ErrInvalidInput, matchType)
	}
}
