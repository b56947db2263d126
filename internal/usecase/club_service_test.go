package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/club"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/match"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/cache"
)

type fakeClubProvider struct {
	info    *club.Info
	stats   *club.Stats
	members []member.Member
	matches []match.Match
	clubs   []club.Info

	infoErr    error
	membersErr error

	infoCalls    int
	membersCalls int
}

func (f *fakeClubProvider) ClubInfo(_ context.Context, _, _ string) (*club.Info, error) {
	f.infoCalls++
	return f.info, f.infoErr
}

func (f *fakeClubProvider) ClubStats(_ context.Context, _, _ string) (*club.Stats, error) {
	return f.stats, nil
}

func (f *fakeClubProvider) ClubMembers(_ context.Context, _, _ string) ([]member.Member, error) {
	f.membersCalls++
	return f.members, f.membersErr
}

func (f *fakeClubProvider) ClubMatches(_ context.Context, _, _, _ string) ([]match.Match, error) {
	return f.matches, nil
}

func (f *fakeClubProvider) SearchClubs(_ context.Context, _, _ string) ([]club.Info, error) {
	return f.clubs, nil
}

func TestClubServiceOverview_JoinsInfoStatsMembers(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{
		info:    &club.Info{ID: "42", Name: "Test FC"},
		stats:   &club.Stats{ClubID: "42", Wins: 10},
		members: []member.Member{{Name: "A"}, {Name: "B"}},
	}
	service := NewClubService(provider, nil)

	overview, err := service.Overview(context.Background(), "common-gen5", "42")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Info == nil || overview.Info.Name != "Test FC" {
		t.Fatalf("unexpected info: %+v", overview.Info)
	}
	if overview.Stats == nil || overview.Stats.Wins != 10 {
		t.Fatalf("unexpected stats: %+v", overview.Stats)
	}
	if len(overview.Members) != 2 {
		t.Fatalf("expected two members, got=%d", len(overview.Members))
	}
}

func TestClubServiceOverview_MissingClubIsNotFound(t *testing.T) {
	t.Parallel()

	service := NewClubService(&fakeClubProvider{}, nil)

	_, err := service.Overview(context.Background(), "common-gen5", "42")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got=%v", err)
	}
}

func TestClubServiceOverview_ValidatesInput(t *testing.T) {
	t.Parallel()

	service := NewClubService(&fakeClubProvider{}, nil)

	if _, err := service.Overview(context.Background(), "common-gen5", " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank club id, got=%v", err)
	}
	if _, err := service.Overview(context.Background(), "dreamcast", "42"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown platform, got=%v", err)
	}
}

func TestClubServiceMatches_ClassifiesOutcomes(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{
		matches: []match.Match{
			{
				ID: "1",
				Clubs: map[string]match.ClubResult{
					"42": {ClubID: "42", Goals: 3, GoalsAgainst: 0},
					"77": {ClubID: "77", Goals: 0, GoalsAgainst: 3},
				},
			},
			{
				ID: "2",
				Clubs: map[string]match.ClubResult{
					"42": {ClubID: "42", Goals: 1, GoalsAgainst: 1, ResultCode: "2"},
					"77": {ClubID: "77", Goals: 1, GoalsAgainst: 1, ResultCode: "1"},
				},
			},
		},
	}
	service := NewClubService(provider, nil)

	summaries, err := service.Matches(context.Background(), "", "42", "league")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected two summaries, got=%d", len(summaries))
	}
	if summaries[0].Outcome != match.OutcomeWin {
		t.Fatalf("expected win for 3-0, got=%s", summaries[0].Outcome)
	}
	if summaries[1].Outcome != match.OutcomeLoss {
		t.Fatalf("expected loss for tied goals with result=2, got=%s", summaries[1].Outcome)
	}
}

func TestClubServiceMatches_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	service := NewClubService(&fakeClubProvider{}, nil)
	if _, err := service.Matches(context.Background(), "", "42", "friendly"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got=%v", err)
	}
}

func TestClubServiceMembers_UsesCache(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{members: []member.Member{{Name: "A"}}}
	service := NewClubService(provider, cache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := service.Members(context.Background(), "common-gen5", "42"); err != nil {
			t.Fatalf("members: %v", err)
		}
	}
	if provider.membersCalls != 1 {
		t.Fatalf("expected one provider call through cache, got=%d", provider.membersCalls)
	}
}

func TestClubServiceSearch_RequiresName(t *testing.T) {
	t.Parallel()

	service := NewClubService(&fakeClubProvider{}, nil)
	if _, err := service.Search(context.Background(), "", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got=%v", err)
	}
}
