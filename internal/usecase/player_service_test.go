package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/cache"
)

type fakePlayerProvider struct {
	results []member.Member
	career  *member.Member

	searchCalls int
	careerCalls int
}

func (f *fakePlayerProvider) SearchPlayers(_ context.Context, _, _ string) ([]member.Member, error) {
	f.searchCalls++
	return f.results, nil
}

func (f *fakePlayerProvider) PlayerCareer(_ context.Context, _, _ string) (*member.Member, error) {
	f.careerCalls++
	return f.career, nil
}

func TestPlayerServiceSearch_RequiresThreeCharacters(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(&fakePlayerProvider{}, nil)
	if _, err := service.Search(context.Background(), "", "ab"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for short name, got=%v", err)
	}
}

func TestPlayerServiceSearch_UsesCache(t *testing.T) {
	t.Parallel()

	provider := &fakePlayerProvider{results: []member.Member{{PersonaID: "900", Name: "striker"}}}
	service := NewPlayerService(provider, cache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		results, err := service.Search(context.Background(), "ps5", "striker")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(results) != 1 || results[0].PersonaID != "900" {
			t.Fatalf("unexpected results: %+v", results)
		}
	}
	if provider.searchCalls != 1 {
		t.Fatalf("expected one provider call through cache, got=%d", provider.searchCalls)
	}
}

func TestPlayerServiceCareer(t *testing.T) {
	t.Parallel()

	goals := 12
	provider := &fakePlayerProvider{career: &member.Member{PersonaID: "900", Name: "striker", Goals: &goals}}
	service := NewPlayerService(provider, nil)

	career, err := service.Career(context.Background(), "ps5", "900")
	if err != nil {
		t.Fatalf("career: %v", err)
	}
	if career.Name != "striker" || member.StatOrZero(career.Goals) != 12 {
		t.Fatalf("unexpected career: %+v", career)
	}
}

func TestPlayerServiceCareer_MissingPersonaIsNotFound(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(&fakePlayerProvider{}, nil)

	if _, err := service.Career(context.Background(), "ps5", "900"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found for missing career, got=%v", err)
	}
	if _, err := service.Career(context.Background(), "ps5", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank persona id, got=%v", err)
	}
}
