package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
	"github.com/neatway/proclubs-stats-sub000/internal/infrastructure/repository/memory"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
)

func newClaimServiceForTest(provider ClubProvider) (*ClaimService, *memory.ClaimRepository) {
	repo := memory.NewClaimRepository()
	return NewClaimService(repo, provider, id.NewRandomGenerator()), repo
}

func TestClaimServiceClaim_MatchesConsoleName(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{members: []member.Member{
		{PersonaID: "900", Name: "Striker"},
		{PersonaID: "901", Name: "proplayer99"},
	}}
	service, _ := newClaimServiceForTest(provider)

	principal := user.Principal{UserID: "u1", ConsoleName: "ProPlayer99"}
	out, err := service.Claim(context.Background(), principal, ClaimInput{Platform: "common-gen5", ClubID: "42"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if out.PersonaID != "901" {
		t.Fatalf("expected case-insensitive match on persona 901, got=%s", out.PersonaID)
	}
	if out.ClubID != "42" || out.UserID != "u1" {
		t.Fatalf("unexpected claim: %+v", out)
	}
}

func TestClaimServiceClaim_RequiresConsoleName(t *testing.T) {
	t.Parallel()

	service, _ := newClaimServiceForTest(&fakeClubProvider{})

	_, err := service.Claim(context.Background(), user.Principal{UserID: "u1"}, ClaimInput{Platform: "ps5", ClubID: "42"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input without console name, got=%v", err)
	}
}

func TestClaimServiceClaim_NoMatchingMember(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{members: []member.Member{{PersonaID: "900", Name: "SomeoneElse"}}}
	service, _ := newClaimServiceForTest(provider)

	principal := user.Principal{UserID: "u1", ConsoleName: "ProPlayer99"}
	_, err := service.Claim(context.Background(), principal, ClaimInput{Platform: "ps5", ClubID: "42"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found for unmatched console name, got=%v", err)
	}
}

func TestClaimServiceClaim_PersonaAlreadyClaimed(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{members: []member.Member{{PersonaID: "900", Name: "Shared"}}}
	service, _ := newClaimServiceForTest(provider)

	first := user.Principal{UserID: "u1", ConsoleName: "Shared"}
	if _, err := service.Claim(context.Background(), first, ClaimInput{Platform: "ps5", ClubID: "42"}); err != nil {
		t.Fatalf("first claim: %v", err)
	}

	second := user.Principal{UserID: "u2", ConsoleName: "Shared"}
	_, err := service.Claim(context.Background(), second, ClaimInput{Platform: "ps5", ClubID: "42"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for already-claimed persona, got=%v", err)
	}
}

func TestClaimServiceClaim_OnePerUser(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{members: []member.Member{{PersonaID: "900", Name: "ProPlayer99"}}}
	service, _ := newClaimServiceForTest(provider)

	principal := user.Principal{UserID: "u1", ConsoleName: "ProPlayer99"}
	if _, err := service.Claim(context.Background(), principal, ClaimInput{Platform: "ps5", ClubID: "42"}); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if _, err := service.Claim(context.Background(), principal, ClaimInput{Platform: "ps5", ClubID: "43"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for second claim, got=%v", err)
	}
}

func TestClaimServiceReleaseAndMine(t *testing.T) {
	t.Parallel()

	provider := &fakeClubProvider{members: []member.Member{{PersonaID: "900", Name: "ProPlayer99"}}}
	service, _ := newClaimServiceForTest(provider)

	principal := user.Principal{UserID: "u1", ConsoleName: "ProPlayer99"}
	created, err := service.Claim(context.Background(), principal, ClaimInput{Platform: "ps5", ClubID: "42"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}

	mine, err := service.Mine(context.Background(), "u1")
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if mine.ID != created.ID {
		t.Fatalf("unexpected claim id: %s", mine.ID)
	}

	if err := service.Release(context.Background(), "u1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := service.Mine(context.Background(), "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found after release, got=%v", err)
	}
	if err := service.Release(context.Background(), "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found releasing twice, got=%v", err)
	}
}
