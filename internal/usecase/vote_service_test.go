package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/vote"
	"github.com/neatway/proclubs-stats-sub000/internal/infrastructure/repository/memory"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
)

func newVoteServiceForTest() *VoteService {
	return NewVoteService(memory.NewVoteRepository(), id.NewRandomGenerator())
}

func TestVoteServiceCast_ReplacesPreviousVote(t *testing.T) {
	t.Parallel()

	service := newVoteServiceForTest()
	input := CastVoteInput{SubjectKind: "club", SubjectID: "42", Platform: "ps5", Value: "like"}

	if _, err := service.Cast(context.Background(), "u1", input); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	input.Value = "dislike"
	if _, err := service.Cast(context.Background(), "u1", input); err != nil {
		t.Fatalf("second cast: %v", err)
	}

	result, err := service.Tally(context.Background(), "u1", "club", "42", "ps5")
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if result.Tally.Likes != 0 || result.Tally.Dislikes != 1 {
		t.Fatalf("expected one dislike after replacement, got likes=%d dislikes=%d", result.Tally.Likes, result.Tally.Dislikes)
	}
	if result.Caller == nil || result.Caller.Value != vote.ValueDislike {
		t.Fatalf("expected caller's vote in result, got=%+v", result.Caller)
	}
}

func TestVoteServiceCast_ValidatesInput(t *testing.T) {
	t.Parallel()

	service := newVoteServiceForTest()

	bad := []CastVoteInput{
		{SubjectKind: "stadium", SubjectID: "42", Platform: "ps5", Value: "like"},
		{SubjectKind: "club", SubjectID: "", Platform: "ps5", Value: "like"},
		{SubjectKind: "club", SubjectID: "42", Platform: "ps5", Value: "meh"},
	}
	for _, input := range bad {
		if _, err := service.Cast(context.Background(), "u1", input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected invalid input, got=%v", input, err)
		}
	}
}

func TestVoteServiceTally_CountsPerSubject(t *testing.T) {
	t.Parallel()

	service := newVoteServiceForTest()
	for i, userID := range []string{"u1", "u2", "u3"} {
		value := "like"
		if i == 2 {
			value = "dislike"
		}
		input := CastVoteInput{SubjectKind: "player", SubjectID: "900", Platform: "ps5", Value: value}
		if _, err := service.Cast(context.Background(), userID, input); err != nil {
			t.Fatalf("cast %s: %v", userID, err)
		}
	}

	result, err := service.Tally(context.Background(), "", "player", "900", "ps5")
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if result.Tally.Likes != 2 || result.Tally.Dislikes != 1 {
		t.Fatalf("unexpected tally: %+v", result.Tally)
	}
	if result.Caller != nil {
		t.Fatalf("expected no caller vote for anonymous tally, got=%+v", result.Caller)
	}
}

func TestVoteServiceRemove(t *testing.T) {
	t.Parallel()

	service := newVoteServiceForTest()
	input := CastVoteInput{SubjectKind: "club", SubjectID: "42", Platform: "ps5", Value: "like"}
	if _, err := service.Cast(context.Background(), "u1", input); err != nil {
		t.Fatalf("cast: %v", err)
	}

	if err := service.Remove(context.Background(), "u1", "club", "42", "ps5"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := service.Remove(context.Background(), "u1", "club", "42", "ps5"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found removing twice, got=%v", err)
	}
}
