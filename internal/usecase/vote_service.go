package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/vote"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
)

type CastVoteInput struct {
	SubjectKind string
	SubjectID   string
	Platform    string
	Value       string
}

// VoteResult joins the subject tally with the caller's own vote, if
// any.
type VoteResult struct {
	Tally  vote.Tally
	Caller *vote.Vote
}

type VoteService struct {
	votes vote.Repository
	ids   id.Generator
	now   func() time.Time
}

func NewVoteService(votes vote.Repository, ids id.Generator) *VoteService {
	return &VoteService{votes: votes, ids: ids, now: time.Now}
}

// Cast records or replaces the caller's vote on a subject. The storage
// layer's unique key keeps one vote per (kind, subject, platform, user).
func (s *VoteService) Cast(ctx context.Context, userID string, input CastVoteInput) (vote.Vote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiVoteCast")
	defer span.End()

	platform, err := normalizePlatform(input.Platform)
	if err != nil {
		return vote.Vote{}, err
	}

	voteID, err := s.ids.NewID()
	if err != nil {
		return vote.Vote{}, fmt.Errorf("generate vote id: %w", err)
	}
	now := s.now().UTC()
	out := vote.Vote{
		ID:          voteID,
		UserID:      strings.TrimSpace(userID),
		SubjectKind: vote.SubjectKind(strings.ToLower(strings.TrimSpace(input.SubjectKind))),
		SubjectID:   strings.TrimSpace(input.SubjectID),
		Platform:    platform,
		Value:       vote.Value(strings.ToLower(strings.TrimSpace(input.Value))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := out.Validate(); err != nil {
		return vote.Vote{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.votes.Upsert(ctx, out); err != nil {
		return vote.Vote{}, fmt.Errorf("upsert vote: %w", err)
	}
	return out, nil
}

func (s *VoteService) Remove(ctx context.Context, userID, subjectKind, subjectID, platform string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiVoteRemove")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return err
	}
	kind := vote.SubjectKind(strings.ToLower(strings.TrimSpace(subjectKind)))
	if kind != vote.SubjectClub && kind != vote.SubjectPlayer {
		return fmt.Errorf("%w: unknown vote subject kind %q", ErrInvalidInput, subjectKind)
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return fmt.Errorf("%w: subject id is required", ErrInvalidInput)
	}

	if _, exists, err := s.votes.GetByVoter(ctx, userID, kind, subjectID, platform); err != nil {
		return fmt.Errorf("get vote: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: no vote to remove", ErrNotFound)
	}
	if err := s.votes.Delete(ctx, userID, kind, subjectID, platform); err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}
	return nil
}

// Tally returns the like/dislike counts for a subject plus the caller's
// vote when callerUserID is set.
func (s *VoteService) Tally(ctx context.Context, callerUserID, subjectKind, subjectID, platform string) (VoteResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiVoteTally")
	defer span.End()

	platform, err := normalizePlatform(platform)
	if err != nil {
		return VoteResult{}, err
	}
	kind := vote.SubjectKind(strings.ToLower(strings.TrimSpace(subjectKind)))
	if kind != vote.SubjectClub && kind != vote.SubjectPlayer {
		return VoteResult{}, fmt.Errorf("%w: unknown vote subject kind %q", ErrInvalidInput, subjectKind)
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return VoteResult{}, fmt.Errorf("%w: subject id is required", ErrInvalidInput)
	}

	tally, err := s.votes.Tally(ctx, kind, subjectID, platform)
	if err != nil {
		return VoteResult{}, fmt.Errorf("tally votes: %w", err)
	}
	out := VoteResult{Tally: tally}

	if strings.TrimSpace(callerUserID) != "" {
		caller, exists, err := s.votes.GetByVoter(ctx, callerUserID, kind, subjectID, platform)
		if err != nil {
			return VoteResult{}, fmt.Errorf("get caller vote: %w", err)
		}
		if exists {
			out.Caller = &caller
		}
	}
	return out, nil
}
