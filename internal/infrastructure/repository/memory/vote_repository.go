package memory

import (
	"context"
	"sync"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/vote"
)

type VoteRepository struct {
	mu    sync.RWMutex
	votes map[string]vote.Vote
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{votes: make(map[string]vote.Vote)}
}

func voteKey(userID string, kind vote.SubjectKind, subjectID, platform string) string {
	return userID + "|" + string(kind) + "|" + subjectID + "|" + platform
}

func (r *VoteRepository) Upsert(_ context.Context, v vote.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey(v.UserID, v.SubjectKind, v.SubjectID, v.Platform)
	if existing, ok := r.votes[key]; ok {
		v.ID = existing.ID
		v.CreatedAt = existing.CreatedAt
	}
	r.votes[key] = v
	return nil
}

func (r *VoteRepository) GetByVoter(_ context.Context, userID string, kind vote.SubjectKind, subjectID, platform string) (vote.Vote, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.votes[voteKey(userID, kind, subjectID, platform)]
	return item, ok, nil
}

func (r *VoteRepository) Delete(_ context.Context, userID string, kind vote.SubjectKind, subjectID, platform string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.votes, voteKey(userID, kind, subjectID, platform))
	return nil
}

func (r *VoteRepository) Tally(_ context.Context, kind vote.SubjectKind, subjectID, platform string) (vote.Tally, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := vote.Tally{
		SubjectKind: kind,
		SubjectID:   subjectID,
		Platform:    platform,
	}
	for _, item := range r.votes {
		if item.SubjectKind != kind || item.SubjectID != subjectID || item.Platform != platform {
			continue
		}
		if item.Value == vote.ValueLike {
			out.Likes++
		} else {
			out.Dislikes++
		}
	}
	return out, nil
}
