package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/follow"
)

type FollowRepository struct {
	mu      sync.RWMutex
	follows map[string]follow.Follow
}

func NewFollowRepository() *FollowRepository {
	return &FollowRepository{follows: make(map[string]follow.Follow)}
}

func followKey(userID, clubID, platform string) string {
	return userID + "|" + clubID + "|" + platform
}

func (r *FollowRepository) Create(_ context.Context, f follow.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey(f.UserID, f.ClubID, f.Platform)
	if existing, ok := r.follows[key]; ok {
		f.ID = existing.ID
		f.CreatedAt = existing.CreatedAt
	}
	r.follows[key] = f
	return nil
}

func (r *FollowRepository) Delete(_ context.Context, userID, clubID, platform string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.follows, followKey(userID, clubID, platform))
	return nil
}

func (r *FollowRepository) ListByUser(_ context.Context, userID string) ([]follow.Follow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]follow.Follow, 0, 4)
	for _, item := range r.follows {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out, nil
}

func (r *FollowRepository) ListDistinctClubs(_ context.Context) ([]follow.Follow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.follows))
	out := make([]follow.Follow, 0, len(r.follows))
	for _, item := range r.follows {
		key := item.ClubID + "|" + item.Platform
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, follow.Follow{ClubID: item.ClubID, Platform: item.Platform, ClubName: item.ClubName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out, nil
}
