package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.users[userID]
	return item, ok, nil
}

func (r *UserRepository) GetByDiscordID(_ context.Context, discordID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.users {
		if item.DiscordID == discordID {
			return item, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) Upsert(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) SetConsoleName(_ context.Context, userID, consoleName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.users[userID]
	if !ok {
		return nil
	}
	item.ConsoleName = strings.TrimSpace(consoleName)
	r.users[userID] = item
	return nil
}
