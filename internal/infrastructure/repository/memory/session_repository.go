package memory

import (
	"context"
	"sync"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]user.Session
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]user.Session),
		now:      time.Now,
	}
}

func (r *SessionRepository) Create(_ context.Context, s user.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.Token] = s
	return nil
}

func (r *SessionRepository) GetByToken(_ context.Context, token string) (user.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.sessions[token]
	return item, ok, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}

func (r *SessionRepository) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for token, item := range r.sessions {
		if item.Expired(now) {
			delete(r.sessions, token)
		}
	}
	return nil
}
