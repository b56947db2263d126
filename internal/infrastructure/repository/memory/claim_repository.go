package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/claim"
)

type ClaimRepository struct {
	mu     sync.RWMutex
	claims map[string]claim.Claim
}

func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{claims: make(map[string]claim.Claim)}
}

func (r *ClaimRepository) GetByUserID(_ context.Context, userID string) (claim.Claim, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.claims[userID]
	return item, ok, nil
}

func (r *ClaimRepository) GetByPersona(_ context.Context, platform, personaName string) (claim.Claim, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.claims {
		if item.Platform == platform && strings.EqualFold(item.PersonaName, personaName) {
			return item, true, nil
		}
	}
	return claim.Claim{}, false, nil
}

func (r *ClaimRepository) Create(_ context.Context, c claim.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.claims[c.UserID] = c
	return nil
}

func (r *ClaimRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.claims, userID)
	return nil
}
