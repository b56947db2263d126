package follow

import "context"

type Repository interface {
	Create(ctx context.Context, f Follow) error
	Delete(ctx context.Context, userID, clubID, platform string) error
	ListByUser(ctx context.Context, userID string) ([]Follow, error)
	// ListDistinctClubs returns every (clubID, platform) pair followed by
	// at least one user, for cache warming.
	ListDistinctClubs(ctx context.Context) ([]Follow, error)
}
