package claim

import "context"

// Repository describes claim persistence needs from use cases.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Claim, bool, error)
	GetByPersona(ctx context.Context, platform, personaName string) (Claim, bool, error)
	Create(ctx context.Context, c Claim) error
	DeleteByUserID(ctx context.Context, userID string) error
}
