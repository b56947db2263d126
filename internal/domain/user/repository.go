package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByDiscordID(ctx context.Context, discordID string) (User, bool, error)
	Upsert(ctx context.Context, u User) error
	SetConsoleName(ctx context.Context, userID, consoleName string) error
}

// SessionRepository stores login sessions keyed by bearer token.
type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	GetByToken(ctx context.Context, token string) (Session, bool, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
