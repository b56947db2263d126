package usecase

import (
	"context"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/club"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/match"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/member"
)

// ClubProvider is the upstream stats surface for club-scoped queries.
type ClubProvider interface {
	ClubInfo(ctx context.Context, platform, clubID string) (*club.Info, error)
	ClubStats(ctx context.Context, platform, clubID string) (*club.Stats, error)
	ClubMembers(ctx context.Context, platform, clubID string) ([]member.Member, error)
	ClubMatches(ctx context.Context, platform, clubID, matchType string) ([]match.Match, error)
	SearchClubs(ctx context.Context, platform, name string) ([]club.Info, error)
}

// PlayerProvider is the upstream stats surface for persona-scoped
// queries. Both operations walk candidate endpoints upstream.
type PlayerProvider interface {
	SearchPlayers(ctx context.Context, platform, name string) ([]member.Member, error)
	PlayerCareer(ctx context.Context, platform, personaID string) (*member.Member, error)
}

// OAuthIdentity is the provider-side identity used to build a local
// account after login.
type OAuthIdentity struct {
	ProviderUserID string
	Username       string
	AvatarHash     string
}

// OAuthProvider handles the login redirect and the code exchange.
type OAuthProvider interface {
	AuthorizeURL(state string) string
	Authenticate(ctx context.Context, code string) (OAuthIdentity, error)
}
