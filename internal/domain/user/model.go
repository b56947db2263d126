package user

import (
	"fmt"
	"strings"
	"time"
)

// User is a Discord-authenticated account.
type User struct {
	ID          string
	DiscordID   string
	Username    string
	AvatarHash  string
	ConsoleName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.DiscordID) == "" {
		return fmt.Errorf("user discord id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("user username is required")
	}
	return nil
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID      string
	DiscordID   string
	Username    string
	ConsoleName string
}

// Session is a bearer-token login issued after the OAuth callback.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now)
}
