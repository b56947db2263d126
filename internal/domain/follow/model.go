package follow

import (
	"fmt"
	"strings"
	"time"
)

// Follow marks a club a user wants on their dashboard. A user follows a
// club at most once per platform.
type Follow struct {
	ID        string
	UserID    string
	ClubID    string
	Platform  string
	ClubName  string
	CreatedAt time.Time
}

func (f Follow) Validate() error {
	if strings.TrimSpace(f.UserID) == "" {
		return fmt.Errorf("follow user id is required")
	}
	if strings.TrimSpace(f.ClubID) == "" {
		return fmt.Errorf("follow club id is required")
	}
	if strings.TrimSpace(f.Platform) == "" {
		return fmt.Errorf("follow platform is required")
	}
	return nil
}
