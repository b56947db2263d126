package claim

import (
	"fmt"
	"strings"
	"time"
)

// Claim asserts that a user owns a persona inside a club, verified by
// matching the user's console name against the club's member list.
type Claim struct {
	ID          string
	UserID      string
	Platform    string
	ClubID      string
	PersonaID   string
	PersonaName string
	CreatedAt   time.Time
}

func (c Claim) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("claim id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("claim user id is required")
	}
	if strings.TrimSpace(c.Platform) == "" {
		return fmt.Errorf("claim platform is required")
	}
	if strings.TrimSpace(c.ClubID) == "" {
		return fmt.Errorf("claim club id is required")
	}
	if strings.TrimSpace(c.PersonaName) == "" {
		return fmt.Errorf("claim persona name is required")
	}
	return nil
}
