package vote

import (
	"fmt"
	"strings"
	"time"
)

type SubjectKind string

const (
	SubjectClub   SubjectKind = "club"
	SubjectPlayer SubjectKind = "player"
)

type Value string

const (
	ValueLike    Value = "like"
	ValueDislike Value = "dislike"
)

// Vote is one user's like/dislike of a club or player. The storage
// layer enforces at-most-one vote per (kind, subject, platform, user).
type Vote struct {
	ID          string
	UserID      string
	SubjectKind SubjectKind
	SubjectID   string
	Platform    string
	Value       Value
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tally is an aggregate count for one subject.
type Tally struct {
	SubjectKind SubjectKind
	SubjectID   string
	Platform    string
	Likes       int
	Dislikes    int
}

func (v Vote) Validate() error {
	if strings.TrimSpace(v.UserID) == "" {
		return fmt.Errorf("vote user id is required")
	}
	if v.SubjectKind != SubjectClub && v.SubjectKind != SubjectPlayer {
		return fmt.Errorf("invalid vote subject kind: %s", v.SubjectKind)
	}
	if strings.TrimSpace(v.SubjectID) == "" {
		return fmt.Errorf("vote subject id is required")
	}
	if strings.TrimSpace(v.Platform) == "" {
		return fmt.Errorf("vote platform is required")
	}
	if v.Value != ValueLike && v.Value != ValueDislike {
		return fmt.Errorf("invalid vote value: %s", v.Value)
	}
	return nil
}
