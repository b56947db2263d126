package vote

import "context"

type Repository interface {
	// Upsert inserts the vote or replaces the caller's previous vote on
	// the same subject and platform.
	Upsert(ctx context.Context, v Vote) error
	GetByVoter(ctx context.Context, userID string, kind SubjectKind, subjectID, platform string) (Vote, bool, error)
	Delete(ctx context.Context, userID string, kind SubjectKind, subjectID, platform string) error
	Tally(ctx context.Context, kind SubjectKind, subjectID, platform string) (Tally, error)
}
