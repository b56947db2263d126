package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/vote"
	qb "github.com/neatway/proclubs-stats-sub000/internal/platform/querybuilder"
)

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Upsert(ctx context.Context, v vote.Vote) error {
	insertModel := voteInsertModel{
		ID:          v.ID,
		UserID:      v.UserID,
		SubjectKind: string(v.SubjectKind),
		SubjectID:   v.SubjectID,
		Platform:    v.Platform,
		Value:       string(v.Value),
	}

	query, args, err := qb.InsertModel("votes", insertModel, `ON CONFLICT (user_id, subject_kind, subject_id, platform)
DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert vote query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}

	return nil
}

func (r *VoteRepository) GetByVoter(ctx context.Context, userID string, kind vote.SubjectKind, subjectID, platform string) (vote.Vote, bool, error) {
	query, args, err := qb.Select("*").
		From("votes").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("subject_kind", string(kind)),
			qb.Eq("subject_id", subjectID),
			qb.Eq("platform", platform),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return vote.Vote{}, false, fmt.Errorf("build get vote query: %w", err)
	}

	var row voteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return vote.Vote{}, false, nil
		}
		return vote.Vote{}, false, fmt.Errorf("get vote: %w", err)
	}

	return voteFromRow(row), true, nil
}

func (r *VoteRepository) Delete(ctx context.Context, userID string, kind vote.SubjectKind, subjectID, platform string) error {
	query, args, err := qb.DeleteFrom("votes").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("subject_kind", string(kind)),
			qb.Eq("subject_id", subjectID),
			qb.Eq("platform", platform),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete vote query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}

	return nil
}

func (r *VoteRepository) Tally(ctx context.Context, kind vote.SubjectKind, subjectID, platform string) (vote.Tally, error) {
	query, args, err := qb.Select(
		"COALESCE(SUM(CASE WHEN value = 'like' THEN 1 ELSE 0 END), 0) AS likes",
		"COALESCE(SUM(CASE WHEN value = 'dislike' THEN 1 ELSE 0 END), 0) AS dislikes",
	).From("votes").
		Where(
			qb.Eq("subject_kind", string(kind)),
			qb.Eq("subject_id", subjectID),
			qb.Eq("platform", platform),
		).
		ToSQL()
	if err != nil {
		return vote.Tally{}, fmt.Errorf("build tally votes query: %w", err)
	}

	var row voteTallyRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return vote.Tally{}, fmt.Errorf("tally votes: %w", err)
	}

	return vote.Tally{
		SubjectKind: kind,
		SubjectID:   subjectID,
		Platform:    platform,
		Likes:       row.Likes,
		Dislikes:    row.Dislikes,
	}, nil
}

func voteFromRow(row voteTableModel) vote.Vote {
	return vote.Vote{
		ID:          row.ID,
		UserID:      row.UserID,
		SubjectKind: vote.SubjectKind(row.SubjectKind),
		SubjectID:   row.SubjectID,
		Platform:    row.Platform,
		Value:       vote.Value(row.Value),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
