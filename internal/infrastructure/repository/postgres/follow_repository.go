package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/follow"
	qb "github.com/neatway/proclubs-stats-sub000/internal/platform/querybuilder"
)

type FollowRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create is idempotent: re-following the same club keeps the original
// row and refreshes the stored club name.
func (r *FollowRepository) Create(ctx context.Context, f follow.Follow) error {
	insertModel := followInsertModel{
		ID:       f.ID,
		UserID:   f.UserID,
		ClubID:   f.ClubID,
		Platform: f.Platform,
		ClubName: optionalString(f.ClubName),
	}

	query, args, err := qb.InsertModel("club_follows", insertModel, `ON CONFLICT (user_id, club_id, platform)
DO UPDATE SET
    club_name = EXCLUDED.club_name`)
	if err != nil {
		return fmt.Errorf("build create follow query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create follow: %w", err)
	}

	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, userID, clubID, platform string) error {
	query, args, err := qb.DeleteFrom("club_follows").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("club_id", clubID),
			qb.Eq("platform", platform),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete follow query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}

	return nil
}

func (r *FollowRepository) ListByUser(ctx context.Context, userID string) ([]follow.Follow, error) {
	query, args, err := qb.Select("*").
		From("club_follows").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "club_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list follows query: %w", err)
	}

	var rows []followTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}

	out := make([]follow.Follow, 0, len(rows))
	for _, row := range rows {
		out = append(out, followFromRow(row))
	}
	return out, nil
}

func (r *FollowRepository) ListDistinctClubs(ctx context.Context) ([]follow.Follow, error) {
	query, args, err := qb.Select("DISTINCT ON (club_id, platform) club_id", "platform", "club_name").
		From("club_follows").
		OrderBy("club_id", "platform").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list distinct followed clubs query: %w", err)
	}

	var rows []struct {
		ClubID   string         `db:"club_id"`
		Platform string         `db:"platform"`
		ClubName sql.NullString `db:"club_name"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list distinct followed clubs: %w", err)
	}

	out := make([]follow.Follow, 0, len(rows))
	for _, row := range rows {
		out = append(out, follow.Follow{
			ClubID:   row.ClubID,
			Platform: row.Platform,
			ClubName: strings.TrimSpace(row.ClubName.String),
		})
	}
	return out, nil
}

func followFromRow(row followTableModel) follow.Follow {
	return follow.Follow{
		ID:        row.ID,
		UserID:    row.UserID,
		ClubID:    row.ClubID,
		Platform:  row.Platform,
		ClubName:  strings.TrimSpace(row.ClubName.String),
		CreatedAt: row.CreatedAt,
	}
}
