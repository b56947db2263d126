package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
	qb "github.com/neatway/proclubs-stats-sub000/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select("*").
		From("users").
		Where(qb.Eq("id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by id query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID string) (user.User, bool, error) {
	query, args, err := qb.Select("*").
		From("users").
		Where(qb.Eq("discord_id", discordID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by discord id query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by discord id: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) Upsert(ctx context.Context, u user.User) error {
	insertModel := userInsertModel{
		ID:         strings.TrimSpace(u.ID),
		DiscordID:  strings.TrimSpace(u.DiscordID),
		Username:   strings.TrimSpace(u.Username),
		AvatarHash: optionalString(u.AvatarHash),
	}

	query, args, err := qb.InsertModel("users", insertModel, `ON CONFLICT (discord_id)
DO UPDATE SET
    username = EXCLUDED.username,
    avatar_hash = EXCLUDED.avatar_hash,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

func (r *UserRepository) SetConsoleName(ctx context.Context, userID, consoleName string) error {
	query, args, err := qb.Update("users").
		Set("console_name", strings.TrimSpace(consoleName)).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set console name query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set console name: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set console name: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set console name: user not found")
	}

	return nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:          row.ID,
		DiscordID:   row.DiscordID,
		Username:    row.Username,
		AvatarHash:  strings.TrimSpace(row.AvatarHash.String),
		ConsoleName: strings.TrimSpace(row.ConsoleName.String),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
