package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
	qb "github.com/neatway/proclubs-stats-sub000/internal/platform/querybuilder"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s user.Session) error {
	insertModel := sessionInsertModel{
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt.UTC(),
	}
	query, args, err := qb.InsertModel("sessions", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (user.Session, bool, error) {
	query, args, err := qb.Select("*").
		From("sessions").
		Where(qb.Eq("token", token)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Session{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Session{}, false, nil
		}
		return user.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	return user.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query, args, err := qb.DeleteFrom("sessions").
		Where(qb.Eq("token", token)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("sessions").
		Where(qb.Expr("expires_at <= NOW()")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete expired sessions query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}

	return nil
}
