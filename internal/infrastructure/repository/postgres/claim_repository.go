package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/claim"
	qb "github.com/neatway/proclubs-stats-sub000/internal/platform/querybuilder"
)

type ClaimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) GetByUserID(ctx context.Context, userID string) (claim.Claim, bool, error) {
	query, args, err := qb.Select("*").
		From("persona_claims").
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return claim.Claim{}, false, fmt.Errorf("build get claim by user query: %w", err)
	}

	var row claimTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return claim.Claim{}, false, nil
		}
		return claim.Claim{}, false, fmt.Errorf("get claim by user: %w", err)
	}

	return claimFromRow(row), true, nil
}

func (r *ClaimRepository) GetByPersona(ctx context.Context, platform, personaName string) (claim.Claim, bool, error) {
	query, args, err := qb.Select("*").
		From("persona_claims").
		Where(
			qb.Eq("platform", platform),
			qb.Expr("LOWER(persona_name) = LOWER(?)", personaName),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return claim.Claim{}, false, fmt.Errorf("build get claim by persona query: %w", err)
	}

	var row claimTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return claim.Claim{}, false, nil
		}
		return claim.Claim{}, false, fmt.Errorf("get claim by persona: %w", err)
	}

	return claimFromRow(row), true, nil
}

func (r *ClaimRepository) Create(ctx context.Context, c claim.Claim) error {
	insertModel := claimInsertModel{
		ID:          strings.TrimSpace(c.ID),
		UserID:      strings.TrimSpace(c.UserID),
		Platform:    strings.TrimSpace(c.Platform),
		ClubID:      strings.TrimSpace(c.ClubID),
		PersonaID:   optionalString(c.PersonaID),
		PersonaName: strings.TrimSpace(c.PersonaName),
	}
	query, args, err := qb.InsertModel("persona_claims", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create claim query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create claim: %w", err)
	}

	return nil
}

func (r *ClaimRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query, args, err := qb.DeleteFrom("persona_claims").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete claim query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}

	return nil
}

func claimFromRow(row claimTableModel) claim.Claim {
	return claim.Claim{
		ID:          row.ID,
		UserID:      row.UserID,
		Platform:    row.Platform,
		ClubID:      row.ClubID,
		PersonaID:   strings.TrimSpace(row.PersonaID.String),
		PersonaName: row.PersonaName,
		CreatedAt:   row.CreatedAt,
	}
}
