package postgres

import (
	"database/sql"
	"time"
)

type claimTableModel struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Platform    string         `db:"platform"`
	ClubID      string         `db:"club_id"`
	PersonaID   sql.NullString `db:"persona_id"`
	PersonaName string         `db:"persona_name"`
	CreatedAt   time.Time      `db:"created_at"`
}

type claimInsertModel struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	Platform    string  `db:"platform"`
	ClubID      string  `db:"club_id"`
	PersonaID   *string `db:"persona_id"`
	PersonaName string  `db:"persona_name"`
}
