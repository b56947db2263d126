package postgres

import (
	"database/sql"
	"time"
)

type followTableModel struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	ClubID    string         `db:"club_id"`
	Platform  string         `db:"platform"`
	ClubName  sql.NullString `db:"club_name"`
	CreatedAt time.Time      `db:"created_at"`
}

type followInsertModel struct {
	ID       string  `db:"id"`
	UserID   string  `db:"user_id"`
	ClubID   string  `db:"club_id"`
	Platform string  `db:"platform"`
	ClubName *string `db:"club_name"`
}
