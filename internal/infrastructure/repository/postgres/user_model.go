package postgres

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID          string         `db:"id"`
	DiscordID   string         `db:"discord_id"`
	Username    string         `db:"username"`
	AvatarHash  sql.NullString `db:"avatar_hash"`
	ConsoleName sql.NullString `db:"console_name"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type userInsertModel struct {
	ID         string  `db:"id"`
	DiscordID  string  `db:"discord_id"`
	Username   string  `db:"username"`
	AvatarHash *string `db:"avatar_hash"`
}
