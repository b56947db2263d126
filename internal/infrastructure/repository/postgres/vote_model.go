package postgres

import "time"

type voteTableModel struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	SubjectKind string    `db:"subject_kind"`
	SubjectID   string    `db:"subject_id"`
	Platform    string    `db:"platform"`
	Value       string    `db:"value"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type voteInsertModel struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	SubjectKind string `db:"subject_kind"`
	SubjectID   string `db:"subject_id"`
	Platform    string `db:"platform"`
	Value       string `db:"value"`
}

type voteTallyRow struct {
	Likes    int `db:"likes"`
	Dislikes int `db:"dislikes"`
}
