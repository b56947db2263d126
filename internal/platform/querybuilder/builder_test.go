package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "club_name").
		From("club_follows").
		Where(Eq("user_id", "u1")).
		OrderBy("created_at DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, club_name FROM club_follows WHERE user_id = $1 ORDER BY created_at DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_Expr(t *testing.T) {
	query, args, err := Select("id").
		From("votes").
		Where(
			Eq("platform", "common-gen5"),
			Expr("LOWER(subject_id) = LOWER(?)", "Club-9"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM votes WHERE platform = $1 AND LOWER(subject_id) = LOWER($2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "Club-9" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprArgMismatch(t *testing.T) {
	_, _, err := Select("id").
		From("votes").
		Where(Expr("subject_id = ? AND platform = ?", "club-9")).
		ToSQL()
	if err == nil {
		t.Fatal("expected error for unbound placeholder")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("sessions").
		Columns("token", "user_id").
		Values("tk1", "u1").
		Suffix("RETURNING token").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO sessions (token, user_id) VALUES ($1, $2) RETURNING token"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "tk1" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("sessions").
		Columns("token", "user_id").
		Values("tk1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		Set("console_name", "new-name").
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET console_name = $1 WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new-name" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("sessions").
		Where(Expr("expires_at <= NOW()")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM sessions WHERE expires_at <= NOW()"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
