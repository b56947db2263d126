package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Package querybuilder renders the small set of statements the postgres
// repositories issue. Fragments carry ? placeholders and arguments; a
// statement rewrites each ? to the next $n position as fragments are bound.

// Condition is a WHERE fragment with its bound arguments.
type Condition struct {
	fragment string
	args     []any
}

// Eq matches a column against a single value.
func Eq(column string, value any) Condition {
	return Condition{fragment: column + " = ?", args: []any{value}}
}

// Expr wraps a raw fragment, rewriting each ? to a positional placeholder.
func Expr(fragment string, args ...any) Condition {
	return Condition{fragment: fragment, args: args}
}

type statement struct {
	sql  strings.Builder
	args []any
}

func (st *statement) raw(s string) {
	st.sql.WriteString(s)
}

// bind appends a fragment, replacing each ? with the next $n placeholder
// and collecting the matching argument.
func (st *statement) bind(fragment string, args ...any) error {
	bound := 0
	for i := 0; i < len(fragment); i++ {
		ch := fragment[i]
		if ch != '?' {
			st.sql.WriteByte(ch)
			continue
		}
		if bound >= len(args) {
			return fmt.Errorf("fragment %q has more placeholders than arguments", fragment)
		}
		st.args = append(st.args, args[bound])
		bound++
		st.sql.WriteString("$" + strconv.Itoa(len(st.args)))
	}
	if bound != len(args) {
		return fmt.Errorf("fragment %q binds %d of %d arguments", fragment, bound, len(args))
	}
	return nil
}

func (st *statement) whereAll(conditions []Condition) error {
	for i, c := range conditions {
		if i == 0 {
			st.raw(" WHERE ")
		} else {
			st.raw(" AND ")
		}
		if err := st.bind(c.fragment, c.args...); err != nil {
			return err
		}
	}
	return nil
}

func (st *statement) render() (string, []any) {
	if st.args == nil {
		return st.sql.String(), []any{}
	}
	return st.sql.String(), st.args
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var st statement
	st.raw("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	if err := st.whereAll(b.where); err != nil {
		return "", nil, err
	}
	if len(b.orderBy) > 0 {
		st.raw(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		st.raw(" LIMIT " + strconv.Itoa(b.limit))
	}

	query, args := st.render()
	return query, args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	rowTemplate := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(b.columns)), ", ") + ")"

	var st statement
	st.raw("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			st.raw(", ")
		}
		if err := st.bind(rowTemplate, row...); err != nil {
			return "", nil, err
		}
	}
	if b.suffix != "" {
		st.raw(" " + b.suffix)
	}

	query, args := st.render()
	return query, args, nil
}

type UpdateBuilder struct {
	table string
	sets  []Condition
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, Eq(column, value))
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var st statement
	st.raw("UPDATE " + b.table + " SET ")
	for i, s := range b.sets {
		if i > 0 {
			st.raw(", ")
		}
		if err := st.bind(s.fragment, s.args...); err != nil {
			return "", nil, err
		}
	}
	if err := st.whereAll(b.where); err != nil {
		return "", nil, err
	}

	query, args := st.render()
	return query, args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires a where clause")
	}

	var st statement
	st.raw("DELETE FROM " + b.table)
	if err := st.whereAll(b.where); err != nil {
		return "", nil, err
	}

	query, args := st.render()
	return query, args, nil
}
