package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// statement accumulates SQL text and the positional args bound into it.
// Placeholders are numbered by bind order, so $n is always len(args).
type statement struct {
	buf  strings.Builder
	args []any
}

func (s *statement) raw(parts ...string) {
	for _, p := range parts {
		s.buf.WriteString(p)
	}
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.buf.WriteString("$")
	s.buf.WriteString(strconv.Itoa(len(s.args)))
}

// expr writes sql, binding one arg per '?' marker. Extra markers stay literal.
func (s *statement) expr(sql string, args []any) {
	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && next < len(args) {
			s.bind(args[next])
			next++
			continue
		}
		s.buf.WriteByte(sql[i])
	}
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.raw(" WHERE ")
		} else {
			s.raw(" AND ")
		}
		c.write(s)
	}
}

func (s *statement) suffix(sql string) {
	if sql != "" {
		s.raw(" ", sql)
	}
}

func (s *statement) build() (string, []any, error) {
	return s.buf.String(), s.args, nil
}

type Condition interface {
	write(s *statement)
}

type conditionFunc func(s *statement)

func (f conditionFunc) write(s *statement) { f(s) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(s *statement) {
		s.raw(column, " = ")
		s.bind(value)
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(s *statement) {
		s.raw(column, " IS NULL")
	})
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

	var s statement
	s.raw("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.where)
	if len(b.orderBy) > 0 {
		s.raw(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.raw(" LIMIT ", strconv.Itoa(b.limit))
	}
	return s.build()
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

// Suffix appends a trailing clause such as ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var s statement
	s.raw("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			s.raw(", ")
		}
		s.raw("(")
		for j, value := range row {
			if j > 0 {
				s.raw(", ")
			}
			s.bind(value)
		}
		s.raw(")")
	}
	s.suffix(b.suffix)
	return s.build()
}

type assignment struct {
	column string
	value  any
	sql    string
	isExpr bool
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression; '?' markers bind args.
func (b *UpdateBuilder) SetExpr(column, sql string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: args, sql: sql, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var s statement
	s.raw("UPDATE ", b.table, " SET ")
	for i, a := range b.sets {
		if i > 0 {
			s.raw(", ")
		}
		s.raw(a.column, " = ")
		if a.isExpr {
			args, _ := a.value.([]any)
			s.expr(a.sql, args)
			continue
		}
		s.bind(a.value)
	}
	s.where(b.where)
	s.suffix(b.suffix)
	return s.build()
}
