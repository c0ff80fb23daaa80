// Package dataset provides the in-memory tabular data model: an ordered
// table of named, typed columns that can be edited cell by cell and row by
// row. Tables are loaded from CSV files (see Loader) and re-evaluated by the
// expectation runner after every edit.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the inferred scalar type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// String returns a short name for the kind, matching DuckDB's naming.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "BIGINT"
	case KindFloat:
		return "DOUBLE"
	case KindBool:
		return "BOOLEAN"
	default:
		return "VARCHAR"
	}
}

// Column is a read-only view of a single table column handed to checks.
// Values hold int64, float64, bool, string or nil (null).
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// Table is an ordered collection of named columns with typed rows.
// It is owned by a single session and is not safe for concurrent mutation.
type Table struct {
	cols  []string
	kinds []Kind
	rows  [][]any
}

// New creates an empty table with the given column names and kinds.
// kinds may be nil, in which case every column defaults to KindString.
func New(cols []string, kinds []Kind) *Table {
	if kinds == nil {
		kinds = make([]Kind, len(cols))
	}
	return &Table{
		cols:  append([]string(nil), cols...),
		kinds: append([]Kind(nil), kinds...),
	}
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.cols {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Column returns a view of the named column.
func (t *Table) Column(name string) (Column, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	values := make([]any, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return Column{Name: name, Kind: t.kinds[idx], Values: values}, nil
}

// Cell returns the value at the given row and column index.
func (t *Table) Cell(row, col int) (any, error) {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.cols) {
		return nil, fmt.Errorf("cell out of range: row %d, col %d", row, col)
	}
	return t.rows[row][col], nil
}

// AppendRawRow appends a pre-typed row. The row length must match the column
// count. Used by the loader when scanning query results.
func (t *Table) AppendRawRow(row []any) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.cols))
	}
	t.rows = append(t.rows, append([]any(nil), row...))
	return nil
}

// AppendRow appends an all-null row, mirroring the editor's "add row" action.
func (t *Table) AppendRow() {
	t.rows = append(t.rows, make([]any, len(t.cols)))
}

// DeleteRow removes the row at the given index.
func (t *Table) DeleteRow(i int) error {
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row %d out of range (%d rows)", i, len(t.rows))
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// SetCell parses a raw edit and stores it at (row, column). The raw string is
// coerced against the column's inferred kind; an empty string becomes null.
// Values that do not parse as the column kind are kept as strings, the same
// best-effort stance the argument coercion takes.
func (t *Table) SetCell(row int, column string, raw string) error {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d out of range (%d rows)", row, len(t.rows))
	}
	t.rows[row][idx] = ParseCell(raw, t.kinds[idx])
	return nil
}

// ParseCell converts a raw string edit into a typed cell value for a column
// of the given kind. Empty input is null.
func ParseCell(raw string, kind Kind) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	switch kind {
	case KindInt:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case KindBool:
		switch strings.ToLower(raw) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return raw
}

// FormatCell renders a cell value for display. Null renders as the empty
// string so edited-away cells look blank in both UIs.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Clone returns a deep copy of the table. Rows hold scalars only, so a
// per-row copy is sufficient.
func (t *Table) Clone() *Table {
	c := New(t.cols, t.kinds)
	c.rows = make([][]any, len(t.rows))
	for i, row := range t.rows {
		c.rows[i] = append([]any(nil), row...)
	}
	return c
}

// Rows returns all rows rendered as display strings, in column order.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		r := make([]string, len(row))
		for j, v := range row {
			r[j] = FormatCell(v)
		}
		out[i] = r
	}
	return out
}
