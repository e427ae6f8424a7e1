package tableview

import (
	"fmt"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// Record is one row handed to the engine.
type Record = types.Record

// RenderFunc turns a field value into display text. row is the whole record
// so computed columns can combine fields.
type RenderFunc func(value any, row Record) string

// Column describes how one field is displayed, sorted and filtered. Key may
// name a field or a synthetic key for computed or action columns.
type Column struct {
	Key        string
	Title      string
	Render     RenderFunc
	Sortable   bool
	Filterable bool
	Width      int
}

// Cell returns the display text of this column for row.
func (c Column) Cell(row Record) string {
	v := row[c.Key]
	if c.Render != nil {
		return c.Render(v, row)
	}
	s, ok := Stringify(v)
	if !ok {
		return ""
	}
	return s
}

// findColumn returns the column with the given key.
func findColumn(columns []Column, key string) (Column, error) {
	for _, c := range columns {
		if c.Key == key {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
}

// validateColumns rejects duplicate keys.
func validateColumns(columns []Column) error {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Key] {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// Headers returns the column titles in order.
func Headers(columns []Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Title
	}
	return out
}

// Cells renders rows through columns, one string slice per row.
func Cells(columns []Column, rows []Record) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j, c := range columns {
			cells[j] = c.Cell(row)
		}
		out[i] = cells
	}
	return out
}
