package tableview

import (
	"fmt"
	"slices"
	"strings"
)

// Direction is the sort order of a column.
type Direction int

// Sort directions.
const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q", s)
	}
}

// Sort returns a copy of records ordered by the raw value of the column
// named key. The sort is stable, so ties keep their input order. Descending
// flips the comparator, which also moves absent values to the end. An empty
// key returns records unchanged.
//
// Returns ErrUnknownColumn if key names no column and ErrNotSortable if the
// column does not allow sorting.
func Sort(records []Record, columns []Column, key string, dir Direction) ([]Record, error) {
	if key == "" {
		return records, nil
	}
	col, err := findColumn(columns, key)
	if err != nil {
		return nil, err
	}
	if !col.Sortable {
		return nil, fmt.Errorf("%w: %q", ErrNotSortable, key)
	}

	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		c := Compare(a[key], b[key])
		if dir == Descending {
			return -c
		}
		return c
	})
	return out, nil
}
