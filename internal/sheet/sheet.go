// Package sheet reads and writes tabular files: CSV and XLSX.
//
// Writers export either a derived view (column titles and rendered cells) or
// raw records (field keys and values). Readers treat the first row as the
// header and turn every following row into a record.
package sheet

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// DefaultSheet names the worksheet written to XLSX files.
const DefaultSheet = "Sheet1"

// Reader errors.
var (
	ErrNoHeader        = errors.New("file has no header row")
	ErrDuplicateHeader = errors.New("duplicate header")
	ErrUnknownFormat   = errors.New("unknown file format")
)

// Format is a supported file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" and "xlsx" in any case, with or without a
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseCell converts a cell's text into a record value. Blank cells report
// false. Integers and decimals become numbers unless they carry a leading
// zero or sign-like prefix that the number would lose (phone numbers, codes).
func ParseCell(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if keepsText(s) {
		return s, true
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "eEnNiI") {
		return f, true
	}
	return s, true
}

// keepsText reports values that look numeric but must stay strings.
func keepsText(s string) bool {
	if s[0] == '+' {
		return true
	}
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

// rowsToRecords maps data rows onto header names. Cells beyond the header
// and columns with a blank header are ignored; rows with no values are
// dropped.
func rowsToRecords(rows [][]string) ([]types.Record, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(rows[0]))
	seen := make(map[string]bool, len(header))
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			continue
		}
		if seen[h] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, h)
		}
		seen[h] = true
		header[i] = h
	}
	if len(seen) == 0 {
		return nil, ErrNoHeader
	}

	out := make([]types.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := types.Record{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if v, ok := ParseCell(cell); ok {
				rec[header[i]] = v
			}
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// viewRows returns the header and rendered cells of a view export.
func viewRows(columns []tableview.Column, rows []tableview.Record) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, tableview.Headers(columns))
	return append(out, tableview.Cells(columns, rows)...)
}

// recordRows returns keys as the header and each record's raw values.
func recordRows(keys []string, records []types.Record) [][]string {
	out := make([][]string, 0, len(records)+1)
	out = append(out, keys)
	for _, r := range records {
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i], _ = tableview.Stringify(r[k])
		}
		out = append(out, row)
	}
	return out
}

// RecordKeys returns the union of field names across records, "id" first
// and the rest in first-seen order.
func RecordKeys(records []types.Record) []string {
	keys := []string{types.KeyField}
	seen := map[string]bool{types.KeyField: true}
	for _, r := range records {
		// Map order is random; sort each record's new keys for stable output.
		var fresh []string
		for k := range r {
			if !seen[k] {
				fresh = append(fresh, k)
			}
		}
		slices.Sort(fresh)
		for _, k := range fresh {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
