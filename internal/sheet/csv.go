package sheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// WriteCSV writes a view export: column titles, then one rendered row per
// record.
func WriteCSV(w io.Writer, columns []tableview.Column, rows []tableview.Record) error {
	return writeCSV(w, viewRows(columns, rows))
}

// WriteRecordsCSV writes raw records with keys as the header. A nil keys
// slice uses RecordKeys(records).
func WriteRecordsCSV(w io.Writer, keys []string, records []types.Record) error {
	if keys == nil {
		keys = RecordKeys(records)
	}
	return writeCSV(w, recordRows(keys, records))
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// ReadCSV reads records from CSV. Rows may be shorter or longer than the
// header.
func ReadCSV(r io.Reader) ([]types.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rowsToRecords(rows)
}
