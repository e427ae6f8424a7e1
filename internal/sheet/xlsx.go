package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// WriteXLSX writes a view export as a workbook with one worksheet named
// sheet (DefaultSheet when empty). The header row is bold.
func WriteXLSX(w io.Writer, sheet string, columns []tableview.Column, rows []tableview.Record) error {
	return writeXLSX(w, sheet, viewRows(columns, rows))
}

// WriteRecordsXLSX writes raw records with keys as the header. A nil keys
// slice uses RecordKeys(records).
func WriteRecordsXLSX(w io.Writer, sheet string, keys []string, records []types.Record) error {
	if keys == nil {
		keys = RecordKeys(records)
	}
	return writeXLSX(w, sheet, recordRows(keys, records))
}

func writeXLSX(w io.Writer, sheet string, rows [][]string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

// ReadXLSX reads records from the named worksheet, or from the first
// worksheet when sheet is empty.
func ReadXLSX(r io.Reader, sheet string) ([]types.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rowsToRecords(rows)
}
