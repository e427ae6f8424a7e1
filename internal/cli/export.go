package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loantrack/internal/catalog"
	"github.com/mesh-intelligence/loantrack/internal/sheet"
)

// ErrNotExportable is returned for collections whose view has no export.
var ErrNotExportable = errors.New("collection cannot be exported")

func (a *app) newExportCmd() *cobra.Command {
	var (
		f      viewFlags
		format string
		raw    bool
	)
	cmd := &cobra.Command{
		Use:   "export <collection> <file>",
		Short: "Export a searched and sorted collection to CSV or XLSX",
		Long: `Export writes every row matching --search and --where, in --sort
order, to a file. Cells are written as displayed unless --raw is given, in
which case field keys and stored values are written. The format follows
the file extension unless --format is set. Use "-" to write CSV to stdout.

Example:
  loantrack export loans loans.xlsx --sort amount --desc
  loantrack export submissions - --where status=flagged --raw`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, path := args[0], args[1]
			if err := a.checkAccess(collection); err != nil {
				return err
			}
			if !catalog.Options(collection).Exportable {
				return fmt.Errorf("%w: %s", ErrNotExportable, collection)
			}

			fmtName := format
			if fmtName == "" {
				fmtName = filepath.Ext(path)
			}
			if path == "-" && format == "" {
				fmtName = string(sheet.FormatCSV)
			}
			fileFormat, err := sheet.ParseFormat(fmtName)
			if err != nil {
				return err
			}

			d, err := a.derive(collection, f, true)
			if err != nil {
				return err
			}

			if path == "-" {
				return writeExport(cmd.OutOrStdout(), d, fileFormat, raw)
			}
			out, err := os.Create(path)
			if err != nil {
				return sysErr("create export file", err)
			}
			if err := writeExport(out, d, fileFormat, raw); err != nil {
				out.Close()
				return sysErr("write export", err)
			}
			if err := out.Close(); err != nil {
				return sysErr("write export", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", len(d.view.Rows), collection, path)
			return nil
		},
	}
	f.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&format, "format", "", "csv or xlsx (default: from file extension)")
	cmd.Flags().BoolVar(&raw, "raw", false, "write field keys and stored values instead of displayed cells")
	return cmd
}

func writeExport(w io.Writer, d derived, format sheet.Format, raw bool) error {
	switch {
	case format == sheet.FormatXLSX && raw:
		return sheet.WriteRecordsXLSX(w, d.collection, nil, d.view.Rows)
	case format == sheet.FormatXLSX:
		return sheet.WriteXLSX(w, d.collection, d.view.Columns, d.view.Rows)
	case raw:
		return sheet.WriteRecordsCSV(w, nil, d.view.Rows)
	default:
		return sheet.WriteCSV(w, d.view.Columns, d.view.Rows)
	}
}
