package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loantrack/internal/importer"
	"github.com/mesh-intelligence/loantrack/internal/sheet"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func (a *app) newImportCmd() *cobra.Command {
	var (
		uploader    string
		template    bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "import <collection> <file>...",
		Short: "Import CSV or XLSX files into a collection",
		Long: `Import reads each file, stores every valid row and records an import
job per file in the imports collection. A file whose rows all fail, or
that cannot be read, is marked Failed.

With --template, writes an empty import file with the expected header
row instead: to the named file (format by extension), or as CSV to stdout.

Example:
  loantrack import beneficiaries beneficiaries_jan_2024.csv
  loantrack import loans --template loans_template.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			collection, files := args[0], args[1:]
			if a.settings.Role != types.RoleAdmin {
				return fmt.Errorf("%w: %s cannot import", ErrForbidden, a.settings.Role)
			}
			if template {
				return writeTemplate(cmd, collection, files)
			}
			if len(files) == 0 {
				return fmt.Errorf("import %s: no files given", collection)
			}

			backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer detach(backend, &err)

			im := importer.New(backend,
				importer.WithLogger(a.log),
				importer.WithUploader(uploader),
				importer.WithConcurrency(concurrency),
			)
			jobs, err := im.Import(cmd.Context(), collection, files...)
			if err != nil {
				if errors.Is(err, importer.ErrNotImportable) {
					return err
				}
				return tableErr("import", err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, jobs)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tSTATUS\tTOTAL\tOK\tERRORS\tMESSAGE")
			for _, j := range jobs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
					j.FileName, j.Status, j.TotalRecords, j.SuccessfulRecords, j.ErrorRecords, j.Message)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&uploader, "by", "Admin User", "name recorded as uploader")
	cmd.Flags().BoolVar(&template, "template", false, "write an empty import template instead of importing")
	cmd.Flags().IntVar(&concurrency, "concurrency", importer.DefaultConcurrency, "files processed in parallel")
	return cmd
}

// writeTemplate writes the collection's import header to files[0], or to
// stdout as CSV.
func writeTemplate(cmd *cobra.Command, collection string, files []string) error {
	if len(files) == 0 {
		return importer.WriteTemplate(cmd.OutOrStdout(), collection, sheet.FormatCSV)
	}
	if len(files) > 1 {
		return fmt.Errorf("--template takes one output file, got %d", len(files))
	}
	format, err := sheet.ParseFormat(filepath.Ext(files[0]))
	if err != nil {
		return err
	}
	if _, err := importer.Template(collection); err != nil {
		return err
	}
	f, err := os.Create(files[0])
	if err != nil {
		return sysErr("create template", err)
	}
	if err := importer.WriteTemplate(f, collection, format); err != nil {
		f.Close()
		return sysErr("write template", err)
	}
	if err := f.Close(); err != nil {
		return sysErr("write template", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s template to %s\n", collection, files[0])
	return nil
}
