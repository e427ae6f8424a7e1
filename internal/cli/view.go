package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/loantrack/internal/browse"
	"github.com/mesh-intelligence/loantrack/internal/catalog"
	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// viewFlags are the view-state flags shared by view and export.
type viewFlags struct {
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
	selected []string
	where    []string
}

func (f *viewFlags) register(fs *pflag.FlagSet, paging bool) {
	fs.StringVar(&f.search, "search", "", "case-insensitive search across all fields")
	fs.StringVar(&f.sort, "sort", "", "sort by column key")
	fs.BoolVar(&f.desc, "desc", false, "sort descending")
	fs.StringArrayVar(&f.where, "where", nil, "filter by field equality, key=value (repeatable)")
	if paging {
		fs.IntVar(&f.page, "page", 1, "page number, clamped into range")
		fs.IntVar(&f.pageSize, "page-size", 0, "rows per page (default: from config)")
		fs.StringSliceVar(&f.selected, "select", nil, "mark rows selected by id (comma-separated)")
	}
}

// derived is the result of applying view flags to a collection.
type derived struct {
	collection string
	view       tableview.View
	keyField   string             // empty when the collection is not selectable
	selected   []tableview.Record // in base order
}

// derive fetches the collection and applies the view flags. When all is
// true the whole filtered set is returned as one page.
func (a *app) derive(collection string, f viewFlags, all bool) (d derived, err error) {
	if err := a.checkAccess(collection); err != nil {
		return derived{}, err
	}
	columns, err := catalog.Columns(collection)
	if err != nil {
		return derived{}, err
	}
	opts := catalog.Options(collection)
	// A collection with its own page size keeps it unless --page-size is set.
	if opts.PageSize == tableview.DefaultPageSize {
		opts.PageSize = a.settings.PageSize
	}
	if f.pageSize != 0 {
		opts.PageSize = f.pageSize
	}
	opts.Selection = a.settings.Selection

	filter, err := parseWhere(f.where)
	if err != nil {
		return derived{}, err
	}

	backend, err := a.openStore()
	if err != nil {
		return derived{}, err
	}
	defer detach(backend, &err)

	tbl, err := collectionTable(backend, collection)
	if err != nil {
		return derived{}, err
	}
	records, err := tbl.Fetch(filter)
	if err != nil {
		return derived{}, tableErr("fetch", err)
	}

	state := tableview.ViewState{
		Search:  f.search,
		SortKey: f.sort,
		Page:    f.page,
	}
	if f.desc {
		state.SortDir = tableview.Descending
	}
	if len(f.selected) > 0 {
		if !opts.Selectable {
			return derived{}, fmt.Errorf("--select: %w", tableview.ErrNotSelectable)
		}
		state.Selected = tableview.NewSelection(f.selected...)
	}
	if all {
		opts.PageSize = max(len(records), 1)
		state.Page = 1
	}

	view, err := tableview.Derive(records, columns, state, opts)
	if err != nil {
		return derived{}, err
	}
	d = derived{collection: collection, view: view}
	if opts.Selectable {
		d.keyField = opts.KeyField
		d.selected = state.Selected.Retain(records, opts.KeyField).Rows(records, opts.KeyField)
	}
	return d, nil
}

func (a *app) newViewCmd() *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "view <collection>",
		Short: "Show one page of a collection",
		Long: `View searches, sorts and paginates a collection and prints one page.
On a terminal the page is drawn as a table; otherwise rows are printed
tab-separated. --json prints the rows and paging details as JSON.

Valid collections: ` + validTableNamesStr + `

Example:
  loantrack view loans --sort amount --desc
  loantrack view submissions --search sewing --page 2
  loantrack view beneficiaries --where status=Active --select BEN-2024-5678`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.derive(args[0], f, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, viewJSON(d))
			}
			if isTerminal(out) {
				return printStyled(out, d)
			}
			return printPlain(out, d)
		},
	}
	f.register(cmd.Flags(), true)
	return cmd
}

// viewOutput is the JSON form of a derived view.
type viewOutput struct {
	Collection string             `json:"collection"`
	Search     string             `json:"search,omitempty"`
	SortKey    string             `json:"sortKey,omitempty"`
	SortDir    string             `json:"sortDir,omitempty"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
	TotalRows  int                `json:"totalRows"`
	From       int                `json:"from"`
	To         int                `json:"to"`
	Rows       []tableview.Record `json:"rows"`
	Selected   []string           `json:"selected,omitempty"`
}

func viewJSON(d derived) viewOutput {
	v := d.view
	out := viewOutput{
		Collection: d.collection,
		SortKey:    v.SortKey,
		Page:       v.Page.Page,
		PageSize:   v.Page.PageSize,
		TotalPages: v.Page.TotalPages,
		TotalRows:  v.Page.TotalRows,
		From:       v.Page.From,
		To:         v.Page.To,
		Rows:       v.Rows,
		Selected:   v.Selection.Keys,
	}
	if v.SortKey != "" {
		out.SortDir = v.SortDir.String()
	}
	return out
}

// footer describes the page position and selection.
func footer(d derived) string {
	p := d.view.Page
	s := p.String()
	if p.TotalPages > 1 {
		s += fmt.Sprintf(" (page %d of %d)", p.Page, p.TotalPages)
	}
	if len(d.selected) > 0 {
		s += fmt.Sprintf(", %d selected: %s", len(d.selected), strings.Join(recordIDs(d.selected), ", "))
	}
	return s
}

func printStyled(w io.Writer, d derived) error {
	styles := browse.DefaultStyles()
	fmt.Fprintln(w, browse.RenderTable(d.view, -1, d.keyField, styles))
	_, err := fmt.Fprintln(w, styles.Muted.Render(footer(d)))
	return err
}

func printPlain(w io.Writer, d derived) error {
	fmt.Fprintln(w, strings.Join(tableview.Headers(d.view.Columns), "\t"))
	for _, row := range d.view.Cells() {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if d.view.Empty() {
		fmt.Fprintln(w, d.view.EmptyMessage)
	}
	_, err := fmt.Fprintln(w, footer(d))
	return err
}

// recordIDs returns the identities of records.
func recordIDs(records []types.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID()
	}
	return ids
}
