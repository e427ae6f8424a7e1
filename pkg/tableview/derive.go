package tableview

import "github.com/mesh-intelligence/loantrack/pkg/types"

// DefaultEmptyMessage is shown when the derived view has no rows.
const DefaultEmptyMessage = "No data available"

// Options configures a table. Start from DefaultOptions and override fields.
type Options struct {
	Selectable   bool // row checkboxes and bulk actions
	Searchable   bool // search box
	Filterable   bool // filter affordance
	Exportable   bool // export action
	PageSize     int
	EmptyMessage string
	Loading      bool // suppress rows and show a placeholder
	KeyField     string
	Selection    SelectionPolicy

	// OnSelect receives the selected records, in base order, after every
	// selection change made through a Table.
	OnSelect func(selected []Record)
	// OnRowClick receives the visible row clicked through Table.Click.
	OnRowClick func(row Record)
}

// DefaultOptions returns searchable, filterable, exportable, non-selectable
// options with ten rows per page keyed on "id".
func DefaultOptions() Options {
	return Options{
		Searchable:   true,
		Filterable:   true,
		Exportable:   true,
		PageSize:     DefaultPageSize,
		EmptyMessage: DefaultEmptyMessage,
		KeyField:     types.KeyField,
	}
}

// Validate rejects options that would corrupt pagination or selection.
func (o Options) Validate() error {
	if o.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if o.Selectable && o.KeyField == "" {
		return ErrNoKeyField
	}
	return nil
}

// ViewState is the caller-owned, per-session input to Derive.
type ViewState struct {
	Search   string
	SortKey  string
	SortDir  Direction
	Page     int
	Selected Selection
}

// SelectionInfo summarizes the selection against the derived view.
type SelectionInfo struct {
	Count              int
	Keys               []string
	AllVisibleSelected bool
}

// View is the read-only result of applying a ViewState to a record set.
type View struct {
	Columns      []Column
	Rows         []Record
	Page         PageInfo
	Selection    SelectionInfo
	SortKey      string
	SortDir      Direction
	Loading      bool
	EmptyMessage string
}

// Empty reports whether the view has no rows to show.
func (v View) Empty() bool { return len(v.Rows) == 0 }

// Cells renders the visible rows through the view's columns.
func (v View) Cells() [][]string { return Cells(v.Columns, v.Rows) }

// Derive applies state to records: search, then sort, then paginate. The
// requested page is clamped into range in the returned View. Selected keys
// that no longer exist in records are dropped from the reported selection.
// Neither records nor state is modified.
func Derive(records []Record, columns []Column, state ViewState, opts Options) (View, error) {
	if err := opts.Validate(); err != nil {
		return View{}, err
	}
	if err := validateColumns(columns); err != nil {
		return View{}, err
	}

	view := View{
		Columns:      columns,
		SortKey:      state.SortKey,
		SortDir:      state.SortDir,
		EmptyMessage: opts.EmptyMessage,
	}
	if view.EmptyMessage == "" {
		view.EmptyMessage = DefaultEmptyMessage
	}

	filtered := records
	if opts.Searchable {
		filtered = Search(records, state.Search)
	}
	sorted, err := Sort(filtered, columns, state.SortKey, state.SortDir)
	if err != nil {
		return View{}, err
	}

	if opts.Loading {
		view.Loading = true
		view.Rows = []Record{}
		view.Page = pageInfo(1, opts.PageSize, 0)
		return view, nil
	}

	page, err := ClampPage(state.Page, len(sorted), opts.PageSize)
	if err != nil {
		return View{}, err
	}
	rows, err := Paginate(sorted, page, opts.PageSize)
	if err != nil {
		return View{}, err
	}
	view.Rows = rows
	view.Page = pageInfo(page, opts.PageSize, len(sorted))

	if opts.Selectable {
		sel := state.Selected.Retain(records, opts.KeyField)
		view.Selection = SelectionInfo{
			Count:              sel.Len(),
			Keys:               sel.Keys(),
			AllVisibleSelected: sel.AllSelected(rows, opts.KeyField),
		}
	}
	return view, nil
}
