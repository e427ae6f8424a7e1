package tableview

import (
	"fmt"
	"slices"
)

// Table is one display session over a record set. It owns the ViewState and
// applies the interaction rules: a new search term returns to page 1, sorting
// keeps the page, and under SelectionPageScoped a page or search change
// clears the selection. Every method that can fail validates its input
// before touching state.
//
// A Table is not safe for concurrent use.
type Table struct {
	records []Record
	columns []Column
	opts    Options
	state   ViewState
}

// New creates a session over records. The records slice is not copied; the
// caller must not modify it while the table is in use.
func New(records []Record, columns []Column, opts Options) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := validateColumns(columns); err != nil {
		return nil, err
	}
	return &Table{
		records: records,
		columns: slices.Clone(columns),
		opts:    opts,
		state:   ViewState{Page: 1},
	}, nil
}

// State returns a copy of the current view state.
func (t *Table) State() ViewState { return t.state }

// Options returns the table's options.
func (t *Table) Options() Options { return t.opts }

// Columns returns the table's column descriptors.
func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

// Records returns the base record set.
func (t *Table) Records() []Record { return t.records }

// SetLoading toggles the loading placeholder.
func (t *Table) SetLoading(loading bool) { t.opts.Loading = loading }

// SetRecords replaces the base records, for example after a reload. The page
// is clamped to the new data and selected identities that vanished are
// dropped.
func (t *Table) SetRecords(records []Record) {
	t.records = records
	t.state.Page = t.clamp(t.state.Page)
	if t.opts.Selectable {
		before := t.state.Selected.Len()
		t.state.Selected = t.state.Selected.Retain(records, t.opts.KeyField)
		if t.state.Selected.Len() != before {
			t.notifySelect()
		}
	}
}

// SetSearch changes the search term. A changed term returns to page 1.
func (t *Table) SetSearch(term string) error {
	if !t.opts.Searchable {
		return ErrNotSearchable
	}
	if term == t.state.Search {
		return nil
	}
	t.state.Search = term
	t.state.Page = 1
	if t.opts.Selection == SelectionPageScoped {
		t.clearSelection()
	}
	return nil
}

// ToggleSort emulates clicking a column header: the active column flips
// direction, another column becomes active in ascending order. The page is
// kept.
func (t *Table) ToggleSort(key string) error {
	if err := t.checkSortable(key); err != nil {
		return err
	}
	if t.state.SortKey == key {
		t.state.SortDir = t.state.SortDir.Flip()
		return nil
	}
	t.state.SortKey = key
	t.state.SortDir = Ascending
	return nil
}

// SetSort sets the sort column and direction. An empty key clears sorting.
func (t *Table) SetSort(key string, dir Direction) error {
	if key != "" {
		if err := t.checkSortable(key); err != nil {
			return err
		}
	}
	t.state.SortKey = key
	t.state.SortDir = dir
	return nil
}

// SetPage moves to page, clamped into the valid range.
func (t *Table) SetPage(page int) {
	page = t.clamp(page)
	if page == t.state.Page {
		return
	}
	t.state.Page = page
	if t.opts.Selection == SelectionPageScoped {
		t.clearSelection()
	}
}

// NextPage moves forward one page if possible.
func (t *Table) NextPage() { t.SetPage(t.state.Page + 1) }

// PrevPage moves back one page if possible.
func (t *Table) PrevPage() { t.SetPage(t.state.Page - 1) }

// ToggleRow selects or deselects one record.
func (t *Table) ToggleRow(row Record) error {
	if !t.opts.Selectable {
		return ErrNotSelectable
	}
	next, err := t.state.Selected.Toggle(row, t.opts.KeyField)
	if err != nil {
		return err
	}
	t.state.Selected = next
	t.notifySelect()
	return nil
}

// ToggleAll selects every visible row, or clears them when all are selected.
func (t *Table) ToggleAll() error {
	if !t.opts.Selectable {
		return ErrNotSelectable
	}
	view, err := t.View()
	if err != nil {
		return err
	}
	next, err := t.state.Selected.ToggleAll(view.Rows, t.opts.KeyField)
	if err != nil {
		return err
	}
	t.state.Selected = next
	t.notifySelect()
	return nil
}

// ClearSelection deselects everything.
func (t *Table) ClearSelection() {
	if t.state.Selected.Len() == 0 {
		return
	}
	t.clearSelection()
}

// Selected returns the selected records in base order.
func (t *Table) Selected() []Record {
	return t.state.Selected.Rows(t.records, t.opts.KeyField)
}

// Click invokes OnRowClick with the i-th visible row.
func (t *Table) Click(i int) error {
	view, err := t.View()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(view.Rows) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	if t.opts.OnRowClick != nil {
		t.opts.OnRowClick(view.Rows[i])
	}
	return nil
}

// View derives the current view.
func (t *Table) View() (View, error) {
	return Derive(t.records, t.columns, t.state, t.opts)
}

func (t *Table) checkSortable(key string) error {
	col, err := findColumn(t.columns, key)
	if err != nil {
		return err
	}
	if !col.Sortable {
		return fmt.Errorf("%w: %q", ErrNotSortable, key)
	}
	return nil
}

// clamp bounds page against the current filtered row count.
func (t *Table) clamp(page int) int {
	filtered := t.records
	if t.opts.Searchable {
		filtered = Search(t.records, t.state.Search)
	}
	// PageSize was validated in New.
	p, _ := ClampPage(page, len(filtered), t.opts.PageSize)
	return p
}

func (t *Table) clearSelection() {
	if t.state.Selected.Len() == 0 {
		return
	}
	t.state.Selected = Selection{}
	t.notifySelect()
}

func (t *Table) notifySelect() {
	if t.opts.OnSelect != nil {
		t.opts.OnSelect(t.Selected())
	}
}
