// Package browse is the interactive terminal browser for one collection.
//
// The model wraps a tableview.Table: every key press changes the table's
// view state and the screen is re-derived from it. When a Watcher is
// attached, writes to the collection's JSONL file reload the records.
package browse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/loantrack/internal/catalog"
	"github.com/mesh-intelligence/loantrack/pkg/tableview"
)

// ErrNoSortableColumn is reported when a digit key names no sortable column.
var ErrNoSortableColumn = errors.New("no sortable column")

const helpLine = "/ search  1-9 sort  ←/→ page  ↑/↓ move  space select  a all  c clear  enter detail  r reload  q quit"

// Loader returns the current records of the browsed collection.
type Loader func() ([]tableview.Record, error)

// ReloadedMsg carries records produced by the Loader.
type ReloadedMsg struct {
	Records []tableview.Record
	Err     error
}

// callbacks receives the table's OnSelect and OnRowClick notifications. It is
// shared by pointer so copies of the model see the same values.
type callbacks struct {
	clicked  tableview.Record
	selected int
}

// Model is the bubbletea model of the browser.
type Model struct {
	collection string
	table      *tableview.Table
	events     *callbacks
	keyField   string

	search     textinput.Model
	searching  bool
	prevSearch string

	cursor int
	detail tableview.Record
	status string
	err    error

	load    Loader
	watcher *Watcher
	styles  Styles

	pageSize  int
	selection tableview.SelectionPolicy
}

// Option configures a Model.
type Option func(*Model)

// WithLoader sets the function used to reload records.
func WithLoader(l Loader) Option {
	return func(m *Model) { m.load = l }
}

// WithWatcher reloads records whenever w reports a change.
func WithWatcher(w *Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithPageSize overrides the number of rows per page.
func WithPageSize(n int) Option {
	return func(m *Model) { m.pageSize = n }
}

// WithSelectionPolicy sets whether the selection survives page and search
// changes.
func WithSelectionPolicy(p tableview.SelectionPolicy) Option {
	return func(m *Model) { m.selection = p }
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// New returns a browser over records of collection.
func New(collection string, records []tableview.Record, opts ...Option) (Model, error) {
	columns, err := catalog.Columns(collection)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		collection: collection,
		events:     &callbacks{},
		styles:     DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	topts := catalog.Options(collection)
	if m.pageSize != 0 {
		topts.PageSize = m.pageSize
	}
	topts.Selection = m.selection
	ev := m.events
	topts.OnRowClick = func(row tableview.Record) { ev.clicked = row }
	topts.OnSelect = func(sel []tableview.Record) { ev.selected = len(sel) }

	m.table, err = tableview.New(records, columns, topts)
	if err != nil {
		return Model{}, err
	}
	if topts.Selectable {
		m.keyField = topts.KeyField
	}

	m.search = textinput.New()
	m.search.Prompt = "/"
	m.search.Placeholder = "search"
	return m, nil
}

// Table returns the underlying table session.
func (m Model) Table() *tableview.Table { return m.table }

// Cursor returns the highlighted row within the current page.
func (m Model) Cursor() int { return m.cursor }

// Detail returns the row shown in the detail pane, or nil.
func (m Model) Detail() tableview.Record { return m.detail }

// Searching reports whether the search box has focus.
func (m Model) Searching() bool { return m.searching }

// Err returns the error shown in the status line.
func (m Model) Err() error { return m.err }

// Init starts watching for changes when a watcher is attached.
func (m Model) Init() tea.Cmd {
	return m.watchNext()
}

// Update handles key presses, reloads and watcher events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.search.Width = max(msg.Width-4, 10)
		return m, nil

	case ReloadedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("reload: %w", msg.Err)
			return m, nil
		}
		m.table.SetRecords(msg.Records)
		m.clampCursor()
		m.err = nil
		m.status = fmt.Sprintf("reloaded %d records", len(msg.Records))
		return m, nil

	case ChangedMsg:
		return m, tea.Batch(m.reload(), m.watchNext())

	case WatchErrMsg:
		m.err = msg.Err
		return m, m.watchNext()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.search.SetValue(m.prevSearch)
		m.applySearch()
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.detail != nil {
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "enter", "backspace":
			m.detail = nil
		}
		return m, nil
	}

	m.status = ""
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		if !m.table.Options().Searchable {
			m.err = tableview.ErrNotSearchable
			return m, nil
		}
		m.prevSearch = m.search.Value()
		m.searching = true
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applySearch()
		}
	case "left", "h", "pgup":
		m.movePage(m.table.PrevPage)
	case "right", "l", "pgdown":
		m.movePage(m.table.NextPage)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.visibleRows()-1 {
			m.cursor++
		}
	case " ":
		m.toggleCursorRow()
	case "a":
		m.err = m.table.ToggleAll()
	case "c":
		m.table.ClearSelection()
	case "enter":
		m.showDetail()
	case "r":
		return m, m.reload()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.sortBy(int(key[0] - '0'))
		}
	}
	return m, nil
}

func (m *Model) applySearch() {
	m.err = m.table.SetSearch(m.search.Value())
	m.clampCursor()
}

func (m *Model) movePage(move func()) {
	before := m.table.State().Page
	move()
	if m.table.State().Page != before {
		m.cursor = 0
	}
}

// sortBy toggles sorting on the n-th sortable column, counting from 1.
func (m *Model) sortBy(n int) {
	i := 0
	for _, c := range m.table.Columns() {
		if !c.Sortable {
			continue
		}
		i++
		if i == n {
			m.err = m.table.ToggleSort(c.Key)
			return
		}
	}
	m.err = fmt.Errorf("%w: %d", ErrNoSortableColumn, n)
}

func (m *Model) toggleCursorRow() {
	view, err := m.table.View()
	if err != nil {
		m.err = err
		return
	}
	if m.cursor >= len(view.Rows) {
		return
	}
	m.err = m.table.ToggleRow(view.Rows[m.cursor])
}

func (m *Model) showDetail() {
	m.events.clicked = nil
	if err := m.table.Click(m.cursor); err != nil {
		m.err = err
		return
	}
	m.detail = m.events.clicked
}

func (m *Model) visibleRows() int {
	view, err := m.table.View()
	if err != nil {
		return 0
	}
	return len(view.Rows)
}

func (m *Model) clampCursor() {
	n := m.visibleRows()
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) reload() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		records, err := load()
		return ReloadedMsg{Records: records, Err: err}
	}
}

func (m Model) watchNext() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Wait()
}

// View renders the title, search box, table, footer and help line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(cases.Title(language.English).String(m.collection)))
	b.WriteString("\n")

	switch {
	case m.searching:
		b.WriteString(m.search.View())
		b.WriteString("\n")
	case m.search.Value() != "":
		b.WriteString(m.styles.Muted.Render("search: " + m.search.Value()))
		b.WriteString("\n")
	}

	view, err := m.table.View()
	if err != nil {
		b.WriteString(m.styles.Error.Render(err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(RenderTable(view, m.cursor, m.keyField, m.styles))
	b.WriteString("\n")

	footer := view.Page.String()
	if view.Page.TotalPages > 1 {
		footer += fmt.Sprintf("  page %d/%d", view.Page.Page, view.Page.TotalPages)
	}
	if m.keyField != "" && m.events.selected > 0 {
		footer += fmt.Sprintf("  %d selected", m.events.selected)
	}
	b.WriteString(m.styles.Muted.Render(footer))
	b.WriteString("\n")

	if m.detail != nil {
		b.WriteString(renderDetail(m.table.Columns(), m.detail, m.styles))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(helpLine))
	return b.String()
}
