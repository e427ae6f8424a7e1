package browse

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func submissions(n int) []tableview.Record {
	out := make([]tableview.Record, n)
	for i := range out {
		out[i] = tableview.Record{
			"id":              fmt.Sprintf("SUB-%03d", i+1),
			"beneficiaryName": fmt.Sprintf("Beneficiary %d", i+1),
			"item":            "Sewing machine",
			"amount":          float64(1000 * (i + 1)),
			"status":          types.SubmissionPending,
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func newModel(t *testing.T, collection string, records []tableview.Record, opts ...Option) Model {
	t.Helper()
	m, err := New(collection, records, opts...)
	require.NoError(t, err)
	return m
}

func visibleIDs(t *testing.T, m Model) []string {
	t.Helper()
	view, err := m.Table().View()
	require.NoError(t, err)
	ids := make([]string, len(view.Rows))
	for i, r := range view.Rows {
		ids[i] = r.ID()
	}
	return ids
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}

func TestNewUnknownCollection(t *testing.T) {
	_, err := New("widgets", nil)
	assert.ErrorIs(t, err, types.ErrTableNotFound)

	_, err = New(types.TableUsers, nil, WithPageSize(-1))
	assert.ErrorIs(t, err, tableview.ErrInvalidPageSize)
}

func TestPaging(t *testing.T) {
	m := newModel(t, types.TableSubmissions, submissions(25))
	m = press(t, m, "down", "down")
	assert.Equal(t, 2, m.Cursor())

	m = press(t, m, "right")
	assert.Equal(t, 2, m.Table().State().Page)
	assert.Equal(t, 0, m.Cursor(), "cursor resets on a new page")

	m = press(t, m, "right", "right", "right")
	assert.Equal(t, 3, m.Table().State().Page)
	assert.Equal(t, []string{"SUB-021", "SUB-022", "SUB-023", "SUB-024", "SUB-025"}, visibleIDs(t, m))

	m = press(t, m, "left")
	assert.Equal(t, 2, m.Table().State().Page)
	assert.Contains(t, m.View(), "Showing 11 to 20 of 25")
}

func TestSearchBox(t *testing.T) {
	m := newModel(t, types.TableSubmissions, submissions(25))
	m = press(t, m, "right")

	m = press(t, m, "/")
	require.True(t, m.Searching())
	m = press(t, m, "S", "U", "B", "-", "0", "2")
	assert.Equal(t, "SUB-02", m.Table().State().Search)
	assert.Equal(t, 1, m.Table().State().Page, "a new term returns to page 1")
	assert.Len(t, visibleIDs(t, m), 6)

	m = press(t, m, "enter")
	assert.False(t, m.Searching())
	assert.Equal(t, "SUB-02", m.Table().State().Search)
	assert.Contains(t, m.View(), "search: SUB-02")

	// Esc while typing restores the previous term.
	m = press(t, m, "/", "5", "esc")
	assert.False(t, m.Searching())
	assert.Equal(t, "SUB-02", m.Table().State().Search)

	// Esc outside the box clears the search.
	m = press(t, m, "esc")
	assert.Equal(t, "", m.Table().State().Search)
	assert.Len(t, visibleIDs(t, m), 10)
}

func TestDigitKeysSort(t *testing.T) {
	m := newModel(t, types.TableSubmissions, submissions(12))

	m = press(t, m, "4")
	assert.Equal(t, "amount", m.Table().State().SortKey)
	assert.Equal(t, tableview.Ascending, m.Table().State().SortDir)

	m = press(t, m, "4")
	assert.Equal(t, tableview.Descending, m.Table().State().SortDir)
	assert.Equal(t, "SUB-012", visibleIDs(t, m)[0])
	assert.Contains(t, m.View(), "4 Amount ▼")

	users := newModel(t, types.TableUsers, nil)
	users = press(t, users, "9")
	assert.ErrorIs(t, users.Err(), ErrNoSortableColumn)
	assert.Equal(t, "", users.Table().State().SortKey)
}

func TestSelectionKeys(t *testing.T) {
	m := newModel(t, types.TableSubmissions, submissions(25))

	m = press(t, m, " ", "down", " ")
	assert.Equal(t, []string{"SUB-001", "SUB-002"}, m.Table().State().Selected.Keys())
	assert.Contains(t, m.View(), "2 selected")
	assert.Contains(t, m.View(), markOn)

	m = press(t, m, " ")
	assert.Equal(t, []string{"SUB-001"}, m.Table().State().Selected.Keys())

	m = press(t, m, "a")
	assert.Equal(t, 10, m.Table().State().Selected.Len())

	m = press(t, m, "right", "a")
	assert.Equal(t, 20, m.Table().State().Selected.Len(), "selection persists across pages")

	m = press(t, m, "c")
	assert.Equal(t, 0, m.Table().State().Selected.Len())
}

func TestSelectionPageScoped(t *testing.T) {
	m := newModel(t, types.TableSubmissions, submissions(25), WithSelectionPolicy(tableview.SelectionPageScoped))
	m = press(t, m, "a", "right")
	assert.Equal(t, 0, m.Table().State().Selected.Len())
}

func TestSelectionNotSupported(t *testing.T) {
	m := newModel(t, types.TableLoans, []tableview.Record{{"id": "LN-1", "beneficiaryName": "A"}})
	m = press(t, m, " ")
	assert.ErrorIs(t, m.Err(), tableview.ErrNotSelectable)
	assert.NotContains(t, m.View(), markOff)
}

func TestDetailPane(t *testing.T) {
	m := newModel(t, types.TableSubmissions, submissions(3))
	m = press(t, m, "down", "enter")
	require.NotNil(t, m.Detail())
	assert.Equal(t, "SUB-002", m.Detail().ID())
	assert.Contains(t, m.View(), "Beneficiary 2")

	// Keys other than close are ignored while the pane is open.
	m = press(t, m, "right", "esc")
	assert.Nil(t, m.Detail())
	assert.Equal(t, 1, m.Table().State().Page)
}

func TestDetailOnEmptyTable(t *testing.T) {
	m := newModel(t, types.TableSubmissions, nil)
	m = press(t, m, "enter")
	assert.Nil(t, m.Detail())
	assert.ErrorIs(t, m.Err(), tableview.ErrRowOutOfRange)
	assert.Contains(t, m.View(), "No submissions found")
}

func TestQuit(t *testing.T) {
	m := newModel(t, types.TableSubmissions, nil)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReload(t *testing.T) {
	calls := 0
	loader := func() ([]tableview.Record, error) {
		calls++
		return submissions(4), nil
	}
	m := newModel(t, types.TableSubmissions, submissions(25), WithLoader(loader))
	m = press(t, m, "right", "right", "down", "down", "down")
	assert.Equal(t, 3, m.Cursor())

	_, cmd := m.Update(ChangedMsg{Path: "submissions.jsonl"})
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, calls)

	next, _ := m.Update(msgs[0])
	m = next.(Model)
	assert.Equal(t, 1, m.Table().State().Page, "page clamps to the reloaded data")
	assert.Len(t, visibleIDs(t, m), 4)
	assert.Equal(t, 3, m.Cursor())
	assert.Contains(t, m.View(), "reloaded 4 records")

	next, _ = m.Update(ReloadedMsg{Records: submissions(1)})
	m = next.(Model)
	assert.Equal(t, 0, m.Cursor())

	boom := errors.New("disk gone")
	next, _ = m.Update(ReloadedMsg{Err: boom})
	m = next.(Model)
	assert.ErrorIs(t, m.Err(), boom)
	assert.Len(t, visibleIDs(t, m), 1, "records kept on reload failure")
}

func TestReloadWithoutLoader(t *testing.T) {
	m := newModel(t, types.TableSubmissions, nil)
	_, cmd := m.Update(key("r"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.Init())
}
