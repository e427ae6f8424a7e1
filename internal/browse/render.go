package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/loantrack/pkg/tableview"
)

const (
	markOn  = "[x]"
	markOff = "[ ]"
)

// sortArrow marks the active sort column.
func sortArrow(d tableview.Direction) string {
	if d == tableview.Descending {
		return "▼"
	}
	return "▲"
}

// headerTitles numbers the first nine sortable columns so the digit keys can
// address them, and marks the active sort column.
func headerTitles(v tableview.View) []string {
	titles := tableview.Headers(v.Columns)
	n := 0
	for i, c := range v.Columns {
		if c.Sortable {
			n++
			if n <= 9 {
				titles[i] = fmt.Sprintf("%d %s", n, titles[i])
			}
		}
		if c.Key != "" && c.Key == v.SortKey {
			titles[i] += " " + sortArrow(v.SortDir)
		}
	}
	return titles
}

// RenderTable draws the visible rows of v as a bordered table. cursor is the
// highlighted row within the page, or -1 for none. keyField is empty when
// the table is not selectable.
func RenderTable(v tableview.View, cursor int, keyField string, s Styles) string {
	headers := headerTitles(v)
	cells := v.Cells()

	selected := make(map[int]bool, len(v.Rows))
	if keyField != "" {
		chosen := make(map[string]bool, len(v.Selection.Keys))
		for _, k := range v.Selection.Keys {
			chosen[k] = true
		}
		mark := markOff
		if v.Selection.AllVisibleSelected {
			mark = markOn
		}
		headers = append([]string{mark}, headers...)
		for i, row := range v.Rows {
			key, _ := tableview.RowKey(row, keyField)
			mark := markOff
			if chosen[key] {
				mark = markOn
				selected[i] = true
			}
			cells[i] = append([]string{mark}, cells[i]...)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.Header
			case row == cursor:
				return s.Cursor
			case selected[row]:
				return s.Selected
			}
			return s.Cell
		})

	out := t.String()
	switch {
	case v.Loading:
		out += "\n" + s.Muted.Render("Loading...")
	case v.Empty():
		out += "\n" + s.Muted.Render(v.EmptyMessage)
	}
	return out
}

// renderDetail lists every column of row with its rendered value.
func renderDetail(columns []tableview.Column, row tableview.Record, s Styles) string {
	width := 0
	for _, c := range columns {
		width = max(width, lipgloss.Width(c.Title))
	}
	lines := make([]string, 0, len(columns))
	for _, c := range columns {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, c.Title, c.Cell(row)))
	}
	return s.Detail.Render(strings.Join(lines, "\n"))
}
