package browse

import "github.com/charmbracelet/lipgloss"

// Palette used by the browser.
var (
	accent    = lipgloss.Color("#8BC34A")
	muted     = lipgloss.Color("#6B7280")
	highlight = lipgloss.Color("#2196F3")
	danger    = lipgloss.Color("#E53935")
)

// Styles holds the lipgloss styles the browser renders with.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Border   lipgloss.Style
	Detail   lipgloss.Style
}

// DefaultStyles returns the browser's default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Cursor:   lipgloss.NewStyle().Padding(0, 1).Foreground(highlight).Bold(true),
		Selected: lipgloss.NewStyle().Padding(0, 1).Foreground(accent),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(danger),
		Border:   lipgloss.NewStyle().Foreground(muted),
		Detail:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
	}
}
