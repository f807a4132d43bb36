package cli

import "github.com/charmbracelet/lipgloss"

// Styles used by command output and the watch view
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Running lipgloss.Style
	Stopped lipgloss.Style
	Muted   lipgloss.Style
	Amount  lipgloss.Style
	Problem lipgloss.Style
	Timer   lipgloss.Style
	Box     lipgloss.Style
}

// DefaultStyles returns the standard palette. Colors are dropped
// automatically when output is not a terminal.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true),
		Stopped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("69")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Amount: lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")),
		Problem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Timer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("69")).
			Bold(true).
			Padding(0, 1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

// column pads s to width cells, keeping any styling intact
func column(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// row joins columns of the given widths; the last cell is not padded
func row(widths []int, cells ...string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i < len(widths) && i < len(cells)-1 {
			cell = column(widths[i], cell)
		}
		parts[i] = cell
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
