// Package styles centralizes the lipgloss palette shared by every TUI
// surface.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette colors.
var (
	Primary   = lipgloss.Color("#7D56F4")
	Highlight = lipgloss.Color("#F4A261")
	Border    = lipgloss.Color("#444444")
	Surface   = lipgloss.Color("#2A2A2A")
	Success   = lipgloss.Color("#2ECC71")
	Warning   = lipgloss.Color("#F39C12")
	Danger    = lipgloss.Color("#FF6B6B")
	Muted     = lipgloss.Color("#888888")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Primary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)

	PaginationStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(Highlight).
				Background(Surface).
				Bold(true)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2)
)

// RenderTitle renders a section title.
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}
