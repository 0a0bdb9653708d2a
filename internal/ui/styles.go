package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#4ec9b0")
	mutedColor  = lipgloss.Color("#666")
	doneColor   = lipgloss.Color("#4caf50")
	openColor   = lipgloss.Color("#ffc107")
	dangerColor = lipgloss.Color("#d73a4a")

	focusedStyle = lipgloss.NewStyle().Foreground(accentColor)
	cursorStyle  = focusedStyle

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().Bold(true)

	doneStyle = lipgloss.NewStyle().Foreground(doneColor)
	openStyle = lipgloss.NewStyle().Foreground(openColor)

	emptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	hintStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	deleteStyle = lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	insertStyle = lipgloss.NewStyle().Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(dangerColor)

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#1e1e1e"))
)

func modeBadge(mode Mode) string {
	bg := accentColor
	switch mode {
	case ModeInsert:
		bg = openColor
	case ModeDelete:
		bg = dangerColor
	}
	return modeStyle.Background(bg).Render(mode.String())
}
