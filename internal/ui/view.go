package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// rows taken by everything except the task list itself:
// header (3), task pane border and title (3), input pane (4), status (1)
const chromeHeight = 11

func (m Model) View() string {
	if m.width == 0 {
		return "\nInitializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	done, total := m.store.Stats()
	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}

	title := titleStyle.Render("todot")
	if m.source != "" {
		title += " " + hintStyle.Render(m.source)
	}
	stats := fmt.Sprintf("%d/%d complete (%d%%) ", done, total, int(percent*100))

	return title + "\n" + stats + m.progress.ViewAs(percent) + "\n"
}

func (m Model) renderTasks() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Tasks"))
	if m.store.Len() > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf(" %d/%d", m.store.Current()+1, m.store.Len())))
	}
	b.WriteString("\n")

	if m.store.Len() == 0 {
		b.WriteString(emptyStyle.Render("No tasks. Press 'i' to add one."))
		return paneStyle.Width(m.paneWidth()).Render(b.String())
	}

	height := m.listHeight()
	start := 0
	if current := m.store.Current(); current >= height {
		start = current - height + 1
	}

	maxText := max(1, m.paneWidth()-8) // padding + cursor + glyph
	var lines []string
	for row := range m.store.Rows() {
		if row.Index < start {
			continue
		}
		if row.Index >= start+height {
			break
		}

		cursor := "  "
		style := openStyle
		if row.Task.Completed {
			style = doneStyle
		}
		if row.Selected {
			cursor = "> "
			style = style.Bold(true)
		}
		line := fmt.Sprintf("%s%s %s", cursor, row.Glyph(), truncate(row.Task.Text, maxText))
		lines = append(lines, style.Render(line))
	}

	b.WriteString(strings.Join(lines, "\n"))
	return paneStyle.Width(m.paneWidth()).Render(b.String())
}

func (m Model) renderInput() string {
	var content string
	switch m.mode {
	case ModeInsert:
		content = m.input.View()
	case ModeDelete:
		content = deleteStyle.Render("Press 'd' again to delete the selected task")
	default:
		content = hintStyle.Render("Add a task (Press 'i' to insert)")
	}
	return paneStyle.Width(m.paneWidth()).Render(paneTitleStyle.Render("Add a task") + "\n" + content)
}

func (m Model) renderFooter() string {
	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusExpire) {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		status = " " + style.Render(m.statusMsg)
	}

	var helpView string
	if m.mode == ModeNormal {
		helpView = m.help.View(keys)
	} else {
		helpView = m.help.ShortHelpView(keys.modeHelp(m.mode))
	}

	return lipgloss.JoinVertical(lipgloss.Left, modeBadge(m.mode)+status, helpView)
}

func (m Model) paneWidth() int {
	return max(20, m.width-2)
}

func (m Model) listHeight() int {
	helpLines := 1
	if m.help.ShowAll && m.mode == ModeNormal {
		helpLines = lipgloss.Height(m.help.View(keys))
	}
	return max(1, m.height-chromeHeight-helpLines)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
