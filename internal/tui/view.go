package tui

import (
	"fmt"
	"strings"

	"editpath/internal/editor"
	"editpath/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	duplicateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Grey

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	detailStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	pathHighlightStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Italic(true)
)

func (m AppModel) View() string {
	if m.Quitting {
		return ""
	}

	switch m.Mode {
	case ModePicker:
		return m.pickerView()
	case ModeInput:
		return m.inputView()
	case ModeConfirmCleanUp:
		return m.confirmView()
	case ModeHelp:
		return m.HelpViewport.View() + "\n" + dimStyle.Render("↑/↓ scroll • esc close")
	}

	width := m.WindowSize.Width
	if width < 40 {
		width = 80
	}
	height := m.WindowSize.Height
	if height < 10 {
		height = 24
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("editpath %s", m.Session.StoreName())))
	if m.Session.Dirty() {
		b.WriteString(" " + adviceStyle.Render("(modified)"))
	}
	b.WriteString("\n\n")

	// Title (2), detail box (4), status (1), help (1)
	visible := max(height-8, 1)
	b.WriteString(m.listView(width-2, visible))
	b.WriteString("\n")
	b.WriteString(detailStyle.Width(width - 4).Render(m.detailView()))
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString(statusStyle.Render(m.Status))
	} else {
		s := model.Summarize(m.Entries)
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d entries, %d missing, %d duplicates", s.Total, s.Missing, s.Duplicates)))
	}
	b.WriteString("\n")
	b.WriteString(m.Help.ShortHelpView(m.Keys.ShortHelp()))
	return b.String()
}

// listView renders the window of rows that keeps the selection in view.
func (m AppModel) listView(width, visible int) string {
	if len(m.Entries) == 0 {
		return dimStyle.Render("  (no entries, press a to add one)") + "\n"
	}

	start, end := 0, len(m.Entries)
	if len(m.Entries) > visible {
		if m.SelectedIdx >= visible/2 {
			start = m.SelectedIdx - visible/2
		}
		if start+visible > len(m.Entries) {
			start = len(m.Entries) - visible
		}
		end = start + visible
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		e := m.Entries[i]
		line := fmt.Sprintf("%3d. %s%s %s", i+1, priorityIcon(i, len(m.Entries)), e.Status(), displayValue(e.Value))
		if lipgloss.Width(line) > width {
			line = truncate(line, width)
		}

		switch {
		case i == m.SelectedIdx:
			line = selectedStyle.Render(line)
		case e.IsDuplicate:
			line = duplicateStyle.Render(line)
		case !e.Exists:
			line = missingStyle.Render(line)
		default:
			line = normalStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m AppModel) detailView() string {
	if !m.hasSelection() || m.SelectedIdx >= len(m.Entries) {
		return dimStyle.Render("Nothing selected")
	}
	e := m.Entries[m.SelectedIdx]

	var b strings.Builder
	b.WriteString(pathHighlightStyle.Render(displayValue(e.Value)))
	b.WriteString("\n")
	switch {
	case e.IsDuplicate:
		b.WriteString(adviceStyle.Render(fmt.Sprintf("%s %s", model.IconDuplicate, e.Remediation)))
	case !e.Exists:
		b.WriteString(adviceStyle.Render(fmt.Sprintf("%s %s", model.IconMissing, e.Remediation)))
	default:
		b.WriteString(dimStyle.Render(fmt.Sprintf("Priority %d of %d", e.Index+1, len(m.Entries))))
	}
	return b.String()
}

func (m AppModel) pickerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add a folder"))
	b.WriteString("\n\n")
	b.WriteString(pathHighlightStyle.Render(m.FilePicker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.FilePicker.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter add folder • → open • ← back • esc cancel"))
	return b.String()
}

func (m AppModel) inputView() string {
	return fmt.Sprintf("%s\n\n%s\n\n%s",
		titleStyle.Render("Add a path"),
		m.InputBuffer.View(),
		dimStyle.Render("enter add • esc cancel"),
	)
}

func (m AppModel) confirmView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Clean up"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("The following %d entries will be removed:\n\n", len(m.PendingRemovals)))
	for _, r := range m.PendingRemovals {
		icon := model.IconMissing
		if r.Reason == editor.ReasonDuplicate {
			icon = model.IconDuplicate
		}
		b.WriteString(fmt.Sprintf("  %s %3d. %s %s\n", model.IconRemove, r.Index+1, displayValue(r.Value), dimStyle.Render(fmt.Sprintf("(%s %s)", icon, r.Reason))))
	}
	b.WriteString("\n")
	b.WriteString(adviceStyle.Render("Remove them? (y/n)"))
	return b.String()
}

// priorityIcon marks the first and last entries, the highest and lowest
// precedence on PATH.
func priorityIcon(i, n int) string {
	switch {
	case i == 0:
		return model.IconPriorityHigh
	case i == n-1:
		return model.IconPriorityLow
	default:
		return " "
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
