package tui

import (
	"fmt"
	"os"

	"editpath/internal/editor"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.WindowSize = msg
		m.Help.Width = msg.Width
		m.HelpViewport.Width = msg.Width
		m.HelpViewport.Height = max(msg.Height-2, 1)
	}

	switch m.Mode {
	case ModePicker:
		return m.updatePicker(msg)
	case ModeInput:
		return m.updateInput(msg)
	case ModeConfirmCleanUp:
		return m.updateConfirm(msg)
	case ModeHelp:
		return m.updateHelp(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Status = ""

	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.Keys.Up):
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.SelectedIdx < len(m.Session.List)-1 {
			m.SelectedIdx++
		}
	case key.Matches(keyMsg, m.Keys.Top):
		if len(m.Session.List) > 0 {
			m.SelectedIdx = 0
		}
	case key.Matches(keyMsg, m.Keys.Bottom):
		m.SelectedIdx = len(m.Session.List) - 1
	case key.Matches(keyMsg, m.Keys.MoveUp):
		m.moveUp()
	case key.Matches(keyMsg, m.Keys.MoveDown):
		m.moveDown()
	case key.Matches(keyMsg, m.Keys.Add):
		return m, m.openPicker()
	case key.Matches(keyMsg, m.Keys.Type):
		m.Mode = ModeInput
		m.InputBuffer.SetValue("")
		m.InputBuffer.Focus()
		return m, textinput.Blink
	case key.Matches(keyMsg, m.Keys.Remove):
		m.removeSelected()
	case key.Matches(keyMsg, m.Keys.CleanUp):
		m.startCleanUp()
	case key.Matches(keyMsg, m.Keys.Copy):
		if m.hasSelection() {
			m.copy(m.Session.List[m.SelectedIdx], "entry")
		}
	case key.Matches(keyMsg, m.Keys.CopyAll):
		m.copy(m.Session.Value(), "PATH")
	case key.Matches(keyMsg, m.Keys.Help):
		m.openHelp()
	}

	return m, nil
}

// moveUp and moveDown are silent no-ops without a selection or at the edges.
func (m *AppModel) moveUp() {
	if !m.hasSelection() {
		return
	}
	if m.Session.List.MoveUp(m.SelectedIdx) {
		m.SelectedIdx--
		m.refresh()
	}
}

func (m *AppModel) moveDown() {
	if !m.hasSelection() {
		return
	}
	if m.Session.List.MoveDown(m.SelectedIdx) {
		m.SelectedIdx++
		m.refresh()
	}
}

func (m *AppModel) removeSelected() {
	if !m.hasSelection() {
		return
	}
	removed := m.Session.List[m.SelectedIdx]
	m.Session.List.RemoveAt(m.SelectedIdx)
	m.SelectedIdx = editor.SelectionAfterRemove(m.SelectedIdx, len(m.Session.List))
	m.refresh()
	m.Status = fmt.Sprintf("Removed %s", displayValue(removed))
}

func (m *AppModel) insert(path string) {
	m.Session.List.Insert(path)
	m.SelectedIdx = len(m.Session.List) - 1
	m.refresh()
	m.Status = fmt.Sprintf("Added %s", displayValue(path))
}

func (m *AppModel) startCleanUp() {
	preview := m.Session.List.Clone()
	removals := preview.CleanUp(m.Checker)
	if len(removals) == 0 {
		m.Status = "Nothing to clean up"
		return
	}
	if m.Options.ConfirmCleanUp {
		m.PendingRemovals = removals
		m.Mode = ModeConfirmCleanUp
		return
	}
	m.applyCleanUp()
}

func (m *AppModel) applyCleanUp() {
	removals := m.Session.List.CleanUp(m.Checker)
	m.PendingRemovals = nil
	m.Mode = ModeList
	if len(m.Session.List) == 0 {
		m.SelectedIdx = -1
	} else {
		m.SelectedIdx = min(max(m.SelectedIdx, 0), len(m.Session.List)-1)
	}
	m.refresh()
	m.Status = fmt.Sprintf("Clean up removed %d entries", len(removals))
}

func (m *AppModel) copy(value, what string) {
	if err := m.copyToClipboard(value); err != nil {
		m.Status = fmt.Sprintf("Clipboard unavailable: %v", err)
		return
	}
	m.Status = fmt.Sprintf("Copied %s to clipboard", what)
}

// openPicker starts the folder picker in the selected entry when it exists,
// otherwise in the configured start directory.
func (m *AppModel) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowHidden = m.Options.ShowHidden
	fp.AutoHeight = true
	fp.CurrentDirectory = m.pickerStart()

	m.FilePicker = fp
	m.Mode = ModePicker
	if m.WindowSize.Height > 0 {
		m.FilePicker, _ = m.FilePicker.Update(m.WindowSize)
	}
	return m.FilePicker.Init()
}

func (m AppModel) pickerStart() string {
	if m.hasSelection() {
		if p := m.Session.List[m.SelectedIdx]; m.Checker.DirExists(p) {
			return p
		}
	}
	if m.Options.StartDir != "" {
		return m.Options.StartDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "ctrl+c":
			m.Mode = ModeList
			m.Status = "Add cancelled"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.FilePicker, cmd = m.FilePicker.Update(msg)

	if selected, path := m.FilePicker.DidSelectFile(msg); selected {
		m.Mode = ModeList
		m.insert(path)
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.Mode = ModeList
			m.InputBuffer.Blur()
			m.insert(m.InputBuffer.Value())
			return m, nil
		case tea.KeyEsc, tea.KeyCtrlC:
			m.Mode = ModeList
			m.InputBuffer.Blur()
			m.Status = "Add cancelled"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.InputBuffer, cmd = m.InputBuffer.Update(msg)
	return m, cmd
}

func (m AppModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.applyCleanUp()
	case "n", "N", "esc", "q":
		m.PendingRemovals = nil
		m.Mode = ModeList
		m.Status = "Clean up cancelled"
	}
	return m, nil
}

func (m *AppModel) openHelp() {
	width := m.WindowSize.Width
	if width <= 0 {
		width = 80
	}
	height := m.WindowSize.Height - 2
	if height <= 0 {
		height = 20
	}
	m.HelpViewport = viewport.New(width, height)
	m.HelpViewport.SetContent(renderHelp(width))
	m.Mode = ModeHelp
}

func (m AppModel) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "?":
			m.Mode = ModeList
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.HelpViewport, cmd = m.HelpViewport.Update(msg)
	return m, cmd
}

func displayValue(p string) string {
	if p == "" {
		return "(empty)"
	}
	return p
}
