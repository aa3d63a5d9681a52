package tui

import (
	"editpath/internal/editor"
	"editpath/internal/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is what the screen is currently showing.
type Mode int

const (
	ModeList Mode = iota
	ModePicker
	ModeInput
	ModeConfirmCleanUp
	ModeHelp
)

// Options tune the shell's behaviour.
type Options struct {
	ConfirmCleanUp bool   // Preview clean up removals and ask before applying
	ShowHidden     bool   // Show dot directories in the folder picker
	StartDir       string // Folder picker start directory when nothing better is selected
}

// AppModel holds the TUI state. The path list itself lives in the Session;
// the model only tracks the selection and what is on screen.
type AppModel struct {
	// Data
	Session *editor.Session
	Checker editor.DirChecker
	Entries []model.PathEntry
	Options Options

	// UI State
	SelectedIdx int // -1 when nothing is selected
	WindowSize  tea.WindowSizeMsg
	Mode        Mode
	Status      string
	Quitting    bool

	// Clean up preview awaiting confirmation
	PendingRemovals []editor.Removal

	// Components
	FilePicker   filepicker.Model
	InputBuffer  textinput.Model
	HelpViewport viewport.Model
	Help         help.Model
	Keys         keyMap

	copyToClipboard func(string) error
}

// InitialModel returns the initial state for editing session's list.
func InitialModel(session *editor.Session, checker editor.DirChecker, opts Options) AppModel {
	ti := textinput.New()
	ti.Placeholder = `C:\Tools\bin or /opt/tools/bin`
	ti.CharLimit = 4096
	ti.Width = 60

	m := AppModel{
		Session:         session,
		Checker:         checker,
		Options:         opts,
		SelectedIdx:     -1,
		InputBuffer:     ti,
		Help:            help.New(),
		Keys:            newKeyMap(),
		copyToClipboard: clipboard.WriteAll,
	}
	if len(session.List) > 0 {
		m.SelectedIdx = 0
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// refresh re-annotates the list after every mutation.
func (m *AppModel) refresh() {
	m.Entries = m.Session.List.Inspect(m.Checker)
}

func (m AppModel) hasSelection() bool {
	return m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Session.List)
}
