package tui

import (
	"fmt"
	"testing"

	"editpath/internal/editor"
	"editpath/internal/envstore"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, raw string, existing ...string) AppModel {
	t.Helper()
	s, err := editor.Open(envstore.NewMemoryStore("memory", raw), editor.WithSeparator(';'))
	require.NoError(t, err)

	dirs := map[string]bool{}
	for _, d := range existing {
		dirs[d] = true
	}
	checker := editor.DirCheckerFunc(func(p string) bool { return dirs[p] })
	return InitialModel(s, checker, Options{ConfirmCleanUp: true})
}

func press(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(AppModel)
	}
	return m
}

func TestInitialModel_SelectsFirstEntry(t *testing.T) {
	m := newTestModel(t, `C:\A;C:\B`, `C:\A`)
	assert.Equal(t, 0, m.SelectedIdx)
	require.Len(t, m.Entries, 2)
	assert.True(t, m.Entries[0].Exists)
	assert.False(t, m.Entries[1].Exists)
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t, `A;B;C`)

	m = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.SelectedIdx)

	m = press(t, m, runes("j"))
	assert.Equal(t, 2, m.SelectedIdx, "selection stops at the last entry")

	m = press(t, m, runes("g"))
	assert.Equal(t, 0, m.SelectedIdx)

	m = press(t, m, runes("k"))
	assert.Equal(t, 0, m.SelectedIdx, "selection stops at the first entry")

	m = press(t, m, runes("G"))
	assert.Equal(t, 2, m.SelectedIdx)
}

func TestMoveEntry_SelectionFollows(t *testing.T) {
	m := newTestModel(t, `A;B;C`)

	m = press(t, m, runes("J"))
	assert.Equal(t, editor.PathList{"B", "A", "C"}, m.Session.List)
	assert.Equal(t, 1, m.SelectedIdx)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftDown})
	assert.Equal(t, editor.PathList{"B", "C", "A"}, m.Session.List)
	assert.Equal(t, 2, m.SelectedIdx)

	m = press(t, m, runes("J"))
	assert.Equal(t, editor.PathList{"B", "C", "A"}, m.Session.List, "last entry cannot move down")

	m = press(t, m, runes("K"), tea.KeyMsg{Type: tea.KeyShiftUp})
	assert.Equal(t, editor.PathList{"A", "B", "C"}, m.Session.List)
	assert.Equal(t, 0, m.SelectedIdx)

	m = press(t, m, runes("K"))
	assert.Equal(t, editor.PathList{"A", "B", "C"}, m.Session.List, "first entry cannot move up")
}

func TestRemove_SelectionRule(t *testing.T) {
	m := newTestModel(t, `A;B;C`)

	m = press(t, m, runes("G"), runes("x"))
	assert.Equal(t, editor.PathList{"A", "B"}, m.Session.List)
	assert.Equal(t, 1, m.SelectedIdx, "selection clamps to the new last entry")

	m = press(t, m, runes("g"), tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, editor.PathList{"B"}, m.Session.List)
	assert.Equal(t, 0, m.SelectedIdx)

	m = press(t, m, runes("x"))
	assert.Empty(t, m.Session.List)
	assert.Equal(t, -1, m.SelectedIdx)

	// With nothing selected these are no-ops.
	m = press(t, m, runes("x"), runes("K"), runes("J"))
	assert.Empty(t, m.Session.List)
	assert.Equal(t, -1, m.SelectedIdx)
}

func TestTypePath_Inserts(t *testing.T) {
	m := newTestModel(t, `A`)

	m = press(t, m, runes("i"))
	require.Equal(t, ModeInput, m.Mode)

	m = press(t, m, runes(`D:\new`), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeList, m.Mode)
	assert.Equal(t, editor.PathList{"A", `D:\new`}, m.Session.List)
	assert.Equal(t, 1, m.SelectedIdx)
	assert.True(t, m.Session.Dirty())
}

func TestTypePath_EscCancels(t *testing.T) {
	m := newTestModel(t, `A`)

	m = press(t, m, runes("i"), runes("junk"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.Mode)
	assert.Equal(t, editor.PathList{"A"}, m.Session.List)
}

func TestPicker_EscCancels(t *testing.T) {
	m := newTestModel(t, `A`)
	m.Options.StartDir = t.TempDir()

	m = press(t, m, runes("a"))
	require.Equal(t, ModePicker, m.Mode)
	assert.Equal(t, m.Options.StartDir, m.FilePicker.CurrentDirectory)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.Mode)
	assert.Equal(t, editor.PathList{"A"}, m.Session.List)
}

func TestCleanUp_ConfirmApplies(t *testing.T) {
	m := newTestModel(t, `C:\A;C:\B;C:\A;C:\Missing`, `C:\A`, `C:\B`)

	m = press(t, m, runes("c"))
	require.Equal(t, ModeConfirmCleanUp, m.Mode)
	require.Len(t, m.PendingRemovals, 2)
	assert.Equal(t, editor.PathList{`C:\A`, `C:\B`, `C:\A`, `C:\Missing`}, m.Session.List, "preview does not mutate")

	m = press(t, m, runes("y"))
	assert.Equal(t, ModeList, m.Mode)
	assert.Equal(t, editor.PathList{`C:\A`, `C:\B`}, m.Session.List)
	assert.Nil(t, m.PendingRemovals)
}

func TestCleanUp_ConfirmDeclined(t *testing.T) {
	m := newTestModel(t, `G;G`)

	m = press(t, m, runes("c"), runes("n"))
	assert.Equal(t, ModeList, m.Mode)
	assert.Equal(t, editor.PathList{"G", "G"}, m.Session.List)
}

func TestCleanUp_WithoutConfirmation(t *testing.T) {
	m := newTestModel(t, `G;G`)
	m.Options.ConfirmCleanUp = false

	m = press(t, m, runes("c"))
	assert.Empty(t, m.Session.List)
	assert.Equal(t, -1, m.SelectedIdx)
}

func TestCleanUp_NothingToDo(t *testing.T) {
	m := newTestModel(t, `A`, `A`)

	m = press(t, m, runes("c"))
	assert.Equal(t, ModeList, m.Mode)
	assert.Equal(t, "Nothing to clean up", m.Status)
}

func TestCopy(t *testing.T) {
	m := newTestModel(t, `A;B`)
	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m = press(t, m, runes("j"), runes("y"))
	assert.Equal(t, "B", copied)

	m = press(t, m, runes("Y"))
	assert.Equal(t, "A;B", copied)

	m.copyToClipboard = func(string) error { return fmt.Errorf("no clipboard") }
	m = press(t, m, runes("y"))
	assert.Contains(t, m.Status, "no clipboard")
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTestModel(t, `A`)
		next, cmd := m.Update(msg)
		assert.True(t, next.(AppModel).Quitting, msg.String())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestHelp_Toggle(t *testing.T) {
	m := newTestModel(t, `A`)
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 30}, runes("?"))
	assert.Equal(t, ModeHelp, m.Mode)
	assert.Contains(t, m.View(), "editpath")

	m = press(t, m, runes("?"))
	assert.Equal(t, ModeList, m.Mode)
}

func TestView_ShowsMarkers(t *testing.T) {
	m := newTestModel(t, `A;A;Gone`, `A`)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	assert.Contains(t, out, "1. ¹")
	assert.Contains(t, out, "≈ A")
	assert.Contains(t, out, "✗ Gone")
	assert.NotContains(t, out, "(modified)")
}
