package app

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariner/config"
	"mariner/dirlist"
	"mariner/ui"
)

func testHome(t *testing.T) *home {
	t.Helper()
	h := &home{
		cfg:       config.DefaultConfig(),
		appCtx:    testContext(t),
		lister:    dirlist.NewFS(false),
		views:     [2]*ui.PanelView{ui.NewPanelView(), ui.NewPanelView()},
		textInput: textinput.New(),
	}
	h.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSize_LaysOutPanels(t *testing.T) {
	h := testHome(t)
	left := h.appCtx.Left
	assert.Equal(t, 40, left.Width())
	assert.Equal(t, 38, left.UsableColumns())
	assert.Greater(t, left.View.PageSize(), 1)
}

func TestTabKey_TogglesFocus(t *testing.T) {
	h := testHome(t)
	require.Equal(t, 0, h.appCtx.FocusedIndex())
	h.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, h.appCtx.FocusedIndex())
}

func TestQuitKey(t *testing.T) {
	h := testHome(t)
	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyF10})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSearchFlow(t *testing.T) {
	h := testHome(t)
	p := h.appCtx.Current() // /home: "..", docs, todo.txt

	h.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, p.Searching())

	h.Update(key("t"))
	require.NotNil(t, p.SelectedEntry())
	assert.Equal(t, "todo.txt", p.SelectedEntry().Name)

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, p.Searching())
}

func TestMarkPatternFlow(t *testing.T) {
	h := testHome(t)
	p := h.appCtx.Current()

	h.Update(key("+"))
	require.Equal(t, stateMarkPattern, h.state)

	// the prompt is prefilled with "*"; accept it as-is
	h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateDefault, h.state)
	count, _ := p.MarkedTotals()
	assert.Equal(t, 1, count, "only todo.txt is a file")
}

func TestMarkKey_AdvancesSelection(t *testing.T) {
	h := testHome(t)
	p := h.appCtx.Current()
	p.View.Selected = 2 // todo.txt

	h.Update(tea.KeyMsg{Type: tea.KeyInsert})
	count, _ := p.MarkedTotals()
	assert.Equal(t, 1, count)
}

func TestEscCancelsTextInput(t *testing.T) {
	h := testHome(t)
	h.Update(key("+"))
	require.Equal(t, stateMarkPattern, h.state)
	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateDefault, h.state)
	count, _ := h.appCtx.Current().MarkedTotals()
	assert.Zero(t, count)
}

func TestMouseWheel_MovesSelection(t *testing.T) {
	h := testHome(t)
	p := h.appCtx.Current()
	h.Update(tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 1, p.View.Selected)
	h.Update(tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, p.View.Selected)
}

func TestMouseClick_FocusesAndSelects(t *testing.T) {
	h := testHome(t)
	// click in the right panel's listing area (header at y=2, entries from y=3)
	h.Update(tea.MouseMsg{X: 45, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 1, h.appCtx.FocusedIndex())
	assert.Equal(t, 1, h.appCtx.Right.View.Selected)
}

func TestStatusLine_ShowsPromptState(t *testing.T) {
	h := testHome(t)
	h.Update(key("+"))
	assert.Contains(t, h.statusLine(), "Mark files:")
}

func TestStatusLine_DefaultHintsComeFromBindings(t *testing.T) {
	h := testHome(t)
	line := h.statusLine()
	assert.Contains(t, line, "C-s search")
	assert.Contains(t, line, "F10 quit")
	assert.Contains(t, line, "⇥ other panel")
}

func TestHelpKey_FlashesBindingHints(t *testing.T) {
	h := testHome(t)
	h.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, h.statusMsg, "C-t new tab")
	assert.Contains(t, h.statusMsg, "M-w save session")
}

func TestEscKey_ResetsContentShift(t *testing.T) {
	h := testHome(t)
	p := h.appCtx.Current()

	h.Update(tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	require.Equal(t, 0, p.View.ContentShift, "shift activates on scroll right")

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, -1, p.View.ContentShift)
}

func TestToggleHidden_PersistsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	h := testHome(t)

	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'.'}, Alt: true})
	require.True(t, h.cfg.ShowHidden)

	saved, err := config.LoadConfigFrom(filepath.Join(home, ".config", "mariner", "config.toml"))
	require.NoError(t, err)
	assert.True(t, saved.ShowHidden)
}
