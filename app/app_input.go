package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mariner/config"
	"mariner/keys"
	"mariner/log"
	"mariner/panel"
	"mariner/tabs"
)

func (h *home) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h.statusMsg = ""

	if h.state != stateDefault {
		return h.handleTextInputKey(msg)
	}

	p := h.appCtx.Current()

	// Incremental search consumes printable keys until cancelled.
	if p.Searching() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			p.StopSearch()
			return h, nil
		case tea.KeyBackspace:
			p.SearchBackspace()
			return h, nil
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				p.SearchKey(r)
			}
			return h, nil
		case tea.KeyCtrlS:
			// next match on the remembered buffer
			p.StartSearch()
			return h, nil
		case tea.KeySpace:
			p.SearchKey(' ')
			return h, nil
		}
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return h, nil
	}

	switch name {
	case keys.KeyQuit:
		return h, tea.Quit

	case keys.KeyUp:
		p.View.MoveUp()
	case keys.KeyDown:
		p.View.MoveDown()
	case keys.KeyPageUp:
		p.View.PageUp()
	case keys.KeyPageDown:
		p.View.PageDown()
	case keys.KeyHome:
		p.View.Home()
	case keys.KeyEnd:
		p.View.End()
	case keys.KeyGoTop:
		p.View.GoTop()
	case keys.KeyGoMiddle:
		p.View.GoMiddle()
	case keys.KeyGoBottom:
		p.View.GoBottom()
	case keys.KeyScrollLeft:
		p.View.ScrollLeft()
	case keys.KeyScrollRight:
		p.View.ScrollRight()

	case keys.KeyEnter:
		h.fail(h.appCtx.EnterSelected())
	case keys.KeySwitchPanel:
		h.appCtx.ToggleFocus()

	case keys.KeyTabNew:
		h.fail(h.appCtx.NewTab())
		h.layout()
	case keys.KeyTabClose:
		if err := p.CloseTab(); err == tabs.ErrLastTab {
			h.flash("cannot close the last tab")
		} else {
			h.fail(err)
		}
		h.layout()
	case keys.KeyTabNext:
		h.fail(p.StepTab(tabs.Next))
	case keys.KeyTabPrev:
		h.fail(p.StepTab(tabs.Prev))
	case keys.KeyTabMove:
		if err := h.appCtx.MoveTabToOtherPanel(); err == tabs.ErrLastTab {
			h.flash("cannot move a panel's only tab")
		} else {
			h.fail(err)
		}
		h.layout()
	case keys.KeyTabSwap:
		h.fail(h.appCtx.SwapTabs())
	case keys.KeyTabRename:
		h.enterTextInput(stateTabRename, p.Tabs().Current().Name)

	case keys.KeySearch:
		p.StartSearch()

	case keys.KeyMark:
		p.ToggleMark()
		p.View.MoveDown()
	case keys.KeyMarkGroup:
		h.enterTextInput(stateMarkPattern, "*")
	case keys.KeyUnmarkGroup:
		h.enterTextInput(stateUnmarkPattern, "*")
	case keys.KeyInvertMarks:
		p.InvertMarks()

	case keys.KeyHistory:
		h.fail(h.appCtx.JumpToRecent())
	case keys.KeyReload:
		h.fail(p.Reload())
	case keys.KeyToggleHidden:
		h.toggleHidden()
	case keys.KeyYankPath:
		if err := h.appCtx.YankPath(); err != nil {
			h.fail(err)
		} else {
			h.flash("path copied")
		}
	case keys.KeySessionSave:
		h.enterTextInput(stateSessionName, "")
	case keys.KeyEscape:
		p.View.ResetShift()
	case keys.KeyHelp:
		h.flash("%s", strings.Join(keys.HelpEntries(
			keys.KeyUp, keys.KeyDown, keys.KeyPageUp, keys.KeyPageDown,
			keys.KeyTabNew, keys.KeyTabClose, keys.KeyTabMove, keys.KeyTabSwap,
			keys.KeyMark, keys.KeyMarkGroup, keys.KeyInvertMarks,
			keys.KeySearch, keys.KeyYankPath, keys.KeySessionSave,
		), " · "))
	}
	return h, nil
}

func (h *home) enterTextInput(s state, initial string) {
	h.state = s
	h.textInput = newTextInput(initial)
}

func (h *home) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		h.state = stateDefault
		return h, nil
	case tea.KeyEnter:
		value := h.textInput.Value()
		s := h.state
		h.state = stateDefault
		h.applyTextInput(s, value)
		return h, nil
	}
	var cmd tea.Cmd
	h.textInput, cmd = h.textInput.Update(msg)
	return h, cmd
}

func (h *home) applyTextInput(s state, value string) {
	p := h.appCtx.Current()
	switch s {
	case stateMarkPattern:
		h.fail(p.MarkMatching(value))
	case stateUnmarkPattern:
		h.fail(p.UnmarkMatching(value))
	case stateTabRename:
		p.RenameTab(value)
	case stateSessionName:
		if err := h.appCtx.SaveSession(value); err != nil {
			h.fail(err)
		} else {
			h.flash("session saved")
		}
	}
}

func (h *home) toggleHidden() {
	h.cfg.ShowHidden = !h.cfg.ShowHidden
	h.lister.ShowHidden = h.cfg.ShowHidden
	for _, p := range [2]*panel.Panel{h.appCtx.Left, h.appCtx.Right} {
		h.fail(p.Reload())
	}
	if err := config.SaveConfig(h.cfg); err != nil {
		log.WarningLog.Printf("save config: %v", err)
	}
}

func (h *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	leftWidth := h.termWidth / 2
	idx := 0
	localX := msg.X
	if msg.X >= leftWidth {
		idx = 1
		localX = msg.X - leftWidth
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		h.panelAt(idx).View.MoveUp()
		return h, nil
	case tea.MouseButtonWheelDown:
		h.panelAt(idx).View.MoveDown()
		return h, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return h, nil
		}
	default:
		return h, nil
	}

	h.appCtx.SetFocus(idx)
	p := h.panelAt(idx)

	// rows inside the border: 1 path, optional tab row, header, entries
	tabRowY := -1
	headerY := 2
	if p.Tabs().Len() > 1 {
		tabRowY = 2
		headerY = 3
	}
	entriesY := headerY + 1
	contentX := localX - 1 // border column

	switch {
	case msg.Y == tabRowY:
		if i := h.views[idx].TabClickIndex(p, contentX); i >= 0 {
			h.fail(p.SelectTab(i))
		}
	case msg.Y == headerY:
		p.SortClickColumn(contentX)
	case msg.Y >= entriesY && msg.Y < entriesY+p.View.PageSize():
		row := msg.Y - entriesY
		col := 0
		if p.ListCols() > 1 && p.UsableColumns() > 0 {
			col = contentX / (p.UsableColumns() + 1)
			if col >= p.ListCols() {
				col = p.ListCols() - 1
			}
		}
		target := p.View.Top + col*p.View.PageSize() + row
		if target < len(p.Entries()) {
			p.View.Selected = target
			p.View.AdjustTop()
		}
	}
	return h, nil
}

func (h *home) panelAt(i int) *panel.Panel {
	if i == 1 {
		return h.appCtx.Right
	}
	return h.appCtx.Left
}
