package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyQuit
	KeyHelp

	KeyGoTop    // jump to the first visible row
	KeyGoMiddle // jump to the middle visible row
	KeyGoBottom // jump to the last visible row

	KeySwitchPanel // move focus to the other panel

	KeyTabNew
	KeyTabClose
	KeyTabNext
	KeyTabPrev
	KeyTabRename
	KeyTabMove // move the current tab to the other panel
	KeyTabSwap // swap current tabs between the panels

	KeySearch // incremental search (ctrl+s, like the shell)
	KeyEscape

	KeyMark       // toggle mark on the selected entry
	KeyMarkGroup  // mark files matching a pattern
	KeyUnmarkGroup
	KeyInvertMarks

	KeyReload
	KeyToggleHidden
	KeyScrollLeft  // shift long names left
	KeyScrollRight // shift long names right

	KeyHistory     // directory history popup
	KeyYankPath    // copy the selected entry's full path
	KeySessionSave // save both panels' tabs to a named session
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"pgup":      KeyPageUp,
	"pgdown":    KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"enter":     KeyEnter,
	"f10":       KeyQuit,
	"ctrl+q":    KeyQuit,
	"f1":        KeyHelp,
	"alt+g":     KeyGoTop,
	"alt+r":     KeyGoMiddle,
	"alt+j":     KeyGoBottom,
	"tab":       KeySwitchPanel,
	"ctrl+t":    KeyTabNew,
	"ctrl+w":    KeyTabClose,
	"alt+]":     KeyTabNext,
	"alt+[":     KeyTabPrev,
	"alt+n":     KeyTabRename,
	"alt+m":     KeyTabMove,
	"alt+x":     KeyTabSwap,
	"ctrl+s":    KeySearch,
	"esc":       KeyEscape,
	"insert":    KeyMark,
	"+":         KeyMarkGroup,
	"\\":        KeyUnmarkGroup,
	"*":         KeyInvertMarks,
	"ctrl+r":    KeyReload,
	"alt+.":     KeyToggleHidden,
	"alt+left":  KeyScrollLeft,
	"alt+right": KeyScrollRight,
	"alt+h":     KeyHistory,
	"ctrl+y":    KeyYankPath,
	"alt+w":     KeySessionSave,
}

// HelpEntries renders "key description" hints for the named bindings, in
// order, for the status line and the help flash.
func HelpEntries(names ...KeyName) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		h := GlobalkeyBindings[n].Help()
		out = append(out, h.Key+" "+h.Desc)
	}
	return out
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	KeyHome: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first entry"),
	),
	KeyEnd: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last entry"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "enter directory"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("f10", "ctrl+q"),
		key.WithHelp("F10", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "help"),
	),
	KeyGoTop: key.NewBinding(
		key.WithKeys("alt+g"),
		key.WithHelp("M-g", "screen top"),
	),
	KeyGoMiddle: key.NewBinding(
		key.WithKeys("alt+r"),
		key.WithHelp("M-r", "screen middle"),
	),
	KeyGoBottom: key.NewBinding(
		key.WithKeys("alt+j"),
		key.WithHelp("M-j", "screen bottom"),
	),
	KeySwitchPanel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("⇥", "other panel"),
	),
	KeyTabNew: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "new tab"),
	),
	KeyTabClose: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("C-w", "close tab"),
	),
	KeyTabNext: key.NewBinding(
		key.WithKeys("alt+]"),
		key.WithHelp("M-]", "next tab"),
	),
	KeyTabPrev: key.NewBinding(
		key.WithKeys("alt+["),
		key.WithHelp("M-[", "prev tab"),
	),
	KeyTabRename: key.NewBinding(
		key.WithKeys("alt+n"),
		key.WithHelp("M-n", "rename tab"),
	),
	KeyTabMove: key.NewBinding(
		key.WithKeys("alt+m"),
		key.WithHelp("M-m", "move tab over"),
	),
	KeyTabSwap: key.NewBinding(
		key.WithKeys("alt+x"),
		key.WithHelp("M-x", "swap tabs"),
	),
	KeySearch: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "search"),
	),
	KeyEscape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	KeyMark: key.NewBinding(
		key.WithKeys("insert"),
		key.WithHelp("ins", "mark"),
	),
	KeyMarkGroup: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "mark group"),
	),
	KeyUnmarkGroup: key.NewBinding(
		key.WithKeys("\\"),
		key.WithHelp("\\", "unmark group"),
	),
	KeyInvertMarks: key.NewBinding(
		key.WithKeys("*"),
		key.WithHelp("*", "invert marks"),
	),
	KeyReload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "reload"),
	),
	KeyToggleHidden: key.NewBinding(
		key.WithKeys("alt+."),
		key.WithHelp("M-.", "hidden files"),
	),
	KeyScrollLeft: key.NewBinding(
		key.WithKeys("alt+left"),
		key.WithHelp("M-←", "shift names left"),
	),
	KeyScrollRight: key.NewBinding(
		key.WithKeys("alt+right"),
		key.WithHelp("M-→", "shift names right"),
	),
	KeyHistory: key.NewBinding(
		key.WithKeys("alt+h"),
		key.WithHelp("M-h", "history"),
	),
	KeyYankPath: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copy path"),
	),
	KeySessionSave: key.NewBinding(
		key.WithKeys("alt+w"),
		key.WithHelp("M-w", "save session"),
	),
}
