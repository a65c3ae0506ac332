package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"mariner/config"
	"mariner/fspath"
	"mariner/history"
	"mariner/log"
	"mariner/panel"
	"mariner/tabs"
)

// Context is the dispatch target for every command: both panels, which of
// them has focus, and the shared stores. Commands that involve one panel
// act on Current(); the cross-panel tab commands reach for Other() too.
type Context struct {
	Left  *panel.Panel
	Right *panel.Panel

	cfg     *config.Config
	history *history.Store

	focused int // 0 left, 1 right
}

// NewContext wires both panels to the shared configuration and an optional
// history store (nil disables history recording).
func NewContext(cfg *config.Config, left, right *panel.Panel, hist *history.Store) *Context {
	return &Context{Left: left, Right: right, cfg: cfg, history: hist}
}

// Current returns the focused panel.
func (c *Context) Current() *panel.Panel {
	if c.focused == 1 {
		return c.Right
	}
	return c.Left
}

// Other returns the unfocused panel.
func (c *Context) Other() *panel.Panel {
	if c.focused == 1 {
		return c.Left
	}
	return c.Right
}

// FocusedIndex returns 0 for the left panel, 1 for the right.
func (c *Context) FocusedIndex() int { return c.focused }

// ToggleFocus moves focus to the other panel.
func (c *Context) ToggleFocus() {
	c.focused = 1 - c.focused
}

// SetFocus puts focus on panel index i (0 left, 1 right).
func (c *Context) SetFocus(i int) {
	if i == 0 || i == 1 {
		c.focused = i
	}
}

func (c *Context) recordVisit(p *panel.Panel) {
	if c.history == nil {
		return
	}
	if err := c.history.Add(p.Name, p.CWD()); err != nil {
		log.WarningLog.Printf("history: %v", err)
		return
	}
	if limit := c.cfg.HistoryLimit; limit > 0 {
		if err := c.history.Prune(p.Name, limit); err != nil {
			log.WarningLog.Printf("history: %v", err)
		}
	}
}

// ResumeLast moves each panel to its most recently visited directory, the
// --resume-last startup path. A panel without history stays where it is;
// a stale directory is reported but does not block the other panel.
func (c *Context) ResumeLast() error {
	if c.history == nil {
		return nil
	}
	var errs []error
	for _, p := range [2]*panel.Panel{c.Left, c.Right} {
		v, ok, err := c.history.Last(p.Name)
		if err != nil {
			return err
		}
		if !ok || v.Path.Equal(p.CWD()) {
			continue
		}
		if err := p.CD(v.Path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CD changes the focused panel's directory and records the visit.
func (c *Context) CD(target fspath.Path) error {
	if err := c.Current().CD(target); err != nil {
		return err
	}
	c.recordVisit(c.Current())
	return nil
}

// EnterSelected descends into the selected directory, or up for the
// parent pseudo entry. Plain files are not the panel's business.
func (c *Context) EnterSelected() error {
	p := c.Current()
	e := p.SelectedEntry()
	if e == nil || !e.IsDir() {
		return nil
	}
	if e.IsUpDir() {
		return c.CD(p.CWD().Parent())
	}
	return c.CD(p.CWD().Append(e.Name))
}

// NewTab opens a tab in the focused panel at the configured position.
func (c *Context) NewTab() error {
	return c.Current().NewTab(c.cfg.TabOpenWhere.Direction())
}

// MoveTabToOtherPanel detaches the focused panel's current tab and attaches
// it to the other panel. A panel's last tab cannot be moved away.
func (c *Context) MoveTabToOtherPanel() error {
	t, err := c.Current().DetachCurrentTab()
	if err != nil {
		return err
	}
	if err := c.Other().AttachTab(c.cfg.TabOpenWhere.Direction(), t); err != nil {
		return err
	}
	c.recordVisit(c.Other())
	return nil
}

// SwapTabs exchanges the two panels' current tabs. When both rings are
// singletons this amounts to the panels trading places, which is exactly
// what happens: each panel ends up in the other's directory.
func (c *Context) SwapTabs() error {
	cur, oth := c.Current(), c.Other()
	a := &tabs.Tab{Name: cur.Tabs().Current().Name, Path: cur.ActiveTabPath()}
	b := &tabs.Tab{Name: oth.Tabs().Current().Name, Path: oth.ActiveTabPath()}

	_, err1 := cur.SwapCurrentTab(b)
	_, err2 := oth.SwapCurrentTab(a)
	if err1 == nil && err2 == nil {
		c.recordVisit(cur)
		c.recordVisit(oth)
	}
	return errors.Join(err1, err2)
}

// JumpToRecent moves the focused panel to its most recently visited
// directory other than the one it is showing. No-op without a history
// store or with nothing to go back to.
func (c *Context) JumpToRecent() error {
	if c.history == nil {
		return nil
	}
	p := c.Current()
	visits, err := c.history.Recent(p.Name, 10)
	if err != nil {
		return err
	}
	for _, v := range visits {
		if v.Path.String() != p.CWD().String() {
			return c.CD(v.Path)
		}
	}
	return nil
}

// YankPath copies the selected entry's full path to the system clipboard.
// With nothing selected the directory itself is copied.
func (c *Context) YankPath() error {
	p := c.Current()
	path := p.CWD()
	if e := p.SelectedEntry(); e != nil && !e.IsUpDir() {
		path = path.Append(e.Name)
	}
	return clipboard.WriteAll(path.Redacted())
}

func sessionsDir() (string, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sessions"), nil
}

func sessionPath(name string) (string, error) {
	dir, err := sessionsDir()
	if err != nil {
		return "", err
	}
	if name == "" {
		name = "default"
	}
	return filepath.Join(dir, name+".panels"), nil
}

// SaveSession writes both panels' tab rings to a named session file.
func (c *Context) SaveSession(name string) error {
	path, err := sessionPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer f.Close()

	current := tabs.Snapshot(c.focused, c.Current().Tabs(), c.Current().ActiveTabPath())
	other := tabs.Snapshot(1-c.focused, c.Other().Tabs(), c.Other().ActiveTabPath())
	return tabs.SaveSession(f, current, other)
}

// RestoreSession loads a named session into both panels. The restore is
// all-or-nothing: a malformed file changes neither panel.
func (c *Context) RestoreSession(name string) error {
	path, err := sessionPath(name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()
	return c.restoreSnapshots(tabs.RestoreSession(f))
}

func (c *Context) restoreSnapshots(current, other tabs.PanelSnapshot, err error) error {
	if err != nil {
		return err
	}
	for _, s := range []tabs.PanelSnapshot{current, other} {
		if s.Index < 0 || s.Index > 1 {
			return fmt.Errorf("session restore: bad panel index %d", s.Index)
		}
	}
	if current.Index == other.Index {
		return fmt.Errorf("session restore: both sections name panel %d", current.Index)
	}

	panels := [2]*panel.Panel{c.Left, c.Right}
	for _, s := range []tabs.PanelSnapshot{current, other} {
		if !s.Listing {
			continue
		}
		if err := panels[s.Index].RestoreTabs(s.Ring()); err != nil {
			log.WarningLog.Printf("session restore: panel %d: %v", s.Index, err)
		}
		c.recordVisit(panels[s.Index])
	}
	c.SetFocus(current.Index)
	return nil
}
