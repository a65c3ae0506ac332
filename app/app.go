package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mariner/config"
	"mariner/dirlist"
	"mariner/fspath"
	"mariner/history"
	"mariner/internal/sentry"
	"mariner/keys"
	"mariner/log"
	"mariner/panel"
	"mariner/ui"
)

// Run is the main entrypoint into the application. sessionName, when not
// empty, is restored before the first frame; otherwise resumeLast sends
// each panel back to its most recently visited directory.
func Run(ctx context.Context, cfg *config.Config, sessionName string, resumeLast bool) error {
	h, err := newHome(ctx, cfg, sessionName, resumeLast)
	if err != nil {
		return err
	}
	defer h.close()

	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateMarkPattern is the state when the user is typing a mark glob.
	stateMarkPattern
	// stateUnmarkPattern is the state when the user is typing an unmark glob.
	stateUnmarkPattern
	// stateTabRename is the state when the user is naming the current tab.
	stateTabRename
	// stateSessionName is the state when the user is naming a session to save.
	stateSessionName
)

type home struct {
	ctx context.Context

	cfg    *config.Config
	appCtx *Context
	hist   *history.Store
	lister *dirlist.FS

	views [2]*ui.PanelView

	state     state
	textInput textinput.Model
	statusMsg string

	termWidth  int
	termHeight int
}

func newHome(ctx context.Context, cfg *config.Config, sessionName string, resumeLast bool) (*home, error) {
	reg := panel.NewRegistry()
	lister := dirlist.NewFS(cfg.ShowHidden)

	left := panel.New("left", reg, lister, cfg.PanelSetupFor("left"))
	right := panel.New("right", reg, lister, cfg.PanelSetupFor("right"))
	for _, p := range []*panel.Panel{left, right} {
		p.QSearch = cfg.QSearchMode()
		p.View.ScrollPages = cfg.ScrollPages
		p.View.TorbenFJMode = cfg.TorbenFJMode
	}

	var hist *history.Store
	if dir, err := config.GetConfigDir(); err == nil {
		if err := os.MkdirAll(dir, 0755); err == nil {
			if hist, err = history.Open(dir + "/history.db"); err != nil {
				log.WarningLog.Printf("history store unavailable: %v", err)
			}
		}
	}

	h := &home{
		ctx:       ctx,
		cfg:       cfg,
		appCtx:    NewContext(cfg, left, right, hist),
		hist:      hist,
		lister:    lister,
		views:     [2]*ui.PanelView{ui.NewPanelView(), ui.NewPanelView()},
		textInput: textinput.New(),
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	start := fspath.New(cwd)
	for i := 0; i < 2; i++ {
		if err := h.appCtx.CD(start); err != nil {
			log.ErrorLog.Printf("initial cd %s: %v", start, err)
		}
		h.appCtx.ToggleFocus()
	}

	switch {
	case sessionName != "":
		if err := h.appCtx.RestoreSession(sessionName); err != nil {
			return nil, fmt.Errorf("restore session %q: %w", sessionName, err)
		}
	case resumeLast:
		if err := h.appCtx.ResumeLast(); err != nil {
			log.WarningLog.Printf("resume last: %v", err)
		}
	}

	cur := h.appCtx.Current()
	sentry.SetContext(cur.Name, cur.ListFormatMode().String(), cur.Tabs().Len())
	return h, nil
}

func (h *home) close() {
	if h.hist != nil {
		if err := h.hist.Close(); err != nil {
			log.WarningLog.Printf("closing history store: %v", err)
		}
	}
}

func (h *home) Init() tea.Cmd {
	return nil
}

func (h *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.termWidth, h.termHeight = msg.Width, msg.Height
		h.layout()
		return h, nil
	case tea.KeyMsg:
		return h.handleKey(msg)
	case tea.MouseMsg:
		return h.handleMouse(msg)
	}
	return h, nil
}

// layout divides the terminal between the two panels and keeps each
// panel's page size in step with its height.
func (h *home) layout() {
	if h.termWidth <= 0 || h.termHeight <= 0 {
		return
	}
	statusLines := 1
	height := h.termHeight - statusLines
	leftWidth := h.termWidth / 2
	widths := [2]int{leftWidth, h.termWidth - leftWidth}

	panels := [2]*panel.Panel{h.appCtx.Left, h.appCtx.Right}
	for i, p := range panels {
		h.views[i].SetSize(widths[i], height)
		p.Resize(widths[i])
		p.SetPageSize(h.views[i].ListRows(p.Tabs().Len()))
	}
}

func (h *home) View() string {
	if h.termWidth <= 0 {
		return "loading..."
	}
	h.views[0].SetFocused(h.appCtx.FocusedIndex() == 0)
	h.views[1].SetFocused(h.appCtx.FocusedIndex() == 1)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		h.views[0].Render(h.appCtx.Left),
		h.views[1].Render(h.appCtx.Right),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panels, h.statusLine())
}

func (h *home) statusLine() string {
	switch h.state {
	case stateMarkPattern:
		return "Mark files: " + h.textInput.View()
	case stateUnmarkPattern:
		return "Unmark files: " + h.textInput.View()
	case stateTabRename:
		return "Tab name: " + h.textInput.View()
	case stateSessionName:
		return "Save session as: " + h.textInput.View()
	}
	if h.statusMsg != "" {
		return h.statusMsg
	}
	return strings.Join(keys.HelpEntries(
		keys.KeyHelp, keys.KeySwitchPanel, keys.KeySearch, keys.KeyTabNew, keys.KeyQuit,
	), " · ")
}

// flash surfaces a transient message on the status line. It is replaced by
// the next keypress.
func (h *home) flash(format string, args ...any) {
	h.statusMsg = fmt.Sprintf(format, args...)
}

func newTextInput(initial string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.SetValue(initial)
	ti.Focus()
	return ti
}

func (h *home) fail(err error) {
	if err == nil {
		return
	}
	log.ErrorLog.Printf("%v", err)
	h.flash("%v", err)
}
