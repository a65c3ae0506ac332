package panel

import (
	"sort"

	"mariner/dirlist"
	"mariner/fspath"
	"mariner/log"
	"mariner/match"
	"mariner/tabs"
)

// Panel is a directory panel: a listing, its compiled column layout, a
// viewport over it, and the tab ring the panel switches between. A Panel
// is not safe for concurrent use; the event loop owns it.
type Panel struct {
	// Name labels the panel in logs and the session file ("left"/"right").
	Name string

	View Viewport

	reg    *Registry
	lister dirlist.Lister
	ring   *tabs.Ring

	cwd     fspath.Path
	entries []*dirlist.Entry

	items      []*FormatItem
	listFormat ListFormat
	userFormat string
	briefCols  int
	frame      FrameSize
	listCols   int

	cols   int
	usable int

	sortField         *FieldDescriptor
	sortReverse       bool
	sortCaseSensitive bool

	filter   *match.Matcher
	codepage string

	// incremental search state, managed by search.go
	searching    bool
	searchBuffer string
	prevSearch   string
	QSearch      QSearchMode
}

// Setup carries the persisted per-panel settings applied at construction.
type Setup struct {
	ListFormat    ListFormat
	UserFormat    string
	BriefCols     int
	SortField     string
	SortReverse   bool
	CaseSensitive bool
	Codepage      string
}

// New builds a panel with its own single-tab ring. The listing is empty
// until the first CD.
func New(name string, reg *Registry, lister dirlist.Lister, setup Setup) *Panel {
	p := &Panel{
		Name:              name,
		reg:               reg,
		lister:            lister,
		ring:              tabs.NewRing(),
		listFormat:        setup.ListFormat,
		userFormat:        setup.UserFormat,
		briefCols:         setup.BriefCols,
		listCols:          1,
		sortCaseSensitive: setup.CaseSensitive,
		sortReverse:       setup.SortReverse,
		codepage:          setup.Codepage,
	}
	p.sortField = reg.ByID(setup.SortField)
	if p.sortField == nil || !p.sortField.HasComparator() {
		p.sortField = reg.ByID("name")
	}
	if err := p.ApplyFormat(PresetFormat(p.listFormat, p.briefCols, p.userFormat)); err != nil {
		log.WarningLog.Printf("panel %s: bad configured format: %v", name, err)
	}
	return p
}

func (p *Panel) install(items []*FormatItem, hint SizeHint) {
	p.items = items
	p.frame = hint.Frame
	p.listCols = 1
	if hint.ColsSet {
		p.listCols = hint.Cols
	}
	p.reallocate()
}

func (p *Panel) reallocate() {
	if p.usable > 0 && len(p.items) > 0 {
		AllocateWidths(p.items, p.usable)
	}
}

// ApplyFormat compiles and installs a format spec. A compile error reverts
// the panel to the default user format and is returned for the caller to
// surface; the panel is never left without a usable layout.
func (p *Panel) ApplyFormat(spec string) error {
	items, hint, err := CompileFormat(p.reg, spec)
	if err != nil {
		items, hint, _ = CompileFormat(p.reg, DefaultUserFormat)
		p.install(items, hint)
		return err
	}
	p.install(items, hint)
	return nil
}

// SetListFormat switches the listing mode and recompiles its preset.
func (p *Panel) SetListFormat(mode ListFormat) error {
	p.listFormat = mode
	return p.ApplyFormat(PresetFormat(mode, p.briefCols, p.userFormat))
}

// SetUserFormat installs a new user format spec and switches to user mode.
func (p *Panel) SetUserFormat(spec string) error {
	p.userFormat = spec
	return p.SetListFormat(ListUser)
}

// SetBriefCols changes the brief-mode column count. Only recompiles when
// brief mode is active.
func (p *Panel) SetBriefCols(n int) error {
	p.briefCols = n
	if p.listFormat != ListBrief {
		return nil
	}
	return p.SetListFormat(ListBrief)
}

// Resize tells the panel its width in terminal cells and reallocates the
// column widths. Two cells go to the frame; multi-column listings divide
// the rest and lose one more cell to the inner separators.
func (p *Panel) Resize(cols int) {
	p.cols = cols
	usable := cols - 2
	if p.listCols > 1 {
		usable = usable/p.listCols - 1
	}
	if usable < 0 {
		usable = 0
	}
	p.usable = usable
	p.reallocate()
}

// SetPageSize forwards the visible row count to the viewport.
func (p *Panel) SetPageSize(rows int) {
	p.View.SetPageSize(rows)
}

// Width returns the panel width set by the last Resize.
func (p *Panel) Width() int { return p.cols }

// UsableColumns returns the cell budget one listing column works with.
func (p *Panel) UsableColumns() int { return p.usable }

// ListCols returns the listing column count (1 except in brief mode).
func (p *Panel) ListCols() int { return p.listCols }

// Frame reports whether the panel wants the full terminal width.
func (p *Panel) Frame() FrameSize { return p.frame }

// FormatItems returns the compiled columns with their allocated widths.
func (p *Panel) FormatItems() []*FormatItem { return p.items }

// ListFormatMode returns the active listing mode.
func (p *Panel) ListFormatMode() ListFormat { return p.listFormat }

// CWD returns the panel's current directory.
func (p *Panel) CWD() fspath.Path { return p.cwd }

// Codepage returns the display codepage label shown in the panel title.
func (p *Panel) Codepage() string { return p.codepage }

// SetCodepage sets the display codepage label.
func (p *Panel) SetCodepage(cp string) { p.codepage = cp }

// Entries returns the current listing. Callers must not reorder it.
func (p *Panel) Entries() []*dirlist.Entry { return p.entries }

// SelectedEntry returns the entry under the cursor, or nil for an empty
// listing.
func (p *Panel) SelectedEntry() *dirlist.Entry {
	if p.View.Selected < 0 || p.View.Selected >= len(p.entries) {
		return nil
	}
	return p.entries[p.View.Selected]
}

func (p *Panel) comparator() func(a, b *dirlist.Entry) bool {
	c := p.sortField.Comparator(p.sortCaseSensitive, p.sortReverse)
	if c == nil {
		c = p.reg.ByID("name").Comparator(p.sortCaseSensitive, p.sortReverse)
	}
	return c
}

func (p *Panel) selectName(name string) {
	for i, e := range p.entries {
		if e.Name == name {
			p.View.Selected = i
			break
		}
	}
	p.View.AdjustTop()
}

// Reload re-reads the current directory, keeping the selection on the same
// file name when it survives.
func (p *Panel) Reload() error {
	keep := ""
	if e := p.SelectedEntry(); e != nil {
		keep = e.Name
	}
	entries, err := p.lister.Reload(p.cwd, p.comparator(), p.filter)
	if err != nil {
		return err
	}
	p.entries = entries
	p.View.SetEntryCount(len(entries))
	if keep != "" {
		p.selectName(keep)
	}
	return nil
}

// CD changes to target. The new listing is read before any panel state
// changes, so a failed CD leaves the panel exactly as it was. Entering the
// parent directory puts the cursor on the directory we came from.
func (p *Panel) CD(target fspath.Path) error {
	entries, err := p.lister.Reload(target, p.comparator(), p.filter)
	if err != nil {
		return err
	}
	prev := p.cwd
	p.cwd = target
	p.entries = entries
	p.View.Selected, p.View.Top = 0, 0
	p.View.SetEntryCount(len(entries))
	p.View.ResetShift()
	p.StopSearch()
	if !prev.IsZero() && prev.Parent().Equal(target) && !prev.Equal(target) {
		p.selectName(prev.Base())
	}
	return nil
}

// CDUp enters the parent directory.
func (p *Panel) CDUp() error {
	return p.CD(p.cwd.Parent())
}

// SetFilter installs a file-name filter for subsequent reloads. An empty
// pattern clears it. The listing is not reloaded here.
func (p *Panel) SetFilter(pattern string) error {
	if pattern == "" {
		p.filter = nil
		return nil
	}
	m, err := match.Compile(pattern, p.sortCaseSensitive)
	if err != nil {
		return err
	}
	p.filter = m
	return nil
}

// SortByField makes f the sort key, re-sorting in place. Selecting the
// active key again flips the direction. Unsortable fields are ignored.
func (p *Panel) SortByField(f *FieldDescriptor) {
	if f == nil || !f.HasComparator() {
		return
	}
	if f == p.sortField {
		p.sortReverse = !p.sortReverse
	} else {
		p.sortField = f
		p.sortReverse = false
	}
	p.resort()
}

// SetSort installs a sort key and direction without the toggle behavior,
// for config and dialog paths.
func (p *Panel) SetSort(f *FieldDescriptor, reverse, caseSensitive bool) {
	if f == nil || !f.HasComparator() {
		return
	}
	p.sortField = f
	p.sortReverse = reverse
	p.sortCaseSensitive = caseSensitive
	p.resort()
}

// SortField returns the active sort key and direction.
func (p *Panel) SortField() (*FieldDescriptor, bool) {
	return p.sortField, p.sortReverse
}

func (p *Panel) resort() {
	keep := ""
	if e := p.SelectedEntry(); e != nil {
		keep = e.Name
	}
	less := p.comparator()
	sort.SliceStable(p.entries, func(i, j int) bool {
		a, b := p.entries[i], p.entries[j]
		// the up-dir entry is pinned to the top regardless of key
		if a.IsUpDir() != b.IsUpDir() {
			return a.IsUpDir()
		}
		return less(a, b)
	})
	if keep != "" {
		p.selectName(keep)
	}
}

// SortClickColumn resolves a click at cell offset x in the header row to
// its column and sorts by it. Returns the field hit, or nil when the click
// landed on a separator or an unsortable column.
func (p *Panel) SortClickColumn(x int) *FieldDescriptor {
	pos := 0
	for _, it := range p.items {
		if x < pos+it.ComputedWidth {
			if it.Field.HasComparator() {
				p.SortByField(it.Field)
				return it.Field
			}
			return nil
		}
		pos += it.ComputedWidth
	}
	return nil
}

// ToggleMark flips the mark on the selected entry. The up-dir pseudo entry
// is never markable.
func (p *Panel) ToggleMark() {
	e := p.SelectedEntry()
	if e == nil || e.IsUpDir() {
		return
	}
	e.Marked = !e.Marked
}

// MarkMatching marks every file whose name matches the glob. Directories
// and the up-dir entry are left alone.
func (p *Panel) MarkMatching(pattern string) error {
	return p.setMarks(pattern, true)
}

// UnmarkMatching clears the mark on every matching file.
func (p *Panel) UnmarkMatching(pattern string) error {
	return p.setMarks(pattern, false)
}

func (p *Panel) setMarks(pattern string, mark bool) error {
	m, err := match.Compile(pattern, p.sortCaseSensitive)
	if err != nil {
		return err
	}
	for _, e := range p.entries {
		if e.IsDir() || e.IsUpDir() {
			continue
		}
		if m.Match(e.Name) {
			e.Marked = mark
		}
	}
	return nil
}

// InvertMarks toggles the mark on every file.
func (p *Panel) InvertMarks() {
	for _, e := range p.entries {
		if e.IsDir() || e.IsUpDir() {
			continue
		}
		e.Marked = !e.Marked
	}
}

// MarkedTotals returns the marked file count and byte total for the mini
// status line.
func (p *Panel) MarkedTotals() (int, int64) {
	return dirlist.MarkedStats(p.entries)
}

// Tabs exposes the panel's tab ring. The app layer uses it for the
// cross-panel move and swap.
func (p *Panel) Tabs() *tabs.Ring { return p.ring }

// ActiveTabPath returns the live path of the current tab, which is simply
// the panel's working directory.
func (p *Panel) ActiveTabPath() fspath.Path { return p.cwd }

// changeTab makes tab i current. The outgoing tab remembers the panel's
// working directory; the incoming tab's saved path is entered when it has
// one. The ring advances even when that CD fails, so the failing tab stays
// selected and shows the old directory.
func (p *Panel) changeTab(i int) error {
	if i == p.ring.CurrentIndex() || i < 0 || i >= p.ring.Len() {
		return nil
	}
	p.ring.Current().Path = p.cwd.Clone()
	p.ring.SetCurrent(i)
	incoming := p.ring.Current()
	if incoming.Path.IsZero() || incoming.Path.Equal(p.cwd) {
		return nil
	}
	return p.CD(incoming.Path)
}

// NewTab opens a fresh tab at the position the direction names and makes
// it current. The new tab inherits the working directory by carrying no
// path of its own.
func (p *Panel) NewTab(d tabs.Direction) error {
	idx := p.ring.Insert(d, &tabs.Tab{})
	return p.changeTab(idx)
}

// CloseTab removes the current tab. Its previous neighbor becomes current
// and the panel enters that tab's directory. Closing the only tab fails
// with tabs.ErrLastTab.
func (p *Panel) CloseTab() error {
	if _, err := p.ring.Remove(p.ring.CurrentIndex()); err != nil {
		return err
	}
	incoming := p.ring.Current()
	if incoming.Path.IsZero() || incoming.Path.Equal(p.cwd) {
		return nil
	}
	return p.CD(incoming.Path)
}

// StepTab changes to the tab the direction names, wrapping circularly.
func (p *Panel) StepTab(d tabs.Direction) error {
	return p.changeTab(p.ring.StepTarget(d))
}

// SelectTab changes to the tab at index i.
func (p *Panel) SelectTab(i int) error {
	return p.changeTab(i)
}

// RenameTab sets the display name of the current tab. An empty name
// reverts to the directory-derived label.
func (p *Panel) RenameTab(name string) {
	p.ring.Current().Name = name
}

// DetachCurrentTab removes the current tab and hands it over, for the
// move-to-other-panel command. The detached tab carries the live working
// directory. Fails with tabs.ErrLastTab on a singleton ring.
func (p *Panel) DetachCurrentTab() (*tabs.Tab, error) {
	if p.ring.Len() == 1 {
		return nil, tabs.ErrLastTab
	}
	t, err := p.ring.Remove(p.ring.CurrentIndex())
	if err != nil {
		return nil, err
	}
	t.Path = p.cwd.Clone()
	incoming := p.ring.Current()
	if !incoming.Path.IsZero() && !incoming.Path.Equal(p.cwd) {
		if cderr := p.CD(incoming.Path); cderr != nil {
			log.WarningLog.Printf("panel %s: cd %s after tab detach: %v", p.Name, incoming.Path.Redacted(), cderr)
		}
	}
	return t, nil
}

// AttachTab inserts a tab at the position the direction names and changes
// to it.
func (p *Panel) AttachTab(d tabs.Direction, t *tabs.Tab) error {
	idx := p.ring.Insert(d, t)
	return p.changeTab(idx)
}

// SwapCurrentTab exchanges the panel's current tab for t and returns the
// old one carrying the live working directory. The panel then enters t's
// directory.
func (p *Panel) SwapCurrentTab(t *tabs.Tab) (*tabs.Tab, error) {
	old := p.ring.ReplaceCurrent(t)
	old.Path = p.cwd.Clone()
	var err error
	if !t.Path.IsZero() && !t.Path.Equal(p.cwd) {
		err = p.CD(t.Path)
	}
	return old, err
}

// RestoreTabs replaces the whole ring from a session snapshot and enters
// the restored current tab's directory.
func (p *Panel) RestoreTabs(r *tabs.Ring) error {
	p.ring = r
	cur := r.Current()
	if cur.Path.IsZero() {
		return nil
	}
	return p.CD(cur.Path)
}
