package panel

import (
	"errors"
	"io/fs"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariner/dirlist"
	"mariner/fspath"
	"mariner/match"
	"mariner/tabs"
)

// fakeLister serves canned listings keyed by path, applying the comparator
// and filter the way the real lister does.
type fakeLister struct {
	dirs map[string][]dirlist.Entry
	fail map[string]bool
}

func (f *fakeLister) Reload(path fspath.Path, less func(a, b *dirlist.Entry) bool, filter *match.Matcher) ([]*dirlist.Entry, error) {
	if f.fail[path.String()] {
		return nil, errors.New("device not ready")
	}
	src, ok := f.dirs[path.String()]
	if !ok {
		return nil, fs.ErrNotExist
	}
	var out []*dirlist.Entry
	for i := range src {
		e := src[i]
		if filter != nil && !e.IsDir() && !filter.Match(e.Name) {
			continue
		}
		out = append(out, &e)
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsUpDir() && !out[j].IsUpDir() })
	return out, nil
}

func file(name string, size int64) dirlist.Entry {
	return dirlist.Entry{Name: name, Size: size, Mode: 0644}
}

func dir(name string) dirlist.Entry {
	return dirlist.Entry{Name: name, Mode: fs.ModeDir | 0755}
}

func testLister() *fakeLister {
	return &fakeLister{
		dirs: map[string][]dirlist.Entry{
			"/": {
				dir("home"),
				file("kernel", 4096),
			},
			"/home": {
				dir(".."),
				dir("projects"),
				file("notes.txt", 100),
				file("report.pdf", 300),
				file("readme.md", 200),
			},
			"/home/projects": {
				dir(".."),
				file("main.go", 50),
			},
		},
		fail: map[string]bool{},
	}
}

func testPanel(t *testing.T) (*Panel, *fakeLister) {
	t.Helper()
	l := testLister()
	p := New("left", NewRegistry(), l, Setup{SortField: "name"})
	p.Resize(80)
	p.SetPageSize(10)
	require.NoError(t, p.CD(fspath.New("/home")))
	return p, l
}

func entryNames(p *Panel) []string {
	out := make([]string, 0, len(p.Entries()))
	for _, e := range p.Entries() {
		out = append(out, e.Name)
	}
	return out
}

func TestCD_SortsDirsFirst(t *testing.T) {
	p, _ := testPanel(t)
	assert.Equal(t, []string{"..", "projects", "notes.txt", "readme.md", "report.pdf"}, entryNames(p))
	assert.Equal(t, 0, p.View.Selected)
}

func TestCD_FailureLeavesPanelUntouched(t *testing.T) {
	p, l := testPanel(t)
	p.View.Selected = 2
	l.fail["/home/projects"] = true

	err := p.CD(fspath.New("/home/projects"))
	require.Error(t, err)
	assert.Equal(t, "/home", p.CWD().String())
	assert.Equal(t, 2, p.View.Selected)
	assert.Len(t, p.Entries(), 5)
}

func TestCDUp_SelectsTheDirectoryWeCameFrom(t *testing.T) {
	p, _ := testPanel(t)
	require.NoError(t, p.CD(fspath.New("/home/projects")))
	require.NoError(t, p.CDUp())
	assert.Equal(t, "/home", p.CWD().String())
	require.NotNil(t, p.SelectedEntry())
	assert.Equal(t, "projects", p.SelectedEntry().Name)
}

func TestReload_KeepsSelectionByName(t *testing.T) {
	p, l := testPanel(t)
	p.View.Selected = 3 // readme.md

	l.dirs["/home"] = append(l.dirs["/home"], file("aaa.log", 10))
	require.NoError(t, p.Reload())
	require.NotNil(t, p.SelectedEntry())
	assert.Equal(t, "readme.md", p.SelectedEntry().Name)
}

func TestApplyFormat_ErrorRevertsToDefault(t *testing.T) {
	p, _ := testPanel(t)
	err := p.ApplyFormat("half name frobnicator")
	require.Error(t, err)
	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)

	ids := make([]string, len(p.FormatItems()))
	for i, it := range p.FormatItems() {
		ids[i] = it.Field.ID
	}
	assert.Equal(t, []string{"type", "name", "|", "size", "|", "perm"}, ids)
}

func TestResize_UsableColumns(t *testing.T) {
	p, _ := testPanel(t)
	p.Resize(80)
	assert.Equal(t, 78, p.UsableColumns())

	require.NoError(t, p.SetBriefCols(3))
	require.NoError(t, p.SetListFormat(ListBrief))
	p.Resize(80)
	assert.Equal(t, 3, p.ListCols())
	assert.Equal(t, 78/3-1, p.UsableColumns())
}

func TestResize_AllocatesWidths(t *testing.T) {
	p, _ := testPanel(t)
	p.Resize(40)
	total := 0
	for _, it := range p.FormatItems() {
		total += it.ComputedWidth
	}
	assert.Equal(t, 38, total)
}

func TestSortByField_TogglesDirection(t *testing.T) {
	p, _ := testPanel(t)
	size := NewRegistry().ByID("size")

	p.SortByField(p.reg.ByID("size"))
	f, rev := p.SortField()
	assert.Equal(t, size.ID, f.ID)
	assert.False(t, rev)
	assert.Equal(t, []string{"..", "projects", "notes.txt", "readme.md", "report.pdf"}, entryNames(p))

	p.SortByField(f)
	_, rev = p.SortField()
	assert.True(t, rev)
	assert.Equal(t, []string{"..", "projects", "report.pdf", "readme.md", "notes.txt"}, entryNames(p),
		"reverse applies within the file group, directories stay on top")
}

func TestSortByField_KeepsSelection(t *testing.T) {
	p, _ := testPanel(t)
	p.View.Selected = 3 // readme.md
	p.SortByField(p.reg.ByID("size"))
	require.NotNil(t, p.SelectedEntry())
	assert.Equal(t, "readme.md", p.SelectedEntry().Name)
}

func TestSortClickColumn(t *testing.T) {
	p, _ := testPanel(t)
	p.Resize(40) // type:1 name:16 |:1 size:7 |:1 mtime:12

	f := p.SortClickColumn(2)
	require.NotNil(t, f)
	assert.Equal(t, "name", f.ID)

	assert.Nil(t, p.SortClickColumn(17), "separator column is not sortable")

	f = p.SortClickColumn(20)
	require.NotNil(t, f)
	assert.Equal(t, "size", f.ID)

	assert.Nil(t, p.SortClickColumn(500), "click past the last column")
}

func TestMarks(t *testing.T) {
	p, _ := testPanel(t)

	p.ToggleMark()
	assert.False(t, p.Entries()[0].Marked, "up-dir entry is never markable")

	require.NoError(t, p.MarkMatching("*.md"))
	require.NoError(t, p.MarkMatching("*.txt"))
	count, bytes := p.MarkedTotals()
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(300), bytes)

	p.InvertMarks()
	count, bytes = p.MarkedTotals()
	assert.Equal(t, 1, count)
	assert.Equal(t, int64(300), bytes)
	assert.False(t, p.Entries()[1].Marked, "directories are never marked")

	require.NoError(t, p.UnmarkMatching("*"))
	count, _ = p.MarkedTotals()
	assert.Zero(t, count)
}

func TestSetFilter_AppliesOnReload(t *testing.T) {
	p, _ := testPanel(t)
	require.NoError(t, p.SetFilter("*.md"))
	require.NoError(t, p.Reload())
	assert.Equal(t, []string{"..", "projects", "readme.md"}, entryNames(p),
		"the filter hides files only")

	require.NoError(t, p.SetFilter(""))
	require.NoError(t, p.Reload())
	assert.Len(t, p.Entries(), 5)
}

func TestNewTab_InheritsWorkingDirectory(t *testing.T) {
	p, _ := testPanel(t)
	require.NoError(t, p.NewTab(tabs.Next))
	assert.Equal(t, 2, p.Tabs().Len())
	assert.Equal(t, 1, p.Tabs().CurrentIndex())
	assert.Equal(t, "/home", p.CWD().String())
	assert.Equal(t, "/home", p.Tabs().At(0).Path.String(), "outgoing tab remembers the directory")
}

func TestStepTab_RestoresSavedDirectory(t *testing.T) {
	p, _ := testPanel(t)
	require.NoError(t, p.NewTab(tabs.Next))
	require.NoError(t, p.CD(fspath.New("/home/projects")))

	require.NoError(t, p.StepTab(tabs.Prev))
	assert.Equal(t, 0, p.Tabs().CurrentIndex())
	assert.Equal(t, "/home", p.CWD().String())

	require.NoError(t, p.StepTab(tabs.Next))
	assert.Equal(t, "/home/projects", p.CWD().String())
}

func TestStepTab_RingAdvancesEvenWhenCDFails(t *testing.T) {
	p, l := testPanel(t)
	require.NoError(t, p.NewTab(tabs.Next))
	require.NoError(t, p.CD(fspath.New("/home/projects")))
	require.NoError(t, p.StepTab(tabs.Prev))

	l.fail["/home/projects"] = true
	err := p.StepTab(tabs.Next)
	assert.Error(t, err)
	assert.Equal(t, 1, p.Tabs().CurrentIndex(), "the failing tab stays selected")
	assert.Equal(t, "/home", p.CWD().String(), "showing the old directory")
}

func TestCloseTab(t *testing.T) {
	p, _ := testPanel(t)
	assert.ErrorIs(t, p.CloseTab(), tabs.ErrLastTab)

	require.NoError(t, p.NewTab(tabs.Next))
	require.NoError(t, p.CD(fspath.New("/home/projects")))
	require.NoError(t, p.CloseTab())
	assert.Equal(t, 1, p.Tabs().Len())
	assert.Equal(t, "/home", p.CWD().String(), "previous neighbor's directory is entered")
}

func TestRenameTab(t *testing.T) {
	p, _ := testPanel(t)
	p.RenameTab("scratch")
	assert.Equal(t, "scratch", p.Tabs().Current().Name)
}

func TestDetachCurrentTab(t *testing.T) {
	p, _ := testPanel(t)
	_, err := p.DetachCurrentTab()
	assert.ErrorIs(t, err, tabs.ErrLastTab)

	require.NoError(t, p.NewTab(tabs.Next))
	require.NoError(t, p.CD(fspath.New("/home/projects")))
	tab, err := p.DetachCurrentTab()
	require.NoError(t, err)
	assert.Equal(t, "/home/projects", tab.Path.String(), "detached tab carries the live directory")
	assert.Equal(t, 1, p.Tabs().Len())
	assert.Equal(t, "/home", p.CWD().String())
}

func TestAttachTab(t *testing.T) {
	p, _ := testPanel(t)
	require.NoError(t, p.AttachTab(tabs.Next, &tabs.Tab{Name: "moved", Path: fspath.New("/home/projects")}))
	assert.Equal(t, 2, p.Tabs().Len())
	assert.Equal(t, "moved", p.Tabs().Current().Name)
	assert.Equal(t, "/home/projects", p.CWD().String())
}

func TestSwapCurrentTab(t *testing.T) {
	p, _ := testPanel(t)
	old, err := p.SwapCurrentTab(&tabs.Tab{Name: "in", Path: fspath.New("/home/projects")})
	require.NoError(t, err)
	assert.Equal(t, "/home", old.Path.String())
	assert.Equal(t, "in", p.Tabs().Current().Name)
	assert.Equal(t, "/home/projects", p.CWD().String())
}

func TestRestoreTabs(t *testing.T) {
	p, _ := testPanel(t)
	snap := tabs.PanelSnapshot{
		Listing: true,
		Current: 1,
		Tabs: []*tabs.Tab{
			{Name: "root", Path: fspath.New("/")},
			{Name: "", Path: fspath.New("/home/projects")},
		},
	}
	require.NoError(t, p.RestoreTabs(snap.Ring()))
	assert.Equal(t, 2, p.Tabs().Len())
	assert.Equal(t, 1, p.Tabs().CurrentIndex())
	assert.Equal(t, "/home/projects", p.CWD().String())
}
