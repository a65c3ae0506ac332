package panel

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariner/dirlist"
)

func TestRegistry_Lookups(t *testing.T) {
	reg := NewRegistry()

	f := reg.ByID("size")
	require.NotNil(t, f)
	assert.Equal(t, FieldSize, f.Kind)
	assert.Equal(t, 7, f.MinWidth)
	assert.False(t, f.Expandable)

	assert.Nil(t, reg.ByID("nope"))

	byTitle := reg.ByTitle("Modify time")
	require.NotNil(t, byTitle)
	assert.Equal(t, FieldMTime, byTitle.Kind)
}

func TestRegistry_OnlySeparatorLacksFormatter(t *testing.T) {
	reg := NewRegistry()
	e := &dirlist.Entry{Name: "x"}
	for _, f := range reg.UserSelectable() {
		if f.IsSeparator() {
			continue
		}
		assert.NotPanics(t, func() { f.Format(e, 10) }, f.ID)
	}
}

func TestRegistry_PrefixMatchUsesRegistryOrder(t *testing.T) {
	reg := NewRegistry()

	f, n := reg.matchPrefix("name:20")
	require.NotNil(t, f)
	assert.Equal(t, FieldName, f.Kind)
	assert.Equal(t, 4, n)

	f, n = reg.matchPrefix("nlink size")
	require.NotNil(t, f)
	assert.Equal(t, FieldNlink, f.Kind)
	assert.Equal(t, 5, n)

	f, _ = reg.matchPrefix("bogus")
	assert.Nil(t, f)
}

func TestFormat_Size(t *testing.T) {
	size := NewRegistry().ByID("size")

	assert.Equal(t, "1234", size.Format(&dirlist.Entry{Name: "f", Size: 1234}, 7))
	// too narrow for the digits, falls to a suffixed form
	assert.Equal(t, "2M", size.Format(&dirlist.Entry{Name: "f", Size: 1234567}, 3))
	assert.Equal(t, "UP--DIR", size.Format(&dirlist.Entry{Name: "..", Mode: fs.ModeDir}, 7))
	assert.Equal(t, "", size.Format(&dirlist.Entry{Name: "f"}, 0))
}

func TestFormat_TypeChar(t *testing.T) {
	typ := NewRegistry().ByID("type")
	cases := []struct {
		name string
		e    dirlist.Entry
		want string
	}{
		{"dir", dirlist.Entry{Mode: fs.ModeDir | 0755}, "/"},
		{"symlink", dirlist.Entry{Mode: fs.ModeSymlink}, "@"},
		{"symlink to dir", dirlist.Entry{Mode: fs.ModeSymlink, LinkIsDir: true}, "~"},
		{"fifo", dirlist.Entry{Mode: fs.ModeNamedPipe}, "|"},
		{"socket", dirlist.Entry{Mode: fs.ModeSocket}, "="},
		{"char device", dirlist.Entry{Mode: fs.ModeDevice | fs.ModeCharDevice}, "-"},
		{"block device", dirlist.Entry{Mode: fs.ModeDevice}, "+"},
		{"executable", dirlist.Entry{Mode: 0755}, "*"},
		{"plain", dirlist.Entry{Mode: 0644}, " "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, typ.Format(&tc.e, 1))
		})
	}
}

func TestFormat_Perm(t *testing.T) {
	perm := NewRegistry().ByID("perm")

	assert.Equal(t, "-rw-r--r--", perm.Format(&dirlist.Entry{Mode: 0644}, 10))
	assert.Equal(t, "drwxr-xr-x", perm.Format(&dirlist.Entry{Mode: fs.ModeDir | 0755}, 10))
	assert.Equal(t, "-rwsr-xr-x", perm.Format(&dirlist.Entry{Mode: 0755 | fs.ModeSetuid}, 10))
	// setuid without the execute bit shows a capital S
	assert.Equal(t, "-rwSr--r--", perm.Format(&dirlist.Entry{Mode: 0644 | fs.ModeSetuid}, 10))

	mode := NewRegistry().ByID("mode")
	assert.Equal(t, "4755", mode.Format(&dirlist.Entry{Mode: 0755 | fs.ModeSetuid}, 6))
}

func TestFormat_Mark(t *testing.T) {
	mark := NewRegistry().ByID("mark")
	assert.Equal(t, "*", mark.Format(&dirlist.Entry{Marked: true}, 1))
	assert.Equal(t, " ", mark.Format(&dirlist.Entry{}, 1))
}

func TestFileDate_RecentVsOld(t *testing.T) {
	mtime := NewRegistry().ByID("mtime")

	recent := time.Now().Add(-2 * time.Hour)
	assert.Equal(t, recent.Format("Jan _2 15:04"),
		mtime.Format(&dirlist.Entry{ModTime: recent}, 12))

	old := time.Now().Add(-365 * 24 * time.Hour)
	assert.Equal(t, old.Format("Jan _2  2006"),
		mtime.Format(&dirlist.Entry{ModTime: old}, 12))

	assert.Equal(t, "", mtime.Format(&dirlist.Entry{}, 12))
}

func TestComparator_DirectoriesAlwaysFirst(t *testing.T) {
	name := NewRegistry().ByID("name")
	less := name.Comparator(false, false)

	d := &dirlist.Entry{Name: "zzz", Mode: fs.ModeDir}
	f := &dirlist.Entry{Name: "aaa"}
	assert.True(t, less(d, f))
	assert.False(t, less(f, d))

	// reverse flips the order within a group only
	rless := name.Comparator(false, true)
	assert.True(t, rless(d, f), "directory still first under reverse")
	a := &dirlist.Entry{Name: "aaa"}
	z := &dirlist.Entry{Name: "zzz"}
	assert.True(t, rless(z, a))
}

func TestComparator_NameCase(t *testing.T) {
	name := NewRegistry().ByID("name")
	a := &dirlist.Entry{Name: "Beta"}
	b := &dirlist.Entry{Name: "alpha"}

	insensitive := name.Comparator(false, false)
	assert.True(t, insensitive(b, a), "alpha before Beta when folding case")

	sensitive := name.Comparator(true, false)
	assert.True(t, sensitive(a, b), "uppercase sorts first byte-wise")
}

func TestComparator_ExtensionTiesOnName(t *testing.T) {
	ext := NewRegistry().ByID("extension")
	less := ext.Comparator(false, false)

	tarGz := &dirlist.Entry{Name: "b.gz"}
	txt := &dirlist.Entry{Name: "a.txt"}
	assert.True(t, less(tarGz, txt))

	x := &dirlist.Entry{Name: "a.txt"}
	y := &dirlist.Entry{Name: "b.txt"}
	assert.True(t, less(x, y), "same extension falls back to name")
}

func TestComparator_SizeAndUnsorted(t *testing.T) {
	size := NewRegistry().ByID("size")
	less := size.Comparator(false, false)
	small := &dirlist.Entry{Name: "b", Size: 1}
	big := &dirlist.Entry{Name: "a", Size: 2}
	assert.True(t, less(small, big))

	unsorted := NewRegistry().ByID("unsorted")
	uless := unsorted.Comparator(false, false)
	assert.False(t, uless(small, big))
	assert.False(t, uless(big, small))

	perm := NewRegistry().ByID("perm")
	assert.Nil(t, perm.Comparator(false, false), "perm is not sortable")
}

func TestVersionCompare(t *testing.T) {
	cases := []struct {
		a, b string
		less bool
	}{
		{"file2", "file10", true},
		{"file10", "file2", false},
		{"v1.9", "v1.10", true},
		{"a", "b", true},
		{"file1", "file1", false},
	}
	for _, tc := range cases {
		got := versionCompare(tc.a, tc.b) < 0
		assert.Equal(t, tc.less, got, "%s vs %s", tc.a, tc.b)
	}
}
