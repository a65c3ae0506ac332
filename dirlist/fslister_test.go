package dirlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariner/fspath"
	"mariner/log"
	"mariner/match"
)

func makeTestDir(t *testing.T) string {
	t.Helper()
	log.Initialize()
	dir := t.TempDir()
	for _, name := range []string{"alpha.txt", "beta.go", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))
	return dir
}

func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReload_SkipsHiddenAndLeadsWithUpDir(t *testing.T) {
	dir := makeTestDir(t)
	l := NewFS(false)
	entries, err := l.Reload(fspath.New(dir), nil, nil)
	require.NoError(t, err)

	got := names(entries)
	assert.Equal(t, "..", got[0])
	assert.NotContains(t, got, ".hidden")
	assert.Contains(t, got, "alpha.txt")
	assert.Contains(t, got, "subdir")
}

func TestReload_ShowHidden(t *testing.T) {
	dir := makeTestDir(t)
	l := NewFS(true)
	entries, err := l.Reload(fspath.New(dir), nil, nil)
	require.NoError(t, err)
	assert.Contains(t, names(entries), ".hidden")
}

func TestReload_FilterAppliesToFilesOnly(t *testing.T) {
	dir := makeTestDir(t)
	l := NewFS(false)
	m, err := match.Compile("*.go", true)
	require.NoError(t, err)

	entries, err := l.Reload(fspath.New(dir), nil, m)
	require.NoError(t, err)

	got := names(entries)
	assert.Contains(t, got, "beta.go")
	assert.Contains(t, got, "subdir", "directories bypass the filter")
	assert.NotContains(t, got, "alpha.txt")
}

func TestReload_SortsWithComparator(t *testing.T) {
	dir := makeTestDir(t)
	l := NewFS(false)
	byNameDesc := func(a, b *Entry) bool {
		return strings.ToLower(a.Name) > strings.ToLower(b.Name)
	}
	entries, err := l.Reload(fspath.New(dir), byNameDesc, nil)
	require.NoError(t, err)

	got := names(entries)
	require.Equal(t, "..", got[0], "the up-dir entry is pinned before sorted entries")
	rest := got[1:]
	assert.Equal(t, "subdir", rest[0])
}

func TestMarkedStats(t *testing.T) {
	entries := []*Entry{
		{Name: "a", Size: 10, Marked: true},
		{Name: "b", Size: 20},
		{Name: "c", Size: 30, Marked: true},
	}
	count, bytes := MarkedStats(entries)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(40), bytes)
}
