// Package dirlist supplies the directory-listing collaborator: the entries
// a panel displays and the Lister that produces them.
package dirlist

import (
	"io/fs"
	"time"

	"mariner/fspath"
	"mariner/match"
)

// Entry is one file in a listing. Entries are owned by the listing; the
// panel mutates only the Marked flag.
type Entry struct {
	Name       string
	Size       int64
	Blocks     int64
	Mode       fs.FileMode
	ModTime    time.Time
	AccessTime time.Time
	ChangeTime time.Time
	Nlink      uint64
	Inode      uint64
	UID        uint32
	GID        uint32
	Owner      string
	Group      string
	LinkIsDir  bool

	Marked bool
}

// IsDir reports whether the entry is a directory or a symlink resolving to
// one. Directory-ness drives sorting and the bulk-mark exclusion.
func (e *Entry) IsDir() bool {
	return e.Mode.IsDir() || e.LinkIsDir
}

// IsUpDir reports whether the entry is the parent-directory pseudo entry.
func (e *Entry) IsUpDir() bool {
	return e.Name == ".."
}

// Lister produces the ordered entry sequence for a directory. Reload is
// synchronous; the caller blocks until the new listing is available.
type Lister interface {
	Reload(path fspath.Path, less func(a, b *Entry) bool, filter *match.Matcher) ([]*Entry, error)
}

// MarkedStats returns the number of marked entries and their total size,
// for the mini status line.
func MarkedStats(entries []*Entry) (count int, bytes int64) {
	for _, e := range entries {
		if e.Marked {
			count++
			bytes += e.Size
		}
	}
	return count, bytes
}
