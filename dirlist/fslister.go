package dirlist

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strconv"

	"mariner/fspath"
	"mariner/log"
	"mariner/match"
)

// FS lists local directories through the OS.
type FS struct {
	// ShowHidden includes dot files in the listing.
	ShowHidden bool

	owners map[uint32]string
	groups map[uint32]string
}

// NewFS returns a filesystem-backed lister.
func NewFS(showHidden bool) *FS {
	return &FS{
		ShowHidden: showHidden,
		owners:     make(map[uint32]string),
		groups:     make(map[uint32]string),
	}
}

// Reload reads the directory, applies the filter to plain files, sorts with
// the supplied comparator and returns the new listing. The ".." pseudo
// entry leads every non-root listing.
func (l *FS) Reload(path fspath.Path, less func(a, b *Entry) bool, filter *match.Matcher) ([]*Entry, error) {
	dir := path.String()
	names, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path.Redacted(), err)
	}

	entries := make([]*Entry, 0, len(names)+1)
	for _, de := range names {
		name := de.Name()
		if !l.ShowHidden && name[0] == '.' {
			continue
		}
		e, err := l.statEntry(dir, name)
		if err != nil {
			// A file that vanished mid-listing is not worth failing the
			// whole reload over.
			log.WarningLog.Printf("stat %s: %v", name, err)
			continue
		}
		if filter != nil && !e.IsDir() && !filter.Match(e.Name) {
			continue
		}
		entries = append(entries, e)
	}

	if less != nil {
		sort.SliceStable(entries, func(i, j int) bool {
			return less(entries[i], entries[j])
		})
	}

	if dir != "/" {
		up, err := l.statEntry(dir, "..")
		if err != nil {
			up = &Entry{Name: "..", Mode: os.ModeDir}
		}
		up.Name = ".."
		entries = append([]*Entry{up}, entries...)
	}
	return entries, nil
}

func (l *FS) statEntry(dir, name string) (*Entry, error) {
	full := filepath.Join(dir, name)
	info, err := os.Lstat(full)
	if err != nil {
		return nil, err
	}

	e := &Entry{
		Name:    name,
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Stat(full); err == nil && target.IsDir() {
			e.LinkIsDir = true
		}
	}
	if !l.fillSys(e, info) {
		e.AccessTime = info.ModTime()
		e.ChangeTime = info.ModTime()
		e.Nlink = 1
	}
	return e, nil
}

func (l *FS) ownerName(uid uint32) string {
	if name, ok := l.owners[uid]; ok {
		return name
	}
	name := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}
	l.owners[uid] = name
	return name
}

func (l *FS) groupName(gid uint32) string {
	if name, ok := l.groups[gid]; ok {
		return name
	}
	name := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(name); err == nil {
		name = g.Name
	}
	l.groups[gid] = name
	return name
}
