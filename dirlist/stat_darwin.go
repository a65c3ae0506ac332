//go:build darwin

package dirlist

import (
	"io/fs"
	"syscall"
	"time"
)

func (l *FS) fillSys(e *Entry, info fs.FileInfo) bool {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	e.Blocks = st.Blocks
	e.Nlink = uint64(st.Nlink)
	e.Inode = st.Ino
	e.UID = st.Uid
	e.GID = st.Gid
	e.AccessTime = time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	e.ChangeTime = time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
	e.Owner = l.ownerName(st.Uid)
	e.Group = l.groupName(st.Gid)
	return true
}
