//go:build !linux && !darwin

package dirlist

import "io/fs"

func (l *FS) fillSys(e *Entry, info fs.FileInfo) bool {
	return false
}
