// Package panel implements the state and layout core of a directory panel:
// the column field registry, the display-format compiler, the column width
// allocator, the viewport/selection state with incremental search, and the
// Panel aggregate tying them to a tab ring.
package panel

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"mariner/dirlist"
)

// Align is the horizontal alignment of a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Justify combines an alignment with the "fit" flag. Fit columns squeeze
// overlong content around a tilde instead of clipping one end.
type Justify struct {
	Align Align
	Fit   bool
}

// FieldKind is the closed set of column kinds. Formatting and comparison
// dispatch on it through switches; there is no per-field function pointer.
type FieldKind int

const (
	FieldUnsorted FieldKind = iota
	FieldName
	FieldVersion
	FieldExtension
	FieldSize
	FieldBSize
	FieldType
	FieldMTime
	FieldATime
	FieldCTime
	FieldPerm
	FieldMode
	FieldNlink
	FieldInode
	FieldNUID
	FieldNGID
	FieldOwner
	FieldGroup
	FieldMark
	FieldSeparator
	FieldSpace
	FieldDot
)

// FieldDescriptor describes one available column kind. Descriptors are
// immutable and owned by the Registry.
type FieldDescriptor struct {
	Kind           FieldKind
	ID             string
	MinWidth       int
	Expandable     bool
	DefaultJustify Justify
	// TitleHotkey is the column title with an '&' marking the hotkey
	// letter used in the sort-order dialog.
	TitleHotkey    string
	Sortable       bool
	UserSelectable bool
}

// Title returns the display title with the hotkey marker stripped.
func (f *FieldDescriptor) Title() string {
	return strings.ReplaceAll(f.TitleHotkey, "&", "")
}

// IsSeparator reports whether this is the literal "|" pseudo-field, the
// only field without a formatter.
func (f *FieldDescriptor) IsSeparator() bool {
	return f.Kind == FieldSeparator
}

// HasComparator reports whether the field can drive the sort order.
func (f *FieldDescriptor) HasComparator() bool {
	return f.Sortable
}

// Registry is the fixed, read-only catalog of fields. Order matters: the
// format compiler matches ids by literal prefix in registry order.
type Registry struct {
	fields []FieldDescriptor
}

var (
	leftFit = Justify{Align: AlignLeft, Fit: true}
	left    = Justify{Align: AlignLeft}
	right   = Justify{Align: AlignRight}
)

// NewRegistry returns the catalog. Every call returns an equivalent
// registry; callers typically share one per process.
func NewRegistry() *Registry {
	return &Registry{fields: []FieldDescriptor{
		{FieldUnsorted, "unsorted", 12, true, leftFit, "&Unsorted", true, false},
		{FieldName, "name", 12, true, leftFit, "&Name", true, true},
		{FieldVersion, "version", 12, true, leftFit, "&Version", true, false},
		{FieldExtension, "extension", 12, true, leftFit, "E&xtension", true, false},
		{FieldSize, "size", 7, false, right, "&Size", true, true},
		{FieldBSize, "bsize", 7, false, right, "Block Size", false, false},
		{FieldType, "type", 1, false, left, "", false, true},
		{FieldMTime, "mtime", 12, false, right, "&Modify time", true, true},
		{FieldATime, "atime", 12, false, right, "&Access time", true, true},
		{FieldCTime, "ctime", 12, false, right, "C&hange time", true, true},
		{FieldPerm, "perm", 10, false, left, "Permission", false, true},
		{FieldMode, "mode", 6, false, right, "Perm", false, true},
		{FieldNlink, "nlink", 2, false, right, "Nl", false, true},
		{FieldInode, "inode", 5, false, right, "&Inode", true, true},
		{FieldNUID, "nuid", 5, false, right, "UID", false, false},
		{FieldNGID, "ngid", 5, false, right, "GID", false, false},
		{FieldOwner, "owner", 8, false, leftFit, "Owner", false, true},
		{FieldGroup, "group", 8, false, leftFit, "Group", false, true},
		{FieldMark, "mark", 1, false, right, " ", false, true},
		{FieldSeparator, "|", 1, false, right, " ", false, true},
		{FieldSpace, "space", 1, false, right, " ", false, true},
		{FieldDot, "dot", 1, false, right, " ", false, false},
	}}
}

// ByID returns the field with the given id, or nil.
func (r *Registry) ByID(id string) *FieldDescriptor {
	for i := range r.fields {
		if r.fields[i].ID == id {
			return &r.fields[i]
		}
	}
	return nil
}

// ByTitle returns the field whose hotkey-stripped title matches, or nil.
func (r *Registry) ByTitle(title string) *FieldDescriptor {
	for i := range r.fields {
		if r.fields[i].Title() == title {
			return &r.fields[i]
		}
	}
	return nil
}

// Sortable enumerates the fields usable as sort keys.
func (r *Registry) Sortable() []*FieldDescriptor {
	var out []*FieldDescriptor
	for i := range r.fields {
		if r.fields[i].Sortable {
			out = append(out, &r.fields[i])
		}
	}
	return out
}

// UserSelectable enumerates the fields offered in the listing-format
// dialog.
func (r *Registry) UserSelectable() []*FieldDescriptor {
	var out []*FieldDescriptor
	for i := range r.fields {
		if r.fields[i].UserSelectable {
			out = append(out, &r.fields[i])
		}
	}
	return out
}

// matchPrefix returns the first field whose id is a literal prefix of s,
// plus the id length. First match wins, so registry order is significant.
func (r *Registry) matchPrefix(s string) (*FieldDescriptor, int) {
	for i := range r.fields {
		id := r.fields[i].ID
		if strings.HasPrefix(s, id) {
			return &r.fields[i], len(id)
		}
	}
	return nil, 0
}

// Format renders the field's cell text for an entry at the given width.
// The text is at most width cells; padding to the full width is the
// renderer's job. Every call returns a fresh string.
func (f *FieldDescriptor) Format(e *dirlist.Entry, width int) string {
	if width <= 0 {
		return ""
	}
	switch f.Kind {
	case FieldUnsorted, FieldName, FieldVersion, FieldExtension:
		return e.Name
	case FieldSize:
		if e.IsUpDir() {
			return "UP--DIR"
		}
		return sizeToWidth(e.Size, width)
	case FieldBSize:
		if e.IsUpDir() {
			return "UP--DIR"
		}
		return sizeToWidth(e.Blocks, width)
	case FieldType:
		return typeChar(e)
	case FieldMTime:
		return fileDate(e.ModTime)
	case FieldATime:
		return fileDate(e.AccessTime)
	case FieldCTime:
		return fileDate(e.ChangeTime)
	case FieldPerm:
		return permString(e.Mode)
	case FieldMode:
		return fmt.Sprintf("%04o", modeBits(e.Mode))
	case FieldNlink:
		return strconv.FormatUint(e.Nlink, 10)
	case FieldInode:
		return strconv.FormatUint(e.Inode, 10)
	case FieldNUID:
		return strconv.FormatUint(uint64(e.UID), 10)
	case FieldNGID:
		return strconv.FormatUint(uint64(e.GID), 10)
	case FieldOwner:
		return e.Owner
	case FieldGroup:
		return e.Group
	case FieldMark:
		if e.Marked {
			return "*"
		}
		return " "
	case FieldSpace:
		return " "
	case FieldDot:
		return "."
	default:
		return ""
	}
}

// Comparator builds the entry ordering for a sortable field. Directories
// always sort before files; reverse applies only within each group, like
// the sort dialog promises.
func (f *FieldDescriptor) Comparator(caseSensitive, reverse bool) func(a, b *dirlist.Entry) bool {
	base := f.baseLess(caseSensitive)
	if base == nil {
		return nil
	}
	return func(a, b *dirlist.Entry) bool {
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		if reverse {
			return base(b, a)
		}
		return base(a, b)
	}
}

func (f *FieldDescriptor) baseLess(caseSensitive bool) func(a, b *dirlist.Entry) bool {
	nameLess := func(a, b *dirlist.Entry) bool {
		x, y := a.Name, b.Name
		if !caseSensitive {
			x, y = strings.ToLower(x), strings.ToLower(y)
		}
		return x < y
	}
	switch f.Kind {
	case FieldUnsorted:
		return func(a, b *dirlist.Entry) bool { return false }
	case FieldName:
		return nameLess
	case FieldVersion:
		return func(a, b *dirlist.Entry) bool { return versionCompare(a.Name, b.Name) < 0 }
	case FieldExtension:
		return func(a, b *dirlist.Entry) bool {
			ea, eb := extensionOf(a.Name), extensionOf(b.Name)
			if !caseSensitive {
				ea, eb = strings.ToLower(ea), strings.ToLower(eb)
			}
			if ea != eb {
				return ea < eb
			}
			return nameLess(a, b)
		}
	case FieldSize:
		return func(a, b *dirlist.Entry) bool {
			if a.Size != b.Size {
				return a.Size < b.Size
			}
			return nameLess(a, b)
		}
	case FieldMTime:
		return timeLess(func(e *dirlist.Entry) time.Time { return e.ModTime }, nameLess)
	case FieldATime:
		return timeLess(func(e *dirlist.Entry) time.Time { return e.AccessTime }, nameLess)
	case FieldCTime:
		return timeLess(func(e *dirlist.Entry) time.Time { return e.ChangeTime }, nameLess)
	case FieldInode:
		return func(a, b *dirlist.Entry) bool { return a.Inode < b.Inode }
	default:
		return nil
	}
}

func timeLess(at func(*dirlist.Entry) time.Time, tie func(a, b *dirlist.Entry) bool) func(a, b *dirlist.Entry) bool {
	return func(a, b *dirlist.Entry) bool {
		ta, tb := at(a), at(b)
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		return tie(a, b)
	}
}

func extensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

// versionCompare orders names the way version sort does: runs of digits
// compare numerically, everything else byte-wise.
func versionCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := takeNumber(a)
			nb, rb := takeNumber(b)
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return int(a[0]) - int(b[0])
		}
		a, b = a[1:], b[1:]
	}
	return len(a) - len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func takeNumber(s string) (uint64, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	n, _ := strconv.ParseUint(strings.TrimLeft(s[:i], "0")+"0", 10, 64)
	return n / 10, s[i:]
}

// sizeToWidth prints a size in at most width cells, falling back to K/M/G/T
// suffixes when the plain digits do not fit.
func sizeToWidth(size int64, width int) string {
	s := strconv.FormatInt(size, 10)
	if runewidth.StringWidth(s) <= width {
		return s
	}
	units := []struct {
		div    int64
		suffix string
	}{
		{1 << 10, "K"},
		{1 << 20, "M"},
		{1 << 30, "G"},
		{1 << 40, "T"},
	}
	for _, u := range units {
		s = strconv.FormatInt((size+u.div-1)/u.div, 10) + u.suffix
		if len(s) <= width {
			return s
		}
	}
	return s
}

// typeChar is the one-cell file type indicator.
func typeChar(e *dirlist.Entry) string {
	m := e.Mode
	switch {
	case m.IsDir():
		return "/"
	case m&fs.ModeSymlink != 0:
		if e.LinkIsDir {
			return "~"
		}
		return "@"
	case m&fs.ModeNamedPipe != 0:
		return "|"
	case m&fs.ModeSocket != 0:
		return "="
	case m&fs.ModeDevice != 0:
		if m&fs.ModeCharDevice != 0 {
			return "-"
		}
		return "+"
	case m&0111 != 0:
		return "*"
	default:
		return " "
	}
}

// fileDate renders a timestamp the directory-listing way: time of day for
// recent files, year for older ones.
func fileDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	sixMonths := 180 * 24 * time.Hour
	now := time.Now()
	if now.Sub(t) < sixMonths && t.Sub(now) < time.Hour {
		return t.Format("Jan _2 15:04")
	}
	return t.Format("Jan _2  2006")
}

// permString renders the classic 10-character mode column.
func permString(m fs.FileMode) string {
	var b [10]byte
	switch {
	case m.IsDir():
		b[0] = 'd'
	case m&fs.ModeSymlink != 0:
		b[0] = 'l'
	case m&fs.ModeNamedPipe != 0:
		b[0] = 'p'
	case m&fs.ModeSocket != 0:
		b[0] = 's'
	case m&fs.ModeDevice != 0:
		if m&fs.ModeCharDevice != 0 {
			b[0] = 'c'
		} else {
			b[0] = 'b'
		}
	default:
		b[0] = '-'
	}
	perms := []byte("rwxrwxrwx")
	for i := 0; i < 9; i++ {
		if m&(1<<uint(8-i)) != 0 {
			b[i+1] = perms[i]
		} else {
			b[i+1] = '-'
		}
	}
	if m&fs.ModeSetuid != 0 {
		b[3] = flip(b[3], 's')
	}
	if m&fs.ModeSetgid != 0 {
		b[6] = flip(b[6], 's')
	}
	if m&fs.ModeSticky != 0 {
		b[9] = flip(b[9], 't')
	}
	return string(b[:])
}

func flip(cur, set byte) byte {
	if cur == '-' {
		return set - 'a' + 'A' // 'S' / 'T' when the execute bit is absent
	}
	return set
}

func modeBits(m fs.FileMode) uint32 {
	bits := uint32(m.Perm())
	if m&fs.ModeSetuid != 0 {
		bits |= 0o4000
	}
	if m&fs.ModeSetgid != 0 {
		bits |= 0o2000
	}
	if m&fs.ModeSticky != 0 {
		bits |= 0o1000
	}
	return bits
}
