package panel

import (
	"fmt"
	"strings"
)

// DefaultUserFormat is the fallback format spec for user listing mode and
// for recovery after a compile error.
const DefaultUserFormat = "half type name | size | perm"

// ListFormat selects one of the built-in format presets.
type ListFormat int

const (
	ListFull ListFormat = iota
	ListBrief
	ListLong
	ListUser
)

// String names the preset for logs and crash context.
func (m ListFormat) String() string {
	switch m {
	case ListFull:
		return "full"
	case ListBrief:
		return "brief"
	case ListLong:
		return "long"
	case ListUser:
		return "user"
	}
	return "unknown"
}

// FrameSize says whether the panel wants the full terminal width or half
// of it.
type FrameSize int

const (
	FrameHalf FrameSize = iota
	FrameFull
)

// SizeHint is the optional panel-size prefix of a format spec.
type SizeHint struct {
	Frame FrameSize
	// Cols is the list column count (1..9). Only meaningful when ColsSet.
	Cols    int
	ColsSet bool
}

// FormatItem is one compiled column. ComputedWidth is written only by
// AllocateWidths.
type FormatItem struct {
	Field          *FieldDescriptor
	Title          string
	RequestedWidth int
	ComputedWidth  int
	Justify        Justify
	Expand         bool
}

// FormatError reports an unknown or malformed clause in a format spec. It
// carries the offending fragment truncated to eight characters.
type FormatError struct {
	Fragment string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown tag on display format: %s", e.Fragment)
}

func isFormatSeparator(c byte) bool {
	return c == ' ' || c == ','
}

func skipSeparators(s string) string {
	i := 0
	for i < len(s) && isFormatSeparator(s[i]) {
		i++
	}
	return s[i:]
}

// parsePanelSize consumes the optional "full"/"half" prefix and the
// optional column-count digit.
func parsePanelSize(spec string) (string, SizeHint) {
	hint := SizeHint{Frame: FrameHalf, Cols: 1}

	spec = skipSeparators(spec)
	if strings.HasPrefix(spec, "full") {
		hint.Frame = FrameFull
		spec = spec[4:]
	} else if strings.HasPrefix(spec, "half") {
		hint.Frame = FrameHalf
		spec = spec[4:]
	}

	spec = skipSeparators(spec)
	if spec != "" && spec[0] >= '1' && spec[0] <= '9' {
		hint.Cols = int(spec[0] - '0')
		hint.ColsSet = true
		spec = spec[1:]
	}
	return skipSeparators(spec), hint
}

/* A format spec is:

   all              := panel_format? format
   panel_format     := [full|half] [1-9]
   format           := item | format , item
   item             := just? field_id opt_size?
   just             := [<=>]
   opt_size         := : size opt_expand?
   size             := [0-9]+
   opt_expand       := +
*/

// CompileFormat parses a format spec against the registry. On failure no
// partial items are returned.
func CompileFormat(reg *Registry, spec string) ([]*FormatItem, SizeHint, error) {
	spec, hint := parsePanelSize(spec)

	var items []*FormatItem
	for spec != "" {
		spec = skipSeparators(spec)
		if spec == "" {
			break
		}

		var justify Justify
		setJustify := true
		switch spec[0] {
		case '<':
			justify = Justify{Align: AlignLeft}
			spec = skipSeparators(spec[1:])
		case '=':
			justify = Justify{Align: AlignCenter}
			spec = skipSeparators(spec[1:])
		case '>':
			justify = Justify{Align: AlignRight}
			spec = skipSeparators(spec[1:])
		default:
			setJustify = false
		}

		field, idLen := reg.matchPrefix(spec)
		if field == nil {
			frag := spec
			if len(frag) > 8 {
				frag = frag[:8]
			}
			return nil, hint, &FormatError{Fragment: frag}
		}
		spec = spec[idLen:]

		item := &FormatItem{
			Field:          field,
			Title:          field.Title(),
			RequestedWidth: field.MinWidth,
			Justify:        field.DefaultJustify,
			Expand:         field.Expandable,
		}
		if setJustify {
			// An explicit marker keeps the field's fit behavior.
			item.Justify = Justify{Align: justify.Align, Fit: field.DefaultJustify.Fit}
		}

		spec = skipSeparators(spec)
		if spec != "" && spec[0] == ':' {
			// An explicit width disables auto-expansion unless the
			// clause insists with a trailing '+'.
			item.Expand = false
			spec = spec[1:]
			w := 0
			for spec != "" && spec[0] >= '0' && spec[0] <= '9' {
				w = w*10 + int(spec[0]-'0')
				spec = spec[1:]
			}
			item.RequestedWidth = w
			if spec != "" && spec[0] == '+' {
				item.Expand = true
				spec = spec[1:]
			}
		}

		items = append(items, item)
	}
	return items, hint, nil
}

// PresetFormat returns the format spec for a listing mode. briefCols is
// clamped to 1..9; userFormat substitutes for ListUser (empty falls back to
// the default).
func PresetFormat(mode ListFormat, briefCols int, userFormat string) string {
	switch mode {
	case ListLong:
		return "full perm space nlink space owner space group space size space mtime space name"
	case ListBrief:
		if briefCols < 1 {
			briefCols = 2
		}
		if briefCols > 9 {
			briefCols = 9
		}
		return fmt.Sprintf("half %d type name", briefCols)
	case ListUser:
		if userFormat == "" {
			return DefaultUserFormat
		}
		return userFormat
	default:
		return "half type name | size | mtime"
	}
}
