package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"mariner/panel"
)

// FitText renders s into exactly width cells honoring the column's justify
// mode. Overlong fit columns keep both ends of the text around a tilde;
// non-fit columns clip the tail.
func FitText(s string, width int, j panel.Justify) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w > width {
		if j.Fit {
			s = squeeze(s, width)
		} else {
			s = truncate.String(s, uint(width))
		}
		w = runewidth.StringWidth(s)
	}
	pad := width - w
	switch j.Align {
	case panel.AlignRight:
		return strings.Repeat(" ", pad) + s
	case panel.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// squeeze keeps the head and tail of an overlong string with a tilde in
// the middle, so both the base name and the extension stay readable.
func squeeze(s string, width int) string {
	if width <= 1 {
		return "~"
	}
	head := (width - 1) / 2
	tail := width - 1 - head
	return string(takeWidth(s, head)) + "~" + string(takeWidthRight(s, tail))
}

func takeWidth(s string, width int) []rune {
	var out []rune
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			break
		}
		out = append(out, r)
		w += rw
	}
	return out
}

func takeWidthRight(s string, width int) []rune {
	runes := []rune(s)
	w := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return runes[i:]
}

// ShiftText drops the first shift cells of a string, for the horizontal
// name scroll. A negative shift is the inactive state and changes nothing.
func ShiftText(s string, shift int) string {
	if shift <= 0 {
		return s
	}
	runes := []rune(s)
	w := 0
	for i, r := range runes {
		if w >= shift {
			return string(runes[i:])
		}
		w += runewidth.RuneWidth(r)
	}
	return ""
}
