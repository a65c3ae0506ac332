package panel

// Repaint tells the renderer how much of the panel a movement invalidated.
type Repaint int

const (
	// RepaintNone means nothing changed.
	RepaintNone Repaint = iota
	// RepaintRows means only the previously and newly selected rows moved.
	RepaintRows
	// RepaintFull means the visible window shifted.
	RepaintFull
)

// Viewport owns the scroll/selection state of a panel. All indices refer to
// the listing supplied via SetEntryCount. Invariants while entryCount > 0:
// Selected in [0, entryCount-1], Top in [0, max(0, entryCount-pageSize)],
// Selected-Top in [0, pageSize).
type Viewport struct {
	Selected int
	Top      int

	// ContentShift is the horizontal scroll of the name column: -1 when
	// inactive, otherwise clamped to [0, MaxShift].
	ContentShift int
	// MaxShift is set by the renderer once it knows how much of the
	// longest visible name does not fit.
	MaxShift int

	// ScrollPages makes single-step moves that cross the window edge jump
	// half a page instead of one line.
	ScrollPages bool
	// TorbenFJMode makes Home/End walk via the middle of the page.
	TorbenFJMode bool

	pageSize   int
	entryCount int
}

// SetPageSize sets the number of visible rows and re-establishes the
// invariants.
func (v *Viewport) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	v.pageSize = n
	v.AdjustTop()
}

// PageSize returns the number of visible rows.
func (v *Viewport) PageSize() int {
	if v.pageSize < 1 {
		return 1
	}
	return v.pageSize
}

// SetEntryCount sets the listing length and re-establishes the invariants.
func (v *Viewport) SetEntryCount(n int) {
	if n < 0 {
		n = 0
	}
	v.entryCount = n
	v.AdjustTop()
}

// EntryCount returns the listing length.
func (v *Viewport) EntryCount() int { return v.entryCount }

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func (v *Viewport) maxTop() int {
	m := v.entryCount - v.PageSize()
	if m < 0 {
		m = 0
	}
	return m
}

// AdjustTop clamps Selected and moves Top as little as possible so the
// selection is visible and no window space is wasted. Call after reloads
// and resizes.
func (v *Viewport) AdjustTop() {
	if v.entryCount == 0 {
		v.Selected, v.Top = 0, 0
		return
	}
	v.Selected = clamp(v.Selected, 0, v.entryCount-1)
	if v.entryCount <= v.PageSize() {
		v.Top = 0
		return
	}
	if v.Top < v.Selected-v.PageSize()+1 {
		v.Top = v.Selected - v.PageSize() + 1
	}
	if v.Top > v.Selected {
		v.Top = v.Selected
	}
	v.Top = clamp(v.Top, 0, v.maxTop())
}

// MoveBy moves the selection by delta rows, clamped to the listing. When
// the new position falls outside the window, the window shifts by the same
// delta and the whole panel needs repainting.
func (v *Viewport) MoveBy(delta int) Repaint {
	if v.entryCount == 0 {
		return RepaintNone
	}
	newPos := clamp(v.Selected+delta, 0, v.entryCount-1)
	if newPos == v.Selected {
		return RepaintNone
	}
	v.Selected = newPos

	if v.Selected-v.Top >= v.PageSize() || v.Selected < v.Top {
		v.Top += delta
		if v.Top > v.Selected {
			v.Top = v.Selected
		}
		if v.Top < v.Selected-v.PageSize()+1 {
			v.Top = v.Selected - v.PageSize() + 1
		}
		v.Top = clamp(v.Top, 0, v.maxTop())
		return RepaintFull
	}
	return RepaintRows
}

// MoveDown advances the selection one row. With ScrollPages the window
// jumps half a page when the selection walks off its bottom edge.
func (v *Viewport) MoveDown() Repaint {
	if v.Selected+1 >= v.entryCount {
		return RepaintNone
	}
	v.Selected++
	if v.Selected-v.Top == v.PageSize() {
		if v.ScrollPages {
			v.Top += v.PageSize() / 2
		} else {
			v.Top++
		}
		v.Top = clamp(v.Top, v.Selected-v.PageSize()+1, v.maxTop())
		if v.Top > v.Selected {
			v.Top = v.Selected
		}
		return RepaintFull
	}
	return RepaintRows
}

// MoveUp moves the selection one row up, mirroring MoveDown.
func (v *Viewport) MoveUp() Repaint {
	if v.Selected == 0 {
		return RepaintNone
	}
	v.Selected--
	if v.Selected < v.Top {
		if v.ScrollPages {
			v.Top -= v.PageSize() / 2
		} else {
			v.Top--
		}
		v.Top = clamp(v.Top, 0, v.Selected)
		return RepaintFull
	}
	return RepaintRows
}

// PageUp shifts selection and window one page towards the start.
func (v *Viewport) PageUp() Repaint {
	if v.Selected == 0 && v.Top == 0 {
		return RepaintNone
	}
	items := v.PageSize()
	if v.Top < items {
		items = v.Top
	}
	if items == 0 {
		v.Selected = 0
	} else {
		v.Selected -= items
	}
	v.Top -= items
	return RepaintFull
}

// PageDown shifts selection and window one page towards the end, clamping
// so the last page is flush with the listing end.
func (v *Viewport) PageDown() Repaint {
	if v.entryCount == 0 || v.Selected == v.entryCount-1 {
		return RepaintNone
	}
	items := v.PageSize()
	if v.Top > v.entryCount-2*items {
		items = v.entryCount - v.PageSize() - v.Top
	}
	if v.Top+items < 0 {
		items = -v.Top
	}
	if items <= 0 {
		v.Selected = v.entryCount - 1
	} else {
		v.Selected += items
		v.Top += items
	}
	v.AdjustTop()
	return RepaintFull
}

// GoTop selects the first visible row.
func (v *Viewport) GoTop() Repaint {
	if v.entryCount == 0 {
		return RepaintNone
	}
	v.Selected = clamp(v.Top, 0, v.entryCount-1)
	return RepaintRows
}

// GoMiddle selects the middle visible row.
func (v *Viewport) GoMiddle() Repaint {
	if v.entryCount == 0 {
		return RepaintNone
	}
	v.Selected = clamp(v.Top+v.PageSize()/2, 0, v.entryCount-1)
	return RepaintRows
}

// GoBottom selects the last visible row.
func (v *Viewport) GoBottom() Repaint {
	if v.entryCount == 0 {
		return RepaintNone
	}
	v.Selected = clamp(v.Top+v.PageSize()-1, 0, v.entryCount-1)
	return RepaintRows
}

// Home jumps to the first entry. In TorbenFJMode the jump is staged: first
// to the middle of the page, then to the top of the page, then home.
func (v *Viewport) Home() Repaint {
	if v.Selected == 0 {
		return RepaintNone
	}
	if v.TorbenFJMode {
		middle := clamp(v.Top+v.PageSize()/2, 0, v.entryCount-1)
		if v.Selected > middle {
			return v.GoMiddle()
		}
		if v.Selected != v.Top {
			return v.GoTop()
		}
	}
	v.Top, v.Selected = 0, 0
	return RepaintFull
}

// End jumps to the last entry, staged like Home in TorbenFJMode.
func (v *Viewport) End() Repaint {
	if v.entryCount == 0 || v.Selected == v.entryCount-1 {
		return RepaintNone
	}
	if v.TorbenFJMode {
		middle := clamp(v.Top+v.PageSize()/2, 0, v.entryCount-1)
		bottom := clamp(v.Top+v.PageSize()-1, 0, v.entryCount-1)
		if v.Selected < middle {
			return v.GoMiddle()
		}
		if v.Selected != bottom {
			return v.GoBottom()
		}
	}
	v.Selected = v.entryCount - 1
	v.AdjustTop()
	return RepaintFull
}

// ScrollLeft decrements the horizontal name shift. At -1 the shift is
// inactive and the call is a no-op.
func (v *Viewport) ScrollLeft() {
	if v.ContentShift > -1 {
		if v.ContentShift > v.MaxShift {
			v.ContentShift = v.MaxShift
		}
		v.ContentShift--
	}
}

// ScrollRight increments the horizontal name shift up to MaxShift.
func (v *Viewport) ScrollRight() {
	if v.ContentShift < 0 || v.ContentShift < v.MaxShift {
		v.ContentShift++
	}
}

// ResetShift deactivates horizontal scrolling; called on directory change.
func (v *Viewport) ResetShift() {
	v.ContentShift = -1
	v.MaxShift = 0
}
