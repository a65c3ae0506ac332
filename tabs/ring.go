// Package tabs implements the per-panel tab ring: a circular, ordered set
// of (name, working directory) pairs with one current element, plus the
// text-based session persistence for both panels.
//
// The ring is an index-addressed slice rather than a linked structure; all
// circular behavior lives in the index arithmetic.
package tabs

import (
	"errors"

	"mariner/fspath"
)

// ErrLastTab is reported when an operation would leave a panel with no
// tabs. The ring is never empty while its panel exists.
var ErrLastTab = errors.New("the current tab is the only one")

// Direction selects a position relative to the current tab.
type Direction int

const (
	Next Direction = iota
	Prev
	First
	Last
)

// Tab pairs an optional display name with a working-directory path. The
// path is owned by the tab; a zero path marks a freshly created tab that
// has never been activated.
type Tab struct {
	Name string
	Path fspath.Path
}

// Ring is a circular sequence of tabs with a distinguished current
// element. The zero value is not usable; construct with NewRing.
type Ring struct {
	tabs    []*Tab
	current int
}

// NewRing returns a ring holding one default tab, the state of a freshly
// constructed panel.
func NewRing() *Ring {
	return &Ring{tabs: []*Tab{{}}}
}

// newRingFromTabs is used by session restore; callers guarantee at least
// one tab and a valid current index.
func newRingFromTabs(ts []*Tab, current int) *Ring {
	return &Ring{tabs: ts, current: current}
}

// Len returns the number of tabs.
func (r *Ring) Len() int { return len(r.tabs) }

// Current returns the current tab.
func (r *Ring) Current() *Tab { return r.tabs[r.current] }

// CurrentIndex returns the position of the current tab.
func (r *Ring) CurrentIndex() int { return r.current }

// Tabs returns the tabs in ring order. The slice is shared; callers must
// not modify it.
func (r *Ring) Tabs() []*Tab { return r.tabs }

// At returns the tab at position i.
func (r *Ring) At(i int) *Tab { return r.tabs[i] }

// StepTarget returns the index a change in the given direction lands on,
// wrapping circularly.
func (r *Ring) StepTarget(d Direction) int {
	n := len(r.tabs)
	switch d {
	case Next:
		return (r.current + 1) % n
	case Prev:
		return (r.current - 1 + n) % n
	case First:
		return 0
	default:
		return n - 1
	}
}

// SetCurrent makes the tab at index i current. Out-of-range indices are
// ignored.
func (r *Ring) SetCurrent(i int) {
	if i >= 0 && i < len(r.tabs) {
		r.current = i
	}
}

// Insert places t at the position the direction names (Next: after the
// current tab, Prev: before it, First/Last: the ring ends) and returns its
// index. The current tab is unchanged.
func (r *Ring) Insert(d Direction, t *Tab) int {
	var idx int
	switch d {
	case Next:
		idx = r.current + 1
	case Prev:
		idx = r.current
	case First:
		idx = 0
	default:
		idx = len(r.tabs)
	}
	r.tabs = append(r.tabs, nil)
	copy(r.tabs[idx+1:], r.tabs[idx:])
	r.tabs[idx] = t
	if idx <= r.current {
		r.current++
	}
	return idx
}

// Remove unlinks the tab at index i and returns it. Removing the last
// remaining tab fails with ErrLastTab. If the removed tab was current, its
// previous neighbor becomes current.
func (r *Ring) Remove(i int) (*Tab, error) {
	if len(r.tabs) == 1 {
		return nil, ErrLastTab
	}
	if i < 0 || i >= len(r.tabs) {
		return nil, errors.New("tab index out of range")
	}
	t := r.tabs[i]
	r.tabs = append(r.tabs[:i], r.tabs[i+1:]...)
	switch {
	case i < r.current:
		r.current--
	case i == r.current:
		if i == 0 {
			r.current = len(r.tabs) - 1
		} else {
			r.current = i - 1
		}
	}
	return t, nil
}

// ReplaceCurrent swaps in a different tab at the current position and
// returns the one that was there. Used by the cross-panel swap.
func (r *Ring) ReplaceCurrent(t *Tab) *Tab {
	old := r.tabs[r.current]
	r.tabs[r.current] = t
	return old
}

// IndexOf returns the position of t, or -1.
func (r *Ring) IndexOf(t *Tab) int {
	for i, x := range r.tabs {
		if x == t {
			return i
		}
	}
	return -1
}
