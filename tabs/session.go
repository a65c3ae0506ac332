package tabs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mariner/fspath"
)

const (
	currentHeader = "[Current Panel]"
	otherHeader   = "[Other Panel]"
	nullName      = "(null)"
)

// PanelSnapshot is the serializable state of one panel's tab ring. A panel
// that is not showing a tabbed listing (a tree or info view, say) has
// Listing false and no tabs.
type PanelSnapshot struct {
	// Index is the panel's slot (0 left, 1 right).
	Index   int
	Listing bool
	Current int
	Tabs    []*Tab
}

// Snapshot captures a ring for serialization. livePath replaces the
// current tab's stored path, because the current tab always tracks the
// panel's live directory.
func Snapshot(index int, r *Ring, livePath fspath.Path) PanelSnapshot {
	s := PanelSnapshot{Index: index, Listing: true, Current: r.CurrentIndex()}
	for i, t := range r.Tabs() {
		p := t.Path
		if i == r.CurrentIndex() {
			p = livePath
		}
		s.Tabs = append(s.Tabs, &Tab{Name: t.Name, Path: p})
	}
	return s
}

// Ring rebuilds a ring from a restored snapshot.
func (s PanelSnapshot) Ring() *Ring {
	ts := make([]*Tab, len(s.Tabs))
	for i, t := range s.Tabs {
		ts[i] = &Tab{Name: t.Name, Path: t.Path.Clone()}
	}
	return newRingFromTabs(ts, s.Current)
}

// SaveSession writes both panels' snapshots in the session text format:
//
//	[Current Panel]
//	<panel index>
//	<current tab index, or -1 for a non-listing panel>
//	<tab name or "(null)">
//	<tab path>
//	...
//
//	[Other Panel]
//	<same structure>
func SaveSession(w io.Writer, current, other PanelSnapshot) error {
	if err := writeSection(w, currentHeader, current); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeSection(w, otherHeader, other)
}

func writeSection(w io.Writer, header string, s PanelSnapshot) error {
	if _, err := fmt.Fprintf(w, "%s\n%d\n", header, s.Index); err != nil {
		return err
	}
	if !s.Listing {
		_, err := fmt.Fprintln(w, "-1")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d\n", s.Current); err != nil {
		return err
	}
	for _, t := range s.Tabs {
		name := t.Name
		if name == "" {
			name = nullName
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", name, t.Path.String()); err != nil {
			return err
		}
	}
	return nil
}

// RestoreSession parses a session file. It either returns both snapshots
// or an error; a partial result is never returned, so a failed restore
// cannot have touched anything.
func RestoreSession(r io.Reader) (current, other PanelSnapshot, err error) {
	sc := bufio.NewScanner(r)
	current, err = readSection(sc, currentHeader)
	if err != nil {
		return PanelSnapshot{}, PanelSnapshot{}, err
	}
	other, err = readSection(sc, otherHeader)
	if err != nil {
		return PanelSnapshot{}, PanelSnapshot{}, err
	}
	return current, other, nil
}

func readSection(sc *bufio.Scanner, header string) (PanelSnapshot, error) {
	var s PanelSnapshot

	line, ok := nextNonBlank(sc)
	if !ok || line != header {
		return s, fmt.Errorf("session restore: missing %s header", header)
	}

	idx, ok := readInt(sc)
	if !ok {
		return s, fmt.Errorf("session restore: unreadable panel index in %s", header)
	}
	s.Index = idx

	cur, ok := readInt(sc)
	if !ok {
		return s, fmt.Errorf("session restore: unreadable current-tab index in %s", header)
	}
	if cur == -1 {
		return s, nil
	}
	s.Listing = true
	s.Current = cur

	for sc.Scan() {
		name := strings.TrimRight(sc.Text(), "\r")
		if name == "" {
			break
		}
		if name == nullName {
			name = ""
		}
		if !sc.Scan() {
			return PanelSnapshot{}, fmt.Errorf("session restore: tab %q has no path line", name)
		}
		path := strings.TrimRight(sc.Text(), "\r")
		if path == "" {
			return PanelSnapshot{}, fmt.Errorf("session restore: tab %q has an empty path", name)
		}
		s.Tabs = append(s.Tabs, &Tab{Name: name, Path: fspath.New(path)})
	}

	if len(s.Tabs) == 0 {
		return PanelSnapshot{}, fmt.Errorf("session restore: %s declares tabs but lists none", header)
	}
	if s.Current < 0 || s.Current >= len(s.Tabs) {
		return PanelSnapshot{}, fmt.Errorf("session restore: current-tab index %d out of range (have %d tabs)", s.Current, len(s.Tabs))
	}
	return s, nil
}

func nextNonBlank(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func readInt(sc *bufio.Scanner) (int, bool) {
	if !sc.Scan() {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, false
	}
	return n, true
}
