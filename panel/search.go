package panel

import (
	"unicode/utf8"

	"mariner/log"
	"mariner/match"
)

// QSearchMode controls the case behavior of incremental search.
type QSearchMode int

const (
	// QSearchPanelCase follows the panel's sort case sensitivity.
	QSearchPanelCase QSearchMode = iota
	QSearchCaseSensitive
	QSearchCaseInsensitive
)

// Searching reports whether incremental search is active.
func (p *Panel) Searching() bool { return p.searching }

// SearchBuffer returns the text typed so far, for the mini status line.
func (p *Panel) SearchBuffer() string { return p.searchBuffer }

// StartSearch enters incremental search mode. Pressing the search key
// again while the buffer is still empty recalls the previous search and
// jumps to its next hit.
func (p *Panel) StartSearch() {
	if p.searching {
		if p.searchBuffer == "" && p.prevSearch != "" {
			p.searchBuffer = p.prevSearch
		}
		p.doSearch(p.View.Selected + 1)
		return
	}
	p.searching = true
	p.searchBuffer = ""
}

// StopSearch leaves search mode, remembering the buffer for recall.
func (p *Panel) StopSearch() {
	if !p.searching {
		return
	}
	if p.searchBuffer != "" {
		p.prevSearch = p.searchBuffer
	}
	p.searching = false
	p.searchBuffer = ""
}

// SearchKey appends a typed rune to the search buffer and repositions the
// selection. A rune that would make the buffer match nothing is rejected
// and the buffer keeps its old value.
func (p *Panel) SearchKey(r rune) {
	if !p.searching {
		return
	}
	p.searchBuffer += string(r)
	if !p.doSearch(p.View.Selected) {
		p.searchBuffer = p.searchBuffer[:len(p.searchBuffer)-utf8.RuneLen(r)]
	}
}

// SearchBackspace removes the last rune from the buffer and repositions on
// the shortened pattern. Search mode stays active on an emptied buffer.
func (p *Panel) SearchBackspace() {
	if !p.searching || p.searchBuffer == "" {
		return
	}
	_, n := utf8.DecodeLastRuneInString(p.searchBuffer)
	p.searchBuffer = p.searchBuffer[:len(p.searchBuffer)-n]
	if p.searchBuffer != "" {
		p.doSearch(p.View.Selected)
	}
}

func (p *Panel) searchCaseSensitive() bool {
	switch p.QSearch {
	case QSearchCaseSensitive:
		return true
	case QSearchCaseInsensitive:
		return false
	default:
		return p.sortCaseSensitive
	}
}

// doSearch scans for the first name matching the buffer as a prefix,
// starting at from and wrapping around the listing once. On a hit the
// selection moves there.
func (p *Panel) doSearch(from int) bool {
	n := len(p.entries)
	if n == 0 || p.searchBuffer == "" {
		return false
	}
	m, err := match.Compile(match.QuoteMeta(p.searchBuffer)+"*", p.searchCaseSensitive())
	if err != nil {
		log.WarningLog.Printf("panel %s: search pattern: %v", p.Name, err)
		return false
	}
	if from < 0 || from >= n {
		from = 0
	}
	for i := 0; i < n; i++ {
		idx := (from + i) % n
		if m.Match(p.entries[idx].Name) {
			p.View.Selected = idx
			p.View.AdjustTop()
			return true
		}
	}
	return false
}
