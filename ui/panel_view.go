package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mariner/dirlist"
	"mariner/panel"
)

// panelChrome is the number of non-listing lines inside the border: the
// path row, the column header and the mini status line.
const panelChrome = 3

// PanelView renders one directory panel. It owns no state beyond its
// geometry; everything displayed comes from the panel.
type PanelView struct {
	width   int
	height  int
	focused bool
}

func NewPanelView() *PanelView {
	return &PanelView{}
}

func (v *PanelView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *PanelView) SetFocused(focused bool) {
	v.focused = focused
}

// ListRows returns how many listing rows fit at the current height, so the
// caller can keep the panel's page size in step with the layout.
func (v *PanelView) ListRows(tabCount int) int {
	rows := v.height - 2 - panelChrome
	if tabCount > 1 {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Render draws the panel: path row, tab row when the ring has more than
// one tab, column headers, the visible listing window, and the mini status.
func (v *PanelView) Render(p *panel.Panel) string {
	inner := v.width - 2
	if inner < 1 {
		inner = 1
	}

	var lines []string
	lines = append(lines, v.pathRow(p, inner))
	if p.Tabs().Len() > 1 {
		lines = append(lines, v.tabRow(p, inner))
	}
	lines = append(lines, v.headerRow(p, inner))
	lines = append(lines, v.listingRows(p, inner)...)
	lines = append(lines, v.miniStatus(p, inner))

	border := blurredBorderStyle
	if v.focused {
		border = focusedBorderStyle
	}
	return border.Width(inner).Render(strings.Join(lines, "\n"))
}

func (v *PanelView) pathRow(p *panel.Panel, width int) string {
	path := p.CWD().Redacted()
	if cp := p.Codepage(); cp != "" {
		path += " [" + cp + "]"
	}
	return titleStyle.Render(FitText(path, width, panel.Justify{Align: panel.AlignLeft, Fit: true}))
}

func (v *PanelView) tabRow(p *panel.Panel, width int) string {
	ring := p.Tabs()
	var cells []string
	for i, t := range ring.Tabs() {
		label := t.Name
		if label == "" {
			path := t.Path
			if i == ring.CurrentIndex() {
				path = p.CWD()
			}
			if path.IsZero() {
				label = "new"
			} else {
				label = path.Base()
			}
		}
		cell := fmt.Sprintf(" %d:%s ", i+1, label)
		if i == ring.CurrentIndex() {
			cells = append(cells, activeTabStyle.Render(cell))
		} else {
			cells = append(cells, tabStyle.Render(cell))
		}
	}
	row := strings.Join(cells, "")
	return row + strings.Repeat(" ", max(0, width-lipgloss.Width(row)))
}

// TabClickIndex resolves a click at cell offset x in the tab row to a tab
// index, or -1 when the click missed every label.
func (v *PanelView) TabClickIndex(p *panel.Panel, x int) int {
	ring := p.Tabs()
	pos := 0
	for i, t := range ring.Tabs() {
		label := t.Name
		if label == "" {
			path := t.Path
			if i == ring.CurrentIndex() {
				path = p.CWD()
			}
			if path.IsZero() {
				label = "new"
			} else {
				label = path.Base()
			}
		}
		w := lipgloss.Width(fmt.Sprintf(" %d:%s ", i+1, label))
		if x < pos+w {
			return i
		}
		pos += w
	}
	return -1
}

func (v *PanelView) headerRow(p *panel.Panel, width int) string {
	sortField, reverse := p.SortField()
	var b strings.Builder
	for _, it := range p.FormatItems() {
		if it.ComputedWidth <= 0 {
			continue
		}
		if it.Field.IsSeparator() {
			b.WriteString(separatorStyle.Render(FitText("│", it.ComputedWidth, it.Justify)))
			continue
		}
		title := it.Title
		style := headerStyle
		if it.Field.ID == sortField.ID {
			marker := "↑"
			if reverse {
				marker = "↓"
			}
			title = marker + title
			style = sortMarkerStyle
		}
		b.WriteString(style.Render(FitText(title, it.ComputedWidth, panel.Justify{Align: panel.AlignCenter})))
	}
	row := b.String()
	return row + strings.Repeat(" ", max(0, width-lipgloss.Width(row)))
}

func (v *PanelView) listingRows(p *panel.Panel, width int) []string {
	rows := p.View.PageSize()
	cols := p.ListCols()
	entries := p.Entries()

	out := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			idx := p.View.Top + c*rows + r
			if idx >= len(entries) {
				cells = append(cells, strings.Repeat(" ", p.UsableColumns()))
				continue
			}
			cells = append(cells, v.entryCell(p, idx))
		}
		row := strings.Join(cells, separatorStyle.Render("│"))
		out = append(out, row+strings.Repeat(" ", max(0, width-lipgloss.Width(row))))
	}
	return out
}

func (v *PanelView) entryCell(p *panel.Panel, idx int) string {
	e := p.Entries()[idx]
	selected := v.focused && idx == p.View.Selected

	var b strings.Builder
	for _, it := range p.FormatItems() {
		w := it.ComputedWidth
		if w <= 0 {
			continue
		}
		if it.Field.IsSeparator() {
			if selected {
				b.WriteString(selectedRowStyle.Render(FitText("│", w, it.Justify)))
			} else {
				b.WriteString(separatorStyle.Render(FitText("│", w, it.Justify)))
			}
			continue
		}
		text := it.Field.Format(e, w)
		if isNameColumn(it.Field.Kind) && p.View.ContentShift > 0 {
			text = ShiftText(text, p.View.ContentShift)
		}
		cell := FitText(text, w, it.Justify)
		b.WriteString(v.entryCellStyle(e, selected).Render(cell))
	}
	return b.String()
}

func (v *PanelView) entryCellStyle(e *dirlist.Entry, selected bool) lipgloss.Style {
	switch {
	case selected && e.Marked:
		return markedSelectedStyle
	case selected:
		return selectedRowStyle
	case e.Marked:
		return markedStyle
	case e.IsDir():
		return directoryStyle
	case e.Mode&0111 != 0 && !e.Mode.IsDir():
		return entryStyle.Foreground(ColorExecutable)
	default:
		return entryStyle
	}
}

func isNameColumn(k panel.FieldKind) bool {
	switch k {
	case panel.FieldUnsorted, panel.FieldName, panel.FieldVersion, panel.FieldExtension:
		return true
	}
	return false
}

func (v *PanelView) miniStatus(p *panel.Panel, width int) string {
	if p.Searching() {
		return searchStatusStyle.Render(FitText("Search: "+p.SearchBuffer(), width, panel.Justify{Align: panel.AlignLeft}))
	}
	if count, bytes := p.MarkedTotals(); count > 0 {
		text := fmt.Sprintf("%d bytes in %d file", bytes, count)
		if count != 1 {
			text += "s"
		}
		return markedStyle.Render(FitText(text, width, panel.Justify{Align: panel.AlignLeft}))
	}
	if e := p.SelectedEntry(); e != nil {
		return miniStatusStyle.Render(FitText(e.Name, width, panel.Justify{Align: panel.AlignLeft, Fit: true}))
	}
	return strings.Repeat(" ", width)
}
