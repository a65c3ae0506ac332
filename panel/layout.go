package panel

// maxExpand caps how many expandable columns share leftover width. Columns
// beyond the first four expandables keep their requested width.
const maxExpand = 4

// AllocateWidths negotiates the actual column widths for the given usable
// width, writing ComputedWidth on every item.
//
// Shrink phase: while the requested total exceeds usableWidth, widths are
// decremented one cell at a time in item order, skipping columns already at
// width 1. A round that makes no progress ends the phase with the deficit
// unmet; the renderer truncates to usableWidth in that degenerate case, and
// the total is treated as usableWidth from here on.
//
// Expand phase: leftover width is split evenly across the expand-marked
// items (at most maxExpand of them), with the integer remainder going to
// the first one.
func AllocateWidths(items []*FormatItem, usableWidth int) {
	total := 0
	expandCount := 0
	for _, it := range items {
		it.ComputedWidth = it.RequestedWidth
		total += it.RequestedWidth
		if it.Expand && expandCount < maxExpand {
			expandCount++
		}
	}

	if total > usableWidth {
		dif := total - usableWidth
		prev := 0
		for dif != 0 && prev != dif {
			prev = dif
			for _, it := range items {
				if dif != 0 && it.ComputedWidth > 1 {
					it.ComputedWidth--
					dif--
				}
			}
		}
		total = usableWidth // give up, the rest is truncated
	}

	if usableWidth > total && expandCount > 0 {
		spaces := (usableWidth - total) / expandCount
		remainder := (usableWidth - total) % expandCount
		i := 0
		for _, it := range items {
			if !it.Expand {
				continue
			}
			it.ComputedWidth += spaces
			if i == 0 {
				it.ComputedWidth += remainder
			}
			i++
			if i == expandCount {
				break
			}
		}
	}
}
