package panel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileFor(t *testing.T, spec string) []*FormatItem {
	t.Helper()
	items, _, err := CompileFormat(NewRegistry(), spec)
	require.NoError(t, err)
	return items
}

func totalComputed(items []*FormatItem) int {
	sum := 0
	for _, it := range items {
		sum += it.ComputedWidth
	}
	return sum
}

func TestAllocate_ExactFit(t *testing.T) {
	items := compileFor(t, "type name | size | mtime") // 1+12+1+7+1+12 = 34
	AllocateWidths(items, 34)
	assert.Equal(t, 34, totalComputed(items))
	for _, it := range items {
		assert.Equal(t, it.RequestedWidth, it.ComputedWidth)
	}
}

func TestAllocate_ExpandGoesToNameFirst(t *testing.T) {
	// The panel of the contract example: 40 usable columns, name the only
	// expandable item, leftover beyond the minimums lands on it.
	items := compileFor(t, "half type name | size | mtime")
	AllocateWidths(items, 40)
	assert.Equal(t, 40, totalComputed(items))
	assert.Equal(t, 12+6, items[1].ComputedWidth, "name soaks up all leftover width")
}

func TestAllocate_ExpandSplitsEvenlyRemainderToFirst(t *testing.T) {
	items := compileFor(t, "name size:7+ owner:8+") // three expandables, 27 requested
	AllocateWidths(items, 38)                       // leftover 11 = 3*3 + 2
	assert.Equal(t, 38, totalComputed(items))
	assert.Equal(t, 12+3+2, items[0].ComputedWidth, "remainder goes to the first expandable")
	assert.Equal(t, 7+3, items[1].ComputedWidth)
	assert.Equal(t, 8+3, items[2].ComputedWidth)
}

func TestAllocate_AtMostFourExpandables(t *testing.T) {
	items := compileFor(t, "name:5+ size:5+ owner:5+ group:5+ inode:5+") // five marked
	AllocateWidths(items, 45)                                           // leftover 20
	assert.Equal(t, 5+5, items[0].ComputedWidth)
	assert.Equal(t, 5+5, items[1].ComputedWidth)
	assert.Equal(t, 5+5, items[2].ComputedWidth)
	assert.Equal(t, 5+5, items[3].ComputedWidth)
	assert.Equal(t, 5, items[4].ComputedWidth, "the fifth expandable sits out")
}

func TestAllocate_ShrinkRoundRobin(t *testing.T) {
	items := compileFor(t, "name size mtime") // 12+7+12 = 31
	AllocateWidths(items, 28)                 // deficit 3, one cell off each in the first round
	assert.Equal(t, 28, totalComputed(items))
	assert.Equal(t, 11, items[0].ComputedWidth)
	assert.Equal(t, 6, items[1].ComputedWidth)
	assert.Equal(t, 11, items[2].ComputedWidth)
}

func TestAllocate_ShrinkSkipsWidthOne(t *testing.T) {
	items := compileFor(t, "type name") // 1 + 12
	AllocateWidths(items, 9)            // deficit 4, all of it from name
	assert.Equal(t, 1, items[0].ComputedWidth)
	assert.Equal(t, 8, items[1].ComputedWidth)
}

func TestAllocate_DegenerateDeficitAccepted(t *testing.T) {
	// Every column is already at width 1; the deficit cannot be met and
	// the allocator gives up, leaving widths at the floor.
	items := compileFor(t, "type mark dot space")
	AllocateWidths(items, 2)
	for _, it := range items {
		assert.Equal(t, 1, it.ComputedWidth)
	}
}

func TestAllocate_DegenerateThenExpandUsesPinnedTotal(t *testing.T) {
	// After the shrink phase gives up, the total is pinned to usableWidth,
	// so no expansion happens even for expand-marked items.
	items := compileFor(t, "type:1 mark:1 name:1+")
	AllocateWidths(items, 2)
	assert.Equal(t, 1, items[2].ComputedWidth)
}

// Contract properties: widths never negative, shrunk layouts land exactly
// on the usable width, expandable layouts consume all leftover width.
func TestAllocate_Properties(t *testing.T) {
	specs := []string{
		"half type name | size | mtime",
		"full perm space nlink space owner space group space size space mtime space name",
		"name",
		"name:40 size mtime:3+",
		"type mark dot",
	}
	for _, spec := range specs {
		for w := 5; w <= 120; w += 7 {
			t.Run(fmt.Sprintf("%s/w=%d", spec, w), func(t *testing.T) {
				items := compileFor(t, spec)
				requested := 0
				expandable := false
				for _, it := range items {
					requested += it.RequestedWidth
					expandable = expandable || it.Expand
				}
				AllocateWidths(items, w)

				for _, it := range items {
					assert.GreaterOrEqual(t, it.ComputedWidth, 0)
				}
				got := totalComputed(items)
				if requested >= w && w >= len(items) {
					assert.Equal(t, w, got, "shrunk layout fills the width exactly")
				}
				if requested < w && expandable {
					assert.Equal(t, w, got, "leftover width is fully consumed")
				}
			})
		}
	}
}
