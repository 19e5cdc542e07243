package raster

import (
	"strings"

	"github.com/wbrown/pnmkit"
)

// Quadrants marks which quarters of a character cell are ink.
type Quadrants struct {
	TopLeft     bool
	TopRight    bool
	BottomLeft  bool
	BottomRight bool
}

func (q Quadrants) index() int {
	i := 0
	if q.TopLeft {
		i |= 8
	}
	if q.TopRight {
		i |= 4
	}
	if q.BottomLeft {
		i |= 2
	}
	if q.BottomRight {
		i |= 1
	}
	return i
}

// quadrantRunes is indexed by Quadrants.index.
var quadrantRunes = [16]rune{
	' ', // 0000: Empty space
	'▗', // 0001: Quadrant lower right
	'▖', // 0010: Quadrant lower left
	'▄', // 0011: Lower half block
	'▝', // 0100: Quadrant upper right
	'▐', // 0101: Right half block
	'▞', // 0110: Diagonal upper right and lower left
	'▟', // 0111: Three quadrants: upper right, lower left, lower right
	'▘', // 1000: Quadrant upper left
	'▚', // 1001: Diagonal upper left and lower right
	'▌', // 1010: Left half block
	'▙', // 1011: Three quadrants: upper left, lower left, lower right
	'▀', // 1100: Upper half block
	'▜', // 1101: Three quadrants: upper left, upper right, lower right
	'▛', // 1110: Three quadrants: upper left, upper right, lower left
	'█', // 1111: Full block
}

// QuadrantRune returns the block character for q.
func QuadrantRune(q Quadrants) rune {
	return quadrantRunes[q.index()]
}

// Preview renders a bitmap as Unicode quadrant blocks, two pixels wide and
// two tall per character. Samples with the low bit set are ink; pixels past
// an odd right or bottom edge count as paper. Every line ends with '\n'.
func Preview(g *pnmkit.Grid) string {
	ink := func(x, y int) bool {
		return g.In(x, y) && g.Sample(x, y)&1 != 0
	}

	var sb strings.Builder
	for y := 0; y < g.Height(); y += 2 {
		for x := 0; x < g.Width(); x += 2 {
			sb.WriteRune(QuadrantRune(Quadrants{
				TopLeft:     ink(x, y),
				TopRight:    ink(x+1, y),
				BottomLeft:  ink(x, y+1),
				BottomRight: ink(x+1, y+1),
			}))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
