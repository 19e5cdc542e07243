package pnmkit

// Offset is a neighbor position relative to the pixel being filtered.
type Offset struct {
	DX, DY int
}

// StructuringElement is the set of offsets a morphological filter looks at.
// It must include the origin for erosion to keep the center pixel's own
// value in play.
type StructuringElement []Offset

var (
	// Cross is the plus-shaped 3x3 element: the center and its four
	// 4-connected neighbors.
	Cross = StructuringElement{
		{0, -1},
		{-1, 0}, {0, 0}, {1, 0},
		{0, 1},
	}

	// Square is the full 3x3 element.
	Square = StructuringElement{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {0, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
)

// Region names where a pixel sits relative to the grid border.
type Region int

const (
	RegionCenter Region = iota
	RegionTopLeft
	RegionTop
	RegionTopRight
	RegionLeft
	RegionRight
	RegionBottomLeft
	RegionBottom
	RegionBottomRight
)

var regionNames = [...]string{
	RegionCenter:      "center",
	RegionTopLeft:     "top-left",
	RegionTop:         "top",
	RegionTopRight:    "top-right",
	RegionLeft:        "left",
	RegionRight:       "right",
	RegionBottomLeft:  "bottom-left",
	RegionBottom:      "bottom",
	RegionBottomRight: "bottom-right",
}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "unknown"
	}
	return regionNames[r]
}

// ClassifyRegion returns which of the nine border regions (x, y) falls in.
// Each of the four corners gets its own region. A grid one pixel wide or
// tall has no interior on that axis; the first matching side wins.
func ClassifyRegion(g *Grid, x, y int) Region {
	top, bottom := y == 0, y == g.height-1
	left, right := x == 0, x == g.width-1

	switch {
	case top && left:
		return RegionTopLeft
	case top && right:
		return RegionTopRight
	case bottom && left:
		return RegionBottomLeft
	case bottom && right:
		return RegionBottomRight
	case top:
		return RegionTop
	case bottom:
		return RegionBottom
	case left:
		return RegionLeft
	case right:
		return RegionRight
	default:
		return RegionCenter
	}
}

// Neighbors returns the offsets of se that land inside g when applied at
// (x, y). Out-of-grid neighbors do not exist and are never read.
//
// Interior pixels get se itself, so the caller must not modify the result.
// Elements reaching further than one pixel are always filtered.
func (se StructuringElement) Neighbors(g *Grid, x, y int) []Offset {
	if se.unit() && ClassifyRegion(g, x, y) == RegionCenter {
		return se
	}
	in := make([]Offset, 0, len(se))
	for _, o := range se {
		if g.In(x+o.DX, y+o.DY) {
			in = append(in, o)
		}
	}
	return in
}

// unit reports whether every offset stays within one pixel of the origin.
func (se StructuringElement) unit() bool {
	for _, o := range se {
		if o.DX < -1 || o.DX > 1 || o.DY < -1 || o.DY > 1 {
			return false
		}
	}
	return true
}

// Erode applies binary erosion with se. A pixel becomes 1 only if the low
// bit of every in-grid neighbor under se is set; samples other than 0 and 1
// are therefore judged by their low bit.
func Erode(g *Grid, se StructuringElement) *Grid {
	return morph(g, se, true)
}

// Dilate applies binary dilation with se, the dual of Erode: a pixel
// becomes 1 if the low bit of any in-grid neighbor under se is set.
func Dilate(g *Grid, se StructuringElement) *Grid {
	return morph(g, se, false)
}

func morph(g *Grid, se StructuringElement, all bool) *Grid {
	width, height := g.width, g.height
	dst := newGrid(width, height)

	forEachRow(height, func(y int) {
		for x := 0; x < width; x++ {
			hit := all
			for _, o := range se.Neighbors(g, x, y) {
				set := g.samples[(y+o.DY)*width+x+o.DX]&1 != 0
				if all && !set {
					hit = false
					break
				}
				if !all && set {
					hit = true
					break
				}
			}
			if hit {
				dst.samples[y*width+x] = 1
			}
		}
	})

	return dst
}
