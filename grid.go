// Package pnmkit provides pure Go transforms for plain-text bitmap (P1)
// and greymap (P2) images: rotation, nearest-neighbor resizing, binary
// morphology, thresholding and a few grey-scale filters.
package pnmkit

import "github.com/pkg/errors"

// Format identifies which of the two plain-text grids an image came from.
type Format int

const (
	// Bitmap is a P1 image whose samples are 0 or 1.
	Bitmap Format = iota

	// Greymap is a P2 image whose samples range over [0, MaxValue].
	Greymap
)

// String returns the magic token for the format.
func (f Format) String() string {
	switch f {
	case Bitmap:
		return "P1"
	case Greymap:
		return "P2"
	default:
		return "unknown"
	}
}

// Grid is a row-major buffer of integer samples.
//
// len(samples) == width*height always holds. Transforms never modify the
// Grid they are given; they return a new one.
type Grid struct {
	width   int
	height  int
	samples []int
}

// MaxSamples caps width*height for any grid.
const MaxSamples = 1 << 28

// CheckDimensions returns an error wrapping ErrInvalidDimensions unless
// both sides are positive and width*height is at most MaxSamples.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	if width > MaxSamples/height {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d exceeds %d samples", width, height, MaxSamples)
	}
	return nil
}

// NewGrid creates a zero-filled grid with the specified dimensions.
func NewGrid(width, height int) (*Grid, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	return newGrid(width, height), nil
}

// GridFromSamples wraps a copy of samples in a grid. The sample count must
// equal width*height.
func GridFromSamples(width, height int, samples []int) (*Grid, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	if len(samples) != width*height {
		return nil, errors.Wrapf(ErrInvalidDimensions,
			"%dx%d grid needs %d samples, got %d", width, height, width*height, len(samples))
	}
	g := newGrid(width, height)
	copy(g.samples, samples)
	return g, nil
}

// newGrid skips validation; callers inside the package already hold valid
// dimensions.
func newGrid(width, height int) *Grid {
	return &Grid{
		width:   width,
		height:  height,
		samples: make([]int, width*height),
	}
}

// Width returns the grid width.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height.
func (g *Grid) Height() int {
	return g.height
}

// Len returns the number of samples.
func (g *Grid) Len() int {
	return len(g.samples)
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Sample returns the value at (x, y).
func (g *Grid) Sample(x, y int) int {
	return g.samples[y*g.width+x]
}

// SetSample sets the value at (x, y).
func (g *Grid) SetSample(x, y, v int) {
	g.samples[y*g.width+x] = v
}

// Samples returns a copy of the row-major sample buffer.
func (g *Grid) Samples() []int {
	out := make([]int, len(g.samples))
	copy(out, g.samples)
	return out
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []int {
	out := make([]int, g.width)
	copy(out, g.samples[y*g.width:(y+1)*g.width])
	return out
}

// Clone creates a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := newGrid(g.width, g.height)
	copy(clone.samples, g.samples)
	return clone
}

// Equal reports whether both grids have the same shape and samples.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, v := range g.samples {
		if other.samples[i] != v {
			return false
		}
	}
	return true
}
