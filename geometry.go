package pnmkit

import (
	"math"

	"github.com/pkg/errors"
)

// Rotate rotates the grid by angle degrees about its center, clockwise for
// positive angles. The result has the same dimensions as the input.
//
// Each destination pixel is inverse-mapped into the source and the source
// coordinate is truncated toward zero. Destinations that map outside the
// source stay 0, so rotated images get blank corners.
func Rotate(g *Grid, angle float64) *Grid {
	width, height := g.width, g.height
	dst := newGrid(width, height)

	theta := -angle * math.Pi / 180
	sin, cos := math.Sincos(theta)

	xs := float64(width) / 2.0
	ys := float64(height) / 2.0

	forEachRow(height, func(y int) {
		dy := float64(y) - ys
		for x := 0; x < width; x++ {
			dx := float64(x) - xs
			xp := int(cos*dx - sin*dy + xs)
			yp := int(sin*dx + cos*dy + ys)

			if g.In(xp, yp) {
				dst.samples[y*width+x] = g.samples[yp*width+xp]
			}
		}
	})

	return dst
}

// Resize scales the grid to newWidth x newHeight using nearest-neighbor
// sampling. Upscaling replicates samples, downscaling discards them.
//
// Source indices are clamped to the grid so floating-point error at the
// last row or column can never read past the buffer.
func Resize(g *Grid, newWidth, newHeight int) (*Grid, error) {
	if err := CheckDimensions(newWidth, newHeight); err != nil {
		return nil, errors.Wrap(err, "resize")
	}

	dst := newGrid(newWidth, newHeight)
	scaleX := float64(g.width) / float64(newWidth)
	scaleY := float64(g.height) / float64(newHeight)

	forEachRow(newHeight, func(y int) {
		yp := clampInt(int(math.Floor(float64(y)*scaleY)), 0, g.height-1)
		for x := 0; x < newWidth; x++ {
			xp := clampInt(int(math.Floor(float64(x)*scaleX)), 0, g.width-1)
			dst.samples[y*newWidth+x] = g.samples[yp*g.width+xp]
		}
	})

	return dst, nil
}

// clampInt clamps an integer to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
