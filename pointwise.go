package pnmkit

// Negate toggles a bitmap: v' = 1 - v. Samples outside {0, 1} come out
// negative or otherwise out of range; use Invert for greymaps.
func Negate(g *Grid) *Grid {
	return mapSamples(g, func(v int) int { return 1 - v })
}

// Binarize thresholds the grid. Samples at or above threshold become 1,
// everything else becomes 0.
func Binarize(g *Grid, threshold int) *Grid {
	return mapSamples(g, func(v int) int {
		if v >= threshold {
			return 1
		}
		return 0
	})
}

// Invert mirrors a greymap within its range: v' = maxValue - v.
func Invert(g *Grid, maxValue int) *Grid {
	return mapSamples(g, func(v int) int { return maxValue - v })
}

func mapSamples(g *Grid, fn func(int) int) *Grid {
	dst := newGrid(g.width, g.height)
	for i, v := range g.samples {
		dst.samples[i] = fn(v)
	}
	return dst
}
