package pnmkit

// CreateSolidGrid creates a grid with every sample set to v.
func CreateSolidGrid(width, height, v int) *Grid {
	g := newGrid(width, height)
	for i := range g.samples {
		g.samples[i] = v
	}
	return g
}

// CreateCheckerboardGrid creates a checkerboard bitmap with the given square
// size. The top-left square is 1.
func CreateCheckerboardGrid(width, height, squareSize int) *Grid {
	g := newGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				g.samples[y*width+x] = 1
			}
		}
	}
	return g
}

// CreateGradientGrid creates a horizontal gradient greymap from 0 to
// maxValue.
func CreateGradientGrid(width, height, maxValue int) *Grid {
	g := newGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := 0
			if width > 1 {
				v = maxValue * x / (width - 1)
			}
			g.samples[y*width+x] = v
		}
	}
	return g
}

// CreateRectGrid creates a bitmap with a filled rectangle of 1s spanning
// [x0, x1) x [y0, y1).
func CreateRectGrid(width, height, x0, y0, x1, y1 int) *Grid {
	g := newGrid(width, height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if g.In(x, y) {
				g.samples[y*width+x] = 1
			}
		}
	}
	return g
}

// CountSamples returns how many samples equal v.
func CountSamples(g *Grid, v int) int {
	n := 0
	for _, s := range g.samples {
		if s == v {
			n++
		}
	}
	return n
}

// MustGrid builds a grid from rows, panicking on ragged input. Meant for
// tests and examples.
func MustGrid(rows [][]int) *Grid {
	height := len(rows)
	if height == 0 {
		panic("pnmkit: MustGrid needs at least one row")
	}
	width := len(rows[0])
	samples := make([]int, 0, width*height)
	for _, r := range rows {
		if len(r) != width {
			panic("pnmkit: MustGrid rows differ in length")
		}
		samples = append(samples, r...)
	}
	g, err := GridFromSamples(width, height, samples)
	if err != nil {
		panic(err)
	}
	return g
}
