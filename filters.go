package pnmkit

import (
	"math"
	"sort"
)

// Kernel represents a convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// GaussianKernel3x3 returns a 3x3 Gaussian blur kernel.
func GaussianKernel3x3() *Kernel {
	return NewKernel([][]float64{
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
		{2.0 / 16, 4.0 / 16, 2.0 / 16},
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
	})
}

var (
	sobelX = NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY = NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
)

// Convolve applies kernel to the grid and returns unrounded sums.
// Border pixels are handled by replicating edge values.
func Convolve(g *Grid, kernel *Kernel) [][]float64 {
	width, height := g.width, g.height
	dst := make([][]float64, height)

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	forEachRow(height, func(y int) {
		row := make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := 0; ky < kernel.Height; ky++ {
				for kx := 0; kx < kernel.Width; kx++ {
					sx := clampInt(x+kx-halfKW, 0, width-1)
					sy := clampInt(y+ky-halfKH, 0, height-1)
					sum += float64(g.samples[sy*width+sx]) * kernel.Values[ky][kx]
				}
			}
			row[x] = sum
		}
		dst[y] = row
	})

	return dst
}

// Blur smooths the grid with a 3x3 Gaussian kernel.
func Blur(g *Grid) *Grid {
	return fromFloat(Convolve(g, GaussianKernel3x3()), g.width, g.height, math.MaxInt)
}

// ReduceNoise replaces every sample with the median of its 3x3
// neighborhood, replicating edge values at the border.
func ReduceNoise(g *Grid) *Grid {
	width, height := g.width, g.height
	dst := newGrid(width, height)

	forEachRow(height, func(y int) {
		window := make([]int, 0, 9)
		for x := 0; x < width; x++ {
			window = window[:0]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sx := clampInt(x+dx, 0, width-1)
					sy := clampInt(y+dy, 0, height-1)
					window = append(window, g.samples[sy*width+sx])
				}
			}
			sort.Ints(window)
			dst.samples[y*width+x] = window[len(window)/2]
		}
	})

	return dst
}

// Gradient computes the Sobel gradient magnitude, rounded and clamped to
// [0, maxValue].
func Gradient(g *Grid, maxValue int) *Grid {
	gx := Convolve(g, sobelX)
	gy := Convolve(g, sobelY)

	mag := make([][]float64, g.height)
	for y := range mag {
		mag[y] = make([]float64, g.width)
		for x := range mag[y] {
			mag[y][x] = math.Hypot(gx[y][x], gy[y][x])
		}
	}
	return fromFloat(mag, g.width, g.height, maxValue)
}

// fromFloat rounds values into a grid, clamping to [0, max].
func fromFloat(values [][]float64, width, height, max int) *Grid {
	dst := newGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := math.Round(values[y][x])
			if v < 0 {
				v = 0
			}
			if v > float64(max) {
				v = float64(max)
			}
			dst.samples[y*width+x] = int(v)
		}
	}
	return dst
}
