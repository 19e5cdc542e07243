// Package raster converts pnmkit grids to and from standard library images
// so they can be imported from or exported to PNG, JPEG, GIF, BMP and TIFF,
// previewed in a terminal, or generated from text.
package raster

import (
	"image"
	"image/color"

	"github.com/wbrown/pnmkit"
)

// ToGray converts a grid to an 8-bit grey image.
//
// Bitmap samples follow the PBM convention: 1 is ink (black) and 0 is
// paper (white). Greymap samples are scaled from [0, maxValue] to
// [0, 255].
func ToGray(g *pnmkit.Grid, format pnmkit.Format, maxValue int) *image.Gray {
	width, height := g.Width(), g.Height()
	gray := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := g.Sample(x, y)
			var lum uint8
			if format == pnmkit.Bitmap {
				if v&1 == 0 {
					lum = 255
				}
			} else {
				lum = scaleTo8(v, maxValue)
			}
			gray.Pix[y*gray.Stride+x] = lum
		}
	}
	return gray
}

// FromImage thresholds any image into a bitmap grid. Pixels darker than
// threshold become ink (1). An empty image returns an error wrapping
// pnmkit.ErrInvalidDimensions.
func FromImage(img image.Image, threshold uint8) (*pnmkit.Grid, error) {
	bounds := img.Bounds()
	g, err := pnmkit.NewGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if luminance(img.At(x, y)) < threshold {
				g.SetSample(x-bounds.Min.X, y-bounds.Min.Y, 1)
			}
		}
	}
	return g, nil
}

// FromImageGrey converts any image into a greymap grid with samples in
// [0, maxValue].
func FromImageGrey(img image.Image, maxValue int) (*pnmkit.Grid, error) {
	bounds := img.Bounds()
	g, err := pnmkit.NewGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			lum := int(luminance(img.At(x, y)))
			g.SetSample(x-bounds.Min.X, y-bounds.Min.Y, (lum*maxValue+127)/255)
		}
	}
	return g, nil
}

// luminance returns the BT.601 luma of c.
func luminance(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// scaleTo8 maps v in [0, maxValue] onto [0, 255], clamping.
func scaleTo8(v, maxValue int) uint8 {
	if maxValue <= 0 || v <= 0 {
		return 0
	}
	if v >= maxValue {
		return 255
	}
	return uint8((v*255 + maxValue/2) / maxValue)
}
