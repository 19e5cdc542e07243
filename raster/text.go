package raster

import (
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wbrown/pnmkit"
)

// inkThreshold is the alpha above which an anti-aliased pixel counts as
// ink. 25% keeps thin strokes and the dots on i and j.
const inkThreshold = 64

var defaultFont *truetype.Font

func init() {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		panic(err)
	}
	defaultFont = f
}

// ParseFont loads a TrueType font from raw bytes.
func ParseFont(ttf []byte) (*truetype.Font, error) {
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse font")
	}
	return f, nil
}

// RenderText rasterizes text into a bitmap using Go Regular at size
// pixels (72 DPI). See RenderTextWithFont.
func RenderText(text string, size float64) (*pnmkit.Grid, error) {
	return RenderTextWithFont(defaultFont, text, size)
}

// RenderTextWithFont rasterizes a single line of text into a bitmap. The
// grid is as wide as the advance of the string and as tall as the font's
// ascent plus descent.
func RenderTextWithFont(ttf *truetype.Font, text string, size float64) (*pnmkit.Grid, error) {
	if size <= 0 {
		return nil, errors.Wrapf(pnmkit.ErrInvalidDimensions, "font size %v", size)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	width := font.MeasureString(face, text).Ceil()
	height := ascent + metrics.Descent.Ceil()

	g, err := pnmkit.NewGrid(width, height)
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %q", text)
	}

	img := image.NewAlpha(image.Rect(0, 0, width, height))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	if _, err := ctx.DrawString(text, freetype.Pt(0, ascent)); err != nil {
		return nil, errors.Wrapf(err, "rendering %q", text)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if img.AlphaAt(x, y).A > inkThreshold {
				g.SetSample(x, y, 1)
			}
		}
	}
	return g, nil
}
