package pnmkit

import (
	"go.uber.org/zap"
)

// Image owns the current grid of a P1 or P2 image together with the
// header metadata, and applies transforms to it in place. Every method
// replaces the grid wholesale; an Image is not safe for concurrent use.
type Image struct {
	grid     *Grid
	format   Format
	maxValue int
	element  StructuringElement
	logger   *zap.Logger
}

// Option configures an Image.
type Option func(*Image)

// WithLogger sets the logger used to trace each transform.
func WithLogger(logger *zap.Logger) Option {
	return func(img *Image) {
		if logger != nil {
			img.logger = logger
		}
	}
}

// WithElement sets the structuring element for Erode and Dilate.
// The default is Cross.
func WithElement(se StructuringElement) Option {
	return func(img *Image) {
		img.element = se
	}
}

// New wraps grid in an Image. For a Bitmap the max value is forced to 1.
func New(grid *Grid, format Format, maxValue int, opts ...Option) *Image {
	if format == Bitmap {
		maxValue = 1
	}
	img := &Image{
		grid:     grid,
		format:   format,
		maxValue: maxValue,
		element:  Cross,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(img)
	}
	return img
}

// Grid returns the current grid.
func (img *Image) Grid() *Grid {
	return img.grid
}

// Format returns the image format.
func (img *Image) Format() Format {
	return img.format
}

// MaxValue returns the grey-scale ceiling; 1 for bitmaps.
func (img *Image) MaxValue() int {
	return img.maxValue
}

// Width returns the current width.
func (img *Image) Width() int {
	return img.grid.width
}

// Height returns the current height.
func (img *Image) Height() int {
	return img.grid.height
}

// Logger returns the logger the image traces with.
func (img *Image) Logger() *zap.Logger {
	return img.logger
}

func (img *Image) replace(op string, next *Grid, fields ...zap.Field) {
	img.grid = next
	img.logger.Debug(op, append(fields,
		zap.Int("width", next.width),
		zap.Int("height", next.height))...)
}

// Rotate rotates the image by angle degrees, clockwise for positive angles.
func (img *Image) Rotate(angle float64) {
	img.replace("rotate", Rotate(img.grid, angle), zap.Float64("angle", angle))
}

// Resize scales the image with nearest-neighbor sampling.
func (img *Image) Resize(width, height int) error {
	next, err := Resize(img.grid, width, height)
	if err != nil {
		return err
	}
	img.replace("resize", next)
	return nil
}

// Erode applies binary erosion with the configured structuring element.
func (img *Image) Erode() {
	img.replace("erode", Erode(img.grid, img.element))
}

// Dilate applies binary dilation with the configured structuring element.
func (img *Image) Dilate() {
	img.replace("dilate", Dilate(img.grid, img.element))
}

// Negate toggles every sample of a bitmap.
func (img *Image) Negate() {
	if img.format != Bitmap {
		img.logger.Warn("negate on a greymap yields out-of-range samples; use invert",
			zap.Int("max", img.maxValue))
	}
	img.replace("negate", Negate(img.grid))
}

// Binarize thresholds the image and turns it into a bitmap.
func (img *Image) Binarize(threshold int) {
	img.format = Bitmap
	img.maxValue = 1
	img.replace("binarize", Binarize(img.grid, threshold), zap.Int("threshold", threshold))
}

// Invert mirrors every sample within [0, MaxValue].
func (img *Image) Invert() {
	img.replace("invert", Invert(img.grid, img.maxValue))
}

// Blur smooths the image with a 3x3 Gaussian kernel.
func (img *Image) Blur() {
	img.replace("blur", Blur(img.grid))
}

// ReduceNoise applies a 3x3 median filter.
func (img *Image) ReduceNoise() {
	img.replace("denoise", ReduceNoise(img.grid))
}

// Gradient replaces the image with its Sobel gradient magnitude.
func (img *Image) Gradient() {
	img.replace("gradient", Gradient(img.grid, img.maxValue))
}
