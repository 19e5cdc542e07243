package raster

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/wbrown/pnmkit"
)

// Import loads a raster image from the specified path.
// Supports PNG, JPEG, GIF, BMP and TIFF; JPEG EXIF orientation is applied.
func Import(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, pnmkit.FileError("open", path, err)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return img, nil
}

// Scale enlarges img by an integer factor with nearest-neighbor sampling,
// which keeps bitmap edges hard.
func Scale(img *image.Gray, factor int) *image.Gray {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Export writes img to path, scaled up by factor. The format is chosen by
// file extension; TIFF output is Deflate-compressed.
func Export(path string, img *image.Gray, factor int) error {
	img = Scale(img, factor)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".tif", ".tiff":
		return saveTIFF(path, img)
	default:
		if err := imaging.Save(img, path); err != nil {
			if errors.Is(err, imaging.ErrUnsupportedFormat) {
				return errors.Wrapf(err, "export %s", path)
			}
			return pnmkit.FileError("export", path, err)
		}
		return nil
	}
}

func saveTIFF(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pnmkit.FileError("create", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
}
