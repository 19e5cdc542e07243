package netpbm

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/wbrown/pnmkit"
)

// Load reads a P1 or P2 file into an Image. Failing to open the file wraps
// pnmkit.ErrFileAccess; decode failures are returned as from Decode.
func Load(path string, opts ...pnmkit.Option) (*pnmkit.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pnmkit.FileError("open", path, err)
	}
	defer f.Close()

	g, h, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return pnmkit.New(g, h.Format, h.MaxValue, opts...), nil
}

// Save writes img to path. Failing to create the file wraps
// pnmkit.ErrFileAccess; write and close errors are combined.
func Save(path string, img *pnmkit.Image, opts ...EncodeOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pnmkit.FileError("create", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return Write(f, img, opts...)
}

// Write encodes img to w using the image's own format and max value.
func Write(w io.Writer, img *pnmkit.Image, opts ...EncodeOption) error {
	return Encode(w, img.Grid(), img.Format(), img.MaxValue(), opts...)
}
