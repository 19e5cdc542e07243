package pnmkit

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	// ErrMalformedHeader is returned when the magic token, width, height or
	// max value of an image header cannot be read. It is fatal.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncated is returned when input ends before every sample was
	// read. It is fatal.
	ErrTruncated = errors.New("premature end of input")

	// ErrFileAccess wraps failures to open or create an image file. The
	// failed load or save is abandoned; nothing else is affected.
	ErrFileAccess = errors.New("unable to access file")

	// ErrInvalidDimensions is returned for non-positive widths or heights
	// and for sample buffers whose length does not match.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrUnknownStep is returned by recipe parsing for unrecognized names
	// or bad arguments.
	ErrUnknownStep = errors.New("unknown step")
)

// IsFatal reports whether err means the input itself is unusable, as
// opposed to a single file action failing.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMalformedHeader) || errors.Is(err, ErrTruncated)
}

// FileError reports a failed open or create of path. The result matches
// both ErrFileAccess and the underlying error, so callers can still test
// for fs.ErrNotExist or fs.ErrPermission.
func FileError(op, path string, err error) error {
	return multierr.Append(errors.Wrapf(ErrFileAccess, "%s %s", op, path), err)
}
