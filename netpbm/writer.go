package netpbm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/wbrown/pnmkit"
)

type encoder struct {
	legacy bool
}

// EncodeOption configures Encode.
type EncodeOption func(*encoder)

// WithLegacyMarker writes the legacy header layout:
// the marker is always "P1" with no max-value line, and every sample
// is followed by a space. Greymaps written this way cannot be read back
// as P1; use it for byte-for-byte parity on bitmaps.
func WithLegacyMarker() EncodeOption {
	return func(e *encoder) {
		e.legacy = true
	}
}

// Encode writes g in plain-text form. Samples in a row are separated by a
// single space and every row, including the last, ends with a newline.
func Encode(w io.Writer, g *pnmkit.Grid, format pnmkit.Format, maxValue int, opts ...EncodeOption) error {
	var e encoder
	for _, opt := range opts {
		opt(&e)
	}

	bw := bufio.NewWriter(w)
	var err error
	if e.legacy {
		_, err = fmt.Fprintf(bw, "P1\n%d %d\n", g.Width(), g.Height())
	} else if format == pnmkit.Greymap {
		_, err = fmt.Fprintf(bw, "P2\n%d %d\n%d\n", g.Width(), g.Height(), maxValue)
	} else {
		_, err = fmt.Fprintf(bw, "P1\n%d %d\n", g.Width(), g.Height())
	}
	if err != nil {
		return err
	}

	var line []byte
	for y := 0; y < g.Height(); y++ {
		line = line[:0]
		for x := 0; x < g.Width(); x++ {
			if x > 0 && !e.legacy {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(g.Sample(x, y)), 10)
			if e.legacy {
				line = append(line, ' ')
			}
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
