// Package netpbm reads and writes the plain-text P1 (bitmap) and P2
// (greymap) formats.
package netpbm

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wbrown/pnmkit"
)

// ErrBadSample is returned for sample tokens that are not valid numbers
// (or, in a P1 body, not 0 or 1).
var ErrBadSample = errors.New("bad sample")

const initialSamples = 1 << 16

// Header holds the fields read before the sample data.
type Header struct {
	Format   pnmkit.Format
	Width    int
	Height   int
	MaxValue int
}

// tokenizer splits netpbm text into whitespace-separated tokens, dropping
// '#' comments that run to the end of the line.
type tokenizer struct {
	r *bufio.Reader
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// skip consumes whitespace and comments. It returns io.EOF at end of input.
func (t *tokenizer) skip() error {
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			if _, err := t.r.ReadString('\n'); err != nil {
				return err
			}
		case isSpace(b):
		default:
			return t.r.UnreadByte()
		}
	}
}

func (t *tokenizer) token() (string, error) {
	if err := t.skip(); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := t.r.ReadByte()
		if err == io.EOF {
			return string(buf), nil
		}
		if err != nil {
			return "", err
		}
		if isSpace(b) || b == '#' {
			return string(buf), t.r.UnreadByte()
		}
		buf = append(buf, b)
	}
}

// bit reads one P1 sample. Plain PBM allows bits without separators.
func (t *tokenizer) bit() (int, error) {
	if err := t.skip(); err != nil {
		return 0, err
	}
	b, err := t.r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case '0':
		return 0, nil
	case '1':
		return 1, nil
	}
	return 0, errors.Wrapf(ErrBadSample, "%q in bitmap", b)
}

func (t *tokenizer) positive(field string) (int, error) {
	tok, err := t.token()
	if err != nil {
		return 0, errors.Wrapf(pnmkit.ErrMalformedHeader, "missing %s", field)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return 0, errors.Wrapf(pnmkit.ErrMalformedHeader, "%s %q", field, tok)
	}
	return n, nil
}

func readHeader(t *tokenizer) (Header, error) {
	var h Header
	magic, err := t.token()
	if err != nil {
		return h, errors.Wrap(pnmkit.ErrMalformedHeader, "missing magic token")
	}
	if len(magic) != 2 || (magic[0] != 'P' && magic[0] != 'p') {
		return h, errors.Wrapf(pnmkit.ErrMalformedHeader, "magic %q", magic)
	}
	switch magic[1] {
	case '1':
		h.Format = pnmkit.Bitmap
	case '2':
		h.Format = pnmkit.Greymap
	default:
		return h, errors.Wrapf(pnmkit.ErrMalformedHeader, "unsupported magic %q", magic)
	}

	if h.Width, err = t.positive("width"); err != nil {
		return h, err
	}
	if h.Height, err = t.positive("height"); err != nil {
		return h, err
	}
	if err := pnmkit.CheckDimensions(h.Width, h.Height); err != nil {
		return h, errors.Wrapf(pnmkit.ErrMalformedHeader, "%v", err)
	}
	h.MaxValue = 1
	if h.Format == pnmkit.Greymap {
		if h.MaxValue, err = t.positive("max value"); err != nil {
			return h, err
		}
	}
	return h, nil
}

// Decode reads a P1 or P2 image. A grid is only returned when the header
// and every sample were read; errors wrapping pnmkit.ErrMalformedHeader or
// pnmkit.ErrTruncated mean the input is unusable.
func Decode(r io.Reader) (*pnmkit.Grid, Header, error) {
	t := &tokenizer{r: bufio.NewReader(r)}

	h, err := readHeader(t)
	if err != nil {
		return nil, h, err
	}

	// The header is untrusted; grow the buffer as samples arrive.
	n := h.Width * h.Height
	samples := make([]int, 0, min(n, initialSamples))
	for i := 0; i < n; i++ {
		var v int
		if h.Format == pnmkit.Bitmap {
			v, err = t.bit()
		} else {
			var tok string
			if tok, err = t.token(); err == nil {
				v, err = strconv.Atoi(tok)
				if err != nil {
					err = errors.Wrapf(ErrBadSample, "%q", tok)
				}
			}
		}
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, h, errors.Wrapf(pnmkit.ErrTruncated,
				"got %d of %d samples", i, n)
		}
		if err != nil {
			return nil, h, errors.Wrapf(err, "sample %d", i)
		}
		samples = append(samples, v)
	}

	g, err := pnmkit.GridFromSamples(h.Width, h.Height, samples)
	if err != nil {
		return nil, h, err
	}
	return g, h, nil
}
