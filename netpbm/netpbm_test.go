package netpbm

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/wbrown/pnmkit"
)

func TestDecodeBitmap(t *testing.T) {
	src := "P1\n# a comment\n4 2\n1 0 1 0\n0 1 0 1\n"
	g, h, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if h.Format != pnmkit.Bitmap || h.Width != 4 || h.Height != 2 || h.MaxValue != 1 {
		t.Errorf("Unexpected header %+v", h)
	}
	want := []int{1, 0, 1, 0, 0, 1, 0, 1}
	if diff := cmp.Diff(want, g.Samples()); diff != "" {
		t.Errorf("Sample mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePackedBits(t *testing.T) {
	g, _, err := Decode(strings.NewReader("P1 3 2\n101\n010"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []int{1, 0, 1, 0, 1, 0}
	if diff := cmp.Diff(want, g.Samples()); diff != "" {
		t.Errorf("Sample mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeGreymap(t *testing.T) {
	src := "p2 # lower-case magic is accepted\n3 1 # dims\n255\n0 128\t255"
	g, h, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if h.Format != pnmkit.Greymap || h.MaxValue != 255 {
		t.Errorf("Unexpected header %+v", h)
	}
	if diff := cmp.Diff([]int{0, 128, 255}, g.Samples()); diff != "" {
		t.Errorf("Sample mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMalformedHeader(t *testing.T) {
	inputs := map[string]string{
		"empty":         "",
		"wrong magic":   "P5\n2 2\n",
		"long magic":    "P12\n2 2\n",
		"no height":     "P1\n2",
		"zero width":    "P1\n0 2\n",
		"text width":    "P1\nabc 2\n",
		"no max value":  "P2\n2 2\n",
		"wrapping size": "P1\n4294967296 4294967296\n",
		"negative size": "P1\n3037000500 3037000500\n",
		"too large":     "P2\n100000 100000\n255\n",
	}
	for name, src := range inputs {
		_, _, err := Decode(strings.NewReader(src))
		if !errors.Is(err, pnmkit.ErrMalformedHeader) {
			t.Errorf("%s: expected ErrMalformedHeader, got %v", name, err)
		}
		if !pnmkit.IsFatal(err) {
			t.Errorf("%s: header errors should be fatal", name)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, _, err := Decode(strings.NewReader("P2\n2 2\n15\n1 2 3"))
	if !errors.Is(err, pnmkit.ErrTruncated) {
		t.Fatalf("Expected ErrTruncated, got %v", err)
	}
	if !pnmkit.IsFatal(err) {
		t.Error("Truncated input should be fatal")
	}
}

func TestDecodeLargeHeaderShortBody(t *testing.T) {
	_, h, err := Decode(strings.NewReader("P1\n16384 16384\n1 0 1"))
	if !errors.Is(err, pnmkit.ErrTruncated) {
		t.Fatalf("Expected ErrTruncated, got %v", err)
	}
	if h.Width != 16384 || h.Height != 16384 {
		t.Errorf("Expected header 16384x16384, got %dx%d", h.Width, h.Height)
	}
}

func TestDecodeBadSample(t *testing.T) {
	if _, _, err := Decode(strings.NewReader("P1\n2 1\n1 2\n")); !errors.Is(err, ErrBadSample) {
		t.Errorf("Expected ErrBadSample for a 2 in a bitmap, got %v", err)
	}
	if _, _, err := Decode(strings.NewReader("P2\n2 1\n9\n1 x\n")); !errors.Is(err, ErrBadSample) {
		t.Errorf("Expected ErrBadSample for text in a greymap, got %v", err)
	}
}

func TestEncodeBitmap(t *testing.T) {
	g := pnmkit.MustGrid([][]int{
		{1, 0, 1},
		{0, 1, 0},
	})
	var buf bytes.Buffer
	if err := Encode(&buf, g, pnmkit.Bitmap, 1); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "P1\n3 2\n1 0 1\n0 1 0\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestEncodeGreymap(t *testing.T) {
	g := pnmkit.MustGrid([][]int{{0, 7, 15}})
	var buf bytes.Buffer
	if err := Encode(&buf, g, pnmkit.Greymap, 15); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "P2\n3 1\n15\n0 7 15\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestEncodeLegacyMarker(t *testing.T) {
	g := pnmkit.MustGrid([][]int{
		{10, 20},
		{30, 40},
	})
	var buf bytes.Buffer
	if err := Encode(&buf, g, pnmkit.Greymap, 255, WithLegacyMarker()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "P1\n2 2\n10 20 \n30 40 \n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestLegacyBitmapRoundTrip(t *testing.T) {
	g := pnmkit.CreateCheckerboardGrid(5, 3, 1)
	var buf bytes.Buffer
	if err := Encode(&buf, g, pnmkit.Bitmap, 1, WithLegacyMarker()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, _, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !decoded.Equal(g) {
		t.Error("Legacy bitmap output should decode to the same grid")
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		grid   *pnmkit.Grid
		format pnmkit.Format
		max    int
	}{
		{"bitmap", pnmkit.CreateCheckerboardGrid(7, 5, 2), pnmkit.Bitmap, 1},
		{"greymap", pnmkit.CreateGradientGrid(9, 4, 255), pnmkit.Greymap, 255},
		{"single", pnmkit.CreateSolidGrid(1, 1, 1), pnmkit.Bitmap, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var first bytes.Buffer
			if err := Encode(&first, tc.grid, tc.format, tc.max); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			g, h, err := Decode(bytes.NewReader(first.Bytes()))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(tc.grid.Samples(), g.Samples()); diff != "" {
				t.Errorf("Sample mismatch (-want +got):\n%s", diff)
			}
			if h.Format != tc.format || h.MaxValue != tc.max {
				t.Errorf("Header mismatch: %+v", h)
			}

			var second bytes.Buffer
			if err := Encode(&second, g, h.Format, h.MaxValue); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if first.String() != second.String() {
				t.Error("Re-encoding should produce identical output")
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "in.pgm")
	if err := os.WriteFile(path, []byte("P2\n4 1\n100\n0 25 50 100\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Format() != pnmkit.Greymap || img.MaxValue() != 100 {
		t.Errorf("Unexpected metadata %s/%d", img.Format(), img.MaxValue())
	}

	img.Binarize(50)
	out := filepath.Join(tmpDir, "out.pbm")
	if err := Save(out, img); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	want := "P1\n4 1\n0 0 1 1\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.pbm"))
	if !errors.Is(err, pnmkit.ErrFileAccess) {
		t.Fatalf("Expected ErrFileAccess, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected the OS error to stay in the chain, got %v", err)
	}
	if pnmkit.IsFatal(err) {
		t.Error("A missing file should not be fatal")
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	img := pnmkit.New(pnmkit.CreateSolidGrid(1, 1, 1), pnmkit.Bitmap, 1)
	err := Save(filepath.Join(t.TempDir(), "no", "such", "dir.pbm"), img)
	if !errors.Is(err, pnmkit.ErrFileAccess) {
		t.Errorf("Expected ErrFileAccess, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist for a missing directory, got %v", err)
	}
}
