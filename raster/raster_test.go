package raster

import (
	"image"
	"image/color"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/pnmkit"
)

func TestToGrayBitmap(t *testing.T) {
	g := pnmkit.MustGrid([][]int{{1, 0}})
	gray := ToGray(g, pnmkit.Bitmap, 1)
	if gray.GrayAt(0, 0).Y != 0 {
		t.Errorf("Ink should be black, got %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 255 {
		t.Errorf("Paper should be white, got %d", gray.GrayAt(1, 0).Y)
	}
}

func TestToGrayGreymap(t *testing.T) {
	g := pnmkit.MustGrid([][]int{{0, 50, 100, 150}})
	gray := ToGray(g, pnmkit.Greymap, 100)
	want := []uint8{0, 128, 255, 255}
	for x, w := range want {
		if got := gray.GrayAt(x, 0).Y; got != w {
			t.Errorf("x=%d: expected %d, got %d", x, w, got)
		}
	}
}

func TestFromImageThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 127})
	img.SetGray(2, 0, color.Gray{Y: 200})

	g, err := FromImage(img, 128)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got := g.Row(0); got[0] != 1 || got[1] != 1 || got[2] != 0 {
		t.Errorf("Expected [1 1 0], got %v", got)
	}
}

func TestGrayRoundTrip(t *testing.T) {
	g := pnmkit.CreateGradientGrid(16, 3, 255)
	back, err := FromImageGrey(ToGray(g, pnmkit.Greymap, 255), 255)
	if err != nil {
		t.Fatalf("FromImageGrey failed: %v", err)
	}
	if !back.Equal(g) {
		t.Error("An 8-bit greymap should survive conversion unchanged")
	}

	bits := pnmkit.CreateCheckerboardGrid(8, 8, 2)
	backBits, err := FromImage(ToGray(bits, pnmkit.Bitmap, 1), 128)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if !backBits.Equal(bits) {
		t.Error("A bitmap should survive conversion unchanged")
	}
}

func TestFromImageEmpty(t *testing.T) {
	empty := image.NewGray(image.Rect(0, 0, 0, 0))
	if _, err := FromImage(empty, 128); !errors.Is(err, pnmkit.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := FromImageGrey(empty, 255); !errors.Is(err, pnmkit.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
}

func TestScale(t *testing.T) {
	gray := ToGray(pnmkit.MustGrid([][]int{{1, 0}}), pnmkit.Bitmap, 1)
	scaled := Scale(gray, 3)
	if scaled.Bounds().Dx() != 6 || scaled.Bounds().Dy() != 3 {
		t.Fatalf("Expected 6x3, got %v", scaled.Bounds())
	}
	for x := 0; x < 6; x++ {
		want := uint8(255)
		if x < 3 {
			want = 0
		}
		if got := scaled.GrayAt(x, 2).Y; got != want {
			t.Errorf("x=%d: expected %d, got %d", x, want, got)
		}
	}
}

func TestExportImport(t *testing.T) {
	tmpDir := t.TempDir()
	g := pnmkit.CreateCheckerboardGrid(10, 6, 1)
	gray := ToGray(g, pnmkit.Bitmap, 1)

	for _, name := range []string{"out.png", "out.tiff", "out.bmp"} {
		path := filepath.Join(tmpDir, name)
		if err := Export(path, gray, 2); err != nil {
			t.Fatalf("%s: Export failed: %v", name, err)
		}
		img, err := Import(path)
		if err != nil {
			t.Fatalf("%s: Import failed: %v", name, err)
		}
		if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 12 {
			t.Errorf("%s: expected 20x12, got %v", name, img.Bounds())
		}
		back, err := FromImage(img, 128)
		if err != nil {
			t.Fatalf("%s: FromImage failed: %v", name, err)
		}
		if back.Sample(0, 0) != 1 || back.Sample(2, 0) != 0 {
			t.Errorf("%s: lossless formats should keep the pattern, got %v", name, back.Row(0))
		}
	}
}

func TestImportMissing(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, pnmkit.ErrFileAccess) {
		t.Errorf("Expected ErrFileAccess, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestExportUnsupported(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	err := Export(filepath.Join(t.TempDir(), "out.xyz"), gray, 1)
	if !errors.Is(err, imaging.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	g := pnmkit.MustGrid([][]int{
		{1, 1, 1, 0, 1},
		{1, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
	})
	want := "█▚▘\n ▘ \n"
	if got := Preview(g); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestQuadrantRune(t *testing.T) {
	if QuadrantRune(Quadrants{}) != ' ' {
		t.Error("Empty quadrants should be a space")
	}
	if QuadrantRune(Quadrants{TopLeft: true, TopRight: true}) != '▀' {
		t.Error("Top quadrants should be the upper half block")
	}
}

func TestRenderText(t *testing.T) {
	g, err := RenderText("Hi", 16)
	if err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	if g.Width() == 0 || g.Height() < 10 {
		t.Fatalf("Unexpected size %dx%d", g.Width(), g.Height())
	}
	ink := pnmkit.CountSamples(g, 1)
	if ink == 0 {
		t.Error("Rendered text should contain ink")
	}
	if ink == g.Len() {
		t.Error("Rendered text should contain paper")
	}
	if !strings.ContainsAny(Preview(g), "█▌▐") {
		t.Error("Preview of rendered text should show solid strokes")
	}
}

func TestRenderTextEmpty(t *testing.T) {
	if _, err := RenderText("", 12); !errors.Is(err, pnmkit.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions for empty text, got %v", err)
	}
	if _, err := RenderText("x", 0); !errors.Is(err, pnmkit.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions for zero size, got %v", err)
	}
}

func TestRenderTextWithFont(t *testing.T) {
	if _, err := ParseFont([]byte("not a font")); err == nil {
		t.Error("Expected an error for garbage font data")
	}

	mono, err := ParseFont(gomono.TTF)
	if err != nil {
		t.Fatalf("ParseFont failed: %v", err)
	}
	narrow, err := RenderTextWithFont(mono, "iiii", 16)
	if err != nil {
		t.Fatalf("RenderTextWithFont failed: %v", err)
	}
	wide, err := RenderTextWithFont(mono, "MMMM", 16)
	if err != nil {
		t.Fatalf("RenderTextWithFont failed: %v", err)
	}
	// Every glyph in a monospaced font has the same advance.
	if narrow.Width() != wide.Width() {
		t.Errorf("Expected equal widths for a monospaced font, got %d and %d",
			narrow.Width(), wide.Width())
	}
}
