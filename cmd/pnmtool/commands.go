package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/wbrown/pnmkit"
	"github.com/wbrown/pnmkit/netpbm"
	"github.com/wbrown/pnmkit/raster"
)

func encodeOptions(c *cli.Context) []netpbm.EncodeOption {
	if c.Bool(flagLegacy) {
		return []netpbm.EncodeOption{netpbm.WithLegacyMarker()}
	}
	return nil
}

// load reads the --in image. Malformed input is fatal for the command.
func load(c *cli.Context) (*pnmkit.Image, error) {
	path := c.String(flagIn)
	img, err := netpbm.Load(path, pnmkit.WithLogger(logger))
	if err != nil {
		if pnmkit.IsFatal(err) {
			logger.Error("unusable input", zap.String("path", path), zap.Error(err))
		}
		return nil, err
	}
	logger.Debug("loaded",
		zap.String("path", path),
		zap.Stringer("format", img.Format()),
		zap.Int("width", img.Width()),
		zap.Int("height", img.Height()),
		zap.Int("max", img.MaxValue()))
	return img, nil
}

func steps(c *cli.Context) ([]pnmkit.Step, error) {
	var all []pnmkit.Step
	if path := c.String(flagRecipe); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, pnmkit.FileError("open recipe", path, err)
		}
		defer f.Close()
		recipe, err := pnmkit.ParseRecipe(f)
		if err != nil {
			return nil, errors.Wrapf(err, "recipe %s", path)
		}
		all = append(all, recipe...)
	}
	for _, arg := range c.Args().Slice() {
		step, err := pnmkit.ParseStep(arg)
		if err != nil {
			return nil, err
		}
		all = append(all, step)
	}
	return all, nil
}

func applyAction(c *cli.Context) error {
	todo, err := steps(c)
	if err != nil {
		return err
	}
	img, err := load(c)
	if err != nil {
		return err
	}
	if err := img.Apply(todo...); err != nil {
		return err
	}

	outs := c.StringSlice(flagOut)
	if len(outs) == 0 {
		return netpbm.Write(c.App.Writer, img, encodeOptions(c)...)
	}

	// A failed save only abandons that output.
	var failed []string
	for _, out := range outs {
		if err := netpbm.Save(out, img, encodeOptions(c)...); err != nil {
			logger.Error("save failed", zap.String("path", out), zap.Error(err))
			failed = append(failed, out)
			continue
		}
		logger.Info("saved", zap.String("path", out))
	}
	if len(failed) > 0 {
		return errors.Errorf("could not save %s", strings.Join(failed, ", "))
	}
	return nil
}

func printAction(c *cli.Context) error {
	img, err := load(c)
	if err != nil {
		return err
	}
	return netpbm.Write(c.App.Writer, img, encodeOptions(c)...)
}

func previewAction(c *cli.Context) error {
	img, err := load(c)
	if err != nil {
		return err
	}
	if img.Format() == pnmkit.Greymap {
		threshold := img.MaxValue() / 2
		if c.IsSet(flagThreshold) {
			threshold = c.Int(flagThreshold)
		}
		img.Binarize(threshold)
	}
	_, err = c.App.Writer.Write([]byte(raster.Preview(img.Grid())))
	return err
}

func importAction(c *cli.Context) error {
	src, err := raster.Import(c.String(flagIn))
	if err != nil {
		return err
	}

	var img *pnmkit.Image
	if c.Bool(flagGrey) {
		maxValue := c.Int(flagMax)
		if maxValue <= 0 || maxValue > 65535 {
			return errors.Errorf("max value %d out of range 1-65535", maxValue)
		}
		g, err := raster.FromImageGrey(src, maxValue)
		if err != nil {
			return err
		}
		img = pnmkit.New(g, pnmkit.Greymap, maxValue)
	} else {
		threshold := c.Int(flagThreshold)
		if threshold < 0 || threshold > 255 {
			return errors.Errorf("threshold %d out of range 0-255", threshold)
		}
		g, err := raster.FromImage(src, uint8(threshold))
		if err != nil {
			return err
		}
		img = pnmkit.New(g, pnmkit.Bitmap, 1)
	}
	return netpbm.Save(c.String(flagOut), img)
}

func exportAction(c *cli.Context) error {
	img, err := load(c)
	if err != nil {
		return err
	}
	gray := raster.ToGray(img.Grid(), img.Format(), img.MaxValue())
	return raster.Export(c.String(flagOut), gray, c.Int(flagScale))
}

func textAction(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")

	var g *pnmkit.Grid
	if path := c.String(flagFont); path != "" {
		ttf, err := os.ReadFile(path)
		if err != nil {
			return pnmkit.FileError("read font", path, err)
		}
		f, err := raster.ParseFont(ttf)
		if err != nil {
			return err
		}
		if g, err = raster.RenderTextWithFont(f, text, c.Float64(flagSize)); err != nil {
			return err
		}
	} else {
		var err error
		if g, err = raster.RenderText(text, c.Float64(flagSize)); err != nil {
			return err
		}
	}
	img := pnmkit.New(g, pnmkit.Bitmap, 1, pnmkit.WithLogger(logger))
	if out := c.String(flagOut); out != "" {
		return netpbm.Save(out, img)
	}
	return netpbm.Write(c.App.Writer, img)
}
