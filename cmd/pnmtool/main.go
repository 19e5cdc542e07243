// Command pnmtool loads plain-text P1/P2 images, runs transform steps on
// them, and converts them to and from common raster formats.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	flagDebug     = "debug"
	flagIn        = "in"
	flagOut       = "out"
	flagRecipe    = "recipe"
	flagLegacy    = "legacy"
	flagThreshold = "threshold"
	flagGrey      = "grey"
	flagMax       = "max"
	flagScale     = "scale"
	flagSize      = "size"
	flagFont      = "font"
)

var logger = zap.NewNop()

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func newApp() *cli.App {
	inFlag := &cli.StringFlag{
		Name:     flagIn,
		Aliases:  []string{"i"},
		Usage:    "input image path",
		Required: true,
	}

	return &cli.App{
		Name:  "pnmtool",
		Usage: "transform plain-text PBM (P1) and PGM (P2) images",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "log every transform step",
			},
		},
		Before: func(c *cli.Context) error {
			l, err := newLogger(c.Bool(flagDebug))
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		After: func(c *cli.Context) error {
			// stderr sync fails on some terminals; nothing to report
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "apply",
				Usage:     "run transform steps and save the result",
				ArgsUsage: "[step...]  e.g. rotate:30 resize:64x64 binarize:128 erode dilate negate",
				Flags: []cli.Flag{
					inFlag,
					&cli.StringSliceFlag{
						Name:    flagOut,
						Aliases: []string{"o"},
						Usage:   "output path, repeatable (default: stdout)",
					},
					&cli.StringFlag{
						Name:  flagRecipe,
						Usage: "file with one step per line, run before the command-line steps",
					},
					&cli.BoolFlag{
						Name:  flagLegacy,
						Usage: "always write a P1 marker with trailing spaces, for older readers",
					},
				},
				Action: applyAction,
			},
			{
				Name:   "print",
				Usage:  "decode and re-encode an image to stdout",
				Flags:  []cli.Flag{inFlag, &cli.BoolFlag{Name: flagLegacy}},
				Action: printAction,
			},
			{
				Name:  "preview",
				Usage: "draw an image in the terminal with block characters",
				Flags: []cli.Flag{
					inFlag,
					&cli.IntFlag{
						Name:  flagThreshold,
						Usage: "greymap threshold (default: half the max value)",
					},
				},
				Action: previewAction,
			},
			{
				Name:  "import",
				Usage: "convert a PNG/JPEG/GIF/BMP/TIFF image to P1 or P2",
				Flags: []cli.Flag{
					inFlag,
					&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Required: true},
					&cli.BoolFlag{Name: flagGrey, Usage: "write a P2 greymap instead of a bitmap"},
					&cli.IntFlag{Name: flagMax, Value: 255, Usage: "greymap max value"},
					&cli.IntFlag{Name: flagThreshold, Value: 128, Usage: "bitmap ink threshold (0-255)"},
				},
				Action: importAction,
			},
			{
				Name:  "export",
				Usage: "convert a P1/P2 image to PNG/JPEG/GIF/BMP/TIFF",
				Flags: []cli.Flag{
					inFlag,
					&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Required: true},
					&cli.IntFlag{Name: flagScale, Value: 1, Usage: "integer upscaling factor"},
				},
				Action: exportAction,
			},
			{
				Name:      "text",
				Usage:     "render text into a P1 bitmap",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Usage: "output path (default: stdout)"},
					&cli.Float64Flag{Name: flagSize, Value: 16, Usage: "font size in pixels"},
					&cli.StringFlag{Name: flagFont, Usage: "TrueType font file (default: Go Regular)"},
				},
				Action: textAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
