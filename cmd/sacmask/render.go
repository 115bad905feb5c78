package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sacmask/internal/logger"
	"github.com/samcharles93/sacmask/internal/surface"
	"github.com/samcharles93/sacmask/internal/transfer"
	"github.com/samcharles93/sacmask/pkg/sac"
)

func renderCmd() *cli.Command {
	var (
		in        string
		out       string
		imagePath string
		format    string
		colors    int64
		rf        renderFlags
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Render a SAC mask to an image",
		Flags: append(rf.flags(),
			&cli.StringFlag{
				Name:        "in",
				Aliases:     []string{"i"},
				Usage:       "mask file path or http(s) URL",
				Destination: &in,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path, or - for stdout",
				Destination: &out,
			},
			&cli.StringFlag{
				Name:        "image",
				Usage:       "paired image used for dimensions when the mask has none",
				Destination: &imagePath,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (png, gif, raw, sixel); default from --out extension",
				Destination: &format,
			},
			&cli.Int64Flag{
				Name:        "colors",
				Usage:       "GIF palette size",
				Value:       256,
				Destination: &colors,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyRenderConfig(cmd, cfg, &rf)

			f, err := outputFormat(format, out)
			if err != nil {
				return err
			}
			if out == "" && f != surface.FormatSixel {
				return cli.Exit("render: --out is required unless --format=sixel", 1)
			}
			opts, err := rf.options()
			if err != nil {
				return err
			}

			var img transfer.Image
			if imagePath != "" {
				img = transfer.LoadImageFile(imagePath)
			}

			// Encode into memory so a failed render never leaves a partial file.
			var buf bytes.Buffer
			enc := surface.NewEncoder(&buf, f)
			enc.Colors = int(colors)

			loader := &transfer.Loader{
				Fetcher: sourceFetcher{http: newHTTPFetcher()},
				Logger:  log,
			}
			doc, err := loader.LoadAndRender(ctx, img, in, enc, opts)
			if err != nil {
				return err
			}

			if err := writeOutput(out, buf.Bytes()); err != nil {
				return err
			}
			frame := enc.Image().Bounds()
			log.Info("mask rendered",
				"source", in,
				"elements", doc.Len(),
				"width", frame.Dx(),
				"height", frame.Dy(),
				"format", string(f),
			)
			return nil
		},
	}
}

func (f *renderFlags) options() (sac.RenderOptions, error) {
	mode, err := sac.ParseColorMode(f.mode)
	if err != nil {
		return sac.RenderOptions{}, err
	}
	if f.width > math.MaxUint32 || f.height > math.MaxUint32 {
		return sac.RenderOptions{}, fmt.Errorf("dimensions %dx%d exceed 32 bits", f.width, f.height)
	}
	return sac.RenderOptions{
		Opacity:   sac.Opacity(f.opacity),
		ColorMode: mode,
		Width:     uint32(f.width),
		Height:    uint32(f.height),
	}, nil
}

func outputFormat(format, out string) (surface.Format, error) {
	if format != "" {
		return surface.ParseFormat(format)
	}
	if out == "" || out == "-" {
		return surface.FormatPNG, nil
	}
	return surface.FormatFromPath(out), nil
}

func writeOutput(out string, data []byte) error {
	if out != "" && out != "-" {
		return os.WriteFile(out, data, 0o644)
	}
	_, err := os.Stdout.Write(data)
	return err
}
