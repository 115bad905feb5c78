package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sacmask/internal/logger"
	"github.com/samcharles93/sacmask/pkg/sac"
)

func packCmd() *cli.Command {
	var (
		aPath    string
		bPath    string
		outPath  string
		noDims   bool
		flags    int64
		reserved int64
	)

	return &cli.Command{
		Name:  "pack",
		Usage: "Build a SAC mask from two grayscale images",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "a", Usage: "image for array A", Destination: &aPath, Required: true},
			&cli.StringFlag{Name: "b", Usage: "image for array B (defaults to A)", Destination: &bPath},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output .sac path", Destination: &outPath, Required: true},
			&cli.BoolFlag{Name: "no-dims", Usage: "leave width and height unspecified", Destination: &noDims},
			&cli.Int64Flag{Name: "flags", Usage: "header flags byte", Destination: &flags},
			&cli.Int64Flag{Name: "reserved", Usage: "header reserved byte", Destination: &reserved},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			if flags < 0 || flags > 255 || reserved < 0 || reserved > 255 {
				return cli.Exit("pack: --flags and --reserved must fit in a byte", 1)
			}
			if bPath == "" {
				bPath = aPath
			}

			a, rect, err := readGrayArray(aPath)
			if err != nil {
				return err
			}
			b, rectB, err := readGrayArray(bPath)
			if err != nil {
				return err
			}
			if rect.Size() != rectB.Size() {
				return fmt.Errorf("pack: image sizes differ: %v vs %v", rect.Size(), rectB.Size())
			}

			var w, h uint32
			if !noDims {
				w, h = uint32(rect.Dx()), uint32(rect.Dy())
			}
			buf, err := sac.Encode(a, b, w, h, sac.Metadata{Flags: uint8(flags), Reserved: uint8(reserved)})
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, buf, 0o644); err != nil {
				return err
			}
			log.Info("mask packed", "out", outPath, "elements", len(a), "width", w, "height", h)
			return nil
		},
	}
}

// readGrayArray decodes an image and maps each pixel's gray level g to
// g*257 - 32768, the inverse of the renderer's normalization.
func readGrayArray(path string) ([]int16, image.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return grayToInt16(img), img.Bounds(), nil
}

func grayToInt16(img image.Image) []int16 {
	b := img.Bounds()
	out := make([]int16, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			out = append(out, int16(int32(g)*257-32768))
		}
	}
	return out
}
