package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/mattn/go-sixel"
)

// Format names an output encoding.
type Format string

const (
	FormatPNG   Format = "png"
	FormatGIF   Format = "gif"
	FormatSixel Format = "sixel"
	FormatRaw   Format = "raw"
)

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatGIF, FormatSixel, FormatRaw:
		return f, nil
	case "":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("surface: unknown format %q", s)
	}
}

// FormatFromPath picks a format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".gif"):
		return FormatGIF
	case strings.HasSuffix(strings.ToLower(path), ".rgba"),
		strings.HasSuffix(strings.ToLower(path), ".raw"):
		return FormatRaw
	default:
		return FormatPNG
	}
}

// Encoder is a surface that encodes every written frame to W.
type Encoder struct {
	Memory
	W      io.Writer
	Format Format
	// Colors caps the GIF palette size; zero means 256.
	Colors int
}

func NewEncoder(w io.Writer, format Format) *Encoder {
	return &Encoder{W: w, Format: format}
}

// WritePixels stores the frame and encodes it.
func (e *Encoder) WritePixels(pix []byte) error {
	if err := e.Memory.WritePixels(pix); err != nil {
		return err
	}
	img := e.Image()
	switch e.Format {
	case FormatPNG, "":
		return png.Encode(e.W, img)
	case FormatGIF:
		return gif.Encode(e.W, img, &gif.Options{
			NumColors: e.colors(),
			Quantizer: &quantize.MedianCutQuantizer{},
			Drawer:    draw.FloydSteinberg,
		})
	case FormatSixel:
		return sixel.NewEncoder(e.W).Encode(flatten(img))
	case FormatRaw:
		_, err := e.W.Write(img.Pix)
		return err
	default:
		return fmt.Errorf("surface: unknown format %q", e.Format)
	}
}

func (e *Encoder) colors() int {
	if e.Colors <= 0 || e.Colors > 256 {
		return 256
	}
	return e.Colors
}

// flatten composites the frame over black; sixel has no alpha channel.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}
