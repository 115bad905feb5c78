package sac

import (
	"errors"
	"image"
	"math"
)

// DefaultOpacity applies when RenderOptions.Opacity is nil.
const DefaultOpacity = 0.5

// RenderOptions configures a Render call.
type RenderOptions struct {
	// Opacity in [0, 1]; nil selects DefaultOpacity. Values outside the
	// range are clamped.
	Opacity *float64
	// ColorMode; empty selects ModeWhite.
	ColorMode ColorMode
	// Width and Height override the document's own dimensions.
	Width  uint32
	Height uint32
}

// Opacity returns a pointer to v for use in RenderOptions.
func Opacity(v float64) *float64 {
	return &v
}

func (o RenderOptions) opacity() float64 {
	if o.Opacity == nil || math.IsNaN(*o.Opacity) {
		return DefaultOpacity
	}
	return math.Min(math.Max(*o.Opacity, 0), 1)
}

// Raster is a rendered overlay: Width*Height pixels of straight-alpha RGBA.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// Image exposes the raster as an image without copying.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: 4 * r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

var errNilDocument = errors.New("sac: nil document")

// ResolveDimensions picks the render size: explicit options win over the
// document's header, field by field.
func ResolveDimensions(doc *Document, opts RenderOptions) (width, height uint32, err error) {
	width, height = opts.Width, opts.Height
	if doc != nil {
		if width == 0 {
			width = doc.Header.Width
		}
		if height == 0 {
			height = doc.Header.Height
		}
	}
	if width == 0 || height == 0 {
		return 0, 0, renderErr(ErrMissingDimensions, "width=%d height=%d", width, height)
	}
	return width, height, nil
}

// Render maps the document's arrays to RGBA pixels. Both array lengths are
// re-checked against the resolved width*height.
func Render(doc *Document, opts RenderOptions) (*Raster, error) {
	if doc == nil {
		return nil, errNilDocument
	}
	width, height, err := ResolveDimensions(doc, opts)
	if err != nil {
		return nil, err
	}
	n := uint64(width) * uint64(height)
	if uint64(doc.A.Len()) != n || uint64(doc.B.Len()) != n {
		return nil, renderErr(ErrSizeMismatch, "%d elements for %dx%d", doc.A.Len(), width, height)
	}
	if n > math.MaxInt/4 {
		return nil, renderErr(ErrSizeMismatch, "%dx%d exceeds addressable size", width, height)
	}
	mode, err := ParseColorMode(string(opts.ColorMode))
	if err != nil {
		return nil, err
	}

	pix := make([]byte, int(n)*4)
	fill(pix, doc, mode, opts.opacity())

	return &Raster{Width: int(width), Height: int(height), Pix: pix}, nil
}

func fill(pix []byte, doc *Document, mode ColorMode, opacity float64) {
	flat := toByte(255 * opacity)
	switch mode {
	case ModeWhite:
		for i, v := range doc.A.All() {
			px := pix[i*4 : i*4+4 : i*4+4]
			px[0], px[1], px[2] = 255, 255, 255
			px[3] = toByte(Normalize(v) * opacity)
		}
	case ModeRed, ModeGreen, ModeBlue:
		ch := channel(mode)
		for i, v := range doc.A.All() {
			px := pix[i*4 : i*4+4 : i*4+4]
			px[ch] = toByte(Normalize(v))
			px[3] = flat
		}
	case ModeRainbow:
		for i, v := range doc.A.All() {
			a := Normalize(v)
			b := Normalize(doc.B.At(i))
			hue := math.Sqrt(a*a+b*b) / 255 * 360
			px := pix[i*4 : i*4+4 : i*4+4]
			px[0], px[1], px[2] = HSLToRGB(hue/360, 1, 0.5)
			px[3] = flat
		}
	}
}

func channel(mode ColorMode) int {
	switch mode {
	case ModeGreen:
		return 1
	case ModeBlue:
		return 2
	default:
		return 0
	}
}
