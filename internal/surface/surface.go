// Package surface provides pixel surfaces that rendered masks are written
// to: an in-memory image and encoders for PNG, GIF, sixel and raw RGBA.
package surface

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrNotSized     = errors.New("surface: size not set")
	ErrPixelsLength = errors.New("surface: pixel buffer does not match size")
)

// Memory holds the last frame written to it.
type Memory struct {
	img *image.NRGBA
}

// SetSize discards any previous frame and allocates a blank one.
func (m *Memory) SetSize(width, height int) {
	m.img = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// WritePixels copies width*height RGBA pixels into the frame.
func (m *Memory) WritePixels(pix []byte) error {
	if m.img == nil {
		return ErrNotSized
	}
	if len(pix) != len(m.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPixelsLength, len(pix), len(m.img.Pix))
	}
	copy(m.img.Pix, pix)
	return nil
}

// Image returns the current frame, or nil if none was sized.
func (m *Memory) Image() *image.NRGBA {
	return m.img
}
