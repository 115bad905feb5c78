package transfer

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// Image is the picture a mask is paired with. It is only consulted for its
// natural size, and only when neither the options nor the mask carry one.
type Image interface {
	// Wait blocks until the image has loaded or failed to load.
	Wait(ctx context.Context) error
	// Size returns the natural size. It is only valid after Wait returns nil.
	Size() (width, height int)
}

// StaticImage is an image whose size is already known.
type StaticImage struct {
	Width  int
	Height int
}

func (s StaticImage) Wait(context.Context) error { return nil }

func (s StaticImage) Size() (int, int) { return s.Width, s.Height }

// PendingImage reads an image's header in the background.
type PendingImage struct {
	done   chan struct{}
	width  int
	height int
	err    error
}

// LoadImage starts reading the image returned by open. Only the image
// header is decoded.
func LoadImage(open func() (io.ReadCloser, error)) *PendingImage {
	p := &PendingImage{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		rc, err := open()
		if err != nil {
			p.err = err
			return
		}
		defer func() { _ = rc.Close() }()
		cfg, _, err := image.DecodeConfig(rc)
		if err != nil {
			p.err = fmt.Errorf("decode image: %w", err)
			return
		}
		p.width, p.height = cfg.Width, cfg.Height
	}()
	return p
}

// LoadImageFile starts reading the image at path.
func LoadImageFile(path string) *PendingImage {
	return LoadImage(func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

func (p *PendingImage) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *PendingImage) Size() (int, int) {
	select {
	case <-p.done:
		return p.width, p.height
	default:
		return 0, 0
	}
}
