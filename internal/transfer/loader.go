package transfer

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/samcharles93/sacmask/internal/logger"
	"github.com/samcharles93/sacmask/pkg/sac"
)

// Surface receives rendered pixels.
type Surface interface {
	// SetSize (re)sizes the surface before pixels are written.
	SetSize(width, height int)
	// WritePixels writes width*height straight-alpha RGBA pixels.
	WritePixels(pix []byte) error
}

// Loader runs the AwaitingImage -> Fetching -> Decoding -> Rendering -> Done
// pipeline. A Loader holds no per-call state and may be shared.
type Loader struct {
	Fetcher Fetcher
	Logger  logger.Logger
	// OnState, if set, observes every state the pipeline enters.
	OnState func(url string, s State)
}

// LoadAndRender fetches the mask at url, decodes it, renders it with opts and
// writes the result to dst. img may be nil when opts or the mask itself
// supply dimensions; dst may be nil to only decode and validate.
//
// On failure dst is left untouched and the returned error is a *StageError.
// The document is returned on success so callers can re-render it.
func (l *Loader) LoadAndRender(ctx context.Context, img Image, url string, dst Surface, opts sac.RenderOptions) (*sac.Document, error) {
	log := l.logger().With("url", url)
	fail := func(stage State, err error) (*sac.Document, error) {
		l.enter(log, url, StateFailed)
		log.Warn("mask pipeline failed", "stage", stage.String(), "error", err)
		return nil, &StageError{Stage: stage, Err: err}
	}

	l.enter(log, url, StateAwaitingImage)
	if img != nil {
		if err := img.Wait(ctx); err != nil {
			return fail(StateAwaitingImage, cancelled(ctx, err))
		}
	}

	l.enter(log, url, StateFetching)
	if l.Fetcher == nil {
		return fail(StateFetching, errors.New("no fetcher configured"))
	}
	buf, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		return fail(StateFetching, cancelled(ctx, err))
	}

	l.enter(log, url, StateDecoding)
	doc, err := sac.Parse(buf)
	if err != nil {
		return fail(StateDecoding, err)
	}

	l.enter(log, url, StateRendering)
	if err := ctx.Err(); err != nil {
		return fail(StateRendering, cancelled(ctx, err))
	}
	opts.Width, opts.Height = resolveSize(opts, doc, img)
	raster, err := sac.Render(doc, opts)
	if err != nil {
		return fail(StateRendering, err)
	}
	if dst != nil {
		dst.SetSize(raster.Width, raster.Height)
		if err := dst.WritePixels(raster.Pix); err != nil {
			return fail(StateRendering, err)
		}
	}

	l.enter(log, url, StateDone)
	log.Debug("mask rendered", "width", raster.Width, "height", raster.Height, "mode", opts.ColorMode.String())
	return doc, nil
}

// resolveSize applies options > document header > image natural size,
// field by field. Zero results are left for the renderer to reject.
func resolveSize(opts sac.RenderOptions, doc *sac.Document, img Image) (uint32, uint32) {
	w, h := opts.Width, opts.Height
	if w == 0 {
		w = doc.Header.Width
	}
	if h == 0 {
		h = doc.Header.Height
	}
	if (w == 0 || h == 0) && img != nil {
		iw, ih := img.Size()
		if w == 0 {
			w = clampDim(iw)
		}
		if h == 0 {
			h = clampDim(ih)
		}
	}
	return w, h
}

func clampDim(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func (l *Loader) enter(log logger.Logger, url string, s State) {
	log.Debug("mask pipeline state", "state", s.String())
	if l.OnState != nil {
		l.OnState(url, s)
	}
}

func (l *Loader) logger() logger.Logger {
	if l.Logger == nil {
		return logger.Discard()
	}
	return l.Logger
}

// Job is one mask for LoadAll.
type Job struct {
	Image   Image
	URL     string
	Surface Surface
	Options sac.RenderOptions
}

// Result is the outcome of one Job.
type Result struct {
	Doc *sac.Document
	Err error
}

// LoadAll runs one pipeline per job with at most concurrency in flight
// (0 means no limit). Results are returned in job order.
func (l *Loader) LoadAll(ctx context.Context, jobs []Job, concurrency int) []Result {
	results := make([]Result, len(jobs))
	if concurrency <= 0 || concurrency > len(jobs) {
		concurrency = len(jobs)
	}
	if concurrency == 0 {
		return results
	}

	in := make(chan int)
	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			for i := range in {
				j := jobs[i]
				doc, err := l.LoadAndRender(ctx, j.Image, j.URL, j.Surface, j.Options)
				results[i] = Result{Doc: doc, Err: err}
			}
		})
	}
	for i := range jobs {
		in <- i
	}
	close(in)
	wg.Wait()
	return results
}
