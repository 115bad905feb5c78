package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/time/rate"

	"github.com/samcharles93/sacmask/pkg/sac"
)

// Fetcher retrieves the raw bytes of a mask.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherConfig configures an HTTPFetcher.
type FetcherConfig struct {
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration
	// MaxBytes caps the decoded body size. Zero means no cap.
	MaxBytes int64
	// RequestsPerSecond throttles request issue. Zero disables throttling.
	RequestsPerSecond float64
	// Burst is the limiter burst; it defaults to 1.
	Burst     int
	UserAgent string
}

// HTTPFetcher fetches masks with plain GET requests.
type HTTPFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	maxBytes  int64
	userAgent string
}

func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}
	return f
}

// WithClient replaces the HTTP client, eg. to route through a test server.
func (f *HTTPFetcher) WithClient(c *http.Client) *HTTPFetcher {
	f.client = c
	return f
}

// Fetch issues a GET for url and returns the decoded body.
// zstd and gzip content encodings are decoded transparently.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, cancelled(ctx, &TransportError{URL: url, Err: err})
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", sac.ContentType)
	req.Header.Set("Accept-Encoding", "zstd, gzip")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, cancelled(ctx, &TransportError{URL: url, Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, closeBody, err := decodeBody(resp)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	defer closeBody()

	data, err := f.readAll(body)
	if err != nil {
		return nil, cancelled(ctx, &TransportError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: err})
	}
	return data, nil
}

func (f *HTTPFetcher) readAll(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, f.maxBytes)
	}
	return data, nil
}

func decodeBody(resp *http.Response) (io.Reader, func(), error) {
	enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch enc {
	case "", "identity":
		return resp.Body, func() {}, nil
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { _ = zr.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported content encoding %q", enc)
	}
}
