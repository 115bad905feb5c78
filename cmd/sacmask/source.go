package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/samcharles93/sacmask/internal/transfer"
	"github.com/samcharles93/sacmask/internal/version"
	"github.com/samcharles93/sacmask/pkg/sac"
)

const defaultFetchTimeout = 30 * time.Second

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func newHTTPFetcher() *transfer.HTTPFetcher {
	timeout := cfg.FetchTimeout
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	return transfer.NewHTTPFetcher(transfer.FetcherConfig{
		Timeout:           timeout,
		MaxBytes:          cfg.MaxBodyBytes,
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         "sacmask/" + version.String(),
	})
}

// sourceFetcher fetches URLs over HTTP and reads anything else from disk.
type sourceFetcher struct {
	http *transfer.HTTPFetcher
}

func (f sourceFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if isURL(src) {
		return f.http.Fetch(ctx, src)
	}
	return os.ReadFile(src)
}

// openDocument loads a mask from a path (memory-mapped) or a URL. The
// returned close func releases the mapping.
func openDocument(ctx context.Context, src string) (*sac.Document, func() error, error) {
	if isURL(src) {
		buf, err := newHTTPFetcher().Fetch(ctx, src)
		if err != nil {
			return nil, nil, err
		}
		doc, err := sac.Parse(buf)
		if err != nil {
			return nil, nil, err
		}
		return doc, func() error { return nil }, nil
	}
	f, err := sac.Open(src)
	if err != nil {
		return nil, nil, err
	}
	return f.Doc, f.Close, nil
}
