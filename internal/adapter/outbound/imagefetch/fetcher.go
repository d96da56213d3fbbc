// Package imagefetch downloads remote images referenced inside tabular data.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/port"
)

const (
	userAgent = "Mozilla/5.0 (Dataset Preview Bot)"

	// maxImageBytes caps how much of a remote body gets buffered; anything
	// larger than this is not a cell thumbnail candidate anyway.
	maxImageBytes = 20 * 1024 * 1024
)

type Fetcher struct {
	client *http.Client
}

var _ port.ImageFetcher = (*Fetcher)(nil)

// New builds a fetcher whose client enforces the hard per-request timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads one image. A non-2xx status is an error; the timeout
// cancels only this request.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("image body read failed: %w", err)
	}
	return data, nil
}
