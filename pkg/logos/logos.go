// Package logos fetches team logo images, resizes them for the panel, and
// caches the resized result on disk so rotations do not re-download them.
package logos

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"gitlab.com/tinyland/lab/sportsboard/pkg/cache"
)

// Defaults. Remote logos change rarely, so an hour of caching is plenty;
// the fetch timeout is short because a logo is decoration, not data.
const (
	DefaultTTL     = time.Hour
	DefaultTimeout = 3 * time.Second
	DefaultSize    = 14
)

// Fetcher resolves logo URLs to panel-sized images. It implements the
// sources.LogoProvider capability.
type Fetcher struct {
	store  *cache.Store
	client *http.Client
	size   int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client, for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithSize overrides the square edge the logo is resized to.
func WithSize(size int) Option {
	return func(f *Fetcher) { f.size = size }
}

// New creates a fetcher backed by the given cache store.
func New(store *cache.Store, opts ...Option) *Fetcher {
	f := &Fetcher{
		store:  store,
		client: &http.Client{Timeout: DefaultTimeout},
		size:   DefaultSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Logo returns the image at url resized to the configured square, serving
// from the disk cache when possible.
func (f *Fetcher) Logo(ctx context.Context, url string) (image.Image, error) {
	key := fmt.Sprintf("logo:%s:%d", url, f.size)
	if data, ok := f.store.Get(key); ok {
		img, err := png.Decode(bytes.NewReader(data))
		if err == nil {
			return img, nil
		}
		// Corrupt cache entry; drop it and refetch.
		f.store.Delete(key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("logos: build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logos: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logos: fetch %s: unexpected status %s", url, resp.Status)
	}

	src, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("logos: decode %s: %w", url, err)
	}
	sized := imaging.Resize(src, f.size, f.size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, sized); err == nil {
		// Cache failures are not worth failing the frame over.
		_ = f.store.PutWithTTL(key, buf.Bytes(), DefaultTTL)
	}
	return sized, nil
}
