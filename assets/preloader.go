package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"strings"

	_ "golang.org/x/image/webp"
)

// LoadFailure reports that an image reference could not be loaded.
type LoadFailure struct {
	Ref    ImageReference
	Reason string
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("failed to load image %s: %s", e.Ref, e.Reason)
}

// Preloader checks that an image reference resolves to a decodable image.
// Paths are opened from FS; http(s) URLs are fetched with Client.
//
// Verify imposes no timeout of its own. A load that never completes blocks
// until ctx is done, so callers wanting bounded latency pass a deadline.
type Preloader struct {
	FS     fs.FS
	Client *http.Client
}

// NewPreloader returns a Preloader over fsys using http.DefaultClient for URLs.
func NewPreloader(fsys fs.FS) *Preloader {
	return &Preloader{FS: fsys, Client: http.DefaultClient}
}

// Verify loads ref and returns it on success. Every failure is reported as a
// *LoadFailure.
func (p *Preloader) Verify(ctx context.Context, ref ImageReference) (ImageReference, error) {
	rc, err := p.open(ctx, ref)
	if err != nil {
		return "", &LoadFailure{Ref: ref, Reason: err.Error()}
	}
	defer rc.Close()
	if _, _, err := image.DecodeConfig(rc); err != nil {
		return "", &LoadFailure{Ref: ref, Reason: fmt.Sprintf("decode: %v", err)}
	}
	return ref, nil
}

func (p *Preloader) open(ctx context.Context, ref ImageReference) (io.ReadCloser, error) {
	s := string(ref)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return p.fetch(ctx, s)
	}
	if p.FS == nil {
		return nil, fmt.Errorf("no asset filesystem")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.FS.Open(strings.TrimPrefix(s, "/"))
}

func (p *Preloader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
