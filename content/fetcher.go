// Package content retrieves raw post bodies. Two channels exist: a live HTTP
// channel used while developing, so edits show up without a rebuild, and a
// bundled channel that reads from the filesystem compiled into the binary.
// Both return the same text for the same path; callers only see Fetcher.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
)

// Fetcher returns the raw text stored at path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// FetchFailure is the single error shape returned by every Fetcher.
// Status is set only when a live response carried a non-success code.
type FetchFailure struct {
	Path   string
	Status int
	Reason string
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.Path, e.Reason)
}

// Options selects and configures a fetch channel.
type Options struct {
	Live    bool         // use the live HTTP channel
	BaseURL string       // live: root the content paths are resolved against
	Client  *http.Client // live: defaults to http.DefaultClient
	FS      fs.FS        // bundled: content filesystem
}

// NewFetcher picks the channel once, from opts.Live.
func NewFetcher(opts Options) (Fetcher, error) {
	if opts.Live {
		return NewLiveFetcher(opts.BaseURL, opts.Client)
	}
	if opts.FS == nil {
		return nil, fmt.Errorf("content: bundled channel needs a filesystem")
	}
	return NewBundledFetcher(opts.FS), nil
}

// Channel names the channel behind f, for logging.
func Channel(f Fetcher) string {
	switch f.(type) {
	case *LiveFetcher:
		return "live"
	case *BundledFetcher:
		return "bundled"
	default:
		return fmt.Sprintf("%T", f)
	}
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("content: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("content: base url %q must be http or https", raw)
	}
	return u, nil
}
