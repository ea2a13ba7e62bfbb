package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
)

// LiveFetcher reads content over HTTP from a running content server.
type LiveFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewLiveFetcher returns a LiveFetcher resolving paths against baseURL.
func NewLiveFetcher(baseURL string, client *http.Client) (*LiveFetcher, error) {
	u, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &LiveFetcher{base: u, client: client}, nil
}

// Fetch issues a GET for path. A non-2xx status is a FetchFailure carrying the code.
func (f *LiveFetcher) Fetch(ctx context.Context, path string) (string, error) {
	rel := strings.TrimPrefix(path, "/")
	if !fs.ValidPath(rel) || rel == "." {
		return "", &FetchFailure{Path: path, Reason: "invalid content path"}
	}
	ref, err := url.Parse(rel)
	if err != nil {
		return "", &FetchFailure{Path: path, Reason: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base.ResolveReference(ref).String(), nil)
	if err != nil {
		return "", &FetchFailure{Path: path, Reason: err.Error()}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchFailure{Path: path, Reason: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchFailure{Path: path, Status: resp.StatusCode, Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchFailure{Path: path, Reason: err.Error()}
	}
	return string(body), nil
}
