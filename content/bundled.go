package content

import (
	"context"
	"errors"
	"io/fs"
	"strings"
)

// BundledFetcher reads content from a filesystem, normally the one embedded
// in the binary.
type BundledFetcher struct {
	fsys fs.FS
}

// NewBundledFetcher returns a BundledFetcher over fsys.
func NewBundledFetcher(fsys fs.FS) *BundledFetcher {
	return &BundledFetcher{fsys: fsys}
}

// Fetch reads path from the filesystem. Paths not present in it are a
// FetchFailure naming the path.
func (f *BundledFetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchFailure{Path: path, Reason: err.Error()}
	}
	name := strings.TrimPrefix(path, "/")
	if !fs.ValidPath(name) {
		return "", &FetchFailure{Path: path, Reason: "not bundled"}
	}
	b, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &FetchFailure{Path: path, Reason: "not bundled"}
		}
		return "", &FetchFailure{Path: path, Reason: err.Error()}
	}
	return string(b), nil
}
