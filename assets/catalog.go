// Package assets holds the decorative background images of the site: the
// catalog scanned at startup, random sampling over it, and verification that
// a sampled image actually loads before it is handed to a view.
package assets

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every background image shipped with the site.
const DefaultPattern = "backgrounds/*.{jpeg,jpg,png,webp}"

// ImageReference locates an image asset. It is either a slash-separated path
// inside the asset filesystem or an absolute http(s) URL.
type ImageReference string

func (r ImageReference) String() string { return string(r) }

// Catalog is an ordered, read-only list of image references.
type Catalog struct {
	refs []ImageReference
}

// NewCatalog scans fsys for files matching pattern. Brace alternatives are
// supported. An empty result is a valid, empty catalog; only an unusable
// pattern is an error.
func NewCatalog(fsys fs.FS, pattern string) (*Catalog, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", pattern, err)
	}
	sort.Strings(matches)
	refs := make([]ImageReference, len(matches))
	for i, m := range matches {
		refs[i] = ImageReference(m)
	}
	return &Catalog{refs: refs}, nil
}

// CatalogOf builds a catalog from explicit references, in the given order.
func CatalogOf(refs ...ImageReference) *Catalog {
	return &Catalog{refs: append([]ImageReference(nil), refs...)}
}

// List returns a copy of the references.
func (c *Catalog) List() []ImageReference {
	if c == nil {
		return nil
	}
	return append([]ImageReference(nil), c.refs...)
}

// Len returns the number of references.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.refs)
}

var shared struct {
	once sync.Once
	cat  *Catalog
	err  error
}

// Shared returns the process-wide catalog. The first call scans fsys with
// pattern; every later call returns that same catalog and error, whatever
// arguments it is given.
func Shared(fsys fs.FS, pattern string) (*Catalog, error) {
	shared.once.Do(func() {
		shared.cat, shared.err = NewCatalog(fsys, pattern)
	})
	return shared.cat, shared.err
}
