package inkpost

import (
	"sync"

	"github.com/eringen/inkpost/posts"
)

// CatalogSource holds the current post catalog. The catalog itself is
// immutable; Reload swaps in a freshly built one.
type CatalogSource struct {
	mu   sync.RWMutex
	cat  *posts.Catalog
	load func() (*posts.Catalog, error)
}

// NewCatalogSource builds the first catalog with load.
func NewCatalogSource(load func() (*posts.Catalog, error)) (*CatalogSource, error) {
	s := &CatalogSource{load: load}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the catalog. On error the previous catalog stays in place.
func (s *CatalogSource) Reload() error {
	cat, err := s.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cat = cat
	s.mu.Unlock()
	return nil
}

// Catalog returns the current catalog.
func (s *CatalogSource) Catalog() *posts.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// FindBySlug looks slug up in the current catalog.
func (s *CatalogSource) FindBySlug(slug string) (posts.Record, error) {
	return s.Catalog().FindBySlug(slug)
}
