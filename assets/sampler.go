package assets

import (
	"errors"
	"math/rand/v2"
	"sync"
)

// ErrEmptyCatalog is returned when sampling from a catalog with no entries.
var ErrEmptyCatalog = errors.New("empty background catalog")

// Sampler draws random references from a catalog. It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler using src, or a randomly seeded source when src is nil.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(src)}
}

// PickOne draws one reference uniformly at random.
func (s *Sampler) PickOne(c *Catalog) (ImageReference, error) {
	if c.Len() == 0 {
		return "", ErrEmptyCatalog
	}
	s.mu.Lock()
	i := s.rng.IntN(len(c.refs))
	s.mu.Unlock()
	return c.refs[i], nil
}

// PickMany returns the first min(count, c.Len()) entries of a uniformly
// shuffled copy of the catalog. The result never contains duplicates.
func (s *Sampler) PickMany(c *Catalog, count int) ([]ImageReference, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if count <= 0 {
		return []ImageReference{}, nil
	}
	refs := c.List()
	s.mu.Lock()
	s.rng.Shuffle(len(refs), func(i, j int) {
		refs[i], refs[j] = refs[j], refs[i]
	})
	s.mu.Unlock()
	if count > len(refs) {
		count = len(refs)
	}
	return refs[:count], nil
}
