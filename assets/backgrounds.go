package assets

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultSelectCount is how many backgrounds SelectMany draws when asked for zero or fewer.
const DefaultSelectCount = 3

// Selection is a background chosen for a view.
type Selection struct {
	Reference ImageReference `json:"reference"`
	Verified  bool           `json:"verified"`
}

// Backgrounds pairs a sampler with a preloader over one catalog. A request
// that cannot produce a loadable image yields no selection rather than an error.
type Backgrounds struct {
	Catalog   *Catalog
	Sampler   *Sampler
	Preloader *Preloader
	Log       *zap.Logger

	// Parallelism bounds concurrent verifications in SelectMany.
	Parallelism int
}

// Select draws one background and verifies it. The bool is false when there
// is no background to show.
func (b *Backgrounds) Select(ctx context.Context) (Selection, bool) {
	ref, err := b.Sampler.PickOne(b.Catalog)
	if err != nil {
		b.logger().Debug("no background", zap.Error(err))
		return Selection{}, false
	}
	if _, err := b.Preloader.Verify(ctx, ref); err != nil {
		b.logger().Debug("background failed to load", zap.String("ref", ref.String()), zap.Error(err))
		return Selection{}, false
	}
	return Selection{Reference: ref, Verified: true}, true
}

// SelectMany draws up to count distinct backgrounds and verifies them in
// parallel. Failed images are dropped; draw order is kept for the rest.
func (b *Backgrounds) SelectMany(ctx context.Context, count int) []Selection {
	if count <= 0 {
		count = DefaultSelectCount
	}
	refs, err := b.Sampler.PickMany(b.Catalog, count)
	if err != nil {
		b.logger().Debug("no backgrounds", zap.Error(err))
		return []Selection{}
	}

	ok := make([]bool, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	limit := b.Parallelism
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			if _, err := b.Preloader.Verify(gctx, ref); err != nil {
				b.logger().Debug("background failed to load", zap.String("ref", ref.String()), zap.Error(err))
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Selection, 0, len(refs))
	for i, ref := range refs {
		if ok[i] {
			out = append(out, Selection{Reference: ref, Verified: true})
		}
	}
	return out
}

func (b *Backgrounds) logger() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}
