// Package resolve drives the loading of a post from its slug. A Controller
// looks the slug up in a catalog, fetches the post body and exposes the
// outcome as a LoadState. Only the latest request may settle the state, and
// nothing changes after the controller is disposed.
package resolve

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/eringen/inkpost/content"
	"github.com/eringen/inkpost/posts"
)

// ReasonNotFound is the failure reason for a slug missing from the catalog.
const ReasonNotFound = "post not found"

// ErrDisposed is returned by Wait once the controller has been disposed.
var ErrDisposed = errors.New("controller disposed")

// Finder looks a post up by slug. *posts.Catalog implements it.
type Finder interface {
	FindBySlug(slug string) (posts.Record, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithContext sets the context passed to every fetch. Disposal does not
// cancel it.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// WithLogger sets the controller's logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller owns the LoadState of one view. It is safe for concurrent use.
type Controller struct {
	finder  Finder
	fetcher content.Fetcher
	ctx     context.Context
	log     *zap.Logger

	mu       sync.Mutex
	state    LoadState
	post     posts.Record
	found    bool
	token    uint64
	disposed bool
	changed  chan struct{}
}

// NewController returns an Idle controller.
func NewController(finder Finder, fetcher content.Fetcher, opts ...Option) *Controller {
	c := &Controller{
		finder:  finder,
		fetcher: fetcher,
		ctx:     context.Background(),
		log:     zap.NewNop(),
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve starts loading slug and returns the request's token. Any earlier
// request is superseded; its result will be discarded when it arrives.
// Resolve on a disposed controller does nothing and returns 0.
func (c *Controller) Resolve(slug string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return 0
	}
	c.token++
	token := c.token
	c.post, c.found = posts.Record{}, false
	c.setLocked(Loading())

	record, err := c.finder.FindBySlug(slug)
	if err != nil {
		if !errors.Is(err, posts.ErrNotFound) {
			c.log.Warn("post lookup failed", zap.String("slug", slug), zap.Error(err))
		}
		c.setLocked(Failed(ReasonNotFound, posts.ErrNotFound))
		return token
	}
	c.post, c.found = record, true

	go c.fetch(token, record)
	return token
}

func (c *Controller) fetch(token uint64, record posts.Record) {
	body, err := c.fetcher.Fetch(c.ctx, record.ContentPath)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || token != c.token {
		c.log.Debug("discarding stale fetch result",
			zap.String("slug", record.Slug),
			zap.Uint64("token", token),
			zap.Bool("disposed", c.disposed))
		return
	}
	if err != nil {
		c.log.Info("post fetch failed", zap.String("slug", record.Slug), zap.Error(err))
		c.setLocked(Failed(err.Error(), err))
		return
	}
	c.setLocked(Loaded(body))
}

// setLocked moves to s and wakes everyone waiting on Changed. c.mu must be held.
func (c *Controller) setLocked(s LoadState) {
	c.state = s
	close(c.changed)
	c.changed = make(chan struct{})
}

// State returns the current state.
func (c *Controller) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Post returns the record of the current request, if its slug was found.
func (c *Controller) Post() (posts.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.post, c.found
}

// Changed returns a channel closed at the next state transition or on disposal.
func (c *Controller) Changed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

// Wait blocks until the current request settles and returns the terminal
// state. It returns Idle straight away when nothing was requested.
func (c *Controller) Wait(ctx context.Context) (LoadState, error) {
	for {
		c.mu.Lock()
		if c.disposed {
			c.mu.Unlock()
			return LoadState{}, ErrDisposed
		}
		state, ch := c.state, c.changed
		c.mu.Unlock()

		if state.Terminal() || state.Phase() == PhaseIdle {
			return state, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

// Dispose detaches the controller from its view. In-flight fetches keep
// running but their results are dropped. Dispose is idempotent.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	close(c.changed)
}
