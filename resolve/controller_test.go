package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/inkpost/content"
	"github.com/eringen/inkpost/posts"
)

// gatedFetcher blocks each fetch of a path until the test releases it.
type gatedFetcher struct {
	mu     sync.Mutex
	calls  []string
	gates  map[string]chan struct{}
	bodies map[string]string
	fail   map[string]error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{
		gates:  map[string]chan struct{}{},
		bodies: map[string]string{},
		fail:   map[string]error{},
	}
}

func (f *gatedFetcher) gate(path string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[path] = ch
	return ch
}

func (f *gatedFetcher) Fetch(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	gate := f.gates[path]
	body, err := f.bodies[path], f.fail[path]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return "", err
	}
	return body, nil
}

func (f *gatedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testCatalog(t *testing.T) *posts.Catalog {
	t.Helper()
	c, err := posts.NewCatalog([]posts.Record{
		{Slug: "hello", Title: "Hello", ContentPath: "posts/hello.md"},
		{Slug: "world", Title: "World", ContentPath: "posts/world.md"},
	})
	require.NoError(t, err)
	return c
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestResolveUnknownSlugFailsWithoutFetch(t *testing.T) {
	f := newGatedFetcher()
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	for _, slug := range []string{"missing", "", "HELLO"} {
		c.Resolve(slug)
		state, err := c.Wait(waitCtx(t))
		require.NoError(t, err)
		assert.Equal(t, PhaseFailed, state.Phase())
		assert.Equal(t, ReasonNotFound, state.Reason())
		assert.ErrorIs(t, state.Err(), posts.ErrNotFound)
		_, found := c.Post()
		assert.False(t, found)
	}
	assert.Equal(t, 0, f.callCount(), "fetcher must not be called for unknown slugs")
}

func TestResolveLoadsExactContent(t *testing.T) {
	f := newGatedFetcher()
	f.bodies["posts/hello.md"] = "  # Hello\n\nraw *markdown*\n"
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	c.Resolve("hello")
	state, err := c.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, PhaseLoaded, state.Phase())
	assert.Equal(t, "  # Hello\n\nraw *markdown*\n", state.Content())

	post, found := c.Post()
	require.True(t, found)
	assert.Equal(t, "Hello", post.Title)
}

func TestResolveFetchFailure(t *testing.T) {
	f := newGatedFetcher()
	failure := &content.FetchFailure{Path: "posts/world.md", Status: 500, Reason: "status 500"}
	f.fail["posts/world.md"] = failure
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	c.Resolve("world")
	state, err := c.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, PhaseFailed, state.Phase())
	assert.Equal(t, failure.Error(), state.Reason())

	var ff *content.FetchFailure
	require.ErrorAs(t, state.Err(), &ff)
	assert.Equal(t, 500, ff.Status)
}

func TestResolveTwiceFetchesTwice(t *testing.T) {
	f := newGatedFetcher()
	f.bodies["posts/hello.md"] = "hello body"
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	c.Resolve("hello")
	first, err := c.Wait(waitCtx(t))
	require.NoError(t, err)
	c.Resolve("hello")
	second, err := c.Wait(waitCtx(t))
	require.NoError(t, err)

	assert.Equal(t, 2, f.callCount())
	assert.Equal(t, first, second)
	assert.Equal(t, PhaseLoaded, second.Phase())
}

func TestLatestRequestWins(t *testing.T) {
	f := newGatedFetcher()
	f.bodies["posts/hello.md"] = "A"
	f.bodies["posts/world.md"] = "B"
	gateA := f.gate("posts/hello.md")
	gateB := f.gate("posts/world.md")
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	tokenA := c.Resolve("hello")
	tokenB := c.Resolve("world")
	assert.Greater(t, tokenB, tokenA)
	assert.Equal(t, PhaseLoading, c.State().Phase())

	// B settles first, then A arrives late.
	close(gateB)
	state, err := c.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "B", state.Content())

	close(gateA)
	require.Eventually(t, func() bool { return f.callCount() == 2 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "B", c.State().Content())

	post, _ := c.Post()
	assert.Equal(t, "world", post.Slug)
}

func TestLatestRequestWinsWhenStaleArrivesFirst(t *testing.T) {
	f := newGatedFetcher()
	f.bodies["posts/hello.md"] = "A"
	f.bodies["posts/world.md"] = "B"
	gateA := f.gate("posts/hello.md")
	gateB := f.gate("posts/world.md")
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	c.Resolve("hello")
	c.Resolve("world")

	close(gateA)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, PhaseLoading, c.State().Phase(), "stale result must not settle the state")

	close(gateB)
	state, err := c.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "B", state.Content())
}

func TestNotFoundSupersedesInFlightFetch(t *testing.T) {
	f := newGatedFetcher()
	f.bodies["posts/hello.md"] = "A"
	gateA := f.gate("posts/hello.md")
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	c.Resolve("hello")
	c.Resolve("missing")
	close(gateA)

	require.Eventually(t, func() bool { return f.callCount() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	state := c.State()
	assert.Equal(t, PhaseFailed, state.Phase())
	assert.Equal(t, ReasonNotFound, state.Reason())
}

func TestDisposeDiscardsInFlightResult(t *testing.T) {
	f := newGatedFetcher()
	f.bodies["posts/hello.md"] = "A"
	gateA := f.gate("posts/hello.md")
	c := NewController(testCatalog(t), f)

	c.Resolve("hello")
	changed := c.Changed()
	c.Dispose()
	c.Dispose()

	select {
	case <-changed:
	default:
		t.Fatal("Dispose should wake waiters")
	}

	close(gateA)
	require.Eventually(t, func() bool { return f.callCount() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, PhaseLoading, c.State().Phase())

	_, err := c.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrDisposed)
	assert.Zero(t, c.Resolve("world"))
}

func TestWaitIdleAndContext(t *testing.T) {
	f := newGatedFetcher()
	gate := f.gate("posts/hello.md")
	c := NewController(testCatalog(t), f)
	defer c.Dispose()

	state, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, state.Phase())

	c.Resolve("hello")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	state, err = c.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, PhaseLoading, state.Phase())
	close(gate)
	_, err = c.Wait(waitCtx(t))
	require.NoError(t, err)
}

func TestLoadStateJSON(t *testing.T) {
	tests := []struct {
		state LoadState
		want  string
	}{
		{Idle(), `{"state":"idle"}`},
		{Loading(), `{"state":"loading"}`},
		{Loaded("hi"), `{"state":"loaded","content":"hi"}`},
		{Loaded(""), `{"state":"loaded","content":""}`},
		{Failed(ReasonNotFound, posts.ErrNotFound), `{"state":"failed","reason":"post not found"}`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.state)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(b))
	}
}

func TestLoadStateTerminal(t *testing.T) {
	assert.False(t, Idle().Terminal())
	assert.False(t, Loading().Terminal())
	assert.True(t, Loaded("").Terminal())
	assert.True(t, Failed("x", nil).Terminal())
}
