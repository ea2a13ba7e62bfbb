package inkpost

import (
	"context"

	"go.uber.org/zap"

	"github.com/eringen/inkpost/comments"
	"github.com/eringen/inkpost/posts"
	"github.com/eringen/inkpost/resolve"
)

// CommentsContainer is the element the client mounts the comment widget in.
const CommentsContainer = "#waline"

// PostPage owns everything one post view holds while it is mounted: the
// resolution controller and the comment widget. Close releases both.
type PostPage struct {
	controller *resolve.Controller
	mount      *comments.Mount
	waline     *comments.Waline
	log        *zap.Logger
}

// OpenPostPage mounts a post view. Fetches run under ctx.
func (a *App) OpenPostPage(ctx context.Context) *PostPage {
	p := &PostPage{
		controller: resolve.NewController(a.Posts, a.Fetcher,
			resolve.WithContext(ctx),
			resolve.WithLogger(a.Log.Named("resolve"))),
		log: a.Log,
	}
	if a.Config.WalineServerURL != "" {
		p.waline = comments.NewWaline(a.Config.WalineServerURL)
		p.mount = comments.NewMount(p.waline)
	}
	return p
}

// Load resolves slug and waits for the outcome. Comments are attached once
// the post has loaded.
func (p *PostPage) Load(ctx context.Context, slug string) (resolve.LoadState, error) {
	p.controller.Resolve(slug)
	state, err := p.controller.Wait(ctx)
	if err != nil {
		return state, err
	}
	if state.Phase() == resolve.PhaseLoaded && p.mount != nil && !p.mount.Attached() {
		post, _ := p.controller.Post()
		if err := p.mount.Attach(CommentsContainer, post.Link()); err != nil {
			p.log.Warn("comments unavailable", zap.String("slug", slug), zap.Error(err))
		}
	}
	return state, nil
}

// Post returns the record of the loaded post, if the slug was found.
func (p *PostPage) Post() (posts.Record, bool) {
	return p.controller.Post()
}

// Comments returns the widget configuration while comments are attached.
func (p *PostPage) Comments() *comments.Config {
	if p.waline == nil {
		return nil
	}
	cfg, ok := p.waline.Config()
	if !ok {
		return nil
	}
	return &cfg
}

// Close unmounts the view: comments are detached and the controller is
// disposed, so a late fetch result is dropped.
func (p *PostPage) Close() {
	if p.mount != nil && p.mount.Attached() {
		if err := p.mount.Detach(); err != nil {
			p.log.Warn("detach comments", zap.Error(err))
		}
	}
	p.controller.Dispose()
}
