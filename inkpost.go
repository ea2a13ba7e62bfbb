// Package inkpost serves the content layer of a client-rendered blog. It
// resolves post slugs to content, picks how content is fetched (live from
// disk while developing, bundled in the binary otherwise) and hands out
// random decorative backgrounds, all as JSON for the client to render.
package inkpost

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/inkpost/assets"
	"github.com/eringen/inkpost/content"
	"github.com/eringen/inkpost/posts"
)

// App is the central inkpost application. It wires together the post
// catalog, the content fetcher, the background picker and the HTTP routes.
type App struct {
	Config      SiteConfig
	Echo        *echo.Echo
	Log         *zap.Logger
	Posts       *CatalogSource
	Fetcher     content.Fetcher
	Backgrounds *assets.Backgrounds

	contentFS         fs.FS
	backgroundCatalog *assets.Catalog
	store             *posts.Store
	watcher           *posts.Watcher
	limiter           *RequestLimiter
	customRoutes      []func(*App)
}

// New creates a new inkpost App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Log == nil {
		a.Log = zap.NewNop()
	}

	return a
}

// Init builds the catalogs and the fetcher and registers middleware and
// routes. Start calls it; tests call it to serve requests without listening.
func (a *App) Init() error {
	if a.contentFS == nil {
		if a.Config.Dev {
			a.contentFS = os.DirFS(a.Config.ContentDir)
		} else {
			sub, err := fs.Sub(BundledContent, "site")
			if err != nil {
				return fmt.Errorf("inkpost: bundled content: %w", err)
			}
			a.contentFS = sub
		}
	}

	source, err := NewCatalogSource(a.loadCatalog)
	if err != nil {
		return fmt.Errorf("inkpost: load post catalog: %w", err)
	}
	a.Posts = source

	// The channel is chosen once here; handlers only see content.Fetcher.
	if a.Fetcher == nil {
		f, err := content.NewFetcher(content.Options{
			Live:    a.Config.Dev,
			BaseURL: a.Config.DevContentURL,
			FS:      a.contentFS,
		})
		if err != nil {
			return fmt.Errorf("inkpost: init fetcher: %w", err)
		}
		a.Fetcher = f
	}

	bgCatalog := a.backgroundCatalog
	if bgCatalog == nil {
		bgCatalog, err = assets.Shared(a.contentFS, a.Config.BackgroundPattern)
		if err != nil {
			return fmt.Errorf("inkpost: scan backgrounds: %w", err)
		}
	}
	a.Backgrounds = &assets.Backgrounds{
		Catalog:   bgCatalog,
		Sampler:   assets.NewSampler(nil),
		Preloader: assets.NewPreloader(a.contentFS),
		Log:       a.Log.Named("backgrounds"),
	}

	a.Log.Info("content ready",
		zap.String("channel", content.Channel(a.Fetcher)),
		zap.Int("posts", a.Posts.Catalog().Len()),
		zap.Int("backgrounds", bgCatalog.Len()))

	if a.Config.Dev && a.store == nil {
		if err := a.watchPosts(); err != nil {
			a.Log.Warn("post watcher disabled", zap.Error(err))
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.Bool("dev", a.Config.Dev))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) loadCatalog() (*posts.Catalog, error) {
	if a.Config.CatalogDatabasePath == "" {
		return posts.LoadDir(a.contentFS, a.Config.PostsDir)
	}
	if a.store == nil {
		store, err := posts.NewStore(a.Config.CatalogDatabasePath)
		if err != nil {
			return nil, err
		}
		a.store = store
	}
	return a.store.Catalog()
}

func (a *App) watchPosts() error {
	dir := filepath.Join(a.Config.ContentDir, a.Config.PostsDir)
	w, err := posts.Watch(dir, a.Log.Named("watch"), func(name string) {
		if err := a.Posts.Reload(); err != nil {
			a.Log.Warn("catalog reload failed", zap.String("file", name), zap.Error(err))
			return
		}
		a.Log.Info("catalog reloaded", zap.String("file", name), zap.Int("posts", a.Posts.Catalog().Len()))
	})
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Raw content and background images. The live channel reads from here.
	contentHandler := http.StripPrefix("/content/", http.FileServer(http.FS(a.contentFS)))
	e.GET("/content/*", echo.WrapHandler(contentHandler))

	e.GET("/api/site", a.handleSite)
	e.GET("/api/posts", a.handlePosts)
	e.GET("/api/posts/:slug", a.handlePost)
	e.GET("/api/tags", a.handleTags)
	var bgMiddleware []echo.MiddlewareFunc
	if a.Config.BackgroundRateLimit > 0 {
		a.limiter = NewRequestLimiter(a.Config.BackgroundRateLimit, time.Minute)
		bgMiddleware = append(bgMiddleware, a.limiter.Middleware)
	}
	e.GET("/api/background", a.handleBackground, bgMiddleware...)
	e.GET("/api/backgrounds", a.handleBackgrounds, bgMiddleware...)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	_ = a.Log.Sync()
	return nil
}
