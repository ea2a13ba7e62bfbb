package inkpost

import (
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/eringen/inkpost/assets"
	"github.com/eringen/inkpost/content"
)

// SiteConfig holds all configuration for an inkpost site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and metadata
	Author      string // Author name for JSON-LD

	Addr string // Listen address (default ":3000")

	// Dev selects the live content channel and watches ContentDir for edits.
	Dev           bool
	ContentDir    string // On-disk content root used in dev (default "site")
	DevContentURL string // Live channel base (default "http://localhost<Addr>/content/")
	PostsDir      string // Posts directory inside the content root (default "posts")

	CatalogDatabasePath string // Optional sqlite post index; empty reads frontmatter
	BackgroundPattern   string // Background glob inside the content root

	// BackgroundRateLimit caps background requests per client IP per minute.
	// Zero disables the limit.
	BackgroundRateLimit int

	WalineServerURL string   // Comment server; empty disables comments
	AllowOrigins    []string // CORS origins for the client app
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "site"
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.DevContentURL == "" {
		host := c.Addr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		c.DevContentURL = "http://" + host + "/content/"
	}
	if c.BackgroundPattern == "" {
		c.BackgroundPattern = assets.DefaultPattern
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger sets the logger used by the app and its components.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}

// WithContentFS replaces the content root (embedded or ContentDir).
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithFetcher replaces the fetcher chosen from Dev.
func WithFetcher(f content.Fetcher) Option {
	return func(a *App) {
		a.Fetcher = f
	}
}

// WithBackgroundCatalog replaces the process-wide background catalog.
func WithBackgroundCatalog(c *assets.Catalog) Option {
	return func(a *App) {
		a.backgroundCatalog = c
	}
}
