package inkpost

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/eringen/inkpost/views"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	log := a.Log.Named("http")
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	// Panics become errors and end up in httpErrorHandler's fallback page.
	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/content/backgrounds/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		HSTSMaxAge:         31536000,
	}))

	if len(a.Config.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: a.Config.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		}))
	}

	e.Use(a.cacheControlMiddleware)
}

func (a *App) cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		h := c.Response().Header()
		switch {
		case strings.HasPrefix(path, "/api/posts/"), strings.HasPrefix(path, "/api/background"):
			// Every navigation resolves again; outcomes are never reused.
			h.Set("Cache-Control", "no-store")
		case a.Config.Dev:
			h.Set("Cache-Control", "no-cache")
		case strings.HasPrefix(path, "/content/"):
			h.Set("Cache-Control", "public, max-age=86400")
		case path == "/sitemap.xml" || path == "/feed.xml":
			h.Set("Cache-Control", "public, max-age=86400")
		default:
			h.Set("Cache-Control", "public, max-age=300")
		}
		return next(c)
	}
}

// httpErrorHandler is the error boundary. Explicit failures never reach it;
// it handles unknown routes and unexpected faults.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "internal error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = http.StatusText(code)
	}
	site := views.Site{Name: a.Config.Name, URL: a.Config.URL}
	wantsHTML := strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)

	switch {
	case code >= 500:
		a.Log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		if wantsHTML {
			_ = RenderStatus(c, code, views.ServerError(site, c.Request().RequestURI))
			return
		}
	case code == http.StatusNotFound && wantsHTML:
		_ = RenderStatus(c, code, views.NotFound(site))
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorResponse{Error: strings.ToLower(message)})
}
