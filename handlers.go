package inkpost

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/inkpost/assets"
	"github.com/eringen/inkpost/posts"
	"github.com/eringen/inkpost/resolve"
)

// statusClientClosedRequest is nginx's code for a request the client abandoned.
const statusClientClosedRequest = 499

func (a *App) handleSite(c echo.Context) error {
	return c.JSON(http.StatusOK, SiteInfo{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Tags:        a.Posts.Catalog().Tags(),
		JSONLD:      WebsiteJsonLD(a.Config),
	})
}

func (a *App) handlePosts(c echo.Context) error {
	records := a.Posts.Catalog().ByTag(c.QueryParam("tag"))
	if records == nil {
		records = []posts.Record{}
	}
	return c.JSON(http.StatusOK, records)
}

func (a *App) handleTags(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Posts.Catalog().Tags())
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	page := a.OpenPostPage(ctx)
	defer page.Close()

	state, err := page.Load(ctx, c.Param("slug"))
	if errors.Is(err, context.Canceled) {
		a.Log.Debug("client went away", zap.String("slug", c.Param("slug")))
		return c.NoContent(statusClientClosedRequest)
	}
	if err != nil {
		return err
	}

	resp := PostResponse{Load: state}
	if post, ok := page.Post(); ok {
		resp.Post = &post
		resp.Related = a.Posts.Catalog().Related(post)
		resp.JSONLD = BlogPostingJsonLD(post, a.Config)
	}
	resp.Comments = page.Comments()

	code := http.StatusOK
	if state.Phase() == resolve.PhaseFailed {
		code = http.StatusBadGateway
		if errors.Is(state.Err(), posts.ErrNotFound) {
			code = http.StatusNotFound
		}
	}
	return c.JSON(code, resp)
}

// handleBackground answers 204 when there is no background to show.
func (a *App) handleBackground(c echo.Context) error {
	sel, ok := a.Backgrounds.Select(c.Request().Context())
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, a.background(sel))
}

func (a *App) handleBackgrounds(c echo.Context) error {
	count := assets.DefaultSelectCount
	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "count must be a positive integer"})
		}
		count = n
	}
	sels := a.Backgrounds.SelectMany(c.Request().Context(), count)
	out := make([]Background, len(sels))
	for i, sel := range sels {
		out[i] = a.background(sel)
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) background(sel assets.Selection) Background {
	return Background{Selection: sel, URL: ContentURL(string(sel.Reference))}
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Posts.Catalog().All())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Posts.Catalog().All())
}
