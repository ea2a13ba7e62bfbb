// Package views holds the few server-rendered pages of the site: the generic
// fallbacks shown when a request cannot be answered. Post pages are rendered
// by the client.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const fallbackHead = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`

// ServerError is the last-resort page for an unexpected fault. It offers a
// full reload of reloadURL.
func ServerError(site Site, reloadURL string) templ.Component {
	if reloadURL == "" {
		reloadURL = "/"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, fallbackHead+templ.EscapeString(site.Name)+`</title></head><body class="fallback">`+
			`<main><h1>Something went wrong</h1><p>An unexpected error occurred while loading this page.</p>`+
			`<p><a href="`+templ.EscapeString(reloadURL)+`">Reload the page</a></p></main></body></html>`)
		return err
	})
}

// NotFound is shown for routes that do not exist.
func NotFound(site Site) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, fallbackHead+templ.EscapeString(site.Name)+`</title></head><body class="fallback">`+
			`<main><h1>Page not found</h1><p><a href="/">Back to the home page</a></p></main></body></html>`)
		return err
	})
}
