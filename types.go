package inkpost

import (
	"github.com/eringen/inkpost/assets"
	"github.com/eringen/inkpost/comments"
	"github.com/eringen/inkpost/posts"
	"github.com/eringen/inkpost/resolve"
)

// SiteInfo is the site-wide metadata the client puts in the page head.
type SiteInfo struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags"`
	JSONLD      string   `json:"jsonLd"`
}

// PostResponse is the result of resolving one post.
type PostResponse struct {
	Load     resolve.LoadState `json:"load"`
	Post     *posts.Record     `json:"post,omitempty"`
	Related  []posts.Record    `json:"related,omitempty"`
	Comments *comments.Config  `json:"comments,omitempty"`
	JSONLD   string            `json:"jsonLd,omitempty"`
}

// Background is a verified background image with the URL to load it from.
type Background struct {
	assets.Selection
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}
