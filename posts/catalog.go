// Package posts holds the post catalog: the ordered list of known posts that
// slugs are resolved against, and the ways of building it from markdown files
// or from the sqlite index.
package posts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no post has the requested slug.
	ErrNotFound = errors.New("post not found")
	// ErrDuplicateSlug is returned when a catalog would contain two posts with one slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrEmptySlug is returned for a record without a slug.
	ErrEmptySlug = errors.New("empty slug")
)

// Record describes one post. ContentPath locates the post body for a content.Fetcher.
type Record struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	ContentPath string   `json:"contentPath"`
	ReadingTime int      `json:"readingTime"`
}

// Link is the site path of the post.
func (r Record) Link() string {
	return "/posts/" + r.Slug
}

// Catalog is an ordered, read-only sequence of records with unique slugs.
type Catalog struct {
	records []Record
}

// NewCatalog builds a catalog preserving the order of records. Empty and
// duplicate slugs are rejected.
func NewCatalog(records []Record) (*Catalog, error) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Slug == "" {
			return nil, fmt.Errorf("post %q: %w", r.Title, ErrEmptySlug)
		}
		if _, ok := seen[r.Slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, r.Slug)
		}
		seen[r.Slug] = struct{}{}
	}
	return &Catalog{records: append([]Record(nil), records...)}, nil
}

// FindBySlug returns the first record whose slug matches.
func (c *Catalog) FindBySlug(slug string) (Record, error) {
	for _, r := range c.records {
		if r.Slug == slug {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

// All returns every record in catalog order.
func (c *Catalog) All() []Record {
	return append([]Record(nil), c.records...)
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// ByTag returns the records carrying tag, compared case-insensitively.
// An empty tag returns every record.
func (c *Catalog) ByTag(tag string) []Record {
	if normalizeTag(tag) == "" {
		return c.All()
	}
	want := normalizeTag(tag)
	var out []Record
	for _, r := range c.records {
		for _, t := range r.Tags {
			if normalizeTag(t) == want {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Tags returns the sorted, deduplicated lowercase tags of all records.
func (c *Catalog) Tags() []string {
	set := make(map[string]struct{})
	for _, r := range c.records {
		for _, t := range r.Tags {
			if t = normalizeTag(t); t != "" {
				set[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Related returns the other records sharing at least one tag with current.
func (c *Catalog) Related(current Record) []Record {
	tags := make(map[string]struct{})
	for _, t := range current.Tags {
		if t = normalizeTag(t); t != "" {
			tags[t] = struct{}{}
		}
	}
	var related []Record
	for _, r := range c.records {
		if r.Slug == current.Slug {
			continue
		}
		for _, t := range r.Tags {
			if _, ok := tags[normalizeTag(t)]; ok {
				related = append(related, r)
				break
			}
		}
	}
	return related
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
