package posts

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAuthor is used when frontmatter names no author.
	DefaultAuthor = "Anonymous"

	excerptLength  = 150
	wordsPerMinute = 200
)

// Frontmatter is the YAML header of a post file.
type Frontmatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Author  string   `yaml:"author"`
	Excerpt string   `yaml:"excerpt"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
}

// SplitFrontmatter separates a leading "---" delimited YAML block from the
// body. Input without a header is returned whole as the body.
func SplitFrontmatter(src []byte) (Frontmatter, string, error) {
	var fm Frontmatter
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return fm, text, nil
	}
	rest := "\n" + text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, text, nil
	}
	header := rest[:end]
	body := rest[end+len("\n---"):]
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, body, fmt.Errorf("unable to deserialize frontmatter: %w", err)
	}
	return fm, body, nil
}

// ParseRecord builds the record for the markdown file at name with contents src.
// The slug is the file name without its .md extension.
func ParseRecord(name string, src []byte, now time.Time) (Record, error) {
	fm, body, err := SplitFrontmatter(src)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", name, err)
	}
	slug := strings.TrimSuffix(path.Base(name), ".md")
	r := Record{
		Slug:        slug,
		Title:       fm.Title,
		Author:      fm.Author,
		Date:        fm.Date,
		Excerpt:     fm.Excerpt,
		Tags:        cleanTags(fm.Tags),
		ContentPath: name,
		ReadingTime: ReadingTime(body),
	}
	if r.Title == "" {
		r.Title = slug
	}
	if r.Author == "" {
		r.Author = DefaultAuthor
	}
	if r.Date == "" {
		r.Date = now.Format("2006-01-02")
	}
	if r.Excerpt == "" {
		r.Excerpt = fm.Summary
	}
	if r.Excerpt == "" {
		r.Excerpt = Excerpt(body)
	}
	return r, nil
}

// LoadDir reads every dir/*.md file of fsys into a catalog, newest first.
func LoadDir(fsys fs.FS, dir string) (*Catalog, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	records := make([]Record, 0, len(names))
	for _, name := range names {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("unable to read %s: %w", name, err)
		}
		r, err := ParseRecord(name, src, now)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	SortNewestFirst(records)
	return NewCatalog(records)
}

// SortNewestFirst orders records by date descending, keeping the existing
// order among equal dates.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
}

// Excerpt returns the first 150 characters of body followed by "...".
func Excerpt(body string) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

// ReadingTime estimates minutes to read body at 200 words per minute, at least one.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}
