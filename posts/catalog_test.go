package posts

import (
	"errors"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{Slug: "hello", Title: "Hello", Date: "2024-02-01", Tags: []string{"Go", "web"}, ContentPath: "posts/hello.md"},
		{Slug: "world", Title: "World", Date: "2024-01-01", Tags: []string{"travel"}, ContentPath: "posts/world.md"},
		{Slug: "gophers", Title: "Gophers", Date: "2023-12-01", Tags: []string{"go"}, ContentPath: "posts/gophers.md"},
	}
}

func TestFindBySlug(t *testing.T) {
	c, err := NewCatalog(sampleRecords())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	got, err := c.FindBySlug("world")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got.Title != "World" {
		t.Errorf("Title = %q, want %q", got.Title, "World")
	}
	if got.ContentPath != "posts/world.md" {
		t.Errorf("ContentPath = %q, want %q", got.ContentPath, "posts/world.md")
	}
}

func TestFindBySlugNotFound(t *testing.T) {
	c, _ := NewCatalog(sampleRecords())
	for _, slug := range []string{"missing", "", "Hello"} {
		if _, err := c.FindBySlug(slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("FindBySlug(%q) error = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	records := append(sampleRecords(), Record{Slug: "hello", Title: "Hello again"})
	if _, err := NewCatalog(records); !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("NewCatalog error = %v, want ErrDuplicateSlug", err)
	}
}

func TestNewCatalogRejectsEmptySlug(t *testing.T) {
	if _, err := NewCatalog([]Record{{Title: "No slug"}}); !errors.Is(err, ErrEmptySlug) {
		t.Errorf("NewCatalog error = %v, want ErrEmptySlug", err)
	}
}

func TestCatalogPreservesOrder(t *testing.T) {
	c, _ := NewCatalog(sampleRecords())
	all := c.All()
	want := []string{"hello", "world", "gophers"}
	for i, slug := range want {
		if all[i].Slug != slug {
			t.Errorf("All()[%d].Slug = %q, want %q", i, all[i].Slug, slug)
		}
	}
}

func TestByTag(t *testing.T) {
	c, _ := NewCatalog(sampleRecords())
	tests := []struct {
		tag  string
		want []string
	}{
		{"go", []string{"hello", "gophers"}},
		{" GO ", []string{"hello", "gophers"}},
		{"travel", []string{"world"}},
		{"none", nil},
		{"", []string{"hello", "world", "gophers"}},
	}
	for _, tt := range tests {
		got := c.ByTag(tt.tag)
		if len(got) != len(tt.want) {
			t.Errorf("ByTag(%q) returned %d records, want %d", tt.tag, len(got), len(tt.want))
			continue
		}
		for i := range tt.want {
			if got[i].Slug != tt.want[i] {
				t.Errorf("ByTag(%q)[%d] = %q, want %q", tt.tag, i, got[i].Slug, tt.want[i])
			}
		}
	}
}

func TestTags(t *testing.T) {
	c, _ := NewCatalog(sampleRecords())
	got := c.Tags()
	want := []string{"go", "travel", "web"}
	if len(got) != len(want) {
		t.Fatalf("Tags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRelated(t *testing.T) {
	c, _ := NewCatalog(sampleRecords())
	hello, _ := c.FindBySlug("hello")
	related := c.Related(hello)
	if len(related) != 1 || related[0].Slug != "gophers" {
		t.Errorf("Related(hello) = %v, want [gophers]", related)
	}
}
