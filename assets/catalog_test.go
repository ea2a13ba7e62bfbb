package assets

import (
	"testing"
	"testing/fstest"
)

func TestNewCatalogMatchesBraces(t *testing.T) {
	c, err := NewCatalog(testFS(t), DefaultPattern)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	want := []ImageReference{"backgrounds/a.jpg", "backgrounds/b.png", "backgrounds/c.webp"}
	got := c.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewCatalogEmptyIsValid(t *testing.T) {
	c, err := NewCatalog(fstest.MapFS{"readme.txt": {Data: []byte("x")}}, DefaultPattern)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestNewCatalogBadPattern(t *testing.T) {
	if _, err := NewCatalog(testFS(t), "backgrounds/[*.png"); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestCatalogListIsCopy(t *testing.T) {
	c := CatalogOf("x.png", "y.png")
	refs := c.List()
	refs[0] = "mutated.png"
	if got := c.List()[0]; got != "x.png" {
		t.Errorf("List()[0] = %q after mutating copy, want %q", got, "x.png")
	}
}

func TestSharedInitializesOnce(t *testing.T) {
	first, err := Shared(testFS(t), DefaultPattern)
	if err != nil {
		t.Fatalf("Shared: %v", err)
	}
	second, err := Shared(fstest.MapFS{}, "nothing/*")
	if err != nil {
		t.Fatalf("Shared second call: %v", err)
	}
	if first != second {
		t.Error("Shared returned a different catalog on the second call")
	}
	if second.Len() != 3 {
		t.Errorf("Len() = %d, want 3", second.Len())
	}
}
