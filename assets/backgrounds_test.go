package assets

import (
	"context"
	"math/rand/v2"
	"testing"
)

func newTestBackgrounds(t *testing.T, cat *Catalog) *Backgrounds {
	t.Helper()
	return &Backgrounds{
		Catalog:   cat,
		Sampler:   NewSampler(rand.NewPCG(11, 13)),
		Preloader: NewPreloader(testFS(t)),
	}
}

func TestSelectVerified(t *testing.T) {
	b := newTestBackgrounds(t, CatalogOf("backgrounds/b.png"))
	sel, ok := b.Select(context.Background())
	if !ok {
		t.Fatal("Select returned none for a loadable image")
	}
	if sel.Reference != "backgrounds/b.png" || !sel.Verified {
		t.Errorf("Select = %+v, want verified backgrounds/b.png", sel)
	}
}

func TestSelectDegradesToNone(t *testing.T) {
	tests := []struct {
		name string
		cat  *Catalog
	}{
		{"empty catalog", CatalogOf()},
		{"broken image", CatalogOf("backgrounds/a.jpg")},
		{"missing image", CatalogOf("backgrounds/nope.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sel, ok := newTestBackgrounds(t, tt.cat).Select(context.Background()); ok {
				t.Errorf("Select = %+v, want none", sel)
			}
		})
	}
}

func TestSelectManyDropsFailures(t *testing.T) {
	cat, err := NewCatalog(testFS(t), DefaultPattern)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	got := newTestBackgrounds(t, cat).SelectMany(context.Background(), 10)
	if len(got) != 1 {
		t.Fatalf("SelectMany = %+v, want only the decodable png", got)
	}
	if got[0].Reference != "backgrounds/b.png" {
		t.Errorf("SelectMany[0] = %q, want backgrounds/b.png", got[0].Reference)
	}
}

func TestSelectManyEmpty(t *testing.T) {
	got := newTestBackgrounds(t, CatalogOf()).SelectMany(context.Background(), 2)
	if got == nil || len(got) != 0 {
		t.Errorf("SelectMany(empty) = %#v, want empty slice", got)
	}
}
