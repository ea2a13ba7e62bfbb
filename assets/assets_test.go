package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	t.Helper()
	data := pngBytes(t)
	return fstest.MapFS{
		"backgrounds/b.png":    {Data: data},
		"backgrounds/a.jpg":    {Data: []byte("not really a jpeg")},
		"backgrounds/c.webp":   {Data: []byte("RIFF")},
		"backgrounds/notes.md": {Data: []byte("# ignored")},
		"other/d.png":          {Data: data},
	}
}
