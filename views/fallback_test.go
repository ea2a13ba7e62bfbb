package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestServerErrorOffersReload(t *testing.T) {
	var buf bytes.Buffer
	if err := ServerError(Site{Name: "Blog"}, "/api/posts/hello?x=<y>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, `href="/api/posts/hello?x=&lt;y&gt;"`) {
		t.Errorf("reload link missing or unescaped: %q", got)
	}
	if !strings.Contains(got, "<title>Blog</title>") {
		t.Errorf("title missing: %q", got)
	}
}

func TestServerErrorDefaultsToRoot(t *testing.T) {
	var buf bytes.Buffer
	_ = ServerError(Site{}, "").Render(context.Background(), &buf)
	if !strings.Contains(buf.String(), `href="/"`) {
		t.Errorf("expected reload of /: %q", buf.String())
	}
}

func TestNotFoundEscapesName(t *testing.T) {
	var buf bytes.Buffer
	_ = NotFound(Site{Name: "<b>"}).Render(context.Background(), &buf)
	if strings.Contains(buf.String(), "<b>") {
		t.Errorf("site name not escaped: %q", buf.String())
	}
}
