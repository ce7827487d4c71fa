package markdown

import (
	"strings"
	"testing"
)

func TestRenderDownshiftsHeadings(t *testing.T) {
	r := New()
	src := "# Setup\n\n## Step one\n\nBody text.\n"
	out, err := r.Render("docs/setup.md", []byte(src))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "<h1") {
		t.Errorf("rendered markdown still contains an h1: %s", out)
	}
	if !strings.Contains(out, "<h2") || !strings.Contains(out, "<h3") {
		t.Errorf("headings not shifted: %s", out)
	}
	if !strings.Contains(out, "Body text.") {
		t.Errorf("body lost: %s", out)
	}
}

func TestRenderH6Stays(t *testing.T) {
	r := New()
	out, err := r.Render("a.md", []byte("###### deep\n\n##### five\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// h6 cannot shift further; h5 becomes h6. Both end up h6, neither h7.
	if strings.Contains(out, "<h7") {
		t.Errorf("invalid h7 produced: %s", out)
	}
	if got := strings.Count(out, "<h6"); got != 2 {
		t.Errorf("h6 count = %d, want 2: %s", got, out)
	}
}

func TestRenderGFMTable(t *testing.T) {
	r := New()
	out, err := r.Render("t.md", []byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("GFM table not rendered: %s", out)
	}
}

func TestRenderPlainTextEscaped(t *testing.T) {
	r := New()
	out, err := r.Render("notes.txt", []byte("a <b> & c"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(out, "<pre") {
		t.Errorf("plain text not wrapped in pre: %s", out)
	}
	if strings.Contains(out, "<b>") {
		t.Errorf("plain text not escaped: %s", out)
	}
}
