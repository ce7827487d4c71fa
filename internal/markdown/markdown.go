// Package markdown renders viewer documents. Markdown files go through
// goldmark; anything else is shown verbatim in a <pre> block. Headings are
// downshifted one level so the page chrome keeps the only h1.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts viewer documents to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a renderer with GFM tables/strikethrough/autolinks and
// syntax highlighting.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts a document to HTML. Paths ending in .md or .markdown are
// rendered as markdown with headings shifted down a level; everything else
// is escaped into a <pre> block.
func (r *Renderer) Render(path string, source []byte) (string, error) {
	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".md") && !strings.HasSuffix(lower, ".markdown") {
		return "<pre class=\"dx-viewer-plain\">" + template.HTMLEscapeString(string(source)) + "</pre>", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("rendering markdown %s: %w", path, err)
	}
	return downshiftHeadings(buf.String()), nil
}

// downshiftHeadings rewrites h1..h5 to h2..h6, deepest first so a single
// pass never double-shifts.
func downshiftHeadings(s string) string {
	for level := 5; level >= 1; level-- {
		from := fmt.Sprintf("%d", level)
		to := fmt.Sprintf("%d", level+1)
		s = strings.ReplaceAll(s, "<h"+from, "<h"+to)
		s = strings.ReplaceAll(s, "</h"+from+">", "</h"+to+">")
	}
	return s
}
