package render

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/net/html"
)

// renderOverlayURL shows the absolute browser-source URL for an overlay
// file, with open and copy actions.
func (p *Processor) renderOverlayURL(_ context.Context, n *html.Node) string {
	file := getAttr(n, "data-dx-overlay-url")
	if file == "" {
		return ""
	}
	fullURL := p.fullURL("obs/overlays/" + strings.TrimLeft(file, "/"))
	id := "dx-ov-" + sanitizeID(file)
	return fmt.Sprintf(`<div class="dx-overlay-url-wrap"><p class="dx-overlay-url-text" id="%s-text">%s</p><span id="%s" data-copy-text="%s" class="dx-sr-only" aria-hidden="true"></span><div class="dx-overlay-url-actions"><a href="%s" target="_blank" rel="noopener noreferrer" class="dx-btn">Open</a><button type="button" class="dx-btn dx-btn--primary" data-copy-id="%s">Copy URL</button></div></div>`,
		id, esc(fullURL), id, esc(fullURL), esc(fullURL), id)
}

// renderImportBox inlines an automation import string from a text file.
func (p *Processor) renderImportBox(_ context.Context, n *html.Node) string {
	path := getAttr(n, "data-dx-import-box")
	if path == "" {
		return ""
	}
	raw, err := fs.ReadFile(p.files, strings.TrimLeft(path, "/"))
	if err != nil {
		return muted("Could not load import string. Check that the file exists.") +
			muted("File path: <code>"+esc(path)+"</code>")
	}
	text := strings.TrimSpace(string(raw))
	id := "dx-import-" + sanitizeID(path)
	return fmt.Sprintf(`<div class="dx-import-box-wrap"><pre class="dx-import-string" id="%s-pre" aria-label="Import string">%s</pre><span id="%s" data-copy-text="%s" class="dx-sr-only" aria-hidden="true"></span><div class="dx-import-box-actions"><button type="button" class="dx-btn dx-btn--primary" data-copy-id="%s">Copy</button><a href="%s" download class="dx-btn" title="Download .txt file">Download</a><a href="%s" target="_blank" rel="noopener noreferrer" class="dx-btn" title="Open .txt file">Open</a></div></div><p class="dx-muted dx-mt-1">Paste into Streamer.bot: Import → Import from clipboard. Content loaded from <a class="dx-link" href="%s" target="_blank" rel="noopener noreferrer">%s</a>.</p>`,
		id, esc(text), id, esc(text), id, esc(path), esc(path), esc(path), esc(path))
}

// renderDynamicLinks renders the profile links from the site config.
func (p *Processor) renderDynamicLinks(_ context.Context, _ *html.Node) string {
	links := p.data.Links()
	if len(links) == 0 {
		return muted(`Add <code>links</code> in <code>assets/data/site-config.json</code> to show links here.`)
	}
	var b strings.Builder
	b.WriteString(`<div class="dx-links-icons" aria-label="Quick links">`)
	for _, l := range links {
		href := l.Href
		if href == "" {
			href = "#"
		}
		label := l.Label
		if label == "" {
			label = "Link"
		}
		inner := esc(l.Label)
		if l.Icon != "" {
			inner = fmt.Sprintf(`<span class="iconify" data-icon="%s" aria-hidden="true"></span>`, esc(l.Icon))
		}
		fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener noreferrer" class="dx-link-icon" aria-label="%s">%s</a>`,
			esc(href), esc(label), inner)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// renderInlineDoc loads a markdown or text guide into the fragment.
func (p *Processor) renderInlineDoc(_ context.Context, n *html.Node) string {
	path := getAttr(n, "data-dx-doc")
	if path == "" {
		return ""
	}
	raw, err := fs.ReadFile(p.files, strings.TrimLeft(path, "/"))
	if err != nil {
		return muted("Could not load guide.")
	}
	out, err := p.md.Render(path, raw)
	if err != nil {
		return muted("Could not load guide.")
	}
	if strings.HasSuffix(strings.ToLower(path), ".md") || strings.HasSuffix(strings.ToLower(path), ".markdown") {
		return `<div class="dx-viewer-prose">` + out + `</div>`
	}
	return out
}

// sanitizeID derives a stable DOM id from a path.
func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
