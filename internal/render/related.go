package render

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/dexnexus/streamlab/internal/manifest"
	"github.com/dexnexus/streamlab/internal/nav"
)

// renderRelated builds the related-pages section appended after the
// fragment. Related means same group or at least one shared tag; the
// current page, home and hidden pages never appear; at most six, in
// manifest order. No matches means no section at all.
func (p *Processor) renderRelated(current *manifest.Page) string {
	currentTags := map[string]bool{}
	for _, t := range current.Tags {
		currentTags[t] = true
	}

	var related []manifest.Page
	for _, cand := range p.data.Pages() {
		if cand.HideFromNav || cand.Slug == current.Slug || cand.Slug == "home" {
			continue
		}
		match := current.Group != "" && cand.Group == current.Group
		if !match {
			for _, t := range cand.Tags {
				if currentTags[t] {
					match = true
					break
				}
			}
		}
		if match {
			related = append(related, cand)
			if len(related) == 6 {
				break
			}
		}
	}
	if len(related) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="dx-card dx-related-section"><div data-dx-related="` + esc(current.Slug) + `"><h2 class="dx-heading-reset">Related</h2><ul class="dx-related-list" aria-label="Related pages">`)
	for _, r := range related {
		fmt.Fprintf(&b, `<li><a class="dx-link" href="?page=%s" data-dx-page="%s">%s</a></li>`,
			url.QueryEscape(r.Slug), esc(r.Slug), esc(r.Title))
	}
	b.WriteString(`</ul></div></section>`)
	return b.String()
}

// renderDiscover fills the home grid marker through the nav index so the
// grid and the search overlay share one filter semantics.
func (p *Processor) renderDiscover(ctx context.Context, n *html.Node) string {
	filter := getAttr(n, "data-filter")
	ix := nav.NewIndex(p.data)
	return nav.RenderDiscoverGrid(ix.DiscoverCards(ctx, p.store, filter))
}
