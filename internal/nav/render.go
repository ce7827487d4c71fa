package nav

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

func esc(s string) string { return template.HTMLEscapeString(s) }

func pageHref(slug string) string {
	return "?page=" + url.QueryEscape(slug)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (ix *Index) writeLink(b *strings.Builder, slug, title string, tags []string) {
	shown := tags
	if len(shown) > 3 {
		shown = shown[:3]
	}
	fmt.Fprintf(b, `<a href="%s" class="dx-nav-link" data-dx-page="%s"><div class="dx-nav-link-title">%s</div><div class="dx-nav-link-tags">%s</div></a>`,
		pageHref(slug), esc(slug), esc(title), esc(strings.Join(shown, " • ")))
}

// RenderPanel renders the slide-out navigation groups. Home gets its own
// pinned group ahead of the resolved tree.
func (ix *Index) RenderPanel(filter string) string {
	var b strings.Builder

	if home := ix.Home(filter); home != nil {
		b.WriteString(`<div class="dx-nav-group" data-open="true"><div class="dx-nav-group-header"><div><div class="dx-nav-group-title">Home</div><div class="dx-nav-group-meta">Start here</div></div></div><div class="dx-nav-links">`)
		ix.writeLink(&b, home.Slug, home.Title, home.Tags)
		b.WriteString(`</div></div>`)
	}

	for _, g := range ix.Groups(filter) {
		n := g.PageCount()
		fmt.Fprintf(&b, `<div class="dx-nav-group" data-open="true"><div class="dx-nav-group-header"><div><div class="dx-nav-group-title">%s</div><div class="dx-nav-group-meta">%d page%s</div></div></div><div class="dx-nav-links">`,
			esc(g.Label), n, plural(n))
		for _, it := range g.Items {
			if it.Page != nil {
				ix.writeLink(&b, it.Page.Slug, it.Page.Title, it.Page.Tags)
				continue
			}
			fmt.Fprintf(&b, `<div class="dx-nav-group dx-nav-sub-group" data-open="true"><div class="dx-nav-group-header dx-nav-sub-header"><div><div class="dx-nav-group-title">%s</div></div></div><div class="dx-nav-links">`, esc(it.Label))
			for _, sub := range it.Items {
				if sub.Page != nil {
					ix.writeLink(&b, sub.Page.Slug, sub.Page.Title, sub.Page.Tags)
				}
			}
			b.WriteString(`</div></div>`)
		}
		b.WriteString(`</div></div>`)
	}
	return b.String()
}

// RenderDesktop renders the header dropdown navigation from the same
// resolved tree as the panel.
func (ix *Index) RenderDesktop() string {
	var b strings.Builder

	if home := ix.Home(""); home != nil {
		fmt.Fprintf(&b, `<a href="/" class="dx-nav-desktop-link" data-dx-page="%s">%s</a>`, esc(home.Slug), esc(home.Title))
	}

	for _, g := range ix.Groups("") {
		fmt.Fprintf(&b, `<div class="dx-nav-desktop-item" data-open="false"><button type="button" class="dx-nav-dd-trigger" aria-expanded="false">%s</button><div class="dx-nav-dd-menu">`, esc(g.Label))
		for _, it := range g.Items {
			if it.Page != nil {
				fmt.Fprintf(&b, `<a href="%s" class="dx-nav-dd-link" data-dx-page="%s">%s</a>`, pageHref(it.Page.Slug), esc(it.Page.Slug), esc(it.Page.Title))
				continue
			}
			fmt.Fprintf(&b, `<div class="dx-nav-dd-sub" data-open="false"><button type="button" class="dx-nav-dd-sub-trigger">%s</button><div class="dx-nav-dd-sub-menu">`, esc(it.Label))
			for _, sub := range it.Items {
				if sub.Page != nil {
					fmt.Fprintf(&b, `<a href="%s" class="dx-nav-dd-link" data-dx-page="%s">%s</a>`, pageHref(sub.Page.Slug), esc(sub.Page.Slug), esc(sub.Page.Title))
				}
			}
			b.WriteString(`</div></div>`)
		}
		b.WriteString(`</div></div>`)
	}
	return b.String()
}

// RenderSearchResults renders the overlay result list. An empty filter
// yields an empty string.
func (ix *Index) RenderSearchResults(filter string) string {
	pages := ix.Search(filter)
	if len(pages) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, `<a class="dx-search-result-link" href="%s" data-dx-page="%s" role="listitem">%s<small>%s</small></a>`,
			pageHref(p.Slug), esc(p.Slug), esc(p.Title), esc(p.Group))
	}
	return b.String()
}

// RenderDiscoverGrid renders the discover cards.
func RenderDiscoverGrid(cards []Card) string {
	var b strings.Builder
	for _, c := range cards {
		img := fmt.Sprintf(`<div class="dx-discover-card-image-placeholder"><span>%s</span></div>`, esc(orDefault(c.Group, "Resource")))
		if c.CardImage != "" {
			img = fmt.Sprintf(`<img class="dx-discover-card-image" src="%s" alt="" loading="lazy" />`, esc(c.CardImage))
		}
		href := pageHref(c.Slug)
		hashAttr := ""
		if c.Hash != "" {
			href += "#" + url.QueryEscape(c.Hash)
			hashAttr = fmt.Sprintf(` data-dx-hash="%s"`, esc(c.Hash))
		}
		desc := c.Description
		if r := []rune(desc); len(r) > 120 {
			desc = string(r[:120])
		}
		if desc == "" {
			desc = "—"
		}
		fmt.Fprintf(&b, `<a class="dx-discover-card" href="%s" data-dx-page="%s"%s role="listitem">%s<div class="dx-discover-card-body"><h3 class="dx-discover-card-title">%s</h3><p class="dx-discover-card-desc">%s</p></div></a>`,
			href, esc(c.Slug), hashAttr, img, esc(c.Title), esc(desc))
	}
	return b.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
