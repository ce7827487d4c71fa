// Package render expands a page fragment's declarative markers into
// rendered catalog blocks. Markers are data-dx-* attributes; each has one
// sub-renderer, and a sub-renderer failure degrades to a scoped muted
// fallback naming the data file so the rest of the fragment survives.
package render

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/dexnexus/streamlab/internal/catalog"
	"github.com/dexnexus/streamlab/internal/manifest"
	"github.com/dexnexus/streamlab/internal/markdown"
	"github.com/dexnexus/streamlab/internal/route"
)

// Processor post-processes page fragments.
type Processor struct {
	data  *manifest.SiteData
	store *catalog.Store
	files fs.FS // site root, for viewer docs and import strings
	md    *markdown.Renderer
	base  string // absolute base URL with trailing slash
	now   func() time.Time
}

// New builds a processor. base is the site's public base URL; it is
// normalised to end with a slash.
func New(data *manifest.SiteData, store *catalog.Store, files fs.FS, base string) *Processor {
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Processor{
		data:  data,
		store: store,
		files: files,
		md:    markdown.New(),
		base:  base,
		now:   time.Now,
	}
}

func esc(s string) string { return template.HTMLEscapeString(s) }

func muted(msg string) string {
	return `<p class="dx-muted">` + msg + `</p>`
}

type pass struct {
	name string
	run  func(ctx context.Context, p *Processor, root *html.Node, pg *manifest.Page, st route.State)
}

// Pass order matters: tabs activate before image resolution, and the
// anchor rewrite runs on original markup only, before renderers inject
// their own pre-wired links.
var passes = []pass{
	{"tabs", func(_ context.Context, p *Processor, root *html.Node, _ *manifest.Page, _ route.State) {
		p.activateTabs(root)
	}},
	{"images", func(_ context.Context, p *Processor, root *html.Node, _ *manifest.Page, _ route.State) {
		p.resolveImages(root)
	}},
	{"anchors", func(_ context.Context, p *Processor, root *html.Node, _ *manifest.Page, _ route.State) {
		p.rewriteAnchors(root)
	}},
	{"mentions", markerPass("data-dx-mentions", (*Processor).renderMentions)},
	{"overlays", markerPass("data-dx-overlays", (*Processor).renderOverlays)},
	{"widgets", markerPass("data-dx-widgets", (*Processor).renderWidgets)},
	{"inventory", markerPass("data-dx-inventory", (*Processor).renderInventory)},
	{"action-imports", markerPass("data-dx-action-imports", (*Processor).renderActionImports)},
	{"import-box", markerPass("data-dx-import-box", (*Processor).renderImportBox)},
	{"overlay-url", markerPass("data-dx-overlay-url", (*Processor).renderOverlayURL)},
	{"dynamic-links", markerPass("data-dx-dynamic-links", (*Processor).renderDynamicLinks)},
	{"touch-portal", markerPass("data-dx-touch-portal", (*Processor).renderTouchPortal)},
	{"emotes", markerPass("data-dx-emotes", (*Processor).renderEmotes)},
	{"games", markerPass("data-dx-games", (*Processor).renderGames)},
	{"game-detail", func(ctx context.Context, p *Processor, root *html.Node, _ *manifest.Page, st route.State) {
		if n := findFirst(root, withAttr("data-dx-game")); n != nil {
			p.renderGameDetail(ctx, root, n, st.GameID)
		}
	}},
	{"music", func(ctx context.Context, p *Processor, root *html.Node, _ *manifest.Page, _ route.State) {
		p.renderMusicPage(ctx, root)
	}},
	{"viewer", func(ctx context.Context, p *Processor, root *html.Node, _ *manifest.Page, st route.State) {
		if n := findFirst(root, withAttr("data-dx-viewer")); n != nil {
			p.renderViewer(ctx, n, st.DocPath)
		}
	}},
	{"docs", markerPass("data-dx-doc", (*Processor).renderInlineDoc)},
	{"commands", markerPass("data-dx-commands", (*Processor).renderCommands)},
	{"rota-clock", func(_ context.Context, p *Processor, root *html.Node, _ *manifest.Page, _ route.State) {
		p.stampRotaClock(root)
	}},
	{"rota-next", markerPass("data-dx-streaming-rota", (*Processor).renderRotaNext)},
	{"rota-week", markerPass("data-dx-rota-week", (*Processor).renderRotaWeek)},
	{"discover", markerPass("data-dx-discover", (*Processor).renderDiscover)},
}

func markerPass(attr string, fn func(*Processor, context.Context, *html.Node) string) func(ctx context.Context, p *Processor, root *html.Node, pg *manifest.Page, st route.State) {
	return func(ctx context.Context, p *Processor, root *html.Node, _ *manifest.Page, _ route.State) {
		for _, n := range findAll(root, withAttr(attr)) {
			if err := setInnerHTML(n, fn(p, ctx, n)); err != nil {
				log.Printf("render: %s: %v", attr, err)
			}
		}
	}
}

// Process expands every marker in the fragment and appends the related
// pages block. Sub-renderer failures never fail the whole page; only an
// unparseable fragment does.
func (p *Processor) Process(ctx context.Context, fragment string, pg *manifest.Page, st route.State) (string, error) {
	root, err := parseFragment(fragment)
	if err != nil {
		return "", fmt.Errorf("parsing fragment for %s: %w", pg.Slug, err)
	}

	for _, ps := range passes {
		ps.run(ctx, p, root, pg, st)
	}

	out, err := renderChildren(root)
	if err != nil {
		return "", fmt.Errorf("serializing fragment for %s: %w", pg.Slug, err)
	}

	if related := p.renderRelated(pg); related != "" {
		out += related
	}
	return out, nil
}

// activateTabs selects the first tab of every tab group unless one is
// already marked selected, and hides the other panels.
func (p *Processor) activateTabs(root *html.Node) {
	for _, tabs := range findAll(root, withAttr("data-dx-tabs")) {
		buttons := findAll(tabs, withAttr("data-dx-tab"))
		panels := findAll(tabs, withAttr("data-dx-panel"))
		if len(buttons) == 0 || len(panels) == 0 {
			continue
		}
		active := getAttr(buttons[0], "data-dx-tab")
		for _, b := range buttons {
			if getAttr(b, "aria-selected") == "true" {
				active = getAttr(b, "data-dx-tab")
				break
			}
		}
		for _, b := range buttons {
			sel := getAttr(b, "data-dx-tab") == active
			setAttr(b, "aria-selected", boolStr(sel))
			setAttr(b, "tabindex", map[bool]string{true: "0", false: "-1"}[sel])
		}
		for _, panel := range panels {
			if getAttr(panel, "data-dx-panel") == active {
				removeAttr(panel, "hidden")
			} else {
				setAttr(panel, "hidden", "")
			}
		}
	}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// resolveImages maps declarative image references and bare asset paths
// through the image map.
func (p *Processor) resolveImages(root *html.Node) {
	for _, img := range findAll(root, isTag("img")) {
		if name := getAttr(img, "data-dx-image"); name != "" {
			setAttr(img, "src", p.data.ResolveImage(name))
			continue
		}
		src := getAttr(img, "src")
		if src == "" || strings.HasPrefix(src, "http") || !strings.Contains(src, "assets/images") {
			continue
		}
		if resolved := p.data.ResolveImage(path.Base(src)); resolved != "" {
			setAttr(img, "src", resolved)
		}
	}
}

// rewriteAnchors marks internal ?page= links for in-app navigation.
// Game-detail links carrying an id keep full-reload behaviour so the id
// parameter survives.
func (p *Processor) rewriteAnchors(root *html.Node) {
	for _, a := range findAll(root, isTag("a")) {
		href := getAttr(a, "href")
		if !strings.Contains(href, "?page=") {
			continue
		}
		if strings.HasPrefix(href, "http") && !strings.HasPrefix(href, p.base) {
			continue
		}
		u, err := url.Parse(href)
		if err != nil {
			continue
		}
		slug := strings.TrimSpace(u.Query().Get("page"))
		if slug == "" {
			continue
		}
		if slug == "game" && u.Query().Get("id") != "" {
			continue
		}
		if !hasAttr(a, "data-dx-page") {
			setAttr(a, "data-dx-page", slug)
		}
	}
}

// fullURL joins a site-relative path onto the public base URL.
func (p *Processor) fullURL(rel string) string {
	return p.base + strings.TrimPrefix(rel, "/")
}

// stampRotaClock writes the server's render time into rota clock nodes.
// The client re-ticks from there.
func (p *Processor) stampRotaClock(root *html.Node) {
	for _, n := range findAll(root, withAttr("data-dx-rota-datetime")) {
		stamp := p.now().Format("Monday, January 2, 2006 15:04:05")
		if err := setInnerHTML(n, esc(stamp)); err != nil {
			log.Printf("render: rota clock: %v", err)
		}
	}
}
