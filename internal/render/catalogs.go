package render

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/dexnexus/streamlab/internal/catalog"
)

func (p *Processor) renderMentions(ctx context.Context, _ *html.Node) string {
	list, err := p.store.Mentions(ctx)
	if err != nil {
		return muted("Couldn't load mentions.")
	}
	var b strings.Builder
	for _, m := range list {
		href := m.URL
		if href == "" {
			href = "#"
		}
		desc := ""
		if m.Description != "" {
			desc = fmt.Sprintf(`<span class="dx-mentions-desc">%s</span>`, esc(m.Description))
		}
		name := m.Name
		if name == "" {
			name = "—"
		}
		fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener noreferrer" class="dx-mentions-card" role="listitem"><span class="dx-mentions-name">%s</span>%s</a>`,
			esc(href), esc(name), desc)
	}
	return b.String()
}

func (p *Processor) renderOverlays(ctx context.Context, _ *html.Node) string {
	list, err := p.store.Overlays(ctx)
	if err != nil {
		return muted("Couldn't load overlays list.")
	}
	if len(list) == 0 {
		return muted("No overlays listed yet. Add entries to <code>assets/data/overlays.json</code>.")
	}
	var b strings.Builder
	for _, o := range list {
		file := o.File
		if file == "" && o.ID != "" {
			file = o.ID + ".html"
		}
		relPath, fullURL := "#", "#"
		if file != "" {
			relPath = "obs/overlays/" + file
			fullURL = p.fullURL(relPath)
		}
		details := ""
		if o.PageSlug != "" {
			details = fmt.Sprintf(`<a href="?page=%s" class="dx-btn" data-dx-page="%s">Details</a>`, url.QueryEscape(o.PageSlug), esc(o.PageSlug))
		}
		name := o.Name
		if name == "" {
			name = o.ID
		}
		desc := ""
		if o.Description != "" {
			desc = fmt.Sprintf(`<span class="dx-resource-desc">%s</span>`, esc(o.Description))
		}
		fmt.Fprintf(&b, `<div class="dx-resource-row"><div class="dx-resource-info"><span class="dx-resource-name">%s</span>%s</div><div class="dx-resource-actions"><a href="%s" target="_blank" rel="noopener noreferrer" class="dx-btn">Open</a><button type="button" class="dx-btn dx-btn--primary" data-copy-url="%s">Copy URL</button>%s</div></div>`,
			esc(name), desc, esc(relPath), esc(fullURL), details)
	}
	return b.String()
}

func (p *Processor) renderWidgets(ctx context.Context, n *html.Node) string {
	list, err := p.store.Widgets(ctx)
	if err != nil {
		return muted("Could not load widgets list. Check <code>assets/data/widgets.json</code>.")
	}

	twitch := getAttr(n, "data-context") == "twitch"
	var filtered []catalog.Widget
	for _, w := range list {
		if w.ShowOnTwitch == twitch {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return muted("No widgets yet. Edit <code>assets/data/widgets.json</code>.")
	}

	cards := strings.Contains(getAttr(n, "class"), "dx-widget-cards")
	var b strings.Builder
	for _, w := range filtered {
		actions := p.widgetActions(w)
		name := w.Name
		if name == "" {
			name = w.ID
		}
		if cards {
			img := `<div class="dx-widget-card-placeholder"><span class="iconify" data-icon="mdi:widgets" aria-hidden="true"></span></div>`
			noImage := " dx-widget-card--no-image"
			if w.Image != "" {
				img = fmt.Sprintf(`<img src="%s" alt="" class="dx-widget-card-img" loading="lazy" />`, esc(p.data.ResolveImage(w.Image)))
				noImage = ""
			}
			desc := ""
			if w.Description != "" {
				desc = fmt.Sprintf(`<p class="dx-widget-card-desc">%s</p>`, esc(w.Description))
			}
			fmt.Fprintf(&b, `<div class="dx-widget-card%s" id="%s"><div class="dx-widget-card-img-wrap">%s</div><div class="dx-widget-card-body"><h3 class="dx-widget-card-title">%s</h3>%s<div class="dx-widget-card-actions">%s</div></div></div>`,
				noImage, esc(w.ID), img, esc(name), desc, actions)
		} else {
			desc := ""
			if w.Description != "" {
				desc = fmt.Sprintf(`<span class="dx-resource-desc">%s</span>`, esc(w.Description))
			}
			fmt.Fprintf(&b, `<div class="dx-resource-row"><div class="dx-resource-info"><span class="dx-resource-name">%s</span>%s</div><div class="dx-resource-actions">%s</div></div>`,
				esc(name), desc, actions)
		}
	}
	return b.String()
}

func (p *Processor) widgetActions(w catalog.Widget) string {
	relPath := ""
	if w.File != "" {
		relPath = "widgets/" + w.File
	}
	fullURL := w.Link
	if fullURL == "" && relPath != "" {
		fullURL = p.fullURL(relPath)
	}

	var b strings.Builder
	if w.HasAction("page") && w.Page != "" {
		label := w.ButtonLabel
		if label == "" {
			label = "Go to page"
		}
		fmt.Fprintf(&b, `<a href="?page=%s" class="dx-btn dx-btn--primary" data-dx-page="%s">%s</a>`, url.QueryEscape(w.Page), esc(w.Page), esc(label))
	}
	if w.HasAction("open") && fullURL != "" {
		fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener noreferrer" class="dx-btn">Open</a>`, esc(fullURL))
	}
	if w.HasAction("download") && relPath != "" {
		fmt.Fprintf(&b, `<a href="%s" download class="dx-btn">Download</a>`, esc(relPath))
	}
	if w.HasAction("copyUrl") && fullURL != "" {
		fmt.Fprintf(&b, `<button type="button" class="dx-btn dx-btn--primary" data-copy-url="%s">Copy URL</button>`, esc(fullURL))
	}
	if w.File != "" {
		howto := w.HowtoFile
		if howto == "" {
			howto = w.ID + ".md"
		}
		viewerHref := "?page=viewer&path=" + url.QueryEscape("widgets/howto/"+howto)
		fmt.Fprintf(&b, `<a href="%s" class="dx-btn" title="How to use">How to</a>`, esc(viewerHref))
	}
	return b.String()
}

func (p *Processor) renderInventory(ctx context.Context, n *html.Node) string {
	category := getAttr(n, "data-category")
	if category == "" {
		return ""
	}
	cats, err := p.store.Inventory(ctx)
	if err != nil {
		return muted("Could not load inventory. Check <code>assets/data/inventory.json</code>.")
	}
	cat, ok := cats[category]
	if !ok || len(cat.Items) == 0 {
		return muted("No items in this category. Edit <code>assets/data/inventory.json</code>.")
	}
	var b strings.Builder
	for _, item := range cat.Items {
		img := `<div class="dx-widget-card-placeholder"><span class="iconify" data-icon="mdi:package-variant" aria-hidden="true"></span></div>`
		if item.Image != "" {
			img = fmt.Sprintf(`<img src="%s" alt="" class="dx-inventory-card-img" loading="lazy" />`, esc(p.data.ResolveImage(item.Image)))
		}
		var meta []string
		for _, v := range []string{item.Price, item.Tags} {
			if v != "" {
				meta = append(meta, v)
			}
		}
		metaHTML := ""
		if len(meta) > 0 {
			metaHTML = fmt.Sprintf(`<p class="dx-inventory-card-meta">%s</p>`, esc(strings.Join(meta, " • ")))
		}
		var body strings.Builder
		if item.Flavour != "" {
			fmt.Fprintf(&body, `<p class="dx-inventory-card-flavour">%s</p>`, esc(item.Flavour))
		}
		for _, f := range []struct{ label, val string }{
			{"Effect", item.Effect}, {"Recipe", item.Recipe}, {"Obtainable", item.Obtainable},
			{"Use", item.Use}, {"Limit", item.Limit},
		} {
			if f.val != "" {
				fmt.Fprintf(&body, `<p class="dx-inventory-card-effect"><strong>%s:</strong> %s</p>`, f.label, esc(f.val))
			}
		}
		name := item.Name
		if name == "" {
			name = item.ID
		}
		fmt.Fprintf(&b, `<div class="dx-inventory-card" id="inv-%s"><div class="dx-inventory-card-img-wrap">%s</div><div class="dx-inventory-card-body"><h3 class="dx-inventory-card-title">%s</h3>%s%s</div></div>`,
			esc(item.ID), img, esc(name), metaHTML, body.String())
	}
	return b.String()
}

func (p *Processor) renderActionImports(ctx context.Context, _ *html.Node) string {
	list, err := p.store.ActionImports(ctx)
	if err != nil {
		return muted("Couldn't load action imports list.")
	}
	if len(list) == 0 {
		return muted("No action imports listed. Add entries to <code>assets/data/action-imports.json</code>.")
	}
	var b strings.Builder
	for _, item := range list {
		details, open, download := "", "", ""
		if item.PageSlug != "" {
			details = fmt.Sprintf(`<a href="?page=%s" class="dx-btn" data-dx-page="%s">Details</a>`, url.QueryEscape(item.PageSlug), esc(item.PageSlug))
		}
		if item.File != "" {
			open = fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" class="dx-btn" title="Open .txt file">Open</a>`, esc(item.File))
			download = fmt.Sprintf(`<a href="%s" download class="dx-btn" title="Download .txt file">Download</a>`, esc(item.File))
		}
		name := item.Name
		if name == "" {
			name = item.ID
		}
		desc := ""
		if item.Description != "" {
			desc = fmt.Sprintf(`<span class="dx-resource-desc">%s</span>`, esc(item.Description))
		}
		fmt.Fprintf(&b, `<div class="dx-resource-row dx-action-import-row"><div class="dx-resource-info"><span class="dx-resource-name">%s</span>%s</div><div class="dx-resource-actions">%s%s%s<button type="button" class="dx-btn dx-btn--primary" data-dx-import-file="%s">Copy</button></div></div>`,
			esc(name), desc, details, open, download, esc(item.File))
	}
	return b.String()
}

func (p *Processor) renderTouchPortal(ctx context.Context, _ *html.Node) string {
	doc, err := p.store.TouchPortal(ctx)
	if err != nil {
		return muted("Couldn't load Touch Portal list. Regenerate <code>assets/data/touch-portal.json</code>.")
	}
	section := func(items []catalog.TouchPortalItem, folder, empty string) string {
		if len(items) == 0 {
			return muted(empty)
		}
		var b strings.Builder
		for _, item := range items {
			download := ""
			if item.File != "" {
				download = fmt.Sprintf(`<a href="%s" download class="dx-btn dx-btn--primary">Download</a>`, esc(p.fullURL("touch-portal/"+folder+"/"+item.File)))
			}
			name := item.Name
			if name == "" {
				name = item.ID
			}
			desc := ""
			if item.Description != "" {
				desc = fmt.Sprintf(`<span class="dx-resource-desc">%s</span>`, esc(item.Description))
			}
			fmt.Fprintf(&b, `<div class="dx-resource-row"><div class="dx-resource-info"><span class="dx-resource-name">%s</span>%s</div><div class="dx-resource-actions">%s</div></div>`,
				esc(name), desc, download)
		}
		return b.String()
	}
	pages := section(doc.Pages, "pages", "No pages yet. Add entries to <code>touch-portal/pages/index.json</code>.")
	buttons := section(doc.Buttons, "buttons", "No buttons yet. Add entries to <code>touch-portal/buttons/index.json</code>.")
	return fmt.Sprintf(`<section class="dx-tabs" data-dx-tabs id="dx-tp-tabs"><div class="dx-tablist" role="tablist" aria-label="Touch Portal sections"><button class="dx-tab" type="button" role="tab" aria-selected="true" data-dx-tab="tp-pages">Pages</button><button class="dx-tab" type="button" role="tab" aria-selected="false" data-dx-tab="tp-buttons">Buttons</button></div><section class="dx-tabpanel" data-dx-panel="tp-pages"><div class="dx-card"><h2 class="dx-heading-reset">Pages</h2><div class="dx-resource-list">%s</div></div></section><section class="dx-tabpanel" data-dx-panel="tp-buttons" hidden><div class="dx-card"><h2 class="dx-heading-reset">Buttons</h2><div class="dx-resource-list">%s</div></div></section></section>`,
		pages, buttons)
}

func (p *Processor) renderEmotes(ctx context.Context, _ *html.Node) string {
	sets, err := p.store.Emotes(ctx)
	if err != nil {
		return muted("Couldn't load emotes.")
	}
	if len(sets) == 0 {
		return muted("No emote sets yet.")
	}
	emotesBase := p.fullURL("assets/images/page-images/emotes/")
	var b strings.Builder
	for _, set := range sets {
		name := set.Name
		if name == "" {
			name = set.ID
		}
		desc := strings.TrimSpace(set.Description)
		if desc == "" {
			desc = "Click to view full size"
		}
		size := "56"
		if len(set.Sizes) > 0 {
			size = set.Sizes[len(set.Sizes)-1]
		}
		imgSrc := fmt.Sprintf("%s%s/%s_%s.png", emotesBase, set.ID, set.ID, size)
		fmt.Fprintf(&b, `<article class="dx-discover-card dx-emote-card" role="button" tabindex="0"><div class="dx-discover-card-image dx-emote-card-image-wrap"><img src="%s" alt="%s" width="%s" height="%s" loading="lazy" data-dx-emote-src="%s" class="dx-emote-card-img" /></div><div class="dx-discover-card-body"><h3 class="dx-discover-card-title">%s</h3><p class="dx-discover-card-desc">%s</p></div></article>`,
			esc(imgSrc), esc(name), esc(size), esc(size), esc(imgSrc), esc(name), esc(desc))
	}
	return b.String()
}

func starsFromRating(rating float64) string {
	n := int(rating)
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func (p *Processor) gameImageSrc(g catalog.Game) string {
	if u := strings.TrimSpace(g.ImageURL); strings.HasPrefix(u, "http") {
		return u
	}
	if img := strings.TrimSpace(g.Image); img != "" {
		return p.fullURL("assets/images/games/" + strings.TrimLeft(img, "/"))
	}
	return ""
}

func (p *Processor) renderGames(ctx context.Context, _ *html.Node) string {
	games, err := p.store.Games(ctx)
	if err != nil {
		return muted("Couldn't load games.")
	}
	if len(games) == 0 {
		return muted("No games listed yet.")
	}
	var b strings.Builder
	for _, g := range games {
		name := g.Name
		if name == "" {
			name = g.ID
		}
		href := "?page=game&id=" + url.QueryEscape(g.ID)
		img := fmt.Sprintf(`<div class="dx-discover-card-image-placeholder"><span>%s</span></div>`, esc(firstRune(name)))
		if src := p.gameImageSrc(g); src != "" {
			img = fmt.Sprintf(`<img src="%s" alt="" class="dx-discover-card-image" loading="lazy" />`, esc(src))
		}
		fmt.Fprintf(&b, `<a href="%s" class="dx-discover-card" role="listitem">%s<div class="dx-discover-card-body"><h3 class="dx-discover-card-title">%s</h3><p class="dx-discover-card-desc dx-discover-card-rating" aria-label="Rating %g out of 5">%s</p></div></a>`,
			esc(href), img, esc(name), g.Rating, starsFromRating(g.Rating))
	}
	return b.String()
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func (p *Processor) renderCommands(ctx context.Context, n *html.Node) string {
	doc, err := p.store.Commands(ctx)
	if err != nil {
		return `<div class="dx-card"><h2 class="dx-heading-reset">Commands</h2>` + muted("Couldn't load commands catalog. Check <code>assets/data/commands.json</code>.") + `</div>`
	}

	groupFilter := splitCSV(getAttr(n, "data-group-filter"))
	orderOverride := splitCSV(getAttr(n, "data-group-order"))

	var names []string
	for name := range doc.Groups {
		if len(groupFilter) > 0 && !contains(groupFilter, name) {
			continue
		}
		names = append(names, name)
	}
	rank := func(g string) int {
		for i, o := range orderOverride {
			if o == g {
				return i
			}
		}
		return 999
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := rank(names[i]), rank(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	var tabs, panels strings.Builder
	for i, groupName := range names {
		group := doc.Groups[groupName]
		if group.Commands == nil {
			continue
		}
		label := strings.TrimSpace(group.Title)
		if label == "" {
			label = groupName
		}
		icon := ""
		if group.Icon != "" {
			icon = esc(group.Icon) + " "
		}
		selected, hidden := "false", " hidden"
		if i == 0 {
			selected, hidden = "true", ""
		}
		fmt.Fprintf(&tabs, `<button class="dx-tab" type="button" role="tab" aria-selected="%s" data-dx-tab="%s">%s%s</button>`,
			selected, esc(groupName), icon, esc(label))

		cmdNames := make([]string, 0, len(group.Commands))
		for cname := range group.Commands {
			cmdNames = append(cmdNames, cname)
		}
		sort.Strings(cmdNames)

		var rows strings.Builder
		for _, cname := range cmdNames {
			info := group.Commands[cname]
			perm := "viewer"
			if strings.EqualFold(strings.TrimSpace(info.Permissions), "mod") {
				perm = "mod"
			}
			haystack := strings.ToLower(cname + " " + info.Description + " " + info.Permissions)
			fmt.Fprintf(&rows, `<div class="dx-command-row" data-dx-command-row data-permission="%s" data-search="%s"><div class="dx-command-name">%s</div><div class="dx-command-desc">%s</div><div class="dx-command-meta">%s</div></div>`,
				perm, esc(haystack), esc(cname), esc(info.Description), badgeForPermission(info.Permissions))
		}
		fmt.Fprintf(&panels, `<section class="dx-tabpanel" data-dx-panel="%s"%s><div class="dx-card"><div class="dx-command-toolbar"><input class="dx-command-search" type="search" placeholder="Search commands in this group…" data-dx-command-search /><div class="dx-muted">Commands: %d</div></div><div class="dx-command-list" data-dx-command-list>%s</div></div></section>`,
			esc(groupName), hidden, len(cmdNames), rows.String())
	}

	return fmt.Sprintf(`<div class="dx-command-permission-filter" role="group" aria-label="Filter by permission"><span class="dx-command-filter-label">Show:</span><button type="button" class="dx-command-filter-btn dx-command-filter-btn--active" data-dx-permission-filter="all">All</button><button type="button" class="dx-command-filter-btn" data-dx-permission-filter="viewer">Viewer</button><button type="button" class="dx-command-filter-btn" data-dx-permission-filter="mod">Mod</button></div><section class="dx-tabs" data-dx-tabs><div class="dx-tablist" role="tablist" aria-label="Command groups">%s</div>%s</section>`,
		tabs.String(), panels.String())
}

func badgeForPermission(perm string) string {
	p := strings.ToLower(strings.TrimSpace(perm))
	if p == "" {
		return `<span class="dx-badge">viewer</span>`
	}
	if p == "mod" {
		return `<span class="dx-badge dx-badge--purple">mod</span>`
	}
	return `<span class="dx-badge">` + esc(p) + `</span>`
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
