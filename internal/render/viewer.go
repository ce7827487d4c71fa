package render

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"golang.org/x/net/html"
)

// renderViewer loads the document named by the route's path parameter into
// the viewer container.
func (p *Processor) renderViewer(_ context.Context, n *html.Node, docPath string) {
	var markup string
	switch {
	case docPath == "":
		markup = muted(`No document specified. Add <code>?path=…</code> to the URL.`)
	default:
		raw, err := fs.ReadFile(p.files, strings.TrimLeft(docPath, "/"))
		if err != nil {
			markup = muted("Could not load document. Check the path: <code>" + esc(docPath) + "</code>")
		} else if out, rerr := p.md.Render(docPath, raw); rerr != nil {
			markup = muted("Could not render document.")
		} else {
			markup = `<div class="dx-viewer-prose">` + out + `</div>`
		}
	}
	if err := setInnerHTML(n, markup); err != nil {
		log.Printf("render: viewer: %v", err)
	}
}

// renderGameDetail fills the game page from games.json and the route id.
func (p *Processor) renderGameDetail(ctx context.Context, root, n *html.Node, id string) {
	back := `<p class="dx-muted">Game not found. <a class="dx-link" href="?page=games" data-dx-page="games">Back to Games</a></p>`
	id = strings.TrimSpace(id)
	if id == "" {
		p.setGameMarkup(root, n, "Game", `<p class="dx-muted">No game specified. <a class="dx-link" href="?page=games" data-dx-page="games">Back to Games</a></p>`)
		return
	}
	game, err := p.store.Game(ctx, id)
	if err != nil {
		p.setGameMarkup(root, n, "Game", `<p class="dx-muted">Couldn't load game. <a class="dx-link" href="?page=games" data-dx-page="games">Back to Games</a></p>`)
		return
	}
	if game == nil {
		p.setGameMarkup(root, n, "Game", back)
		return
	}

	name := game.Name
	if name == "" {
		name = game.ID
	}

	var b strings.Builder
	b.WriteString(`<p><a class="dx-btn dx-game-back" href="?page=games" data-dx-page="games">← Back to Games</a></p>`)

	var meta []string
	for _, v := range []string{game.Platform, game.Genre, game.Status} {
		if v != "" {
			meta = append(meta, v)
		}
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, `<p class="dx-game-meta dx-muted">%s</p>`, esc(strings.Join(meta, " · ")))
	}
	fmt.Fprintf(&b, `<div class="dx-game-rating" aria-label="Rating %g out of 5">%s</div>`, game.Rating, starsFromRating(game.Rating))

	completed := " · Still playing"
	if game.DateCompleted != "" {
		completed = " · Completed " + esc(game.DateCompleted)
	}
	started := game.DateStarted
	if started == "" {
		started = "—"
	}
	fmt.Fprintf(&b, `<p class="dx-game-dates dx-muted">Started %s%s</p>`, esc(started), completed)

	if game.RotaDay != "" {
		fmt.Fprintf(&b, `<p class="dx-game-rota dx-muted">On my schedule: <a class="dx-link" href="?page=streaming-rota" data-dx-page="streaming-rota">%s</a></p>`, esc(game.RotaDay))
	}
	if game.YoutubeVideoID != "" {
		fmt.Fprintf(&b, `<div class="dx-game-video-wrap"><h3 class="dx-heading-reset dx-game-video-label">Trailer</h3><iframe class="dx-game-video" src="https://www.youtube.com/embed/%s" title="Trailer" allowfullscreen></iframe></div>`, esc(game.YoutubeVideoID))
	}
	if game.TutorialYoutubeID != "" {
		fmt.Fprintf(&b, `<div class="dx-game-video-wrap"><h3 class="dx-heading-reset dx-game-video-label">Tutorial</h3><iframe class="dx-game-video" src="https://www.youtube.com/embed/%s" title="Tutorial" allowfullscreen></iframe></div>`, esc(game.TutorialYoutubeID))
	}

	review := strings.TrimSpace(game.Review)
	if review == "" {
		review = strings.TrimSpace(game.Description)
	}
	if review != "" {
		fmt.Fprintf(&b, `<h3 class="dx-heading-reset dx-game-review-title">My review</h3><div class="dx-game-review">%s</div>`,
			strings.ReplaceAll(esc(review), "\n", "<br />"))
	}

	if len(game.Links) > 0 {
		b.WriteString(`<h3 class="dx-heading-reset dx-game-links-title">Links</h3><ul class="dx-game-links-list">`)
		for _, l := range game.Links {
			u := l.URL
			if u == "" {
				u = "#"
			}
			label := l.Label
			if label == "" {
				label = u
			}
			external := ""
			if strings.HasPrefix(u, "http") {
				external = ` target="_blank" rel="noopener noreferrer"`
			}
			fmt.Fprintf(&b, `<li><a class="dx-link" href="%s"%s>%s</a></li>`, esc(u), external, esc(label))
		}
		b.WriteString(`</ul>`)
	}

	header := fmt.Sprintf(`<h1 class="dx-heading-reset dx-game-detail-title">%s</h1>`, esc(name))
	if src := p.gameImageSrc(*game); src != "" {
		header = fmt.Sprintf(`<div class="dx-game-detail-header">%s<div class="dx-game-cover"><img src="%s" alt="" class="dx-game-cover-img" loading="lazy" /></div></div>`, header, esc(src))
	}
	p.setGameMarkup(root, n, header, b.String())
}

// setGameMarkup writes the detail body and, when a title slot exists in
// the fragment, the page header.
func (p *Processor) setGameMarkup(root, n *html.Node, header, body string) {
	if titleEl := findFirst(root, func(e *html.Node) bool { return getAttr(e, "id") == "dxGameTitle" }); titleEl != nil && titleEl.Parent != nil {
		if !strings.HasPrefix(header, "<") {
			header = fmt.Sprintf(`<h1 class="dx-heading-reset dx-game-page-title" id="dxGameTitle">%s</h1>`, esc(header))
		}
		if err := setInnerHTML(titleEl.Parent, header); err != nil {
			log.Printf("render: game header: %v", err)
		}
	}
	if err := setInnerHTML(n, body); err != nil {
		log.Printf("render: game detail: %v", err)
	}
}
