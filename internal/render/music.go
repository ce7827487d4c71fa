package render

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/net/html"

	"github.com/dexnexus/streamlab/internal/catalog"
)

// renderMusicPage fills the music page's tab bar, album chips and track
// grid from music.json. The three containers are independent markers that
// share one catalog fetch.
func (p *Processor) renderMusicPage(ctx context.Context, root *html.Node) {
	tabsEl := findFirst(root, withAttr("data-dx-music-tabs"))
	albumsEl := findFirst(root, withAttr("data-dx-music-albums"))
	contentEl := findFirst(root, withAttr("data-dx-music-content"))
	if tabsEl == nil && contentEl == nil {
		return
	}

	doc, err := p.store.Music(ctx)
	if err != nil {
		if contentEl != nil {
			p.setMusic(contentEl, muted("Couldn't load music. Check <code>assets/data/music.json</code>."))
		}
		return
	}

	if tabsEl != nil {
		var b strings.Builder
		b.WriteString(`<button type="button" class="dx-music-tab dx-music-tab--active" data-dx-music-tab="all" role="tab" aria-selected="true">All</button>`)
		for _, t := range doc.Tabs {
			fmt.Fprintf(&b, `<button type="button" class="dx-music-tab" data-dx-music-tab="%s" role="tab" aria-selected="false">%s</button>`, esc(t.ID), esc(t.Label))
		}
		p.setMusic(tabsEl, b.String())
	}

	if albumsEl != nil && len(doc.Albums) > 1 {
		var b strings.Builder
		b.WriteString(`<button type="button" class="dx-music-album-chip dx-music-album-chip--active" data-dx-music-album="all">All albums</button>`)
		for _, a := range doc.Albums {
			name := a.Name
			if name == "" {
				name = a.ID
			}
			art := p.albumArt(a)
			fmt.Fprintf(&b, `<button type="button" class="dx-music-album-chip" data-dx-music-album="%s"><img src="%s" alt="" />%s</button>`, esc(a.ID), esc(art), esc(name))
		}
		p.setMusic(albumsEl, b.String())
	}

	if contentEl != nil {
		p.setMusic(contentEl, p.musicTracksHTML(doc))
	}
}

func (p *Processor) albumArt(a catalog.MusicAlbum) string {
	if a.Artwork != "" {
		return p.data.ResolveImage(a.Artwork)
	}
	return p.data.ResolveImage("music-placeholder.png")
}

func (p *Processor) musicTracksHTML(doc *catalog.Music) string {
	if len(doc.Tracks) == 0 {
		return muted("No tracks yet. Add entries to <code>assets/data/music.json</code> with <code>url</code> (link to audio) or <code>file</code> (path under <code>assets/music/</code>).")
	}

	albumName := map[string]string{}
	albumArt := map[string]string{}
	for _, a := range doc.Albums {
		name := a.Name
		if name == "" {
			name = a.ID
		}
		albumName[a.ID] = name
		albumArt[a.ID] = p.albumArt(a)
	}

	// Tracks grouped by album, albums in catalog order, loose tracks last.
	order := make([]string, 0, len(doc.Albums)+1)
	for _, a := range doc.Albums {
		order = append(order, a.ID)
	}
	order = append(order, "")

	byAlbum := map[string][]int{}
	for i, t := range doc.Tracks {
		key := t.Album
		if _, known := albumName[key]; !known {
			key = ""
		}
		byAlbum[key] = append(byAlbum[key], i)
	}

	var b strings.Builder
	for _, albumID := range order {
		idxs := byAlbum[albumID]
		if len(idxs) == 0 {
			continue
		}
		name, art := albumName[albumID], albumArt[albumID]
		if albumID == "" {
			name, art = "Singles", p.data.ResolveImage("music-placeholder.png")
		}
		fmt.Fprintf(&b, `<section class="dx-music-album" data-dx-music-album-section="%s"><img src="%s" alt="" class="dx-music-album-artwork" loading="lazy" /><h3 class="dx-music-album-title">%s</h3><div class="dx-music-album-tracks">`,
			esc(albumID), esc(art), esc(name))
		for _, i := range idxs {
			t := doc.Tracks[i]
			art := t.ArtworkURL
			if !strings.HasPrefix(art, "http://") && !strings.HasPrefix(art, "https://") {
				art = ""
			}
			if art == "" && t.Artwork != "" {
				art = p.data.ResolveImage(t.Artwork)
			}
			if art == "" {
				art = p.data.ResolveImage("music-placeholder.png")
			}
			title := t.Title
			if title == "" {
				title = "—"
			}
			fmt.Fprintf(&b, `<button type="button" class="dx-music-card" data-dx-music-track="%d" data-dx-music-tab-value="%s"><div class="dx-music-card-artwork"><img src="%s" alt="" loading="lazy" /></div><div class="dx-music-card-info"><span class="dx-music-card-title">%s</span><span class="dx-music-card-artist">%s</span></div></button>`,
				i, esc(t.Tab), esc(art), esc(title), esc(t.Artist))
		}
		b.WriteString(`</div></section>`)
	}
	return b.String()
}

func (p *Processor) setMusic(n *html.Node, markup string) {
	if err := setInnerHTML(n, markup); err != nil {
		log.Printf("render: music: %v", err)
	}
}
