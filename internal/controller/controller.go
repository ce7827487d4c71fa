// Package controller drives the page lifecycle: resolve the route against
// the manifest, load the fragment through the cache, post-process it, and
// produce the final view with its title and meta tags. Route changes are
// recorded in a history log with push/replace semantics.
package controller

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"sync"

	"github.com/dexnexus/streamlab/internal/content"
	"github.com/dexnexus/streamlab/internal/manifest"
	"github.com/dexnexus/streamlab/internal/render"
	"github.com/dexnexus/streamlab/internal/route"
)

// Status is the controller's lifecycle state.
type Status int

const (
	Idle Status = iota
	Loading
	Displayed
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Displayed:
		return "displayed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// SiteTitle is the fallback document title and the suffix on page titles.
const SiteTitle = "DexNeXuS — Streaming Lab"

// View is one rendered page, ready for the layout template.
type View struct {
	Page            *manifest.Page
	Route           route.State
	Status          Status
	Title           string
	MetaTitle       string
	MetaDescription string
	MetaImage       string
	Body            string
}

// HistoryEntry records one navigation. Replace entries overwrite the
// previous head instead of growing the log.
type HistoryEntry struct {
	Route   route.State
	Replace bool
}

// Controller resolves routes into views.
type Controller struct {
	data  *manifest.SiteData
	cache *content.Cache
	proc  *render.Processor

	mu      sync.Mutex
	status  Status
	history []HistoryEntry
}

// New wires a controller over loaded site data.
func New(data *manifest.SiteData, cache *content.Cache, proc *render.Processor) *Controller {
	return &Controller{data: data, cache: cache, proc: proc, status: Idle}
}

// Status returns the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// History returns a copy of the navigation log.
func (c *Controller) History() []HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Controller) record(st route.State, replace bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if replace && len(c.history) > 0 {
		c.history[len(c.history)-1] = HistoryEntry{Route: st, Replace: true}
		return
	}
	c.history = append(c.history, HistoryEntry{Route: st, Replace: replace})
}

// resolve applies the fallback chain: requested slug, then home, then the
// first manifest entry. A nil return means the manifest is empty and
// nothing can render.
func (c *Controller) resolve(slug string) *manifest.Page {
	if p, ok := c.data.Page(slug); ok {
		return p
	}
	if p, ok := c.data.Page(route.HomeSlug); ok {
		log.Printf("controller: unknown page %q, falling back to home", slug)
		return p
	}
	pages := c.data.Pages()
	if len(pages) > 0 {
		log.Printf("controller: unknown page %q and no home, falling back to %q", slug, pages[0].Slug)
		return &pages[0]
	}
	return nil
}

// Navigate resolves and renders one route. Unknown slugs fall back to
// home, then to the first manifest entry; an empty manifest is a no-op
// returning nil. A fragment load or render failure produces a Failed view
// with an inline error panel, and the route is still recorded.
func (c *Controller) Navigate(ctx context.Context, st route.State, replace bool) *View {
	pg := c.resolve(st.Slug)
	if pg == nil {
		log.Printf("controller: empty manifest, ignoring navigation to %q", st.Slug)
		return nil
	}
	// The route reflects the page actually shown after fallback.
	if pg.Slug != st.Slug {
		st = route.State{Slug: pg.Slug}
	}

	c.setStatus(Loading)
	c.record(st, replace)

	view := &View{Page: pg, Route: st}
	c.applyMeta(view)

	fragment, err := c.cache.Get(ctx, pg.ContentFile)
	if err != nil {
		c.fail(view, err)
		return view
	}
	body, err := c.proc.Process(ctx, fragment, pg, st)
	if err != nil {
		c.fail(view, err)
		return view
	}

	view.Status = Displayed
	view.Body = body
	c.setStatus(Displayed)
	return view
}

func (c *Controller) fail(view *View, err error) {
	log.Printf("controller: loading %s: %v", view.Page.Slug, err)
	view.Status = Failed
	view.Body = fmt.Sprintf(`<div class="dx-card"><h1>Couldn't load that page</h1><p class="dx-muted">Try refreshing.</p><pre>%s</pre></div>`,
		template.HTMLEscapeString(err.Error()))
	c.setStatus(Failed)
}

// applyMeta sets the document title and open-graph fields. Home keeps the
// bare site identity.
func (c *Controller) applyMeta(v *View) {
	if v.Page.Slug == route.HomeSlug {
		v.Title = SiteTitle
		v.MetaTitle = SiteTitle
		return
	}
	v.Title = v.Page.Title + " — DexNeXuS"
	v.MetaTitle = v.Title
	v.MetaDescription = v.Page.Description
	v.MetaImage = c.data.PageCardImage(v.Page)
}
