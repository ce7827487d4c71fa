package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/dexnexus/streamlab/internal/controller"
	"github.com/dexnexus/streamlab/internal/nav"
	"github.com/dexnexus/streamlab/internal/route"
)

// handlePage renders one routed page inside the site layout.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	st := route.Parse(r.URL)
	view := s.ctrl.Navigate(r.Context(), st, false)
	if view == nil {
		http.Error(w, "no pages available", http.StatusServiceUnavailable)
		return
	}

	status := http.StatusOK
	if view.Status == controller.Failed {
		status = http.StatusInternalServerError
	}
	s.renderLayout(w, status, layoutData{
		Title:           view.Title,
		MetaTitle:       view.MetaTitle,
		MetaDescription: view.MetaDescription,
		MetaImage:       view.MetaImage,
		Canonical:       s.canonical(view.Route),
		Body:            template.HTML(view.Body),
	})
}

// handleSearchPage renders search results inside the layout.
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	body := s.idx.RenderSearchResults(q)
	if body == "" {
		body = `<p class="dx-muted">Type to search pages.</p>`
	}
	s.renderLayout(w, http.StatusOK, layoutData{
		Title:     "Search — DexNeXuS",
		MetaTitle: "Search — DexNeXuS",
		Query:     q,
		Body: template.HTML(`<section class="dx-card dx-search-page"><h1>Search</h1>` +
			body + `</section>`),
	})
}

func (s *Server) canonical(st route.State) string {
	base := strings.TrimSuffix(s.cfg.BaseURL, "/")
	if base == "" {
		return ""
	}
	return base + st.Encode()
}

type navItemJSON struct {
	Slug  string        `json:"slug,omitempty"`
	Title string        `json:"title,omitempty"`
	Label string        `json:"label,omitempty"`
	Items []navItemJSON `json:"items,omitempty"`
}

type navGroupJSON struct {
	Label string        `json:"label"`
	Items []navItemJSON `json:"items"`
}

func navItems(items []nav.Item) []navItemJSON {
	out := make([]navItemJSON, 0, len(items))
	for _, it := range items {
		if it.Page != nil {
			out = append(out, navItemJSON{Slug: it.Page.Slug, Title: it.Page.Title})
			continue
		}
		out = append(out, navItemJSON{Label: it.Label, Items: navItems(it.Items)})
	}
	return out
}

// handleNav returns the resolved navigation tree, optionally filtered.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	groups := s.idx.Groups(r.URL.Query().Get("q"))
	out := make([]navGroupJSON, 0, len(groups))
	for _, g := range groups {
		out = append(out, navGroupJSON{Label: g.Label, Items: navItems(g.Items)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": out})
}

type searchHitJSON struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Group       string   `json:"group,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// handleSearch returns pages matching the query. An empty query matches
// nothing.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	pages := s.idx.Search(q)
	hits := make([]searchHitJSON, 0, len(pages))
	for _, p := range pages {
		hits = append(hits, searchHitJSON{
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			Group:       p.Group,
			Tags:        p.Tags,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q, "results": hits})
}

type discoverCardJSON struct {
	Slug        string `json:"slug"`
	Hash        string `json:"hash,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`
	CardImage   string `json:"cardImage,omitempty"`
	Order       int    `json:"order"`
}

// handleDiscover returns the merged discover grid cards.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	cards := s.idx.DiscoverCards(r.Context(), s.store, r.URL.Query().Get("q"))
	out := make([]discoverCardJSON, 0, len(cards))
	for _, c := range cards {
		out = append(out, discoverCardJSON{
			Slug:        c.Slug,
			Hash:        c.Hash,
			Title:       c.Title,
			Description: c.Description,
			Group:       c.Group,
			CardImage:   c.CardImage,
			Order:       c.Order,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
