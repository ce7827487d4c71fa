// Package nav resolves the site's navigation tree, search results and the
// home discover grid from the loaded manifest. One normalized substring
// filter drives the slide-out panel, the desktop dropdowns, the search
// overlay and the discover grid identically.
package nav

import (
	"sort"
	"strings"

	"github.com/dexnexus/streamlab/internal/manifest"
)

// GroupOrder pins the display order of the well-known groups. Unknown
// groups sort after these, alphabetically.
var GroupOrder = []string{"Start Here", "Streaming", "Resources", "About"}

func groupRank(name string) int {
	for i, g := range GroupOrder {
		if g == name {
			return i
		}
	}
	return 999
}

// Normalize lowercases and trims a string for comparison.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// Item is one resolved navigation entry: a page link, or a labelled
// submenu of page links.
type Item struct {
	Page  *manifest.Page
	Label string
	Items []Item
}

// Group is one resolved top-level navigation group.
type Group struct {
	Label string
	Items []Item
}

// PageCount counts the page links in the group, including submenus.
func (g Group) PageCount() int {
	var count func(items []Item) int
	count = func(items []Item) int {
		n := 0
		for _, it := range items {
			if it.Page != nil {
				n++
			} else {
				n += count(it.Items)
			}
		}
		return n
	}
	return count(g.Items)
}

// Index answers navigation and search queries for one loaded manifest.
type Index struct {
	data *manifest.SiteData
}

// NewIndex builds an index over the loaded site data.
func NewIndex(data *manifest.SiteData) *Index {
	return &Index{data: data}
}

// PageMatches reports whether a page matches an already-normalized query.
// The haystack is title, group, tags and description concatenated.
func PageMatches(p *manifest.Page, q string) bool {
	if q == "" {
		return true
	}
	hay := p.Title + " " + p.Group + " " + strings.Join(p.Tags, " ") + " " + p.Description
	return strings.Contains(Normalize(hay), q)
}

func byOrderThenTitle(pages []manifest.Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		a, b := pages[i].SortOrder(), pages[j].SortOrder()
		if a != b {
			return a < b
		}
		return pages[i].Title < pages[j].Title
	})
}

// Home returns the home page if it exists and is navigable under the
// current filter.
func (ix *Index) Home(filter string) *manifest.Page {
	q := Normalize(filter)
	p, ok := ix.data.Page("home")
	if !ok || p.HideFromNav || !PageMatches(p, q) {
		return nil
	}
	return p
}

// Groups resolves the navigation tree. A valid nav config takes
// precedence: dangling and hidden page references are dropped, and
// submenus or groups left empty disappear. Without a nav config, visible
// pages are grouped by their group field, ordered by the fixed group
// priority then alphabetically, with pages by order then title. Home is
// never part of a group.
func (ix *Index) Groups(filter string) []Group {
	q := Normalize(filter)
	if cfg := ix.data.NavConfig(); cfg != nil {
		return ix.configuredGroups(cfg, q)
	}
	return ix.groupedByField(q)
}

func (ix *Index) configuredGroups(cfg *manifest.NavConfig, q string) []Group {
	var out []Group
	for _, g := range cfg.Groups {
		items := ix.resolveItems(g.Items, q)
		if len(items) == 0 {
			continue
		}
		out = append(out, Group{Label: g.Label, Items: items})
	}
	return out
}

func (ix *Index) resolveItems(items []manifest.NavItem, q string) []Item {
	var out []Item
	for _, it := range items {
		if it.Slug != "" {
			p, ok := ix.data.Page(it.Slug)
			if !ok || p.HideFromNav || !PageMatches(p, q) {
				continue
			}
			out = append(out, Item{Page: p})
			continue
		}
		if it.Label != "" && len(it.Items) > 0 {
			sub := ix.resolveItems(it.Items, q)
			if len(sub) == 0 {
				continue
			}
			out = append(out, Item{Label: it.Label, Items: sub})
		}
	}
	return out
}

func (ix *Index) groupedByField(q string) []Group {
	var visible []manifest.Page
	for _, p := range ix.data.Pages() {
		if p.HideFromNav || p.Slug == "home" {
			continue
		}
		if !PageMatches(&p, q) {
			continue
		}
		visible = append(visible, p)
	}
	byOrderThenTitle(visible)

	grouped := map[string][]manifest.Page{}
	for _, p := range visible {
		name := strings.TrimSpace(p.Group)
		if name == "" {
			name = "Pages"
		}
		grouped[name] = append(grouped[name], p)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := groupRank(names[i]), groupRank(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	out := make([]Group, 0, len(names))
	for _, name := range names {
		pages := grouped[name]
		items := make([]Item, len(pages))
		for i := range pages {
			items[i] = Item{Page: &pages[i]}
		}
		out = append(out, Group{Label: name, Items: items})
	}
	return out
}

// Search returns visible pages matching the filter, in manifest order.
// An empty filter returns no results.
func (ix *Index) Search(filter string) []manifest.Page {
	q := Normalize(filter)
	if q == "" {
		return nil
	}
	var out []manifest.Page
	for _, p := range ix.data.Pages() {
		if p.HideFromNav {
			continue
		}
		if PageMatches(&p, q) {
			out = append(out, p)
		}
	}
	return out
}
