package nav

import (
	"context"
	"sort"

	"github.com/dexnexus/streamlab/internal/catalog"
	"github.com/dexnexus/streamlab/internal/manifest"
)

// Card is one entry of the home discover grid: a page, or a widget
// anchored inside the widgets page.
type Card struct {
	Slug        string
	Hash        string // widget anchor on the widgets page, empty for pages
	Title       string
	Description string
	Group       string
	CardImage   string
	Order       int
}

// widgetsPageSlug is where widget cards deep-link to.
const widgetsPageSlug = "html-widgets"

func (ix *Index) pageCard(p *manifest.Page) Card {
	order := p.SortOrder()
	if p.Order == nil {
		order = 999
	}
	return Card{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Group:       p.Group,
		CardImage:   ix.data.PageCardImage(p),
		Order:       order,
	}
}

func (ix *Index) widgetCard(w catalog.Widget) Card {
	title := w.Name
	if title == "" {
		title = w.ID
	}
	return Card{
		Slug:        widgetsPageSlug,
		Hash:        w.ID,
		Title:       title,
		Description: w.Description,
		Group:       "Widget",
		CardImage:   ix.data.ResolveImage(w.Image),
		Order:       w.EffectiveDiscoverOrder(),
	}
}

// DiscoverCards builds the home grid. When a curated discover document has
// entries, only those appear, in curated order; each id resolves to a
// widget first, then a page slug, and unknown ids are skipped. Otherwise
// every eligible page plus every widget flagged showOnDiscover is merged
// and sorted by order then title. The filter applies in both modes.
// Catalog failures degrade to an empty widget set.
func (ix *Index) DiscoverCards(ctx context.Context, store *catalog.Store, filter string) []Card {
	q := Normalize(filter)

	var eligible []manifest.Page
	for _, p := range ix.data.Pages() {
		if p.HideFromNav || p.Slug == "home" {
			continue
		}
		eligible = append(eligible, p)
	}
	pageBySlug := make(map[string]*manifest.Page, len(eligible))
	for i := range eligible {
		pageBySlug[eligible[i].Slug] = &eligible[i]
	}

	widgets, err := store.Widgets(ctx)
	if err != nil {
		widgets = nil
	}
	widgetByID := make(map[string]catalog.Widget, len(widgets))
	for _, w := range widgets {
		widgetByID[w.ID] = w
	}

	curated, err := store.Discover(ctx)
	if err != nil {
		curated = &catalog.Discover{}
	}

	var cards []Card
	if len(curated.Items) > 0 {
		for _, id := range curated.Items {
			if w, ok := widgetByID[id]; ok {
				cards = append(cards, ix.widgetCard(w))
				continue
			}
			if p, ok := pageBySlug[id]; ok {
				cards = append(cards, ix.pageCard(p))
			}
		}
	} else {
		for i := range eligible {
			cards = append(cards, ix.pageCard(&eligible[i]))
		}
		for _, w := range widgets {
			if w.ShowOnDiscover {
				cards = append(cards, ix.widgetCard(w))
			}
		}
		sort.SliceStable(cards, func(i, j int) bool {
			if cards[i].Order != cards[j].Order {
				return cards[i].Order < cards[j].Order
			}
			return cards[i].Title < cards[j].Title
		})
	}

	if q == "" {
		return cards
	}
	var filtered []Card
	for _, c := range cards {
		if PageMatches(&manifest.Page{Title: c.Title, Group: c.Group, Description: c.Description}, q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
