package nav

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dexnexus/streamlab/internal/catalog"
	"github.com/dexnexus/streamlab/internal/manifest"
)

func siteData(t *testing.T, pages string, extra map[string]string) *manifest.SiteData {
	t.Helper()
	files := map[string]string{"pages.json": pages}
	for k, v := range extra {
		files[k] = v
	}
	m := fstest.MapFS{}
	for name, body := range files {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	data, err := manifest.Load(context.Background(), manifest.DirSource{FS: m})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return data
}

const testPages = `{"pages":[
	{"slug":"home","title":"Home","contentFile":"content/home.html"},
	{"slug":"obs","title":"OBS Setup","group":"Streaming","order":2,"tags":["obs","overlay"],"contentFile":"content/obs.html"},
	{"slug":"alerts","title":"Alerts","group":"Streaming","order":1,"contentFile":"content/alerts.html"},
	{"slug":"about","title":"About Me","group":"About","contentFile":"content/about.html"},
	{"slug":"secret","title":"Secret","group":"About","hideFromNav":true,"contentFile":"content/secret.html"},
	{"slug":"faq","title":"FAQ","group":"Start Here","contentFile":"content/faq.html"}
]}`

func TestGroupsByFieldOrderAndSort(t *testing.T) {
	ix := NewIndex(siteData(t, testPages, nil))
	groups := ix.Groups("")

	var labels []string
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	want := []string{"Start Here", "Streaming", "About"}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Fatalf("group order = %v, want %v", labels, want)
	}

	// Streaming pages sorted by order: Alerts (1) before OBS Setup (2).
	streaming := groups[1]
	if streaming.Items[0].Page.Slug != "alerts" || streaming.Items[1].Page.Slug != "obs" {
		t.Errorf("streaming order wrong: %+v", streaming.Items)
	}

	// Hidden page never appears.
	for _, g := range groups {
		for _, it := range g.Items {
			if it.Page.Slug == "secret" {
				t.Error("hidden page in nav")
			}
		}
	}
}

func TestGroupsHomeExcluded(t *testing.T) {
	ix := NewIndex(siteData(t, testPages, nil))
	for _, g := range ix.Groups("") {
		for _, it := range g.Items {
			if it.Page != nil && it.Page.Slug == "home" {
				t.Error("home should not be grouped")
			}
		}
	}
	if ix.Home("") == nil {
		t.Error("home pinned entry missing")
	}
}

func TestNavConfigPrecedenceAndPruning(t *testing.T) {
	navJSON := `{"groups":[
		{"label":"Guides","items":[{"slug":"obs"},{"slug":"secret"},{"slug":"gone"},{"label":"More","items":[{"slug":"faq"}]}]},
		{"label":"Empty","items":[{"slug":"secret"}]}
	]}`
	ix := NewIndex(siteData(t, testPages, map[string]string{"nav.json": navJSON}))
	groups := ix.Groups("")

	if len(groups) != 1 || groups[0].Label != "Guides" {
		t.Fatalf("groups = %+v, want only Guides", groups)
	}
	g := groups[0]
	// secret (hidden) and gone (dangling) are pruned; obs + submenu survive.
	if g.PageCount() != 2 {
		t.Errorf("page count = %d, want 2", g.PageCount())
	}
	if g.Items[1].Label != "More" || g.Items[1].Items[0].Page.Slug != "faq" {
		t.Errorf("submenu wrong: %+v", g.Items)
	}
}

func TestSearchNormalization(t *testing.T) {
	ix := NewIndex(siteData(t, testPages, nil))
	for _, q := range []string{"OBS", "obs", "  obs  "} {
		got := ix.Search(q)
		if len(got) != 1 || got[0].Slug != "obs" {
			t.Errorf("Search(%q) = %+v, want [obs]", q, got)
		}
	}
	if got := ix.Search(""); got != nil {
		t.Errorf("empty filter returned %+v", got)
	}
	// Tag and description text are searchable too.
	if got := ix.Search("overlay"); len(got) != 1 || got[0].Slug != "obs" {
		t.Errorf("tag search = %+v", got)
	}
}

func TestDiscoverCardsMerged(t *testing.T) {
	store := catalog.NewStore(fstest.MapFS{
		"widgets.json": &fstest.MapFile{Data: []byte(`{"widgets":[
			{"id":"countdown","name":"Countdown","showOnDiscover":true,"discoverOrder":1},
			{"id":"hidden-widget","name":"Hidden"}
		]}`)},
	})
	ix := NewIndex(siteData(t, testPages, nil))
	cards := ix.DiscoverCards(context.Background(), store, "")

	if cards[0].Title != "Countdown" {
		t.Errorf("first card = %+v, want Countdown (order 1)", cards[0])
	}
	for _, c := range cards {
		if c.Title == "Hidden" {
			t.Error("widget without showOnDiscover in grid")
		}
		if c.Slug == "home" {
			t.Error("home in discover grid")
		}
	}
}

func TestDiscoverCardsCuratedOrderWins(t *testing.T) {
	store := catalog.NewStore(fstest.MapFS{
		"widgets.json":  &fstest.MapFile{Data: []byte(`{"widgets":[{"id":"countdown","name":"Countdown"}]}`)},
		"discover.json": &fstest.MapFile{Data: []byte(`{"items":["about","countdown","unknown-id"]}`)},
	})
	ix := NewIndex(siteData(t, testPages, nil))
	cards := ix.DiscoverCards(context.Background(), store, "")

	if len(cards) != 2 {
		t.Fatalf("cards = %+v, want 2 (unknown skipped)", cards)
	}
	if cards[0].Slug != "about" {
		t.Errorf("curated order broken: %+v", cards[0])
	}
	if cards[1].Hash != "countdown" {
		t.Errorf("widget card missing hash: %+v", cards[1])
	}
}

func TestRenderPanelMarksPages(t *testing.T) {
	ix := NewIndex(siteData(t, testPages, nil))
	html := ix.RenderPanel("")
	if !strings.Contains(html, `data-dx-page="alerts"`) {
		t.Errorf("panel missing alerts link: %s", html)
	}
	if !strings.Contains(html, `<div class="dx-nav-group-title">Home</div>`) {
		t.Errorf("panel missing pinned home group: %s", html)
	}
	if strings.Contains(html, "secret") {
		t.Error("panel leaks hidden page")
	}
}

func TestRenderSearchResultsEmptyFilter(t *testing.T) {
	ix := NewIndex(siteData(t, testPages, nil))
	if got := ix.RenderSearchResults(""); got != "" {
		t.Errorf("empty filter rendered %q", got)
	}
	if got := ix.RenderSearchResults("alerts"); !strings.Contains(got, "Alerts") {
		t.Errorf("results = %q", got)
	}
}
