package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dexnexus/streamlab/internal/catalog"
	"github.com/dexnexus/streamlab/internal/content"
	"github.com/dexnexus/streamlab/internal/controller"
	"github.com/dexnexus/streamlab/internal/manifest"
	"github.com/dexnexus/streamlab/internal/render"
)

func newTestServer(t *testing.T, files map[string]string) *Server {
	t.Helper()
	site := fstest.MapFS{}
	for name, body := range files {
		site[name] = &fstest.MapFile{Data: []byte(body)}
	}
	dataFS, err := fs.Sub(site, "assets/data")
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	data, err := manifest.Load(context.Background(), manifest.DirSource{FS: dataFS})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	store := catalog.NewStore(dataFS)
	cache := content.NewCache(content.DirFetcher{FS: site})
	proc := render.New(data, store, site, "https://lab.example/")
	ctrl := controller.New(data, cache, proc)
	return New(Config{Addr: ":0", BaseURL: "https://lab.example"}, data, ctrl, store, nil, site)
}

func siteFiles() map[string]string {
	return map[string]string{
		"assets/data/pages.json": `{"pages":[
			{"slug":"home","title":"Home","contentFile":"content/home.html"},
			{"slug":"obs","title":"OBS Setup","description":"Scene setup","group":"Streaming","tags":["obs"],"contentFile":"content/obs.html"}
		]}`,
		"content/home.html":   `<h2>Welcome</h2>`,
		"content/obs.html":    `<h2>Scenes</h2>`,
		"assets/css/site.css": `body{}`,
	}
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, siteFiles())
	w := get(t, s, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestPageRoute(t *testing.T) {
	s := newTestServer(t, siteFiles())
	w := get(t, s, "/?page=obs")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	html := w.Body.String()
	if !strings.Contains(html, "<h2>Scenes</h2>") {
		t.Errorf("body fragment missing: %s", html)
	}
	if !strings.Contains(html, "<title>OBS Setup — DexNeXuS</title>") {
		t.Errorf("title missing: %s", html)
	}
	if !strings.Contains(html, `<link rel="canonical" href="https://lab.example/?page=obs">`) {
		t.Errorf("canonical missing: %s", html)
	}
}

func TestRootServesHome(t *testing.T) {
	s := newTestServer(t, siteFiles())
	w := get(t, s, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<h2>Welcome</h2>") {
		t.Errorf("home fragment missing")
	}
	if !strings.Contains(w.Body.String(), "<title>DexNeXuS — Streaming Lab</title>") {
		t.Errorf("home title missing")
	}
}

func TestMissingFragmentReturns500(t *testing.T) {
	files := siteFiles()
	delete(files, "content/obs.html")
	s := newTestServer(t, files)
	w := get(t, s, "/?page=obs")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "load that page") {
		t.Errorf("error panel missing: %s", w.Body.String())
	}
}

func TestSearchAPI(t *testing.T) {
	s := newTestServer(t, siteFiles())
	w := get(t, s, "/api/search?q=obs")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Query   string `json:"query"`
		Results []struct {
			Slug string `json:"slug"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].Slug != "obs" {
		t.Errorf("results = %+v", body.Results)
	}

	// Empty query matches nothing.
	w = get(t, s, "/api/search")
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Results) != 0 {
		t.Errorf("empty query returned %d results", len(body.Results))
	}
}

func TestNavAPI(t *testing.T) {
	s := newTestServer(t, siteFiles())
	w := get(t, s, "/api/nav")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Groups []struct {
			Label string `json:"label"`
			Items []struct {
				Slug string `json:"slug"`
			} `json:"items"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Groups) != 1 || body.Groups[0].Label != "Streaming" {
		t.Fatalf("groups = %+v", body.Groups)
	}
	if len(body.Groups[0].Items) != 1 || body.Groups[0].Items[0].Slug != "obs" {
		t.Errorf("items = %+v", body.Groups[0].Items)
	}
}

func TestDiscoverAPI(t *testing.T) {
	files := siteFiles()
	files["assets/data/widgets.json"] = `{"widgets":[
		{"id":"timer","name":"Stream Timer","showOnDiscover":true}
	]}`
	s := newTestServer(t, files)
	w := get(t, s, "/api/discover")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Cards []struct {
			Slug string `json:"slug"`
			Hash string `json:"hash"`
		} `json:"cards"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	found := false
	for _, c := range body.Cards {
		if c.Hash == "timer" && c.Slug == "html-widgets" {
			found = true
		}
	}
	if !found {
		t.Errorf("widget card missing: %+v", body.Cards)
	}
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t, siteFiles())
	w := get(t, s, "/assets/css/site.css")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "body{}" {
		t.Errorf("asset body = %q", w.Body.String())
	}
}

func TestSearchPage(t *testing.T) {
	s := newTestServer(t, siteFiles())
	w := get(t, s, "/search?q=scene")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "OBS Setup") {
		t.Errorf("search result missing: %s", w.Body.String())
	}
}

func TestUnavailableServesFailureScreen(t *testing.T) {
	site := fstest.MapFS{
		"assets/css/site.css": &fstest.MapFile{Data: []byte("body{}")},
	}
	s := NewUnavailable(Config{Addr: ":0"}, site, errors.New("parsing pages.json: boom"))

	w := get(t, s, "/?page=obs")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Site data failed to load") {
		t.Errorf("failure screen missing: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "boom") {
		t.Errorf("cause missing: %s", w.Body.String())
	}

	// Assets still serve so the data files can be fixed in place.
	w = get(t, s, "/assets/css/site.css")
	if w.Code != http.StatusOK {
		t.Errorf("asset = %d, want 200", w.Code)
	}

	w = get(t, s, "/healthz")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("healthz = %d, want 503", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, siteFiles())
	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}
