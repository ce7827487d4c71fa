package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dexnexus/streamlab/internal/manifest"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func loadPages(t *testing.T, root string) []manifest.Page {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(root, "assets/data/pages.json"))
	if err != nil {
		t.Fatalf("reading pages.json: %v", err)
	}
	var doc struct {
		Pages []manifest.Page `json:"pages"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("parsing pages.json: %v", err)
	}
	return doc.Pages
}

func TestBuildWritesManifest(t *testing.T) {
	root := writeTree(t, map[string]string{
		"content/home.html": `<h1>Welcome</h1>`,
		"content/obs.html": `<!--page
title: OBS Setup
description: Scene and source setup
group: Streaming
order: 20
tags: obs, setup
-->
<h2>Scenes</h2>`,
		"content/secret.html": `<!--page
title: Secret
hidden: true
-->
<p>shh</p>`,
	})

	b := &Builder{Root: root, ContentDir: "content", DataDir: "assets/data"}
	res, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Pages != 3 {
		t.Errorf("pages = %d, want 3", res.Pages)
	}

	pages := loadPages(t, root)
	if pages[0].Slug != "home" {
		t.Errorf("home should sort first, got %q", pages[0].Slug)
	}
	if pages[0].Title != "Welcome" {
		t.Errorf("heading fallback title = %q", pages[0].Title)
	}

	var obs *manifest.Page
	for i := range pages {
		if pages[i].Slug == "obs" {
			obs = &pages[i]
		}
	}
	if obs == nil {
		t.Fatal("obs page missing")
	}
	if obs.Title != "OBS Setup" || obs.Group != "Streaming" || obs.Description != "Scene and source setup" {
		t.Errorf("obs = %+v", obs)
	}
	if obs.Order == nil || *obs.Order != 20 {
		t.Errorf("obs order = %v", obs.Order)
	}
	if len(obs.Tags) != 2 || obs.Tags[0] != "obs" || obs.Tags[1] != "setup" {
		t.Errorf("obs tags = %v", obs.Tags)
	}
	if obs.ContentFile != "content/obs.html" {
		t.Errorf("obs contentFile = %q", obs.ContentFile)
	}

	for _, p := range pages {
		if p.Slug == "secret" && !p.HideFromNav {
			t.Error("secret page should be hidden")
		}
	}
}

func TestBuildDuplicateSlugFails(t *testing.T) {
	root := writeTree(t, map[string]string{
		"content/about.html":       `<h1>About</h1>`,
		"content/extra/about.html": `<h1>About again</h1>`,
	})
	b := &Builder{Root: root, ContentDir: "content", DataDir: "assets/data"}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected duplicate slug error")
	}
}

func TestBuildNoFragmentsFails(t *testing.T) {
	root := writeTree(t, map[string]string{
		"content/notes.md": "# nope",
	})
	b := &Builder{Root: root, ContentDir: "content", DataDir: "assets/data"}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected no-fragments error")
	}
}

func TestBuildImageMapFirstWins(t *testing.T) {
	png := string([]byte{0x89, 'P', 'N', 'G'})
	root := writeTree(t, map[string]string{
		"content/home.html":                   `<h1>Home</h1>`,
		"assets/images/card.png":              png,
		"assets/images/page-images/card.png":  png,
		"assets/images/page-images/other.png": png,
	})

	b := &Builder{
		Root:       root,
		ContentDir: "content",
		DataDir:    "assets/data",
		ImageDirs:  []string{"assets/images", "assets/images/page-images"},
	}
	res, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Images != 2 {
		t.Errorf("images = %d, want 2", res.Images)
	}

	raw, err := os.ReadFile(filepath.Join(root, "assets/data/image-map.json"))
	if err != nil {
		t.Fatalf("reading image-map.json: %v", err)
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("parsing image-map.json: %v", err)
	}
	if m["card.png"] != "assets/images/card.png" {
		t.Errorf("card.png = %q, want the first directory's copy", m["card.png"])
	}
	if m["other.png"] != "assets/images/page-images/other.png" {
		t.Errorf("other.png = %q", m["other.png"])
	}
}

func TestBuildOutputLoadsBack(t *testing.T) {
	root := writeTree(t, map[string]string{
		"content/home.html": `<h1>Home</h1>`,
		"content/about.html": `<!--page
title: About
group: About
-->
<p>hi</p>`,
	})
	b := &Builder{Root: root, ContentDir: "content", DataDir: "assets/data"}
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	pages := loadPages(t, root)
	if len(pages) != 2 {
		t.Fatalf("pages = %+v", pages)
	}
}

func TestParseMetaHeaderAbsent(t *testing.T) {
	if m := parseMetaHeader("<h1>No header</h1>"); m != nil {
		t.Errorf("expected nil, got %v", m)
	}
	// Unterminated header is ignored rather than swallowing the fragment.
	if m := parseMetaHeader("<!--page\ntitle: X\n<h1>Body</h1>"); m != nil {
		t.Errorf("expected nil for unterminated header, got %v", m)
	}
}

func TestTitleize(t *testing.T) {
	if got := titleize("html-widgets"); got != "Html Widgets" {
		t.Errorf("titleize = %q", got)
	}
}
