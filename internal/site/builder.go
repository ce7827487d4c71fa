// Package site builds the data files the router consumes: it scans the
// content tree for page fragments and writes pages.json, and scans the
// image directories and writes image-map.json.
package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dexnexus/streamlab/internal/manifest"
	"github.com/dexnexus/streamlab/internal/progress"
	"github.com/dexnexus/streamlab/internal/walker"
)

// Builder scans a site tree and regenerates its manifest files.
type Builder struct {
	Root       string   // site root directory
	ContentDir string   // fragment directory, relative to Root
	DataDir    string   // output directory for JSON files, relative to Root
	ImageDirs  []string // image directories, relative to Root
	Include    []string // fragment include globs
	Exclude    []string // fragment exclude globs
	Reporter   progress.Reporter
}

// Result summarises one build.
type Result struct {
	Pages  int
	Images int
}

// Build scans the content tree, writes pages.json and image-map.json into
// the data directory, and returns what it produced.
func (b *Builder) Build() (*Result, error) {
	include := b.Include
	if len(include) == 0 {
		include = []string{"**/*.html"}
	}

	contentRoot := filepath.Join(b.Root, filepath.FromSlash(b.ContentDir))
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: contentRoot,
		Include: include,
		Exclude: b.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", contentRoot, err)
	}

	var fragments []walker.FileInfo
	for _, f := range files {
		if f.Kind == walker.KindFragment {
			fragments = append(fragments, f)
		}
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("no page fragments found in %s", contentRoot)
	}

	if b.Reporter != nil {
		b.Reporter.Start(len(fragments))
	}

	pages := make([]manifest.Page, 0, len(fragments))
	seen := make(map[string]string)
	for i, f := range fragments {
		if b.Reporter != nil {
			b.Reporter.Update(i+1, f.RelPath)
		}
		src, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		pg := pageFromFragment(f.RelPath, string(src))
		pg.ContentFile = path.Join(b.ContentDir, f.RelPath)
		if prev, dup := seen[pg.Slug]; dup {
			return nil, fmt.Errorf("duplicate slug %q: %s and %s", pg.Slug, prev, f.RelPath)
		}
		seen[pg.Slug] = f.RelPath
		pages = append(pages, pg)
	}
	if b.Reporter != nil {
		b.Reporter.Finish()
	}

	sortPages(pages)

	imageMap, imageCount, err := buildImageMap(b.Root, b.ImageDirs)
	if err != nil {
		return nil, err
	}

	dataDir := filepath.Join(b.Root, filepath.FromSlash(b.DataDir))
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dataDir, err)
	}

	if err := writeJSONFile(filepath.Join(dataDir, manifest.PagesFile), struct {
		Pages []manifest.Page `json:"pages"`
	}{pages}); err != nil {
		return nil, err
	}
	if err := writeJSONFile(filepath.Join(dataDir, manifest.ImageMapFile), imageMap); err != nil {
		return nil, err
	}

	return &Result{Pages: len(pages), Images: imageCount}, nil
}

// sortPages keeps the manifest deterministic: home first, then by group,
// explicit order, and title.
func sortPages(pages []manifest.Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		a, b := &pages[i], &pages[j]
		if (a.Slug == "home") != (b.Slug == "home") {
			return a.Slug == "home"
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.SortOrder() != b.SortOrder() {
			return a.SortOrder() < b.SortOrder()
		}
		return a.Title < b.Title
	})
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// slugFromPath derives a page slug from the fragment's relative path:
// the base filename without extension, lowercased.
func slugFromPath(relPath string) string {
	base := path.Base(relPath)
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}
