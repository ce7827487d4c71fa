package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"

	"golang.org/x/sync/errgroup"
)

// Well-known data file names under the data directory.
const (
	PagesFile      = "pages.json"
	SiteConfigFile = "site-config.json"
	ImageMapFile   = "image-map.json"
	NavConfigFile  = "nav.json"
)

// Source supplies the raw bytes of a named data file.
type Source interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads data files from a filesystem directory.
type DirSource struct {
	FS fs.FS
}

func (s DirSource) ReadFile(_ context.Context, name string) ([]byte, error) {
	return fs.ReadFile(s.FS, name)
}

// Load fetches all four data files concurrently. The pages manifest is
// mandatory and a failure there is fatal; the site config, image map and
// nav config are each optional and degrade to nil independently. Each file
// is fetched exactly once, with no retries.
func Load(ctx context.Context, src Source) (*SiteData, error) {
	var (
		pages      []Page
		siteConfig *SiteConfig
		imageMap   map[string]string
		navConfig  *NavConfig
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := src.ReadFile(ctx, PagesFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", PagesFile, err)
		}
		var doc struct {
			Pages []Page `json:"pages"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", PagesFile, err)
		}
		if doc.Pages == nil {
			return fmt.Errorf("parsing %s: missing pages array", PagesFile)
		}
		pages = doc.Pages
		return nil
	})

	g.Go(func() error {
		raw, err := src.ReadFile(ctx, SiteConfigFile)
		if err != nil {
			log.Printf("manifest: %s unavailable, continuing without it: %v", SiteConfigFile, err)
			return nil
		}
		var cfg SiteConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			log.Printf("manifest: %s invalid, continuing without it: %v", SiteConfigFile, err)
			return nil
		}
		siteConfig = &cfg
		return nil
	})

	g.Go(func() error {
		raw, err := src.ReadFile(ctx, ImageMapFile)
		if err != nil {
			log.Printf("manifest: %s unavailable, continuing without it: %v", ImageMapFile, err)
			return nil
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			log.Printf("manifest: %s invalid, continuing without it: %v", ImageMapFile, err)
			return nil
		}
		imageMap = m
		return nil
	})

	g.Go(func() error {
		raw, err := src.ReadFile(ctx, NavConfigFile)
		if err != nil {
			log.Printf("manifest: %s unavailable, falling back to grouped navigation: %v", NavConfigFile, err)
			return nil
		}
		var cfg NavConfig
		if err := json.Unmarshal(raw, &cfg); err != nil || cfg.Groups == nil {
			log.Printf("manifest: %s has no valid groups, falling back to grouped navigation", NavConfigFile)
			return nil
		}
		navConfig = &cfg
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newSiteData(pages, siteConfig, imageMap, navConfig), nil
}
