package manifest

import (
	"path"
	"strings"
)

// SiteData is the loaded, read-only view of the site's data files. All
// accessors return copies or nil-safe values; the single sanctioned
// mutation is SetLinks, which back-fills profile links discovered after
// the initial load.
type SiteData struct {
	pages      []Page
	bySlug     map[string]*Page
	siteConfig *SiteConfig
	imageMap   map[string]string
	navConfig  *NavConfig
}

func newSiteData(pages []Page, cfg *SiteConfig, imageMap map[string]string, nav *NavConfig) *SiteData {
	d := &SiteData{
		pages:      pages,
		bySlug:     make(map[string]*Page, len(pages)),
		siteConfig: cfg,
		imageMap:   imageMap,
		navConfig:  nav,
	}
	for i := range d.pages {
		d.bySlug[d.pages[i].Slug] = &d.pages[i]
	}
	return d
}

// Pages returns the manifest entries in manifest order.
func (d *SiteData) Pages() []Page { return d.pages }

// Page looks a page up by slug.
func (d *SiteData) Page(slug string) (*Page, bool) {
	p, ok := d.bySlug[slug]
	return p, ok
}

// SiteConfig returns the optional site config, nil when it failed to load.
func (d *SiteData) SiteConfig() *SiteConfig { return d.siteConfig }

// NavConfig returns the optional nav override, nil when absent or invalid.
func (d *SiteData) NavConfig() *NavConfig { return d.navConfig }

// SetLinks back-fills the site config's profile links. Last writer wins.
// A nil site config is materialised so links survive a missing
// site-config.json.
func (d *SiteData) SetLinks(links []Link) {
	if d.siteConfig == nil {
		d.siteConfig = &SiteConfig{}
	}
	d.siteConfig.Links = links
}

// Links returns the profile links, or nil when none are configured.
func (d *SiteData) Links() []Link {
	if d.siteConfig == nil {
		return nil
	}
	return d.siteConfig.Links
}

// ResolveImage maps an image reference to a servable path. Bare filenames
// are looked up in the image map; already-pathed or absolute references
// pass through untouched. Unknown bare filenames fall back to the default
// images directory.
func (d *SiteData) ResolveImage(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "/") || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	if mapped, ok := d.imageMap[ref]; ok {
		return mapped
	}
	return path.Join("assets/images", ref)
}

// PageCardImage resolves a page's card image through the image map.
// Pages without one return the empty string.
func (d *SiteData) PageCardImage(p *Page) string {
	if p == nil || p.CardImage == "" {
		return ""
	}
	return d.ResolveImage(p.CardImage)
}
