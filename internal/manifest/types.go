package manifest

// Page is one entry in the pages manifest. Slug is the unique routing key;
// ContentFile points at the HTML fragment rendered for the page.
type Page struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Group       string   `json:"group,omitempty"`
	Order       *int     `json:"order,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ContentFile string   `json:"contentFile"`
	HideFromNav bool     `json:"hideFromNav,omitempty"`
	CardImage   string   `json:"cardImage,omitempty"`
}

// orderSentinel sorts pages without an explicit order after everything else.
const orderSentinel = 9999

// SortOrder returns the page's explicit order, or a large sentinel when
// the manifest omits it.
func (p *Page) SortOrder() int {
	if p.Order == nil {
		return orderSentinel
	}
	return *p.Order
}

// Link is one external profile link from the site config.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon,omitempty"`
}

// SiteConfig holds optional global settings.
type SiteConfig struct {
	BaseURL string `json:"baseUrl,omitempty"`
	Links   []Link `json:"links,omitempty"`
}

// NavConfig is the optional hierarchical navigation override. When present
// it supersedes automatic group-by-field navigation.
type NavConfig struct {
	Groups []NavGroup `json:"groups"`
}

// NavGroup is one top-level navigation group.
type NavGroup struct {
	Label string    `json:"label"`
	Items []NavItem `json:"items"`
}

// NavItem is either a direct page reference (Slug set) or a nested submenu
// (Label plus Items set).
type NavItem struct {
	Slug  string    `json:"slug,omitempty"`
	Label string    `json:"label,omitempty"`
	Items []NavItem `json:"items,omitempty"`
}
