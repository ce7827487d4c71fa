// Package route encodes and decodes the site's navigation state. The
// canonical form is the ?page= query parameter; a bare #fragment is
// accepted as a legacy fallback. Auxiliary parameters belong to a single
// slug each: viewer owns ?path=, game owns ?id=. Encoding drops any aux
// parameter the destination slug does not own.
package route

import (
	"net/url"
	"strings"
)

// HomeSlug is the default destination when a URL carries no route.
const HomeSlug = "home"

// State is one resolved navigation target.
type State struct {
	Slug    string
	DocPath string // viewer only
	GameID  string // game only
}

// Parse extracts the route state from a request URL. Precedence:
// ?page= first, then a non-empty fragment, then home.
func Parse(u *url.URL) State {
	q := u.Query()

	slug := strings.TrimSpace(q.Get("page"))
	if slug == "" {
		slug = strings.TrimSpace(strings.TrimPrefix(u.Fragment, "#"))
	}
	if slug == "" {
		slug = HomeSlug
	}

	st := State{Slug: slug}
	switch slug {
	case "viewer":
		st.DocPath = q.Get("path")
	case "game":
		st.GameID = q.Get("id")
	}
	return st
}

// Encode renders the state as a relative URL. Home encodes to "/" so the
// default route stays clean.
func (s State) Encode() string {
	if s.Slug == "" || s.Slug == HomeSlug {
		return "/"
	}

	q := url.Values{}
	q.Set("page", s.Slug)
	switch s.Slug {
	case "viewer":
		if s.DocPath != "" {
			q.Set("path", s.DocPath)
		}
	case "game":
		if s.GameID != "" {
			q.Set("id", s.GameID)
		}
	}
	return "/?" + q.Encode()
}
