package route

import (
	"net/url"
	"testing"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		raw  string
		want State
	}{
		{"/", State{Slug: "home"}},
		{"/?page=widgets", State{Slug: "widgets"}},
		{"/#commands", State{Slug: "commands"}},
		// Query parameter wins over the fragment.
		{"/?page=widgets#commands", State{Slug: "widgets"}},
		{"/?page=viewer&path=docs/setup.md", State{Slug: "viewer", DocPath: "docs/setup.md"}},
		{"/?page=game&id=dx-quest", State{Slug: "game", GameID: "dx-quest"}},
		// Aux params are ignored for slugs that do not own them.
		{"/?page=widgets&path=docs/x.md&id=y", State{Slug: "widgets"}},
		{"/?page=%20%20", State{Slug: "home"}},
	}
	for _, c := range cases {
		if got := Parse(mustURL(t, c.raw)); got != c.want {
			t.Errorf("Parse(%q) = %+v, want %+v", c.raw, got, c.want)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	states := []State{
		{Slug: "home"},
		{Slug: "widgets"},
		{Slug: "viewer", DocPath: "docs/obs setup.md"},
		{Slug: "game", GameID: "dx-quest"},
	}
	for _, st := range states {
		got := Parse(mustURL(t, st.Encode()))
		if got != st {
			t.Errorf("round trip %+v -> %q -> %+v", st, st.Encode(), got)
		}
	}
}

func TestEncodeDropsForeignAux(t *testing.T) {
	st := State{Slug: "widgets", DocPath: "docs/x.md", GameID: "y"}
	enc := st.Encode()
	u := mustURL(t, enc)
	q := u.Query()
	if q.Get("path") != "" || q.Get("id") != "" {
		t.Errorf("Encode leaked aux params: %q", enc)
	}
}

func TestEncodeHomeIsClean(t *testing.T) {
	if got := (State{Slug: "home"}).Encode(); got != "/" {
		t.Errorf("home encodes to %q, want /", got)
	}
	if got := (State{}).Encode(); got != "/" {
		t.Errorf("empty state encodes to %q, want /", got)
	}
}
