package site

import (
	"strconv"
	"strings"

	"github.com/dexnexus/streamlab/internal/manifest"
)

// Fragments may open with a metadata comment:
//
//	<!--page
//	title: OBS Setup
//	description: Scene and source setup
//	group: Streaming
//	order: 20
//	tags: obs, setup
//	hidden: true
//	card: obs-card.png
//	-->
//
// Every key is optional. Missing titles fall back to the first heading in
// the fragment, then to the slug.
const (
	metaOpen  = "<!--page"
	metaClose = "-->"
)

// pageFromFragment derives a manifest entry from one fragment's source.
func pageFromFragment(relPath, src string) manifest.Page {
	pg := manifest.Page{Slug: slugFromPath(relPath)}

	for key, value := range parseMetaHeader(src) {
		switch key {
		case "title":
			pg.Title = value
		case "description":
			pg.Description = value
		case "group":
			pg.Group = value
		case "order":
			if n, err := strconv.Atoi(value); err == nil {
				pg.Order = &n
			}
		case "tags":
			for _, tag := range strings.Split(value, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					pg.Tags = append(pg.Tags, tag)
				}
			}
		case "hidden":
			pg.HideFromNav = value == "true" || value == "yes"
		case "card":
			pg.CardImage = value
		}
	}

	if pg.Title == "" {
		pg.Title = firstHeading(src)
	}
	if pg.Title == "" {
		pg.Title = titleize(pg.Slug)
	}
	return pg
}

// parseMetaHeader returns the key/value lines of the leading metadata
// comment, or nil when the fragment has none.
func parseMetaHeader(src string) map[string]string {
	trimmed := strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(trimmed, metaOpen) {
		return nil
	}
	body := trimmed[len(metaOpen):]
	end := strings.Index(body, metaClose)
	if end < 0 {
		return nil
	}

	fields := make(map[string]string)
	for _, line := range strings.Split(body[:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			fields[key] = value
		}
	}
	return fields
}

// firstHeading extracts the text of the first h1 or h2 in the fragment.
func firstHeading(src string) string {
	lower := strings.ToLower(src)
	for _, tag := range []string{"h1", "h2"} {
		open := strings.Index(lower, "<"+tag)
		if open < 0 {
			continue
		}
		start := strings.Index(lower[open:], ">")
		if start < 0 {
			continue
		}
		start += open + 1
		end := strings.Index(lower[start:], "</"+tag+">")
		if end < 0 {
			continue
		}
		text := stripTags(src[start : start+end])
		if text != "" {
			return text
		}
	}
	return ""
}

// stripTags drops any nested markup inside a heading.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// titleize turns a slug like "html-widgets" into "Html Widgets".
func titleize(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
