package server

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/dexnexus/streamlab/internal/controller"
	"github.com/dexnexus/streamlab/internal/manifest"
)

// layoutData feeds the page shell template.
type layoutData struct {
	Title           string
	MetaTitle       string
	MetaDescription string
	MetaImage       string
	Canonical       string
	Query           string
	Body            template.HTML

	SiteTitle  string
	DesktopNav template.HTML
	NavPanel   template.HTML
	Socials    []manifest.Link
	Year       int
}

var layoutTmpl = template.Must(template.New("layout").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- if .MetaDescription}}
<meta name="description" content="{{.MetaDescription}}">
{{- end}}
<meta property="og:title" content="{{.MetaTitle}}">
{{- if .MetaDescription}}
<meta property="og:description" content="{{.MetaDescription}}">
{{- end}}
{{- if .MetaImage}}
<meta property="og:image" content="{{.MetaImage}}">
{{- end}}
{{- if .Canonical}}
<link rel="canonical" href="{{.Canonical}}">
{{- end}}
<link rel="stylesheet" href="/assets/css/site.css">
<link rel="icon" href="/assets/images/favicon.png">
</head>
<body>
<header class="dx-header">
  <a class="dx-brand" href="/">{{.SiteTitle}}</a>
  <nav class="dx-desktop-nav">{{.DesktopNav}}</nav>
  <form class="dx-search-form" action="/search" method="get">
    <input type="search" name="q" value="{{.Query}}" placeholder="Search pages" aria-label="Search pages">
  </form>
  {{- if .Socials}}
  <ul class="dx-socials">
    {{- range .Socials}}
    <li><a href="{{.Href}}" rel="noopener" target="_blank">{{if .Label}}{{.Label}}{{else}}{{.Href}}{{end}}</a></li>
    {{- end}}
  </ul>
  {{- end}}
</header>
<div class="dx-shell">
  <aside class="dx-nav-panel">{{.NavPanel}}</aside>
  <main id="content" class="dx-content">{{.Body}}</main>
</div>
<footer class="dx-footer">
  <p class="dx-muted">© {{.Year}} DexNeXuS</p>
</footer>
</body>
</html>
`))

// renderLayout fills in the shared shell around a page body and writes it.
func (s *Server) renderLayout(w http.ResponseWriter, status int, d layoutData) {
	d.SiteTitle = controller.SiteTitle
	d.DesktopNav = template.HTML(s.idx.RenderDesktop())
	d.NavPanel = template.HTML(s.idx.RenderPanel(""))
	d.Socials = s.data.Links()
	d.Year = time.Now().Year()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := layoutTmpl.Execute(w, d); err != nil {
		log.Printf("server: rendering layout: %v", err)
	}
}
