package server

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewUnavailable builds a degraded server used when the pages manifest
// cannot be loaded at startup: every page route renders a failure screen
// naming the cause, and /healthz reports the degraded state. Static assets
// still serve so the operator can fix the data files in place.
func NewUnavailable(cfg Config, site fs.FS, cause error) *Server {
	s := &Server{cfg: cfg, site: site}
	s.router = s.unavailableRouter(cause)
	return s
}

// failureScreen is rendered for every page route when site data failed to
// load at startup.
var failureScreen = template.Must(template.New("failure").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>DexNeXuS — Streaming Lab</title>
<link rel="stylesheet" href="/assets/css/site.css">
</head>
<body>
<main class="dx-content">
<div class="dx-card">
<h1>Site data failed to load</h1>
<p class="dx-muted">Check <code>assets/data/pages.json</code> and restart, or fix the file and refresh.</p>
<pre>{{.Cause}}</pre>
</div>
</main>
</body>
</html>
`))

func (s *Server) unavailableRouter(cause error) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"cause":  cause.Error(),
		})
	})

	failure := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		failureScreen.Execute(w, struct{ Cause string }{cause.Error()})
	}
	r.Get("/", failure)
	r.Get("/search", failure)
	r.NotFound(failure)

	fileServer := http.FileServer(http.FS(s.site))
	for _, prefix := range staticPrefixes {
		r.Handle(prefix+"*", fileServer)
	}

	return r
}
