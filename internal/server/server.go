// Package server exposes the rendered site over HTTP: the page route with
// its layout, JSON APIs for navigation, search and discovery, the overlay
// bridge WebSocket, and the static asset trees.
package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dexnexus/streamlab/internal/bridge"
	"github.com/dexnexus/streamlab/internal/catalog"
	"github.com/dexnexus/streamlab/internal/controller"
	"github.com/dexnexus/streamlab/internal/manifest"
	"github.com/dexnexus/streamlab/internal/nav"
)

// Config holds server configuration.
type Config struct {
	Addr           string
	BaseURL        string // public base used for canonical links
	AllowedOrigins []string
}

// staticPrefixes are the site subtrees served as-is. Everything else goes
// through the page route.
var staticPrefixes = []string{"/assets/", "/content/", "/widgets/", "/obs/", "/touch-portal/"}

// Server wires the controller, navigation index and bridge behind a router.
type Server struct {
	cfg        Config
	data       *manifest.SiteData
	ctrl       *controller.Controller
	idx        *nav.Index
	store      *catalog.Store
	hub        *bridge.Hub
	site       fs.FS
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over loaded site data. site is the root of the
// static tree (assets/, content/, widgets/, obs/, touch-portal/).
func New(cfg Config, data *manifest.SiteData, ctrl *controller.Controller, store *catalog.Store, hub *bridge.Hub, site fs.FS) *Server {
	s := &Server{
		cfg:   cfg,
		data:  data,
		ctrl:  ctrl,
		idx:   nav.NewIndex(data),
		store: store,
		hub:   hub,
		site:  site,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS: overlays in OBS load from file:// or custom origins, so the
	// default stays permissive.
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handlePage)
	r.Get("/search", s.handleSearchPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/nav", s.handleNav)
		r.Get("/search", s.handleSearch)
		r.Get("/discover", s.handleDiscover)
	})

	if s.hub != nil {
		r.Get("/bridge", s.hub.HandleOverlay)
	}

	fileServer := http.FileServer(http.FS(s.site))
	for _, prefix := range staticPrefixes {
		r.Handle(prefix+"*", fileServer)
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("streamlab listening on %s", s.cfg.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
