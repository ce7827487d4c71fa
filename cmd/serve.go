package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dexnexus/streamlab/internal/bridge"
	"github.com/dexnexus/streamlab/internal/catalog"
	"github.com/dexnexus/streamlab/internal/config"
	"github.com/dexnexus/streamlab/internal/content"
	"github.com/dexnexus/streamlab/internal/controller"
	"github.com/dexnexus/streamlab/internal/manifest"
	"github.com/dexnexus/streamlab/internal/render"
	"github.com/dexnexus/streamlab/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site",
	Long:  `Loads the pages manifest and data catalogs, then serves the routed site, the JSON APIs and the overlay bridge over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if serveAddr != "" {
			host, port, ok := strings.Cut(serveAddr, ":")
			if !ok {
				return fmt.Errorf("invalid --addr %q, want host:port", serveAddr)
			}
			cfg.Host = host
			if _, err := fmt.Sscanf(port, "%d", &cfg.Port); err != nil {
				return fmt.Errorf("invalid --addr port %q", port)
			}
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		site := os.DirFS(cfg.SiteDir)
		dataFS, err := fs.Sub(site, cfg.DataDir)
		if err != nil {
			return fmt.Errorf("resolving data dir %s: %w", cfg.DataDir, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://" + cfg.Addr() + "/"
		}

		// The pages manifest is the one hard dependency; the catalogs are
		// read lazily per render. A broken manifest still serves, degraded,
		// so the operator can fix the data files in place.
		data, err := manifest.Load(ctx, manifest.DirSource{FS: dataFS})
		if err != nil {
			fmt.Fprintf(os.Stderr, "streamlab v%s starting degraded on %s: %v\n", Version, cfg.Addr(), err)
			srv := server.NewUnavailable(server.Config{
				Addr:           cfg.Addr(),
				BaseURL:        baseURL,
				AllowedOrigins: cfg.AllowedOrigins,
			}, site, err)
			go func() {
				<-ctx.Done()
				srv.Shutdown(context.Background())
			}()
			if err := srv.Start(); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		}

		store := catalog.NewStore(dataFS)
		cache := content.NewCache(content.DirFetcher{FS: site})
		proc := render.New(data, store, site, baseURL)
		ctrl := controller.New(data, cache, proc)

		hub := bridge.NewHub(bridge.Config{
			UpstreamURL:      cfg.Bridge.UpstreamURL,
			OverlayID:        cfg.Bridge.OverlayID,
			ReceiverActionID: cfg.Bridge.ReceiverActionID,
		})
		if hub.Enabled() {
			go hub.Run(ctx)
		}

		srv := server.New(server.Config{
			Addr:           cfg.Addr(),
			BaseURL:        baseURL,
			AllowedOrigins: cfg.AllowedOrigins,
		}, data, ctrl, store, hub, site)

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "streamlab v%s serving %s on %s\n", Version, cfg.SiteDir, cfg.Addr())
		fmt.Fprintf(os.Stderr, "  Pages: %d\n", len(data.Pages()))
		if hub.Enabled() {
			fmt.Fprintf(os.Stderr, "  Bridge: %s\n", cfg.Bridge.UpstreamURL)
		}

		if err := srv.Start(); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address override (host:port)")
	rootCmd.AddCommand(serveCmd)
}
