package config

// DefaultExcludes are glob patterns the manifest builder skips by default.
var DefaultExcludes = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/*.bak",
	"**/*.tmp",
	"**/.DS_Store",
}

// DefaultConfig returns a Config with sensible defaults. The site tree is
// expected alongside the binary; override site_dir when serving elsewhere.
func DefaultConfig() *Config {
	return &Config{
		Host:           "127.0.0.1",
		Port:           8787,
		SiteDir:        ".",
		DataDir:        "assets/data",
		AllowedOrigins: []string{"*"},
		Bridge: BridgeConfig{
			OverlayID: "overlay",
		},
		Build: BuildConfig{
			ContentDir: "content",
			ImageDirs:  []string{"assets/images", "assets/images/page-images"},
			Include:    []string{"**/*.html"},
			Exclude:    DefaultExcludes,
		},
	}
}
