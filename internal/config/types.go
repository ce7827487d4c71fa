package config

// Config is the top-level streamlab configuration, corresponding to
// .streamlab.yml.
type Config struct {
	Host    string `yaml:"host" koanf:"host"`
	Port    int    `yaml:"port" koanf:"port"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`

	// SiteDir is the root of the static site tree (content/, assets/,
	// widgets/, obs/, touch-portal/). DataDir holds the JSON data files,
	// relative to SiteDir.
	SiteDir string `yaml:"site_dir" koanf:"site_dir"`
	DataDir string `yaml:"data_dir" koanf:"data_dir"`

	AllowedOrigins []string     `yaml:"allowed_origins" koanf:"allowed_origins"`
	Bridge         BridgeConfig `yaml:"bridge" koanf:"bridge"`
	Build          BuildConfig  `yaml:"build" koanf:"build"`
}

// BridgeConfig wires the OBS overlay bridge to the local automation tool.
// An empty URL disables the bridge.
type BridgeConfig struct {
	UpstreamURL      string `yaml:"upstream_url" koanf:"upstream_url"`
	OverlayID        string `yaml:"overlay_id" koanf:"overlay_id"`
	ReceiverActionID string `yaml:"receiver_action_id" koanf:"receiver_action_id"`
}

// BuildConfig controls the manifest builder.
type BuildConfig struct {
	ContentDir string   `yaml:"content_dir" koanf:"content_dir"`
	ImageDirs  []string `yaml:"image_dirs" koanf:"image_dirs"`
	Include    []string `yaml:"include" koanf:"include"`
	Exclude    []string `yaml:"exclude" koanf:"exclude"`
}
