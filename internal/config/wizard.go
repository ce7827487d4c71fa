package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// siteMarkers are files that identify a directory as a streamlab site tree.
var siteMarkers = []string{
	"assets/data/pages.json",
	"assets/data/widgets.json",
	"content",
}

// detectSiteDir reports whether the current directory looks like a site tree.
func detectSiteDir() bool {
	for _, marker := range siteMarkers {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}
	return false
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .streamlab.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to streamlab! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	if detectSiteDir() {
		fmt.Println("Detected a site tree in the current directory.")
		fmt.Println()
	}

	// 1. Site directory.
	sitePrompt := promptui.Prompt{
		Label:   "Site directory (root of content/, assets/, widgets/)",
		Default: cfg.SiteDir,
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir

	// 2. Image directories feeding the image map.
	imagesPrompt := promptui.Prompt{
		Label:   "Image directories (comma-separated, relative to the site dir)",
		Default: strings.Join(cfg.Build.ImageDirs, ", "),
	}
	imagesStr, err := imagesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("image dirs: %w", err)
	}
	if dirs := splitAndTrim(imagesStr); len(dirs) > 0 {
		cfg.Build.ImageDirs = dirs
	}

	// 3. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "Listen port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 4. Public base URL used when rewriting copyable links.
	basePrompt := promptui.Prompt{
		Label:   "Public base URL (blank to derive from the listen address)",
		Default: cfg.BaseURL,
	}
	baseURL, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.BaseURL = strings.TrimSpace(baseURL)

	// 5. Streamer.bot bridge.
	bridgePrompt := promptui.Select{
		Label: "Connect the OBS overlay bridge to Streamer.bot?",
		Items: []string{"no", "yes"},
	}
	bridgeIdx, _, err := bridgePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("bridge selection: %w", err)
	}
	if bridgeIdx == 1 {
		upstreamPrompt := promptui.Prompt{
			Label:   "Streamer.bot WebSocket URL",
			Default: "ws://127.0.0.1:8080/",
		}
		upstream, err := upstreamPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("bridge upstream: %w", err)
		}
		cfg.Bridge.UpstreamURL = strings.TrimSpace(upstream)

		actionPrompt := promptui.Prompt{
			Label:   "Receiver action id (blank to skip)",
			Default: "",
		}
		action, err := actionPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("receiver action: %w", err)
		}
		cfg.Bridge.ReceiverActionID = strings.TrimSpace(action)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Save to .streamlab.yml.
	configPath := ".streamlab.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
