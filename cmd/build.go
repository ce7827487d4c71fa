package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dexnexus/streamlab/internal/config"
	"github.com/dexnexus/streamlab/internal/progress"
	"github.com/dexnexus/streamlab/internal/site"
)

var (
	buildInclude []string
	buildExclude []string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate the pages manifest and image map",
	Long: `Scans the content tree for page fragments, reads their metadata
headers, and writes pages.json and image-map.json into the data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		include := cfg.Build.Include
		if len(buildInclude) > 0 {
			include = buildInclude
		}
		exclude := cfg.Build.Exclude
		if len(buildExclude) > 0 {
			exclude = buildExclude
		}

		b := &site.Builder{
			Root:       cfg.SiteDir,
			ContentDir: cfg.Build.ContentDir,
			DataDir:    cfg.DataDir,
			ImageDirs:  cfg.Build.ImageDirs,
			Include:    include,
			Exclude:    exclude,
			Reporter:   progress.NewReporter(),
		}

		res, err := b.Build()
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Wrote %d pages and %d images to %s\n", res.Pages, res.Images, cfg.DataDir)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringSliceVar(&buildInclude, "include", nil, "fragment include globs (overrides config)")
	buildCmd.Flags().StringSliceVar(&buildExclude, "exclude", nil, "fragment exclude globs (overrides config)")
	rootCmd.AddCommand(buildCmd)
}
