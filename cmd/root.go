package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "streamlab",
	Short: "Manifest-driven content router for the DexNeXuS Streaming Lab",
	Long: `Streamlab serves the DexNeXuS Streaming Lab site: it routes pages from
a JSON manifest, post-processes content fragments with the widget,
overlay and schedule catalogs, and bridges Streamer.bot events to OBS
overlay browser sources.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".streamlab.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
