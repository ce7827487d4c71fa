package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dexnexus/streamlab/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize streamlab configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure streamlab for your site and generates a .streamlab.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
