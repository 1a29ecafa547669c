package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pydata-academy/academy/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "PyData Academy course shell",
	Long: `Academy serves the PyData Academy course catalog as an IDE-styled web
shell: a catalog of lesson cards and a lesson view pairing the course video
with a Jupyter notebook. The catalog is also exposed to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
