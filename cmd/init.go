package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pydata-academy/academy/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize academy configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the shell server and writes the config file (default .academy.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
