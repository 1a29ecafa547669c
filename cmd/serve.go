package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/pydata-academy/academy/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the course catalog and shell routing as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		courses, err := loadCatalog()
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "academy MCP server started on stdio (courses=%d, url=%s)\n", courses.Len(), cfg.BaseURL())

		srv := mcpserver.NewServer(courses, cfg.BaseURL())
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
