package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/fndoc/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server exposing annotation extraction",
	Long: `Start a Model Context Protocol (MCP) server on stdio that lets coding
assistants extract function documentation from project files.

The server provides the fndoc_extract tool:
  path          source file, absolute or relative to the current directory
  tags          optional tag list overriding the configured tags
  continuation  optional multi-line continuation override

Example:
  fndoc mcp`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		projectPath, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		settings, err := loadSettings(projectPath, cmd)
		if err != nil {
			return err
		}

		// stdout belongs to the protocol
		fmt.Fprintf(os.Stderr, "fndoc MCP Server\n")
		fmt.Fprintf(os.Stderr, "Project Root: %s\n\n", filepath.Clean(projectPath))

		server, err := mcp.NewMCPServer(mcp.ServerConfig{
			RootDir:     projectPath,
			Annotations: settings.config.ToAnnotationConfig(),
			CacheSize:   settings.config.Scan.CacheSize,
			Version:     Version,
		})
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		defer server.Close()

		ctx, cancel := signalContext()
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
