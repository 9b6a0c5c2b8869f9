package cmd

import (
	"bundlecheck/internal/mcp"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var bundleRoot string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation engine as an MCP server over stdio",
		Long: `Serve exposes bundle validation as MCP tools over stdio, so AI
assistants can validate bundles, list resolved components, and expand
placeholder strings programmatically.

Tools: validate_bundle, list_components, expand_string. The server runs
until the client closes the connection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			initLogging()
			server := mcp.NewServer(rootCmd.Version, bundleRoot)
			return server.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&bundleRoot, "bundle-root", "", "Default bundle for tool calls that omit a path")

	return cmd
}
