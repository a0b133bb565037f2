package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Starts a Model Context Protocol server exposing recommend, ingest
and remove_document tools to AI assistants.

By default the server speaks over stdio, for use with MCP clients such
as Claude Desktop:

  {
    "mcpServers": {
      "matcha": {
        "command": "matcha",
        "args": ["mcp"]
      }
    }
  }

With --port the server listens on HTTP using the streamable transport.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVar(&mcpPort, "port", 0, "serve over HTTP on this port instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Recommend: recommendService,
		Ingest:    ingestService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
