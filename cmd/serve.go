package cmd

import (
	"io"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/jsonout"
)

var serveSSEAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().StringVar(&serveSSEAddr, "sse", "", "serve over SSE on this address instead of stdio (e.g. :8080)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a demo MCP server",
	Long: `Run one of the workshop's demo MCP servers on stdio.

SETUP

  Claude Code:

    claude mcp add mcptour-demo -- mcptour serve demo

  Manual .mcp.json (Claude Code, Windsurf, etc.):

    {
      "mcpServers": {
        "mcptour-demo": {
          "command": "mcptour",
          "args": ["serve", "demo"]
        }
      }
    }

AVAILABLE SERVERS

  demo     Calculator tools: add, compound_interest
  rss      News headlines from an RSS feed: get_headlines
  files    Browse a directory: list_files, read_file

Each server can also be reached through the built-in client:

  mcptour tools list --server demo
  mcptour chat --server rss`,
}

// serveMCP runs s on stdio, or over SSE when --sse was given.
func serveMCP(s *server.MCPServer) error {
	// Suppress all human progress messages — stdout is used by MCP protocol
	jsonout.SetMsgOut(io.Discard)

	if serveSSEAddr != "" {
		return server.NewSSEServer(s).Start(serveSSEAddr)
	}
	return server.ServeStdio(s)
}
