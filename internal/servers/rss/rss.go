// Package rss implements the workshop's RSS headlines MCP server.
package rss

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aisummerdays/mcptour/internal/feed"
)

const defaultLimit = 5

// Server wraps an MCP server bound to one feed URL.
type Server struct {
	mcp     *server.MCPServer
	feedURL string
}

// NewServer creates the rss MCP server reading from feedURL.
func NewServer(version, feedURL string) *Server {
	srv := &Server{
		mcp: server.NewMCPServer(
			"mcptour-rss",
			version,
			server.WithToolCapabilities(false),
		),
		feedURL: feedURL,
	}

	srv.mcp.AddTool(
		mcp.NewTool("get_headlines",
			mcp.WithDescription("Fetch the latest headlines from the configured news RSS feed"),
			mcp.WithNumber("limit", mcp.Description("Number of feed items to return (default: 5)")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
		),
		srv.handleGetHeadlines,
	)

	return srv
}

// MCP returns the underlying MCP server for serving.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

func (s *Server) handleGetHeadlines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", defaultLimit)

	// Fetch and parse problems come back as readable text, not protocol
	// errors — the model reads these and relays them to the user.
	raw, err := feed.Fetch(ctx, s.feedURL)
	if err != nil {
		return mcp.NewToolResultText("⚠️ Failed to fetch the RSS feed."), nil
	}

	items, err := feed.Parse(raw)
	if err != nil || len(items) == 0 {
		return mcp.NewToolResultText("ℹ️ No entries found in the feed."), nil
	}

	return mcp.NewToolResultText(feed.Format(items, limit)), nil
}
