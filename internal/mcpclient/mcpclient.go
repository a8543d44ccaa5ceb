// Package mcpclient wraps the mcp-go stdio client in a session type the
// rest of the CLI works with: spawn a server command, initialize, list
// tools, call tools, close.
package mcpclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Session is an initialized MCP session over a spawned stdio server.
type Session struct {
	client     *client.Client
	serverInfo mcp.Implementation
	tools      []mcp.Tool
}

// Connect spawns command with args (inheriting the current environment),
// initializes the MCP session, and fetches the server's tool inventory.
func Connect(ctx context.Context, version, command string, args ...string) (*Session, error) {
	c, err := client.NewStdioMCPClient(command, os.Environ(), args...)
	if err != nil {
		return nil, fmt.Errorf("connecting to MCP server %q: %w", command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "mcptour",
		Version: version,
	}

	initRes, err := c.Initialize(ctx, initReq)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("connecting to MCP server %q: initialize: %w", command, err)
	}

	toolsRes, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("connecting to MCP server %q: listing tools: %w", command, err)
	}

	return &Session{
		client:     c,
		serverInfo: initRes.ServerInfo,
		tools:      toolsRes.Tools,
	}, nil
}

// ServerName returns the name the server reported during initialize.
func (s *Session) ServerName() string {
	return s.serverInfo.Name
}

// Tools returns the server's tool inventory as fetched at connect time.
func (s *Session) Tools() []mcp.Tool {
	return s.tools
}

// FindTool returns the tool with the given name (case-insensitive), or nil.
func (s *Session) FindTool(name string) *mcp.Tool {
	for i := range s.tools {
		if strings.EqualFold(s.tools[i].Name, name) {
			return &s.tools[i]
		}
	}
	return nil
}

// CallTool invokes a tool and returns its text content. isError reports
// a tool-level failure (the call itself succeeded at the protocol level).
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (text string, isError bool, err error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", false, fmt.Errorf("calling tool %q: %w", name, err)
	}

	var parts []string
	for _, c := range res.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n"), res.IsError, nil
}

// Close shuts down the session and the spawned server process.
func (s *Session) Close() error {
	return s.client.Close()
}
