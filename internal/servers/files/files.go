// Package files implements the workshop's file browsing MCP server,
// rooted at a single directory the server may not escape.
package files

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Files larger than this are refused rather than dumped into the model
// context.
const maxReadSize = 1 << 20

// Server wraps an MCP server rooted at one directory.
type Server struct {
	mcp  *server.MCPServer
	root string
}

// NewServer creates the files MCP server rooted at root.
func NewServer(version, root string) (*Server, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}

	srv := &Server{
		mcp: server.NewMCPServer(
			"mcptour-files",
			version,
			server.WithToolCapabilities(false),
		),
		root: abs,
	}

	srv.mcp.AddTool(
		mcp.NewTool("list_files",
			mcp.WithDescription("List files under the server root matching a glob pattern (** matches across directories)"),
			mcp.WithString("pattern", mcp.Description(`Glob pattern relative to the root (default: "**/*")`)),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
		),
		srv.handleListFiles,
	)

	srv.mcp.AddTool(
		mcp.NewTool("read_file",
			mcp.WithDescription("Read a text file under the server root"),
			mcp.WithString("path", mcp.Description("File path relative to the root"), mcp.Required()),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
		),
		srv.handleReadFile,
	)

	return srv, nil
}

// MCP returns the underlying MCP server for serving.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

func (s *Server) handleListFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := req.GetString("pattern", "**/*")

	matches, err := doublestar.Glob(os.DirFS(s.root), pattern)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid pattern %q: %v", pattern, err)), nil
	}

	files := []string{}
	for _, rel := range matches {
		info, err := os.Stat(filepath.Join(s.root, rel))
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, rel)
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleReadFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rel, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	abs, err := s.resolve(rel)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("file %q not found", rel)), nil
	}
	if info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("%q is a directory", rel)), nil
	}
	if info.Size() > maxReadSize {
		return mcp.NewToolResultError(fmt.Sprintf("file %q is too large (%d bytes)", rel, info.Size())), nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %q: %v", rel, err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// resolve joins rel onto the root and rejects anything that escapes it.
func (s *Server) resolve(rel string) (string, error) {
	abs := filepath.Clean(filepath.Join(s.root, rel))
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the server root", rel)
	}
	return abs, nil
}
