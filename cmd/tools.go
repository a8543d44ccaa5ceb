package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/aisummerdays/mcptour/internal/chat"
	"github.com/aisummerdays/mcptour/internal/exitcode"
	"github.com/aisummerdays/mcptour/internal/jsonout"
	"github.com/aisummerdays/mcptour/internal/mcpclient"
)

const (
	connectTimeout  = 30 * time.Second
	toolCallTimeout = 2 * time.Minute
)

var toolsServerName string

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.PersistentFlags().StringVar(&toolsServerName, "server", "", "built-in server to spawn (demo, rss, files)")
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
	toolsCallCmd.Flags().StringArrayVar(&toolsCallArgs, "arg", nil, "tool argument as name=value (repeatable)")
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and call tools on an MCP server",
	Long: `Inspect and call tools on an MCP server over stdio.

The server is either one of the built-ins (--server demo|rss|files),
spawned from this binary, or an arbitrary command after "--":

  mcptour tools list --server demo
  mcptour tools list -- python server.py
  mcptour tools call add --arg a=2 --arg b=3 --server demo`,
}

var toolsListCmd = &cobra.Command{
	Use:   "list [-- <server command>]",
	Short: "List the server's tools",
	RunE:  runToolsList,
}

var toolsCallArgs []string

var toolsCallCmd = &cobra.Command{
	Use:   "call <tool> [--arg name=value]... [-- <server command>]",
	Short: "Call one tool and print its result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToolsCall,
}

// serverCommand resolves which server process to spawn: an explicit
// command after "--" wins, otherwise --server picks a built-in re-exec
// of this binary.
func serverCommand(dashArgs []string) (string, []string, error) {
	if len(dashArgs) > 0 {
		return dashArgs[0], dashArgs[1:], nil
	}

	switch toolsServerName {
	case "demo", "rss", "files":
		exe, err := os.Executable()
		if err != nil {
			return "", nil, fmt.Errorf("locating own binary: %w", err)
		}
		return exe, []string{"serve", toolsServerName}, nil
	case "":
		return "", nil, fmt.Errorf("no server specified: use --server demo|rss|files or pass a command after --")
	default:
		return "", nil, fmt.Errorf("unknown built-in server %q (want demo, rss, or files)", toolsServerName)
	}
}

// splitDashArgs separates positional args from the server command after "--".
func splitDashArgs(cmd *cobra.Command, args []string) (positional, dashArgs []string) {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[:at], args[at:]
	}
	return args, nil
}

func connectSession(ctx context.Context, cmd *cobra.Command, args []string) (*mcpclient.Session, []string, error) {
	positional, dashArgs := splitDashArgs(cmd, args)
	command, cmdArgs, err := serverCommand(dashArgs)
	if err != nil {
		return nil, nil, err
	}

	fmt.Fprintf(jsonout.MsgOut(), "Connecting to MCP server: %s %s\n", command, strings.Join(cmdArgs, " "))

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	session, err := mcpclient.Connect(ctx, Version, command, cmdArgs...)
	if err != nil {
		return nil, nil, err
	}
	return session, positional, nil
}

type toolJSON struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	InputSchema mcp.ToolInputSchema `json:"input_schema"`
}

func runToolsList(cmd *cobra.Command, args []string) error {
	session, _, err := connectSession(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	tools := session.Tools()

	if jsonout.Enabled {
		items := make([]toolJSON, 0, len(tools))
		for _, t := range tools {
			items = append(items, toolJSON{
				Name:        t.Name,
				Description: t.Description,
				InputSchema: t.InputSchema,
			})
		}
		return jsonout.Write(items)
	}

	fmt.Printf("Connected to %s with %d tools:\n", session.ServerName(), len(tools))
	for _, t := range tools {
		fmt.Printf("  - %s: %s\n", t.Name, t.Description)
	}
	return nil
}

func runToolsCall(cmd *cobra.Command, args []string) error {
	session, positional, err := connectSession(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	if len(positional) == 0 {
		return fmt.Errorf("tool name is required")
	}
	toolName := positional[0]

	if session.FindTool(toolName) == nil {
		return fmt.Errorf("tool %q not found on %s", toolName, session.ServerName())
	}

	toolArgs, err := parseToolArgs(toolsCallArgs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), toolCallTimeout)
	defer cancel()

	text, isError, err := session.CallTool(ctx, toolName, toolArgs)
	if err != nil {
		return err
	}

	if jsonout.Enabled {
		if werr := jsonout.Write(struct {
			Tool    string `json:"tool"`
			IsError bool   `json:"is_error"`
			Content string `json:"content"`
		}{Tool: toolName, IsError: isError, Content: text}); werr != nil {
			return werr
		}
	} else {
		fmt.Println(text)
	}

	if isError {
		return exitcode.New("tool_error", exitcode.ToolError, fmt.Sprintf("tool %q returned an error", toolName))
	}
	return nil
}

// parseToolArgs converts repeated --arg name=value flags into tool
// arguments, coercing values the same way the chat engine does.
func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, found := strings.Cut(p, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --arg %q (want name=value)", p)
		}
		args[name] = chat.CoerceValue(value)
	}
	return args, nil
}
