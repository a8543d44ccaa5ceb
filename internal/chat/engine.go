// Package chat connects a chat-completion provider with an MCP session.
//
// Tool use is prompt-driven rather than native: the system prompt lists
// the server's tools and asks the model to reply with a TOOL_REQUEST
// line when it needs one. That keeps the loop identical across backends,
// including small local models without function-calling support.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aisummerdays/mcptour/internal/llm"
)

// ToolCaller is the slice of an MCP session the engine needs.
type ToolCaller interface {
	Tools() []mcp.Tool
	CallTool(ctx context.Context, name string, args map[string]any) (text string, isError bool, err error)
}

// Engine processes user queries against one provider and one MCP server.
type Engine struct {
	provider llm.Provider
	session  ToolCaller
}

func NewEngine(p llm.Provider, s ToolCaller) *Engine {
	return &Engine{provider: p, session: s}
}

// SystemPrompt returns the instruction message advertising the server's
// tools and the TOOL_REQUEST reply convention.
func (e *Engine) SystemPrompt() string {
	var tools []string
	for _, t := range e.session.Tools() {
		tools = append(tools, fmt.Sprintf("- %s: %s", t.Name, t.Description))
	}

	return fmt.Sprintf(`You are a helpful assistant that helps users with queries.
You have access to the following tools:
%s

If you need to use any of these tools to answer the user's question, please respond with:
TOOL_REQUEST: <tool_name>
PARAMETERS: <name=value pairs separated by commas>

Otherwise, provide a direct answer to the user's question.`, strings.Join(tools, "\n"))
}

// Process answers a single user query. If the model requests a tool, the
// tool is called and the model is asked once more for a final answer
// with the result in hand. One tool round per query.
func (e *Engine) Process(ctx context.Context, query string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: e.SystemPrompt()},
		{Role: llm.RoleUser, Content: query},
	}

	reply, err := e.provider.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	toolName, params, ok := parseToolRequest(reply)
	if !ok {
		return reply, nil
	}

	sections := []string{reply}

	tool := e.findTool(toolName)
	if tool == "" {
		sections = append(sections, fmt.Sprintf("[Unknown tool: %s]", toolName))
		return strings.Join(sections, "\n"), nil
	}

	result, isErr, err := e.session.CallTool(ctx, tool, params)
	if err != nil || isErr {
		detail := result
		if err != nil {
			detail = err.Error()
		}
		sections = append(sections, fmt.Sprintf("[Error with tool %s]: %s", tool, detail))
		return strings.Join(sections, "\n"), nil
	}

	sections = append(sections, fmt.Sprintf("[Tool: %s]\n%s", tool, result))

	messages = append(messages,
		llm.Message{Role: llm.RoleAssistant, Content: reply},
		llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf(
			"Here's the result from %s: %s. Please provide a final answer based on this information.",
			tool, result)},
	)

	final, err := e.provider.Chat(ctx, messages)
	if err != nil {
		return strings.Join(sections, "\n"), nil
	}
	sections = append(sections, final)

	return strings.Join(sections, "\n"), nil
}

// findTool resolves a requested tool name against the inventory,
// case-insensitively. Returns the canonical name or "".
func (e *Engine) findTool(name string) string {
	for _, t := range e.session.Tools() {
		if strings.EqualFold(t.Name, name) {
			return t.Name
		}
	}
	return ""
}

// parseToolRequest scans a model reply for the TOOL_REQUEST convention.
func parseToolRequest(reply string) (tool string, params map[string]any, ok bool) {
	if !strings.Contains(reply, "TOOL_REQUEST:") {
		return "", nil, false
	}

	params = map[string]any{}
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if rest, found := strings.CutPrefix(line, "TOOL_REQUEST:"); found {
			tool = strings.TrimSpace(rest)
		} else if rest, found := strings.CutPrefix(line, "PARAMETERS:"); found {
			params = ParseParams(rest)
		}
	}

	if tool == "" {
		return "", nil, false
	}
	return tool, params, true
}
