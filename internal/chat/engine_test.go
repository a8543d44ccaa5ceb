package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aisummerdays/mcptour/internal/llm"
)

// scriptedProvider returns canned replies in order and records what it
// was sent.
type scriptedProvider struct {
	replies []string
	calls   [][]llm.Message
	err     error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	p.calls = append(p.calls, messages)
	if p.err != nil {
		return "", p.err
	}
	if len(p.calls) > len(p.replies) {
		return "", fmt.Errorf("no scripted reply for call %d", len(p.calls))
	}
	return p.replies[len(p.calls)-1], nil
}

type fakeSession struct {
	tools      []mcp.Tool
	calledName string
	calledArgs map[string]any
	result     string
	isError    bool
	err        error
}

func (s *fakeSession) Tools() []mcp.Tool { return s.tools }

func (s *fakeSession) CallTool(ctx context.Context, name string, args map[string]any) (string, bool, error) {
	s.calledName = name
	s.calledArgs = args
	return s.result, s.isError, s.err
}

func demoTools() []mcp.Tool {
	return []mcp.Tool{
		{Name: "add", Description: "Add two numbers"},
		{Name: "get_headlines", Description: "Fetch latest headlines"},
	}
}

func TestSystemPromptListsTools(t *testing.T) {
	e := NewEngine(&scriptedProvider{}, &fakeSession{tools: demoTools()})

	prompt := e.SystemPrompt()
	if !strings.Contains(prompt, "- add: Add two numbers") {
		t.Errorf("prompt missing add tool:\n%s", prompt)
	}
	if !strings.Contains(prompt, "TOOL_REQUEST:") {
		t.Errorf("prompt missing tool request convention:\n%s", prompt)
	}
}

func TestProcessDirectAnswer(t *testing.T) {
	p := &scriptedProvider{replies: []string{"The answer is 4."}}
	s := &fakeSession{tools: demoTools()}
	e := NewEngine(p, s)

	got, err := e.Process(context.Background(), "what is 2+2?")
	if err != nil {
		t.Fatal(err)
	}
	if got != "The answer is 4." {
		t.Errorf("got %q", got)
	}
	if s.calledName != "" {
		t.Errorf("no tool should have been called, got %q", s.calledName)
	}
	if len(p.calls) != 1 {
		t.Errorf("provider called %d times, want 1", len(p.calls))
	}
}

func TestProcessToolRound(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		"TOOL_REQUEST: add\nPARAMETERS: a=2, b=3",
		"2 plus 3 is 5.",
	}}
	s := &fakeSession{tools: demoTools(), result: "5"}
	e := NewEngine(p, s)

	got, err := e.Process(context.Background(), "add 2 and 3")
	if err != nil {
		t.Fatal(err)
	}

	if s.calledName != "add" {
		t.Errorf("called tool %q, want add", s.calledName)
	}
	if s.calledArgs["a"] != 2 || s.calledArgs["b"] != 3 {
		t.Errorf("args = %#v", s.calledArgs)
	}
	if !strings.Contains(got, "[Tool: add]\n5") {
		t.Errorf("reply missing tool section:\n%s", got)
	}
	if !strings.Contains(got, "2 plus 3 is 5.") {
		t.Errorf("reply missing final answer:\n%s", got)
	}

	// Follow-up call carries the tool result back to the model.
	if len(p.calls) != 2 {
		t.Fatalf("provider called %d times, want 2", len(p.calls))
	}
	last := p.calls[1][len(p.calls[1])-1]
	if !strings.Contains(last.Content, "result from add: 5") {
		t.Errorf("follow-up message = %q", last.Content)
	}
}

func TestProcessToolNameCaseInsensitive(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		"TOOL_REQUEST: Add\nPARAMETERS: a=1, b=1",
		"It's 2.",
	}}
	s := &fakeSession{tools: demoTools(), result: "2"}
	e := NewEngine(p, s)

	if _, err := e.Process(context.Background(), "1+1"); err != nil {
		t.Fatal(err)
	}
	if s.calledName != "add" {
		t.Errorf("called tool %q, want canonical name add", s.calledName)
	}
}

func TestProcessUnknownTool(t *testing.T) {
	p := &scriptedProvider{replies: []string{"TOOL_REQUEST: subtract\nPARAMETERS: a=1"}}
	s := &fakeSession{tools: demoTools()}
	e := NewEngine(p, s)

	got, err := e.Process(context.Background(), "subtract")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[Unknown tool: subtract]") {
		t.Errorf("got %q", got)
	}
	if s.calledName != "" {
		t.Errorf("no tool should have been called, got %q", s.calledName)
	}
}

func TestProcessToolError(t *testing.T) {
	p := &scriptedProvider{replies: []string{"TOOL_REQUEST: add\nPARAMETERS: a=1, b=2"}}
	s := &fakeSession{tools: demoTools(), err: errors.New("server went away")}
	e := NewEngine(p, s)

	got, err := e.Process(context.Background(), "add")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[Error with tool add]: server went away") {
		t.Errorf("got %q", got)
	}
	// No follow-up call after a failed tool.
	if len(p.calls) != 1 {
		t.Errorf("provider called %d times, want 1", len(p.calls))
	}
}

func TestProcessProviderError(t *testing.T) {
	p := &scriptedProvider{err: errors.New("model offline")}
	e := NewEngine(p, &fakeSession{tools: demoTools()})

	if _, err := e.Process(context.Background(), "hi"); err == nil {
		t.Fatal("expected error from provider")
	}
}

func TestParseToolRequest(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantTool string
		wantOK   bool
	}{
		{
			name:     "well formed",
			reply:    "Let me check.\nTOOL_REQUEST: get_headlines\nPARAMETERS: limit=3",
			wantTool: "get_headlines",
			wantOK:   true,
		},
		{
			name:     "no parameters line",
			reply:    "TOOL_REQUEST: get_headlines",
			wantTool: "get_headlines",
			wantOK:   true,
		},
		{
			name:   "plain answer",
			reply:  "Paris is the capital of France.",
			wantOK: false,
		},
		{
			name:   "marker without name",
			reply:  "TOOL_REQUEST:",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, _, ok := parseToolRequest(tt.reply)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tool != tt.wantTool {
				t.Errorf("tool = %q, want %q", tool, tt.wantTool)
			}
		})
	}
}
