package demo

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(res.Content))
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatal("expected TextContent")
	}
	return tc.Text
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer("0.0.0")

	tools := s.ListTools()
	for _, name := range []string{"add", "compound_interest"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %q not registered", name)
		}
	}
}

func TestHandleAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want string
	}{
		{"integers", 2, 3, "5"},
		{"floats truncate", 2.9, 3.9, "5"},
		{"negative", -4, 2, "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := handleAdd(context.Background(), callReq("add", map[string]any{"a": tt.a, "b": tt.b}))
			if err != nil {
				t.Fatal(err)
			}
			if res.IsError {
				t.Fatalf("unexpected tool error: %s", textOf(t, res))
			}
			if got := textOf(t, res); got != tt.want {
				t.Errorf("add = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleAddMissingArgument(t *testing.T) {
	res, err := handleAdd(context.Background(), callReq("add", map[string]any{"a": 2}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("missing argument should be a tool error")
	}
}

func TestHandleCompoundInterest(t *testing.T) {
	args := map[string]any{
		"principal":          5000.0,
		"annual_rate":        0.06,
		"compounds_per_year": 12,
		"years":              13.0,
	}

	res, err := handleCompoundInterest(context.Background(), callReq("compound_interest", args))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, res))
	}

	var got compoundInterestResult
	if err := json.Unmarshal([]byte(textOf(t, res)), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	// $5,000 at 6% compounded monthly for 13 years.
	if got.FinalAmount != 10886.18 {
		t.Errorf("final_amount = %v, want 10886.18", got.FinalAmount)
	}
	if got.InterestEarned != 5886.18 {
		t.Errorf("interest_earned = %v, want 5886.18", got.InterestEarned)
	}
	if got.TotalReturnPercent != 117.72 {
		t.Errorf("total_return_percent = %v, want 117.72", got.TotalReturnPercent)
	}
	if got.AnnualRatePercent != 6 {
		t.Errorf("annual_rate_percent = %v, want 6", got.AnnualRatePercent)
	}
	if got.CompoundsPerYear != 12 {
		t.Errorf("compounds_per_year = %v, want 12", got.CompoundsPerYear)
	}
}

func TestHandleCompoundInterestValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{
			name: "zero compounds",
			args: map[string]any{"principal": 1000.0, "annual_rate": 0.05, "compounds_per_year": 0, "years": 1.0},
		},
		{
			name: "negative principal",
			args: map[string]any{"principal": -1.0, "annual_rate": 0.05, "compounds_per_year": 12, "years": 1.0},
		},
		{
			name: "missing rate",
			args: map[string]any{"principal": 1000.0, "compounds_per_year": 12, "years": 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := handleCompoundInterest(context.Background(), callReq("compound_interest", tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if !res.IsError {
				t.Error("expected a tool error")
			}
		})
	}
}
