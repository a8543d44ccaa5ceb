// Package demo implements the workshop's calculator MCP server.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates the demo MCP server with its calculator tools.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"mcptour-demo",
		version,
		server.WithToolCapabilities(false),
	)
	registerTools(s)
	return s
}

func registerTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("add",
			mcp.WithDescription("Add two numbers"),
			mcp.WithNumber("a", mcp.Description("First addend"), mcp.Required()),
			mcp.WithNumber("b", mcp.Description("Second addend"), mcp.Required()),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
		),
		handleAdd,
	)

	s.AddTool(
		mcp.NewTool("compound_interest",
			mcp.WithDescription("Calculate compound interest investment returns using A = P(1 + r/n)^(nt). "+
				"Example: compound_interest(5000, 0.06, 12, 13) calculates $5,000 at 6% compounded monthly for 13 years."),
			mcp.WithNumber("principal", mcp.Description("Initial investment amount (P)"), mcp.Required()),
			mcp.WithNumber("annual_rate", mcp.Description("Annual interest rate as decimal (r) - e.g., 0.06 for 6%"), mcp.Required()),
			mcp.WithNumber("compounds_per_year", mcp.Description("Number of times interest compounds per year (n) - e.g., 12 for monthly"), mcp.Required()),
			mcp.WithNumber("years", mcp.Description("Time period in years (t)"), mcp.Required()),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
		),
		handleCompoundInterest,
	)
}

func handleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := req.RequireFloat("a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := req.RequireFloat("b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Integer addition, matching the tool's contract.
	sum := int(a) + int(b)
	return mcp.NewToolResultText(strconv.Itoa(sum)), nil
}

// compoundInterestResult mirrors the value names workshop attendees see
// in the tool output.
type compoundInterestResult struct {
	Principal          float64 `json:"principal"`
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	CompoundsPerYear   int     `json:"compounds_per_year"`
	Years              float64 `json:"years"`
	FinalAmount        float64 `json:"final_amount"`
	InterestEarned     float64 `json:"interest_earned"`
	TotalReturnPercent float64 `json:"total_return_percent"`
}

func handleCompoundInterest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	principal, err := req.RequireFloat("principal")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	annualRate, err := req.RequireFloat("annual_rate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	compounds, err := req.RequireFloat("compounds_per_year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	years, err := req.RequireFloat("years")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n := int(compounds)
	if n <= 0 {
		return mcp.NewToolResultError("compounds_per_year must be a positive integer"), nil
	}
	if principal <= 0 {
		return mcp.NewToolResultError("principal must be positive"), nil
	}

	// A = P(1 + r/n)^(nt)
	finalAmount := principal * math.Pow(1+annualRate/float64(n), float64(n)*years)
	interestEarned := finalAmount - principal

	result := compoundInterestResult{
		Principal:          principal,
		AnnualRatePercent:  annualRate * 100,
		CompoundsPerYear:   n,
		Years:              years,
		FinalAmount:        round2(finalAmount),
		InterestEarned:     round2(interestEarned),
		TotalReturnPercent: round2(interestEarned / principal * 100),
	}
	return jsonResult(result)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// jsonResult marshals v as indented JSON and returns it as MCP text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
