package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/hexagram/internal/oracle/seed"
	"github.com/louisbranch/hexagram/internal/platform/timeouts"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

// ThrowToolName is the MCP name of the throw tool.
const ThrowToolName = "throw_hexagram"

// Thrower casts readings, usually through the oracle gRPC client.
type Thrower interface {
	Throw(ctx context.Context, req app.Request) (app.Reading, error)
}

// ThrowInput represents the MCP tool input for a throw.
type ThrowInput struct {
	Prompt string `json:"prompt" jsonschema:"the question to ask; an empty question is allowed"`
	AsOf   string `json:"asof,omitempty" jsonschema:"calendar date as YYYY-MM-DD; defaults to today"`
}

// FigureResult identifies a hexagram in the King Wen sequence.
type FigureResult struct {
	Number int    `json:"number" jsonschema:"King Wen number from 1 to 64"`
	Name   string `json:"name" jsonschema:"English name of the hexagram"`
}

// ThrowResult represents the MCP tool output for a throw.
type ThrowResult struct {
	Prompt   string        `json:"prompt" jsonschema:"question that was asked"`
	AsOf     string        `json:"asof" jsonschema:"date the reading is for"`
	Version  int           `json:"version" jsonschema:"seed derivation version"`
	Seed     string        `json:"seed" jsonschema:"hex encoded seed"`
	Text     string        `json:"text" jsonschema:"six lines, bottom line first"`
	Lines    []int         `json:"lines" jsonschema:"line codes 6, 7, 8 or 9, bottom line first"`
	Primary  FigureResult  `json:"primary" jsonschema:"hexagram as cast"`
	Relating *FigureResult `json:"relating,omitempty" jsonschema:"hexagram after changing lines move, if any"`
}

// ThrowTool defines the MCP tool schema for a throw.
func ThrowTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ThrowToolName,
		Description: "Casts an I Ching hexagram for a question on a given day. The same question and day always give the same reading.",
	}
}

// ThrowHandler executes a throw. now supplies the default date and falls
// back to time.Now.
func ThrowHandler(thrower Thrower, now func() time.Time) mcp.ToolHandlerFor[ThrowInput, ThrowResult] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ThrowInput) (*mcp.CallToolResult, ThrowResult, error) {
		if thrower == nil {
			return nil, ThrowResult{}, fmt.Errorf("oracle is not configured")
		}
		asof := strings.TrimSpace(input.AsOf)
		if asof == "" {
			asof = seed.FormatDate(civil.DateOf(now()))
		}

		callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
		defer cancel()

		reading, err := thrower.Throw(callCtx, app.Request{Prompt: input.Prompt, PromptSet: true, AsOf: asof})
		if err != nil {
			return nil, ThrowResult{}, fmt.Errorf("throw hexagram: %w", err)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: reading.Text}},
		}, ThrowResultFromReading(reading), nil
	}
}

// ThrowResultFromReading maps a reading onto the tool output.
func ThrowResultFromReading(reading app.Reading) ThrowResult {
	result := ThrowResult{
		Prompt:  reading.Prompt,
		AsOf:    seed.FormatDate(reading.AsOf),
		Version: reading.Version,
		Seed:    reading.Seed.String(),
		Text:    reading.Text,
		Lines:   reading.Hexagram.Codes(),
		Primary: FigureResult{Number: reading.Primary.Number, Name: reading.Primary.Name},
	}
	if reading.Relating != nil {
		result.Relating = &FigureResult{Number: reading.Relating.Number, Name: reading.Relating.Name}
	}
	return result
}
