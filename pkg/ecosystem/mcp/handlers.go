package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/runner"
	"github.com/vouchlabs/vouch/pkg/schema"
	"github.com/vouchlabs/vouch/pkg/target"
)

// HandleValidate implements the vouch/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	doc, errs := schema.ValidateFile(path)
	if hasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}
	return textResult(fmt.Sprintf("✓ %s is valid (%d scenarios)", doc.Name, len(doc.Scenarios))), nil
}

// HandleRun implements the vouch/run MCP tool.
func HandleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}
	debug, _ := args["debug"].(bool)

	doc, errs := schema.ValidateFile(path)
	if hasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}

	name, scenarios, err := schema.Resolve(doc, target.Default())
	if err != nil {
		return errorResult(fmt.Sprintf("resolve: %s", err)), nil
	}

	rec := report.NewRecorder()
	b := &runner.Batch{Name: name, Reporter: rec, Debug: debug}
	if err := b.Declare(scenarios); err != nil {
		return errorResult(fmt.Sprintf("run: %s", err)), nil
	}

	summary := rec.Summarize()
	response := map[string]any{
		"batch":   name,
		"summary": summary,
		"groups":  rec.Groups(),
	}
	data, _ := json.MarshalIndent(response, "", "  ")

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: !summary.AllPassed(),
	}, nil
}

// HandleSchema implements the vouch/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := schema.GenerateJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// HandleTargets implements the vouch/targets MCP tool.
func HandleTargets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := target.Default().Targets()
	if len(names) == 0 {
		return textResult("no targets registered"), nil
	}
	return textResult(strings.Join(names, "\n")), nil
}

func hasErrors(errs []*schema.ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}

func formatErrors(errs []*schema.ValidationError) string {
	var msgs []string
	for _, e := range errs {
		if e.Severity == "error" {
			msgs = append(msgs, fmt.Sprintf("[%s] %s", e.Phase, e.Message))
		}
	}
	return strings.Join(msgs, "; ")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
