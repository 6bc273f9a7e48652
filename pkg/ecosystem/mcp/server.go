// Package mcp exposes vouch over the Model Context Protocol so AI
// agents can validate and run scenario documents.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with vouch tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"vouch",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("vouch/validate",
			mcp.WithDescription("Validate a vouch scenario YAML document"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the scenario YAML file")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("vouch/run",
			mcp.WithDescription("Run the scenarios in a vouch YAML document against the registered targets"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the scenario YAML file")),
			mcp.WithBoolean("debug", mcp.Description("Include diagnostic notes in the report")),
		),
		HandleRun,
	)

	s.AddTool(
		mcp.NewTool("vouch/schema",
			mcp.WithDescription("Export the JSON Schema for scenario documents"),
		),
		HandleSchema,
	)

	s.AddTool(
		mcp.NewTool("vouch/targets",
			mcp.WithDescription("List the target names registered with this server"),
		),
		HandleTargets,
	)

	return s
}
