// Package mcp exposes the validation engine as an MCP stdio server.
//
// The serve mode registers three tools: validate_bundle runs the full
// pipeline and returns the report, list_components returns the resolved
// component set, and expand_string runs the placeholder engine over a
// single value. Concurrent identical validate_bundle calls are deduplicated
// with singleflight, since validation is a pure read of static input.
package mcp

import (
	"context"

	"bundlecheck/internal/template"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/singleflight"
)

const subsystem = "MCP"

// Server wraps the validation engine as an MCP server over stdio.
type Server struct {
	mcpServer   *server.MCPServer
	engine      *template.Engine
	defaultRoot string
	validations singleflight.Group
}

// NewServer creates the serve-mode MCP server. defaultRoot, when non-empty,
// is the bundle used by tool calls that omit a path.
func NewServer(version, defaultRoot string) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"bundlecheck",
			version,
			server.WithToolCapabilities(false),
		),
		engine:      template.New(),
		defaultRoot: defaultRoot,
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdio and blocks until the client closes the
// connection.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.mcpServer)
}

// registerTools registers the validation tool surface.
func (s *Server) registerTools() {
	validateTool := mcp.NewTool("validate_bundle",
		mcp.WithDescription("Validate an extension bundle and return the findings report as JSON"),
		mcp.WithString("path",
			mcp.Description("Bundle root directory (defaults to the configured bundle root)"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Treat warnings as errors when judging validity"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateBundle)

	listTool := mcp.NewTool("list_components",
		mcp.WithDescription("Resolve a bundle's components and return them as JSON"),
		mcp.WithString("path",
			mcp.Description("Bundle root directory (defaults to the configured bundle root)"),
		),
	)
	s.mcpServer.AddTool(listTool, s.handleListComponents)

	expandTool := mcp.NewTool("expand_string",
		mcp.WithDescription("Expand ${NAME} and ${NAME:-default} placeholders in a value"),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("The string to expand"),
		),
		mcp.WithObject("vars",
			mcp.Description("Lookup values; names not present here fall back to the process environment"),
		),
	)
	s.mcpServer.AddTool(expandTool, s.handleExpandString)
}
