// Package mcp exposes the filter and platform operations as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pantry-ci/src/cellar"
	"pantry-ci/src/filter"
	"pantry-ci/src/logger"
	"pantry-ci/src/pkgspec"
	"pantry-ci/src/platform"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server is the MCP server for pantry-ci.
type Server struct {
	mcpServer *server.MCPServer
	table     *platform.Table
	cellar    cellar.Cellar
	log       logger.Logger
}

// FilterResult is the filter_packages response body.
type FilterResult struct {
	Pkgs []string `json:"pkgs"`
}

// NewServer creates a new MCP server answering from table and c.
func NewServer(table *platform.Table, c cellar.Cellar, log logger.Logger) *Server {
	s := server.NewMCPServer(
		"pantry-ci",
		Version,
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		table:     table,
		cellar:    c,
		log:       log,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	filterTool := mcp.NewTool("filter_packages",
		mcp.WithDescription("Filter package identifiers by installed state in the cellar. By default returns the packages that are NOT installed; with invert=true returns the ones that are."),
		mcp.WithArray("packages",
			mcp.Required(),
			mcp.Description("Package identifiers, e.g. \"deno.land\" or \"ziglang.org@0.11\""),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("invert",
			mcp.Description("Return installed packages instead of missing ones (default: false)"),
		),
	)

	platformTool := mcp.NewTool("resolve_platform",
		mcp.WithDescription("Compute CI job-matrix parameters (os, build-os, container, test-matrix, cache-set) for a platform and the packages to be built."),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Platform descriptor, e.g. \"linux+x86-64\""),
		),
		mcp.WithArray("packages",
			mcp.Description("Package identifiers being built; large packages select a bigger build runner"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	s.mcpServer.AddTool(filterTool, s.handleFilterPackages)
	s.mcpServer.AddTool(platformTool, s.handleResolvePlatform)
}

// Run serves MCP over stdin/stdout until the client disconnects.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleFilterPackages handles the filter_packages tool call.
func (s *Server) handleFilterPackages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetStringSlice("packages", nil)
	invert := request.GetBool("invert", false)

	reqs, err := pkgspec.ParseAll(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	kept, err := filter.Filter(ctx, s.cellar, reqs, invert, s.log)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("filter failed: %v", err)), nil
	}

	jsonBytes, err := json.Marshal(FilterResult{Pkgs: kept})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// handleResolvePlatform handles the resolve_platform tool call.
func (s *Server) handleResolvePlatform(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("platform", "")
	if name == "" {
		return mcp.NewToolResultError("platform parameter is required"), nil
	}

	reqs, err := pkgspec.ParseAll(request.GetStringSlice("packages", nil))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := s.table.Resolve(name, reqs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := rec.Format()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format record: %v", err)), nil
	}

	s.log.Debug("resolved %s for %d packages", name, len(reqs))
	return mcp.NewToolResultText(text), nil
}
