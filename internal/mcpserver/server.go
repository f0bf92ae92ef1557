// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes sbomgrader's grade and convert operations as MCP tools
// over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sbomgrader/sbomgrader"
)

const serverInstructions = `sbomgrader MCP server — grades SBOM documents against a cookbook and converts them between SPDX and CycloneDX.

Configuration: all defaults are configurable via SBOMGRADER_* environment variables set in your MCP client config.

Key settings:
- SBOMGRADER_CACHE_TTL (default: 15m) — cache TTL for decoded documents
- SBOMGRADER_CACHE_ENABLED (default: true) — disable document caching entirely
- SBOMGRADER_MAX_INLINE_SIZE (default: 10MiB) — maximum inline content size
- SBOMGRADER_DEFAULT_COOKBOOK (default: "default") — cookbook used when grade omits one
- SBOMGRADER_DEFAULT_PASSING (default: "C") — passing grade threshold used when grade omits one

Caching: decoded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "sbomgrader", Version: sbomgrader.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "grade",
		Description: "Grade an SBOM document (SPDX or CycloneDX) against a named cookbook, or a bundle of cookbooks. Returns the letter grade (A-F), per-tier rule results, and a markdown report. Use passing to also get a pass/fail verdict against a minimum grade. Default cookbook and passing grade are configurable via SBOMGRADER_DEFAULT_COOKBOOK and SBOMGRADER_DEFAULT_PASSING env vars.",
	}, handleGrade)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an SBOM document between SPDX and CycloneDX using a named translation map. Returns the converted document with its source and target formats; a chunk that fails to translate fails the whole call. Use output to write to a file instead of returning inline.",
	}, handleConvert)
}

// sanitizeError strips absolute filesystem paths from error messages to
// prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
