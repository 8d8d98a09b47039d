// mcp.go defines types for MCP tool registration by extensions.
//
// Separated from extension.go to isolate MCP-specific concerns. Not all
// extensions need MCP tools - some only provide CLI commands.
//
// Design: "qgate serve" starts with or without a store, so a tool declares
// whether it reads stored batches and reports. The server answers tools with
// NeedsStore set with a "call qgate_init first" error while no store is open,
// and the handler only runs once Context.Service is non-nil. Tools that only
// score posts leave it unset and work against the config alone.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler

	// NeedsStore marks tools that read or write recorded batches.
	NeedsStore bool
}

// MCPHandler processes MCP tool requests. The Context carries the gate
// service (nil without a store unless the tool set NeedsStore) and config.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
