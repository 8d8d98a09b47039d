// tools_platform.go implements the MCP tools that describe platform rules.
// Neither tool needs a store.

package mcp

import (
	"context"

	"github.com/jpl-au/qgate/internal/platform"
	"github.com/mark3labs/mcp-go/mcp"
)

// allPlatforms lists the known platforms followed by the generic fallback.
func allPlatforms() []platform.Platform {
	return append(platform.Known(), platform.Unknown)
}

// listBuckets handles qgate_buckets tool calls.
func (h *handlers) listBuckets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	if getString(req, "platform", "") == "" {
		out := make(map[string][]string)
		for _, p := range allPlatforms() {
			out[p.String()] = platform.BucketLabels(p)
		}
		return jsonResult(out)
	}

	p, err := getPlatform(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"platform": p,
		"buckets":  platform.BucketLabels(p),
	})
}

// listPlatforms handles qgate_platforms tool calls.
func (h *handlers) listPlatforms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	var specs []platform.Spec
	for _, p := range allPlatforms() {
		specs = append(specs, platform.SpecFor(p))
	}
	return jsonResult(specs)
}
