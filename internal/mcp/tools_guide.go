// tools_guide.go implements the MCP tool for accessing help content.

package mcp

import (
	"context"

	"github.com/jpl-au/qgate/guide"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles qgate_guide tool calls.
func (h *handlers) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:qgate_guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if err != nil {
		// Unknown topic: hand back the grouped index so the caller can retry
		return jsonResult(map[string]any{
			"error":  err.Error(),
			"groups": guide.Groups(),
		})
	}

	return mcp.NewToolResultText(content), nil
}
