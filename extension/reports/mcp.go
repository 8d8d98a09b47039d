// mcp.go declares the qgate_batches MCP tool.

package reports

import (
	"context"
	"io"

	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/ls"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func batchesTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("qgate_batches",
			mcp.WithDescription("List stored batches, newest first"),
			mcp.WithString("platform", mcp.Description("Only batches for this platform")),
			mcp.WithBoolean("deleted", mcp.Description("List removed batches instead")),
		),
		Handler:    listBatches,
		NeedsStore: true,
	}
}

func listBatches(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc := extCtx.Service()

	var opts ls.Options
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		if del, ok := args["deleted"].(bool); ok {
			opts.DeletedOnly = del
		}
	}
	if name, err := req.RequireString("platform"); err == nil && name != "" {
		p, ok := platform.Parse(name)
		if !ok {
			return mcp.NewToolResultError("unknown platform " + name), nil
		}
		opts.Platform = p
	}

	result, err := ls.Run(ctx, io.Discard, svc, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := store.MarshalJSON(result.ToJSON())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
