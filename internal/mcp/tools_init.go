// tools_init.go implements the MCP tool for initialising a new store.
//
// This tool works without an existing store. Once it succeeds, checks are
// recorded and the report tools become available.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/qgate/internal/gate"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initStore handles qgate_init tool calls.
func (h *handlers) initStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	if h.svc != nil {
		return mcp.NewToolResultError("store already initialised"), nil
	}

	local := getBool(req, "local", false)

	err := gate.Init(false, h.db, local, "")

	log.Event("mcp:qgate_init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := gate.New(h.db)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open store: " + err.Error()), nil
	}
	h.svc = svc

	slog.Info("store initialised", "local", local)

	if local {
		return mcp.NewToolResultText("store initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("store initialised"), nil
}
