// tools_config.go implements MCP tools for configuration management.
//
// Config changes are reloaded into the running server so limits and the
// sameness threshold apply to the next check without a restart.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles qgate_config_get tool calls.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:qgate_config_get", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:qgate_config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:qgate_config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles qgate_config_set tool calls.
func (h *handlers) configSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}

	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:qgate_config_set", "set").Author("mcp").Detail("key", key).Detail("value", value)

	cfg, err := config.Load()
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := cfg.Set(key, value); err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()
	l.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.reloadConfig(); err != nil {
		log.Event("mcp:qgate_config_set", "reload").Author("mcp").Write(err)
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}

// reloadConfig refreshes the configuration used by subsequent checks.
func (h *handlers) reloadConfig() error {
	if h.svc != nil {
		return h.svc.ReloadConfig()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	h.cfg = cfg
	return nil
}
