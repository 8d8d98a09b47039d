// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Optional parameters are extracted permissively: a missing or mistyped
// value yields the default instead of failing the tool call.

package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/jpl-au/qgate/internal/importer"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/jpl-au/qgate/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter. JSON booleans decode as Go bool;
// a string "true" is not accepted and yields def.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers decode as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// getPlatform extracts a platform parameter. An empty value is Unknown,
// which means detect; an unrecognised name is an error.
func getPlatform(req mcp.CallToolRequest) (platform.Platform, error) {
	name := getString(req, "platform", "")
	if name == "" {
		return platform.Unknown, nil
	}
	p, ok := platform.Parse(name)
	if !ok {
		return platform.Unknown, fmt.Errorf("unknown platform %q", name)
	}
	return p, nil
}

// getBatch decodes the posts parameter. Posts are given as strings or as
// objects with content, id and platform; both are accepted by the JSON
// importer, so the argument is re-encoded and parsed the same way a file
// would be.
func getBatch(req mcp.CallToolRequest) (post.Batch, error) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return post.Batch{}, fmt.Errorf("posts is required")
	}
	raw, ok := args["posts"].([]any)
	if !ok {
		return post.Batch{}, fmt.Errorf("posts must be an array")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return post.Batch{}, err
	}
	b, err := importer.Parse(data, importer.FormatJSON)
	if err != nil {
		return post.Batch{}, err
	}
	b.Name = getString(req, "name", "")
	return b, nil
}

// jsonResult serialises v as indented JSON in a text result. Errors are
// returned as tool errors so the LLM receives them.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
