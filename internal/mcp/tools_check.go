// tools_check.go implements the MCP tools that evaluate posts.
//
// qgate_check records a report when a store is open and runs as a dry run
// otherwise, so an assistant can gate its drafts before any setup.

package mcp

import (
	"context"

	"github.com/jpl-au/qgate/internal/check"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/mark3labs/mcp-go/mcp"
)

// checkPosts handles qgate_check tool calls.
func (h *handlers) checkPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := getBatch(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := getPlatform(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := check.Options{
		Platform: p,
		Name:     b.Name,
		Author:   getString(req, "author", "mcp"),
		DryRun:   getBool(req, "dry_run", false),
	}

	var res *check.Result
	if h.svc == nil || opts.DryRun {
		res, err = check.Evaluate(b, opts, h.config())
	} else {
		res, err = h.svc.Check(ctx, b, opts)
	}

	l := log.Event("mcp:qgate_check", "check").Author(opts.Author).Posts(len(b.Posts))
	if res != nil {
		l.Platform(res.Platform.String()).Batch(res.Batch).Report(res.Report).Passed(res.Passed)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// detectPlatform handles qgate_detect tool calls.
func (h *handlers) detectPlatform(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	b, err := getBatch(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p := post.Detect(b.Posts)

	log.Event("mcp:qgate_detect", "detect").Author("mcp").Posts(len(b.Posts)).Platform(p.String()).Write(nil)

	return jsonResult(map[string]any{
		"platform": p,
		"known":    p.IsKnown(),
		"spec":     platform.SpecFor(p),
		"buckets":  platform.BucketLabels(p),
	})
}
