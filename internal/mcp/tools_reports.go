// tools_reports.go implements the MCP tools over recorded reports. They all
// need an initialised store.

package mcp

import (
	"context"

	"github.com/jpl-au/qgate/internal/diff"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// reportHistory handles qgate_history tool calls.
func (h *handlers) reportHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	batch := getString(req, "batch", "")
	limit := getInt(req, "limit", 0)

	reports, err := h.svc.History(ctx, batch, limit)

	log.Event("mcp:qgate_history", "history").Author("mcp").Batch(batch).Detail("count", len(reports)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]store.ReportJSON, len(reports))
	for i := range reports {
		out[i] = reports[i].ToJSON()
	}
	return jsonResult(out)
}

// showReport handles qgate_report tool calls.
func (h *handlers) showReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	ref, err := req.RequireString("ref")
	if err != nil {
		return mcp.NewToolResultError("ref is required"), nil //nolint:nilerr
	}

	r, err := h.svc.Show(ctx, ref)

	l := log.Event("mcp:qgate_report", "show").Author("mcp")
	if r != nil {
		l.Batch(r.BatchKey).Report(r.Key)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(r.ToJSON())
}

// diffReports handles qgate_diff tool calls.
func (h *handlers) diffReports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	opts := diff.Options{
		Old:   getString(req, "old", ""),
		New:   getString(req, "new", ""),
		Batch: getString(req, "batch", ""),
	}
	if opts.Batch == "" && (opts.Old == "" || opts.New == "") {
		return mcp.NewToolResultError("give old and new, or batch"), nil
	}

	r, err := h.svc.Diff(ctx, opts)

	log.Event("mcp:qgate_diff", "diff").Author("mcp").Batch(opts.Batch).
		Detail("old", opts.Old).Detail("new", opts.New).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"old":     r.Old,
		"new":     r.New,
		"changed": r.Changed(),
		"diff":    r.Format(false),
	})
}
