// Package mcp implements the Model Context Protocol server, exposing the
// qgate length gate to LLMs. An assistant can check a batch of drafts it
// generated before publishing them and read back earlier reports.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/gate"
	"github.com/jpl-au/qgate/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools that need recorded reports when no
// store is open. qgate_check, qgate_detect and the platform tools still work.
const ErrNotInitialised = "store not initialised - call qgate_init first"

// Serve starts the MCP server over stdio.
//
// The server starts even if no store exists. Checks then run as dry runs
// and qgate_init can create a store for later calls.
func Serve(db string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db}

	svc, err := gate.New(db)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open store", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
		defer func() { _ = h.svc.Close() }()
	} else {
		slog.Info("qgate not initialised, checks will not be recorded - call qgate_init to create a store")
		cfg, cfgErr := config.Load()
		if cfgErr != nil {
			return cfgErr
		}
		h.cfg = cfg
	}

	s := newServer(h)

	slog.Info("qgate MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds an MCP server with the built-in tools and those declared
// by registered extensions.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"qgate",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the gate service.
// The svc field may be nil if the store has not been initialised.
type handlers struct {
	db  string         // database name for init
	svc *gate.Service  // nil if not initialised
	cfg *config.Config // used while svc is nil
}

// requireInit returns an error result if the store is not initialised.
// Tools that require a store should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// config returns the configuration checks run with.
func (h *handlers) config() *config.Config {
	if h.svc != nil {
		return h.svc.Config()
	}
	return h.cfg
}

// extContext builds the context handed to extension tools. The service is
// left nil rather than a typed nil pointer when no store is open.
func (h *handlers) extContext() extension.Context {
	if h.svc == nil {
		return extension.NewContext(nil, nil, h.config())
	}
	return extension.NewContext(h.svc, h.svc.DB(), h.svc.Config())
}

// registerResources adds URI-based access to recorded reports.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"qgate://reports/{key}",
			"Report",
			mcp.WithTemplateDescription("Read a recorded length report as markdown"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readReport,
	)
}

// postsParam is the schema shared by tools that take a batch of posts.
func postsParam() mcp.ToolOption {
	return mcp.WithArray("posts",
		mcp.Required(),
		mcp.Description("Posts to check: strings, or objects with content and optional id and platform"),
	)
}

// registerTools exposes qgate operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without existing store
	s.AddTool(
		mcp.NewTool("qgate_init",
			mcp.WithDescription("Initialise a qgate store so checks are recorded. Call this if other tools return 'store not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initStore,
	)

	// Check
	s.AddTool(
		mcp.NewTool("qgate_check",
			mcp.WithDescription("Check a batch of generated posts against platform length rules. Returns pass/fail, issues, warnings and the length distribution."),
			postsParam(),
			mcp.WithString("platform", mcp.Description("Force a platform (twitter, linkedin, facebook, email, blog); default detects from the posts")),
			mcp.WithString("name", mcp.Description("Batch name recorded with the posts")),
			mcp.WithString("author", mcp.Description("Author attribution for the recorded report")),
			mcp.WithBoolean("dry_run", mcp.Description("Validate without recording a report")),
		),
		h.checkPosts,
	)

	// Detect
	s.AddTool(
		mcp.NewTool("qgate_detect",
			mcp.WithDescription("Detect the platform of a batch of posts and return its length rules"),
			postsParam(),
		),
		h.detectPlatform,
	)

	// Buckets
	s.AddTool(
		mcp.NewTool("qgate_buckets",
			mcp.WithDescription("List the word-count bucket labels used in a platform's distribution"),
			mcp.WithString("platform", mcp.Description("Platform name; empty lists every platform")),
		),
		h.listBuckets,
	)

	// Platforms
	s.AddTool(
		mcp.NewTool("qgate_platforms",
			mcp.WithDescription("List supported platforms with their word limits and optimal ranges"),
		),
		h.listPlatforms,
	)

	// History
	s.AddTool(
		mcp.NewTool("qgate_history",
			mcp.WithDescription("List recorded reports, newest first"),
			mcp.WithString("batch", mcp.Description("Batch key or name; empty lists all batches")),
			mcp.WithNumber("limit", mcp.Description("Maximum reports to return")),
		),
		h.reportHistory,
	)

	// Report
	s.AddTool(
		mcp.NewTool("qgate_report",
			mcp.WithDescription("Show a recorded report by report key, or the latest report for a batch"),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Report key, batch key or batch name")),
		),
		h.showReport,
	)

	// Diff
	s.AddTool(
		mcp.NewTool("qgate_diff",
			mcp.WithDescription("Show what changed between two reports, or between a batch's two latest reports"),
			mcp.WithString("old", mcp.Description("Older report key or batch")),
			mcp.WithString("new", mcp.Description("Newer report key or batch")),
			mcp.WithString("batch", mcp.Description("Compare the two latest reports of this batch")),
		),
		h.diffReports,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("qgate_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, limits.max_posts, gate.sameness_threshold, ...) or empty for all")),
		),
		h.configGet,
	)

	// Config Set
	s.AddTool(
		mcp.NewTool("qgate_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("qgate_guide",
			mcp.WithDescription("Get help/guide content for qgate commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'check', 'history') or empty for index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools adds the tools declared by registered extensions.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			s.AddTool(t.Tool, h.extensionHandler(t))
		}
	}
}

// extensionHandler adapts an extension tool to the server. Each call builds
// a fresh Context so a store opened by qgate_init is visible to later calls.
func (h *handlers) extensionHandler(t extension.MCPTool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if t.NeedsStore {
			if res := h.requireInit(); res != nil {
				return res, nil
			}
		}
		return t.Handler(ctx, h.extContext(), req)
	}
}
