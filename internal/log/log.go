// Package log provides centralised audit logging for qgate operations.
// Logs are stored in ~/.qgate/log/qgate-log.db and track all CLI commands
// and MCP tool invocations across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("gate:check", "check").
//		Author(cmd.Author()).
//		Batch(b.Key).
//		Platform(res.Platform.String()).
//		Posts(len(b.Posts)).
//		Report(rep.Key).
//		Write(err)
//
//	log.Event("history:ls", "list").
//		Author(cmd.Author()).
//		Detail("count", len(batches)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "gate:check",
// "history:show", "mcp:qgate_check".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g., "gate:check", "mcp:qgate_check"
	Author   string // who performed the action
	Action   string // verb: check, detect, list, delete, etc.
	Batch    string // input: batch key or name the operation targets
	Platform string // input: platform requested or detected
	Posts    int    // input: number of posts in the batch

	// Output fields - populated after operation succeeds
	Report string // output: report key created or read
	Passed *bool  // output: whether the batch passed the gate

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "gate:check", "history:rm")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:qgate_check")
//
// The action describes what operation was performed:
//   - "check", "detect", "count", "list", "read", "diff", "delete", "restore", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Batch sets the batch key or name this operation targets.
func (b *Builder) Batch(key string) *Builder {
	b.entry.Batch = key
	return b
}

// Platform sets the platform the batch was scored against.
func (b *Builder) Platform(p string) *Builder {
	b.entry.Platform = p
	return b
}

// Posts sets how many posts the operation covered.
func (b *Builder) Posts(n int) *Builder {
	b.entry.Posts = n
	return b
}

// Report sets the report key produced or read (output).
func (b *Builder) Report(key string) *Builder {
	b.entry.Report = key
	return b
}

// Passed records the gate outcome (output).
//
// Example:
//
//	l.Passed(res.Passed)  // After confirming success
func (b *Builder) Passed(passed bool) *Builder {
	b.entry.Passed = &passed
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// flags, result counts, comparison keys, etc. Can be called multiple times.
//
// Example:
//
//	log.Event("history:diff", "diff").
//		Detail("from", a).
//		Detail("to", b)
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// Example:
//
//	rep, err := svc.Show(ctx, key)
//	log.Event("history:show", "read").Report(key).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .qgate directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
