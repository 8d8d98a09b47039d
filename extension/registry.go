// registry.go implements the extension registration system.
//
// Extensions self-register during init(), before main() runs. Registration
// order is kept so commands and MCP tools appear in the same order on
// every run.

package extension

import "sync"

// Registry holds all registered extensions.
var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // preserve registration order
)

// Register adds an extension to the registry. Called from init() functions.
// It panics on a duplicate name, as database/sql.Register does: a clash is a
// programming error found at startup, not a runtime condition.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// StorelessCommands returns the command names every Storeless extension
// declares.
func StorelessCommands() []string {
	var names []string
	for _, ext := range All() {
		if s, ok := ext.(Storeless); ok {
			names = append(names, s.NoStoreCommands()...)
		}
	}
	return names
}
