/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that discovers
// the store, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the store exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/gate"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/repo"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store initialisation.
//
// Bootstrap commands (init, guide, config) must work before "qgate init"
// has run. Extensions add their own through extension.Storeless, for
// commands that open the store themselves or never need it.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}
	for _, name := range extension.StorelessCommands() {
		cmds[name] = true
	}
	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *gate.Service
	initOnce   sync.Once
	initErr    error
)

// OpenService opens the gate service selected by --db and --dir. With
// --dir the database is opened there directly; otherwise it is discovered
// by walking up from the working directory.
func OpenService() (*gate.Service, error) {
	if d := Dir(); d != "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path, err := repo.Locate(d, DB())
		if err != nil {
			return nil, err
		}
		return gate.Open(path, cfg)
	}
	return gate.New(DB())
}

// initExtensions creates the gate service and injects it into extensions.
//
// sync.Once guarantees one service per process however many commands
// trigger it. ErrNotInitialised comes back wrapped so the user sees
// "run 'qgate init'".
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := OpenService()
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		// Set project identifier for audit logging
		log.SetProject(svc.Dir())

		extContext = extension.NewContext(svc, svc.DB(), svc.Config())
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noStoreCommands after all extensions are registered
		noStoreCommands = buildNoStoreCommands()
	})
}
