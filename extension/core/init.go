// init.go implements the "qgate init" command for repository initialisation.
//
// Init does NOT create config - that's managed separately via "qgate config",
// as git separates init from config. The --local flag controls whether the
// database is committed to git or gitignored.

package core

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/gate"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new qgate store",
		Long: `Creates a .qgate/qgate.db database in the current directory.
Checks run inside the project are recorded there.

Use --db to create additional databases:
  qgate init --db staging    # creates .qgate/qgate-staging.db

Use --dir to create in a different directory:
  qgate init --dir /path/to/project    # creates /path/to/project/.qgate/qgate.db

Use --local to exclude from git:
  qgate init --db scratch --local    # creates qgate-scratch.db, not committed

Note: init does not create config. Use "qgate config" to set up configuration.`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits the current project's .gitignore, which is meaningless
	// for a database created elsewhere.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	err := gate.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	dbFile := repo.DBFileName(db)
	loc := repo.Dir + "/" + dbFile
	if dir != "" {
		loc = dir + "/" + repo.Dir + "/" + dbFile
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": loc, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised qgate store in %s\n", loc)
	return nil
}
