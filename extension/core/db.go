// db.go implements the "qgate db" command for database management.
//
// A project can keep several databases, for example one per campaign or a
// scratch database for trying thresholds. DB is a NoStoreCommand: it only
// edits .qgate/.gitignore and never opens the databases.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases or change their local/shared status.

  qgate db                    # list all databases
  qgate db --local            # mark default database as local
  qgate db scratch --local    # mark scratch database as local
  qgate db scratch --share    # mark as shared
  qgate db --dir /path        # list databases in external directory

Local databases are not committed. Shared databases are.
If no name is given with --local or --share, operates on the default database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// Without --dir the nearest .qgate directory is discovered. repo
	// functions take the .qgate directory, not the project root.
	dir := cmd.Dir()
	qgateDir := ""
	if dir != "" {
		qgateDir = filepath.Join(dir, repo.Dir)
	}

	// No args and no flags: list databases
	if len(args) == 0 && !local && !share {
		err := listDBs(qgateDir)

		log.Event("core:db", "list").
			Author(cmd.Author()).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	// Get database name - empty string means default database
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	// Modify database status
	if local {
		err := repo.IgnoreDB(name, qgateDir)

		log.Event("core:db", "ignore").
			Author(cmd.Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as local\n", repo.DBFileName(name))
		return nil
	}

	if share {
		err := repo.UnignoreDB(name, qgateDir)

		log.Event("core:db", "unignore").
			Author(cmd.Author()).
			Detail("db", name).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as shared\n", repo.DBFileName(name))
		return nil
	}

	// No flags with name: show status of that database
	ignored, err := repo.IsIgnored(name, qgateDir)

	log.Event("core:db", "status").
		Author(cmd.Author()).
		Detail("db", name).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	status := "shared"
	if ignored {
		status = "local"
	}
	fmt.Fprintf(cmd.Out(), "%s: %s\n", repo.DBFileName(name), status)
	return nil
}

// listDBs displays all databases in the target directory with their status.
// Each database shows as "shared" (committed) or "local" (gitignored).
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return err
	}

	if cmd.JSON() {
		out := make([]map[string]any, len(dbs))
		for i, db := range dbs {
			out[i] = map[string]any{"name": db.Name, "file": db.File, "local": db.Local}
		}
		return cmd.PrintJSON(out)
	}

	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}

	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status)
	}
	return nil
}
