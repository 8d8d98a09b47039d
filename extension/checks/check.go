// check.go implements the "qgate check" command.

package checks

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	qcheck "github.com/jpl-au/qgate/internal/check"
	"github.com/jpl-au/qgate/internal/config"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/repo"
	"github.com/spf13/cobra"
)

func (e *Extension) newCheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "check <file|dir|->",
		Short: "Check a batch of posts against platform length rules",
		Long: `Validate a batch of generated posts against the length rules of their
platform and report the word-count distribution.

The batch fails when any post is shorter or longer than the platform allows.
A warning is added when posts are suspiciously similar in length.

Input:
  posts.json    array of posts or strings, or {"name", "platform", "posts"}
  posts.yaml    same shapes as JSON
  posts.md      plain text, posts separated by lines of ---
  drafts/       every .md/.txt file is one post
  -             read from stdin

The result is recorded when a store exists (see 'qgate init'), otherwise
the check runs as a dry run.

  qgate check drafts.md --platform twitter
  qgate check campaign.json --strict     # exit 1 if the gate fails
  generate | qgate check - -o json`,
		Args: cobra.ExactArgs(1),
		RunE: e.runCheck,
	}
	addInputFlags(c)
	c.Flags().String(extension.FlagName, "", "Batch name (default: from input)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Validate without recording a report")
	c.Flags().Bool(extension.FlagStrict, false, "Exit with status 1 when the batch fails")
	return c
}

func (e *Extension) runCheck(c *cobra.Command, args []string) error {
	ctx := c.Context()
	src := args[0]
	strict, _ := c.Flags().GetBool(extension.FlagStrict)

	l := log.Event("checks:check", "check").Author(cmd.Author()).Detail("source", src)

	b, err := loadBatch(c, src)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("check %q: %w", src, err))
	}
	p, _ := platformFlag(c)
	opts := qcheck.Options{Platform: p, Author: cmd.Author()}
	opts.Name, _ = c.Flags().GetString(extension.FlagName)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)

	var (
		svc qcheck.Checker
		cfg *config.Config
	)
	if !opts.DryRun {
		s, err := cmd.OpenService()
		switch {
		case err == nil:
			defer s.Close()
			log.SetProject(s.Dir())
			s.SetExtensionContext(extension.NewContext(s, s.DB(), s.Config()))
			svc, cfg = s, s.Config()
		case errors.Is(err, repo.ErrNotInitialised):
			fmt.Fprintln(os.Stderr, "note: no qgate store found, running as a dry run (see 'qgate init')")
		default:
			l.Write(err)
			return cmd.PrintJSONError(fmt.Errorf("open store: %w", err))
		}
	}
	if cfg == nil {
		if cfg, err = config.Load(); err != nil {
			l.Write(err)
			return cmd.PrintJSONError(err)
		}
	}

	res, err := qcheck.Run(ctx, cmd.TextOut(), svc, b, opts, cfg)

	l.Posts(len(b.Posts))
	if res != nil {
		l.Platform(res.Platform.String()).Batch(res.Batch).Report(res.Report).Passed(res.Passed)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("check %q: %w", src, err))
	}
	if err := cmd.PrintJSON(res); err != nil {
		return err
	}

	if strict && !res.Passed {
		c.SilenceUsage = true
		return cmd.ErrGateFailed
	}
	return nil
}
