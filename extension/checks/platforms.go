// platforms.go implements "qgate platforms" and "qgate buckets".

package checks

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/spf13/cobra"
)

// allPlatforms returns the known platforms followed by the generic fallback.
func allPlatforms() []platform.Platform {
	return append(platform.Known(), platform.Unknown)
}

func (e *Extension) newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List platforms and their word limits",
		Long: `List every platform qgate knows with its pass/fail word limits and the
optimal range used for the optimal ratio. The "unknown" row is the generic
rule set applied to unrecognised or missing platforms.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := format.Platforms(cmd.TextOut()); err != nil {
				return err
			}
			specs := make([]platform.Spec, 0, len(allPlatforms()))
			for _, p := range allPlatforms() {
				specs = append(specs, platform.SpecFor(p))
			}
			return cmd.PrintJSON(specs)
		},
	}
}

func (e *Extension) newBucketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets [platform]",
		Short: "List the distribution buckets of a platform",
		Long: `Print the word-count bucket labels a platform's distribution uses.
Without an argument every platform is listed.

  qgate buckets twitter
  qgate buckets -o json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, p := range allPlatforms() {
				names = append(names, p.String())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			ps := allPlatforms()
			if len(args) == 1 {
				p, ok := platform.Parse(args[0])
				if !ok {
					return cmd.PrintJSONError(fmt.Errorf("unknown platform %q (see 'qgate platforms')", args[0]))
				}
				ps = []platform.Platform{p}
			}

			out := make(map[string][]string, len(ps))
			for _, p := range ps {
				if err := format.Buckets(cmd.TextOut(), p); err != nil {
					return err
				}
				out[platform.Normalise(p).String()] = platform.BucketLabels(p)
			}
			return cmd.PrintJSON(out)
		},
	}
}
