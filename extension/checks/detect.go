// detect.go implements the "qgate detect" and "qgate count" commands.

package checks

import (
	"fmt"
	"strings"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/internal/distribution"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/jpl-au/qgate/internal/log"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/spf13/cobra"
)

// detectResult is the JSON shape of "qgate detect".
type detectResult struct {
	Platform platform.Platform `json:"platform"`
	Known    bool              `json:"known"`
	Spec     platform.Spec     `json:"spec"`
	Buckets  []string          `json:"buckets"`
	Posts    int               `json:"posts"`
}

func (e *Extension) newDetectCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "detect <file|dir|->",
		Short: "Show which platform rules a batch would be checked against",
		Long: `Detect the platform of a batch and print the rules that apply.

The first post's platform governs the batch. Aliases are resolved (x is
twitter, newsletter is email); anything else falls back to the generic
rules.

  qgate detect campaign.json
  qgate detect drafts/ --platform linkedin`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			b, err := loadBatch(c, args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			p := b.Platform()
			res := detectResult{
				Platform: p,
				Known:    p.IsKnown(),
				Spec:     platform.SpecFor(p),
				Buckets:  platform.BucketLabels(p),
				Posts:    len(b.Posts),
			}
			log.Event("checks:detect", "detect").Platform(p.String()).Posts(res.Posts).Write(nil)

			w := cmd.TextOut()
			fmt.Fprintf(w, "Platform: %s", p)
			if !res.Known {
				fmt.Fprint(w, " (generic rules)")
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Words:    %d-%d (optimal %d-%d)\n", res.Spec.MinWords, res.Spec.MaxWords, res.Spec.OptimalMin, res.Spec.OptimalMax)
			fmt.Fprintf(w, "Buckets:  %s\n", strings.Join(res.Buckets, ", "))
			fmt.Fprintf(w, "Posts:    %d\n", res.Posts)
			return cmd.PrintJSON(res)
		},
	}
	addInputFlags(c)
	return c
}

// countResult is the JSON shape of "qgate count".
type countResult struct {
	Platform     platform.Platform    `json:"platform"`
	Posts        int                  `json:"posts"`
	Distribution *distribution.Report `json:"distribution"`
}

func (e *Extension) newCountCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "count <file|dir|->",
		Short: "Print the word-count distribution of a batch",
		Long: `Count the words in each post and print how many posts fall into each
bucket of the batch's platform. Nothing is validated or recorded.

  qgate count drafts.md
  qgate count posts.json -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			b, err := loadBatch(c, args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			p := b.Platform()
			res := countResult{
				Platform:     p,
				Posts:        len(b.Posts),
				Distribution: distribution.Calculate(b.WordCounts(), p),
			}
			log.Event("checks:count", "count").Platform(p.String()).Posts(res.Posts).Write(nil)

			w := cmd.TextOut()
			fmt.Fprintf(w, "%d posts, platform %s\n", res.Posts, p)
			format.Distribution(w, res.Distribution)
			return cmd.PrintJSON(res)
		},
	}
	addInputFlags(c)
	return c
}
