// load.go reads the batch named on the command line.

package checks

import (
	"fmt"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/internal/importer"
	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/spf13/cobra"
)

// maxInput caps a single input file or stdin.
const maxInput = 64 << 20

// addInputFlags registers the flags shared by commands that read a batch.
func addInputFlags(c *cobra.Command) {
	c.Flags().StringP(extension.FlagPlatform, "p", "", "Platform for posts that do not name one (twitter, linkedin, facebook, email, blog)")
	c.Flags().StringP(extension.FlagFormat, "f", "", "Input format: json, yaml or text (default: from extension)")
	c.Flags().Bool(extension.FlagIncludeHidden, false, "Include hidden files when reading a directory")
}

// platformFlag parses --platform. Empty is Unknown, meaning detect.
func platformFlag(c *cobra.Command) (platform.Platform, error) {
	name, _ := c.Flags().GetString(extension.FlagPlatform)
	if name == "" {
		return platform.Unknown, nil
	}
	p, ok := platform.Parse(name)
	if !ok {
		return platform.Unknown, fmt.Errorf("unknown platform %q (see 'qgate platforms')", name)
	}
	return p, nil
}

// loadBatch reads the batch at src ("-" for stdin) using the input flags.
func loadBatch(c *cobra.Command, src string) (post.Batch, error) {
	p, err := platformFlag(c)
	if err != nil {
		return post.Batch{}, err
	}
	f, _ := c.Flags().GetString(extension.FlagFormat)
	hidden, _ := c.Flags().GetBool(extension.FlagIncludeHidden)

	return importer.Load(src, cmd.In(), importer.Options{
		Platform: p,
		Format:   f,
		Hidden:   hidden,
		MaxSize:  maxInput,
	})
}
