// guide.go implements the "qgate guide" and "qgate llm" commands.
//
// Guides are embedded in the binary via the guide package. Terminal output
// gets glamour rendering; pipe/redirect gets raw markdown for LLM context
// loading.

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/qgate/cmd"
	"github.com/jpl-au/qgate/extension"
	"github.com/jpl-au/qgate/guide"
	"github.com/jpl-au/qgate/internal/format"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "guide [command]",
		Short: "Show the qgate usage guide",
		Long: `Outputs the qgate guide for LLMs and humans.

  qgate guide           # main guide
  qgate guide check     # detailed check guide
  qgate guide history   # detailed history guide
  qgate guide --list    # topics by command group`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if list, _ := c.Flags().GetBool(extension.FlagList); list {
				return printGroups()
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			raw, _ := c.Flags().GetBool(extension.FlagRaw)
			return format.Render(cmd.Out(), content, raw)
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print markdown without terminal styling")
	c.Flags().BoolP(extension.FlagList, "l", false, "List guide topics by command group")
	c.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return guide.List(), cobra.ShellCompDirectiveNoFileComp
	}
	return c
}

// printGroups writes the topic index, one command group per line.
func printGroups() error {
	groups := guide.Groups()
	if cmd.JSON() {
		return cmd.PrintJSON(groups)
	}
	for _, g := range groups {
		fmt.Fprintf(cmd.Out(), "%-11s %s\n", g.Name+":", strings.Join(g.Topics, ", "))
	}
	return nil
}

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs to discover available commands and usage patterns.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			return format.Render(cmd.Out(), content, false)
		},
	}
}
