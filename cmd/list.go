package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"testctl/internal/check"
	"testctl/internal/probe"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [category...]",
		Short: "List registered checks",
		Long: `List the checks registered by the defaults and configuration files, in the
order they run. Restrict the listing by naming one or more categories.`,
		ValidArgsFunction: completeCategories,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			registry, err := probe.BuildRegistry(cfg.Checks)
			if err != nil {
				return err
			}
			checks, err := registry.ListChecks(args)
			if err != nil {
				return err
			}
			return printChecks(cmd.OutOrStdout(), checks)
		},
	}
}

func printChecks(out io.Writer, checks []check.Definition) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"CATEGORY", "CHECK", "KIND", "PHASE", "DESCRIPTION"})
	for _, c := range checks {
		phase := "dependent"
		if c.Independent {
			phase = "independent"
		}
		t.AppendRow(table.Row{c.Category, c.ID, c.Kind, phase, c.Description})
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}
