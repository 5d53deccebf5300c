package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/cmdutil"
	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/config"
)

func newListCmd(cfg *config.Config) *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the examples of the catalogue",
		Long: "List the examples of the catalogue. With --write the loaded list is saved to a file,\n" +
			"as JSON for a .json path and as YAML otherwise; malformed commands are dropped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := cmdutil.LoadCatalog(cmd.Context(), *cfg)
			if len(cat) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.WarnMsg("No examples in %s", cfg.Catalog))
				return nil
			}

			if write != "" {
				if err := cat.Write(write); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMsg("Wrote %d examples to %s", len(cat), write))
				return nil
			}

			rows := make([][]string, 0, len(cat))
			for i, e := range cat {
				commands := ui.Muted("free text")
				reverse := "-"
				if !e.Custom() {
					commands = strconv.Itoa(len(e.Transformations))
					reverse = ui.Bool(e.Transformations.Reversible())
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), e.Title, commands, reverse})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Table([]string{"#", "Title", "Commands", "Reverse"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&write, "write", "w", "", "Save the catalogue to this path instead of listing it")
	return cmd
}
