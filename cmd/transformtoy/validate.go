package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/cmdutil"
	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/command"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a free-text program",
		Long:  "Check a free-text program, one command per line. Reads stdin when no file or - is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := cmdutil.ReadProgram(path)
			if err != nil {
				return err
			}

			list, err := command.ParseAll(text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, ui.WarnMsg("No commands"))
				return nil
			}
			fmt.Fprintln(out, ui.Success(command.Summary(list)))
			if !list.Reversible() {
				fmt.Fprintln(out, ui.Muted("  save/restore present: reverse playback is disabled"))
			}
			return nil
		},
	}
}
