package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/cmdutil"
	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/logging"
)

var version = "dev"

func main() {
	if err := logging.Configure(logging.LevelWarn); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMsg("%v", err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		globals cmdutil.Globals
		cfg     config.Config
	)

	root := &cobra.Command{
		Use:           "transformtoy",
		Short:         "Step through 2D canvas transformations",
		Long:          "transformtoy shows what a sequence of canvas transform commands does to the coordinate system, one command at a time.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.ConfigureColor(globals.NoColor)

			var err error
			cfg, err = globals.Config()
			if err != nil {
				return err
			}
			cfg.BuildVersion = version

			level := cfg.LogLevel
			if globals.Debug {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
	}
	globals.Bind(root)

	root.AddCommand(
		newListCmd(&cfg),
		newRenderCmd(&cfg),
		newValidateCmd(),
		newPlayCmd(&cfg),
		newExportCmd(&cfg),
		newTimelineCmd(&cfg),
		newLinkCmd(&cfg),
	)
	return root
}
