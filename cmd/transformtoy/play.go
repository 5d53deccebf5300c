package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/cmdutil"
	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/app"
	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/controller"
)

const clearScreen = "\x1b[H\x1b[2J"

func newPlayCmd(cfg *config.Config) *cobra.Command {
	var (
		prog    cmdutil.ProgramFlags
		loop    bool
		reverse bool
		steps   bool
		pause   time.Duration
		fps     int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Animate a program's trace in the terminal",
		Long: "Animate a program's pseudocode in the terminal. By default progress plays continuously;\n" +
			"--steps moves one command at a time with the eased step animation instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := *cfg
			if cmd.Flags().Changed("loop") {
				c.Loop = loop
			}
			if cmd.Flags().Changed("reverse") {
				c.Reverse = reverse
			}
			if cmd.Flags().Changed("fps") {
				c.FPS = fps
			}
			if err := c.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			renderer := ui.Renderer(out)
			sched := controller.NewLoop(c.FPS)

			var a *app.App
			next := func() {
				time.AfterFunc(pause, func() {
					_ = sched.Post(ctx, func() { _ = a.Dispatch(controller.StepNext{}) })
				})
			}
			onChange := func(e *app.Example, s controller.Snapshot) {
				frame, err := a.Frame()
				if err != nil {
					fmt.Fprintln(out, ui.ErrorMsg("%v", err))
					cancel()
					return
				}
				var sb strings.Builder
				sb.WriteString(clearScreen)
				sb.WriteString(ui.Bold(e.Title) + "  " + ui.Muted(s.State.String()) + "\n")
				sb.WriteString(ui.ProgressBar(s.Progress, s.Max, 40) + "\n\n")
				if c.ShowTrace {
					sb.WriteString(frame.Trace.ANSI(renderer))
				}
				fmt.Fprint(out, sb.String())

				if s.State != controller.Idle {
					return
				}
				switch {
				case s.Progress >= s.Max && !(c.Loop && !steps):
					cancel()
				case steps:
					next()
				}
			}

			// The trace needs no pixels.
			recorder := app.WithSurface(func(w, h int) canvas.Surface { return canvas.NewRecorder(w, h) })
			a, err := prog.Open(ctx, c, sched, recorder, app.WithOnChange(onChange))
			if err != nil {
				return err
			}
			defer a.Close()

			start := controller.Event(controller.TogglePlay{})
			if steps {
				start = controller.StepNext{}
			}
			if err := sched.Post(ctx, func() { _ = a.Dispatch(start) }); err != nil {
				return err
			}

			if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	prog.Bind(cmd)
	f := cmd.Flags()
	f.BoolVar(&loop, "loop", false, "Wrap around at the end instead of stopping")
	f.BoolVar(&reverse, "reverse", false, "Apply commands from the last one backwards")
	f.BoolVar(&steps, "steps", false, "Step one command at a time")
	f.DurationVar(&pause, "pause", 700*time.Millisecond, "Pause between steps with --steps")
	f.IntVar(&fps, "fps", 60, "Frames per second")
	return cmd
}
