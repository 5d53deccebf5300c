package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/cmdutil"
	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/controller"
	"github.com/ivlev/transformtoy/internal/director"
	"github.com/ivlev/transformtoy/internal/engine"
)

const timelineDir = "timelines"

func newTimelineCmd(cfg *config.Config) *cobra.Command {
	var (
		prog     cmdutil.ProgramFlags
		duration float64
		reverse  bool
		output   string
		show     bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Generate a step timeline for export",
		Long: "Generate the YAML timeline export follows: each command is revealed in turn and held.\n" +
			"With --show, print the newest timeline in ./" + timelineDir + " instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if show {
				path, err := director.FindLatestTimeline(timelineDir)
				if err != nil {
					return err
				}
				tl, err := director.ReadTimeline(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.InfoMsg("%s", path))
				fmt.Fprintln(out, keyframeTable(tl))
				return nil
			}

			c := *cfg
			if cmd.Flags().Changed("reverse") {
				c.Reverse = reverse
			}
			a, err := prog.Open(cmd.Context(), c, controller.NewManualScheduler(time.Now()))
			if err != nil {
				return err
			}
			defer a.Close()
			e := a.Active()

			if duration <= 0 {
				duration = c.ExportDuration
			}
			if duration <= 0 {
				duration = engine.DefaultDuration(len(e.List))
			}
			labels := make([]string, len(e.List))
			for i, step := range e.List {
				labels[i] = step.String()
			}
			rev := c.Reverse && e.List.Reversible()
			tl, err := director.NewDirector().GenerateTimeline(e.Title, labels, duration, rev)
			if err != nil {
				return err
			}

			if output == "" {
				if err := ensureDir(timelineDir); err != nil {
					return err
				}
				output = director.GenerateTimelinePath(timelineDir)
			}
			if err := director.WriteTimeline(tl, output); err != nil {
				return err
			}

			fmt.Fprintln(out, ui.SuccessMsg("Timeline for %s saved to %s", ui.Bold(e.Title), output))
			fmt.Fprintln(out, keyframeTable(tl))
			return nil
		},
	}

	prog.Bind(cmd)
	f := cmd.Flags()
	f.Float64Var(&duration, "duration", 0, "Target length in seconds (0: automatic)")
	f.BoolVar(&reverse, "reverse", false, "Reveal commands from the last one backwards")
	f.StringVarP(&output, "output", "o", "", "Timeline path (default: ./"+timelineDir+"/timeline_<time>.yaml)")
	f.BoolVar(&show, "show", false, "Print the newest saved timeline")
	return cmd
}

func keyframeTable(tl *director.Timeline) string {
	rows := make([][]string, len(tl.Keyframes))
	for i, kf := range tl.Keyframes {
		rows[i] = []string{
			strconv.FormatFloat(kf.Time, 'f', 2, 64),
			strconv.FormatFloat(kf.Progress, 'f', 2, 64),
			kf.Label,
		}
	}
	return ui.Table([]string{"Time", "Progress", "Label"}, rows)
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
