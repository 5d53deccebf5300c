package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/cmdutil"
	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/analyzer"
	"github.com/ivlev/transformtoy/internal/app"
	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/controller"
	"github.com/ivlev/transformtoy/internal/interpolator"
)

func newRenderCmd(cfg *config.Config) *cobra.Command {
	var (
		prog     cmdutil.ProgramFlags
		progress float64
		reverse  bool
		final    bool
		output   string
		noTrace  bool
		html     bool
		size     int
		scale    float64
		noBefore bool
		noAfter  bool
		regions  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a program at one progress value",
		Long: "Render a program at one progress value to PNG and print its pseudocode trace.\n" +
			"Progress runs from 0 (nothing applied) to the number of commands (everything applied).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := *cfg
			if cmd.Flags().Changed("size") {
				c.CanvasSize = size
			}
			if cmd.Flags().Changed("scale") {
				c.DisplayScale = scale
			}
			if cmd.Flags().Changed("reverse") {
				c.Reverse = reverse
			}
			if noBefore {
				c.ShowBefore, c.FinalShowBefore = false, false
			}
			if noAfter {
				c.ShowAfter, c.FinalShowAfter = false, false
			}
			if final {
				c.ShowFinal = true
			}
			if err := c.Validate(); err != nil {
				return err
			}

			sched := controller.NewManualScheduler(time.Now())
			a, err := prog.Open(cmd.Context(), c, sched)
			if err != nil {
				return err
			}
			defer a.Close()

			e := a.Active()
			if cmd.Flags().Changed("progress") {
				_ = a.Dispatch(controller.SliderInput{Value: progress})
			} else {
				_ = a.Dispatch(controller.SliderInput{Value: float64(len(e.List))})
			}

			var frame app.Frame
			if final {
				frame, err = a.FinalFrame()
			} else {
				frame, err = a.Frame()
			}
			if err != nil {
				return err
			}

			if output == "" {
				name := cmdutil.Slug(e.Title)
				if final {
					name += "_final"
				}
				output = cmdutil.DefaultOutput(c, name+".png")
			}
			raster, ok := frame.Surface.(*canvas.Raster)
			if !ok {
				return fmt.Errorf("surface %T cannot be saved", frame.Surface)
			}
			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return err
			}
			if err := raster.SavePNG(output); err != nil {
				return fmt.Errorf("save %s: %w", output, err)
			}

			out := cmd.OutOrStdout()
			snap := frame.Snapshot
			fmt.Fprint(out, ui.KeyValues("",
				ui.KV("Example", ui.Bold(e.Title)),
				ui.KV("Progress", ui.ProgressBar(snap.Progress, snap.Max, 20)),
				ui.KV("Direction", directionLabel(frame)),
				ui.KV("Image", output),
			))

			if html {
				fmt.Fprintln(out, frame.Trace.HTML())
			} else if !noTrace && c.ShowTrace {
				fmt.Fprintln(out)
				fmt.Fprint(out, frame.Trace.ANSI(ui.Renderer(out)))
			}

			if regions != "" {
				img, _ := frame.Image()
				return printRegions(cmd, img, regions)
			}
			return nil
		},
	}

	prog.Bind(cmd)
	f := cmd.Flags()
	f.Float64VarP(&progress, "progress", "p", 0, "Progress value (default: all commands applied)")
	f.BoolVar(&reverse, "reverse", false, "Apply commands from the last one backwards")
	f.BoolVar(&final, "final", false, "Render the final-result panel")
	f.StringVarP(&output, "output", "o", "", "PNG path (default: <output>/<example>.png)")
	f.BoolVar(&noTrace, "no-trace", false, "Do not print the pseudocode")
	f.BoolVar(&html, "html", false, "Print the pseudocode as HTML")
	f.IntVar(&size, "size", config.DefaultCanvasSize, "Canvas size in pixels")
	f.Float64Var(&scale, "scale", 2, "Display scale")
	f.BoolVar(&noBefore, "no-before", false, "Hide the untransformed grid")
	f.BoolVar(&noAfter, "no-after", false, "Hide the transformed grid")
	f.StringVar(&regions, "regions", "", "List painted regions found by a detector: ink or color:<css color>")
	return cmd
}

func directionLabel(f app.Frame) string {
	label := f.Trace.Direction.String()
	if f.Trace.ReverseDisabled {
		label += ui.Muted(" (reverse disabled by save/restore)")
	} else if f.Trace.Direction == interpolator.Reverse {
		label = ui.Accent(label)
	}
	return label
}

func printRegions(cmd *cobra.Command, img image.Image, variant string) error {
	det, err := analyzer.NewDetector(variant)
	if err != nil {
		return err
	}
	blocks, err := det.Detect(img)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(blocks))
	for i, b := range blocks {
		c := b.Center()
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d,%d", b.Rect.Min.X, b.Rect.Min.Y),
			fmt.Sprintf("%dx%d", b.Rect.Dx(), b.Rect.Dy()),
			fmt.Sprintf("%d,%d", c.X, c.Y),
			strconv.Itoa(b.Pixels),
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.InfoMsg("%d region(s) matching %s", len(blocks), variant))
	if len(rows) > 0 {
		fmt.Fprintln(out, ui.Table([]string{"#", "Origin", "Size", "Center", "Pixels"}, rows))
	}

	if cd, ok := det.(*analyzer.ColorDetector); ok {
		centroid := ui.Muted("none")
		if x, y, n, found := analyzer.Centroid(img, cd.Target, cd.Tolerance); found {
			centroid = fmt.Sprintf("%.1f,%.1f over %d px", x, y, n)
		}
		fmt.Fprint(out, ui.KeyValues("", ui.KV("Centroid", centroid)))
	}
	return nil
}
