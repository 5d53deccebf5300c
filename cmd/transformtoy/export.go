package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/cmdutil"
	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/controller"
	"github.com/ivlev/transformtoy/internal/director"
	"github.com/ivlev/transformtoy/internal/engine"
	"github.com/ivlev/transformtoy/internal/system"
	"github.com/ivlev/transformtoy/internal/video"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var (
		prog     cmdutil.ProgramFlags
		format   string
		output   string
		timeline string
		duration float64
		fps      int
		workers  int
		encoder  string
		quality  int
		noPanel  bool
		reverse  bool
		stats    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a program as an animation",
		Long: "Export a program as an mp4 (via ffmpeg) or as a numbered PNG sequence.\n" +
			"Progress follows a step timeline: generated, or read with --timeline.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := *cfg
			flags := cmd.Flags()
			if flags.Changed("duration") {
				c.ExportDuration = duration
			}
			if flags.Changed("fps") {
				c.FPS = fps
			}
			if flags.Changed("workers") {
				c.Workers = workers
			}
			if flags.Changed("encoder") {
				c.VideoEncoder = encoder
			}
			if flags.Changed("quality") {
				c.Quality = quality
			}
			if flags.Changed("reverse") {
				c.Reverse = reverse
			}
			if flags.Changed("timeline") {
				c.Timeline = timeline
			}
			if noPanel {
				c.TracePanel = false
			}
			if stats {
				c.ShowStats = true
			}
			if err := c.Validate(); err != nil {
				return err
			}
			if format != "mp4" && format != "png" {
				return fmt.Errorf("unknown format %q, want mp4 or png", format)
			}

			a, err := prog.Open(cmd.Context(), c, controller.NewManualScheduler(time.Now()))
			if err != nil {
				return err
			}
			defer a.Close()
			e := a.Active()

			var enc video.Encoder
			if format == "mp4" {
				if c.VideoEncoder == "" {
					c.VideoEncoder = system.GetBestH264Encoder(cmd.Context())
				}
				enc = &video.FFmpegEncoder{}
			}

			p := engine.NewProject(c, e.Title, e.List, enc)
			if c.Timeline != "" {
				tl, err := director.ReadTimeline(c.Timeline)
				if err != nil {
					return err
				}
				p.Timeline = tl
			}

			p.Output = output
			if p.Output == "" {
				name := cmdutil.Slug(e.Title)
				if format == "mp4" {
					name += ".mp4"
				} else {
					name += "_frames"
				}
				p.Output = cmdutil.DefaultOutput(c, name)
			}
			if format == "mp4" {
				if err := ensureDir(filepath.Dir(p.Output)); err != nil {
					return err
				}
			}

			report, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.SuccessMsg("Exported %s to %s", ui.Bold(e.Title), p.Output))
			if c.ShowStats {
				fmt.Fprint(out, report.String())
			} else {
				fmt.Fprint(out, ui.KeyValues("  ",
					ui.KV("Frames", fmt.Sprintf("%d @ %d fps", report.Frames, c.FPS)),
					ui.KV("Duration", fmt.Sprintf("%.2fs", report.Duration)),
					ui.KV("Encoder", encoderLabel(format, c.VideoEncoder)),
				))
			}
			return nil
		},
	}

	prog.Bind(cmd)
	f := cmd.Flags()
	f.StringVar(&format, "format", "mp4", "Output format: mp4 or png")
	f.StringVarP(&output, "output", "o", "", "Video file or frame directory (default under --output of the config)")
	f.StringVar(&timeline, "timeline", "", "Timeline YAML to follow instead of generating one")
	f.Float64Var(&duration, "duration", 0, "Target animation length in seconds (0: automatic)")
	f.IntVar(&fps, "fps", 30, "Frames per second")
	f.IntVar(&workers, "workers", 0, "Render workers (0: by CPU and memory)")
	f.StringVar(&encoder, "encoder", "", "ffmpeg video encoder (default: best H.264 available)")
	f.IntVar(&quality, "quality", 23, "Quality: CRF for libx264, -cq for nvenc, bitrate/100k for videotoolbox")
	f.BoolVar(&noPanel, "no-panel", false, "Leave the pseudocode panel out of the frames")
	f.BoolVar(&reverse, "reverse", false, "Apply commands from the last one backwards")
	f.BoolVar(&stats, "stats", false, "Print the performance report")
	return cmd
}

func encoderLabel(format, encoder string) string {
	if format == "png" {
		return "png"
	}
	return encoder
}
