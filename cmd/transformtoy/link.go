package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/config"
)

func newLinkCmd(cfg *config.Config) *cobra.Command {
	var (
		base          string
		demo          string
		showFinal     bool
		hideInterface bool
		size          int
		qr            string
		qrSize        int
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build a deep link to a view",
		Long: "Build the query string that reopens a view: selected example, final panel, hidden interface\n" +
			"and canvas size. Parameters equal to their defaults are left out.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vs := config.ViewStateOf(*cfg)
			flags := cmd.Flags()
			if flags.Changed("demo") {
				vs.Demo = demo
			}
			if flags.Changed("show-final") {
				vs.ShowFinal = showFinal
			}
			if flags.Changed("hide-interface") {
				vs.HideInterface = hideInterface
			}
			if flags.Changed("size") {
				vs.CanvasSize = size
			}

			link := BuildLink(base, vs)
			fmt.Fprintln(cmd.OutOrStdout(), link)

			if qr != "" {
				if err := ensureDir(filepath.Dir(qr)); err != nil {
					return err
				}
				if err := qrcode.WriteFile(link, qrcode.Medium, qrSize, qr); err != nil {
					return fmt.Errorf("write qr code: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), ui.SuccessMsg("QR code saved to %s", qr))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&base, "base", "index.html", "Page the query is appended to")
	f.StringVar(&demo, "demo", "", "Example title")
	f.BoolVar(&showFinal, "show-final", true, "Show the final-result panel")
	f.BoolVar(&hideInterface, "hide-interface", false, "Hide the controls")
	f.IntVar(&size, "size", config.DefaultCanvasSize, "Canvas size in pixels")
	f.StringVar(&qr, "qr", "", "Also write the link as a QR code PNG")
	f.IntVar(&qrSize, "qr-size", 256, "QR code size in pixels")
	return cmd
}

// BuildLink appends the encoded view state to base.
func BuildLink(base string, vs config.ViewState) string {
	q := vs.Encode()
	if q == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q
}
