// Package cmdutil holds the flag plumbing shared by transformtoy commands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/ivlev/transformtoy/cmd/transformtoy/ui"
	"github.com/ivlev/transformtoy/internal/app"
	"github.com/ivlev/transformtoy/internal/catalog"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/controller"
	"github.com/ivlev/transformtoy/internal/system"
)

// DefaultConfigFile is loaded from the working directory when --config is
// not given.
const DefaultConfigFile = "transformtoy.yaml"

// Globals are the root persistent flags.
type Globals struct {
	Debug      bool
	NoColor    bool
	ConfigPath string
	Catalog    string
	View       string
}

func (g *Globals) Bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.BoolVar(&g.Debug, "debug", false, "Enable debug logging")
	f.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
	f.StringVar(&g.ConfigPath, "config", "", "Config file (default ./"+DefaultConfigFile+" when present)")
	f.StringVar(&g.Catalog, "catalog", "", "Example list file or URL")
	f.StringVar(&g.View, "view", "", "Deep-link query to apply, e.g. \"demo=Basics&canvasSize=300\"")
}

// Config layers defaults, the config file, TRANSFORMTOY_* variables, the
// --view query and --catalog.
func (g *Globals) Config() (config.Config, error) {
	cfg := config.Default()

	path := g.ConfigPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := config.LoadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if g.View != "" {
		vs, err := config.ParseQuery(g.View)
		if err != nil {
			return cfg, fmt.Errorf("parse --view: %w", err)
		}
		vs.Apply(&cfg)
	}
	if g.Catalog != "" {
		cfg.Catalog = g.Catalog
	}
	if g.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// LoadCatalog fetches the configured example list. A directory source
// means its most recently modified list. An unavailable list is reported
// on stderr and yields an empty catalogue.
func LoadCatalog(ctx context.Context, cfg config.Config) catalog.Catalog {
	source := cfg.Catalog
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		latest, err := system.FindLatestCatalog(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.WarnMsg("%v", err))
			return catalog.Catalog{}
		}
		source = latest
	}
	cat, err := catalog.NewLoader(cfg.FetchTimeout).Load(ctx, source)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.WarnMsg("%v", err))
	}
	return cat
}

// ProgramFlags choose what to run: a catalogue example or a free-text file.
type ProgramFlags struct {
	Example string
	File    string
}

func (p *ProgramFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.Example, "example", "e", "", "Example title (case-insensitive)")
	cmd.Flags().StringVarP(&p.File, "file", "f", "", "Free-text program file, - for stdin")
}

// Open builds an App and activates the chosen program on it. The catalogue
// is only fetched when an example is named.
func (p *ProgramFlags) Open(ctx context.Context, cfg config.Config, sched controller.Scheduler, opts ...app.Option) (*app.App, error) {
	if p.File != "" {
		text, err := ReadProgram(p.File)
		if err != nil {
			return nil, err
		}
		a := app.New(cfg, nil, sched, opts...)
		if _, err := a.Custom(text); err != nil {
			return nil, err
		}
		return a, nil
	}

	title := p.Example
	if title == "" {
		title = cfg.Example
	}
	if title == "" {
		return nil, errors.New("choose an example with --example or a program with --file")
	}
	a := app.New(cfg, LoadCatalog(ctx, cfg), sched, opts...)
	e, err := a.Select(title)
	if err != nil {
		return nil, err
	}
	if e.Custom {
		return nil, fmt.Errorf("example %q is a free-text example; pass the program with --file", e.Title)
	}
	return a, nil
}

// ReadProgram reads a free-text program from path or stdin.
func ReadProgram(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(data), nil
}

// Slug turns a title into a file-name friendly string.
func Slug(title string) string {
	var sb strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && sb.Len() > 0 {
			sb.WriteByte('_')
			underscore = true
		}
	}
	s := strings.TrimSuffix(sb.String(), "_")
	if s == "" {
		return "program"
	}
	return s
}

// DefaultOutput places name under the configured output directory.
func DefaultOutput(cfg config.Config, name string) string {
	return filepath.Join(cfg.Output, name)
}
