// Package app ties the catalogue, configuration and the active example
// together. One App drives one view; it is not safe for concurrent use and
// must be called from the goroutine that runs the scheduler's callbacks.
package app

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/catalog"
	"github.com/ivlev/transformtoy/internal/command"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/controller"
	"github.com/ivlev/transformtoy/internal/interpolator"
	"github.com/ivlev/transformtoy/internal/renderer"
)

// CustomTitle names the example created by Custom when nothing is selected.
const CustomTitle = "Custom"

var (
	ErrUnknownExample = errors.New("unknown example")
	ErrNoExample      = errors.New("no example selected")
)

// SurfaceFunc creates a drawing surface of the given size.
type SurfaceFunc func(width, height int) canvas.Surface

// Frame is one rendered view of the active example.
type Frame struct {
	Title    string
	Surface  canvas.Surface
	Trace    *renderer.Trace
	Snapshot controller.Snapshot
}

// Image returns the frame's pixels when the surface is a raster.
func (f Frame) Image() (image.Image, bool) {
	r, ok := f.Surface.(interface{ Image() image.Image })
	if !ok {
		return nil, false
	}
	return r.Image(), true
}

// Example is the per-example state: its program, its own progress
// controller and its own surfaces.
type Example struct {
	Title      string
	List       command.List
	Custom     bool
	Controller *controller.Controller

	surface canvas.Surface
	final   canvas.Surface
}

// App is the top-level application state.
type App struct {
	cfg        config.Config
	catalog    catalog.Catalog
	sched      controller.Scheduler
	newSurface SurfaceFunc
	onChange   func(*Example, controller.Snapshot)
	log        *slog.Logger

	active *Example
}

// Option configures an App.
type Option func(*App)

// WithSurface replaces the default raster surfaces.
func WithSurface(fn SurfaceFunc) Option {
	return func(a *App) { a.newSurface = fn }
}

// WithOnChange registers a callback run after every progress change of
// the active example.
func WithOnChange(fn func(*Example, controller.Snapshot)) Option {
	return func(a *App) { a.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// New creates an App. Nothing is selected until Select or Custom is called.
func New(cfg config.Config, cat catalog.Catalog, sched controller.Scheduler, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		catalog: cat,
		sched:   sched,
		newSurface: func(w, h int) canvas.Surface {
			return canvas.NewRaster(w, h)
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Config() config.Config       { return a.cfg }
func (a *App) Catalog() catalog.Catalog    { return a.catalog }
func (a *App) Active() *Example            { return a.active }
func (a *App) Titles() []string            { return a.catalog.Titles() }
func (a *App) ViewState() config.ViewState { return config.ViewStateOf(a.cfg) }

// Select makes the catalogue example matching title active. The previous
// example's controller is closed first so none of its frame callbacks run
// against discarded state.
func (a *App) Select(title string) (*Example, error) {
	e, ok := a.catalog.Find(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExample, title)
	}
	a.activate(e.Title, e.Transformations, e.Custom())
	a.cfg.Example = e.Title
	return a.active, nil
}

// Custom parses text and runs it as the active program. A custom example
// that is already selected keeps its title. On a parse error the active
// example is left untouched.
func (a *App) Custom(text string) (*Example, error) {
	list, err := command.ParseAll(text)
	if err != nil {
		return nil, err
	}
	title := CustomTitle
	if a.active != nil && a.active.Custom {
		title = a.active.Title
	}
	a.activate(title, list, true)
	return a.active, nil
}

// Close stops the active example.
func (a *App) Close() {
	if a.active != nil {
		a.active.Controller.Close()
		a.active = nil
	}
}

func (a *App) activate(title string, list command.List, custom bool) {
	a.Close()

	size := a.cfg.CanvasSize
	if size <= 0 {
		size = config.DefaultCanvasSize
	}
	e := &Example{
		Title:   title,
		List:    list,
		Custom:  custom,
		surface: a.newSurface(size, size),
	}
	if a.cfg.ShowFinal {
		e.final = a.newSurface(size, size)
	}

	dir := interpolator.Forward
	if a.cfg.Reverse {
		dir = interpolator.Reverse
	}
	e.Controller = controller.New(len(list), a.sched, func(s controller.Snapshot) {
		if a.onChange != nil && a.active == e {
			a.onChange(e, s)
		}
	},
		controller.WithStep(a.cfg.SliderStep),
		controller.WithDuration(a.cfg.AnimationDuration),
		controller.WithLoop(a.cfg.Loop),
		controller.WithReversible(list.Reversible()),
		controller.WithDirection(dir),
		controller.WithLogger(a.log.With("example", title)),
	)
	a.active = e
	a.log.Debug("Example selected", "example", title, "commands", len(list), "custom", custom)
}

// Dispatch forwards ev to the active example's controller.
func (a *App) Dispatch(ev controller.Event) error {
	if a.active == nil {
		return ErrNoExample
	}
	a.active.Controller.Dispatch(ev)
	return nil
}

// Frame renders the active example at its current progress.
func (a *App) Frame() (Frame, error) {
	if a.active == nil {
		return Frame{}, ErrNoExample
	}
	e := a.active
	snap := e.Controller.Snapshot()
	opts := a.renderOptions(a.cfg.ShowBefore, a.cfg.ShowAfter)
	trace, err := renderer.Render(e.surface, e.List, snap.Progress, snap.Direction, opts)
	if err != nil {
		return Frame{}, fmt.Errorf("render %q: %w", e.Title, err)
	}
	return Frame{Title: e.Title, Surface: e.surface, Trace: trace, Snapshot: snap}, nil
}

// FinalFrame renders the active example with every command fully applied,
// using the final panel's own grid toggles.
func (a *App) FinalFrame() (Frame, error) {
	if a.active == nil {
		return Frame{}, ErrNoExample
	}
	e := a.active
	s := e.final
	if s == nil {
		s = e.surface
	}
	n := float64(len(e.List))
	opts := a.renderOptions(a.cfg.FinalShowBefore, a.cfg.FinalShowAfter)
	trace, err := renderer.Render(s, e.List, n, interpolator.Forward, opts)
	if err != nil {
		return Frame{}, fmt.Errorf("render final %q: %w", e.Title, err)
	}
	snap := e.Controller.Snapshot()
	snap.Progress = n
	return Frame{Title: e.Title, Surface: s, Trace: trace, Snapshot: snap}, nil
}

func (a *App) renderOptions(before, after bool) renderer.Options {
	opts := renderer.DefaultOptions()
	if a.cfg.DisplayScale > 0 {
		opts.Scale = a.cfg.DisplayScale
	}
	opts.ShowBefore = before
	opts.ShowAfter = after
	opts.Logger = a.log
	return opts
}
