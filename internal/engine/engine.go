// Package engine exports an example as an animation: every frame is
// rendered at the progress its timeline prescribes and handed, in order,
// to a video stream or a numbered PNG sequence.
package engine

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/transformtoy/internal/canvas"
	"github.com/ivlev/transformtoy/internal/command"
	"github.com/ivlev/transformtoy/internal/config"
	"github.com/ivlev/transformtoy/internal/director"
	"github.com/ivlev/transformtoy/internal/interpolator"
	"github.com/ivlev/transformtoy/internal/renderer"
	"github.com/ivlev/transformtoy/internal/system"
	"github.com/ivlev/transformtoy/internal/video"
)

const tracerName = "github.com/ivlev/transformtoy/internal/engine"

// framesPerWorker bounds how far rendering may run ahead of the writer.
const framesPerWorker = 2

// Project is one export job.
type Project struct {
	Config config.Config
	Title  string
	List   command.List
	// Timeline drives progress over time. When nil, Run generates one
	// with the default director.
	Timeline *director.Timeline
	// Encoder streams frames into a video at Output. When nil, frames are
	// written as PNG files into the Output directory.
	Encoder video.Encoder
	Output  string

	Log    *slog.Logger
	tracer trace.Tracer

	layout  layout
	rasters sync.Pool
	pool    *system.ImagePool
}

// Report summarises a finished export.
type Report struct {
	Title      string
	Output     string
	Frames     int
	Workers    int
	Duration   float64
	RenderTime time.Duration
	TotalTime  time.Duration
}

func (r Report) String() string {
	fps := 0.0
	if r.TotalTime > 0 {
		fps = float64(r.Frames) / r.TotalTime.Seconds()
	}
	return fmt.Sprintf(
		"--- [EXPORT REPORT] ---\n"+
			"Example: %s\n"+
			"Output: %s\n"+
			"Frames: %d (%.2fs of animation)\n"+
			"Workers: %d\n"+
			"Rendering: %.2fs\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"-----------------------\n",
		r.Title, r.Output, r.Frames, r.Duration, r.Workers,
		r.RenderTime.Seconds(), r.TotalTime.Seconds(), fps,
	)
}

// NewProject prepares an export of list.
func NewProject(cfg config.Config, title string, list command.List, enc video.Encoder) *Project {
	return &Project{
		Config:  cfg,
		Title:   title,
		List:    list,
		Encoder: enc,
		Output:  cfg.Output,
	}
}

// DefaultDuration is the animation length that gives every command a
// comfortable hold with the default director.
func DefaultDuration(n int) float64 {
	d := director.NewDirector()
	return d.Intro + d.Outro + float64(n)*(d.Transition+1.5)
}

// FrameCount is the number of frames needed to show duration seconds at
// fps, never less than one.
func FrameCount(duration float64, fps int) int {
	n := int(math.Round(duration * float64(fps)))
	if n < 1 {
		n = 1
	}
	return n
}

func (p *Project) init() error {
	if p.Log == nil {
		p.Log = slog.Default()
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(tracerName)
	}
	if p.Config.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", p.Config.FPS)
	}
	if p.Timeline == nil {
		labels := make([]string, len(p.List))
		for i, c := range p.List {
			labels[i] = c.String()
		}
		duration := p.Config.ExportDuration
		if duration <= 0 {
			duration = DefaultDuration(len(p.List))
		}
		reverse := p.Config.Reverse && p.List.Reversible()
		tl, err := director.NewDirector().GenerateTimeline(p.Title, labels, duration, reverse)
		if err != nil {
			return fmt.Errorf("generate timeline: %w", err)
		}
		p.Timeline = tl
	}

	size := p.Config.CanvasSize
	if size <= 0 {
		size = config.DefaultCanvasSize
	}
	p.layout = newLayout(size, p.Config.TracePanel)
	p.rasters.New = func() any { return canvas.NewRaster(size, size) }
	if p.pool == nil {
		p.pool = system.NewImagePool()
	}
	return nil
}

func (p *Project) direction() interpolator.Direction {
	if p.Timeline != nil && p.Timeline.Reverse {
		return interpolator.Reverse
	}
	return interpolator.Forward
}

// progressAt is the timeline progress at frame i, clamped to the list.
func (p *Project) progressAt(i int) float64 {
	t := float64(i) / float64(p.Config.FPS)
	v := interpolator.InterpolateKeyframes(p.Timeline.Keyframes, t)
	return math.Max(0, math.Min(float64(len(p.List)), v))
}

// Run renders and writes every frame.
func (p *Project) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	if err := p.init(); err != nil {
		return nil, err
	}

	frames := FrameCount(p.Timeline.Duration, p.Config.FPS)
	frameBytes := p.layout.frame.Dx() * p.layout.frame.Dy() * 4
	workers := system.Workers(p.Config.Workers, frameBytes)
	if workers > frames {
		workers = frames
	}

	ctx, span := p.tracer.Start(ctx, "engine.Run", trace.WithAttributes(
		attribute.String("example", p.Title),
		attribute.Int("frames", frames),
		attribute.Int("workers", workers),
	))
	defer span.End()

	p.Log.Info("Exporting animation",
		"example", p.Title, "frames", frames, "fps", p.Config.FPS,
		"size", fmt.Sprintf("%dx%d", p.layout.frame.Dx(), p.layout.frame.Dy()),
		"workers", workers, "output", p.Output)

	out, err := p.open(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	renderStart := time.Now()
	err = p.pipeline(ctx, out, frames, workers)
	renderTime := time.Since(renderStart)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("finish output: %w", cerr)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report := &Report{
		Title:      p.Title,
		Output:     p.Output,
		Frames:     frames,
		Workers:    workers,
		Duration:   p.Timeline.Duration,
		RenderTime: renderTime,
		TotalTime:  time.Since(start),
	}
	p.Log.Info("Export finished", "example", p.Title, "frames", frames, "elapsed", report.TotalTime)
	return report, nil
}

func (p *Project) open(ctx context.Context) (video.FrameWriter, error) {
	if p.Encoder == nil {
		return newPNGSequence(p.Output)
	}
	w, err := p.Encoder.Start(ctx, video.Params{
		Path:    p.Output,
		Width:   p.layout.frame.Dx(),
		Height:  p.layout.frame.Dy(),
		FPS:     p.Config.FPS,
		Encoder: p.Config.VideoEncoder,
		Quality: p.Config.Quality,
	})
	if err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}
	return w, nil
}

// pipeline: jobs -> render workers -> per-frame slots -> ordered writer.
func (p *Project) pipeline(ctx context.Context, out video.FrameWriter, frames, workers int) error {
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan int)
	window := make(chan struct{}, workers*framesPerWorker)
	slots := make([]chan *image.RGBA, frames)
	for i := range slots {
		slots[i] = make(chan *image.RGBA, 1)
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < frames; i++ {
			select {
			case window <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				img, err := p.renderFrame(ctx, i)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				slots[i] <- img
			}
			return nil
		})
	}

	g.Go(func() error {
		for i := 0; i < frames; i++ {
			var img *image.RGBA
			select {
			case img = <-slots[i]:
			case <-ctx.Done():
				return ctx.Err()
			}
			err := out.WriteFrame(img)
			p.pool.Put(img)
			<-window
			if err != nil {
				return err
			}
			if (i+1)%p.Config.FPS == 0 || i == frames-1 {
				p.Log.Debug("Frames written", "done", i+1, "total", frames)
			}
		}
		return nil
	})

	return g.Wait()
}

// renderFrame draws frame i into a pooled buffer.
func (p *Project) renderFrame(ctx context.Context, i int) (*image.RGBA, error) {
	progress := p.progressAt(i)
	_, span := p.tracer.Start(ctx, "engine.renderFrame", trace.WithAttributes(
		attribute.Int("frame", i),
		attribute.Float64("progress", progress),
	))
	defer span.End()

	r := p.rasters.Get().(*canvas.Raster)
	defer p.rasters.Put(r)

	opts := renderer.DefaultOptions()
	if p.Config.DisplayScale > 0 {
		opts.Scale = p.Config.DisplayScale
	}
	opts.ShowBefore = p.Config.ShowBefore
	opts.ShowAfter = p.Config.ShowAfter
	opts.Logger = p.Log

	tr, err := renderer.Render(r, p.List, progress, p.direction(), opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	dst := p.pool.Get(p.layout.frame)
	draw.Draw(dst, dst.Rect, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, p.layout.canvas, r.Image(), image.Point{}, draw.Src)
	if p.layout.panel != (image.Rectangle{}) {
		drawTracePanel(dst, p.layout.panel, tr)
	}
	return dst, nil
}
