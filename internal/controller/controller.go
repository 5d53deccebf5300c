// Package controller owns the progress value of one example and moves it
// in response to user events: free play, eased steps and slider input.
package controller

import (
	"log/slog"
	"math"
	"time"

	"github.com/ivlev/transformtoy/internal/interpolator"
)

const (
	DefaultStep     = 0.02
	DefaultDuration = 300 * time.Millisecond

	integerTolerance = 0.001
)

// State is the controller's mode.
type State int

const (
	Idle State = iota
	Playing
	Animating
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Animating:
		return "animating"
	default:
		return "idle"
	}
}

// Button names the step control that started an animation.
type Button int

const (
	NoButton Button = iota
	First
	Prev
	Next
	Last
)

// Snapshot is what a view needs to redraw.
type Snapshot struct {
	Progress  float64
	Max       float64
	State     State
	Direction interpolator.Direction
	Loop      bool
}

type animation struct {
	button  Button
	start   float64
	target  float64
	began   time.Time
	started bool
}

// Controller is not safe for concurrent use. Dispatch must be called from
// the goroutine that runs the scheduler's frame callbacks.
type Controller struct {
	max        float64
	sched      Scheduler
	onChange   func(Snapshot)
	log        *slog.Logger
	step       float64
	duration   time.Duration
	reversible bool

	state     State
	progress  float64
	direction interpolator.Direction
	loop      bool

	pending    FrameID
	hasPending bool
	anim       animation
	closed     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithStep sets how far progress moves per frame while playing.
func WithStep(step float64) Option {
	return func(c *Controller) {
		if step > 0 {
			c.step = step
		}
	}
}

// WithDuration sets the length of an eased step animation.
func WithDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithLoop makes play wrap around instead of stopping at the end.
func WithLoop(loop bool) Option {
	return func(c *Controller) { c.loop = loop }
}

// WithReversible controls whether SetDirection may select Reverse.
func WithReversible(ok bool) Option {
	return func(c *Controller) { c.reversible = ok }
}

// WithDirection sets the initial direction.
func WithDirection(d interpolator.Direction) Option {
	return func(c *Controller) { c.direction = d }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithProgress sets the initial progress.
func WithProgress(p float64) Option {
	return func(c *Controller) { c.progress = p }
}

// New creates a controller for a list of n commands. onChange, if not nil,
// is called after every progress or state change.
func New(n int, sched Scheduler, onChange func(Snapshot), opts ...Option) *Controller {
	c := &Controller{
		max:        float64(n),
		sched:      sched,
		onChange:   onChange,
		log:        slog.Default(),
		step:       DefaultStep,
		duration:   DefaultDuration,
		reversible: true,
		direction:  interpolator.Forward,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.progress = c.clamp(c.progress)
	if !c.reversible {
		c.direction = interpolator.Forward
	}
	return c
}

func (c *Controller) Progress() float64 { return c.progress }
func (c *Controller) State() State      { return c.state }

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Progress:  c.progress,
		Max:       c.max,
		State:     c.state,
		Direction: c.direction,
		Loop:      c.loop,
	}
}

// Dispatch applies one event. Events after Close are ignored.
func (c *Controller) Dispatch(ev Event) {
	if c.closed {
		return
	}
	switch e := ev.(type) {
	case SliderInput:
		// The slider bypasses the state machine.
		c.progress = c.clamp(e.Value)
		c.notify()
	case TogglePlay:
		if c.state == Playing {
			c.stop()
			c.notify()
			return
		}
		c.play()
	case StepFirst:
		c.animateTo(0, First)
	case StepPrev:
		c.animateTo(c.prevTarget(), Prev)
	case StepNext:
		c.animateTo(c.nextTarget(), Next)
	case StepLast:
		c.animateTo(c.max, Last)
	case Reset:
		c.stop()
		c.progress = 0
		c.notify()
	case SetDirection:
		dir := e.Dir
		if dir == interpolator.Reverse && !c.reversible {
			c.log.Warn("reverse direction is disabled for programs with save/restore")
			dir = interpolator.Forward
		}
		c.direction = dir
		c.notify()
	case SetLoop:
		c.loop = e.Loop
		c.notify()
	default:
		c.log.Warn("ignoring unknown controller event", "event", ev)
	}
}

// Close cancels any pending frame callback. The controller ignores all
// later events.
func (c *Controller) Close() {
	c.cancelFrame()
	c.state = Idle
	c.closed = true
}

func (c *Controller) play() {
	c.cancelFrame()
	c.anim = animation{}
	if !c.loop && c.progress >= c.max {
		c.progress = 0
	}
	c.setState(Playing)
	c.notify()
	c.requestFrame(c.tick)
}

func (c *Controller) tick(time.Time) {
	c.hasPending = false
	if c.state != Playing {
		return
	}

	v := c.progress + c.step
	switch {
	case c.max == 0:
		v = 0
		c.setState(Idle)
	case c.loop:
		v = math.Mod(v, c.max)
	case v >= c.max:
		v = c.max
		c.setState(Idle)
	}
	c.progress = v
	c.notify()

	if c.state == Playing {
		c.requestFrame(c.tick)
	}
}

// prevTarget snaps to the integer below, or one step back when already on
// an integer.
func (c *Controller) prevTarget() float64 {
	v := c.progress
	if onInteger(v) {
		return math.Max(0, math.Round(v)-1)
	}
	return math.Max(0, math.Floor(v))
}

func (c *Controller) nextTarget() float64 {
	v := c.progress
	if onInteger(v) {
		return math.Min(c.max, math.Round(v)+1)
	}
	return math.Min(c.max, math.Ceil(v))
}

func onInteger(v float64) bool {
	return math.Abs(v-math.Round(v)) < integerTolerance
}

func (c *Controller) animateTo(target float64, b Button) {
	if c.state == Animating && c.anim.button == b {
		// Same control again: move the goal, keep the curve.
		c.anim.target = target
		return
	}

	c.cancelFrame()
	c.anim = animation{button: b, start: c.progress, target: target}
	c.setState(Animating)
	c.notify()
	c.requestFrame(c.animate)
}

func (c *Controller) animate(now time.Time) {
	c.hasPending = false
	if c.state != Animating {
		return
	}
	if !c.anim.started {
		c.anim.began = now
		c.anim.started = true
	}

	t := float64(now.Sub(c.anim.began)) / float64(c.duration)
	if t >= 1 {
		c.progress = c.anim.target
		c.anim = animation{}
		c.setState(Idle)
		c.notify()
		return
	}

	c.progress = interpolator.Lerp(c.anim.start, c.anim.target, interpolator.EaseInOutCubic(t))
	c.notify()
	c.requestFrame(c.animate)
}

func (c *Controller) stop() {
	c.cancelFrame()
	c.anim = animation{}
	c.setState(Idle)
}

func (c *Controller) setState(s State) {
	if c.state != s {
		c.log.Debug("controller state", "from", c.state, "to", s, "progress", c.progress)
	}
	c.state = s
}

// requestFrame keeps at most one callback pending.
func (c *Controller) requestFrame(fn func(time.Time)) {
	c.cancelFrame()
	c.pending = c.sched.RequestFrame(fn)
	c.hasPending = true
}

func (c *Controller) cancelFrame() {
	if c.hasPending {
		c.sched.Cancel(c.pending)
		c.hasPending = false
	}
}

func (c *Controller) clamp(v float64) float64 {
	return math.Max(0, math.Min(c.max, v))
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}
