package controller

import (
	"context"
	"sort"
	"sync"
	"time"
)

// FrameID identifies a pending frame callback.
type FrameID uint64

// Scheduler runs callbacks once per display frame. Callbacks requested
// while a frame is running run on the next frame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	Cancel(id FrameID)
}

// frames is the pending-callback bookkeeping shared by the schedulers.
type frames struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]func(time.Time)
}

func (f *frames) request(fn func(time.Time)) FrameID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		f.pending = make(map[FrameID]func(time.Time))
	}
	f.next++
	f.pending[f.next] = fn
	return f.next
}

func (f *frames) cancel(id FrameID) {
	f.mu.Lock()
	delete(f.pending, id)
	f.mu.Unlock()
}

// run executes the callbacks pending at the start of the frame in request
// order. A callback cancelled by an earlier one in the same frame is
// skipped.
func (f *frames) run(now time.Time) int {
	f.mu.Lock()
	ids := make([]FrameID, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	f.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		f.mu.Lock()
		fn, ok := f.pending[id]
		delete(f.pending, id)
		f.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		ran++
	}
	return ran
}

func (f *frames) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Loop is a frame scheduler driven by a ticker. Frame callbacks and posted
// functions all run on the goroutine that called Run, so state touched only
// from them needs no locking.
type Loop struct {
	frames
	interval time.Duration
	posts    chan func()
}

// NewLoop creates a loop ticking fps times per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		posts:    make(chan func(), 64),
	}
}

func (l *Loop) RequestFrame(fn func(now time.Time)) FrameID { return l.request(fn) }
func (l *Loop) Cancel(id FrameID)                           { l.cancel(id) }

// Post queues fn to run on the loop goroutine. It blocks while the queue is
// full and gives up when ctx is done.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.posts <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes frames and posted functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case now := <-ticker.C:
			l.run(now)
		}
	}
}

// ManualScheduler runs frames only when told to. It is meant for tests and
// for offline rendering where time is simulated.
type ManualScheduler struct {
	frames
	now time.Time
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (m *ManualScheduler) RequestFrame(fn func(now time.Time)) FrameID { return m.request(fn) }
func (m *ManualScheduler) Cancel(id FrameID)                           { m.cancel(id) }

// Now returns the simulated time.
func (m *ManualScheduler) Now() time.Time { return m.now }

// Pending reports how many frame callbacks are waiting.
func (m *ManualScheduler) Pending() int { return m.len() }

// Advance moves the clock forward by d and runs one frame. It returns the
// number of callbacks that ran.
func (m *ManualScheduler) Advance(d time.Duration) int {
	m.now = m.now.Add(d)
	return m.run(m.now)
}

// RunFor runs frames every interval until d has elapsed or nothing is
// pending.
func (m *ManualScheduler) RunFor(d, interval time.Duration) {
	end := m.now.Add(d)
	for m.now.Before(end) && m.Pending() > 0 {
		m.Advance(interval)
	}
}
