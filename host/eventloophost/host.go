// Package eventloophost drives a FrameScheduler from a
// github.com/joeycumines/go-eventloop Loop.
//
// The loop provides the single logical thread the scheduler needs: frame
// callbacks are submitted as loop tasks and microtasks go to the loop's
// microtask queue, so both run on the loop goroutine and microtasks always
// drain before the next frame callback.
package eventloophost

import (
	"sync"
	"sync/atomic"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"

	"github.com/Swind/go-frame-scheduler/core"
)

const (
	defaultFrameRate = 60
	defaultName      = "eventloop"
)

// Option configures a Host.
type Option func(*Host)

// WithFrameRate sets the number of frame slots per second. Values <= 0 are ignored.
func WithFrameRate(fps int) Option {
	return func(h *Host) {
		if fps > 0 {
			h.frameRate = fps
		}
	}
}

// WithLogger sets the logger used for submission failures.
func WithLogger(logger core.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink for rejected work.
func WithMetrics(metrics core.Metrics) Option {
	return func(h *Host) {
		if metrics != nil {
			h.metrics = metrics
		}
	}
}

// WithName sets the name used in logs, metrics and stats.
func WithName(name string) Option {
	return func(h *Host) {
		if name != "" {
			h.name = name
		}
	}
}

// Host is a core.Host backed by an event loop.
//
// Frame callbacks requested within one frame interval are batched and
// delivered together on the next vsync-aligned tick, in request order, all
// with the same timestamp.
type Host struct {
	loop *eventloop.Loop

	name          string
	frameRate     int
	frameInterval time.Duration
	origin        time.Time

	logger  core.Logger
	metrics core.Metrics

	mu        sync.Mutex
	callbacks []core.FrameCallback
	armed     bool

	framesRequested atomic.Int64
	rejected        atomic.Int64
	lastTaskAt      atomic.Int64
}

var _ core.Host = (*Host)(nil)

// New creates a Host on loop. The caller owns the loop and is responsible for
// running and shutting it down.
func New(loop *eventloop.Loop, opts ...Option) *Host {
	if loop == nil {
		panic("eventloophost: nil loop")
	}
	h := &Host{
		loop:      loop,
		name:      defaultName,
		frameRate: defaultFrameRate,
		origin:    time.Now(),
		logger:    core.NewNoOpLogger(),
		metrics:   &core.NilMetrics{},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.frameInterval = time.Second / time.Duration(h.frameRate)
	return h
}

// Name returns the host name.
func (h *Host) Name() string { return h.name }

// Loop returns the underlying event loop.
func (h *Host) Loop() *eventloop.Loop { return h.loop }

// FrameInterval returns the duration of one frame slot.
func (h *Host) FrameInterval() time.Duration { return h.frameInterval }

// Now returns the time elapsed since the host was created.
func (h *Host) Now() time.Duration {
	return time.Since(h.origin)
}

// ScheduleMicrotask queues fn on the loop's microtask queue. Call it from
// the loop goroutine; other goroutines should go through Post.
func (h *Host) ScheduleMicrotask(fn func()) {
	if fn == nil {
		return
	}
	if err := h.loop.ScheduleMicrotask(fn); err != nil {
		h.reject("microtask", err)
	}
}

// RequestAnimationFrame calls cb on the loop at the next frame boundary.
func (h *Host) RequestAnimationFrame(cb core.FrameCallback) {
	if cb == nil {
		return
	}
	h.framesRequested.Add(1)

	h.mu.Lock()
	h.callbacks = append(h.callbacks, cb)
	arm := !h.armed
	h.armed = true
	h.mu.Unlock()

	if arm {
		time.AfterFunc(h.untilNextFrame(), h.tick)
	}
}

// Post submits fn to run on the loop as a regular task.
func (h *Host) Post(fn func()) error {
	if err := h.loop.Submit(fn); err != nil {
		h.reject("task", err)
		return err
	}
	return nil
}

// Stats returns a snapshot of the host state.
func (h *Host) Stats() core.HostStats {
	h.mu.Lock()
	pending := len(h.callbacks)
	h.mu.Unlock()

	stats := core.HostStats{
		Name:            h.name,
		Type:            "eventloop",
		Pending:         pending,
		FramesRequested: h.framesRequested.Load(),
		Rejected:        h.rejected.Load(),
		Closed:          h.loop.State() == eventloop.StateTerminated,
		FrameRate:       h.frameRate,
	}
	if ns := h.lastTaskAt.Load(); ns != 0 {
		stats.LastTaskAt = time.Unix(0, ns)
	}
	return stats
}

func (h *Host) untilNextFrame() time.Duration {
	elapsed := h.Now()
	next := (elapsed/h.frameInterval + 1) * h.frameInterval
	return next - elapsed
}

// tick runs on the timer goroutine and hands the batch to the loop
func (h *Host) tick() {
	err := h.loop.Submit(func() {
		h.mu.Lock()
		callbacks := h.callbacks
		h.callbacks = nil
		h.armed = false
		h.mu.Unlock()

		h.lastTaskAt.Store(time.Now().UnixNano())
		timestamp := h.Now()
		for _, cb := range callbacks {
			cb(timestamp)
		}
	})
	if err != nil {
		h.mu.Lock()
		dropped := len(h.callbacks)
		h.callbacks = nil
		h.armed = false
		h.mu.Unlock()

		h.reject("frame", err, core.F("callbacks", dropped))
	}
}

func (h *Host) reject(kind string, err error, fields ...core.Field) {
	h.rejected.Add(1)
	h.metrics.RecordTaskRejected(h.name, kind)
	h.logger.Error("event loop rejected "+kind,
		append([]core.Field{core.F("host", h.name), core.F("error", err)}, fields...)...)
}
