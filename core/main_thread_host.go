package core

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultFrameRate      = 60
	defaultHostQueueSize  = 256
	defaultMainThreadName = "main-thread"
)

// MainThreadHostConfig holds configuration options for MainThreadHost.
type MainThreadHostConfig struct {
	// Name labels logs and metrics. Defaults to "main-thread".
	Name string

	// FrameRate is the number of frame slots per second. Defaults to 60.
	FrameRate int

	// QueueSize is the capacity of the task queue. Defaults to 256.
	QueueSize int

	// PanicHandler is called when a task panics. Defaults to DefaultPanicHandler.
	PanicHandler PanicHandler

	// RejectedTaskHandler is called when a task is posted after shutdown.
	// Defaults to DefaultRejectedTaskHandler.
	RejectedTaskHandler RejectedTaskHandler

	// Metrics defaults to NilMetrics.
	Metrics Metrics

	// Logger defaults to NoOpLogger.
	Logger Logger
}

// DefaultMainThreadHostConfig returns a config with default handlers.
func DefaultMainThreadHostConfig() *MainThreadHostConfig {
	return &MainThreadHostConfig{
		Name:                defaultMainThreadName,
		FrameRate:           defaultFrameRate,
		QueueSize:           defaultHostQueueSize,
		PanicHandler:        &DefaultPanicHandler{},
		RejectedTaskHandler: &DefaultRejectedTaskHandler{},
		Metrics:             &NilMetrics{},
		Logger:              NewNoOpLogger(),
	}
}

// MainThreadHost binds a dedicated goroutine that plays the role of a UI
// thread. It runs posted tasks sequentially, drains microtasks after every
// task and delivers frame callbacks on vsync-aligned ticks.
//
// Everything a MainThreadHost executes (tasks, microtasks, frame callbacks)
// runs on the same goroutine, which makes it a valid Host for FrameScheduler.
// Code running elsewhere reaches the scheduler through PostTask.
type MainThreadHost struct {
	// Task queue: Buffered channel for tasks
	workQueue chan Task

	// Lifecycle control
	ctx    context.Context
	cancel context.CancelFunc

	// For graceful shutdown
	stopped      chan struct{}
	once         sync.Once
	closed       atomic.Bool
	shutdownChan chan struct{}
	shutdownOnce sync.Once

	// Timing
	origin        time.Time
	frameRate     int
	frameInterval time.Duration

	// Microtasks may be queued from any goroutine but only run on the loop
	microMu    sync.Mutex
	microtasks []func()
	inTask     atomic.Bool

	framesRequested atomic.Int64
	rejected        atomic.Int64
	lastTaskAt      atomic.Int64

	panicHandler        PanicHandler
	rejectedTaskHandler RejectedTaskHandler
	metrics             Metrics
	logger              Logger

	name string
	mu   sync.Mutex
}

var _ Host = (*MainThreadHost)(nil)

// NewMainThreadHost creates and starts a host with default configuration.
func NewMainThreadHost() *MainThreadHost {
	return NewMainThreadHostWithConfig(DefaultMainThreadHostConfig())
}

// NewMainThreadHostWithConfig creates and starts a host.
// It immediately spawns the dedicated goroutine.
func NewMainThreadHostWithConfig(config *MainThreadHostConfig) *MainThreadHost {
	ctx, cancel := context.WithCancel(context.Background())
	h := &MainThreadHost{
		ctx:          ctx,
		cancel:       cancel,
		stopped:      make(chan struct{}),
		shutdownChan: make(chan struct{}),
		origin:       time.Now(),
		name:         defaultMainThreadName,
		frameRate:    defaultFrameRate,
	}

	queueSize := defaultHostQueueSize
	if config != nil {
		if config.Name != "" {
			h.name = config.Name
		}
		if config.FrameRate > 0 {
			h.frameRate = config.FrameRate
		}
		if config.QueueSize > 0 {
			queueSize = config.QueueSize
		}
		h.panicHandler = config.PanicHandler
		h.rejectedTaskHandler = config.RejectedTaskHandler
		h.metrics = config.Metrics
		h.logger = config.Logger
	}

	if h.panicHandler == nil {
		h.panicHandler = &DefaultPanicHandler{}
	}
	if h.rejectedTaskHandler == nil {
		h.rejectedTaskHandler = &DefaultRejectedTaskHandler{}
	}
	if h.metrics == nil {
		h.metrics = &NilMetrics{}
	}
	if h.logger == nil {
		h.logger = NewNoOpLogger()
	}

	h.workQueue = make(chan Task, queueSize)
	h.frameInterval = time.Second / time.Duration(h.frameRate)

	// Start the dedicated message loop
	go h.runLoop()

	return h
}

// Name returns the name of the host
func (h *MainThreadHost) Name() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.name
}

// SetName sets the name of the host
func (h *MainThreadHost) SetName(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.name = name
}

// FrameInterval returns the duration of one frame slot.
func (h *MainThreadHost) FrameInterval() time.Duration {
	return h.frameInterval
}

// Now returns the time elapsed since the host was created.
func (h *MainThreadHost) Now() time.Duration {
	return time.Since(h.origin)
}

// PostTask submits a task for execution on the host goroutine.
func (h *MainThreadHost) PostTask(task Task) {
	// Check if host is closed to avoid blocking on a dead loop
	if h.closed.Load() {
		h.reject("shutdown")
		return
	}

	select {
	case <-h.ctx.Done():
		// Host stopped, drop task
		h.reject("shutdown")
	case h.workQueue <- task:
		h.metrics.RecordQueueDepth(h.Name(), len(h.workQueue))
	}
}

// PostDelayedTask submits a task after delay.
// Uses time.AfterFunc and re-enters the loop through PostTask.
func (h *MainThreadHost) PostDelayedTask(task Task, delay time.Duration) {
	if h.closed.Load() {
		h.reject("shutdown")
		return
	}

	time.AfterFunc(delay, func() {
		h.PostTask(task)
	})
}

// ScheduleMicrotask queues fn to run after the current task, before any other task.
// When called from outside the host goroutine while it is idle, a drain task
// is posted so the microtask does not wait for unrelated work.
func (h *MainThreadHost) ScheduleMicrotask(fn func()) {
	if fn == nil || h.closed.Load() {
		return
	}
	h.microMu.Lock()
	h.microtasks = append(h.microtasks, fn)
	h.microMu.Unlock()

	if !h.inTask.Load() {
		// A full queue means the loop is busy and will drain after its next task
		select {
		case h.workQueue <- func(context.Context) {}:
		default:
		}
	}
}

// RequestAnimationFrame calls cb on the host goroutine at the next frame boundary.
func (h *MainThreadHost) RequestAnimationFrame(cb FrameCallback) {
	if cb == nil {
		return
	}
	if h.closed.Load() {
		h.reject("shutdown")
		return
	}
	h.framesRequested.Add(1)

	time.AfterFunc(h.untilNextFrame(), func() {
		h.PostTask(func(context.Context) {
			cb(h.Now())
		})
	})
}

// untilNextFrame returns the delay to the next vsync-aligned boundary
func (h *MainThreadHost) untilNextFrame() time.Duration {
	elapsed := h.Now()
	next := (elapsed/h.frameInterval + 1) * h.frameInterval
	return next - elapsed
}

// Shutdown marks the host as closed and signals shutdown waiters.
// Unlike Stop(), this method does NOT immediately terminate the runLoop.
// This allows tasks to call Shutdown() from within themselves.
//
// After calling Shutdown():
// - WaitShutdown() will return
// - IsClosed() will return true
// - New tasks, microtasks and frame requests are rejected
// - Call Stop() to actually terminate the runLoop
func (h *MainThreadHost) Shutdown() {
	h.shutdownOnce.Do(func() {
		h.closed.Store(true)
		close(h.shutdownChan)
		h.logger.Info("main thread host shut down", F("host", h.Name()))
	})
}

// IsClosed returns true if the host has been shut down or stopped
func (h *MainThreadHost) IsClosed() bool {
	return h.closed.Load()
}

// Stop stops the host and waits for the running task to finish.
func (h *MainThreadHost) Stop() {
	h.once.Do(func() {
		// 1. Mark as closed
		h.closed.Store(true)

		// 2. Cancel context to stop the loop
		h.cancel()

		// 3. Wait for runLoop to finish (ensures current task completes)
		<-h.stopped

		h.shutdownOnce.Do(func() {
			close(h.shutdownChan)
		})
	})
}

// Stats returns a snapshot of the host state.
func (h *MainThreadHost) Stats() HostStats {
	h.microMu.Lock()
	microtasks := len(h.microtasks)
	h.microMu.Unlock()

	stats := HostStats{
		Name:            h.Name(),
		Type:            "main_thread",
		Pending:         len(h.workQueue),
		Microtasks:      microtasks,
		FramesRequested: h.framesRequested.Load(),
		Rejected:        h.rejected.Load(),
		Closed:          h.closed.Load(),
		FrameRate:       h.frameRate,
	}
	if ns := h.lastTaskAt.Load(); ns != 0 {
		stats.LastTaskAt = time.Unix(0, ns)
	}
	return stats
}

// runLoop is the core of this host, it occupies a dedicated goroutine
func (h *MainThreadHost) runLoop() {
	defer close(h.stopped) // Signal that Stop() can return

	runCtx := context.WithValue(h.ctx, hostKey, h)

	for {
		select {
		case task := <-h.workQueue:
			h.inTask.Store(true)
			h.runTask(runCtx, task)
			h.drainMicrotasks(runCtx)
			h.inTask.Store(false)

			// Pick up microtasks queued off-thread while we were finishing
			h.drainMicrotasks(runCtx)

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *MainThreadHost) drainMicrotasks(ctx context.Context) {
	for {
		h.microMu.Lock()
		if len(h.microtasks) == 0 {
			h.microMu.Unlock()
			return
		}
		batch := h.microtasks
		h.microtasks = nil
		h.microMu.Unlock()

		for _, fn := range batch {
			h.runTask(ctx, func(context.Context) { fn() })
		}
	}
}

// runTask executes one unit of work and hands panics to the PanicHandler
func (h *MainThreadHost) runTask(ctx context.Context, task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			name := h.Name()
			h.metrics.RecordTaskPanic(name, rec)
			h.panicHandler.HandlePanic(ctx, name, rec, debug.Stack())
		}
	}()
	h.lastTaskAt.Store(time.Now().UnixNano())
	task(ctx)
}

func (h *MainThreadHost) reject(reason string) {
	name := h.Name()
	h.rejected.Add(1)
	h.metrics.RecordTaskRejected(name, reason)
	h.rejectedTaskHandler.HandleRejectedTask(name, reason)
}

// =============================================================================
// Synchronization Methods
// =============================================================================

// WaitIdle blocks until all currently queued tasks have completed execution.
// This is implemented by posting a barrier task and waiting for it to execute.
//
// Returns error if:
// - Context is cancelled or deadline exceeded
// - Host is closed when WaitIdle is called
//
// Note: Frames requested but not yet due are not waited for.
func (h *MainThreadHost) WaitIdle(ctx context.Context) error {
	if h.IsClosed() {
		return fmt.Errorf("wait idle on %s: %w", h.Name(), ErrHostClosed)
	}

	done := make(chan struct{})

	// Post a barrier task that closes the done channel
	h.PostTask(func(taskCtx context.Context) {
		close(done)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FlushAsync posts a barrier task that executes the callback when all prior tasks complete.
// This is a non-blocking alternative to WaitIdle.
func (h *MainThreadHost) FlushAsync(callback func()) {
	h.PostTask(func(ctx context.Context) {
		callback()
	})
}

// WaitShutdown blocks until Shutdown() or Stop() is called on this host.
//
// Returns error if context is cancelled or deadline exceeded.
func (h *MainThreadHost) WaitShutdown(ctx context.Context) error {
	select {
	case <-h.shutdownChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
