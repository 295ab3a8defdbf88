package framescheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/Swind/go-frame-scheduler/core"
)

// FrameLoopConfig configures a FrameLoop. Zero values fall back to defaults.
type FrameLoopConfig struct {
	// FrameRate is the number of frames per second. Defaults to 60.
	FrameRate int

	// StrictMode makes usage errors and task panics surface as panics
	// carrying *core.UsageError / *core.TaskPanicError.
	StrictMode bool

	// Visibility gates animations. Defaults to always visible.
	Visibility core.VisibilityObserver

	Logger  core.Logger
	Metrics core.Metrics

	// PanicHandler receives panics escaping frame work. Defaults to core.DefaultPanicHandler.
	PanicHandler core.PanicHandler
}

// FrameLoop bundles a MainThreadHost with a FrameScheduler running on it.
//
// Code on other goroutines reaches the scheduler through Post or Run; the
// task then runs on the host goroutine with the scheduler in its context.
type FrameLoop struct {
	id        string
	host      *core.MainThreadHost
	scheduler *core.FrameScheduler
	logger    core.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	running   bool
	stopped   bool
	runningMu sync.RWMutex
}

// NewFrameLoop creates a FrameLoop. The host goroutine starts immediately,
// but work is only accepted between Start and Stop.
func NewFrameLoop(id string, config FrameLoopConfig) *FrameLoop {
	logger := config.Logger
	if logger == nil {
		logger = core.NewNoOpLogger()
	}

	hostConfig := core.DefaultMainThreadHostConfig()
	hostConfig.Name = id + "-host"
	hostConfig.Logger = logger
	if config.FrameRate > 0 {
		hostConfig.FrameRate = config.FrameRate
	}
	if config.Metrics != nil {
		hostConfig.Metrics = config.Metrics
	}
	if config.PanicHandler != nil {
		hostConfig.PanicHandler = config.PanicHandler
	}
	host := core.NewMainThreadHostWithConfig(hostConfig)

	schedulerConfig := core.DefaultFrameSchedulerConfig()
	schedulerConfig.Name = id
	schedulerConfig.StrictMode = config.StrictMode
	schedulerConfig.Visibility = config.Visibility
	schedulerConfig.Logger = logger
	schedulerConfig.Metrics = config.Metrics

	return &FrameLoop{
		id:        id,
		host:      host,
		scheduler: core.NewFrameSchedulerWithConfig(host, schedulerConfig),
		logger:    logger,
	}
}

// Start begins accepting work. The loop stops when ctx is done.
func (l *FrameLoop) Start(ctx context.Context) error {
	l.runningMu.Lock()
	defer l.runningMu.Unlock()

	if l.stopped {
		return fmt.Errorf("start frame loop %s: %w", l.id, core.ErrHostClosed)
	}
	if l.running {
		return nil // Already running
	}

	l.ctx, l.cancel = context.WithCancel(ctx)
	l.running = true

	go func(ctx context.Context) {
		<-ctx.Done()
		l.Stop()
	}(l.ctx)

	l.logger.Info("frame loop started",
		core.F("loop", l.id),
		core.F("frame_interval", l.host.FrameInterval()),
	)
	return nil
}

// Stop stops the loop and its host, waiting for the running task to finish.
// A stopped loop cannot be restarted.
func (l *FrameLoop) Stop() {
	l.runningMu.Lock()
	if l.stopped {
		l.runningMu.Unlock()
		return
	}
	l.stopped = true
	l.running = false
	cancel := l.cancel
	l.runningMu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.host.Stop()

	l.logger.Info("frame loop stopped",
		core.F("loop", l.id),
		core.F("frames", l.scheduler.Clock().Now()),
	)
}

// ID returns the ID of the loop
func (l *FrameLoop) ID() string {
	return l.id
}

// IsRunning returns whether the loop accepts work
func (l *FrameLoop) IsRunning() bool {
	l.runningMu.RLock()
	defer l.runningMu.RUnlock()
	return l.running
}

// Scheduler returns the frame scheduler. Its methods must only be called from
// tasks running on the loop.
func (l *FrameLoop) Scheduler() *core.FrameScheduler {
	return l.scheduler
}

// Host returns the host goroutine driving the scheduler.
func (l *FrameLoop) Host() *core.MainThreadHost {
	return l.host
}

// Post runs task on the host goroutine. The task context carries the
// scheduler (core.SchedulerFromContext) and the host (core.HostFromContext).
func (l *FrameLoop) Post(task Task) error {
	if task == nil {
		return nil
	}
	if !l.IsRunning() {
		return fmt.Errorf("post to frame loop %s: %w", l.id, core.ErrLoopNotRunning)
	}
	l.host.PostTask(func(ctx context.Context) {
		task(core.WithScheduler(ctx, l.scheduler))
	})
	return nil
}

// Run posts task and waits until it has run or ctx is done.
func (l *FrameLoop) Run(ctx context.Context, task Task) error {
	done := make(chan struct{})
	err := l.Post(func(taskCtx context.Context) {
		defer close(done)
		task(taskCtx)
	})
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// =============================================================================
// Global Frame Loop Helper (Singleton)
// =============================================================================

var (
	globalFrameLoop *FrameLoop
	globalMu        sync.Mutex
)

// InitGlobalFrameLoop initializes the global frame loop at frameRate frames
// per second. It starts the loop immediately.
func InitGlobalFrameLoop(frameRate int) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalFrameLoop != nil {
		return // Already initialized
	}

	globalFrameLoop = NewFrameLoop("global-frame-loop", FrameLoopConfig{FrameRate: frameRate})
	_ = globalFrameLoop.Start(context.Background())
}

// GetGlobalFrameLoop returns the global frame loop instance.
// It panics if InitGlobalFrameLoop has not been called.
func GetGlobalFrameLoop() *FrameLoop {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalFrameLoop == nil {
		panic("GlobalFrameLoop not initialized. Call InitGlobalFrameLoop() first.")
	}
	return globalFrameLoop
}

// ShutdownGlobalFrameLoop stops the global frame loop.
func ShutdownGlobalFrameLoop() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalFrameLoop != nil {
		globalFrameLoop.Stop()
		globalFrameLoop = nil
	}
}
