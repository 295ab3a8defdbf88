package core

import (
	"context"
	"runtime/debug"
	"sync/atomic"
	"time"
)

const defaultSchedulerName = "frame-scheduler"

// Frame phases, reported in *TaskPanicError
const (
	PhaseDOMRead   = "dom-read"
	PhaseRead      = "read"
	PhaseWrite     = "write"
	PhaseUpdate    = "update"
	PhaseAnimation = "animation"
	PhaseAfter     = "after"
	PhaseAutofocus = "autofocus"
)

// Focusable is an element that can receive input focus.
type Focusable interface {
	Focus()
}

// FrameScheduler batches DOM reads, component updates, DOM writes and
// post-write callbacks into frames driven by a Host.
//
// The scheduler owns two TaskGroups. Work scheduled through NextFrame goes
// into the group that runs on the next frame; CurrentFrame lets work scheduled
// from inside a running frame join it. Each frame drains reads, then writes
// and component updates, repeating until no read, write or update work is
// left, then runs animations (when visible), after-tasks and autofocus.
//
// A FrameScheduler is confined to its host's execution context: every method
// except Stats, RecentFrames, LastFrame and FrameStartTime must be called
// from the goroutine that runs the host's frame callbacks and microtasks.
type FrameScheduler struct {
	name   string
	strict bool

	host       Host
	microtasks MicrotaskScheduler
	visibility VisibilityObserver
	animations AnimationDriver
	domReaders DOMReaderExecutor
	clock      *Clock
	logger     Logger
	metrics    Metrics

	ctx    context.Context
	update Task

	currentFrame *TaskGroup
	nextFrame    *TaskGroup

	pending           atomic.Bool
	currentFrameReady atomic.Bool
	frameStartTime    atomic.Int64 // time.Duration since host origin

	autofocused Focusable
	phase       string

	lockViolations atomic.Int64
	history        *frameHistory

	// Bound once so scheduling a frame does not allocate
	requestHostFrameFn func()
	handleFrameFn      FrameCallback
}

// NewFrameScheduler creates a scheduler on host with default collaborators.
func NewFrameScheduler(host Host) *FrameScheduler {
	return NewFrameSchedulerWithConfig(host, DefaultFrameSchedulerConfig())
}

// NewFrameSchedulerWithConfig creates a scheduler on host.
// Nil config fields fall back to the defaults of DefaultFrameSchedulerConfig.
func NewFrameSchedulerWithConfig(host Host, config *FrameSchedulerConfig) *FrameScheduler {
	if host == nil {
		panic("FrameScheduler requires a Host")
	}

	s := &FrameScheduler{
		name: defaultSchedulerName,
		host: host,
	}

	// Apply config
	var parent context.Context
	historySize := 0
	if config != nil {
		if config.Name != "" {
			s.name = config.Name
		}
		s.strict = config.StrictMode
		parent = config.Context
		s.microtasks = config.Microtasks
		s.visibility = config.Visibility
		s.animations = config.Animations
		s.domReaders = config.DOMReaders
		s.clock = config.Clock
		s.logger = config.Logger
		s.metrics = config.Metrics
		historySize = config.HistorySize
	}

	// Use defaults if not provided
	if parent == nil {
		parent = context.Background()
	}
	if s.microtasks == nil {
		s.microtasks = host
	}
	if s.visibility == nil {
		s.visibility = NewVisibility(true)
	}
	if s.animations == nil {
		s.animations = NewAnimationList()
	}
	if s.domReaders == nil {
		s.domReaders = NewDOMReaderList()
	}
	if s.clock == nil {
		s.clock = NewClock()
	}
	if s.logger == nil {
		s.logger = NewNoOpLogger()
	}
	if s.metrics == nil {
		s.metrics = &NilMetrics{}
	}

	s.ctx = WithScheduler(parent, s)
	s.update = func(context.Context) {}
	s.history = newFrameHistory(historySize)

	s.currentFrame = NewTaskGroup(s.strict)
	s.nextFrame = NewTaskGroup(s.strict)
	s.currentFrame.onViolation = s.reportLockViolation
	s.nextFrame.onViolation = s.reportLockViolation
	s.currentFrame.Lock()

	s.requestHostFrameFn = s.requestHostFrame
	s.handleFrameFn = s.handleNextFrame

	s.frameStartTime.Store(int64(host.Now()))
	s.visibility.AddVisibilityObserver(s.handleVisibilityChange)

	return s
}

// Name returns the name used in logs and metrics.
func (s *FrameScheduler) Name() string { return s.name }

// Host returns the host driving this scheduler.
func (s *FrameScheduler) Host() Host { return s.host }

// Clock returns the frame clock.
func (s *FrameScheduler) Clock() *Clock { return s.clock }

// Context returns the context passed to frame work. It carries the scheduler.
func (s *FrameScheduler) Context() context.Context { return s.ctx }

// Animations returns the animation driver run on visible frames.
func (s *FrameScheduler) Animations() AnimationDriver { return s.animations }

// DOMReaders returns the DOM-read pre-pass executor.
func (s *FrameScheduler) DOMReaders() DOMReaderExecutor { return s.domReaders }

// StrictMode reports whether usage errors panic.
func (s *FrameScheduler) StrictMode() bool { return s.strict }

// SetUpdateFunction installs the function that flushes pending component
// updates. It is called once each time a group's TaskComponent flag is drained.
func (s *FrameScheduler) SetUpdateFunction(update Task) {
	if update == nil {
		update = func(context.Context) {}
	}
	s.update = update
}

// Autofocus records an element to be focused once the current frame has
// settled. Only the last element recorded before the frame completes is focused.
func (s *FrameScheduler) Autofocus(element Focusable) {
	s.autofocused = element
}

// FrameStartTime returns the start time of the most recent frame in seconds.
func (s *FrameScheduler) FrameStartTime() float64 {
	return time.Duration(s.frameStartTime.Load()).Seconds()
}

// RequestNextFrame arranges for a frame to run. Calls made before the
// pending frame runs are coalesced: the host frame request is issued from a
// microtask, once, however many times RequestNextFrame was called.
func (s *FrameScheduler) RequestNextFrame() {
	if s.pending.CompareAndSwap(false, true) {
		s.microtasks.ScheduleMicrotask(s.requestHostFrameFn)
	}
}

func (s *FrameScheduler) requestHostFrame() {
	// A synchronous frame may have serviced the request already
	if !s.pending.Load() {
		return
	}
	s.metrics.RecordFrameRequest(s.name)
	s.host.RequestAnimationFrame(s.handleFrameFn)
}

// NextFrame returns the group executed on the next frame and requests that frame.
func (s *FrameScheduler) NextFrame() *TaskGroup {
	s.RequestNextFrame()
	return s.nextFrame
}

// CurrentFrame returns the group of the frame being executed when called
// from inside its DOM phase, and NextFrame otherwise.
func (s *FrameScheduler) CurrentFrame() *TaskGroup {
	if s.currentFrameReady.Load() {
		return s.currentFrame
	}
	return s.NextFrame()
}

// SyncFrameUpdate runs a frame immediately, without waiting for the host.
func (s *FrameScheduler) SyncFrameUpdate() {
	s.handleNextFrame(s.host.Now())
}

// Stats returns a snapshot of the scheduler state. Safe to call from any goroutine.
func (s *FrameScheduler) Stats() FrameStats {
	stats := FrameStats{
		Name:           s.name,
		Frames:         s.clock.Now(),
		Pending:        s.pending.Load(),
		InFrame:        s.currentFrameReady.Load(),
		StrictMode:     s.strict,
		LockViolations: s.lockViolations.Load(),
		FrameStartTime: s.FrameStartTime(),
	}
	if last, ok := s.history.Last(); ok {
		stats.LastFrameAt = last.StartedAt
		stats.LastDuration = last.Duration
	}
	return stats
}

// RecentFrames returns up to limit completed frames, newest first.
// A limit <= 0 returns the whole history.
func (s *FrameScheduler) RecentFrames(limit int) []FrameRecord {
	return s.history.Recent(limit)
}

// LastFrame returns the most recently completed frame.
func (s *FrameScheduler) LastFrame() (FrameRecord, bool) {
	return s.history.Last()
}

// handleNextFrame is the frame handler invoked by the host or SyncFrameUpdate.
func (s *FrameScheduler) handleNextFrame(timestamp time.Duration) {
	startedAt := time.Now()
	s.frameStartTime.Store(int64(timestamp))

	s.pending.Store(false)
	s.currentFrameReady.Store(true)

	frame := s.nextFrame
	s.nextFrame = s.currentFrame
	s.currentFrame = frame

	s.currentFrame.Unlock()
	s.nextFrame.Unlock()

	record := FrameRecord{
		Frame:     s.clock.Now(),
		StartTime: timestamp,
		StartedAt: startedAt,
	}

	completed := false
	defer func() {
		if completed {
			return
		}
		// A task panicked: leave the scheduler ready for the next frame
		// and let the panic continue to the host.
		s.currentFrameReady.Store(false)
		s.currentFrame.Lock()
		if s.strict {
			if r := recover(); r != nil {
				if _, ok := r.(*TaskPanicError); ok {
					panic(r)
				}
				panic(&TaskPanicError{Phase: s.phase, Frame: record.Frame, Value: r, Stack: debug.Stack()})
			}
		}
	}()

	s.phase = PhaseDOMRead
	s.domReaders.ExecuteDOMReaders(s.ctx)

	// Perform read/write batching. Execute reads, then writes and component
	// updates, and repeat until no read, write or update work is left.
	for {
		s.phase = PhaseRead
		for {
			ok, tasks := frame.DrainFlag(TaskRead)
			if !ok {
				break
			}
			record.Reads += s.runTasks(tasks)
		}

		for frame.Has(TaskWrite | TaskComponent) {
			if ok, tasks := frame.DrainFlag(TaskWrite); ok {
				s.phase = PhaseWrite
				record.Writes += s.runTasks(tasks)
			}
			if ok, _ := frame.DrainFlag(TaskComponent); ok {
				s.phase = PhaseUpdate
				s.update(s.ctx)
				record.Updates++
			}
		}

		record.Passes++
		if !frame.Has(taskFlagsDOM) {
			break
		}
	}

	s.currentFrameReady.Store(false)

	// Late read/write work for this slot is a usage error
	s.currentFrame.Lock()

	if s.visibility.IsVisible() {
		s.phase = PhaseAnimation
		s.animations.ExecuteAnimations(s.ctx)
		record.Animated = true
	}

	// Tasks that run when all DOM work is finished
	s.phase = PhaseAfter
	for {
		ok, tasks := frame.DrainFlag(TaskAfter)
		if !ok {
			break
		}
		record.Afters += s.runTasks(tasks)
	}

	if s.autofocused != nil {
		s.phase = PhaseAutofocus
		element := s.autofocused
		s.autofocused = nil
		element.Focus()
		record.Focused = true
	}

	if s.animations.ShouldRequestNextFrameForAnimations() {
		s.RequestNextFrame()
	}

	s.clock.Increment()
	completed = true

	record.Duration = time.Since(startedAt)
	s.history.Add(record)
	s.recordFrameMetrics(record)
}

func (s *FrameScheduler) runTasks(tasks []Task) int {
	for _, task := range tasks {
		task(s.ctx)
	}
	return len(tasks)
}

func (s *FrameScheduler) recordFrameMetrics(record FrameRecord) {
	s.metrics.RecordFrameDuration(s.name, record.Duration)
	s.metrics.RecordFramePasses(s.name, record.Passes)
	s.metrics.RecordTasksExecuted(s.name, TaskRead, record.Reads)
	s.metrics.RecordTasksExecuted(s.name, TaskWrite, record.Writes)
	s.metrics.RecordTasksExecuted(s.name, TaskComponent, record.Updates)
	s.metrics.RecordTasksExecuted(s.name, TaskAfter, record.Afters)

	s.logger.Debug("frame completed",
		F("scheduler", s.name),
		F("frame", record.Frame),
		F("passes", record.Passes),
		F("reads", record.Reads),
		F("writes", record.Writes),
		F("updates", record.Updates),
		F("afters", record.Afters),
		F("duration", record.Duration),
	)
}

func (s *FrameScheduler) reportLockViolation(kind TaskFlags) {
	s.lockViolations.Add(1)
	s.metrics.RecordLockViolation(s.name, kind)
	s.logger.Warn("task added to a frame that already finished its DOM phase",
		F("scheduler", s.name),
		F("kind", kind.String()),
		F("frame", s.clock.Now()),
	)
}

func (s *FrameScheduler) handleVisibilityChange(visible bool) {
	if visible && s.animations.ShouldRequestNextFrameForAnimations() {
		s.RequestNextFrame()
	}
}
