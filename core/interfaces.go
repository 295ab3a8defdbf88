package core

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling panics that escape host tasks
// =============================================================================

// PanicHandler is called when a task posted to a host panics.
// Frame handlers do not recover panics themselves; they surface here, on the
// host that invoked the frame callback.
//
// Implementations should be thread-safe as they may be called concurrently.
type PanicHandler interface {
	// HandlePanic is called when a task panics.
	//
	// Parameters:
	// - ctx: The context the task was executed with
	// - hostName: The name of the host where the panic occurred
	// - panicInfo: The panic value recovered from the task
	// - stackTrace: The stack trace at the time of panic
	HandlePanic(ctx context.Context, hostName string, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler provides a basic panic handler that logs to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints panic information to stdout.
func (h *DefaultPanicHandler) HandlePanic(ctx context.Context, hostName string, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Host %s] Panic: %v\nStack trace:\n%s", hostName, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting frame and host metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods are called from the host's execution context on the frame hot path
// and must be non-blocking and fast.
type Metrics interface {
	// RecordFrameDuration records how long one frame took from swap to clock advance.
	RecordFrameDuration(schedulerName string, duration time.Duration)

	// RecordFramePasses records how many read/write passes the fixpoint loop needed.
	RecordFramePasses(schedulerName string, passes int)

	// RecordTasksExecuted records the number of tasks of one kind run in a frame.
	// For TaskComponent the count is the number of update function calls.
	RecordTasksExecuted(schedulerName string, kind TaskFlags, count int)

	// RecordLockViolation records read/write work added to a locked group.
	RecordLockViolation(schedulerName string, kind TaskFlags)

	// RecordFrameRequest records a frame request handed to the host.
	RecordFrameRequest(schedulerName string)

	// RecordTaskPanic records that a host task panicked.
	RecordTaskPanic(hostName string, panicInfo any)

	// RecordQueueDepth records the number of tasks waiting on a host.
	RecordQueueDepth(hostName string, depth int)

	// RecordTaskRejected records that a host refused a task (e.g., after shutdown).
	RecordTaskRejected(hostName string, reason string)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordFrameDuration is a no-op.
func (m *NilMetrics) RecordFrameDuration(schedulerName string, duration time.Duration) {}

// RecordFramePasses is a no-op.
func (m *NilMetrics) RecordFramePasses(schedulerName string, passes int) {}

// RecordTasksExecuted is a no-op.
func (m *NilMetrics) RecordTasksExecuted(schedulerName string, kind TaskFlags, count int) {}

// RecordLockViolation is a no-op.
func (m *NilMetrics) RecordLockViolation(schedulerName string, kind TaskFlags) {}

// RecordFrameRequest is a no-op.
func (m *NilMetrics) RecordFrameRequest(schedulerName string) {}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(hostName string, panicInfo any) {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(hostName string, depth int) {}

// RecordTaskRejected is a no-op.
func (m *NilMetrics) RecordTaskRejected(hostName string, reason string) {}

// =============================================================================
// RejectedTaskHandler: Interface for handling rejected tasks
// =============================================================================

// RejectedTaskHandler is called when a host refuses a task.
// This happens when the host is shutting down or already stopped.
//
// Implementations should be thread-safe as they may be called concurrently.
type RejectedTaskHandler interface {
	// HandleRejectedTask is called when a task is rejected.
	//
	// Parameters:
	// - hostName: The name of the host
	// - reason: Why the task was rejected (e.g., "shutdown")
	HandleRejectedTask(hostName string, reason string)
}

// DefaultRejectedTaskHandler provides a basic handler that logs rejected tasks.
type DefaultRejectedTaskHandler struct{}

// HandleRejectedTask logs the rejected task.
func (h *DefaultRejectedTaskHandler) HandleRejectedTask(hostName string, reason string) {
	fmt.Printf("[Host %s] Task rejected: %s\n", hostName, reason)
}

// =============================================================================
// FrameSchedulerConfig: Configuration for FrameScheduler
// =============================================================================

// FrameSchedulerConfig holds configuration options for FrameScheduler.
// All collaborators are optional; if not provided, default implementations will be used.
type FrameSchedulerConfig struct {
	// Name labels logs and metrics. Defaults to "frame-scheduler".
	Name string

	// StrictMode turns lock violations into panics and wraps task panics in
	// *TaskPanicError. Intended for development builds.
	StrictMode bool

	// Context is the parent of the context passed to tasks. Defaults to context.Background().
	Context context.Context

	// Microtasks overrides the host's microtask scheduler.
	Microtasks MicrotaskScheduler

	// Visibility gates animations. Defaults to an always visible Visibility.
	Visibility VisibilityObserver

	// Animations is run once per visible frame. Defaults to an empty AnimationList.
	Animations AnimationDriver

	// DOMReaders runs before the fixpoint loop. Defaults to an empty DOMReaderList.
	DOMReaders DOMReaderExecutor

	// Clock is advanced once per frame. Defaults to a new Clock.
	Clock *Clock

	// Logger defaults to NoOpLogger.
	Logger Logger

	// Metrics defaults to NilMetrics.
	Metrics Metrics

	// HistorySize is the number of FrameRecords kept. Defaults to 100.
	HistorySize int
}

// DefaultFrameSchedulerConfig returns a config with default collaborators.
func DefaultFrameSchedulerConfig() *FrameSchedulerConfig {
	return &FrameSchedulerConfig{
		Name:        defaultSchedulerName,
		Context:     context.Background(),
		Visibility:  NewVisibility(true),
		Animations:  NewAnimationList(),
		DOMReaders:  NewDOMReaderList(),
		Clock:       NewClock(),
		Logger:      NewNoOpLogger(),
		Metrics:     &NilMetrics{},
		HistorySize: defaultFrameHistoryCapacity,
	}
}
