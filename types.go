package framescheduler

import "github.com/Swind/go-frame-scheduler/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the framescheduler package for most use cases.

// Task is the unit of work (Closure) executed inside a frame
type Task = core.Task

// TaskFlags identifies the kinds of work pending in a TaskGroup
type TaskFlags = core.TaskFlags

// TaskGroup holds the read, write, component and after work of one frame
type TaskGroup = core.TaskGroup

// FrameScheduler batches frame work on a Host
type FrameScheduler = core.FrameScheduler

// FrameSchedulerConfig configures a FrameScheduler
type FrameSchedulerConfig = core.FrameSchedulerConfig

// Host is the execution environment driving a FrameScheduler
type Host = core.Host

// ManualHost is a deterministic Host stepped by the caller
type ManualHost = core.ManualHost

// MainThreadHost runs tasks, microtasks and frames on one dedicated goroutine
type MainThreadHost = core.MainThreadHost

// AnimationList is the default animation driver
type AnimationList = core.AnimationList

// AnimationTask is one step of an animation
type AnimationTask = core.AnimationTask

// Focusable is an element that can receive focus
type Focusable = core.Focusable

// Task kinds
const (
	TaskRead      = core.TaskRead
	TaskWrite     = core.TaskWrite
	TaskComponent = core.TaskComponent
	TaskAfter     = core.TaskAfter
)

// Errors
var (
	ErrTaskGroupLocked = core.ErrTaskGroupLocked
	ErrHostClosed      = core.ErrHostClosed
	ErrLoopNotRunning  = core.ErrLoopNotRunning
)

// NewFrameScheduler creates a scheduler on host with the default collaborators.
func NewFrameScheduler(host Host) *FrameScheduler {
	return core.NewFrameScheduler(host)
}

// NewManualHost creates a deterministic host for tests and tools.
func NewManualHost() *ManualHost {
	return core.NewManualHost()
}

// SchedulerFromContext retrieves the FrameScheduler running the current task
var SchedulerFromContext = core.SchedulerFromContext
