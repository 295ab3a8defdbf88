package core

import (
	"context"
	"strings"
)

// Task is the unit of work (Closure) executed inside a frame.
type Task func(ctx context.Context)

// =============================================================================
// TaskFlags: Kinds of frame work tracked by a TaskGroup
// =============================================================================

type TaskFlags uint8

const (
	// TaskRead: DOM reads (layout measurements). Always run before writes in a pass.
	TaskRead TaskFlags = 1 << iota

	// TaskWrite: DOM mutations.
	TaskWrite

	// TaskComponent: At least one component update is pending.
	// Component updates are coalesced into a single call of the update function.
	TaskComponent

	// TaskAfter: Runs once all read/write/update work of the frame has settled.
	TaskAfter
)

// taskFlagsDOM covers every kind that participates in the fixpoint loop
const taskFlagsDOM = TaskRead | TaskWrite | TaskComponent

func (f TaskFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f&TaskRead != 0 {
		parts = append(parts, "read")
	}
	if f&TaskWrite != 0 {
		parts = append(parts, "write")
	}
	if f&TaskComponent != 0 {
		parts = append(parts, "component")
	}
	if f&TaskAfter != 0 {
		parts = append(parts, "after")
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// =============================================================================
// Context Helper
// =============================================================================
type schedulerKeyType struct{}

var schedulerKey schedulerKeyType

// SchedulerFromContext returns the FrameScheduler executing the current task,
// or nil when ctx was not produced by a scheduler.
func SchedulerFromContext(ctx context.Context) *FrameScheduler {
	if ctx == nil {
		return nil
	}
	if v := ctx.Value(schedulerKey); v != nil {
		return v.(*FrameScheduler)
	}
	return nil
}

// WithScheduler returns a copy of ctx that carries s.
func WithScheduler(ctx context.Context, s *FrameScheduler) context.Context {
	return context.WithValue(ctx, schedulerKey, s)
}

type hostKeyType struct{}

var hostKey hostKeyType

// HostFromContext returns the MainThreadHost running the current task, or nil.
func HostFromContext(ctx context.Context) *MainThreadHost {
	if ctx == nil {
		return nil
	}
	if v := ctx.Value(hostKey); v != nil {
		return v.(*MainThreadHost)
	}
	return nil
}
