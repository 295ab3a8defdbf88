package core

import (
	"context"
	"time"
)

// FrameCallback is invoked by a Host before the next repaint.
// timestamp is the time elapsed since the host origin.
type FrameCallback func(timestamp time.Duration)

// MicrotaskScheduler runs a callback once, after the current synchronous
// unit of work and strictly before the next frame callback.
type MicrotaskScheduler interface {
	ScheduleMicrotask(fn func())
}

// Host is the execution environment driving a FrameScheduler.
//
// Frame callbacks and microtasks must all run on the same logical thread;
// the scheduler relies on that instead of locking.
type Host interface {
	MicrotaskScheduler

	// RequestAnimationFrame arranges for cb to be called once before the next repaint.
	RequestAnimationFrame(cb FrameCallback)

	// Now returns the high-resolution time elapsed since the host origin.
	Now() time.Duration
}

// =============================================================================
// ManualHost: Deterministic host driven by the caller
// =============================================================================

// ManualHost is a Host whose microtasks and frames only run when the caller
// says so. Time is virtual and only moves through Advance.
//
// It is meant for tests and tools that need to step frames deterministically.
// ManualHost is not safe for concurrent use.
type ManualHost struct {
	now           time.Duration
	microtasks    []func()
	frames        []FrameCallback
	frameRequests int
}

// NewManualHost creates a host at virtual time zero.
func NewManualHost() *ManualHost {
	return &ManualHost{}
}

// ScheduleMicrotask queues fn until FlushMicrotasks or RunFrame.
func (h *ManualHost) ScheduleMicrotask(fn func()) {
	if fn == nil {
		return
	}
	h.microtasks = append(h.microtasks, fn)
}

// RequestAnimationFrame queues cb until RunFrame.
func (h *ManualHost) RequestAnimationFrame(cb FrameCallback) {
	if cb == nil {
		return
	}
	h.frameRequests++
	h.frames = append(h.frames, cb)
}

// Now returns the virtual time.
func (h *ManualHost) Now() time.Duration {
	return h.now
}

// Advance moves virtual time forward by d.
func (h *ManualHost) Advance(d time.Duration) {
	h.now += d
}

// FrameRequests returns how many times RequestAnimationFrame was called.
func (h *ManualHost) FrameRequests() int {
	return h.frameRequests
}

// PendingMicrotasks returns the number of queued microtasks.
func (h *ManualHost) PendingMicrotasks() int {
	return len(h.microtasks)
}

// PendingFrames returns the number of queued frame callbacks.
func (h *ManualHost) PendingFrames() int {
	return len(h.frames)
}

// FlushMicrotasks runs queued microtasks, including microtasks queued while
// flushing, and returns how many ran.
func (h *ManualHost) FlushMicrotasks() int {
	n := 0
	for len(h.microtasks) > 0 {
		fn := h.microtasks[0]
		h.microtasks[0] = nil
		h.microtasks = h.microtasks[1:]
		fn()
		n++
	}
	h.microtasks = nil
	return n
}

// RunFrame flushes microtasks, then runs the frame callbacks requested so
// far with the current virtual time. Callbacks requested during the frame
// wait for the next RunFrame. It returns how many callbacks ran.
func (h *ManualHost) RunFrame() int {
	h.FlushMicrotasks()

	frames := h.frames
	h.frames = nil
	for _, cb := range frames {
		cb(h.now)
		h.FlushMicrotasks()
	}
	return len(frames)
}

// RunFrames advances virtual time by interval before each frame and runs up
// to n frames, stopping early when no frame is pending. It returns the
// number of frames that ran.
func (h *ManualHost) RunFrames(ctx context.Context, n int, interval time.Duration) int {
	ran := 0
	for ran < n {
		if ctx.Err() != nil {
			break
		}
		h.FlushMicrotasks()
		if len(h.frames) == 0 {
			break
		}
		h.Advance(interval)
		h.RunFrame()
		ran++
	}
	return ran
}
