// Package framescheduler batches DOM-style reads, writes, component updates
// and post-layout callbacks into frames, so that reads never interleave with
// writes and no layout is computed twice in one frame.
//
// The design follows the browser frame pipeline: work is queued into the
// TaskGroup of the next frame, a frame is requested from the host once per
// synchronous burst (coalesced through a microtask), and each frame runs
// reads, then writes and component updates, repeating until nothing new was
// queued, followed by animations, after-tasks and autofocus.
//
// # Quick Start
//
// Initialize the global frame loop at application startup:
//
//	framescheduler.InitGlobalFrameLoop(60) // 60 fps
//	defer framescheduler.ShutdownGlobalFrameLoop()
//
// Schedule work from any goroutine through the loop:
//
//	loop := framescheduler.GetGlobalFrameLoop()
//	loop.Post(func(ctx context.Context) {
//		frame := framescheduler.SchedulerFromContext(ctx).NextFrame()
//		frame.EnqueueRead(measure)
//		frame.EnqueueWrite(mutate)
//	})
//
// # Key Concepts
//
// Host: the execution environment providing frame callbacks, microtasks and a
// high-resolution clock. core.MainThreadHost runs everything on one dedicated
// goroutine, eventloophost.Host runs on a go-eventloop Loop and
// core.ManualHost is stepped by hand in tests.
//
// FrameScheduler: owns two TaskGroups that swap roles every frame. NextFrame
// returns the group for the upcoming frame; CurrentFrame lets work queued
// during a frame's DOM phase join that frame.
//
// Strict mode: adding reads or writes to a frame that already finished its
// DOM phase panics with *core.UsageError, and panics raised by frame work are
// wrapped in *core.TaskPanicError. Without strict mode the violation is logged
// and counted instead.
//
// # Thread Safety
//
// A FrameScheduler is confined to its host's goroutine. Other goroutines
// reach it through FrameLoop.Post / FrameLoop.Run or MainThreadHost.PostTask.
// Stats, RecentFrames and FrameStartTime may be read from anywhere.
//
// For more details, see https://github.com/Swind/go-frame-scheduler
package framescheduler
