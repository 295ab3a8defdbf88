package main

import (
	"context"
	"sync"

	"github.com/Swind/go-frame-scheduler/core"
)

// widget is a fake layout node: width is measured, height is derived from it.
type widget struct {
	width  int
	height int
}

// workload animates a set of widgets for a fixed number of frames. Each
// animation tick queues a measure (read) and a resize (write) per widget for
// the next frame; every third resize re-measures its widget, which forces a
// second read/write pass inside the same frame.
type workload struct {
	widgets   []widget
	maxFrames int

	ticks   int
	reads   int
	writes  int
	updates int

	done     chan struct{}
	doneOnce sync.Once
}

func newWorkload(widgets, frames int) *workload {
	w := &workload{
		widgets:   make([]widget, widgets),
		maxFrames: frames,
		done:      make(chan struct{}),
	}
	for i := range w.widgets {
		w.widgets[i].width = 100 + i
	}
	return w
}

// start registers the workload on s. It must run on the host goroutine.
func (w *workload) start(s *core.FrameScheduler) {
	s.SetUpdateFunction(func(context.Context) {
		w.updates++
	})

	animations, ok := s.Animations().(*core.AnimationList)
	if !ok {
		panic("framedemo: scheduler animation driver is not an AnimationList")
	}
	animations.Add(w.tick)
	s.RequestNextFrame()
}

func (w *workload) tick(ctx context.Context) bool {
	s := core.SchedulerFromContext(ctx)
	if w.ticks >= w.maxFrames {
		// Report once the last scheduled frame has settled
		s.NextFrame().EnqueueAfter(func(context.Context) {
			w.doneOnce.Do(func() { close(w.done) })
		})
		return true
	}
	w.ticks++

	frame := s.NextFrame()
	for i := range w.widgets {
		frame.EnqueueRead(w.measure(i))
		frame.EnqueueWrite(w.resize(i))
	}
	frame.MarkComponentUpdatePending()
	return false
}

func (w *workload) measure(i int) core.Task {
	return func(context.Context) {
		w.reads++
		w.widgets[i].width = 100 + (w.widgets[i].width+w.ticks)%50
	}
}

func (w *workload) resize(i int) core.Task {
	return func(ctx context.Context) {
		w.writes++
		w.widgets[i].height = w.widgets[i].width / 2
		if i%3 == 0 {
			core.SchedulerFromContext(ctx).CurrentFrame().EnqueueRead(func(context.Context) {
				w.reads++
			})
		}
	}
}

// Done is closed once every frame of the workload has run.
func (w *workload) Done() <-chan struct{} {
	return w.done
}

type workloadSummary struct {
	Frames  int
	Reads   int
	Writes  int
	Updates int
}

// summary must be read on the host goroutine or after Done.
func (w *workload) summary() workloadSummary {
	return workloadSummary{
		Frames:  w.ticks,
		Reads:   w.reads,
		Writes:  w.writes,
		Updates: w.updates,
	}
}
