package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMainThreadHost_Sequential tests task ordering on the host goroutine
// Main test items:
// 1. Tasks run in posting order
// 2. The task context carries the host
func TestMainThreadHost_Sequential(t *testing.T) {
	h := NewMainThreadHost()
	defer h.Stop()

	var order []int
	var sawHost atomic.Bool
	for i := range 10 {
		h.PostTask(func(ctx context.Context) {
			order = append(order, i)
			if HostFromContext(ctx) == h {
				sawHost.Store(true)
			}
		})
	}

	require.NoError(t, h.WaitIdle(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	assert.True(t, sawHost.Load())
}

// TestMainThreadHost_MicrotasksBeforeNextTask tests microtask checkpoints
// Main test items:
// 1. Microtasks queued by a task run before the next task
// 2. Microtasks queued by microtasks run in the same checkpoint
func TestMainThreadHost_MicrotasksBeforeNextTask(t *testing.T) {
	h := NewMainThreadHost()
	defer h.Stop()

	var order []string
	h.PostTask(func(context.Context) {
		order = append(order, "task1")
		h.ScheduleMicrotask(func() {
			order = append(order, "micro1")
			h.ScheduleMicrotask(func() { order = append(order, "micro2") })
		})
	})
	h.PostTask(func(context.Context) {
		order = append(order, "task2")
	})

	require.NoError(t, h.WaitIdle(context.Background()))
	assert.Equal(t, []string{"task1", "micro1", "micro2", "task2"}, order)
}

func TestMainThreadHost_MicrotaskFromOutside(t *testing.T) {
	h := NewMainThreadHost()
	defer h.Stop()

	done := make(chan struct{})
	h.ScheduleMicrotask(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("microtask scheduled from another goroutine never ran")
	}
}

// TestMainThreadHost_RequestAnimationFrame tests frame delivery
// Main test items:
// 1. The callback runs on the host goroutine
// 2. The timestamp is not earlier than the request time
// 3. The request is counted in Stats
func TestMainThreadHost_RequestAnimationFrame(t *testing.T) {
	config := DefaultMainThreadHostConfig()
	config.FrameRate = 120
	h := NewMainThreadHostWithConfig(config)
	defer h.Stop()

	assert.Equal(t, time.Second/120, h.FrameInterval())

	requestedAt := h.Now()
	stamps := make(chan time.Duration, 1)
	h.RequestAnimationFrame(func(ts time.Duration) {
		stamps <- ts
	})

	select {
	case ts := <-stamps:
		assert.GreaterOrEqual(t, ts, requestedAt)
	case <-time.After(time.Second):
		t.Fatal("frame callback never ran")
	}

	stats := h.Stats()
	assert.Equal(t, int64(1), stats.FramesRequested)
	assert.Equal(t, "main_thread", stats.Type)
	assert.Equal(t, 120, stats.FrameRate)
}

// TestMainThreadHost_DrivesFrameScheduler tests a scheduler on a real host
// Main test items:
// 1. Work posted from another goroutine reaches the scheduler through PostTask
// 2. Reads run before writes in the frame
// 3. After-tasks observe the completed frame
func TestMainThreadHost_DrivesFrameScheduler(t *testing.T) {
	h := NewMainThreadHost()
	defer h.Stop()

	s := NewFrameScheduler(h)

	var mu sync.Mutex
	var order []string
	record := func(name string) Task {
		return func(context.Context) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	done := make(chan struct{})
	h.PostTask(func(context.Context) {
		frame := s.NextFrame()
		frame.EnqueueWrite(record("write"))
		frame.EnqueueRead(record("read"))
		frame.EnqueueAfter(func(context.Context) {
			record("after")(context.Background())
			close(done)
		})
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("frame never ran")
	}
	// The frame callback is still finishing on the host goroutine
	require.NoError(t, h.WaitIdle(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"read", "write", "after"}, order)
	assert.Equal(t, uint64(1), s.Clock().Now())
}

type recordingPanicHandler struct {
	mu     sync.Mutex
	values []any
}

func (p *recordingPanicHandler) HandlePanic(ctx context.Context, hostName string, panicInfo any, stackTrace []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, panicInfo)
}

func TestMainThreadHost_PanicRecovery(t *testing.T) {
	handler := &recordingPanicHandler{}
	config := DefaultMainThreadHostConfig()
	config.PanicHandler = handler
	h := NewMainThreadHostWithConfig(config)
	defer h.Stop()

	ran := false
	h.PostTask(func(context.Context) { panic("boom") })
	h.ScheduleMicrotask(func() { panic("micro") })
	h.PostTask(func(context.Context) { ran = true })

	require.NoError(t, h.WaitIdle(context.Background()))
	assert.True(t, ran, "loop must survive a panicking task")

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Contains(t, handler.values, "boom")
	assert.Contains(t, handler.values, "micro")
}

type countingRejectedHandler struct {
	count atomic.Int32
}

func (c *countingRejectedHandler) HandleRejectedTask(hostName string, reason string) {
	c.count.Add(1)
}

// TestMainThreadHost_Shutdown tests the closed state
// Main test items:
// 1. Shutdown rejects new tasks and frame requests
// 2. WaitShutdown returns
// 3. WaitIdle reports ErrHostClosed
func TestMainThreadHost_Shutdown(t *testing.T) {
	rejected := &countingRejectedHandler{}
	config := DefaultMainThreadHostConfig()
	config.RejectedTaskHandler = rejected
	h := NewMainThreadHostWithConfig(config)
	defer h.Stop()

	h.Shutdown()
	h.Shutdown()
	assert.True(t, h.IsClosed())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.WaitShutdown(ctx))

	h.PostTask(func(context.Context) {})
	h.PostDelayedTask(func(context.Context) {}, time.Millisecond)
	h.RequestAnimationFrame(func(time.Duration) {})

	assert.Equal(t, int32(3), rejected.count.Load())
	assert.Equal(t, int64(3), h.Stats().Rejected)

	err := h.WaitIdle(context.Background())
	assert.True(t, errors.Is(err, ErrHostClosed))
}

func TestMainThreadHost_PostDelayedTask(t *testing.T) {
	h := NewMainThreadHost()
	defer h.Stop()

	start := time.Now()
	done := make(chan time.Duration, 1)
	h.PostDelayedTask(func(context.Context) {
		done <- time.Since(start)
	}, 20*time.Millisecond)

	select {
	case elapsed := <-done:
		assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("delayed task never ran")
	}
}

func TestMainThreadHost_StopIsIdempotent(t *testing.T) {
	h := NewMainThreadHost()
	h.SetName("ui")
	assert.Equal(t, "ui", h.Name())

	h.Stop()
	h.Stop()
	assert.True(t, h.IsClosed())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, h.WaitShutdown(ctx))
}
