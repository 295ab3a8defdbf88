package core

import (
	"sync"
	"time"
)

const defaultFrameHistoryCapacity = 100

// FrameRecord captures one completed frame.
type FrameRecord struct {
	Frame     uint64 // clock value before the frame advanced it
	StartTime time.Duration
	StartedAt time.Time
	Duration  time.Duration
	Passes    int
	Reads     int
	Writes    int
	Updates   int
	Afters    int
	Animated  bool
	Focused   bool
}

// FrameStats represents runtime observability state for a frame scheduler.
type FrameStats struct {
	Name           string
	Frames         uint64
	Pending        bool
	InFrame        bool
	StrictMode     bool
	LockViolations int64
	FrameStartTime float64
	LastFrameAt    time.Time
	LastDuration   time.Duration
}

// HostStats represents runtime observability state for a host.
type HostStats struct {
	Name            string
	Type            string
	Pending         int
	Microtasks      int
	FramesRequested int64
	Rejected        int64
	Closed          bool
	LastTaskAt      time.Time
	FrameRate       int
}

// frameHistory is a fixed size ring buffer of FrameRecords.
// Stats readers may run on other goroutines, hence the mutex.
type frameHistory struct {
	mu    sync.Mutex
	items []FrameRecord
	head  int
	count int
}

func newFrameHistory(capacity int) *frameHistory {
	if capacity < 1 {
		capacity = defaultFrameHistoryCapacity
	}
	return &frameHistory{items: make([]FrameRecord, capacity)}
}

func (h *frameHistory) Add(record FrameRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return
	}

	h.items[h.head] = record
	h.head = (h.head + 1) % len(h.items)
	if h.count < len(h.items) {
		h.count++
	}
}

// Recent returns up to limit records, newest first.
func (h *frameHistory) Recent(limit int) []FrameRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return nil
	}

	if limit <= 0 || limit > h.count {
		limit = h.count
	}

	out := make([]FrameRecord, 0, limit)
	for i := range limit {
		idx := (h.head - 1 - i + len(h.items)) % len(h.items)
		out = append(out, h.items[idx])
	}
	return out
}

func (h *frameHistory) Last() (FrameRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return FrameRecord{}, false
	}

	idx := (h.head - 1 + len(h.items)) % len(h.items)
	return h.items[idx], true
}
