package core

import "context"

// DOMReaderExecutor runs the DOM-read pre-pass of a frame, before any
// scheduled work can mutate the document.
type DOMReaderExecutor interface {
	ExecuteDOMReaders(ctx context.Context)
}

type domReader struct {
	task    Task
	removed bool
}

// DOMReaderList is a DOMReaderExecutor holding readers in registration order.
type DOMReaderList struct {
	readers []*domReader
}

// NewDOMReaderList creates an empty list.
func NewDOMReaderList() *DOMReaderList {
	return &DOMReaderList{}
}

// Add registers a reader and returns a function that removes it.
// Removal is idempotent; a reader removed while the list executes is skipped
// from the next frame on.
func (l *DOMReaderList) Add(reader Task) (remove func()) {
	if reader == nil {
		return func() {}
	}
	r := &domReader{task: reader}
	l.readers = append(l.readers, r)
	return func() {
		r.removed = true
	}
}

// Len returns the number of registered readers.
func (l *DOMReaderList) Len() int {
	n := 0
	for _, r := range l.readers {
		if !r.removed {
			n++
		}
	}
	return n
}

// ExecuteDOMReaders runs every registered reader once.
func (l *DOMReaderList) ExecuteDOMReaders(ctx context.Context) {
	// Compact first so removals from the previous frame are dropped
	kept := l.readers[:0]
	for _, r := range l.readers {
		if !r.removed {
			kept = append(kept, r)
		}
	}
	clear(l.readers[len(kept):])
	l.readers = kept

	// Snapshot: readers added during execution run next frame
	for _, r := range l.readers[:len(l.readers):len(l.readers)] {
		r.task(ctx)
	}
}
