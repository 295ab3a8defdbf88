package core

import "sync"

// VisibilityObserver reports whether the host document is visible.
type VisibilityObserver interface {
	IsVisible() bool

	// AddVisibilityObserver registers fn to be called whenever visibility changes.
	AddVisibilityObserver(fn func(visible bool))
}

// Visibility is a settable VisibilityObserver.
//
// Observers run synchronously on the goroutine that calls SetVisible, so
// callers driving a FrameScheduler must call SetVisible from the host's
// execution context.
type Visibility struct {
	mu        sync.Mutex
	visible   bool
	observers []func(visible bool)
}

// NewVisibility creates a Visibility with the given initial state.
func NewVisibility(visible bool) *Visibility {
	return &Visibility{visible: visible}
}

// IsVisible returns the current state.
func (v *Visibility) IsVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// AddVisibilityObserver registers an observer. Nil observers are ignored.
func (v *Visibility) AddVisibilityObserver(fn func(visible bool)) {
	if fn == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observers = append(v.observers, fn)
}

// SetVisible updates the state and notifies observers when it changed.
func (v *Visibility) SetVisible(visible bool) {
	v.mu.Lock()
	if v.visible == visible {
		v.mu.Unlock()
		return
	}
	v.visible = visible
	// Copy so observers may register new observers without deadlocking
	observers := make([]func(bool), len(v.observers))
	copy(observers, v.observers)
	v.mu.Unlock()

	for _, fn := range observers {
		fn(visible)
	}
}
