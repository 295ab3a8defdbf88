package core

import "context"

// AnimationDriver runs active animations once per visible frame.
type AnimationDriver interface {
	// ExecuteAnimations runs one step of every active animation.
	ExecuteAnimations(ctx context.Context)

	// ShouldRequestNextFrameForAnimations reports whether an animation still needs frames.
	ShouldRequestNextFrameForAnimations() bool
}

// AnimationTask is one step of an animation. It returns true when the
// animation has finished and must not be called again.
type AnimationTask func(ctx context.Context) (done bool)

// AnimationList is an AnimationDriver backed by a list of repeatable tasks.
//
// Tasks run in insertion order. Finished tasks are removed without
// disturbing the order of the remaining ones. Tasks added while the list is
// executing run on the following frame.
type AnimationList struct {
	tasks     []AnimationTask
	executing bool
	added     []AnimationTask
}

// NewAnimationList creates an empty list.
func NewAnimationList() *AnimationList {
	return &AnimationList{}
}

// Add registers an animation task. Remember to request a frame afterwards
// (FrameScheduler.RequestNextFrame) if none is pending.
func (l *AnimationList) Add(task AnimationTask) {
	if task == nil {
		return
	}
	if l.executing {
		l.added = append(l.added, task)
		return
	}
	l.tasks = append(l.tasks, task)
}

// Len returns the number of active animations, including ones added during execution.
func (l *AnimationList) Len() int {
	return len(l.tasks) + len(l.added)
}

// ExecuteAnimations runs every active task once.
func (l *AnimationList) ExecuteAnimations(ctx context.Context) {
	var i, kept int
	l.executing = true
	defer func() {
		// Tasks not visited (a panic stops the loop) stay active
		n := len(l.tasks)
		kept += copy(l.tasks[kept:], l.tasks[i:])
		clear(l.tasks[kept:n])
		l.tasks = l.tasks[:kept]

		l.executing = false
		if len(l.added) > 0 {
			l.tasks = append(l.tasks, l.added...)
			l.added = nil
		}
	}()

	for ; i < len(l.tasks); i++ {
		task := l.tasks[i]
		if !task(ctx) {
			l.tasks[kept] = task
			kept++
		}
	}
}

// ShouldRequestNextFrameForAnimations is true while at least one animation is active.
func (l *AnimationList) ShouldRequestNextFrameForAnimations() bool {
	return l.Len() > 0
}
