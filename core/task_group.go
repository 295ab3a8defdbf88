package core

// TaskGroup holds the pending work of one frame slot.
//
// A FrameScheduler owns exactly two groups and flips them every frame: one
// accepts work for the next frame while the other is drained. Groups are
// reused for the lifetime of the scheduler and are never freed, only drained.
//
// TaskGroup is not safe for concurrent use. It is confined to the host's
// execution context like the scheduler that owns it.
type TaskGroup struct {
	flags TaskFlags

	readTasks  []Task
	writeTasks []Task
	afterTasks []Task

	locked bool
	strict bool

	// onViolation receives lock violations outside strict mode
	onViolation func(kind TaskFlags)
}

// NewTaskGroup creates an empty, unlocked group.
// In strict mode, adding read or write work to a locked group panics with a *UsageError.
func NewTaskGroup(strict bool) *TaskGroup {
	return &TaskGroup{strict: strict}
}

// EnqueueRead appends a DOM read task.
func (g *TaskGroup) EnqueueRead(task Task) {
	if task == nil {
		return
	}
	g.checkLock("EnqueueRead", TaskRead)
	g.flags |= TaskRead
	g.readTasks = append(g.readTasks, task)
}

// EnqueueWrite appends a DOM write task.
func (g *TaskGroup) EnqueueWrite(task Task) {
	if task == nil {
		return
	}
	g.checkLock("EnqueueWrite", TaskWrite)
	g.flags |= TaskWrite
	g.writeTasks = append(g.writeTasks, task)
}

// EnqueueAfter appends a task that runs after all DOM work and animations of the frame.
func (g *TaskGroup) EnqueueAfter(task Task) {
	if task == nil {
		return
	}
	g.flags |= TaskAfter
	g.afterTasks = append(g.afterTasks, task)
}

// MarkComponentUpdatePending requests one call of the scheduler's update function.
func (g *TaskGroup) MarkComponentUpdatePending() {
	g.flags |= TaskComponent
}

// DrainFlag clears the flag of a single kind and detaches its task sequence.
// It reports whether the flag was set. The returned slice is owned by the
// caller; tasks enqueued while it is executed go into a new sequence.
// TaskComponent never carries tasks.
func (g *TaskGroup) DrainFlag(kind TaskFlags) (bool, []Task) {
	if g.flags&kind == 0 {
		return false, nil
	}
	g.flags &^= kind

	var tasks []Task
	switch kind {
	case TaskRead:
		tasks, g.readTasks = g.readTasks, nil
	case TaskWrite:
		tasks, g.writeTasks = g.writeTasks, nil
	case TaskAfter:
		tasks, g.afterTasks = g.afterTasks, nil
	}
	return true, tasks
}

// Flags returns the set of kinds with pending work.
func (g *TaskGroup) Flags() TaskFlags {
	return g.flags
}

// Has reports whether any of the given kinds has pending work.
func (g *TaskGroup) Has(kinds TaskFlags) bool {
	return g.flags&kinds != 0
}

// Len returns the number of queued tasks of one kind.
// For TaskComponent it returns 1 when an update is pending.
func (g *TaskGroup) Len(kind TaskFlags) int {
	switch kind {
	case TaskRead:
		return len(g.readTasks)
	case TaskWrite:
		return len(g.writeTasks)
	case TaskAfter:
		return len(g.afterTasks)
	case TaskComponent:
		if g.flags&TaskComponent != 0 {
			return 1
		}
	}
	return 0
}

// Lock guards the group against new read and write work.
func (g *TaskGroup) Lock() {
	g.locked = true
}

// Unlock lifts the guard set by Lock.
func (g *TaskGroup) Unlock() {
	g.locked = false
}

// IsLocked reports whether the group rejects read and write work.
func (g *TaskGroup) IsLocked() bool {
	return g.locked
}

func (g *TaskGroup) checkLock(op string, kind TaskFlags) {
	if !g.locked {
		return
	}
	if g.strict {
		panic(&UsageError{Op: op, Kind: kind})
	}
	if g.onViolation != nil {
		g.onViolation(kind)
	}
}
