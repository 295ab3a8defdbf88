package core

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskGroupLocked is reported when read or write work is added to a
	// TaskGroup whose frame slot has already finished its DOM phase.
	ErrTaskGroupLocked = errors.New("task group is locked")

	// ErrHostClosed is returned by hosts that no longer accept work.
	ErrHostClosed = errors.New("host is closed")

	// ErrLoopNotRunning is returned by FrameLoop operations issued before Start or after Stop.
	ErrLoopNotRunning = errors.New("frame loop is not running")
)

// UsageError describes a misuse of the scheduling API.
type UsageError struct {
	Op   string
	Kind TaskFlags
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: cannot add %s task: %v", e.Op, e.Kind, ErrTaskGroupLocked)
}

func (e *UsageError) Unwrap() error {
	return ErrTaskGroupLocked
}

// TaskPanicError wraps a panic raised by frame work when the scheduler runs
// in strict mode. The frame phase and clock value are attached so the panic
// can be traced back to the pipeline stage that produced it.
type TaskPanicError struct {
	Phase string
	Frame uint64
	Value any
	Stack []byte
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("frame %d: panic in %s phase: %v", e.Frame, e.Phase, e.Value)
}

func (e *TaskPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
