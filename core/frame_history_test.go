package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameHistory_Ring(t *testing.T) {
	h := newFrameHistory(2)

	_, ok := h.Last()
	assert.False(t, ok)
	assert.Nil(t, h.Recent(0))

	h.Add(FrameRecord{Frame: 1})
	h.Add(FrameRecord{Frame: 2})
	h.Add(FrameRecord{Frame: 3})

	last, ok := h.Last()
	assert.True(t, ok)
	assert.Equal(t, uint64(3), last.Frame)

	recent := h.Recent(10)
	assert.Equal(t, []uint64{3, 2}, []uint64{recent[0].Frame, recent[1].Frame})
}

func TestFrameHistory_DefaultCapacity(t *testing.T) {
	h := newFrameHistory(0)
	assert.Len(t, h.items, defaultFrameHistoryCapacity)
}

func TestErrors_Messages(t *testing.T) {
	err := &UsageError{Op: "EnqueueWrite", Kind: TaskWrite}
	assert.Equal(t, "EnqueueWrite: cannot add write task: task group is locked", err.Error())

	panicErr := &TaskPanicError{Phase: PhaseRead, Frame: 7, Value: "boom"}
	assert.Equal(t, "frame 7: panic in read phase: boom", panicErr.Error())
	assert.Nil(t, panicErr.Unwrap())
}
