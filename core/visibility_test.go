package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVisibility tests observer notification
// Main test items:
// 1. Observers are notified on change only
// 2. Observers run in registration order
// 3. Nil observers are ignored
func TestVisibility(t *testing.T) {
	v := NewVisibility(true)
	assert.True(t, v.IsVisible())

	var events []string
	v.AddVisibilityObserver(func(visible bool) {
		events = append(events, "first:"+map[bool]string{true: "on", false: "off"}[visible])
	})
	v.AddVisibilityObserver(func(visible bool) {
		events = append(events, "second")
	})
	v.AddVisibilityObserver(nil)

	v.SetVisible(true)
	assert.Empty(t, events)

	v.SetVisible(false)
	assert.False(t, v.IsVisible())
	assert.Equal(t, []string{"first:off", "second"}, events)

	v.SetVisible(true)
	assert.Equal(t, []string{"first:off", "second", "first:on", "second"}, events)
}

func TestVisibility_ObserverMayReadState(t *testing.T) {
	v := NewVisibility(false)
	var seen bool
	v.AddVisibilityObserver(func(bool) {
		seen = v.IsVisible()
	})

	v.SetVisible(true)
	assert.True(t, seen)
}

func TestClock_Concurrent(t *testing.T) {
	c := NewClock()
	assert.Equal(t, uint64(0), c.Now())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(800), c.Now())
}
