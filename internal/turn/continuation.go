package turn

import (
	"sync"
	"time"

	"github.com/vovakirdan/hex-tactics/internal/event"
)

// Continuation is a scheduled, cancellable battle step.
type Continuation struct {
	timer    *time.Timer
	done     chan struct{}
	doneOnce sync.Once
	ran      bool
}

// Defer schedules Step to run after delay and passes its events to then.
// It never blocks; callers wait on Done or cancel.
func (m *Manager) Defer(delay time.Duration, then func(event.Log)) *Continuation {
	c := &Continuation{done: make(chan struct{})}
	c.timer = time.AfterFunc(delay, func() {
		log := m.Step()
		c.ran = true
		if then != nil {
			then(log)
		}
		c.finish()
	})
	return c
}

// Cancel stops the continuation if it has not started.
// Returns false if it already ran or was cancelled.
func (c *Continuation) Cancel() bool {
	if !c.timer.Stop() {
		return false
	}
	c.finish()
	return true
}

// Done is closed once the continuation ran or was cancelled.
func (c *Continuation) Done() <-chan struct{} {
	return c.done
}

// Ran reports whether the step executed. Only meaningful after Done.
func (c *Continuation) Ran() bool {
	<-c.done
	return c.ran
}

func (c *Continuation) finish() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
