package timer

import "time"

// Group tracks the callbacks scheduled through it so they can be cancelled
// together.
type Group struct {
	scheduler Scheduler
	nextID    uint64
	handles   map[uint64]Handle
}

var _ Scheduler = &Group{}

func NewGroup(scheduler Scheduler) *Group {
	return &Group{
		scheduler: scheduler,
		handles:   make(map[uint64]Handle),
	}
}

func (g *Group) After(delay time.Duration, fn func()) Handle {
	g.nextID++
	id := g.nextID
	h := g.scheduler.After(delay, func() {
		delete(g.handles, id)
		fn()
	})
	g.handles[id] = h
	return h
}

// CancelAll cancels every outstanding callback and returns how many were cancelled.
func (g *Group) CancelAll() int {
	n := 0
	for id, h := range g.handles {
		if h.Cancel() {
			n++
		}
		delete(g.handles, id)
	}
	return n
}

// Len returns the number of outstanding callbacks.
func (g *Group) Len() int {
	return len(g.handles)
}
