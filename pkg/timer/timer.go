// Package timer provides cancellable one-shot callbacks driven by an owning
// loop. Callbacks run on the goroutine that advances the scheduler, so game
// state touched by them needs no additional locking.
package timer

import (
	"sort"
	"time"
)

// Handle refers to a scheduled callback.
type Handle interface {
	// Cancel prevents the callback from running. It returns false if the
	// callback already ran or was already cancelled.
	Cancel() bool
}

// Scheduler schedules one-shot callbacks.
type Scheduler interface {
	After(delay time.Duration, fn func()) Handle
}

type task struct {
	due       time.Duration
	seq       uint64
	fn        func()
	fired     bool
	cancelled bool
}

func (t *task) Cancel() bool {
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// TickScheduler is a Scheduler whose clock only moves when Advance is called.
// The ebiten update loop and the session loop both advance it once per tick.
// It is not safe for concurrent use.
type TickScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*task
}

var _ Scheduler = &TickScheduler{}

func NewTickScheduler() *TickScheduler {
	return &TickScheduler{
		pending: make([]*task, 0),
	}
}

// Now returns the scheduler's elapsed time.
func (s *TickScheduler) Now() time.Duration {
	return s.now
}

func (s *TickScheduler) After(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{
		due: s.now + delay,
		seq: s.seq,
		fn:  fn,
	}
	// keep pending ordered by due time, then by scheduling order
	i := sort.Search(len(s.pending), func(i int) bool {
		p := s.pending[i]
		return p.due > t.due || (p.due == t.due && p.seq > t.seq)
	})
	s.pending = append(s.pending, nil)
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = t
	return t
}

// Advance moves the clock forward by dt and runs every callback that became
// due, in order. While a callback runs, Now reports its due time so that
// callbacks scheduled from inside it are measured from that instant.
// It returns the number of callbacks run.
func (s *TickScheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	ran := 0
	for len(s.pending) > 0 && s.pending[0].due <= target {
		t := s.pending[0]
		s.pending = s.pending[1:]
		if t.cancelled {
			continue
		}
		s.now = t.due
		t.fired = true
		t.fn()
		ran++
	}
	s.now = target
	return ran
}

// Pending returns the number of callbacks that are scheduled and not cancelled.
func (s *TickScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}
