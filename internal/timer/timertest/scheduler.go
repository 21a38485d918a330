// Package timertest provides a manually driven timer.Scheduler for tests.
package timertest

import (
	"sync"
	"time"

	"HandWash/internal/timer"
)

// Scheduler fires its callbacks only when Tick or Advance is called.
type Scheduler struct {
	mu      sync.Mutex
	handles []*Handle
}

func New() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Every(interval time.Duration, fn func()) timer.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &Handle{Interval: interval, fn: fn, s: s}
	s.handles = append(s.handles, h)
	return h
}

// Tick fires every active handle once, in scheduling order.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	active := make([]*Handle, len(s.handles))
	copy(active, s.handles)
	s.mu.Unlock()

	for _, h := range active {
		if h.active() {
			h.fn()
		}
	}
}

// Advance is n calls to Tick.
func (s *Scheduler) Advance(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Active returns the number of handles that have not been stopped.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

func (s *Scheduler) remove(h *Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, other := range s.handles {
		if other == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			return
		}
	}
}

type Handle struct {
	Interval time.Duration

	fn      func()
	s       *Scheduler
	mu      sync.Mutex
	stopped bool
}

func (h *Handle) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()
	h.s.remove(h)
}

func (h *Handle) active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.stopped
}
