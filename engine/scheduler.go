package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending single-shot or periodic callback
type Timer interface {
	// Stop cancels the timer; returns false if it was already stopped
	Stop() bool
}

// Scheduler provides the current time and timers whose callbacks run on the owner's event loop
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// LoopScheduler fires Go timers and posts their callbacks into a channel drained by the UI loop
// Callbacks therefore never run concurrently with event handling
type LoopScheduler struct {
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoopScheduler creates a scheduler with the given callback queue capacity
func NewLoopScheduler(size int) *LoopScheduler {
	return &LoopScheduler{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// C returns the callback channel; the loop must invoke every received function
func (s *LoopScheduler) C() <-chan func() {
	return s.queue
}

// Now returns wall clock time
func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn once after d
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.timer = time.AfterFunc(d, func() {
		s.post(lt, fn)
	})
	return lt
}

// Every schedules fn every d until stopped
func (s *LoopScheduler) Every(d time.Duration, fn func()) Timer {
	lt := &loopTimer{stopCh: make(chan struct{})}
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.post(lt, fn)
			case <-lt.stopCh:
				return
			case <-s.done:
				return
			}
		}
	}()
	return lt
}

// Close stops delivering callbacks; pending posts are abandoned
func (s *LoopScheduler) Close() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// post hands the callback to the loop, re-checking cancellation at execution time
// A callback already queued when Stop is called becomes a no-op
func (s *LoopScheduler) post(lt *loopTimer, fn func()) {
	if lt.stopped.Load() {
		return
	}
	select {
	case s.queue <- func() {
		if lt.stopped.Load() {
			return
		}
		fn()
	}:
	case <-lt.stopChan():
	case <-s.done:
	}
}

type loopTimer struct {
	timer   *time.Timer
	stopCh  chan struct{}
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.stopCh != nil {
		close(t.stopCh)
	}
	return true
}

// stopChan returns nil for single-shot timers, which blocks forever in select
func (t *loopTimer) stopChan() <-chan struct{} {
	if t.stopCh == nil {
		return nil
	}
	return t.stopCh
}
