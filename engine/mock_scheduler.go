package engine

import (
	"sync"
	"time"
)

// MockScheduler provides controllable time and timers for testing
// Callbacks run synchronously on the goroutine calling Advance, in due-time order
type MockScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*mockTimer
}

type mockTimer struct {
	s       *MockScheduler
	due     time.Time
	period  time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

// NewMockScheduler creates a mock scheduler with the given start time
func NewMockScheduler(startTime time.Time) *MockScheduler {
	return &MockScheduler{now: startTime}
}

// Now returns the current mocked time
func (m *MockScheduler) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn once at Now()+d
func (m *MockScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return m.add(d, 0, fn)
}

// Every schedules fn at every multiple of d from Now()
func (m *MockScheduler) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, fn)
}

func (m *MockScheduler) add(d, period time.Duration, fn func()) *mockTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &mockTimer{
		s:      m,
		due:    m.now.Add(d),
		period: period,
		seq:    m.seq,
		fn:     fn,
	}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves time forward by d, firing every timer that comes due on the way
func (m *MockScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)

	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}

		m.now = next.due
		if next.period > 0 {
			m.seq++
			next.due = next.due.Add(next.period)
			next.seq = m.seq
		} else {
			next.stopped = true
			m.removeLocked(next)
		}

		// Callbacks may schedule or stop timers
		m.mu.Unlock()
		next.fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// nextDue returns the earliest live timer due at or before target, ties broken by creation order
func (m *MockScheduler) nextDue(target time.Time) *mockTimer {
	var best *mockTimer
	for _, t := range m.pending {
		if t.stopped || t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *MockScheduler) removeLocked(t *mockTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of live timers
func (m *MockScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *mockTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true
	t.s.removeLocked(t)
	return true
}
