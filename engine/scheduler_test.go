package engine

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// TestMockSchedulerFiresInOrder verifies due-time ordering with creation-order ties
func TestMockSchedulerFiresInOrder(t *testing.T) {
	s := NewMockScheduler(epoch)

	var order []string
	s.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	s.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	s.AfterFunc(1*time.Second, func() { order = append(order, "b") })

	s.Advance(2 * time.Second)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("Expected [a b] after 2s, got %v", order)
	}

	s.Advance(time.Second)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("Expected c at 3s, got %v", order)
	}

	if got := s.Now().Sub(epoch); got != 3*time.Second {
		t.Errorf("Expected clock at +3s, got %v", got)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", s.Pending())
	}
}

// TestMockSchedulerNowDuringCallback verifies the clock reads the due time inside callbacks
func TestMockSchedulerNowDuringCallback(t *testing.T) {
	s := NewMockScheduler(epoch)

	var seen time.Time
	s.AfterFunc(1500*time.Millisecond, func() { seen = s.Now() })
	s.Advance(10 * time.Second)

	if !seen.Equal(epoch.Add(1500 * time.Millisecond)) {
		t.Errorf("Expected callback time +1.5s, got %v", seen.Sub(epoch))
	}
}

// TestMockSchedulerStop verifies a stopped timer never fires
func TestMockSchedulerStop(t *testing.T) {
	s := NewMockScheduler(epoch)

	fired := false
	timer := s.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Expected first Stop to return true")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to return false")
	}

	s.Advance(5 * time.Second)
	if fired {
		t.Error("Stopped timer fired")
	}
}

// TestMockSchedulerEvery verifies periodic firing and self-cancellation
func TestMockSchedulerEvery(t *testing.T) {
	s := NewMockScheduler(epoch)

	count := 0
	var ticker Timer
	ticker = s.Every(time.Second, func() {
		count++
		if count == 3 {
			ticker.Stop()
		}
	})

	s.Advance(10 * time.Second)
	if count != 3 {
		t.Errorf("Expected 3 ticks before self-stop, got %d", count)
	}
}

// TestMockSchedulerNestedScheduling verifies callbacks may schedule new timers within the window
func TestMockSchedulerNestedScheduling(t *testing.T) {
	s := NewMockScheduler(epoch)

	fired := 0
	s.AfterFunc(time.Second, func() {
		fired++
		s.AfterFunc(time.Second, func() { fired++ })
	})

	s.Advance(2 * time.Second)
	if fired != 2 {
		t.Errorf("Expected both timers within 2s, got %d", fired)
	}
}

// TestLoopSchedulerDeliversOnChannel verifies callbacks are posted, not run on the timer goroutine
func TestLoopSchedulerDeliversOnChannel(t *testing.T) {
	s := NewLoopScheduler(4)
	defer s.Close()

	ran := make(chan struct{}, 1)
	s.AfterFunc(5*time.Millisecond, func() { ran <- struct{}{} })

	select {
	case fn := <-s.C():
		select {
		case <-ran:
			t.Fatal("Callback ran before the loop invoked it")
		default:
		}
		fn()
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for scheduled callback")
	}

	select {
	case <-ran:
	default:
		t.Error("Expected callback to run when invoked by the loop")
	}
}

// TestLoopSchedulerStopQueued verifies a queued callback becomes a no-op after Stop
func TestLoopSchedulerStopQueued(t *testing.T) {
	s := NewLoopScheduler(4)
	defer s.Close()

	fired := false
	timer := s.AfterFunc(time.Millisecond, func() { fired = true })

	var fn func()
	select {
	case fn = <-s.C():
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for scheduled callback")
	}

	timer.Stop()
	fn()

	if fired {
		t.Error("Expected queued callback to be skipped after Stop")
	}
}

// TestLoopSchedulerEvery verifies periodic delivery stops after Stop
func TestLoopSchedulerEvery(t *testing.T) {
	s := NewLoopScheduler(8)
	defer s.Close()

	ticks := 0
	timer := s.Every(2*time.Millisecond, func() { ticks++ })

	deadline := time.After(time.Second)
	for ticks < 3 {
		select {
		case fn := <-s.C():
			fn()
		case <-deadline:
			t.Fatalf("Timed out after %d ticks", ticks)
		}
	}
	timer.Stop()

	// Drain anything already queued; none of it may run
	before := ticks
	drain := time.After(20 * time.Millisecond)
	for done := false; !done; {
		select {
		case fn := <-s.C():
			fn()
		case <-drain:
			done = true
		}
	}
	if ticks != before {
		t.Errorf("Expected no ticks after Stop, got %d more", ticks-before)
	}
}

// TestTweenProgress verifies linear and eased progress over the animation
func TestTweenProgress(t *testing.T) {
	s := NewMockScheduler(epoch)
	tw := NewTween(s)

	if tw.Progress() != 0 || tw.Active() {
		t.Fatal("Expected idle tween")
	}

	done := 0
	tw.Start(time.Second, func() { done++ })

	s.Advance(500 * time.Millisecond)
	if p := tw.Progress(); p != 0.5 {
		t.Errorf("Expected progress 0.5, got %f", p)
	}
	if e := EaseInOut(0.5); e < 0.4999 || e > 0.5001 {
		t.Errorf("Expected eased midpoint 0.5, got %f", e)
	}

	s.Advance(500 * time.Millisecond)
	if done != 1 {
		t.Errorf("Expected completion callback once, got %d", done)
	}
	if tw.Active() {
		t.Error("Expected tween inactive after completion")
	}
}

// TestTweenCancel verifies a cancelled tween never completes
func TestTweenCancel(t *testing.T) {
	s := NewMockScheduler(epoch)
	tw := NewTween(s)

	done := false
	tw.Start(time.Second, func() { done = true })
	tw.Cancel()
	s.Advance(2 * time.Second)

	if done {
		t.Error("Cancelled tween completed")
	}
}

// TestInterpolate3 verifies the three-point mapping used for the coin bounce
func TestInterpolate3(t *testing.T) {
	cases := []struct {
		t, want float64
	}{
		{0, 1},
		{0.25, 0.925},
		{0.5, 0.85},
		{1, 1},
		{-1, 1},
		{2, 1},
	}
	for _, tc := range cases {
		got := Interpolate3(tc.t, 1, 0.85, 1)
		if got < tc.want-1e-9 || got > tc.want+1e-9 {
			t.Errorf("Interpolate3(%f): expected %f, got %f", tc.t, tc.want, got)
		}
	}
}
