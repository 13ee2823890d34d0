package engine

import (
	"math"
	"time"
)

// Tween drives a fixed-duration animation and reports completion through a callback
type Tween struct {
	sched    Scheduler
	start    time.Time
	duration time.Duration
	timer    Timer
	active   bool
}

// NewTween creates an idle tween on the scheduler's clock
func NewTween(sched Scheduler) *Tween {
	return &Tween{sched: sched}
}

// Start begins a new animation, cancelling any running one
// done runs on the scheduler's loop when the duration elapses
func (tw *Tween) Start(d time.Duration, done func()) {
	tw.Cancel()

	tw.start = tw.sched.Now()
	tw.duration = d
	tw.active = true
	tw.timer = tw.sched.AfterFunc(d, func() {
		tw.active = false
		tw.timer = nil
		if done != nil {
			done()
		}
	})
}

// Cancel stops the animation without invoking its completion callback
func (tw *Tween) Cancel() {
	if tw.timer != nil {
		tw.timer.Stop()
		tw.timer = nil
	}
	tw.active = false
}

// Active reports whether an animation is running
func (tw *Tween) Active() bool {
	return tw.active
}

// Progress returns linear progress in [0, 1]; 0 when idle
func (tw *Tween) Progress() float64 {
	if !tw.active {
		return 0
	}
	if tw.duration <= 0 {
		return 1
	}
	t := float64(tw.sched.Now().Sub(tw.start)) / float64(tw.duration)
	return math.Max(0, math.Min(1, t))
}

// EaseInOut maps linear progress to a symmetric ease-in-out curve
func EaseInOut(t float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

// Interpolate3 maps t in [0, 1] piecewise-linearly through a at 0, b at 0.5 and c at 1
func Interpolate3(t, a, b, c float64) float64 {
	t = math.Max(0, math.Min(1, t))
	if t < 0.5 {
		return a + (b-a)*(t*2)
	}
	return b + (c-b)*((t-0.5)*2)
}
