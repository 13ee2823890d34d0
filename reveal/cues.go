package reveal

import "time"

// Cues are fire-and-forget feedback effects
// Implementations must not block the loop and must swallow their own failures
type Cues interface {
	Flip()
	Celebrate()
	Silence()
}

// NopCues discards every cue
type NopCues struct{}

func (NopCues) Flip()      {}
func (NopCues) Celebrate() {}
func (NopCues) Silence()   {}

// MultiCues fans a cue out to several sinks
type MultiCues []Cues

func (m MultiCues) Flip() {
	for _, c := range m {
		c.Flip()
	}
}

func (m MultiCues) Celebrate() {
	for _, c := range m {
		c.Celebrate()
	}
}

func (m MultiCues) Silence() {
	for _, c := range m {
		c.Silence()
	}
}

// Animator drives the flip animation
type Animator interface {
	Start(d time.Duration, done func())
	Cancel()
	Progress() float64
}
