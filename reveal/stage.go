package reveal

import "github.com/google/uuid"

// Stage is the active phase of the toss lifecycle
type Stage string

const (
	StageIdle        Stage = "idle"
	StageFlipping    Stage = "flipping"
	StageScratch     Stage = "scratch"
	StageCelebrating Stage = "celebrating"
)

// Outcome is the coin face chosen for one toss
type Outcome int

const (
	OutcomeNone Outcome = iota
	Heads
	Tails
)

func (o Outcome) String() string {
	switch o {
	case Heads:
		return "heads"
	case Tails:
		return "tails"
	default:
		return "none"
	}
}

// Snapshot is the read-only view handed to the presentation layer
type Snapshot struct {
	Stage        Stage
	Outcome      Outcome
	Coverage     float64 // Last published coverage ratio
	Threshold    float64
	Remaining    int // Whole seconds left in the celebration countdown
	FlipProgress float64
	Session      uuid.UUID
}

// Percent returns the coverage as a whole percentage capped at 100
func (s Snapshot) Percent() int {
	p := int(s.Coverage*100 + 0.5)
	if p > 100 {
		return 100
	}
	return p
}

// HasOutcome reports whether a toss outcome is held
func (s Snapshot) HasOutcome() bool {
	return s.Outcome != OutcomeNone
}
