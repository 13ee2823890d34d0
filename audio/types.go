package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundFlip     SoundType = iota // Coin leaving the thumb
	SoundDrumRoll                  // Build-up before the outcome
	SoundCrash                     // Outcome revealed
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundFlip:
		return "flip"
	case SoundDrumRoll:
		return "drum_roll"
	case SoundCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrDisabled = errors.New("audio disabled by configuration")
)
