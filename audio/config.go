package audio

import (
	"math"

	"github.com/lixenwraith/scratch-toss/constants"
)

// Config holds audio output settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 to 1.0
	SampleRate   int
}

// DefaultConfig returns audio enabled at half volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: constants.AudioMasterVolume,
		SampleRate:   constants.AudioSampleRate,
	}
}

// normalized clamps volume and replaces an unusable sample rate
func (c Config) normalized() Config {
	if math.IsNaN(c.MasterVolume) || c.MasterVolume < 0 {
		c.MasterVolume = 0
	}
	if c.MasterVolume > 1 {
		c.MasterVolume = 1
	}
	if c.SampleRate <= 0 {
		c.SampleRate = constants.AudioSampleRate
	}
	return c
}
