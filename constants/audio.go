package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the default output sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume is the default master volume in [0, 1]
	AudioMasterVolume = 0.5
)

// Flip Sound Timing
const (
	FlipSoundNote1Duration = 60 * time.Millisecond
	FlipSoundNote2Duration = 90 * time.Millisecond
	FlipSoundNote3Duration = 320 * time.Millisecond
	FlipSoundAttack        = 3 * time.Millisecond
	FlipSoundShortRelease  = 30 * time.Millisecond
	FlipSoundLongRelease   = 260 * time.Millisecond
)

// Drum Roll Timing
const (
	DrumRollDuration   = 2400 * time.Millisecond
	DrumStrokeInterval = 45 * time.Millisecond
	DrumCrashDuration  = 900 * time.Millisecond
	DrumCrashAttack    = 2 * time.Millisecond
	DrumCrashRelease   = 800 * time.Millisecond
)
