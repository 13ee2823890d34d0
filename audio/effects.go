package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/scratch-toss/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping and bounds the wrapped stream to a fixed length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope of the given total duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if left := e.totalSamples - e.position; len(samples) > left {
		samples = samples[:left]
	}

	n, ok = e.streamer.Stream(samples)

	releaseStart := e.attackSamples + e.sustainSamples
	for i := 0; i < n; i++ {
		vol := 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok || n > 0
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// sineTone prefers beep's generator and falls back to the local oscillator above Nyquist
func sineTone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return NewOscillator(freq, duration, WaveSine, rate)
	}
	return beep.Take(rate.N(duration), tone)
}

// Sound effect generators

// CreateFlipSound generates the metallic ping of a coin leaving the thumb
func CreateFlipSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// Two short clicks (E6, B6)
	n1 := NewOscillator(1318.51, constants.FlipSoundNote1Duration, WaveTriangle, rate)
	n1Shaped := NewEnvelope(n1, constants.FlipSoundNote1Duration, constants.FlipSoundAttack, constants.FlipSoundShortRelease, rate)

	n2 := NewOscillator(1975.53, constants.FlipSoundNote2Duration, WaveTriangle, rate)
	n2Shaped := NewEnvelope(n2, constants.FlipSoundNote2Duration, constants.FlipSoundAttack, constants.FlipSoundShortRelease, rate)

	// Ringing tail (E7 with inharmonic overtone)
	fund := sineTone(2637.02, constants.FlipSoundNote3Duration, rate)
	fundShaped := NewEnvelope(fund, constants.FlipSoundNote3Duration, constants.FlipSoundAttack, constants.FlipSoundLongRelease, rate)

	over := sineTone(6328.85, constants.FlipSoundNote3Duration, rate)
	overShaped := NewEnvelope(over, constants.FlipSoundNote3Duration, constants.FlipSoundAttack, constants.FlipSoundLongRelease/2, rate)

	ring := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.25),
	)

	sequence := beep.Seq(n1Shaped, n2Shaped, ring)
	return newVolume(sequence, cfg.MasterVolume)
}

// CreateDrumRoll generates a snare roll swelling towards the reveal
func CreateDrumRoll(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	strokes := int(constants.DrumRollDuration / constants.DrumStrokeInterval)
	if strokes < 1 {
		strokes = 1
	}

	roll := make([]beep.Streamer, 0, strokes)
	for i := 0; i < strokes; i++ {
		// Crescendo from 0.25 to 0.9 over the roll
		swell := 0.25 + 0.65*float64(i)/float64(strokes)

		noise := NewOscillator(0, constants.DrumStrokeInterval, WaveNoise, rate)
		hit := NewEnvelope(noise, constants.DrumStrokeInterval, constants.DrumCrashAttack, constants.DrumStrokeInterval*2/3, rate)
		roll = append(roll, newVolume(hit, swell))
	}

	return newVolume(beep.Seq(roll...), cfg.MasterVolume)
}

// CreateCrashSound generates the cymbal and low hit that lands on the reveal
func CreateCrashSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, constants.DrumCrashDuration, WaveNoise, rate)
	cymbal := NewEnvelope(noise, constants.DrumCrashDuration, constants.DrumCrashAttack, constants.DrumCrashRelease, rate)

	kick := NewOscillator(65.41, constants.DrumCrashDuration/3, WaveSine, rate)
	kickShaped := NewEnvelope(kick, constants.DrumCrashDuration/3, constants.DrumCrashAttack, constants.DrumCrashDuration/4, rate)

	mixed := beep.Mix(
		newVolume(cymbal, 0.55),
		newVolume(kickShaped, 0.45),
	)
	return newVolume(mixed, cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for the given sound type, nil when unknown
func GetSoundEffect(soundType SoundType, cfg Config) beep.Streamer {
	switch soundType {
	case SoundFlip:
		return CreateFlipSound(cfg)
	case SoundDrumRoll:
		return CreateDrumRoll(cfg)
	case SoundCrash:
		return CreateCrashSound(cfg)
	default:
		return nil
	}
}
