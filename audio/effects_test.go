package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/scratch-toss/constants"
)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer, limit int) (total int, peak float64) {
	t.Helper()

	buf := make([][2]float64, 512)
	for total <= limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			peak = math.Max(peak, math.Abs(buf[i][1]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("Stream did not finish within %d samples", limit)
	return total, peak
}

// TestOscillatorWaves verifies every wave shape stays within [-1, 1]
func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"triangle", WaveTriangle},
		{"noise", WaveNoise},
	}

	for _, w := range waves {
		osc := NewOscillator(440, 50*time.Millisecond, w.wave, rate)

		samples := make([][2]float64, 200)
		n, ok := osc.Stream(samples)
		if !ok || n != 200 {
			t.Errorf("%s: expected 200 samples, got %d (ok=%v)", w.name, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
				t.Errorf("%s: sample %d out of range: %f", w.name, i, samples[i][0])
				break
			}
		}
		if osc.Err() != nil {
			t.Errorf("%s: expected no error, got: %v", w.name, osc.Err())
		}
	}
}

// TestOscillatorDuration verifies oscillator stops after duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	expectedSamples := rate.N(duration)

	osc := NewOscillator(440.0, duration, WaveSine, rate)

	samples := make([][2]float64, expectedSamples*2)
	n, ok := osc.Stream(samples)
	if n != expectedSamples || !ok {
		t.Errorf("Expected %d samples with ok=true, got %d (ok=%v)", expectedSamples, n, ok)
	}

	n2, ok2 := osc.Stream(samples[:10])
	if ok2 || n2 != 0 {
		t.Errorf("Expected drained oscillator, got n=%d ok=%v", n2, ok2)
	}
}

// TestEnvelopeBoundsLength verifies the envelope cuts an endless stream at its duration
func TestEnvelopeBoundsLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 40 * time.Millisecond

	osc := NewOscillator(440, time.Hour, WaveSquare, rate)
	env := NewEnvelope(osc, duration, 5*time.Millisecond, 5*time.Millisecond, rate)

	total, peak := drain(t, env, rate.N(time.Second))
	if total != rate.N(duration) {
		t.Errorf("Expected %d samples, got %d", rate.N(duration), total)
	}
	if peak > 1.0 {
		t.Errorf("Expected peak <= 1, got %f", peak)
	}
}

// TestEnvelopeAttackPhase verifies attack ramp-up
func TestEnvelopeAttackPhase(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond
	attack := 50 * time.Millisecond

	// Square wave for constant amplitude
	osc := NewOscillator(100.0, duration, WaveSquare, rate)
	env := NewEnvelope(osc, duration, attack, 10*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(attack))
	n, ok := env.Stream(samples)
	if !ok {
		t.Fatal("Expected envelope to stream successfully")
	}

	if math.Abs(samples[0][0]) >= math.Abs(samples[n-1][0]) {
		t.Errorf("Expected attack phase to ramp up, got first=%f last=%f", samples[0][0], samples[n-1][0])
	}
}

// TestCreateFlipSound verifies the flip ping is finite and in range
func TestCreateFlipSound(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	want := rate.N(constants.FlipSoundNote1Duration) + rate.N(constants.FlipSoundNote2Duration) + rate.N(constants.FlipSoundNote3Duration)
	total, peak := drain(t, CreateFlipSound(cfg), want*2)

	if total < want-512 || total > want+512 {
		t.Errorf("Expected about %d samples, got %d", want, total)
	}
	if peak == 0 || peak > 1.0 {
		t.Errorf("Expected audible peak within range, got %f", peak)
	}
}

// TestCreateDrumRoll verifies the roll length follows the stroke count
func TestCreateDrumRoll(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	strokes := int(constants.DrumRollDuration / constants.DrumStrokeInterval)
	want := strokes * rate.N(constants.DrumStrokeInterval)

	total, peak := drain(t, CreateDrumRoll(cfg), want*2)
	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak == 0 || peak > 1.0 {
		t.Errorf("Expected audible peak within range, got %f", peak)
	}
}

// TestCreateCrashSound verifies the crash is finite and in range
func TestCreateCrashSound(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	want := rate.N(constants.DrumCrashDuration)
	total, peak := drain(t, CreateCrashSound(cfg), want*2)
	if total < want-512 || total > want+512 {
		t.Errorf("Expected about %d samples, got %d", want, total)
	}
	if peak > 1.0 {
		t.Errorf("Expected peak <= 1, got %f", peak)
	}
}

// TestGetSoundEffect verifies every sound type resolves
func TestGetSoundEffect(t *testing.T) {
	cfg := DefaultConfig()

	for st := SoundType(0); st < soundTypeCount; st++ {
		if GetSoundEffect(st, cfg) == nil {
			t.Errorf("Expected streamer for %s", st)
		}
	}
	if GetSoundEffect(soundTypeCount, cfg) != nil {
		t.Error("Expected nil for unknown sound type")
	}
}

// TestNewVolumeZero verifies zero volume produces silence
func TestNewVolumeZero(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 10*time.Millisecond, WaveSquare, rate)

	_, peak := drain(t, newVolume(osc, 0.0), rate.N(time.Second))
	if peak != 0 {
		t.Errorf("Expected silence at zero volume, got peak %f", peak)
	}
}

// TestMasterVolumeScales verifies master volume attenuates the mix
func TestMasterVolumeScales(t *testing.T) {
	loud := DefaultConfig()
	loud.MasterVolume = 1.0
	quiet := DefaultConfig()
	quiet.MasterVolume = 0.1

	rate := beep.SampleRate(loud.SampleRate)
	limit := rate.N(time.Second)

	_, loudPeak := drain(t, CreateCrashSound(loud), limit)
	_, quietPeak := drain(t, CreateCrashSound(quiet), limit)

	if quietPeak >= loudPeak {
		t.Errorf("Expected quieter peak, got quiet=%f loud=%f", quietPeak, loudPeak)
	}
}
