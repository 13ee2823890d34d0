package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/scratch-toss/constants"
)

// SoundManager plays the toss cues through a single speaker mixer
// Every Play call is a no-op until Initialize succeeds, so the game runs silently without a device
type SoundManager struct {
	mu     sync.Mutex
	cfg    Config
	logger *zap.Logger

	mixer       *beep.Mixer
	flip        *beep.Ctrl
	celebration *beep.Ctrl
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg Config, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		cfg:    cfg.normalized(),
		logger: logger.Named("audio"),
		mixer:  &beep.Mixer{},
	}
}

// Initialize sets up the speaker; returns ErrDisabled when audio is turned off
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("speaker ready", zap.Int("sample_rate", sm.cfg.SampleRate), zap.Float64("volume", sm.cfg.MasterVolume))
	return nil
}

// Initialized reports whether sounds reach the speaker
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	sm.flip = nil
	sm.celebration = nil
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// Flip plays the coin flip ping
func (sm *SoundManager) Flip() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.stopLocked(sm.flip)
	sm.flip = &beep.Ctrl{Streamer: GetSoundEffect(SoundFlip, sm.cfg)}
	sm.mixer.Add(sm.flip)
	speaker.Unlock()
}

// Celebrate plays the drum roll followed by the crash
func (sm *SoundManager) Celebrate() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sequence := beep.Seq(
		GetSoundEffect(SoundDrumRoll, sm.cfg),
		GetSoundEffect(SoundCrash, sm.cfg),
		beep.Callback(func() {
			sm.logger.Debug("celebration sound finished")
		}),
	)

	speaker.Lock()
	sm.stopLocked(sm.celebration)
	sm.celebration = &beep.Ctrl{Streamer: sequence}
	sm.mixer.Add(sm.celebration)
	speaker.Unlock()
}

// Silence cuts every playing cue
func (sm *SoundManager) Silence() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.stopLocked(sm.flip)
	sm.stopLocked(sm.celebration)
	sm.flip = nil
	sm.celebration = nil
	speaker.Unlock()
}

// stopLocked detaches a cue; the mixer drops a Ctrl without a streamer on its next pull
// Caller must hold the speaker lock
func (sm *SoundManager) stopLocked(ctrl *beep.Ctrl) {
	if ctrl == nil {
		return
	}
	ctrl.Paused = true
	ctrl.Streamer = nil
}
