package render

import "go.uber.org/zap"

// Beeper is satisfied by tcell.Screen
type Beeper interface {
	Beep() error
}

// BellCues rings the terminal bell on reveal, the terminal's stand-in for a haptic tap
type BellCues struct {
	beeper Beeper
	logger *zap.Logger
}

// NewBellCues creates bell cues on beeper
func NewBellCues(beeper Beeper, logger *zap.Logger) *BellCues {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BellCues{beeper: beeper, logger: logger.Named("bell")}
}

func (b *BellCues) Flip() {}

// Celebrate rings once; failures are logged and dropped
func (b *BellCues) Celebrate() {
	if b.beeper == nil {
		return
	}
	if err := b.beeper.Beep(); err != nil {
		b.logger.Debug("bell failed", zap.Error(err))
	}
}

func (b *BellCues) Silence() {}
