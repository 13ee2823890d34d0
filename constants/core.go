package constants

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// CallbackQueueSize is the capacity of the scheduler callback channel drained by the UI loop
	CallbackQueueSize = 64

	// EventQueueSize is the capacity of the terminal event channel
	EventQueueSize = 256
)

// Lifecycle Timing
const (
	// FlipDuration is the length of the coin flip animation
	FlipDuration = 1300 * time.Millisecond

	// CelebrationDuration is how long the celebration lasts before returning to idle
	CelebrationDuration = 7 * time.Second

	// CountdownTick is the period of the remaining-seconds counter
	CountdownTick = time.Second

	// ToastDuration is how long the scratch hint stays on screen
	ToastDuration = 2 * time.Second
)
