// Package scratch turns a stream of drag samples into a debounced coverage signal
// and detects the reveal threshold once per session
package scratch

import (
	"math"

	"github.com/lixenwraith/scratch-toss/constants"
	"github.com/lixenwraith/scratch-toss/coverage"
)

// Config holds the tracker tunables
type Config struct {
	StrokeWidth float64 // Brush stroke width in surface pixels
	Threshold   float64 // Coverage ratio that fires the reveal
}

// DefaultConfig returns the reference stroke width and threshold
func DefaultConfig() Config {
	return Config{
		StrokeWidth: constants.StrokeWidth,
		Threshold:   constants.RevealThreshold,
	}
}

// Result describes the effect of one sample
type Result struct {
	Accepted  bool    // False when the surface has not been measured
	Marked    int     // Newly marked cells
	Ratio     float64 // Coverage after the sample
	Published float64 // Last published ratio
	Changed   bool    // Published ratio moved by more than ProgressStep
	Revealed  bool    // One-shot: threshold crossed for the first time this session
}

// Tracker owns the coverage grid and scratch session state for the current session
type Tracker struct {
	cfg  Config
	grid *coverage.Grid

	published       float64
	revealTriggered bool
}

// NewTracker creates a tracker over an unconfigured grid
func NewTracker(cfg Config) *Tracker {
	if cfg.StrokeWidth <= 0 {
		cfg.StrokeWidth = constants.StrokeWidth
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = constants.RevealThreshold
	}
	return &Tracker{
		cfg:  cfg,
		grid: coverage.NewGrid(),
	}
}

// Configure forwards a surface measurement to the grid
func (t *Tracker) Configure(surfaceWidth, surfaceHeight float64) {
	t.grid.Configure(surfaceWidth, surfaceHeight)
}

// Configured reports whether samples are currently usable
func (t *Tracker) Configured() bool {
	return t.grid.Configured()
}

// Sample marks the brush footprint at (x, y) and evaluates progress and threshold
func (t *Tracker) Sample(x, y float64) Result {
	if !t.grid.Configured() {
		return Result{Ratio: t.grid.CoverageRatio(), Published: t.published}
	}

	res := Result{Accepted: true}
	res.Marked = t.grid.MarkTouch(x, y, t.cfg.StrokeWidth)
	res.Ratio = t.grid.CoverageRatio()

	if math.Abs(res.Ratio-t.published) > constants.ProgressStep {
		t.published = res.Ratio
		res.Changed = true
	}
	res.Published = t.published

	if res.Ratio >= t.cfg.Threshold && !t.revealTriggered {
		t.revealTriggered = true
		res.Revealed = true
	}
	return res
}

// Ratio returns the exact coverage ratio
func (t *Tracker) Ratio() float64 {
	return t.grid.CoverageRatio()
}

// Published returns the debounced ratio exposed to the presentation layer
func (t *Tracker) Published() float64 {
	return t.published
}

// Revealed reports whether the reveal already fired this session
func (t *Tracker) Revealed() bool {
	return t.revealTriggered
}

// Threshold returns the configured reveal threshold
func (t *Tracker) Threshold() float64 {
	return t.cfg.Threshold
}

// StrokeWidth returns the configured stroke width
func (t *Tracker) StrokeWidth() float64 {
	return t.cfg.StrokeWidth
}

// Reset clears the grid, the published ratio and the reveal latch
func (t *Tracker) Reset() {
	t.grid.Reset()
	t.published = 0
	t.revealTriggered = false
}
