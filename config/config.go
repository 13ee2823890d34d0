// Package config loads game settings from an optional YAML file with environment overrides
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/scratch-toss/audio"
	"github.com/lixenwraith/scratch-toss/constants"
	"github.com/lixenwraith/scratch-toss/input"
	"github.com/lixenwraith/scratch-toss/scratch"
)

// Environment overrides
const (
	EnvAudioEnabled = "SCRATCH_TOSS_AUDIO_ENABLED"
	EnvMasterVolume = "SCRATCH_TOSS_MASTER_VOLUME" // 0-100
	EnvCelebration  = "SCRATCH_TOSS_CELEBRATION"   // Go duration
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the complete set of user tunables
type Config struct {
	Scratch ScratchConfig `yaml:"scratch"`
	Timing  TimingConfig  `yaml:"timing"`
	Audio   AudioConfig   `yaml:"audio"`
	Labels  LabelsConfig  `yaml:"labels"`
	Status  StatusConfig  `yaml:"status"`

	// Keys overrides key bindings: action name -> key names ("none" unbinds)
	Keys map[string][]string `yaml:"keys"`
}

// ScratchConfig sizes the brush and the terminal-to-pixel mapping
type ScratchConfig struct {
	StrokePx  float64 `yaml:"stroke_px"`
	Threshold float64 `yaml:"threshold"`
	CellPxW   float64 `yaml:"cell_px_w"`
	CellPxH   float64 `yaml:"cell_px_h"`
}

type TimingConfig struct {
	Flip        Duration `yaml:"flip"`
	Celebration Duration `yaml:"celebration"`
	Tick        Duration `yaml:"tick"`
	Toast       Duration `yaml:"toast"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	SampleRate   int     `yaml:"sample_rate"`
}

type LabelsConfig struct {
	Heads string `yaml:"heads"`
	Tails string `yaml:"tails"`
	Title string `yaml:"title"`
}

// StatusConfig enables the read-only status endpoint when Addr is set
type StatusConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Scratch: ScratchConfig{
			StrokePx:  constants.StrokeWidth,
			Threshold: constants.RevealThreshold,
			CellPxW:   constants.CellPixelWidth,
			CellPxH:   constants.CellPixelHeight,
		},
		Timing: TimingConfig{
			Flip:        Duration(constants.FlipDuration),
			Celebration: Duration(constants.CelebrationDuration),
			Tick:        Duration(constants.CountdownTick),
			Toast:       Duration(constants.ToastDuration),
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: constants.AudioMasterVolume,
			SampleRate:   constants.AudioSampleRate,
		},
		Labels: LabelsConfig{
			Heads: constants.DefaultHeadsLabel,
			Tails: constants.DefaultTailsLabel,
			Title: constants.DefaultTitle,
		},
	}
}

// Load reads path on top of the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates, without environment overrides
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides audio and celebration settings from the environment
// Unparseable values are ignored and the previous setting is kept
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAudioEnabled); ok && v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = enabled
		}
	}

	// 0-100 converted to 0.0-1.0
	if v, ok := lookup(EnvMasterVolume); ok && v != "" {
		if vol, err := strconv.Atoi(v); err == nil {
			c.Audio.MasterVolume = math.Max(0, math.Min(1, float64(vol)/100.0))
		}
	}

	if v, ok := lookup(EnvCelebration); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timing.Celebration = Duration(d)
		}
	}
}

// Validate reports the first setting outside its allowed range
func (c Config) Validate() error {
	s := c.Scratch
	if !positive(s.StrokePx) {
		return fmt.Errorf("%w: scratch.stroke_px must be positive, got %v", ErrInvalid, s.StrokePx)
	}
	if !(s.Threshold > 0 && s.Threshold <= 1) {
		return fmt.Errorf("%w: scratch.threshold must be in (0, 1], got %v", ErrInvalid, s.Threshold)
	}
	if !positive(s.CellPxW) || !positive(s.CellPxH) {
		return fmt.Errorf("%w: scratch cell pixel size must be positive, got %vx%v", ErrInvalid, s.CellPxW, s.CellPxH)
	}

	t := c.Timing
	if t.Flip <= 0 {
		return fmt.Errorf("%w: timing.flip must be positive, got %s", ErrInvalid, t.Flip)
	}
	if t.Celebration <= 0 {
		return fmt.Errorf("%w: timing.celebration must be positive, got %s", ErrInvalid, t.Celebration)
	}
	if t.Tick <= 0 || t.Tick > t.Celebration {
		return fmt.Errorf("%w: timing.tick must be in (0, celebration], got %s", ErrInvalid, t.Tick)
	}
	if t.Toast < 0 {
		return fmt.Errorf("%w: timing.toast must not be negative, got %s", ErrInvalid, t.Toast)
	}

	a := c.Audio
	if math.IsNaN(a.MasterVolume) || a.MasterVolume < 0 || a.MasterVolume > 1 {
		return fmt.Errorf("%w: audio.master_volume must be in [0, 1], got %v", ErrInvalid, a.MasterVolume)
	}
	if a.SampleRate < 8000 || a.SampleRate > 192000 {
		return fmt.Errorf("%w: audio.sample_rate must be in [8000, 192000], got %d", ErrInvalid, a.SampleRate)
	}

	l := c.Labels
	if l.Heads == "" || l.Tails == "" {
		return fmt.Errorf("%w: labels.heads and labels.tails must be set", ErrInvalid)
	}

	if _, err := input.ParseKeyBindings(c.Keys); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Tracker returns the scratch tracker settings
func (c Config) Tracker() scratch.Config {
	return scratch.Config{
		StrokeWidth: c.Scratch.StrokePx,
		Threshold:   c.Scratch.Threshold,
	}
}

// KeyTable returns the default bindings with the configured overrides applied
func (c Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.ParseKeyBindings(c.Keys)
	if err != nil {
		return nil, err
	}
	kt := input.DefaultKeyTable()
	kt.Merge(override)
	return kt, nil
}

// AudioOutput returns the sound manager settings
func (c Config) AudioOutput() audio.Config {
	return audio.Config{
		Enabled:      c.Audio.Enabled,
		MasterVolume: c.Audio.MasterVolume,
		SampleRate:   c.Audio.SampleRate,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
