package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-leapchord/gesture"
	"go-leapchord/midi"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

// SourceKind selects where samples come from.
type SourceKind string

const (
	SourceSerial SourceKind = "serial"
	SourceStdin  SourceKind = "stdin"
	SourceSweep  SourceKind = "sweep"
)

// ScaleConfig defines the permitted pitches
type ScaleConfig struct {
	BasePitch int   `json:"basePitch"`
	Intervals []int `json:"intervals,omitempty"`
	Octaves   int   `json:"octaves"`
}

// TrackingConfig calibrates the tracker volume
type TrackingConfig struct {
	X      gesture.Range `json:"x"`
	Y      gesture.Range `json:"y"`
	Z      gesture.Range `json:"z"`
	Window int           `json:"movingAverageWindow"`
	Hand   string        `json:"hand"` // "right", "left" or "any"
}

// MIDIConfig defines the synth output
type MIDIConfig struct {
	PortName   string `json:"portName,omitempty"`
	Channel    int    `json:"channel"`
	Program    int    `json:"program"`
	Expression bool   `json:"expression"`
	Record     string `json:"record,omitempty"` // .mid path, empty = off
}

// TimingConfig holds the rate gate and note lifetimes
type TimingConfig struct {
	BaseDelayMs   int `json:"baseDelayMs"`
	MinDurationMs int `json:"minDurationMs"`
	MaxDurationMs int `json:"maxDurationMs"`
	PollTimeoutMs int `json:"pollTimeoutMs"`
}

// EnvelopeConfig is sent as CC1-CC3; release follows the note duration
type EnvelopeConfig struct {
	Attack  int `json:"attack"`
	Decay   int `json:"decay"`
	Sustain int `json:"sustain"`
}

// GestureConfig tunes the pinch instrument switch
type GestureConfig struct {
	PinchThreshold float64 `json:"pinchThreshold"`
	CooldownSec    float64 `json:"cooldownSec"`
}

// ScreenConfig is the pointer target area
type ScreenConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SourceConfig selects the sample source
type SourceConfig struct {
	Kind            SourceKind `json:"kind"`
	SerialPort      string     `json:"serialPort,omitempty"`
	Baud            int        `json:"baud,omitempty"`
	SweepSteps      int        `json:"sweepSteps,omitempty"`
	SweepIntervalMs int        `json:"sweepIntervalMs,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // GIMP .gpl file
}

// Config is the main configuration structure
type Config struct {
	Scale    ScaleConfig    `json:"scale"`
	Tracking TrackingConfig `json:"tracking"`
	MIDI     MIDIConfig     `json:"midi"`
	Timing   TimingConfig   `json:"timing"`
	Envelope EnvelopeConfig `json:"envelope"`
	Gesture  GestureConfig  `json:"gesture"`
	Screen   ScreenConfig   `json:"screen"`
	Source   SourceConfig   `json:"source"`
	UI       UIConfig       `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scale: ScaleConfig{
			BasePitch: 42,
			Intervals: append([]int(nil), gesture.MinorIntervals...),
			Octaves:   3,
		},
		Tracking: TrackingConfig{
			X:      gesture.Range{Min: -300, Max: 300},
			Y:      gesture.Range{Min: 500, Max: 220},
			Z:      gesture.Range{Min: -100, Max: 0},
			Window: 3,
			Hand:   "right",
		},
		MIDI: MIDIConfig{
			Channel:    2,
			Expression: true,
		},
		Timing: TimingConfig{
			BaseDelayMs:   1000,
			MinDurationMs: 100,
			MaxDurationMs: 5000,
			PollTimeoutMs: 50,
		},
		Envelope: EnvelopeConfig{Attack: 70, Decay: 100, Sustain: 80},
		Gesture: GestureConfig{
			PinchThreshold: 10.0,
			CooldownSec:    1,
		},
		Screen: ScreenConfig{Width: 1920, Height: 1020},
		Source: SourceConfig{
			Kind:            SourceSerial,
			SerialPort:      "/dev/ttyACM0",
			Baud:            115200,
			SweepSteps:      64,
			SweepIntervalMs: 250,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-leapchord"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks option ranges. Musical consistency (scale shape, axis
// ranges) is checked again when the session is built.
func (c *Config) Validate() error {
	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		return invalid("midi.channel must be 1-16, got %d", c.MIDI.Channel)
	}
	if c.MIDI.Program < 0 || c.MIDI.Program > 127 {
		return invalid("midi.program must be 0-127, got %d", c.MIDI.Program)
	}
	if c.Scale.BasePitch < 0 || c.Scale.BasePitch > 127 {
		return invalid("scale.basePitch must be 0-127, got %d", c.Scale.BasePitch)
	}
	if c.Scale.Octaves < 1 {
		return invalid("scale.octaves must be at least 1")
	}
	if c.Tracking.Window < 1 {
		return invalid("tracking.movingAverageWindow must be at least 1")
	}
	if _, err := parseHand(c.Tracking.Hand); err != nil {
		return err
	}
	if c.Timing.MinDurationMs <= 0 || c.Timing.MaxDurationMs < c.Timing.MinDurationMs {
		return invalid("timing needs 0 < minDurationMs <= maxDurationMs")
	}
	if c.Timing.BaseDelayMs < 0 || c.Timing.PollTimeoutMs < 0 {
		return invalid("timing values must not be negative")
	}
	for name, v := range map[string]int{"attack": c.Envelope.Attack, "decay": c.Envelope.Decay, "sustain": c.Envelope.Sustain} {
		if v < 0 || v > 127 {
			return invalid("envelope.%s must be 0-127, got %d", name, v)
		}
	}
	if c.Gesture.CooldownSec < 0 {
		return invalid("gesture.cooldownSec must not be negative")
	}
	switch c.Source.Kind {
	case SourceSerial:
		if c.Source.SerialPort == "" || c.Source.Baud <= 0 {
			return invalid("source.serialPort and source.baud are required for serial")
		}
	case SourceStdin:
	case SourceSweep:
		if c.Source.SweepSteps < 1 {
			return invalid("source.sweepSteps must be at least 1")
		}
	default:
		return invalid("unknown source.kind %q", c.Source.Kind)
	}
	return nil
}

func parseHand(s string) (gesture.Hand, error) {
	switch strings.ToLower(s) {
	case "right", "r":
		return gesture.HandRight, nil
	case "left", "l":
		return gesture.HandLeft, nil
	case "any", "":
		return gesture.HandUnknown, nil
	}
	return gesture.HandUnknown, invalid("tracking.hand must be right, left or any, got %q", s)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Options converts a validated config to session options.
func (c *Config) Options() gesture.Options {
	hand, _ := parseHand(c.Tracking.Hand)
	intervals := c.Scale.Intervals
	if len(intervals) == 0 {
		intervals = gesture.MinorIntervals
	}
	return gesture.Options{
		BasePitch:   c.Scale.BasePitch,
		Intervals:   append([]int(nil), intervals...),
		Octaves:     c.Scale.Octaves,
		Window:      c.Tracking.Window,
		X:           c.Tracking.X,
		Y:           c.Tracking.Y,
		Z:           c.Tracking.Z,
		Hand:        hand,
		Channel:     midi.Channel(c.MIDI.Channel),
		Program:     uint8(c.MIDI.Program),
		BaseDelay:   ms(c.Timing.BaseDelayMs),
		MinDuration: ms(c.Timing.MinDurationMs),
		MaxDuration: ms(c.Timing.MaxDurationMs),
		Envelope: gesture.Envelope{
			Attack:  uint8(c.Envelope.Attack),
			Decay:   uint8(c.Envelope.Decay),
			Sustain: uint8(c.Envelope.Sustain),
		},
		Expression:     c.MIDI.Expression,
		PinchThreshold: c.Gesture.PinchThreshold,
		Cooldown:       time.Duration(c.Gesture.CooldownSec * float64(time.Second)),
		ScreenWidth:    c.Screen.Width,
		ScreenHeight:   c.Screen.Height,
	}
}

// PollTimeout is the per-wait bound on the sample source.
func (c *Config) PollTimeout() time.Duration {
	return ms(c.Timing.PollTimeoutMs)
}

// SweepInterval is the spacing of synthetic sweep samples.
func (c *Config) SweepInterval() time.Duration {
	return ms(c.Source.SweepIntervalMs)
}
