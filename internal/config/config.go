// Package config provides YAML-based game configuration loading and
// difficulty presets for hexgems.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/hex"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// HexGems contains all configuration for the hex gem game.
type HexGems struct {
	Board   BoardConfig   `yaml:"board"`
	Gems    GemsConfig    `yaml:"gems"`
	Rules   RulesConfig   `yaml:"rules"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig defines the set of valid cells.
type BoardConfig struct {
	Shape  string   `yaml:"shape"` // "rect", "flower" or "mask"
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Radius int      `yaml:"radius"`
	Mask   []string `yaml:"mask"`
}

// GemsConfig defines which gem types are in play.
type GemsConfig struct {
	Types int `yaml:"types"`
}

// RulesConfig defines matching and gravity.
type RulesConfig struct {
	MinRun      int    `yaml:"min_run"`
	GravityAxis string `yaml:"gravity_axis"`
	Moves       int    `yaml:"moves"` // 0 = unlimited
}

// TimingConfig defines swap presentation timing in milliseconds.
type TimingConfig struct {
	SwapMS   int `yaml:"swap_ms"`
	SettleMS int `yaml:"settle_ms"`
}

// ScoringConfig defines points per cleared gem and per extra cascade wave.
type ScoringConfig struct {
	PerGem     int `yaml:"per_gem"`
	ChainBonus int `yaml:"chain_bonus"`
}

// Shape names.
const (
	ShapeRect   = "rect"
	ShapeFlower = "flower"
	ShapeMask   = "mask"
)

// Validate checks every field and returns an error wrapping
// ErrInvalidConfig for the first problem found.
func (c *HexGems) Validate() error {
	switch c.Board.Shape {
	case ShapeRect, "":
		if c.Board.Width < 3 || c.Board.Height < 3 {
			return fmt.Errorf("%w: board must be at least 3x3, got %dx%d",
				ErrInvalidConfig, c.Board.Width, c.Board.Height)
		}
	case ShapeFlower:
		if c.Board.Radius < 1 {
			return fmt.Errorf("%w: flower radius must be positive, got %d", ErrInvalidConfig, c.Board.Radius)
		}
	case ShapeMask:
		if _, err := board.Mask(c.Board.Mask); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	default:
		return fmt.Errorf("%w: unknown board shape %q", ErrInvalidConfig, c.Board.Shape)
	}

	if c.Gems.Types < 3 || c.Gems.Types > board.MaxTypes {
		return fmt.Errorf("%w: gem types must be in 3..%d, got %d", ErrInvalidConfig, board.MaxTypes, c.Gems.Types)
	}
	if c.Rules.MinRun < 2 {
		return fmt.Errorf("%w: min_run must be at least 2, got %d", ErrInvalidConfig, c.Rules.MinRun)
	}
	if _, err := hex.ParseAxis(c.Rules.GravityAxis); err != nil {
		return fmt.Errorf("%w: gravity_axis: %v", ErrInvalidConfig, err)
	}
	if c.Rules.Moves < 0 {
		return fmt.Errorf("%w: moves must not be negative", ErrInvalidConfig)
	}
	if c.Timing.SwapMS < 0 || c.Timing.SettleMS < 0 {
		return fmt.Errorf("%w: timings must not be negative", ErrInvalidConfig)
	}
	if c.Timing.SettleMS < c.Timing.SwapMS {
		return fmt.Errorf("%w: settle_ms (%d) is shorter than swap_ms (%d)",
			ErrInvalidConfig, c.Timing.SettleMS, c.Timing.SwapMS)
	}
	return nil
}

// BuildShape builds the board shape described by the config.
func (b BoardConfig) BuildShape() (board.Shape, error) {
	switch b.Shape {
	case ShapeRect, "":
		return board.Rect(b.Width, b.Height), nil
	case ShapeFlower:
		return board.Flower(b.Radius), nil
	case ShapeMask:
		return board.Mask(b.Mask)
	}
	return nil, fmt.Errorf("%w: unknown board shape %q", ErrInvalidConfig, b.Shape)
}

// Gravity returns the parsed gravity axis, E-W if unset or unknown.
func (r RulesConfig) Gravity() hex.Axis {
	axis, err := hex.ParseAxis(r.GravityAxis)
	if err != nil {
		return hex.AxisEW
	}
	return axis
}

// SwapDuration returns the swap animation length.
func (t TimingConfig) SwapDuration() time.Duration {
	return time.Duration(t.SwapMS) * time.Millisecond
}

// SettleDelay returns the wait between a swap and the match check.
func (t TimingConfig) SettleDelay() time.Duration {
	return time.Duration(t.SettleMS) * time.Millisecond
}

// Endless reports whether the move budget is unlimited.
func (r RulesConfig) Endless() bool {
	return r.Moves == 0
}
