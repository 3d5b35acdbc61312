package config

import (
	_ "embed"
)

//go:embed defaults/hexgems.yaml
var defaultHexGemsYAML []byte

// Default returns the built-in hexgems configuration.
func Default() HexGems {
	return HexGems{
		Board: BoardConfig{
			Shape:  ShapeRect,
			Width:  8,
			Height: 9,
			Radius: 4,
		},
		Gems: GemsConfig{
			Types: 5,
		},
		Rules: RulesConfig{
			MinRun:      3,
			GravityAxis: "e-w",
			Moves:       30,
		},
		Timing: TimingConfig{
			SwapMS:   250,
			SettleMS: 350,
		},
		Scoring: ScoringConfig{
			PerGem:     10,
			ChainBonus: 5,
		},
	}
}
