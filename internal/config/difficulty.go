package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyEndless DifficultyPreset = "endless"
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyEndless}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or endless)", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy and hard trade gem variety against the move budget; endless only
// removes the budget.
func ApplyPreset(cfg *HexGems, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gems.Types = 4
		cfg.Rules.Moves = 40
	case DifficultyNormal:
		cfg.Gems.Types = 5
		cfg.Rules.Moves = 30
	case DifficultyHard:
		cfg.Gems.Types = 6
		cfg.Rules.Moves = 20
	case DifficultyEndless:
		cfg.Rules.Moves = 0
	}
}
