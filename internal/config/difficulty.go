package config

import (
	"fmt"
	"strings"
	"time"
)

// Preset is a named difficulty.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Presets lists the accepted preset names.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard}
}

// ParsePreset resolves a preset name, case-insensitively. Empty means normal.
func ParsePreset(name string) (Preset, error) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return PresetNormal, nil
	case PresetEasy, PresetNormal, PresetHard:
		return p, nil
	default:
		return "", &ConfigurationError{
			Field:  "game.difficulty",
			Reason: fmt.Sprintf("unknown preset %q (want easy, normal or hard)", name),
		}
	}
}

// ApplyPreset adjusts the level-1 budget and food capacity.
// Normal leaves the configured values alone.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Game.LevelTime += 30 * time.Second
		cfg.Game.FoodCapacity += 2
	case PresetHard:
		cfg.Game.LevelTime = max(cfg.Game.LevelTime-20*time.Second, minLevelTime+10*time.Second)
		cfg.Game.FoodCapacity = max(1, cfg.Game.FoodCapacity-4)
	}

	// Keep at least one free cell per level for the snake.
	if area := cfg.GridSize().Area(); area > 1 && cfg.Game.FoodCapacity >= area {
		cfg.Game.FoodCapacity = area - 1
	}
}
