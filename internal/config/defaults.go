package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration. It matches defaults/snake.yaml.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Size:     400,
			CellSize: 20,
		},
		Colors: ColorsConfig{
			Low:  RGB{255, 0, 0},
			Mid:  RGB{0, 255, 255},
			High: RGB{255, 220, 110},
		},
		Game: GameConfig{
			TickRate:     5,
			FoodCapacity: 10,
			LevelTime:    120 * time.Second,
			Difficulty:   string(PresetNormal),
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  -1,
		},
		Storage: StorageConfig{
			Path: "~/.snake/scores.db",
		},
		Log: LogConfig{
			File:  "~/.snake/snake.log",
			Level: "info",
		},
	}
}
