// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the snake game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Config is the full game configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Colors  ColorsConfig  `yaml:"colors"`
	Game    GameConfig    `yaml:"game"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig sizes the playfield. The grid is Size/CellSize cells square.
type WindowConfig struct {
	Size     int `yaml:"size"`
	CellSize int `yaml:"cell_size"`
}

// RGB is an 8-bit red, green, blue triple.
type RGB [3]int

// Color converts the triple to a terminal color.
func (c RGB) Color() core.Color {
	return core.RGBColor(c[0], c[1], c[2])
}

// ColorsConfig holds one color per food tier.
type ColorsConfig struct {
	Low  RGB `yaml:"low"`
	Mid  RGB `yaml:"mid"`
	High RGB `yaml:"high"`
}

// GameConfig tunes the simulation.
type GameConfig struct {
	TickRate     int           `yaml:"tick_rate"`     // ticks per second
	FoodCapacity int           `yaml:"food_capacity"` // level 1
	LevelTime    time.Duration `yaml:"level_time"`    // level 1 budget
	Difficulty   string        `yaml:"difficulty"`
}

// AudioConfig controls sound output. Volume is a base-2 exponent: 0 leaves
// the samples untouched, -1 halves them.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// StorageConfig locates the high score database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the log file used by the interactive game.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ConfigurationError reports a value that cannot be used.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Level-1 budget must outlast the nine 10s cuts of the ladder.
const minLevelTime = 90 * time.Second

// GridSize returns the playfield size in cells.
func (c Config) GridSize() core.Grid {
	if c.Window.CellSize <= 0 {
		return core.Grid{}
	}
	n := c.Window.Size / c.Window.CellSize
	return core.NewGrid(n, n)
}

// Validate checks the configuration as written and again with its
// difficulty preset applied, returning the first problem found.
func (c Config) Validate() error {
	if _, err := ParsePreset(c.Game.Difficulty); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}
	return c.Effective().validate()
}

// Effective returns the configuration with its difficulty preset applied.
// An unknown preset leaves the values unchanged.
func (c Config) Effective() Config {
	preset, err := ParsePreset(c.Game.Difficulty)
	if err != nil {
		return c
	}
	ApplyPreset(&c, preset)
	return c
}

func (c Config) validate() error {
	if c.Window.CellSize <= 0 {
		return &ConfigurationError{Field: "window.cell_size", Reason: "must be positive"}
	}
	grid := c.GridSize()
	if grid.W < 2 {
		return &ConfigurationError{
			Field:  "window.size",
			Reason: fmt.Sprintf("%d / %d gives a %dx%d grid, need at least 2x2", c.Window.Size, c.Window.CellSize, grid.W, grid.H),
		}
	}

	if c.Game.TickRate <= 0 {
		return &ConfigurationError{Field: "game.tick_rate", Reason: "must be positive"}
	}
	if c.Game.FoodCapacity < 1 || c.Game.FoodCapacity >= grid.Area() {
		return &ConfigurationError{
			Field:  "game.food_capacity",
			Reason: fmt.Sprintf("%d must be at least 1 and below the %d grid cells", c.Game.FoodCapacity, grid.Area()),
		}
	}
	if c.Game.LevelTime <= minLevelTime {
		return &ConfigurationError{
			Field:  "game.level_time",
			Reason: fmt.Sprintf("%s must exceed %s", c.Game.LevelTime, minLevelTime),
		}
	}
	for name, rgb := range map[string]RGB{"low": c.Colors.Low, "mid": c.Colors.Mid, "high": c.Colors.High} {
		for _, v := range rgb {
			if v < 0 || v > 255 {
				return &ConfigurationError{Field: "colors." + name, Reason: fmt.Sprintf("component %d outside 0-255", v)}
			}
		}
	}

	if c.Audio.Volume < -10 || c.Audio.Volume > 2 {
		return &ConfigurationError{Field: "audio.volume", Reason: "must be within [-10, 2]"}
	}

	return nil
}

// TickInterval returns the duration of one simulation tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickRate)
}
