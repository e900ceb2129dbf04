// snake is a terminal snake game with a persistent high score table.
//
// Usage:
//
//	snake                    - Play (same as "snake play")
//	snake play               - Play a game
//	snake scores             - Show high scores
//	snake serve              - Start SSH server for remote play
//	snake config             - Print the configuration
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--difficulty <name>  - easy, normal or hard
//	--fps <rate>         - Override the tick rate
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Override the scores database path
//	--log-file <path>    - Override the log file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - eat, grow and beat the clock in your terminal",
	Long: `Snake is a terminal snake game with ten timed levels and a
persistent high score table.

Available commands:
  play     - Play a game (default)
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the configuration

Examples:
  snake
  snake play --difficulty hard
  snake scores --limit 20
  snake serve --ssh :2222
  snake config --config ./my-snake.yaml`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	flags.IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = from config)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	flags.StringVar(&flagLogFile, "log-file", "", "Path to log file (default from config)")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig returns the effective configuration: file values, command
// line overrides, then the difficulty preset.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := loadRawConfig()
	if err != nil {
		return cfg, source, err
	}
	return cfg.Effective(), source, nil
}

// loadRawConfig applies the command line overrides but not the preset, so
// the result can be written back to a file.
func loadRawConfig() (config.Config, string, error) {
	cfg, source, err := config.Load(flagConfig, flagDifficulty)
	if err != nil {
		return cfg, source, err
	}
	if flagFPS > 0 {
		cfg.Game.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, err
	}
	return cfg, source, nil
}

// newLogger builds the process logger. The interactive game owns the
// terminal, so it logs to a file; everything else logs to stderr.
func newLogger(cfg config.LogConfig, toFile bool) (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)

	if toFile {
		path := config.ExpandPath(cfg.File)
		if path == "" {
			w = io.Discard
		} else {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("open log file: %w", err)
			}
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "snake",
	})

	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, &config.ConfigurationError{Field: "log.level", Reason: err.Error()}
		}
		logger.SetLevel(level)
	}
	return logger, closer, nil
}

// newEngine opens the ledger and, when wanted, the speaker.
func newEngine(cfg config.Config, logger *log.Logger, withAudio bool) *tui.Engine {
	ledger := tui.OpenLedger(cfg.Storage.Path, logger)

	var player audio.Player = audio.Silent{}
	if withAudio {
		p, err := audio.Open(cfg.Audio.Enabled, cfg.Audio.Volume)
		if err != nil {
			logger.Warn("audio unavailable, playing silently", "error", err)
		}
		player = p
	}

	return tui.NewEngine(cfg, ledger, player, logger)
}
