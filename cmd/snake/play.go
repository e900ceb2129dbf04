package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game on the title screen.

Controls:
  Enter/Space/Click  - Start
  Arrows/WASD        - Steer
  A-Z, Backspace     - Enter initials after a run
  Enter              - Save initials
  R                  - Restart (after game over)
  Ctrl+S             - Save a screenshot to ~/.snake/screenshots
  Q/Esc/Ctrl+C       - Quit

Difficulty options:
  easy   - 30s more per level, two more food items
  normal - Values from the config file
  hard   - 20s less per level, four fewer food items

Examples:
  snake play
  snake play --difficulty easy
  snake play --seed 42 --fps 8
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := newLogger(cfg.Log, true)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	logger.Info("starting game",
		"config", source,
		"difficulty", cfg.Game.Difficulty,
		"grid", cfg.GridSize().W,
		"tick_rate", cfg.Game.TickRate,
		"seed", flagSeed,
	)

	engine := newEngine(cfg, logger, true)
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.Run(engine, flagSeed, width, height); err != nil {
		logger.Error("game exited", "error", err)
		return err
	}
	return nil
}
