package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Engine holds everything a session needs that outlives a single run:
// configuration, the shared ledger, audio and the logger. Build one at
// startup and Close it on exit.
type Engine struct {
	Config config.Config // with the difficulty preset applied
	Ledger storage.Ledger
	Audio  audio.Player
	Logger *log.Logger

	// Clock is used by new games; nil means time.Now.
	Clock func() time.Time
}

// NewEngine wires the collaborators. A nil ledger becomes an in-memory one,
// a nil player becomes silent.
func NewEngine(cfg config.Config, ledger storage.Ledger, player audio.Player, logger *log.Logger) *Engine {
	if ledger == nil {
		ledger = storage.NewMemory()
	}
	if player == nil {
		player = audio.Silent{}
	}
	return &Engine{
		Config: cfg,
		Ledger: ledger,
		Audio:  player,
		Logger: logger,
	}
}

// OpenLedger opens the SQLite ledger at path. If that fails the game still
// runs on an in-memory ledger and the failure is logged.
func OpenLedger(path string, logger *log.Logger) storage.Ledger {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open scores database, scores will not persist", "path", path, "error", err)
		return storage.NewMemory()
	}
	logger.Debug("scores database open", "path", path)
	return store
}

// GameOptions builds the snake options for one session.
func (e *Engine) GameOptions(seed int64) snake.Options {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := e.Config
	return snake.Options{
		Grid:         cfg.GridSize(),
		FoodCapacity: cfg.Game.FoodCapacity,
		LevelTime:    cfg.Game.LevelTime,
		TierColors: map[snake.Tier]core.Color{
			snake.TierLow:  cfg.Colors.Low.Color(),
			snake.TierMid:  cfg.Colors.Mid.Color(),
			snake.TierHigh: cfg.Colors.High.Color(),
		},
		Seed:  seed,
		Clock: e.Clock,
	}
}

// NewGame creates a game on the title screen.
func (e *Engine) NewGame(seed int64) (*snake.Game, error) {
	return snake.New(e.GameOptions(seed))
}

// Close releases audio and the ledger.
func (e *Engine) Close() error {
	e.Audio.Close()
	if err := e.Ledger.Close(); err != nil {
		return errors.Join(errors.New("tui: close ledger"), err)
	}
	return nil
}
