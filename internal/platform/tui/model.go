package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Session carries the per-connection pieces of a Model. Zero values fall
// back to the engine's audio and logger and the default renderer.
type Session struct {
	Renderer    *lipgloss.Renderer
	Audio       audio.Player
	Logger      *log.Logger
	Screenshots bool // ctrl+s writes the screen to ~/.snake/screenshots
}

// Model is the Bubble Tea model for one snake session.
type Model struct {
	engine   *Engine
	game     *snake.Game
	screen   *core.Screen
	renderer *ScreenRenderer
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	audio    audio.Player
	logger   *log.Logger

	board       []storage.Entry
	screenshots bool
	quitting    bool
}

// NewModel creates a model around game. cfg supplies the initial screen
// size and the tick rate.
func NewModel(engine *Engine, game *snake.Game, cfg core.RuntimeConfig, sess Session) Model {
	player := sess.Audio
	if player == nil {
		player = engine.Audio
	}
	logger := sess.Logger
	if logger == nil {
		logger = engine.Logger
	}

	return Model{
		engine:      engine,
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:    NewScreenRenderer(sess.Renderer),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		config:      cfg,
		audio:       player,
		logger:      logger,
		screenshots: sess.Screenshots,
	}
}

// Init starts the tick loop, loads the high score board and begins
// listening for finished sound effects.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.TickInterval()),
		loadBoardCmd(m.engine.Ledger, snake.BoardLines),
		waitForAudio(m.audio),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		ev := m.keys.MapMouse(msg, m.game.Phase())
		return m, m.apply(m.game.Handle(ev))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		cmd := m.apply(m.game.Tick())
		return m, tea.Batch(cmd, tickCmd(m.config.TickInterval()))

	case scoreSavedMsg:
		m.game.LedgerResult(msg.err)
		if msg.err != nil {
			m.logger.Error("failed to save score", "error", msg.err)
			return m, nil
		}
		m.board = msg.top
		return m, nil

	case boardMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load high scores", "error", msg.err)
			return m, nil
		}
		m.board = msg.top
		return m, nil

	case audioDoneMsg:
		m.audio.ResumeBackground()
		return m, waitForAudio(m.audio)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screenshots && msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	ev, quit := m.keys.MapKey(msg, m.game.Phase())
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, m.apply(m.game.Handle(ev))
}

// handleResize keeps one line below the board for help.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(0, msg.Height-1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width
	return m, nil
}

// apply forwards cues to audio and turns a finished run into a ledger write.
func (m Model) apply(res snake.StepResult) tea.Cmd {
	for _, c := range res.Cues {
		m.audio.Play(c)
	}
	if res.Err != nil {
		m.logger.Warn("food spawn", "error", res.Err)
	}
	if res.Record == nil {
		return nil
	}

	rec := res.Record
	m.logger.Info("run finished", "initials", rec.Initials, "score", rec.Score, "outcome", rec.Outcome)
	return saveScoreCmd(m.engine.Ledger, rec.Initials, rec.Score, snake.BoardLines)
}

func (m Model) records() []snake.Record {
	out := make([]snake.Record, len(m.board))
	for i, e := range m.board {
		out[i] = snake.Record{Initials: e.Initials, Score: e.Score}
	}
	return out
}

func (m *Model) saveScreenshot() {
	snake.Render(m.screen, m.game.Snapshot(), m.records())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()
	snake.Render(m.screen, snap, m.records())

	return m.renderer.Render(m.screen) + "\n" + m.help.View(phaseHelp{keys: m.keys, phase: snap.Phase})
}

// Run plays one local session until the player quits.
func Run(engine *Engine, seed int64, width, height int) error {
	game, err := engine.NewGame(seed)
	if err != nil {
		return err
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height - 1,
		TickRate: engine.Config.Game.TickRate,
	}.AtLeast(snake.MinScreenSize(game.Grid()))
	model := NewModel(engine, game, cfg, Session{Screenshots: true})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
