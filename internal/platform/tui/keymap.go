package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// KeyMap holds the game's key bindings. Which bindings are live depends on
// the phase: while initials are typed, letters are initials and only ctrl+c
// quits.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Start     key.Binding
	Restart   key.Binding
	Backspace key.Binding
	Submit    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space/click", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// MapKey translates a key press into a game event for the given phase.
// quit is true when the program should exit.
func (k KeyMap) MapKey(msg tea.KeyMsg, phase snake.Phase) (ev core.Event, quit bool) {
	if phase == snake.PhaseAwaitingInitials {
		switch {
		case key.Matches(msg, k.ForceQuit):
			return core.NewEvent(core.ActionQuit), true
		case key.Matches(msg, k.Submit):
			return core.NewEvent(core.ActionSubmit), false
		case key.Matches(msg, k.Backspace):
			return core.NewEvent(core.ActionBackspace), false
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			return core.InitialEvent(msg.Runes[0]), false
		}
		return core.NewEvent(core.ActionNone), false
	}

	if key.Matches(msg, k.Quit) {
		return core.NewEvent(core.ActionQuit), true
	}

	switch phase {
	case snake.PhaseTitle:
		if key.Matches(msg, k.Start) {
			return core.NewEvent(core.ActionStart), false
		}
	case snake.PhasePlaying:
		switch {
		case key.Matches(msg, k.Up):
			return core.NewEvent(core.ActionUp), false
		case key.Matches(msg, k.Down):
			return core.NewEvent(core.ActionDown), false
		case key.Matches(msg, k.Left):
			return core.NewEvent(core.ActionLeft), false
		case key.Matches(msg, k.Right):
			return core.NewEvent(core.ActionRight), false
		}
	case snake.PhaseGameOver:
		if key.Matches(msg, k.Restart) {
			return core.NewEvent(core.ActionRestart), false
		}
	}

	return core.NewEvent(core.ActionNone), false
}

// MapMouse turns a mouse press on the title screen into Start.
func (k KeyMap) MapMouse(msg tea.MouseMsg, phase snake.Phase) core.Event {
	if phase == snake.PhaseTitle && msg.Action == tea.MouseActionPress {
		return core.NewEvent(core.ActionStart)
	}
	return core.NewEvent(core.ActionNone)
}

// phaseHelp adapts KeyMap to help.KeyMap for the current phase.
type phaseHelp struct {
	keys  KeyMap
	phase snake.Phase
}

func (h phaseHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.phase {
	case snake.PhaseTitle:
		return []key.Binding{k.Start, k.Quit}
	case snake.PhasePlaying:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
	case snake.PhaseAwaitingInitials:
		return []key.Binding{k.Backspace, k.Submit, k.ForceQuit}
	case snake.PhaseGameOver:
		return []key.Binding{k.Restart, k.Quit}
	default:
		return []key.Binding{k.Quit}
	}
}

func (h phaseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
