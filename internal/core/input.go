package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // Up arrow, W
	ActionDown             // Down arrow, S
	ActionLeft             // Left arrow, A
	ActionRight            // Right arrow, D
	ActionStart            // Mouse press, Enter, Space on the title screen
	ActionRestart          // R after game over
	ActionInitial          // A letter typed while entering initials
	ActionBackspace        // Backspace while entering initials
	ActionSubmit           // Enter while entering initials
	ActionQuit             // Ctrl+C, Q
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionInitial:
		return "Initial"
	case ActionBackspace:
		return "Backspace"
	case ActionSubmit:
		return "Submit"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is one discrete input delivered to the game.
// Rune is only meaningful for ActionInitial.
type Event struct {
	Action Action
	Rune   rune
}

// NewEvent creates an event without a payload.
func NewEvent(a Action) Event {
	return Event{Action: a}
}

// InitialEvent creates an initials-entry event for r.
func InitialEvent(r rune) Event {
	return Event{Action: ActionInitial, Rune: r}
}

// Direction maps a movement action to its direction.
// ok is false for non-movement actions.
func (e Event) Direction() (d Direction, ok bool) {
	switch e.Action {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}
