package core

// Cue identifies a sound the game wants played. The game only names the cue;
// the audio adapter decides what it sounds like.
type Cue int

const (
	CueNone Cue = iota
	CueRunStarted
	CueFoodEaten
	CueFoodEatenHigh
	CueLevelUp
	CueGameOver
)

// String returns the cue name used in logs.
func (c Cue) String() string {
	switch c {
	case CueRunStarted:
		return "run_started"
	case CueFoodEaten:
		return "food_eaten"
	case CueFoodEatenHigh:
		return "food_eaten_high"
	case CueLevelUp:
		return "level_up"
	case CueGameOver:
		return "game_over"
	default:
		return "none"
	}
}
