package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Track is a looping background tune.
type Track int

const (
	TrackNone Track = iota
	TrackMain
	TrackAfterGame
)

func (t Track) String() string {
	switch t {
	case TrackMain:
		return "main"
	case TrackAfterGame:
		return "after_game"
	default:
		return "none"
	}
}

// newTrack builds the endless streamer for t.
func newTrack(t Track, rate beep.SampleRate) beep.Streamer {
	switch t {
	case TrackMain:
		return NewMelody(rate, []float64{
			NoteC4, NoteE4, NoteG4, NoteE4,
			NoteA3, NoteC4, NoteE4, NoteC4,
			NoteF4, NoteA4, NoteC5, NoteA4,
			NoteG4, NoteB4, NoteD4, Rest,
		}, 180*time.Millisecond, WaveTriangle, 0.12)
	case TrackAfterGame:
		return NewMelody(rate, []float64{
			NoteA3, Rest, NoteC4, Rest,
			NoteEb4, Rest, NoteD4, Rest,
		}, 400*time.Millisecond, WaveSine, 0.10)
	default:
		return nil
	}
}

// newEffect builds the one-shot sound for a cue, or nil if the cue is silent.
func newEffect(c core.Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case core.CueRunStarted:
		return NewPhrase(rate, []float64{NoteC5, NoteE5, NoteG5}, 70*time.Millisecond, WaveSquare, 0.15)
	case core.CueFoodEaten:
		return NewPhrase(rate, []float64{NoteE5}, 60*time.Millisecond, WaveSquare, 0.15)
	case core.CueFoodEatenHigh:
		return NewPhrase(rate, []float64{NoteB5, NoteE6}, 70*time.Millisecond, WaveSquare, 0.15)
	case core.CueLevelUp:
		return NewPhrase(rate, []float64{NoteC5, NoteE5, NoteG5, NoteC6}, 90*time.Millisecond, WaveTriangle, 0.2)
	case core.CueGameOver:
		return NewPhrase(rate, []float64{NoteG4, NoteEb4, NoteC4, NoteA3}, 160*time.Millisecond, WaveSaw, 0.15)
	default:
		return nil
	}
}

// withVolume scales s by 2^vol.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: vol}
}
