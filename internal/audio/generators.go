package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType is an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// Rest is a silent step in a melody.
const Rest = 0.0

// waveAt samples one period of w at phase in [0, 1).
func waveAt(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	case WaveSaw:
		return 2 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// melody plays a fixed list of notes, one every noteLen samples, forever.
// Wrap it in beep.Take for a one-shot.
type melody struct {
	rate    beep.SampleRate
	notes   []float64
	noteLen int
	wave    WaveType
	amp     float64

	pos   int
	phase float64
}

// NewMelody returns an endless streamer cycling through notes (Hz).
func NewMelody(rate beep.SampleRate, notes []float64, noteDur time.Duration, wave WaveType, amp float64) beep.Streamer {
	return &melody{
		rate:    rate,
		notes:   notes,
		noteLen: max(1, rate.N(noteDur)),
		wave:    wave,
		amp:     amp,
	}
}

// NewPhrase plays notes once and ends.
func NewPhrase(rate beep.SampleRate, notes []float64, noteDur time.Duration, wave WaveType, amp float64) beep.Streamer {
	m := NewMelody(rate, notes, noteDur, wave, amp).(*melody)
	return beep.Take(m.noteLen*len(notes), m)
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	if len(m.notes) == 0 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}

	for i := range samples {
		step := m.pos / m.noteLen
		within := m.pos % m.noteLen
		freq := m.notes[step%len(m.notes)]
		if within == 0 {
			m.phase = 0
		}

		val := 0.0
		if freq > Rest {
			val = m.amp * noteEnvelope(within, m.noteLen) * waveAt(m.wave, m.phase)
			m.phase += freq / float64(m.rate)
			m.phase -= math.Floor(m.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

// noteEnvelope ramps each note in and out over a twentieth of its length
// so adjacent notes do not click.
func noteEnvelope(pos, length int) float64 {
	ramp := max(1, length/20)
	return math.Min(1, math.Min(float64(pos)/float64(ramp), float64(length-pos)/float64(ramp)))
}

// Note frequencies in Hz.
const (
	NoteA3  = 220.00
	NoteC4  = 261.63
	NoteD4  = 293.66
	NoteE4  = 329.63
	NoteF4  = 349.23
	NoteG4  = 392.00
	NoteA4  = 440.00
	NoteB4  = 493.88
	NoteC5  = 523.25
	NoteE5  = 659.25
	NoteG5  = 783.99
	NoteB5  = 987.77
	NoteC6  = 1046.50
	NoteE6  = 1318.51
	NoteEb4 = 311.13
)
