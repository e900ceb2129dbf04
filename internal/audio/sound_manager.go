// Package audio plays the game's background music and cue effects.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player is what the game loop needs from audio.
type Player interface {
	// Play starts the effect for c and pauses the background until it ends.
	Play(c core.Cue)
	// Done delivers each finished effect's cue. Nil if effects never finish.
	Done() <-chan core.Cue
	// ResumeBackground is called once per value received from Done.
	ResumeBackground()
	Close()
}

// BackgroundState is the explicit state of the background track.
type BackgroundState int

const (
	BackgroundStopped BackgroundState = iota
	BackgroundPlaying
	BackgroundPaused
)

func (s BackgroundState) String() string {
	switch s {
	case BackgroundPlaying:
		return "playing"
	case BackgroundPaused:
		return "paused"
	default:
		return "stopped"
	}
}

// SoundManager plays audio through the system speaker.
type SoundManager struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer

	track      Track
	background *beep.Ctrl
	state      BackgroundState
	pending    int // effects started but not yet resumed from

	done chan core.Cue

	// lock guards streamer fields the speaker goroutine reads.
	lock, unlock func()
	initialized  bool
}

// NewSoundManager creates a manager. volume is a base-2 exponent.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		rate:   sampleRate,
		volume: volume,
		mixer:  &beep.Mixer{},
		done:   make(chan core.Cue, 16),
		lock:   speaker.Lock,
		unlock: speaker.Unlock,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Open returns a speaker-backed player, or Silent when audio is disabled or
// the speaker cannot be opened. The error explains the fallback.
func Open(enabled bool, volume float64) (Player, error) {
	if !enabled {
		return Silent{}, nil
	}
	sm := NewSoundManager(volume)
	if err := sm.Initialize(); err != nil {
		return Silent{}, err
	}
	return sm, nil
}

// Play implements Player.
func (sm *SoundManager) Play(c core.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch c {
	case core.CueRunStarted:
		sm.switchTrack(TrackMain)
	case core.CueGameOver:
		sm.switchTrack(TrackAfterGame)
	}

	effect := newEffect(c, sm.rate)
	if effect == nil {
		return
	}

	sm.pending++
	sm.setPaused(true)

	done := sm.done
	finished := beep.Callback(func() {
		// Runs on the speaker goroutine; never block it.
		select {
		case done <- c:
		default:
		}
	})

	sm.lock()
	sm.mixer.Add(beep.Seq(withVolume(effect, sm.volume), finished))
	sm.unlock()
}

// Done implements Player.
func (sm *SoundManager) Done() <-chan core.Cue {
	return sm.done
}

// ResumeBackground implements Player. The background stays paused while
// other effects are still playing.
func (sm *SoundManager) ResumeBackground() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.pending > 0 {
		sm.pending--
	}
	if sm.pending == 0 {
		sm.setPaused(false)
	}
}

// State returns the background track and whether it is audible.
func (sm *SoundManager) State() (Track, BackgroundState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.track, sm.state
}

// Close stops everything and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lock()
	sm.mixer.Clear()
	sm.unlock()

	sm.background = nil
	sm.track = TrackNone
	sm.state = BackgroundStopped
	sm.pending = 0

	if sm.initialized {
		speaker.Close()
		sm.initialized = false
	}
}

// switchTrack replaces the background tune. Must hold sm.mu.
func (sm *SoundManager) switchTrack(t Track) {
	if sm.track == t && sm.background != nil {
		return
	}

	sm.lock()
	if sm.background != nil {
		sm.background.Streamer = nil
	}
	ctrl := &beep.Ctrl{Streamer: withVolume(newTrack(t, sm.rate), sm.volume), Paused: sm.pending > 0}
	sm.mixer.Add(ctrl)
	sm.unlock()

	sm.background = ctrl
	sm.track = t
	if ctrl.Paused {
		sm.state = BackgroundPaused
	} else {
		sm.state = BackgroundPlaying
	}
}

// setPaused pauses or resumes the background. Must hold sm.mu.
func (sm *SoundManager) setPaused(paused bool) {
	if sm.background == nil {
		return
	}
	sm.lock()
	sm.background.Paused = paused
	sm.unlock()

	if paused {
		sm.state = BackgroundPaused
	} else {
		sm.state = BackgroundPlaying
	}
}

// Silent is a Player that makes no sound.
type Silent struct{}

func (Silent) Play(core.Cue)         {}
func (Silent) Done() <-chan core.Cue { return nil }
func (Silent) ResumeBackground()     {}
func (Silent) Close()                {}

var (
	_ Player = (*SoundManager)(nil)
	_ Player = Silent{}
)
