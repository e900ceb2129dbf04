// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, audio and ledger plumbing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends the next tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// audioDoneMsg reports that a one-shot effect finished playing.
type audioDoneMsg core.Cue

// waitForAudio blocks on the player's completion channel off the event loop.
func waitForAudio(p audio.Player) tea.Cmd {
	done := p.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-done
		if !ok {
			return nil
		}
		return audioDoneMsg(c)
	}
}

// scoreSavedMsg carries the ledger write result and the refreshed board.
type scoreSavedMsg struct {
	top []storage.Entry
	err error
}

// boardMsg carries a board refresh that was not tied to a write.
type boardMsg struct {
	top []storage.Entry
	err error
}

// saveScoreCmd records a finished run and reloads the top entries.
func saveScoreCmd(ledger storage.Ledger, initials string, score, limit int) tea.Cmd {
	return func() tea.Msg {
		if err := ledger.Record(initials, score); err != nil {
			return scoreSavedMsg{err: err}
		}
		top, err := ledger.QueryTop(limit)
		if err != nil {
			// The write went through; only the refresh failed.
			return boardMsg{err: err}
		}
		return scoreSavedMsg{top: top}
	}
}

// loadBoardCmd fetches the top entries.
func loadBoardCmd(ledger storage.Ledger, limit int) tea.Cmd {
	return func() tea.Msg {
		top, err := ledger.QueryTop(limit)
		return boardMsg{top: top, err: err}
	}
}
