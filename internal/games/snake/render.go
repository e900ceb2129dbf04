package snake

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight = 2
	cellWidth = 2 // terminal cells are roughly twice as tall as wide
)

// BoardLines is how many ledger rows the game over screen lists.
const BoardLines = 5

// MinScreenSize returns the smallest terminal that fits grid plus the HUD.
func MinScreenSize(grid core.Grid) (w, h int) {
	return grid.W*cellWidth + 2, grid.H + 2 + hudHeight
}

// Render draws snap onto dst. board is the current top of the ledger.
func Render(dst *core.Screen, snap Snapshot, board []Record) {
	dst.Clear()

	minW, minH := MinScreenSize(snap.Grid)
	if dst.Width() < minW || dst.Height() < minH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	renderHUD(dst, snap)
	frame := core.NewRect(0, hudHeight, minW, snap.Grid.H+2)
	dst.DrawBox(frame, core.ColorGray)

	for _, f := range snap.Foods {
		drawCell(dst, f.Pos, '◆', f.Color)
	}
	for i, c := range snap.Snake {
		color := core.ColorGreen
		if i == 0 {
			color = core.ColorBrightGreen
		}
		drawCell(dst, c, '█', color)
	}

	switch snap.Phase {
	case PhaseTitle:
		renderOverlay(dst, "S N A K E", "Enter, Space or click to start")
	case PhasePlaying:
		if snap.LevelUpBanner {
			renderOverlay(dst, "Level Up!", fmt.Sprintf("Level %d", snap.Level))
		}
	case PhaseCollided, PhaseTimeExpired:
		renderOverlay(dst, outcomeTitle(snap.Outcome), fmt.Sprintf("Score: %d", snap.FinalScore))
	case PhaseAwaitingInitials:
		entry := snap.Initials + strings.Repeat("_", InitialsLen-len([]rune(snap.Initials)))
		renderOverlay(dst, outcomeTitle(snap.Outcome), fmt.Sprintf("Score: %d  Initials: %s", snap.FinalScore, entry))
	case PhaseGameOver:
		renderGameOver(dst, snap, board)
	}
}

func outcomeTitle(o Outcome) string {
	switch o {
	case OutcomeWon:
		return "You Win!"
	case OutcomeTimeExpired:
		return "Time's Up"
	default:
		return "Game Over"
	}
}

func renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Level %d/%d  Score %d/%d  Time %s  Bank %ds",
		snap.Level, MaxLevel,
		snap.ScoreInLevel, LevelThreshold,
		formatClock(snap.Remaining),
		int(snap.Carryover/time.Second))
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func drawCell(dst *core.Screen, c core.Cell, r rune, color core.Color) {
	x := 1 + c.X*cellWidth
	y := hudHeight + 1 + c.Y
	for i := range cellWidth {
		dst.SetColored(x+i, y, r, color)
	}
}

func renderGameOver(dst *core.Screen, snap Snapshot, board []Record) {
	lines := []string{
		outcomeTitle(snap.Outcome),
		fmt.Sprintf("%s  %d", snap.Initials, snap.FinalScore),
		"",
		"High Scores",
	}
	if len(board) == 0 {
		lines = append(lines, "(none yet)")
	}
	for i, r := range board {
		if i >= BoardLines {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s %6d", i+1, r.Initials, r.Score))
	}
	if snap.LedgerErr != nil {
		lines = append(lines, "", "Score not saved")
	}
	lines = append(lines, "", "R restart  Q quit")
	renderPanel(dst, lines)
}

func renderOverlay(dst *core.Screen, line1, line2 string) {
	renderPanel(dst, []string{line1, "", line2})
}

// renderPanel draws a bordered box centered on dst with one line per row.
func renderPanel(dst *core.Screen, lines []string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}
