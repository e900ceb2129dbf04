package snake

import "time"

// FinalScore computes the end-of-run score:
//
//	(level-1)*10 + score_in_level + floor(carryover seconds) - snake length
//
// doubled on a win, then floored at zero.
func FinalScore(l LevelState, snakeLen int, won bool) int {
	score := (l.Level-1)*LevelThreshold + l.ScoreInLevel + int(l.Carryover/time.Second) - snakeLen
	if won {
		score *= 2
	}
	return max(0, score)
}
