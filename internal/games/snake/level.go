package snake

import "time"

// Ladder constants. The ladder is fixed: ten levels, ten points each.
const (
	LevelThreshold = 10
	MaxLevel       = 10
	LevelTimeStep  = 10 * time.Second

	DefaultFoodCapacity = 10
	DefaultLevelTime    = 120 * time.Second

	levelUpBannerTicks = 10
)

// LevelState is the per-level progress of a run.
type LevelState struct {
	Level        int
	ScoreInLevel int
	FoodCapacity int
	Budget       time.Duration // time allowed for the current level
	Start        time.Time
	Carryover    time.Duration // unused time banked from earlier levels
}

func newLevelState(capacity int, budget time.Duration, now time.Time) LevelState {
	return LevelState{
		Level:        1,
		FoodCapacity: capacity,
		Budget:       budget,
		Start:        now,
	}
}

// Elapsed returns the time spent in the current level.
func (l LevelState) Elapsed(now time.Time) time.Duration {
	return now.Sub(l.Start)
}

// Remaining returns the time left in the current level, never negative.
func (l LevelState) Remaining(now time.Time) time.Duration {
	return max(0, l.Budget-l.Elapsed(now))
}

// Expired reports whether the level budget has run out.
func (l LevelState) Expired(now time.Time) bool {
	return l.Elapsed(now) > l.Budget
}

// ReadyToAdvance reports whether the level threshold is reached.
func (l LevelState) ReadyToAdvance() bool {
	return l.ScoreInLevel >= LevelThreshold
}

// Final reports whether this is the last level of the ladder.
func (l LevelState) Final() bool {
	return l.Level >= MaxLevel
}

// advance moves to the next level, banking the unused time.
func (l *LevelState) advance(now time.Time) {
	l.Carryover += l.Remaining(now)
	l.Level++
	l.ScoreInLevel = 0
	l.FoodCapacity = max(1, l.FoodCapacity-1)
	l.Budget -= LevelTimeStep
	l.Start = now
}
