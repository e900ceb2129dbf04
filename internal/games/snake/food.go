package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Tier is a food category. It decides the score value and the sound cue.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Value returns the points awarded for eating food of this tier.
func (t Tier) Value() int {
	switch t {
	case TierMid:
		return 2
	case TierHigh:
		return 5
	default:
		return 1
	}
}

// Cue returns the sound played when food of this tier is eaten.
// Low and mid share a sound.
func (t Tier) Cue() core.Cue {
	if t == TierHigh {
		return core.CueFoodEatenHigh
	}
	return core.CueFoodEaten
}

// Expiry window bounds, inclusive, in whole seconds.
const (
	minExpirySeconds = 5
	maxExpirySeconds = 45
)

// Food is one piece of food on the grid.
type Food struct {
	Pos          core.Cell
	Tier         Tier
	CreatedAt    time.Time
	ExpiresAfter time.Duration
}

// Key is the identity used for duplicate avoidance: two foods collide when
// their positions match, regardless of tier or timestamps.
func (f Food) Key() core.Cell {
	return f.Pos
}

// Expired reports whether the food is gone at time now.
func (f Food) Expired(now time.Time) bool {
	return now.After(f.CreatedAt.Add(f.ExpiresAfter))
}

// sweepExpired drops expired foods in place and returns the kept slice.
func sweepExpired(foods []Food, now time.Time) []Food {
	kept := foods[:0]
	for _, f := range foods {
		if !f.Expired(now) {
			kept = append(kept, f)
		}
	}
	return kept
}

// trimOldest removes the oldest-created foods until len(foods) <= capacity.
// Ties go to the earlier slice position.
func trimOldest(foods []Food, capacity int) []Food {
	for len(foods) > capacity && len(foods) > 0 {
		oldest := 0
		for i, f := range foods {
			if f.CreatedAt.Before(foods[oldest].CreatedAt) {
				oldest = i
			}
		}
		foods = append(foods[:oldest], foods[oldest+1:]...)
	}
	return foods
}
