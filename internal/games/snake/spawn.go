package snake

import (
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrSpawnExhausted is returned when no free cell is left for food.
var ErrSpawnExhausted = errors.New("snake: no free cell left for food")

// randomAttemptsPerCell bounds rejection sampling before falling back to
// enumerating free cells.
const randomAttemptsPerCell = 4

// tierWeights is the 9-slot draw table: six low, two mid, one high.
var tierWeights = [9]Tier{
	TierLow, TierLow, TierLow, TierLow, TierLow, TierLow,
	TierMid, TierMid,
	TierHigh,
}

// randomTier draws a tier with 6/9, 2/9, 1/9 odds.
func randomTier(rng *rand.Rand) Tier {
	return tierWeights[rng.Intn(len(tierWeights))]
}

// randomExpiry draws a whole-second expiry window in [5s, 45s].
func randomExpiry(rng *rand.Rand) time.Duration {
	span := maxExpirySeconds - minExpirySeconds + 1
	return time.Duration(minExpirySeconds+rng.Intn(span)) * time.Second
}

// SpawnFill adds food to foods until it holds target items. A candidate cell
// is rejected when it is on the body or already holds food (compared by Key).
// Random draws are capped; past the cap the free cells are enumerated and one
// is picked uniformly. When no free cell remains, the foods placed so far are
// returned together with ErrSpawnExhausted.
func SpawnFill(grid core.Grid, body Body, foods []Food, target int, rng *rand.Rand, now time.Time) ([]Food, error) {
	if len(foods) >= target {
		return foods, nil
	}

	occupied := body.Set()
	for _, f := range foods {
		occupied[f.Key()] = struct{}{}
	}

	place := func(c core.Cell) {
		f := Food{
			Pos:          c,
			Tier:         randomTier(rng),
			CreatedAt:    now,
			ExpiresAfter: randomExpiry(rng),
		}
		foods = append(foods, f)
		occupied[f.Key()] = struct{}{}
	}

	attempts := randomAttemptsPerCell * grid.Area()
	for len(foods) < target && attempts > 0 {
		attempts--
		c := core.Cell{X: rng.Intn(grid.W), Y: rng.Intn(grid.H)}
		if _, taken := occupied[c]; taken {
			continue
		}
		place(c)
	}

	for len(foods) < target {
		free := freeCells(grid, occupied)
		if len(free) == 0 {
			return foods, ErrSpawnExhausted
		}
		place(free[rng.Intn(len(free))])
	}

	return foods, nil
}

// freeCells lists every grid cell not in occupied, row-major.
func freeCells(grid core.Grid, occupied map[core.Cell]struct{}) []core.Cell {
	free := make([]core.Cell, 0, max(0, grid.Area()-len(occupied)))
	for i := 0; i < grid.Area(); i++ {
		c := grid.At(i)
		if _, taken := occupied[c]; !taken {
			free = append(free, c)
		}
	}
	return free
}
