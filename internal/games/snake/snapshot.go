package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// FoodView is a food item as the renderer sees it.
type FoodView struct {
	Pos   core.Cell
	Tier  Tier
	Color core.Color
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	Outcome Outcome
	Grid    core.Grid

	Level        int
	ScoreInLevel int
	FoodCapacity int
	Remaining    time.Duration
	Carryover    time.Duration

	Snake     []core.Cell // head first
	Direction core.Direction
	Foods     []FoodView

	FinalScore    int
	Initials      string
	LevelUpBanner bool

	LedgerSaved bool
	LedgerErr   error
}

// Snapshot returns the current state. Expired food is never included, even
// between ticks.
func (g *Game) Snapshot() Snapshot {
	now := g.now()
	clock := now
	if !g.endedAt.IsZero() {
		clock = g.endedAt
	}

	foods := make([]FoodView, 0, len(g.foods))
	for _, f := range g.foods {
		if f.Expired(now) {
			continue
		}
		foods = append(foods, FoodView{
			Pos:   f.Pos,
			Tier:  f.Tier,
			Color: g.opts.TierColors[f.Tier],
		})
	}

	remaining := g.level.Remaining(clock)
	if g.phase == PhaseTitle {
		remaining = g.level.Budget
	}

	return Snapshot{
		Tick:          g.tick,
		Phase:         g.phase,
		Outcome:       g.outcome,
		Grid:          g.opts.Grid,
		Level:         g.level.Level,
		ScoreInLevel:  g.level.ScoreInLevel,
		FoodCapacity:  g.level.FoodCapacity,
		Remaining:     remaining,
		Carryover:     g.level.Carryover,
		Snake:         append([]core.Cell(nil), g.body...),
		Direction:     g.direction,
		Foods:         foods,
		FinalScore:    g.finalScore,
		Initials:      string(g.initials),
		LevelUpBanner: g.levelUpTicks > 0,
		LedgerSaved:   g.ledgerDone && g.ledgerErr == nil,
		LedgerErr:     g.ledgerErr,
	}
}
