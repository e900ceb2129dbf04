package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
	"unicode"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Phase is the top-level state of a session.
type Phase string

const (
	PhaseTitle            Phase = "title"
	PhasePlaying          Phase = "playing"
	PhaseCollided         Phase = "collided"
	PhaseTimeExpired      Phase = "time_expired"
	PhaseAwaitingInitials Phase = "awaiting_initials"
	PhaseGameOver         Phase = "game_over"
)

// Outcome records how a run ended.
type Outcome string

const (
	OutcomeNone        Outcome = "none"
	OutcomeCollided    Outcome = "collided"
	OutcomeTimeExpired Outcome = "time_expired"
	OutcomeWon         Outcome = "won"
)

// InitialsLen is the number of letters a ledger entry carries.
const InitialsLen = 3

var (
	// ErrInvalidOptions wraps every Options validation failure.
	ErrInvalidOptions = errors.New("snake: invalid options")

	errInvalidInitial = errors.New("snake: initials take letters A-Z only")
)

// Options configures a Game. Zero values fall back to the defaults.
type Options struct {
	Grid         core.Grid
	FoodCapacity int
	LevelTime    time.Duration
	TierColors   map[Tier]core.Color
	Seed         int64
	Clock        func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Grid.W == 0 && o.Grid.H == 0 {
		o.Grid = core.NewGrid(20, 20)
	}
	if o.FoodCapacity == 0 {
		o.FoodCapacity = DefaultFoodCapacity
	}
	if o.LevelTime == 0 {
		o.LevelTime = DefaultLevelTime
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

func (o Options) validate() error {
	if o.Grid.W < 2 || o.Grid.H < 2 {
		return fmt.Errorf("%w: grid %dx%d is smaller than 2x2", ErrInvalidOptions, o.Grid.W, o.Grid.H)
	}
	if o.FoodCapacity < 1 || o.FoodCapacity >= o.Grid.Area() {
		return fmt.Errorf("%w: food capacity %d outside [1, %d)", ErrInvalidOptions, o.FoodCapacity, o.Grid.Area())
	}
	if floor := (MaxLevel - 1) * LevelTimeStep; o.LevelTime <= floor {
		return fmt.Errorf("%w: level time %s must exceed %s", ErrInvalidOptions, o.LevelTime, floor)
	}
	return nil
}

// Record is a finished run ready for the ledger.
type Record struct {
	Initials string
	Score    int
	Outcome  Outcome
}

// StepResult reports what happened during one Handle or Tick call.
type StepResult struct {
	Cues   []core.Cue
	Record *Record // set once, when initials are submitted
	Err    error   // non-fatal, e.g. ErrSpawnExhausted
}

func (r *StepResult) cue(c core.Cue) {
	r.Cues = append(r.Cues, c)
}

// Game is the snake session state machine. It is not safe for concurrent use.
type Game struct {
	opts Options
	rng  *rand.Rand
	now  func() time.Time

	tick    uint64
	phase   Phase
	outcome Outcome

	body      Body
	direction core.Direction
	foods     []Food
	level     LevelState
	endedAt   time.Time

	finalScore   int
	initials     []rune
	levelUpTicks int

	ledgerErr  error
	ledgerDone bool
}

// New creates a game on the title screen.
func New(opts Options) (*Game, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	g := &Game{
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		now:     opts.Clock,
		phase:   PhaseTitle,
		outcome: OutcomeNone,
	}
	g.body = Body{g.startCell()}
	g.level = newLevelState(opts.FoodCapacity, opts.LevelTime, g.now())
	return g, nil
}

// startCell is where every run begins: a quarter across, half down.
func (g *Game) startCell() core.Cell {
	return core.Cell{X: g.opts.Grid.W / 4, Y: g.opts.Grid.H / 2}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Outcome returns how the last run ended, or OutcomeNone while one is live.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// FinalScore returns the score computed when the run ended.
func (g *Game) FinalScore() int {
	return g.finalScore
}

// Grid returns the playfield size.
func (g *Game) Grid() core.Grid {
	return g.opts.Grid
}

// Handle applies one input event.
func (g *Game) Handle(ev core.Event) StepResult {
	var res StepResult

	switch g.phase {
	case PhaseTitle:
		if ev.Action == core.ActionStart {
			g.startRun(&res)
		}

	case PhasePlaying:
		if d, ok := ev.Direction(); ok && d != g.direction.Opposite() {
			g.direction = d
		}

	case PhaseAwaitingInitials:
		g.handleInitials(ev, &res)

	case PhaseGameOver:
		if ev.Action == core.ActionRestart {
			g.startRun(&res)
		}
	}

	return res
}

func (g *Game) handleInitials(ev core.Event, res *StepResult) {
	switch ev.Action {
	case core.ActionInitial:
		r, err := normalizeInitial(ev.Rune)
		if err != nil || len(g.initials) >= InitialsLen {
			return
		}
		g.initials = append(g.initials, r)

	case core.ActionBackspace:
		if len(g.initials) > 0 {
			g.initials = g.initials[:len(g.initials)-1]
		}

	case core.ActionSubmit:
		if len(g.initials) != InitialsLen {
			return
		}
		g.phase = PhaseGameOver
		res.Record = &Record{
			Initials: string(g.initials),
			Score:    g.finalScore,
			Outcome:  g.outcome,
		}
	}
}

// normalizeInitial uppercases r and rejects anything outside A-Z.
func normalizeInitial(r rune) (rune, error) {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return 0, errInvalidInitial
	}
	return r, nil
}

// LedgerResult tells the game how the ledger write for the submitted record
// went. A nil error means the record was stored.
func (g *Game) LedgerResult(err error) {
	g.ledgerErr = err
	g.ledgerDone = true
}

// Tick advances the simulation by one step.
func (g *Game) Tick() StepResult {
	var res StepResult
	g.tick++

	switch g.phase {
	case PhaseCollided, PhaseTimeExpired:
		g.phase = PhaseAwaitingInitials
		return res
	case PhasePlaying:
	default:
		return res
	}

	now := g.now()
	if g.levelUpTicks > 0 {
		g.levelUpTicks--
	}

	g.foods = sweepExpired(g.foods, now)
	if len(g.foods) == 0 {
		g.refill(now, &res)
	}

	g.step(now, &res)
	return res
}

func (g *Game) step(now time.Time, res *StepResult) {
	head := core.Advance(g.body.Head(), g.direction)
	if !g.opts.Grid.Contains(head) || g.body.Blocks(head) {
		g.end(now, OutcomeCollided, PhaseCollided, res)
		return
	}

	idx := g.foodAt(head)
	if idx < 0 {
		g.body = g.body.Move(head, false)
	} else {
		eaten := g.foods[idx]
		g.foods = append(g.foods[:idx], g.foods[idx+1:]...)
		g.body = g.body.Move(head, true)
		g.level.ScoreInLevel += eaten.Tier.Value()
		res.cue(eaten.Tier.Cue())

		if g.level.ReadyToAdvance() {
			if g.level.Final() {
				g.end(now, OutcomeWon, PhaseAwaitingInitials, res)
				return
			}
			g.level.advance(now)
			g.foods = trimOldest(g.foods, g.level.FoodCapacity)
			g.levelUpTicks = levelUpBannerTicks
			res.cue(core.CueLevelUp)
		}
		g.refill(now, res)
	}

	if g.level.Expired(now) {
		g.end(now, OutcomeTimeExpired, PhaseTimeExpired, res)
	}
}

func (g *Game) foodAt(c core.Cell) int {
	for i, f := range g.foods {
		if f.Key() == c {
			return i
		}
	}
	return -1
}

func (g *Game) refill(now time.Time, res *StepResult) {
	foods, err := SpawnFill(g.opts.Grid, g.body, g.foods, g.level.FoodCapacity, g.rng, now)
	g.foods = foods
	if err != nil {
		res.Err = err
	}
}

// end freezes the run and computes the final score exactly once.
func (g *Game) end(now time.Time, outcome Outcome, phase Phase, res *StepResult) {
	g.outcome = outcome
	g.phase = phase
	g.endedAt = now
	g.levelUpTicks = 0
	g.finalScore = FinalScore(g.level, len(g.body), outcome == OutcomeWon)
	res.cue(core.CueGameOver)
}

// startRun resets all run state and enters play.
func (g *Game) startRun(res *StepResult) {
	now := g.now()
	g.phase = PhasePlaying
	g.outcome = OutcomeNone
	g.body = Body{g.startCell()}
	g.direction = core.DirRight
	g.foods = nil
	g.level = newLevelState(g.opts.FoodCapacity, g.opts.LevelTime, now)
	g.endedAt = time.Time{}
	g.finalScore = 0
	g.initials = nil
	g.levelUpTicks = 0
	g.ledgerErr = nil
	g.ledgerDone = false

	res.cue(core.CueRunStarted)
	g.refill(now, res)
}
