package snake

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGame(t *testing.T, seed int64) (*Game, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	g, err := New(Options{
		Grid:  core.NewGrid(20, 20),
		Seed:  seed,
		Clock: clock.Now,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g, clock
}

func startedGame(t *testing.T) (*Game, *fakeClock) {
	t.Helper()
	g, clock := newTestGame(t, 42)
	res := g.Handle(core.NewEvent(core.ActionStart))
	if !reflect.DeepEqual(res.Cues, []core.Cue{core.CueRunStarted}) {
		t.Fatalf("start cues = %v, want [run_started]", res.Cues)
	}
	return g, clock
}

// parkFood leaves one long-lived food in a corner the tests never reach, so
// ticks neither refill nor eat random food.
func parkFood(g *Game) {
	g.foods = []Food{{
		Pos:          core.Cell{X: 0, Y: 0},
		Tier:         TierLow,
		CreatedAt:    g.now(),
		ExpiresAfter: time.Hour,
	}}
}

func placeFood(g *Game, c core.Cell, tier Tier) {
	g.foods = append(g.foods, Food{Pos: c, Tier: tier, CreatedAt: g.now(), ExpiresAfter: time.Hour})
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"grid too small", Options{Grid: core.NewGrid(1, 5)}},
		{"capacity fills grid", Options{Grid: core.NewGrid(2, 2), FoodCapacity: 4}},
		{"negative capacity", Options{Grid: core.NewGrid(10, 10), FoodCapacity: -1}},
		{"level time too short", Options{Grid: core.NewGrid(10, 10), LevelTime: 90 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("New() error = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestNewStartsOnTitle(t *testing.T) {
	g, _ := newTestGame(t, 1)
	snap := g.Snapshot()

	if snap.Phase != PhaseTitle {
		t.Errorf("Phase = %q, want %q", snap.Phase, PhaseTitle)
	}
	if snap.Remaining != DefaultLevelTime {
		t.Errorf("Remaining = %v, want %v", snap.Remaining, DefaultLevelTime)
	}

	// Ticks and directions do nothing before the run starts.
	g.Handle(core.NewEvent(core.ActionDown))
	g.Tick()
	if g.Phase() != PhaseTitle || g.direction != core.DirRight {
		t.Errorf("title screen reacted to input: phase=%q dir=%v", g.Phase(), g.direction)
	}
}

func TestStartRun(t *testing.T) {
	g, _ := startedGame(t)
	snap := g.Snapshot()

	if snap.Phase != PhasePlaying {
		t.Fatalf("Phase = %q, want playing", snap.Phase)
	}
	want := []core.Cell{{X: 5, Y: 10}}
	if !reflect.DeepEqual(snap.Snake, want) {
		t.Errorf("Snake = %v, want %v", snap.Snake, want)
	}
	if snap.Direction != core.DirRight {
		t.Errorf("Direction = %v, want right", snap.Direction)
	}
	if len(snap.Foods) != DefaultFoodCapacity {
		t.Errorf("len(Foods) = %d, want %d", len(snap.Foods), DefaultFoodCapacity)
	}
	if snap.Level != 1 || snap.ScoreInLevel != 0 {
		t.Errorf("Level/Score = %d/%d, want 1/0", snap.Level, snap.ScoreInLevel)
	}
}

func TestDirectionReversalRejected(t *testing.T) {
	tests := []struct {
		name   string
		inputs []core.Action
		want   core.Direction
	}{
		{"opposite rejected", []core.Action{core.ActionLeft}, core.DirRight},
		{"perpendicular accepted", []core.Action{core.ActionUp}, core.DirUp},
		{"same accepted", []core.Action{core.ActionRight}, core.DirRight},
		{"opposite of new direction rejected", []core.Action{core.ActionUp, core.ActionDown}, core.DirUp},
		{"double back drops the first turn", []core.Action{core.ActionUp, core.ActionRight}, core.DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := startedGame(t)
			for _, a := range tt.inputs {
				g.Handle(core.NewEvent(a))
			}
			if g.direction != tt.want {
				t.Errorf("direction = %v, want %v", g.direction, tt.want)
			}
		})
	}
}

func TestDoubleBackWithinOneTick(t *testing.T) {
	g, _ := startedGame(t)
	parkFood(g)
	start := g.body.Head()

	// Up then Right before the tick: only Right takes effect.
	g.Handle(core.NewEvent(core.ActionUp))
	g.Handle(core.NewEvent(core.ActionRight))
	g.Tick()

	want := core.Cell{X: start.X + 1, Y: start.Y}
	if got := g.body.Head(); got != want {
		t.Errorf("head = %v, want %v", got, want)
	}
}

func TestMoveWithoutFood(t *testing.T) {
	g, _ := startedGame(t)
	parkFood(g)

	res := g.Tick()
	if len(res.Cues) != 0 {
		t.Errorf("cues = %v, want none", res.Cues)
	}
	if got := g.body; len(got) != 1 || got.Head() != (core.Cell{X: 6, Y: 10}) {
		t.Errorf("body = %v, want [(6,10)]", got)
	}
}

func TestEatFood(t *testing.T) {
	tests := []struct {
		tier      Tier
		wantScore int
		wantCue   core.Cue
	}{
		{TierLow, 1, core.CueFoodEaten},
		{TierMid, 2, core.CueFoodEaten},
		{TierHigh, 5, core.CueFoodEatenHigh},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			g, _ := startedGame(t)
			parkFood(g)
			placeFood(g, core.Cell{X: 6, Y: 10}, tt.tier)

			res := g.Tick()

			if !reflect.DeepEqual(res.Cues, []core.Cue{tt.wantCue}) {
				t.Errorf("cues = %v, want [%v]", res.Cues, tt.wantCue)
			}
			if g.level.ScoreInLevel != tt.wantScore {
				t.Errorf("ScoreInLevel = %d, want %d", g.level.ScoreInLevel, tt.wantScore)
			}
			if len(g.body) != 2 {
				t.Errorf("len(body) = %d, want 2", len(g.body))
			}
			if len(g.foods) != DefaultFoodCapacity {
				t.Errorf("len(foods) = %d, want refill to %d", len(g.foods), DefaultFoodCapacity)
			}
		})
	}
}

func TestWallCollision(t *testing.T) {
	g, _ := startedGame(t)
	parkFood(g)
	g.body = Body{{X: 19, Y: 10}}

	res := g.Tick()

	if g.Phase() != PhaseCollided || g.Outcome() != OutcomeCollided {
		t.Fatalf("phase/outcome = %q/%q, want collided", g.Phase(), g.Outcome())
	}
	if !reflect.DeepEqual(res.Cues, []core.Cue{core.CueGameOver}) {
		t.Errorf("cues = %v, want [game_over]", res.Cues)
	}

	g.Tick()
	if g.Phase() != PhaseAwaitingInitials {
		t.Errorf("Phase after collided tick = %q, want awaiting_initials", g.Phase())
	}
}

func TestSelfCollision(t *testing.T) {
	tests := []struct {
		name    string
		body    Body
		dir     core.Direction
		collide bool
	}{
		{
			name:    "into the middle of the body",
			body:    Body{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}},
			dir:     core.DirDown,
			collide: true,
		},
		{
			name:    "into the vacating tail",
			body:    Body{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}},
			dir:     core.DirDown,
			collide: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := startedGame(t)
			parkFood(g)
			g.body = tt.body
			g.direction = tt.dir

			g.Tick()

			if got := g.Phase() == PhaseCollided; got != tt.collide {
				t.Errorf("collided = %v, want %v (phase %q)", got, tt.collide, g.Phase())
			}
		})
	}
}

func TestLevelUp(t *testing.T) {
	g, clock := startedGame(t)
	parkFood(g)
	placeFood(g, core.Cell{X: 6, Y: 10}, TierLow)
	g.level.ScoreInLevel = 9
	clock.Advance(30 * time.Second)

	res := g.Tick()

	want := []core.Cue{core.CueFoodEaten, core.CueLevelUp}
	if !reflect.DeepEqual(res.Cues, want) {
		t.Errorf("cues = %v, want %v", res.Cues, want)
	}
	if g.level.Level != 2 {
		t.Errorf("Level = %d, want 2", g.level.Level)
	}
	if g.level.ScoreInLevel != 0 {
		t.Errorf("ScoreInLevel = %d, want 0", g.level.ScoreInLevel)
	}
	if g.level.FoodCapacity != DefaultFoodCapacity-1 {
		t.Errorf("FoodCapacity = %d, want %d", g.level.FoodCapacity, DefaultFoodCapacity-1)
	}
	if g.level.Budget != DefaultLevelTime-LevelTimeStep {
		t.Errorf("Budget = %v, want %v", g.level.Budget, DefaultLevelTime-LevelTimeStep)
	}
	if g.level.Carryover != 90*time.Second {
		t.Errorf("Carryover = %v, want 90s", g.level.Carryover)
	}
	if len(g.foods) != DefaultFoodCapacity-1 {
		t.Errorf("len(foods) = %d, want %d", len(g.foods), DefaultFoodCapacity-1)
	}
	if !g.Snapshot().LevelUpBanner {
		t.Error("LevelUpBanner = false, want true right after level up")
	}
}

func TestLevelUpTrimsOldestFood(t *testing.T) {
	g, _ := startedGame(t)
	g.opts.FoodCapacity = 3
	g.level.FoodCapacity = 3
	g.level.ScoreInLevel = 9

	base := g.now()
	g.foods = []Food{
		{Pos: core.Cell{X: 0, Y: 0}, CreatedAt: base.Add(-3 * time.Second), ExpiresAfter: time.Hour},
		{Pos: core.Cell{X: 1, Y: 0}, CreatedAt: base.Add(-1 * time.Second), ExpiresAfter: time.Hour},
		{Pos: core.Cell{X: 2, Y: 0}, CreatedAt: base.Add(-2 * time.Second), ExpiresAfter: time.Hour},
		{Pos: core.Cell{X: 6, Y: 10}, CreatedAt: base, ExpiresAfter: time.Hour},
	}

	g.Tick()

	// Eating leaves three foods, capacity drops to two, the oldest goes,
	// then refill tops back up to two.
	if len(g.foods) != 2 {
		t.Fatalf("len(foods) = %d, want 2", len(g.foods))
	}
	for _, f := range g.foods {
		if f.Pos == (core.Cell{X: 0, Y: 0}) {
			t.Errorf("oldest food at (0,0) survived the trim")
		}
	}
}

func TestWinAtFinalLevel(t *testing.T) {
	g, _ := startedGame(t)
	parkFood(g)
	placeFood(g, core.Cell{X: 6, Y: 10}, TierLow)
	g.level.Level = MaxLevel
	g.level.ScoreInLevel = 9
	g.level.Budget = 30 * time.Second
	g.level.Carryover = 50*time.Second + 700*time.Millisecond

	res := g.Tick()

	if g.Phase() != PhaseAwaitingInitials || g.Outcome() != OutcomeWon {
		t.Fatalf("phase/outcome = %q/%q, want awaiting_initials/won", g.Phase(), g.Outcome())
	}
	want := []core.Cue{core.CueFoodEaten, core.CueGameOver}
	if !reflect.DeepEqual(res.Cues, want) {
		t.Errorf("cues = %v, want %v", res.Cues, want)
	}
	// (10-1)*10 + 10 + 50 - 2, doubled.
	if g.FinalScore() != 296 {
		t.Errorf("FinalScore = %d, want 296", g.FinalScore())
	}
}

func TestTimeExpiry(t *testing.T) {
	g, clock := startedGame(t)

	parkFood(g)
	clock.Advance(DefaultLevelTime)
	g.Tick()
	if g.Phase() != PhasePlaying {
		t.Fatalf("Phase at exactly the budget = %q, want playing", g.Phase())
	}

	parkFood(g)
	clock.Advance(time.Second)
	res := g.Tick()

	if g.Phase() != PhaseTimeExpired || g.Outcome() != OutcomeTimeExpired {
		t.Fatalf("phase/outcome = %q/%q, want time_expired", g.Phase(), g.Outcome())
	}
	if !reflect.DeepEqual(res.Cues, []core.Cue{core.CueGameOver}) {
		t.Errorf("cues = %v, want [game_over]", res.Cues)
	}
	if g.FinalScore() != 0 {
		t.Errorf("FinalScore = %d, want 0 (floored)", g.FinalScore())
	}
	if rem := g.Snapshot().Remaining; rem != 0 {
		t.Errorf("Remaining = %v, want 0", rem)
	}

	g.Tick()
	if g.Phase() != PhaseAwaitingInitials {
		t.Errorf("Phase = %q, want awaiting_initials", g.Phase())
	}
}

func TestExpiredFoodSweptAndRefilled(t *testing.T) {
	g, clock := startedGame(t)
	g.foods = []Food{{Pos: core.Cell{X: 0, Y: 0}, CreatedAt: g.now(), ExpiresAfter: 5 * time.Second}}

	clock.Advance(5 * time.Second)
	if n := len(g.Snapshot().Foods); n != 1 {
		t.Fatalf("food visible at the expiry boundary: got %d, want 1", n)
	}

	clock.Advance(time.Millisecond)
	if n := len(g.Snapshot().Foods); n != 0 {
		t.Errorf("expired food still in snapshot: got %d", n)
	}

	g.Tick()
	for _, f := range g.foods {
		if f.Pos == (core.Cell{X: 0, Y: 0}) && f.CreatedAt.Before(g.now()) {
			t.Errorf("expired food not swept: %+v", f)
		}
	}
	if len(g.foods) == 0 {
		t.Error("food set not refilled after the sweep emptied it")
	}
}

func collideAndAwait(t *testing.T) *Game {
	t.Helper()
	g, _ := startedGame(t)
	parkFood(g)
	g.body = Body{{X: 19, Y: 10}}
	g.Tick()
	g.Tick()
	if g.Phase() != PhaseAwaitingInitials {
		t.Fatalf("Phase = %q, want awaiting_initials", g.Phase())
	}
	return g
}

func TestInitialsEntry(t *testing.T) {
	g := collideAndAwait(t)

	steps := []struct {
		ev   core.Event
		want string
	}{
		{core.InitialEvent('a'), "A"},
		{core.InitialEvent('1'), "A"},
		{core.InitialEvent('é'), "A"},
		{core.InitialEvent('b'), "AB"},
		{core.InitialEvent('C'), "ABC"},
		{core.InitialEvent('d'), "ABC"},
		{core.NewEvent(core.ActionBackspace), "AB"},
		{core.NewEvent(core.ActionDown), "AB"},
	}
	for _, s := range steps {
		g.Handle(s.ev)
		if got := g.Snapshot().Initials; got != s.want {
			t.Fatalf("after %v %q: initials = %q, want %q", s.ev.Action, s.ev.Rune, got, s.want)
		}
	}

	res := g.Handle(core.NewEvent(core.ActionSubmit))
	if res.Record != nil || g.Phase() != PhaseAwaitingInitials {
		t.Fatalf("submit with two letters accepted: record=%v phase=%q", res.Record, g.Phase())
	}

	g.Handle(core.InitialEvent('z'))
	res = g.Handle(core.NewEvent(core.ActionSubmit))
	if res.Record == nil {
		t.Fatal("submit with three letters returned no record")
	}
	want := Record{Initials: "ABZ", Score: g.FinalScore(), Outcome: OutcomeCollided}
	if *res.Record != want {
		t.Errorf("Record = %+v, want %+v", *res.Record, want)
	}
	if g.Phase() != PhaseGameOver {
		t.Errorf("Phase = %q, want game_over", g.Phase())
	}
}

func TestLedgerResult(t *testing.T) {
	g := collideAndAwait(t)
	for _, r := range "XYZ" {
		g.Handle(core.InitialEvent(r))
	}
	g.Handle(core.NewEvent(core.ActionSubmit))

	failure := errors.New("disk full")
	g.LedgerResult(failure)
	snap := g.Snapshot()
	if !errors.Is(snap.LedgerErr, failure) || snap.LedgerSaved {
		t.Errorf("LedgerErr/Saved = %v/%v, want failure/false", snap.LedgerErr, snap.LedgerSaved)
	}

	g.LedgerResult(nil)
	if snap := g.Snapshot(); snap.LedgerErr != nil || !snap.LedgerSaved {
		t.Errorf("LedgerErr/Saved = %v/%v, want nil/true", snap.LedgerErr, snap.LedgerSaved)
	}
}

func TestRestart(t *testing.T) {
	g := collideAndAwait(t)

	if res := g.Handle(core.NewEvent(core.ActionRestart)); len(res.Cues) != 0 || g.Phase() != PhaseAwaitingInitials {
		t.Fatalf("restart honored before initials: phase=%q", g.Phase())
	}

	for _, r := range "ABC" {
		g.Handle(core.InitialEvent(r))
	}
	g.Handle(core.NewEvent(core.ActionSubmit))
	g.LedgerResult(errors.New("boom"))

	if res := g.Handle(core.NewEvent(core.ActionStart)); len(res.Cues) != 0 {
		t.Errorf("start in game_over emitted %v", res.Cues)
	}

	res := g.Handle(core.NewEvent(core.ActionRestart))
	if !reflect.DeepEqual(res.Cues, []core.Cue{core.CueRunStarted}) {
		t.Errorf("cues = %v, want [run_started]", res.Cues)
	}

	snap := g.Snapshot()
	if snap.Phase != PhasePlaying || snap.Outcome != OutcomeNone {
		t.Errorf("phase/outcome = %q/%q, want playing/none", snap.Phase, snap.Outcome)
	}
	if snap.Level != 1 || snap.FinalScore != 0 || snap.Initials != "" || snap.LedgerErr != nil {
		t.Errorf("run state not reset: %+v", snap)
	}
	if len(snap.Snake) != 1 || snap.Snake[0] != (core.Cell{X: 5, Y: 10}) {
		t.Errorf("Snake = %v, want [(5,10)]", snap.Snake)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, clock := newTestGame(t, 12345)
		g.Handle(core.NewEvent(core.ActionStart))
		for i := range 40 {
			switch i {
			case 3:
				g.Handle(core.NewEvent(core.ActionDown))
			case 7:
				g.Handle(core.NewEvent(core.ActionRight))
			case 11:
				g.Handle(core.NewEvent(core.ActionUp))
			}
			clock.Advance(200 * time.Millisecond)
			g.Tick()
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different snapshots:\n%+v\n%+v", a, b)
	}
}

func TestFoodNeverOverlapsSnake(t *testing.T) {
	g, clock := startedGame(t)
	dirs := []core.Action{core.ActionDown, core.ActionRight, core.ActionUp, core.ActionRight}
	for i := range 60 {
		if g.Phase() != PhasePlaying {
			break
		}
		if i%4 == 0 {
			g.Handle(core.NewEvent(dirs[(i/4)%len(dirs)]))
		}
		clock.Advance(time.Second)
		g.Tick()

		body := g.body.Set()
		seen := make(map[core.Cell]bool)
		for _, f := range g.foods {
			if _, ok := body[f.Pos]; ok {
				t.Fatalf("tick %d: food on snake at %v", i, f.Pos)
			}
			if seen[f.Pos] {
				t.Fatalf("tick %d: duplicate food at %v", i, f.Pos)
			}
			seen[f.Pos] = true
		}
		if len(g.foods) > g.level.FoodCapacity {
			t.Fatalf("tick %d: %d foods over capacity %d", i, len(g.foods), g.level.FoodCapacity)
		}
	}
}
