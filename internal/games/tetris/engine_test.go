package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScripted builds an engine dealing the given pieces in order.
func newScripted(t *testing.T, rules Rules, seq ...PieceType) *Engine {
	t.Helper()
	e, err := NewEngineWithRandomizer(rules, NewSequenceRandomizer(seq...))
	require.NoError(t, err)
	return e
}

// dropVerticalIRight rotates the active I piece upright, pushes it against
// the right wall and hard drops it.
func dropVerticalIRight(t *testing.T, e *Engine) Outcome {
	t.Helper()
	require.Equal(t, PieceI, e.Current().Type)
	require.True(t, e.Apply(RotateCW).Accepted)
	for e.Apply(MoveRight).Accepted {
	}
	require.Equal(t, e.Rules().Width-1, e.Current().Cells()[0].Col)
	return e.Apply(HardDrop)
}

func TestNewGameInitialState(t *testing.T) {
	e, err := NewGame(10, 20, 1)
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, StatusRunning, snap.Status)
	assert.Equal(t, 10, snap.Width)
	assert.Equal(t, 20, snap.Height)
	assert.Len(t, snap.Grid, 20)
	assert.Equal(t, 0, e.Board().OccupiedCount())
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.Level)
	assert.Equal(t, 0, snap.Lines)
	assert.True(t, snap.Next.Valid())
	assert.Equal(t, SpawnPiece(snap.Current.Type, 10), snap.Current)
	assert.False(t, snap.HasHold)
}

func TestNewEngineRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"narrow", func(r *Rules) { r.Width = 3 }},
		{"short", func(r *Rules) { r.Height = 2 }},
		{"huge", func(r *Rules) { r.Width = 1000 }},
		{"no preview", func(r *Rules) { r.Preview = 0 }},
		{"no lines per level", func(r *Rules) { r.LinesPerLevel = 0 }},
		{"negative goal", func(r *Rules) { r.GoalLines = -1 }},
		{"zero speed", func(r *Rules) { r.Speed = Speed{} }},
		{"negative soft drop", func(r *Rules) { r.Scoring.SoftDrop = -5 }},
		{"negative hard drop", func(r *Rules) { r.Scoring.HardDrop = -10 }},
		{"negative combo", func(r *Rules) { r.Scoring.Combo = -1 }},
		{"negative single", func(r *Rules) { r.Scoring.Lines[1] = -40 }},
		{"double below single", func(r *Rules) { r.Scoring.Lines[2] = 10 }},
		{"flat table", func(r *Rules) { r.Scoring.Lines = [5]int{0, 500, 500, 500, 500} }},
		{"tetris equals four singles", func(r *Rules) { r.Scoring.Lines = [5]int{0, 100, 200, 300, 400} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			_, err := NewEngine(rules, 1)
			assert.ErrorIs(t, err, ErrInvalidRules)
		})
	}
}

func TestPreviewQueueLength(t *testing.T) {
	rules := DefaultRules()
	rules.Preview = 3
	e := newScripted(t, rules, PieceT, PieceS, PieceZ, PieceJ, PieceL)

	snap := e.Snapshot()
	assert.Equal(t, PieceT, snap.Current.Type)
	assert.Equal(t, []PieceType{PieceS, PieceZ, PieceJ}, snap.Preview)
	assert.Equal(t, PieceS, snap.Next)

	e.Apply(HardDrop)
	snap = e.Snapshot()
	assert.Equal(t, PieceS, snap.Current.Type)
	assert.Equal(t, []PieceType{PieceZ, PieceJ, PieceL}, snap.Preview)
}

func TestTickMovesPieceDown(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceT)
	start := e.Current()

	out := e.Tick()

	assert.True(t, out.Accepted)
	assert.False(t, out.Locked)
	assert.Equal(t, start.Row+1, e.Current().Row)
	assert.Equal(t, uint64(1), e.Snapshot().Ticks)
}

func TestTickLocksAtFloor(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceO, PieceT)

	var out Outcome
	ticks := 0
	for !out.Locked {
		out = e.Tick()
		ticks++
		require.Less(t, ticks, 100)
	}

	assert.Equal(t, 19, ticks, "18 falls then one locking tick")
	assert.Equal(t, 4, e.Board().OccupiedCount())
	assert.True(t, e.Board().Cell(19, 4).Filled)
	assert.True(t, e.Board().Cell(18, 5).Filled)
	assert.Equal(t, PieceT, e.Current().Type)
	assert.Equal(t, 0, e.Score(), "gravity awards no drop points")
}

func TestHardDropOnEmptyBoard(t *testing.T) {
	for _, pt := range AllPieceTypes {
		t.Run(pt.String(), func(t *testing.T) {
			e := newScripted(t, DefaultRules(), pt, PieceO)
			before := e.Board().OccupiedCount()

			out := e.Apply(HardDrop)

			assert.True(t, out.Locked)
			assert.Equal(t, 0, out.LinesCleared)
			assert.Equal(t, before+4, e.Board().OccupiedCount())
			assert.False(t, e.Board().IsRowEmpty(19), "piece rests on the floor")
		})
	}
}

func TestHardDropFlatPieceLandsOnLastRow(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceI, PieceO)

	out := e.Apply(HardDrop)

	for col := 3; col <= 6; col++ {
		assert.True(t, e.Board().Cell(19, col).Filled, "col %d", col)
	}
	assert.Equal(t, 4, e.Board().OccupiedCount())
	assert.Equal(t, 18*2, out.Points, "2 points per row dropped")
	assert.Equal(t, 36, e.Score())
}

func TestSingleLineClear(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceI)
	fillRow(e.Board(), 19, 9)

	out := dropVerticalIRight(t, e)

	assert.Equal(t, 1, out.LinesCleared)
	assert.Equal(t, 1, e.Lines())
	assert.Equal(t, 40+16*2, out.Points, "single plus 16 hard drop rows")
	assert.Equal(t, 3, e.Board().OccupiedCount(), "three I cells remain after the clear")
	for row := 17; row <= 19; row++ {
		assert.True(t, e.Board().Cell(row, 9).Filled, "row %d", row)
	}
}

func TestSingleLineClearByPlacements(t *testing.T) {
	// Two flat I pieces cover cols 0-7, then an O in cols 8-9 completes
	// the bottom row.
	e := newScripted(t, DefaultRules(), PieceI, PieceI, PieceO)

	for _i := 0; _i < 3; _i++ {
		e.Apply(MoveLeft)
	}
	e.Apply(HardDrop) // I at cols 0-3

	e.Apply(MoveRight) // I at cols 4-7
	e.Apply(HardDrop)

	for _i := 0; _i < 4; _i++ {
		e.Apply(MoveRight) // O at cols 8-9
	}
	out := e.Apply(HardDrop)

	assert.Equal(t, 1, out.LinesCleared)
	assert.Equal(t, 1, e.Lines())
	assert.True(t, e.Board().IsRowEmpty(18))
	assert.True(t, e.Board().Cell(19, 8).Filled)
	assert.True(t, e.Board().Cell(19, 9).Filled)
	assert.Equal(t, 2, e.Board().OccupiedCount())
}

func TestTetrisScoresSuperlinear(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceI)
	for row := 16; row <= 19; row++ {
		fillRow(e.Board(), row, 9)
	}

	out := dropVerticalIRight(t, e)

	assert.Equal(t, 4, out.LinesCleared)
	lineAward := out.Points - 16*2
	assert.Equal(t, 1200, lineAward)
	assert.Greater(t, lineAward, 4*DefaultScoring().LineClear(1, 0))
	assert.Equal(t, 0, e.Board().OccupiedCount())
}

func TestComboBonusAndReset(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceI)
	fillRow(e.Board(), 19, 9)

	first := dropVerticalIRight(t, e)
	require.Equal(t, 1, first.LinesCleared)
	assert.Equal(t, 1, e.Snapshot().Combo)

	// Col 9 rows 17-19 survived; complete row 19 again.
	fillRow(e.Board(), 19, 9)
	second := e.Apply(HardDrop) // flat I lands on row 18
	require.Equal(t, 1, second.LinesCleared)
	assert.Equal(t, 2, e.Snapshot().Combo)
	assert.Equal(t, 40+50+17*2, second.Points)

	third := e.Apply(HardDrop)
	assert.Equal(t, 0, third.LinesCleared)
	assert.Equal(t, 0, e.Snapshot().Combo)
}

func TestLevelProgressionAndGravity(t *testing.T) {
	rules := DefaultRules()
	rules.LinesPerLevel = 1
	e := newScripted(t, rules, PieceI)
	assert.Equal(t, time.Second, e.GravityInterval())

	fillRow(e.Board(), 19, 9)
	dropVerticalIRight(t, e)

	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 900*time.Millisecond, e.GravityInterval())
}

func TestLevelMultipliesAward(t *testing.T) {
	rules := DefaultRules()
	rules.StartLevel = 2
	e := newScripted(t, rules, PieceI)
	fillRow(e.Board(), 19, 9)

	out := dropVerticalIRight(t, e)

	assert.Equal(t, 40*3+16*2, out.Points)
	assert.Equal(t, 2, e.Level(), "one line does not level up from 2")
}

func TestFixedProgressionKeepsLevel(t *testing.T) {
	rules := DefaultRules()
	rules.LinesPerLevel = 1
	rules.StartLevel = 4
	rules.Progression = false
	e := newScripted(t, rules, PieceI)
	fillRow(e.Board(), 19, 9)

	dropVerticalIRight(t, e)

	assert.Equal(t, 4, e.Level())
}

func TestGameOverOnSpawnCollision(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceT)
	fillRow(e.Board(), 0)
	fillRow(e.Board(), 1)

	e.spawnNext()

	require.Equal(t, StatusGameOver, e.Status())
	before := e.Snapshot()

	out := e.Apply(MoveLeft)
	assert.False(t, out.Accepted)
	assert.True(t, out.GameOver())
	assert.Equal(t, before, e.Snapshot(), "state unchanged")

	for _, c := range []Command{MoveRight, RotateCW, RotateCCW, SoftDrop, HardDrop, Hold, Pause, Resume} {
		assert.False(t, e.Apply(c).Accepted, c.String())
	}
	assert.False(t, e.Tick().Accepted)
	assert.Equal(t, before, e.Snapshot())
}

func TestStackingToTopEndsGame(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceO)

	for i := 1; i <= 9; i++ {
		out := e.Apply(HardDrop)
		require.Equal(t, StatusRunning, out.Status, "drop %d", i)
	}
	out := e.Apply(HardDrop)
	assert.Equal(t, StatusGameOver, out.Status)
	assert.True(t, out.Locked)
}

func TestResetAfterGameOver(t *testing.T) {
	e, err := NewGame(10, 20, 3)
	require.NoError(t, err)
	fillRow(e.Board(), 0)
	fillRow(e.Board(), 1)
	e.spawnNext()
	require.Equal(t, StatusGameOver, e.Status())

	out := e.Apply(Reset)

	assert.True(t, out.Accepted)
	assert.Equal(t, StatusRunning, e.Status())
	assert.Equal(t, 0, e.Board().OccupiedCount())
	assert.Equal(t, 0, e.Score())
}

func TestPauseGating(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceT)

	assert.False(t, e.Apply(Resume).Accepted, "resume while running is a no-op")
	require.True(t, e.Apply(Pause).Accepted)
	require.Equal(t, StatusPaused, e.Status())
	before := e.Snapshot()

	for _, c := range []Command{MoveLeft, MoveRight, RotateCW, RotateCCW, SoftDrop, HardDrop, Hold, Pause} {
		assert.False(t, e.Apply(c).Accepted, c.String())
	}
	assert.False(t, e.Tick().Accepted)
	assert.Equal(t, before, e.Snapshot())

	require.True(t, e.Apply(Resume).Accepted)
	assert.Equal(t, StatusRunning, e.Status())
	assert.True(t, e.Apply(MoveLeft).Accepted)
}

func TestResetWhilePaused(t *testing.T) {
	e, err := NewGame(10, 20, 5)
	require.NoError(t, err)
	e.Apply(HardDrop)
	e.Apply(Pause)

	require.True(t, e.Apply(Reset).Accepted)
	assert.Equal(t, StatusRunning, e.Status())
	assert.Equal(t, 0, e.Board().OccupiedCount())
}

func TestBlockedMovesAreNoOps(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceO)
	for e.Apply(MoveLeft).Accepted {
	}
	before := e.Snapshot()

	out := e.Apply(MoveLeft)

	assert.False(t, out.Accepted)
	assert.Equal(t, StatusRunning, out.Status)
	assert.Equal(t, before, e.Snapshot())
	assert.Equal(t, 0, e.Current().Cells()[0].Col)
}

func TestSoftDropScoresPerRow(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceT)

	out := e.Apply(SoftDrop)
	assert.True(t, out.Accepted)
	assert.Equal(t, 1, out.Points)
	assert.Equal(t, 1, e.Current().Row)
	assert.Equal(t, 1, e.Score())

	for e.Apply(SoftDrop).Accepted {
	}
	assert.Equal(t, 18, e.Score())
	assert.Equal(t, 0, e.Board().OccupiedCount(), "soft drop never locks")
}

func TestRotateCycleOnEngine(t *testing.T) {
	for _, pt := range AllPieceTypes {
		e := newScripted(t, DefaultRules(), pt)
		e.Apply(SoftDrop)
		e.Apply(SoftDrop)
		start := e.Current()

		for _i := 0; _i < 4; _i++ {
			require.True(t, e.Apply(RotateCW).Accepted, pt.String())
		}
		assert.Equal(t, start, e.Current(), pt.String())
	}
}

// pinTAgainstLeftWall leaves an upright T whose stem points right, flush
// with the left wall, so a plain clockwise turn pokes out of the board.
func pinTAgainstLeftWall(t *testing.T, e *Engine) {
	t.Helper()
	require.True(t, e.Apply(RotateCW).Accepted)
	for e.Apply(MoveLeft).Accepted {
	}
	require.Equal(t, -1, e.Current().Col)
	require.False(t, e.Board().IsValidPosition(e.Current().Rotated(Clockwise)))
}

func TestWallKickRescuesRotation(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceT)
	pinTAgainstLeftWall(t, e)

	out := e.Apply(RotateCW)

	assert.True(t, out.Accepted)
	assert.Equal(t, Rotation2, e.Current().Rotation)
	assert.Equal(t, 0, e.Current().Col, "kicked one column right")
}

func TestRotationWithoutKicksIsRejected(t *testing.T) {
	rules := DefaultRules()
	rules.WallKicks = false
	e := newScripted(t, rules, PieceT)
	pinTAgainstLeftWall(t, e)
	before := e.Current()

	out := e.Apply(RotateCW)

	assert.False(t, out.Accepted)
	assert.Equal(t, before, e.Current())
}

func TestHoldOncePerPiece(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceT, PieceS, PieceZ, PieceJ)

	require.True(t, e.Apply(Hold).Accepted)
	snap := e.Snapshot()
	assert.True(t, snap.HasHold)
	assert.Equal(t, PieceT, snap.Hold)
	assert.Equal(t, PieceS, snap.Current.Type)
	assert.Equal(t, PieceZ, snap.Next)

	assert.False(t, e.Apply(Hold).Accepted, "second hold before lock")

	e.Apply(HardDrop) // locks S, Z becomes current
	require.Equal(t, PieceZ, e.Current().Type)
	require.True(t, e.Apply(Hold).Accepted)

	snap = e.Snapshot()
	assert.Equal(t, PieceT, snap.Current.Type, "held piece comes back")
	assert.Equal(t, PieceZ, snap.Hold)
	assert.Equal(t, SpawnPiece(PieceT, 10), snap.Current, "held piece respawns at the top")
}

func TestHoldDisabled(t *testing.T) {
	rules := DefaultRules()
	rules.Hold = false
	e := newScripted(t, rules, PieceT, PieceS)

	assert.False(t, e.Apply(Hold).Accepted)
	assert.Equal(t, PieceT, e.Current().Type)
}

func TestMarathonGoalWins(t *testing.T) {
	rules := DefaultRules()
	rules.GoalLines = 1
	e := newScripted(t, rules, PieceI)
	fillRow(e.Board(), 19, 9)

	out := dropVerticalIRight(t, e)

	assert.Equal(t, StatusWon, out.Status)
	assert.True(t, e.Status().Terminal())
	assert.False(t, out.GameOver())
	assert.False(t, e.Apply(MoveLeft).Accepted)
	assert.True(t, e.Apply(Reset).Accepted)
	assert.Equal(t, StatusRunning, e.Status())
}

func TestGhostMarksLandingRow(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceI, PieceO)
	ghost := e.Snapshot().Ghost

	assert.Equal(t, e.Current().Col, ghost.Col)
	assert.Equal(t, 19, ghost.Bottom())

	e.Apply(HardDrop)
	assert.True(t, e.Board().Cell(19, 3).Filled)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceT)
	snap := e.Snapshot()
	snap.Grid[19][0] = Occupied(PieceT.Color())
	snap.Preview[0] = PieceO

	assert.False(t, e.Board().Cell(19, 0).Filled)
	assert.NotEqual(t, PieceO, e.Snapshot().Preview[0])
}

func TestCompositeIncludesActivePiece(t *testing.T) {
	e := newScripted(t, DefaultRules(), PieceO)
	grid := e.Snapshot().Composite()

	assert.True(t, grid[0][4].Filled)
	assert.True(t, grid[1][5].Filled)
	assert.Equal(t, 0, e.Board().OccupiedCount())
}

func TestDeterminism(t *testing.T) {
	script := []Event{
		CommandEvent(MoveLeft), TickEvent(), CommandEvent(RotateCW), TickEvent(),
		CommandEvent(HardDrop), CommandEvent(Hold), CommandEvent(MoveRight),
		CommandEvent(MoveRight), CommandEvent(HardDrop), TickEvent(), TickEvent(),
		CommandEvent(RotateCCW), CommandEvent(SoftDrop), CommandEvent(HardDrop),
	}

	run := func(seed int64) Snapshot {
		e, err := NewEngine(DefaultRules(), seed)
		require.NoError(t, err)
		for _i := 0; _i < 5; _i++ {
			for _, ev := range script {
				e.Step(ev)
			}
		}
		return e.Snapshot()
	}

	a, b := run(2024), run(2024)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestResetIsDeterministic(t *testing.T) {
	a, err := NewGame(10, 20, 11)
	require.NoError(t, err)
	b, err := NewGame(10, 20, 11)
	require.NoError(t, err)

	a.Apply(Reset)
	b.Apply(Reset)

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in      string
		want    Event
		wantErr bool
	}{
		{"tick", TickEvent(), false},
		{"left", CommandEvent(MoveLeft), false},
		{" Hard_Drop ", CommandEvent(HardDrop), false},
		{"rotate_ccw", CommandEvent(RotateCCW), false},
		{"reset", CommandEvent(Reset), false},
		{"none", Event{}, true},
		{"jump", Event{}, true},
	}

	for _, tt := range tests {
		got, err := ParseEvent(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestStatusAndCommandStrings(t *testing.T) {
	assert.Equal(t, "game_over", StatusGameOver.String())
	assert.Equal(t, "won", StatusWon.String())
	assert.Equal(t, "rotate_cw", RotateCW.String())
	assert.Equal(t, "unknown", Command(99).String())
}
