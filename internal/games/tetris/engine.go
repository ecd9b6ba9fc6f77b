package tetris

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// ErrInvalidRules is returned when a Rules value cannot produce a playable game.
var ErrInvalidRules = errors.New("tetris: invalid rules")

// Board size limits. Every piece's bounding box must fit horizontally.
const (
	MinBoardWidth  = config.MinBoardWidth
	MinBoardHeight = config.MinBoardHeight
	MaxBoardWidth  = config.MaxBoardWidth
	MaxBoardHeight = config.MaxBoardHeight
)

// Rules configures an engine. The zero value is not usable; start from
// DefaultRules.
type Rules struct {
	Width  int
	Height int

	Preview    int  // upcoming pieces kept visible (at least 1)
	Hold       bool // allow the Hold command
	WallKicks  bool // try SRS kicks when an in-place rotation is blocked
	Randomizer RandomizerKind

	Scoring Scoring
	Speed   Speed

	StartLevel    int
	LinesPerLevel int
	Progression   bool // level rises with cleared lines
	GoalLines     int  // lines to win; 0 plays until top out
}

// DefaultRules returns the standard 10x20 rule set with one preview piece
// and no line goal.
func DefaultRules() Rules {
	return Rules{
		Width:         10,
		Height:        20,
		Preview:       1,
		Hold:          true,
		WallKicks:     true,
		Randomizer:    RandomizerBag,
		Scoring:       DefaultScoring(),
		Speed:         DefaultSpeed(),
		StartLevel:    0,
		LinesPerLevel: 10,
		Progression:   true,
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	var problems []string
	if r.Width < MinBoardWidth || r.Width > MaxBoardWidth {
		problems = append(problems, fmt.Sprintf("width %d outside [%d, %d]", r.Width, MinBoardWidth, MaxBoardWidth))
	}
	if r.Height < MinBoardHeight || r.Height > MaxBoardHeight {
		problems = append(problems, fmt.Sprintf("height %d outside [%d, %d]", r.Height, MinBoardHeight, MaxBoardHeight))
	}
	if r.Preview < 1 {
		problems = append(problems, "preview must be at least 1")
	}
	if r.LinesPerLevel < 1 {
		problems = append(problems, "lines per level must be at least 1")
	}
	if r.StartLevel < 0 {
		problems = append(problems, "start level must not be negative")
	}
	if r.GoalLines < 0 {
		problems = append(problems, "goal lines must not be negative")
	}
	if r.Speed.Min <= 0 || r.Speed.Base < r.Speed.Min {
		problems = append(problems, "speed needs 0 < min <= base")
	}
	problems = append(problems, r.Scoring.problems()...)
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRules, strings.Join(problems, "; "))
	}
	return nil
}

// Status is the engine state machine state.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	case StatusWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether only Reset is accepted in this state.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusWon
}

// Command is a discrete player input.
type Command int

const (
	CommandNone Command = iota
	MoveLeft
	MoveRight
	RotateCW
	RotateCCW
	SoftDrop
	HardDrop
	Hold
	Pause
	Resume
	Reset
)

var commandNames = map[Command]string{
	CommandNone: "none",
	MoveLeft:    "left",
	MoveRight:   "right",
	RotateCW:    "rotate_cw",
	RotateCCW:   "rotate_ccw",
	SoftDrop:    "soft_drop",
	HardDrop:    "hard_drop",
	Hold:        "hold",
	Pause:       "pause",
	Resume:      "resume",
	Reset:       "reset",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// EventKind distinguishes gravity ticks from player commands.
type EventKind int

const (
	EventTick EventKind = iota
	EventCommand
)

// Event is one input to the Step reducer.
type Event struct {
	Kind    EventKind
	Command Command
}

// TickEvent is the gravity event.
func TickEvent() Event {
	return Event{Kind: EventTick}
}

// CommandEvent wraps a player command.
func CommandEvent(c Command) Event {
	return Event{Kind: EventCommand, Command: c}
}

// ParseEvent parses the textual form used by replay scripts:
// "tick" or a command name such as "left" or "hard_drop".
func ParseEvent(s string) (Event, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "tick" {
		return TickEvent(), nil
	}
	for c, name := range commandNames {
		if c != CommandNone && name == s {
			return CommandEvent(c), nil
		}
	}
	return Event{}, fmt.Errorf("tetris: unknown event %q", s)
}

// Outcome describes what one Step did.
type Outcome struct {
	Accepted     bool // the event changed state; false means a silent no-op
	Locked       bool // the active piece was merged into the board
	LinesCleared int
	Points       int // score gained by this step
	Status       Status
}

// GameOver reports whether the step ended the game by top out.
func (o Outcome) GameOver() bool {
	return o.Status == StatusGameOver
}

// Engine owns the authoritative game state. It is not safe for concurrent
// use; one loop must own it and feed it events.
type Engine struct {
	rules         Rules
	rng           *rand.Rand // seeds for Reset
	newRandomizer func(seed int64) Randomizer
	randomizer    Randomizer

	board    *Board
	current  Piece
	queue    []PieceType
	hold     PieceType
	hasHold  bool
	holdUsed bool

	score  int
	lines  int
	level  int
	combo  int
	status Status
	ticks  uint64
}

// NewGame creates an engine with default rules on a width×height board.
func NewGame(width, height int, seed int64) (*Engine, error) {
	rules := DefaultRules()
	rules.Width = width
	rules.Height = height
	return NewEngine(rules, seed)
}

// NewEngine creates an engine whose piece sequence is derived from seed.
func NewEngine(rules Rules, seed int64) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	kind := rules.Randomizer
	e := &Engine{
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)),
		newRandomizer: func(s int64) Randomizer {
			return NewRandomizer(kind, s)
		},
	}
	e.ResetWithSeed(seed)
	return e, nil
}

// NewEngineWithRandomizer creates an engine that draws from r.
// Reset keeps drawing from the same randomizer.
func NewEngineWithRandomizer(rules Rules, r Randomizer) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		rules:      rules,
		rng:        rand.New(rand.NewSource(1)),
		randomizer: r,
	}
	e.reset()
	return e, nil
}

// ResetWithSeed starts a new game with a fresh randomizer seeded by seed.
// Engines built around an explicit randomizer keep using it.
func (e *Engine) ResetWithSeed(seed int64) {
	if e.newRandomizer != nil {
		e.randomizer = e.newRandomizer(seed)
	}
	e.reset()
}

func (e *Engine) reset() {
	if e.board == nil {
		e.board = NewBoard(e.rules.Width, e.rules.Height)
	} else {
		e.board.Reset()
	}
	first := e.randomizer.Next()
	e.queue = e.queue[:0]
	for _i := 0; _i < e.rules.Preview; _i++ {
		e.queue = append(e.queue, e.randomizer.Next())
	}
	e.hasHold = false
	e.holdUsed = false
	e.score = 0
	e.lines = 0
	e.level = e.rules.StartLevel
	e.combo = 0
	e.status = StatusRunning
	e.ticks = 0
	e.spawn(first)
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Status returns the current state machine state.
func (e *Engine) Status() Status {
	return e.status
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Level returns the current level.
func (e *Engine) Level() int {
	return e.level
}

// Lines returns the total lines cleared.
func (e *Engine) Lines() int {
	return e.lines
}

// Current returns the active piece.
func (e *Engine) Current() Piece {
	return e.current
}

// Board returns the playfield. Callers must treat it as read-only.
func (e *Engine) Board() *Board {
	return e.board
}

// GravityInterval is how long the active piece waits before falling one row.
func (e *Engine) GravityInterval() time.Duration {
	return e.rules.Speed.Interval(e.level)
}

// Step applies one event. It is the only way state changes.
func (e *Engine) Step(ev Event) Outcome {
	switch ev.Kind {
	case EventTick:
		return e.tick()
	case EventCommand:
		return e.apply(ev.Command)
	default:
		return e.outcome(false)
	}
}

// Tick applies gravity: the piece falls one row, or locks if it cannot.
func (e *Engine) Tick() Outcome {
	return e.Step(TickEvent())
}

// Apply handles a player command. Blocked moves are silent no-ops.
func (e *Engine) Apply(c Command) Outcome {
	return e.Step(CommandEvent(c))
}

func (e *Engine) tick() Outcome {
	if e.status != StatusRunning {
		return e.outcome(false)
	}
	e.ticks++
	if e.tryMove(1, 0) {
		return e.outcome(true)
	}
	return e.lock(0)
}

func (e *Engine) apply(c Command) Outcome {
	if c == Reset {
		e.ResetWithSeed(e.rng.Int63())
		return e.outcome(true)
	}

	switch e.status {
	case StatusGameOver, StatusWon:
		return e.outcome(false)
	case StatusPaused:
		if c == Resume {
			e.status = StatusRunning
			return e.outcome(true)
		}
		return e.outcome(false)
	}

	switch c {
	case MoveLeft:
		return e.outcome(e.tryMove(0, -1))
	case MoveRight:
		return e.outcome(e.tryMove(0, 1))
	case RotateCW:
		return e.outcome(e.tryRotate(Clockwise))
	case RotateCCW:
		return e.outcome(e.tryRotate(CounterClockwise))
	case SoftDrop:
		if !e.tryMove(1, 0) {
			return e.outcome(false)
		}
		e.score += e.rules.Scoring.SoftDrop
		out := e.outcome(true)
		out.Points = e.rules.Scoring.SoftDrop
		return out
	case HardDrop:
		rows := 0
		for e.tryMove(1, 0) {
			rows++
		}
		return e.lock(rows * e.rules.Scoring.HardDrop)
	case Hold:
		return e.outcome(e.holdPiece())
	case Pause:
		e.status = StatusPaused
		return e.outcome(true)
	default:
		return e.outcome(false)
	}
}

func (e *Engine) outcome(accepted bool) Outcome {
	return Outcome{Accepted: accepted, Status: e.status}
}

// tryMove adopts the translated piece if its position is valid.
func (e *Engine) tryMove(dRow, dCol int) bool {
	candidate := e.current.Translated(dRow, dCol)
	if !e.board.IsValidPosition(candidate) {
		return false
	}
	e.current = candidate
	return true
}

// tryRotate adopts the rotated piece, trying SRS kicks when enabled.
func (e *Engine) tryRotate(dir Direction) bool {
	candidate := e.current.Rotated(dir)
	if e.board.IsValidPosition(candidate) {
		e.current = candidate
		return true
	}
	if !e.rules.WallKicks {
		return false
	}
	for _, k := range kickOffsets(e.current.Type, e.current.Rotation, candidate.Rotation) {
		kicked := candidate.Translated(k.Row, k.Col)
		if e.board.IsValidPosition(kicked) {
			e.current = kicked
			return true
		}
	}
	return false
}

// holdPiece swaps the active piece with the hold slot, once per piece.
func (e *Engine) holdPiece() bool {
	if !e.rules.Hold || e.holdUsed {
		return false
	}
	held := e.current.Type
	if e.hasHold {
		e.spawn(e.hold)
	} else {
		e.hasHold = true
		e.spawnNext()
	}
	e.hold = held
	e.holdUsed = true
	return true
}

// lock merges the active piece, clears lines, scores and spawns the next
// piece. dropPoints is the hard drop award earned on the way down.
func (e *Engine) lock(dropPoints int) Outcome {
	e.board.Lock(e.current)
	cleared := e.board.ClearFullLines()

	points := dropPoints
	if cleared > 0 {
		e.combo++
		points += e.rules.Scoring.LineClear(cleared, e.level)
		points += e.rules.Scoring.ComboBonus(e.combo, e.level)
	} else {
		e.combo = 0
	}
	e.score += points
	e.lines += cleared
	if e.rules.Progression {
		e.level = e.rules.StartLevel + e.lines/e.rules.LinesPerLevel
	}

	if e.rules.GoalLines > 0 && e.lines >= e.rules.GoalLines {
		e.status = StatusWon
	} else {
		e.holdUsed = false
		e.spawnNext()
	}

	return Outcome{
		Accepted:     true,
		Locked:       true,
		LinesCleared: cleared,
		Points:       points,
		Status:       e.status,
	}
}

// spawnNext promotes the head of the preview queue and draws a replacement.
func (e *Engine) spawnNext() {
	t := e.queue[0]
	copy(e.queue, e.queue[1:])
	e.queue[len(e.queue)-1] = e.randomizer.Next()
	e.spawn(t)
}

// spawn places a new active piece; a blocked spawn ends the game.
func (e *Engine) spawn(t PieceType) {
	e.current = SpawnPiece(t, e.rules.Width)
	if !e.board.IsValidPosition(e.current) {
		e.status = StatusGameOver
	}
}

// Ghost returns where the active piece would land on a hard drop.
func (e *Engine) Ghost() Piece {
	ghost := e.current
	for {
		next := ghost.Translated(1, 0)
		if !e.board.IsValidPosition(next) {
			return ghost
		}
		ghost = next
	}
}
