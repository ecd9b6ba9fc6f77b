package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode IDs, also used as score table keys.
const (
	IDMarathon = "tetris"
	IDEndless  = "tetris_endless"
)

// GameMode selects the win condition.
type GameMode int

const (
	ModeMarathon GameMode = iota // win after the configured line goal
	ModeEndless                  // play until top out
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts an Engine to the platform's fixed-tick registry.Game
// interface. Gravity is counted in platform frames.
type Game struct {
	mode       GameMode
	runtime    core.RuntimeConfig
	cfg        config.TetrisConfig
	startLevel int // -1 keeps the configured start level

	engine       *Engine
	gravityCount int
	tooSmall     bool
	outcomes     []Outcome // accepted outcomes from the last Step
}

// New creates a marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon, startLevel: -1}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless, startLevel: -1}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDMarathon
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Tetris (Endless)"
	}
	return "Tetris (Marathon)"
}

// SetStartLevel overrides the configured start level for the next Reset.
// A negative level restores the configured one.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// ConfiguredStartLevel is the start level a Reset uses when no override
// is set, after the config file and difficulty preset are applied.
func (g *Game) ConfiguredStartLevel() int {
	return loadConfig().Levels.StartLevel
}

// loadConfig reads the rules from the config search path and applies the
// difficulty preset. Load errors fall back to the defaults.
func loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, difficultyPreset)
	return cfg
}

// RulesFromConfig converts loaded YAML rules into engine rules for a mode.
func RulesFromConfig(cfg config.TetrisConfig, mode GameMode) Rules {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	rules := Rules{
		Width:      cfg.Board.Width,
		Height:     cfg.Board.Height,
		Preview:    cfg.Rules.Preview,
		Hold:       cfg.Rules.Hold,
		WallKicks:  cfg.Rules.WallKicks,
		Randomizer: RandomizerKind(cfg.Rules.Randomizer),
		Scoring: Scoring{
			Lines:    [5]int{0, cfg.Scoring.Single, cfg.Scoring.Double, cfg.Scoring.Triple, cfg.Scoring.Tetris},
			SoftDrop: cfg.Scoring.SoftDrop,
			HardDrop: cfg.Scoring.HardDrop,
			Combo:    cfg.Scoring.Combo,
		},
		Speed: Speed{
			Base: ms(cfg.Speed.BaseMs),
			Step: ms(cfg.Speed.StepMs),
			Min:  ms(cfg.Speed.MinMs),
		},
		StartLevel:    cfg.Levels.StartLevel,
		LinesPerLevel: cfg.Levels.LinesPerLevel,
		Progression:   cfg.Levels.Progression,
	}
	if mode == ModeMarathon {
		rules.GoalLines = cfg.Levels.MarathonLines
	}
	return rules
}

// Reset loads the rules and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultTickRate
	}
	g.runtime = runtime

	cfg := loadConfig()
	if g.startLevel >= 0 {
		cfg.Levels.StartLevel = g.startLevel
	}
	g.cfg = cfg

	engine, err := NewEngine(RulesFromConfig(cfg, g.mode), runtime.Seed)
	if err != nil {
		engine, _ = NewEngine(RulesFromConfig(config.DefaultTetrisConfig(), g.mode), runtime.Seed)
	}
	g.engine = engine
	g.gravityCount = 0
	g.outcomes = g.outcomes[:0]
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize updates the layout for a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.engine == nil {
		return
	}
	minW, minH := g.MinScreenSize()
	g.tooSmall = w < minW || h < minH
}

// Step advances one platform frame: input first, then gravity.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.outcomes = g.outcomes[:0]
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	status := g.engine.Status()
	if status.Terminal() {
		if in.Has(core.ActionRestart) {
			g.engine.Apply(Reset)
			g.gravityCount = 0
		}
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		cmd := g.commandFor(a)
		if cmd == CommandNone {
			continue
		}
		out := g.engine.Apply(cmd)
		g.record(out)
		if cmd == SoftDrop && out.Accepted {
			g.gravityCount = 0
		}
		if g.engine.Status().Terminal() {
			return core.StepResult{State: g.State()}
		}
	}

	if g.engine.Status() == StatusRunning {
		g.gravityCount++
		if g.gravityCount >= g.framesPerRow() {
			g.gravityCount = 0
			g.record(g.engine.Tick())
		}
	}

	return core.StepResult{State: g.State()}
}

// commandFor maps a platform action to an engine command for the current state.
func (g *Game) commandFor(a core.Action) Command {
	switch a {
	case core.ActionLeft:
		return MoveLeft
	case core.ActionRight:
		return MoveRight
	case core.ActionRotateCW:
		return RotateCW
	case core.ActionRotateCCW:
		return RotateCCW
	case core.ActionSoftDrop:
		return SoftDrop
	case core.ActionHardDrop:
		return HardDrop
	case core.ActionHold:
		return Hold
	case core.ActionPause:
		if g.engine.Status() == StatusPaused {
			return Resume
		}
		return Pause
	default:
		return CommandNone
	}
}

func (g *Game) record(o Outcome) {
	if o.Locked {
		g.gravityCount = 0
	}
	if o.Accepted {
		g.outcomes = append(g.outcomes, o)
	}
}

// framesPerRow converts the engine's gravity interval to platform frames.
func (g *Game) framesPerRow() int {
	interval := g.engine.GravityInterval()
	frames := int(interval * time.Duration(g.runtime.TickRate) / time.Second)
	return max(1, frames)
}

// Outcomes returns the accepted engine outcomes produced by the last Step.
func (g *Game) Outcomes() []Outcome {
	return g.outcomes
}

// State returns the summary the platform uses for score saving.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	status := g.engine.Status()
	return core.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		Level:    g.engine.Level(),
		GameOver: status.Terminal(),
		Paused:   status == StatusPaused,
	}
}

// Won reports whether the marathon goal was reached.
func (g *Game) Won() bool {
	return g.engine != nil && g.engine.Status() == StatusWon
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Config returns the rules loaded by the last Reset.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          IDMarathon,
		Title:       "Tetris (Marathon)",
		Description: "Clear the line goal to win",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:          IDEndless,
		Title:       "Tetris (Endless)",
		Description: "Play until the stack reaches the top",
	}, func() registry.Game {
		return NewEndless()
	})
}
