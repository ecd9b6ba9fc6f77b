// Package config provides YAML-based rules loading and difficulty presets
// for the tetris engine.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("config: invalid")

// Board size limits shared with the engine.
const (
	MinBoardWidth  = 4
	MinBoardHeight = 4
	MaxBoardWidth  = 40
	MaxBoardHeight = 60
)

// TetrisConfig contains all tunable rules for a tetris game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Rules   RulesConfig   `yaml:"rules"`
	Scoring ScoringConfig `yaml:"scoring"`
	Levels  LevelsConfig  `yaml:"levels"`
	Speed   SpeedConfig   `yaml:"speed"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RulesConfig toggles optional mechanics.
type RulesConfig struct {
	Preview    int    `yaml:"preview"`
	Hold       bool   `yaml:"hold"`
	WallKicks  bool   `yaml:"wall_kicks"`
	Randomizer string `yaml:"randomizer"` // "bag" or "uniform"
}

// ScoringConfig defines base point awards.
type ScoringConfig struct {
	Single   int `yaml:"single"`
	Double   int `yaml:"double"`
	Triple   int `yaml:"triple"`
	Tetris   int `yaml:"tetris"`
	SoftDrop int `yaml:"soft_drop"`
	HardDrop int `yaml:"hard_drop"`
	Combo    int `yaml:"combo"`
}

// LevelsConfig defines level progression.
type LevelsConfig struct {
	StartLevel    int  `yaml:"start_level"`
	LinesPerLevel int  `yaml:"lines_per_level"`
	MarathonLines int  `yaml:"marathon_lines"`
	Progression   bool `yaml:"progression"`
}

// SpeedConfig defines the gravity curve in milliseconds.
type SpeedConfig struct {
	BaseMs int `yaml:"base_ms"`
	StepMs int `yaml:"step_ms"`
	MinMs  int `yaml:"min_ms"`
}

// Validate reports every problem found in the config.
func (c TetrisConfig) Validate() error {
	var problems []string
	if c.Board.Width < MinBoardWidth || c.Board.Width > MaxBoardWidth {
		problems = append(problems, fmt.Sprintf("board.width %d outside [%d, %d]", c.Board.Width, MinBoardWidth, MaxBoardWidth))
	}
	if c.Board.Height < MinBoardHeight || c.Board.Height > MaxBoardHeight {
		problems = append(problems, fmt.Sprintf("board.height %d outside [%d, %d]", c.Board.Height, MinBoardHeight, MaxBoardHeight))
	}
	if c.Rules.Preview < 1 {
		problems = append(problems, "rules.preview must be at least 1")
	}
	switch c.Rules.Randomizer {
	case "", "bag", "uniform":
	default:
		problems = append(problems, fmt.Sprintf("rules.randomizer %q is not bag or uniform", c.Rules.Randomizer))
	}
	sc := c.Scoring
	if sc.Single < 0 || sc.Double < 0 || sc.Triple < 0 || sc.Tetris < 0 ||
		sc.SoftDrop < 0 || sc.HardDrop < 0 || sc.Combo < 0 {
		problems = append(problems, "scoring values must not be negative")
	}
	if sc.Double < sc.Single || sc.Triple < sc.Double || sc.Tetris < sc.Triple {
		problems = append(problems, "scoring needs single <= double <= triple <= tetris")
	}
	if sc.Tetris <= 4*sc.Single {
		problems = append(problems, fmt.Sprintf("scoring.tetris %d must exceed four singles (%d)", sc.Tetris, 4*sc.Single))
	}
	if c.Levels.LinesPerLevel < 1 {
		problems = append(problems, "levels.lines_per_level must be at least 1")
	}
	if c.Levels.StartLevel < 0 {
		problems = append(problems, "levels.start_level must not be negative")
	}
	if c.Levels.MarathonLines < 0 {
		problems = append(problems, "levels.marathon_lines must not be negative")
	}
	if c.Speed.MinMs <= 0 || c.Speed.BaseMs < c.Speed.MinMs {
		problems = append(problems, "speed needs 0 < min_ms <= base_ms")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
