package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default rules.
// Must stay in sync with defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Rules: RulesConfig{
			Preview:    3,
			Hold:       true,
			WallKicks:  true,
			Randomizer: "bag",
		},
		Scoring: ScoringConfig{
			Single:   40,
			Double:   100,
			Triple:   300,
			Tetris:   1200,
			SoftDrop: 1,
			HardDrop: 2,
			Combo:    50,
		},
		Levels: LevelsConfig{
			StartLevel:    0,
			LinesPerLevel: 10,
			MarathonLines: 150,
			Progression:   true,
		},
		Speed: SpeedConfig{
			BaseMs: 1000,
			StepMs: 100,
			MinMs:  100,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
