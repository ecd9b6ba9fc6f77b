package core

// RuntimeConfig is handed to a game on Reset.
// Screen size drives layout, TickRate converts gravity intervals into
// frames, and Seed makes piece sequences reproducible.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultTickRate is the platform frame rate used when none is configured.
const DefaultTickRate = 60

// DefaultConfig returns a RuntimeConfig sized for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
		Seed:     0,
	}
}

// GameState is the summary a game reports to the platform after each step.
// The platform uses it to decide when to save a score and which keys apply.
type GameState struct {
	Score    int  // Current score
	Lines    int  // Lines cleared so far
	Level    int  // Current level
	GameOver bool // Game has ended (topped out or goal reached)
	Paused   bool // Game is paused
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
