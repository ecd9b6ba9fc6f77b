package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [marathon|endless]",
	Short: "Play a game",
	Long: `Start playing Tetris. Marathon ends after the configured line goal,
endless runs until the stack reaches the top.

Controls:
  Left/Right, A/D, H/L  - Move
  Up, X, W              - Rotate clockwise
  Z                     - Rotate counter-clockwise
  Down, S, J            - Soft drop
  Space                 - Hard drop
  C                     - Hold
  P/Esc                 - Pause
  R                     - Restart (after game over)
  B                     - Back (when paused or over)
  Ctrl+S                - Save a screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Start at level 0 with a longer preview
  normal - Start at level 3
  hard   - Start at level 8 with a single preview
  fixed  - No level progression

Examples:
  tetris play
  tetris play endless
  tetris play --difficulty hard
  tetris play --level 5
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Start level (overrides config and difficulty)")
}

// modeID resolves an optional mode argument to a registry ID.
func modeID(args []string) (string, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	mode, err := tetris.ParseMode(name)
	if err != nil {
		return "", err
	}
	if mode == tetris.ModeEndless {
		return tetris.IDEndless, nil
	}
	return tetris.IDMarathon, nil
}

// applyGameFlags passes --config and --difficulty to the game package,
// validating both before any terminal takeover.
func applyGameFlags() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadTetris(flagConfig); err != nil {
			return err
		}
	}
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	return nil
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := modeID(args)
	if err != nil {
		return fmt.Errorf("%w (run 'tetris list' to see available modes)", err)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closer, err := newLocalLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if flagLevel >= 0 {
		if g, ok := game.(*tetris.Game); ok {
			g.SetStartLevel(flagLevel)
		}
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
