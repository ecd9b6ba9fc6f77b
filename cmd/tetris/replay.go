package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var flagTrace bool

var replayCmd = &cobra.Command{
	Use:   "replay <file.yaml>",
	Short: "Run a scripted game without a terminal UI",
	Long: `Feed a recorded list of events to a fresh engine and print the final
board. The same script and rules always produce the same output, which
makes replays useful for bug reports and regression checks.

Script format:

  seed: 42
  mode: endless        # marathon (default) or endless
  events:
    - left
    - rotate_cw
    - tick 20          # repeat counts are allowed
    - hard_drop

Events: tick, left, right, rotate_cw, rotate_ccw, soft_drop, hard_drop,
hold, pause, resume, reset.

The --seed flag, when set, overrides the script seed. Rules come from
--config and --difficulty like 'tetris play'.

Examples:
  tetris replay game.yaml
  tetris replay game.yaml --trace`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules config YAML")
	replayCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	replayCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print every event's outcome")
}

func runReplay(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	script, err := tetris.ParseScript(data)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		script.Seed = flagSeed
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyTetrisPreset(&cfg, preset)

	mode, _ := tetris.ParseMode(script.Mode) // validated by ParseScript
	engine, outcomes, err := script.Replay(tetris.RulesFromConfig(cfg, mode))
	if err != nil {
		return err
	}

	if flagTrace {
		events, _ := script.Expand()
		for i, o := range outcomes {
			fmt.Printf("%4d %-10s accepted=%t locked=%t lines=%d points=%d status=%s\n",
				i+1, eventName(events[i]), o.Accepted, o.Locked, o.LinesCleared, o.Points, o.Status)
		}
		fmt.Println()
	}

	fmt.Print(tetris.FormatSnapshot(engine.Snapshot()))
	return nil
}

func eventName(ev tetris.Event) string {
	if ev.Kind == tetris.EventTick {
		return "tick"
	}
	return ev.Command.String()
}
