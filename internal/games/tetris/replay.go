package tetris

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is returned for replay scripts that cannot be run.
var ErrInvalidScript = errors.New("invalid replay script")

// Script is a recorded game: a seed, a mode and the events fed to the
// engine in order. Each event line is "tick" or a command name, optionally
// followed by a repeat count ("tick 30").
type Script struct {
	Seed   int64    `yaml:"seed"`
	Mode   string   `yaml:"mode"`
	Events []string `yaml:"events"`
}

// ParseScript decodes a YAML replay script. Unknown keys are rejected.
func ParseScript(data []byte) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if _, err := ParseMode(s.Mode); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if _, err := s.countEvents(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// ParseMode accepts a mode name or ID. Empty means marathon.
func ParseMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "marathon", IDMarathon:
		return ModeMarathon, nil
	case "endless", IDEndless:
		return ModeEndless, nil
	}
	return ModeMarathon, fmt.Errorf("unknown mode %q", s)
}

// Replay script limits.
const (
	MaxRepeatCount  = 100000
	MaxScriptEvents = 1000000
)

// Expand turns event lines into engine events, applying repeat counts.
func (s Script) Expand() ([]Event, error) {
	total, err := s.countEvents()
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, total)
	for i, line := range s.Events {
		ev, count, _ := parseEventLine(i, line) // checked by countEvents
		for _i := 0; _i < count; _i++ {
			events = append(events, ev)
		}
	}
	return events, nil
}

// countEvents validates every line and returns the expanded length.
func (s Script) countEvents() (int, error) {
	total := 0
	for i, line := range s.Events {
		_, count, err := parseEventLine(i, line)
		if err != nil {
			return 0, err
		}
		total += count
		if total > MaxScriptEvents {
			return 0, fmt.Errorf("%w: more than %d events", ErrInvalidScript, MaxScriptEvents)
		}
	}
	return total, nil
}

// parseEventLine parses one "event [count]" line; i is its zero-based index.
func parseEventLine(i int, line string) (Event, int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields) > 2 {
		return Event{}, 0, fmt.Errorf("%w: event %d: malformed %q", ErrInvalidScript, i+1, line)
	}
	ev, err := ParseEvent(fields[0])
	if err != nil {
		return Event{}, 0, fmt.Errorf("%w: event %d: %v", ErrInvalidScript, i+1, err)
	}
	count := 1
	if len(fields) == 2 {
		count, err = strconv.Atoi(fields[1])
		if err != nil || count < 1 || count > MaxRepeatCount {
			return Event{}, 0, fmt.Errorf("%w: event %d: repeat count %q not in [1, %d]",
				ErrInvalidScript, i+1, fields[1], MaxRepeatCount)
		}
	}
	return ev, count, nil
}

// Replay runs the script on a fresh engine built from rules and returns
// the engine with one outcome per expanded event. Events after the game
// ends are still applied and rejected, so the slice always lines up.
func (s Script) Replay(rules Rules) (*Engine, []Outcome, error) {
	events, err := s.Expand()
	if err != nil {
		return nil, nil, err
	}
	e, err := NewEngine(rules, s.Seed)
	if err != nil {
		return nil, nil, err
	}

	outcomes := make([]Outcome, len(events))
	for i, ev := range events {
		outcomes[i] = e.Step(ev)
	}
	return e, outcomes, nil
}
