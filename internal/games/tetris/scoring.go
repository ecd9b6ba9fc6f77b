package tetris

import (
	"fmt"
	"time"
)

// Scoring is the points table. All line-clear and combo awards are
// multiplied by (level + 1).
type Scoring struct {
	// Lines[n] is the base award for clearing n rows with one lock.
	// Index 0 is unused.
	Lines    [5]int
	SoftDrop int // points per row of soft drop
	HardDrop int // points per row of hard drop
	Combo    int // base bonus per consecutive clearing lock after the first
}

// DefaultScoring is the classic 40/100/300/1200 table with guideline
// drop points and combo bonus.
func DefaultScoring() Scoring {
	return Scoring{
		Lines:    [5]int{0, 40, 100, 300, 1200},
		SoftDrop: 1,
		HardDrop: 2,
		Combo:    50,
	}
}

// problems lists the reasons the table cannot keep scores non-negative or
// does not rank a tetris above four singles.
func (s Scoring) problems() []string {
	var out []string
	if s.SoftDrop < 0 || s.HardDrop < 0 || s.Combo < 0 {
		out = append(out, "drop and combo points must not be negative")
	}
	for n := 1; n < len(s.Lines); n++ {
		if s.Lines[n] < 0 {
			out = append(out, fmt.Sprintf("%d-line award %d is negative", n, s.Lines[n]))
		}
		if n > 1 && s.Lines[n] < s.Lines[n-1] {
			out = append(out, fmt.Sprintf("%d-line award %d is below the %d-line award", n, s.Lines[n], n-1))
		}
	}
	if s.Lines[4] <= 4*s.Lines[1] {
		out = append(out, fmt.Sprintf("4-line award %d must exceed four singles (%d)", s.Lines[4], 4*s.Lines[1]))
	}
	return out
}

// LineClear returns the award for clearing n rows at the given level.
func (s Scoring) LineClear(n, level int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(s.Lines) {
		n = len(s.Lines) - 1
	}
	return s.Lines[n] * (level + 1)
}

// ComboBonus returns the bonus for the combo-th consecutive clearing lock.
// The first clear in a chain (combo == 1) earns nothing extra.
func (s Scoring) ComboBonus(combo, level int) int {
	if combo <= 1 {
		return 0
	}
	return s.Combo * (combo - 1) * (level + 1)
}

// Speed is the gravity curve: one row per Interval(level).
type Speed struct {
	Base time.Duration // interval at level 0
	Step time.Duration // reduction per level
	Min  time.Duration // floor
}

// DefaultSpeed is max(100ms, 1000ms - level*100ms).
func DefaultSpeed() Speed {
	return Speed{
		Base: time.Second,
		Step: 100 * time.Millisecond,
		Min:  100 * time.Millisecond,
	}
}

// Interval returns the gravity interval at the given level.
func (s Speed) Interval(level int) time.Duration {
	d := s.Base - time.Duration(level)*s.Step
	if d < s.Min {
		return s.Min
	}
	return d
}
