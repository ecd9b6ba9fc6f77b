package tetris

// Snapshot is a read-only copy of the engine state for renderers.
// Mutating it never affects the engine.
type Snapshot struct {
	Width  int
	Height int
	Grid   [][]Cell // locked cells only, [row][col]

	Current Piece
	Ghost   Piece // Current dropped to its landing row
	Next    PieceType
	Preview []PieceType // upcoming pieces, Next first

	Hold     PieceType
	HasHold  bool
	HoldUsed bool

	Score  int
	Level  int
	Lines  int
	Combo  int
	Status Status
	Ticks  uint64
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	preview := make([]PieceType, len(e.queue))
	copy(preview, e.queue)
	return Snapshot{
		Width:    e.board.Width(),
		Height:   e.board.Height(),
		Grid:     e.board.Cells(),
		Current:  e.current,
		Ghost:    e.Ghost(),
		Next:     preview[0],
		Preview:  preview,
		Hold:     e.hold,
		HasHold:  e.hasHold,
		HoldUsed: e.holdUsed,
		Score:    e.score,
		Level:    e.level,
		Lines:    e.lines,
		Combo:    e.combo,
		Status:   e.status,
		Ticks:    e.ticks,
	}
}

// Composite returns the grid with the active piece drawn in, as a renderer
// would show it. Terminal states show the board alone.
func (s Snapshot) Composite() [][]Cell {
	out := make([][]Cell, len(s.Grid))
	for row := range s.Grid {
		out[row] = make([]Cell, len(s.Grid[row]))
		copy(out[row], s.Grid[row])
	}
	if s.Status.Terminal() {
		return out
	}
	for _, c := range s.Current.Cells() {
		if c.Row >= 0 && c.Row < s.Height && c.Col >= 0 && c.Col < s.Width {
			out[c.Row][c.Col] = Occupied(s.Current.Color())
		}
	}
	return out
}

// Hash returns a simple hash of the snapshot for determinism checks.
func (s Snapshot) Hash() uint64 {
	h := s.Ticks
	h = h*31 + uint64(s.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Level)           //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Lines)           //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Combo)           //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Status)          //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Current.Type)    //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Current.Row)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Current.Col)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Current.Rotation)

	for _, t := range s.Preview {
		h = h*31 + uint64(t)
	}
	if s.HasHold {
		h = h*31 + uint64(s.Hold) + 1
	}

	for _, row := range s.Grid {
		for _, c := range row {
			v := uint64(0)
			if c.Filled {
				v = uint64(c.Color) + 1
			}
			h = h*31 + v
		}
	}
	return h
}
