package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Cell is one playfield square: empty, or filled with a color.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Empty is the empty cell.
var Empty = Cell{}

// Occupied returns a filled cell of the given color.
func Occupied(c core.Color) Cell {
	return Cell{Filled: true, Color: c}
}

// Board is the fixed-size playfield where locked pieces accumulate.
// Row 0 is the top. Reads outside the grid report Empty and writes
// outside it are dropped, so no out-of-bounds cell is ever touched.
type Board struct {
	width  int
	height int
	cells  [][]Cell
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]Cell, height)
	for row := range b.cells {
		b.cells[row] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Cell returns the cell at (row, col).
func (b *Board) Cell(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(row, col int, c Cell) {
	if !b.InBounds(row, col) {
		return
	}
	b.cells[row][col] = c
}

// IsValidPosition reports whether every cell of p is on the board and empty.
func (b *Board) IsValidPosition(p Piece) bool {
	for _, c := range p.Cells() {
		if !b.InBounds(c.Row, c.Col) || b.cells[c.Row][c.Col].Filled {
			return false
		}
	}
	return true
}

// Lock merges the piece into the grid. The caller guarantees the position
// was valid; cells that fall off the board are skipped.
func (b *Board) Lock(p Piece) {
	color := p.Color()
	for _, c := range p.Cells() {
		b.Set(c.Row, c.Col, Occupied(color))
	}
}

// IsRowFull reports whether every cell in the row is filled.
func (b *Board) IsRowFull(row int) bool {
	if row < 0 || row >= b.height {
		return false
	}
	for _, c := range b.cells[row] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// IsRowEmpty reports whether no cell in the row is filled.
func (b *Board) IsRowEmpty(row int) bool {
	if row < 0 || row >= b.height {
		return true
	}
	for _, c := range b.cells[row] {
		if c.Filled {
			return false
		}
	}
	return true
}

// FullRows returns the indexes of all full rows, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for row := 0; row < b.height; row++ {
		if b.IsRowFull(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// ClearFullLines removes every full row, shifts the rows above down to fill
// the gap and inserts empty rows at the top. Returns the number removed.
// The board keeps its dimensions.
func (b *Board) ClearFullLines() int {
	cleared := 0
	write := b.height - 1
	for read := b.height - 1; read >= 0; read-- {
		if b.IsRowFull(read) {
			cleared++
			continue
		}
		if write != read {
			b.cells[write], b.cells[read] = b.cells[read], b.cells[write]
		}
		write--
	}
	for row := write; row >= 0; row-- {
		clear(b.cells[row])
	}
	return cleared
}

// OccupiedCount returns the number of filled cells.
func (b *Board) OccupiedCount() int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c.Filled {
				n++
			}
		}
	}
	return n
}

// Cells returns a deep copy of the grid, indexed [row][col].
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.height)
	for row := range b.cells {
		out[row] = make([]Cell, b.width)
		copy(out[row], b.cells[row])
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{width: b.width, height: b.height, cells: b.Cells()}
}

// Reset empties every cell.
func (b *Board) Reset() {
	for _, row := range b.cells {
		clear(row)
	}
}
