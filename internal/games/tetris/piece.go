package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Rotation is one of the four SRS orientation states.
type Rotation uint8

const (
	Rotation0 Rotation = iota // spawn state
	RotationR                 // one turn clockwise
	Rotation2                 // two turns
	RotationL                 // one turn counter-clockwise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotation0:
		return "0"
	case RotationR:
		return "R"
	case Rotation2:
		return "2"
	default:
		return "L"
	}
}

// Direction is a rotation direction.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Piece is an immutable tetromino placement: a type, a rotation state and
// the board position of the top-left corner of its bounding box.
// Movement methods return new values; the board validates them.
type Piece struct {
	Type     PieceType
	Rotation Rotation
	Row      int
	Col      int
}

// SpawnPiece places a piece of type t in its spawn state at the top of a
// board of the given width, horizontally centered (columns 3-6 for I on a
// 10-wide board, 4-5 for O, 3-5 for the rest).
func SpawnPiece(t PieceType, boardWidth int) Piece {
	return Piece{
		Type:     t,
		Rotation: Rotation0,
		Row:      0,
		Col:      (boardWidth - boxSize[t]) / 2,
	}
}

// Cells returns the four board cells the piece occupies.
func (p Piece) Cells() [4]Point {
	cells := ShapeCells(p.Type, p.Rotation)
	for i := range cells {
		cells[i].Row += p.Row
		cells[i].Col += p.Col
	}
	return cells
}

// Rotated returns the piece turned one step in dir about its bounding box.
func (p Piece) Rotated(dir Direction) Piece {
	p.Rotation = Rotation((int(p.Rotation) + int(dir) + 4) % 4)
	return p
}

// Translated returns the piece shifted by the given offset.
func (p Piece) Translated(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// Color returns the color the piece locks into the board with.
func (p Piece) Color() core.Color {
	return p.Type.Color()
}

// Bottom returns the lowest row the piece occupies.
func (p Piece) Bottom() int {
	bottom := p.Row
	for _, c := range p.Cells() {
		bottom = max(bottom, c.Row)
	}
	return bottom
}
