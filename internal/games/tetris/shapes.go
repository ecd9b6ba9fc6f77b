package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// PieceType identifies one of the seven tetrominoes.
type PieceType uint8

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceTypeCount is the number of distinct tetrominoes.
const PieceTypeCount = 7

// AllPieceTypes lists every tetromino in table order.
var AllPieceTypes = [PieceTypeCount]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

// String returns the single-letter name of the piece type.
func (t PieceType) String() string {
	if int(t) < len(pieceNames) {
		return pieceNames[t]
	}
	return "?"
}

// Valid reports whether t is one of the seven tetrominoes.
func (t PieceType) Valid() bool {
	return t < PieceTypeCount
}

// Color returns the guideline color of the piece type.
func (t PieceType) Color() core.Color {
	if !t.Valid() {
		return core.ColorDefault
	}
	return pieceColors[t]
}

var pieceNames = [PieceTypeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

var pieceColors = [PieceTypeCount]core.Color{
	PieceI: core.ColorBrightCyan,
	PieceO: core.ColorBrightYellow,
	PieceT: core.ColorMagenta,
	PieceS: core.ColorBrightGreen,
	PieceZ: core.ColorBrightRed,
	PieceJ: core.ColorBlue,
	PieceL: core.ColorOrange,
}

// ParsePieceType parses a single-letter piece name.
func ParsePieceType(s string) (PieceType, bool) {
	for i, name := range pieceNames {
		if name == s {
			return PieceType(i), true
		}
	}
	return 0, false
}

// Point is a cell position in board coordinates, row 0 at the top.
type Point struct {
	Row, Col int
}

// boxSize is the side of the square bounding box each type rotates in.
var boxSize = [PieceTypeCount]int{
	PieceI: 4,
	PieceO: 4,
	PieceT: 3,
	PieceS: 3,
	PieceZ: 3,
	PieceJ: 3,
	PieceL: 3,
}

// shapeTable holds the Super Rotation System states: for each type and
// rotation, the four occupied (row, col) offsets inside the bounding box.
// Rotation 0 is the spawn state; 1, 2, 3 follow clockwise.
// O has a single effective state repeated four times.
//
//	I: ....  ..#.  ....  .#..     T: .#.  .#.  ...  .#.
//	   ####  ..#.  ....  .#..        ###  .##  ###  ##.
//	   ....  ..#.  ####  .#..        ...  .#.  .#.  .#.
//	   ....  ..#.  ....  .#..
var shapeTable = [PieceTypeCount][4][4]Point{
	PieceI: {
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	},
	PieceO: {
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
	},
	PieceT: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	PieceS: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	PieceZ: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	PieceJ: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
	PieceL: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
}

// ShapeCells returns the cells of a piece type in a rotation state,
// relative to the top-left of its bounding box.
func ShapeCells(t PieceType, r Rotation) [4]Point {
	return shapeTable[t][r%4]
}
