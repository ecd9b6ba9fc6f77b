package tetris

// SRS wall kick offsets, tried in order after the in-place rotation fails.
// Values are (row, col) with rows growing downward, so the guideline's
// "+1 up" appears here as Row -1.
type kickKey struct {
	from, to Rotation
}

var jlstzKicks = map[kickKey][]Point{
	{Rotation0, RotationR}: {{0, -1}, {-1, -1}, {2, 0}, {2, -1}},
	{RotationR, Rotation0}: {{0, 1}, {1, 1}, {-2, 0}, {-2, 1}},
	{RotationR, Rotation2}: {{0, 1}, {1, 1}, {-2, 0}, {-2, 1}},
	{Rotation2, RotationR}: {{0, -1}, {-1, -1}, {2, 0}, {2, -1}},
	{Rotation2, RotationL}: {{0, 1}, {-1, 1}, {2, 0}, {2, 1}},
	{RotationL, Rotation2}: {{0, -1}, {1, -1}, {-2, 0}, {-2, -1}},
	{RotationL, Rotation0}: {{0, -1}, {1, -1}, {-2, 0}, {-2, -1}},
	{Rotation0, RotationL}: {{0, 1}, {-1, 1}, {2, 0}, {2, 1}},
}

var iKicks = map[kickKey][]Point{
	{Rotation0, RotationR}: {{0, -2}, {0, 1}, {1, -2}, {-2, 1}},
	{RotationR, Rotation0}: {{0, 2}, {0, -1}, {-1, 2}, {2, -1}},
	{RotationR, Rotation2}: {{0, -1}, {0, 2}, {-2, -1}, {1, 2}},
	{Rotation2, RotationR}: {{0, 1}, {0, -2}, {2, 1}, {-1, -2}},
	{Rotation2, RotationL}: {{0, 2}, {0, -1}, {-1, 2}, {2, -1}},
	{RotationL, Rotation2}: {{0, -2}, {0, 1}, {1, -2}, {-2, 1}},
	{RotationL, Rotation0}: {{0, 1}, {0, -2}, {2, 1}, {-1, -2}},
	{Rotation0, RotationL}: {{0, -1}, {0, 2}, {-2, -1}, {1, 2}},
}

// kickOffsets returns the wall kick tests for rotating t from one state to
// the next. O never kicks.
func kickOffsets(t PieceType, from, to Rotation) []Point {
	switch t {
	case PieceO:
		return nil
	case PieceI:
		return iKicks[kickKey{from, to}]
	default:
		return jlstzKicks[kickKey{from, to}]
	}
}
