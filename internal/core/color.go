package core

// Color is the foreground color of a screen cell, expressed as a palette
// index that the platform layer maps to ANSI 256-color codes.
type Color uint8

// Palette used by the playfield, the side panel and overlays.
// ColorDefault renders with the terminal's own foreground.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
