package tetris

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Visual characters for rendering. Each board cell is two columns wide so
// squares look square in a terminal.
const (
	blockGlyph = '█'
	ghostGlyph = '░'
	emptyGlyph = '·'
)

const (
	cellWidth  = 2
	panelWidth = 16
	panelGap   = 2
	maxPreview = 3 // preview pieces drawn in the side panel
)

// MinScreenSize returns the smallest terminal that fits the board and panel.
func (g *Game) MinScreenSize() (int, int) {
	rules := g.engine.Rules()
	w := rules.Width*cellWidth + 2 + panelGap + panelWidth
	h := rules.Height + 2
	return w, h
}

// boardRect returns the bordered playfield rectangle, centered on screen.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	rules := g.engine.Rules()
	bw := rules.Width*cellWidth + 2
	bh := rules.Height + 2
	total := bw + panelGap + panelWidth
	x := (dst.Width() - total) / 2
	y := (dst.Height() - bh) / 2
	return core.NewRect(max(0, x), max(0, y), bw, bh)
}

// Render draws the playfield, side panel and state overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		minW, minH := g.MinScreenSize()
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	snap := g.engine.Snapshot()
	board := g.boardRect(dst)

	g.renderBoard(dst, board, snap)
	g.renderPanel(dst, core.NewRect(board.Right()+panelGap, board.Y, panelWidth, board.H), snap)
	g.renderOverlay(dst, board, snap)
}

// renderBoard draws the border, locked cells, ghost and active piece.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect, snap Snapshot) {
	dst.DrawBoxColored(r, core.ColorGray)
	inner := r.Inner()

	for row := 0; row < snap.Height; row++ {
		for col := 0; col < snap.Width; col++ {
			x := inner.X + col*cellWidth
			y := inner.Y + row
			cell := snap.Grid[row][col]
			if cell.Filled {
				drawBlock(dst, x, y, blockGlyph, cell.Color)
			} else {
				dst.SetColored(x, y, ' ', core.ColorDefault)
				dst.SetColored(x+1, y, emptyGlyph, core.ColorGray)
			}
		}
	}

	if snap.Status.Terminal() {
		return
	}

	if snap.Ghost.Row != snap.Current.Row {
		for _, c := range snap.Ghost.Cells() {
			drawBlock(dst, inner.X+c.Col*cellWidth, inner.Y+c.Row, ghostGlyph, core.ColorGray)
		}
	}
	for _, c := range snap.Current.Cells() {
		drawBlock(dst, inner.X+c.Col*cellWidth, inner.Y+c.Row, blockGlyph, snap.Current.Color())
	}
}

func drawBlock(dst *core.Screen, x, y int, glyph rune, c core.Color) {
	dst.SetColored(x, y, glyph, c)
	dst.SetColored(x+1, y, glyph, c)
}

// drawMini draws a piece in its spawn orientation with its top-left at (x, y).
func drawMini(dst *core.Screen, x, y int, t PieceType, c core.Color) {
	cells := ShapeCells(t, Rotation0)
	top := cells[0].Row
	for _, p := range cells {
		top = min(top, p.Row)
	}
	for _, p := range cells {
		drawBlock(dst, x+p.Col*cellWidth, y+p.Row-top, blockGlyph, c)
	}
}

// renderPanel draws next pieces, hold slot and stats.
func (g *Game) renderPanel(dst *core.Screen, r core.Rect, snap Snapshot) {
	y := r.Y

	dst.DrawTextColored(r.X, y, "NEXT", core.ColorBrightWhite)
	y++
	for i, t := range snap.Preview {
		if i >= maxPreview {
			break
		}
		drawMini(dst, r.X, y, t, t.Color())
		y += 3
	}

	rules := g.engine.Rules()
	if rules.Hold {
		y++
		dst.DrawTextColored(r.X, y, "HOLD", core.ColorBrightWhite)
		y++
		if snap.HasHold {
			color := snap.Hold.Color()
			if snap.HoldUsed {
				color = core.ColorGray
			}
			drawMini(dst, r.X, y, snap.Hold, color)
		}
		y += 3
	}

	stats := []string{
		fmt.Sprintf("SCORE %d", snap.Score),
		fmt.Sprintf("LEVEL %d", snap.Level),
	}
	if rules.GoalLines > 0 {
		stats = append(stats, fmt.Sprintf("LINES %d/%d", snap.Lines, rules.GoalLines))
	} else {
		stats = append(stats, fmt.Sprintf("LINES %d", snap.Lines))
	}
	if snap.Combo > 1 {
		stats = append(stats, fmt.Sprintf("COMBO x%d", snap.Combo))
	}
	for _, s := range stats {
		if y >= r.Bottom() {
			return
		}
		dst.DrawText(r.X, y, s)
		y++
	}
}

// renderOverlay draws state messages over the board.
func (g *Game) renderOverlay(dst *core.Screen, board core.Rect, snap Snapshot) {
	switch snap.Status {
	case StatusPaused:
		drawCenteredBox(dst, board, "PAUSED", "P to resume")
	case StatusGameOver:
		drawCenteredBox(dst, board, "GAME OVER", fmt.Sprintf("Score %d  R: retry", snap.Score))
	case StatusWon:
		drawCenteredBox(dst, board, "YOU WIN!", fmt.Sprintf("Score %d  R: retry", snap.Score))
	}
}

// drawCenteredBox draws a message box centered on area.
func drawCenteredBox(dst *core.Screen, area core.Rect, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := area.CenterIn(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightYellow)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}

// FormatSnapshot renders a snapshot as plain text: '#' for locked cells,
// '@' for the active piece and '.' for empty, followed by a stats line.
func FormatSnapshot(s Snapshot) string {
	var sb strings.Builder
	active := make(map[Point]bool, 4)
	if !s.Status.Terminal() {
		for _, c := range s.Current.Cells() {
			active[c] = true
		}
	}

	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			switch {
			case active[Point{Row: row, Col: col}]:
				sb.WriteByte('@')
			case s.Grid[row][col].Filled:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	preview := make([]string, len(s.Preview))
	for i, t := range s.Preview {
		preview[i] = t.String()
	}
	hold := "-"
	if s.HasHold {
		hold = s.Hold.String()
	}
	fmt.Fprintf(&sb, "status=%s score=%d level=%d lines=%d next=%s hold=%s\n",
		s.Status, s.Score, s.Level, s.Lines, strings.Join(preview, ","), hold)
	return sb.String()
}
