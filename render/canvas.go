package render

import "github.com/gdamore/tcell/v2"

// Canvas is the drawing surface shared by tcell.Screen and BufferScreen
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// drawText writes s starting at (x, y), clipped by the canvas
func drawText(c Canvas, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// drawCentered writes s centered on row y within [left, left+width)
func drawCentered(c Canvas, left, width, y int, s string, style tcell.Style) {
	n := len([]rune(s))
	x := left + (width-n)/2
	if x < left {
		x = left
	}
	drawText(c, x, y, s, style)
}

// fill paints a rectangle with one rune
func fill(c Canvas, x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.SetContent(col, row, r, nil, style)
		}
	}
}
