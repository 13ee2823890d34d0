package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one composited screen cell
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// RenderBuffer is an off-screen frame with dirty tracking against the last flush
type RenderBuffer struct {
	cells  []Cell
	shown  []Cell // Last frame written to the screen
	width  int
	height int
	forced bool // Next flush rewrites every cell
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.shown = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
		b.shown = b.shown[:size]
	}
	b.width = width
	b.height = height
	b.forced = true
	b.Clear()
}

// Clear resets all cells to blank using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Style: StyleBackground}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// inBounds returns true if in buffer bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell, ignoring out-of-bounds coordinates
func (b *RenderBuffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at (x, y), a zero Cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Bounds returns buffer dimensions
func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// Row returns the runes of row y as a string
func (b *RenderBuffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Contains reports whether any row holds s
func (b *RenderBuffer) Contains(s string) bool {
	for y := 0; y < b.height; y++ {
		if strings.Contains(b.Row(y), s) {
			return true
		}
	}
	return false
}

// Flush writes cells changed since the previous flush and returns how many were written
func (b *RenderBuffer) Flush(c Canvas) int {
	written := 0
	for i, cell := range b.cells {
		if !b.forced && b.shown[i] == cell {
			continue
		}
		c.SetContent(i%b.width, i/b.width, cell.Rune, nil, cell.Style)
		b.shown[i] = cell
		written++
	}
	b.forced = false
	return written
}

// Invalidate forces the next flush to rewrite every cell
func (b *RenderBuffer) Invalidate() {
	b.forced = true
}
