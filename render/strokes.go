package render

import (
	"math"

	"github.com/google/uuid"
)

// StrokeHistory remembers which card cells the pointer has scratched in the current session
// It only drives the overlay drawing; reveal progress is measured by the coverage grid
type StrokeHistory struct {
	cols, rows int
	cells      []bool
	count      int
	session    uuid.UUID

	// Brush half-extent in cells
	rx, ry int
}

// NewStrokeHistory creates an empty history for a cols x rows card
func NewStrokeHistory(cols, rows int, strokePx, cellPxW, cellPxH float64) *StrokeHistory {
	h := &StrokeHistory{}
	h.Resize(cols, rows, strokePx, cellPxW, cellPxH)
	return h
}

// Resize reallocates for a new card size and clears the history
func (h *StrokeHistory) Resize(cols, rows int, strokePx, cellPxW, cellPxH float64) {
	h.cols = max(cols, 0)
	h.rows = max(rows, 0)
	h.cells = make([]bool, h.cols*h.rows)
	h.count = 0
	h.rx, h.ry = 0, 0
	if cellPxW > 0 && cellPxH > 0 && strokePx > 0 {
		h.rx = int(math.Round(strokePx / 2 / cellPxW))
		h.ry = int(math.Round(strokePx / 2 / cellPxH))
	}
}

// Mark scratches the brush footprint around (col, row) for session
// A different session clears the previous strokes first
func (h *StrokeHistory) Mark(session uuid.UUID, col, row int) {
	if session != h.session {
		h.Clear()
		h.session = session
	}
	for r := row - h.ry; r <= row+h.ry; r++ {
		for c := col - h.rx; c <= col+h.rx; c++ {
			if c < 0 || c >= h.cols || r < 0 || r >= h.rows {
				continue
			}
			idx := r*h.cols + c
			if !h.cells[idx] {
				h.cells[idx] = true
				h.count++
			}
		}
	}
}

// Sync drops strokes that belong to a session other than session
func (h *StrokeHistory) Sync(session uuid.UUID) {
	if session != h.session {
		h.Clear()
		h.session = session
	}
}

// Scratched reports whether (col, row) has been scratched
func (h *StrokeHistory) Scratched(col, row int) bool {
	if col < 0 || col >= h.cols || row < 0 || row >= h.rows {
		return false
	}
	return h.cells[row*h.cols+col]
}

// Count returns the number of scratched cells
func (h *StrokeHistory) Count() int {
	return h.count
}

// Clear forgets every stroke
func (h *StrokeHistory) Clear() {
	clear(h.cells)
	h.count = 0
}
