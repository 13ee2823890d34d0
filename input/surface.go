package input

// Rect is a screen-cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Surface describes the clickable regions of the current layout
type Surface struct {
	Card   Rect
	Button Rect

	// Pixel size of one terminal cell on the scratch surface
	CellPxW, CellPxH float64
}

// Pixels returns the card size in surface pixels
func (s Surface) Pixels() (w, h float64) {
	return float64(s.Card.W) * s.CellPxW, float64(s.Card.H) * s.CellPxH
}

// toPixels maps a screen cell inside the card to the pixel at the cell center
func (s Surface) toPixels(x, y int) (px, py float64, col, row int) {
	col = x - s.Card.X
	row = y - s.Card.Y
	px = (float64(col) + 0.5) * s.CellPxW
	py = (float64(row) + 0.5) * s.CellPxH
	return px, py, col, row
}
