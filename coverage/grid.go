package coverage

import (
	"math"

	"github.com/lixenwraith/scratch-toss/constants"
)

// Grid records which cells of a fixed N×N grid laid over a rectangular surface have been touched
// Cell coordinates are always within [0, N); targets outside the grid are discarded
type Grid struct {
	cells [constants.GridSteps][constants.GridSteps]bool
	count int

	// Surface-derived cell size in pixels, zero until configured
	cellWidth  float64
	cellHeight float64
}

// NewGrid creates an unconfigured grid
func NewGrid() *Grid {
	return &Grid{}
}

// Configure derives the cell size from the measured surface
// Non-positive or non-finite dimensions leave the grid unconfigured
func (g *Grid) Configure(surfaceWidth, surfaceHeight float64) {
	if !validExtent(surfaceWidth) || !validExtent(surfaceHeight) {
		g.cellWidth, g.cellHeight = 0, 0
		return
	}
	g.cellWidth = surfaceWidth / constants.GridSteps
	g.cellHeight = surfaceHeight / constants.GridSteps
}

// Configured reports whether coordinate mapping is defined
func (g *Grid) Configured() bool {
	return g.cellWidth > 0 && g.cellHeight > 0
}

// CellSize returns the cell dimensions in pixels
func (g *Grid) CellSize() (width, height float64) {
	return g.cellWidth, g.cellHeight
}

// BrushRadius returns the square brush radius in cells for the given stroke width
func (g *Grid) BrushRadius(strokeWidth float64) int {
	if !g.Configured() || strokeWidth <= 0 {
		return 0
	}
	return int(math.Ceil(strokeWidth * constants.BrushFactor / math.Min(g.cellWidth, g.cellHeight)))
}

// MarkTouch marks the square neighborhood of the cell under (x, y), clipped to grid bounds
// Returns the number of cells newly marked
func (g *Grid) MarkTouch(x, y, strokeWidth float64) int {
	if !g.Configured() || !finite(x) || !finite(y) {
		return 0
	}

	radius := g.BrushRadius(strokeWidth)
	fcol := math.Floor(x / g.cellWidth)
	frow := math.Floor(y / g.cellHeight)

	// Brush entirely outside the grid, also keeps the int conversion in range
	reach := float64(radius)
	if fcol+reach < 0 || frow+reach < 0 || fcol-reach >= constants.GridSteps || frow-reach >= constants.GridSteps {
		return 0
	}
	col, row := int(fcol), int(frow)

	// Clip the neighborhood once instead of bounds-checking every cell
	rowStart, rowEnd := max(row-radius, 0), min(row+radius, constants.GridSteps-1)
	colStart, colEnd := max(col-radius, 0), min(col+radius, constants.GridSteps-1)

	marked := 0
	for r := rowStart; r <= rowEnd; r++ {
		for c := colStart; c <= colEnd; c++ {
			if g.cells[r][c] {
				continue
			}
			g.cells[r][c] = true
			marked++
		}
	}
	g.count += marked
	return marked
}

// Touched reports whether a cell is marked; out-of-range cells are never marked
func (g *Grid) Touched(row, col int) bool {
	if row < 0 || col < 0 || row >= constants.GridSteps || col >= constants.GridSteps {
		return false
	}
	return g.cells[row][col]
}

// Count returns the number of marked cells
func (g *Grid) Count() int {
	return g.count
}

// CoverageRatio returns the marked fraction of the grid in [0, 1]
func (g *Grid) CoverageRatio() float64 {
	return float64(g.count) / constants.GridCells
}

// Reset clears all marked cells and keeps the surface configuration
func (g *Grid) Reset() {
	g.cells = [constants.GridSteps][constants.GridSteps]bool{}
	g.count = 0
}

func validExtent(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
