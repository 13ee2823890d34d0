package constants

// Scratch Grid
const (
	// GridSteps is the fixed number of coverage cells per axis
	GridSteps = 30

	// GridCells is the total number of coverage cells
	GridCells = GridSteps * GridSteps

	// BrushFactor scales the stroke width into the square brush radius
	BrushFactor = 0.6

	// ProgressStep is the minimum ratio change published to the presentation layer
	ProgressStep = 0.01
)

// Scratch Defaults
const (
	// StrokeWidth is the visual scratch stroke width in surface pixels
	StrokeWidth = 34.0

	// RevealThreshold is the coverage ratio at which the outcome counts as revealed
	RevealThreshold = 0.5

	// CellPixelWidth is the surface pixel width of one terminal cell
	CellPixelWidth = 10.0

	// CellPixelHeight is the surface pixel height of one terminal cell
	CellPixelHeight = 20.0
)

// Presentation
const (
	// ProgressMinFill is the minimum progress bar fill in percent
	ProgressMinFill = 8
)
