package constants

// UI Layout Constants
const (
	// CardMaxCols is the scratch card width in terminal cells (300px at 10px per cell)
	CardMaxCols = 30

	// CardMaxRows is the scratch card height in terminal cells (300px at 20px per cell)
	CardMaxRows = 15

	// CardMinCols and CardMinRows below which the layout refuses to draw
	CardMinCols = 8
	CardMinRows = 4

	// ContentTop is the first row below the title and subtitle
	ContentTop = 3

	// ChromeRows is the space reserved under the card: bar, text, gap, toast, button, margin
	ChromeRows = 6

	// ButtonWidth is the on-screen button width
	ButtonWidth = 20

	// CoinRadiusX and CoinRadiusY size the coin ellipse in cells
	CoinRadiusX = 8
	CoinRadiusY = 4

	// CoinFlipTurns is the number of full rotations during the flip animation
	CoinFlipTurns = 3

	// ConfettiPieces is the number of confetti glyphs drawn per celebration frame
	ConfettiPieces = 28

	// ModalWidth is the maximum celebration modal width
	ModalWidth = 36
)

// UI Text
const (
	TextTossButton   = "Toss the coin"
	TextFlipping     = "Flipping…"
	TextBackButton   = "Back to toss"
	TextScratchToast = "Scratch the card to see the toss!"
	TextTooSmall     = "Enlarge the terminal to play"
)

// Default labels
const (
	DefaultTitle      = "Match Toss"
	DefaultHeadsLabel = "Bharat"
	DefaultTailsLabel = "Paisa"
)
