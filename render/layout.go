package render

import (
	"github.com/lixenwraith/scratch-toss/constants"
	"github.com/lixenwraith/scratch-toss/input"
)

// Layout places every element for one terminal size
type Layout struct {
	Width, Height int

	TitleY    int
	SubtitleY int

	// Coin ellipse center and radii
	CoinX, CoinY   int
	CoinRX, CoinRY int

	Card      input.Rect
	ProgressY int // Bar row directly under the card
	CaptionY  int // Progress text row
	ToastY    int
	Button    input.Rect

	CellPxW, CellPxH float64
}

// NewLayout computes the layout for a width x height terminal
func NewLayout(width, height int, cellPxW, cellPxH float64) Layout {
	l := Layout{
		Width:     width,
		Height:    height,
		TitleY:    0,
		SubtitleY: 1,
		CellPxW:   cellPxW,
		CellPxH:   cellPxH,
	}

	cardW := min(constants.CardMaxCols, width-4)
	cardH := min(constants.CardMaxRows, height-constants.ContentTop-constants.ChromeRows)
	if cardW < constants.CardMinCols || cardH < constants.CardMinRows {
		return l
	}

	l.Card = input.Rect{X: (width - cardW) / 2, Y: constants.ContentTop, W: cardW, H: cardH}
	l.ProgressY = l.Card.Y + l.Card.H
	l.CaptionY = l.ProgressY + 1
	l.ToastY = height - 3
	l.Button = input.Rect{
		X: (width - constants.ButtonWidth) / 2,
		Y: height - 2,
		W: min(constants.ButtonWidth, width),
		H: 1,
	}

	l.CoinX = width / 2
	l.CoinY = l.Card.Y + l.Card.H/2
	l.CoinRX = min(constants.CoinRadiusX, cardW/2)
	l.CoinRY = min(constants.CoinRadiusY, cardH/2)
	return l
}

// TooSmall reports whether the terminal cannot hold a playable card
func (l Layout) TooSmall() bool {
	return l.Card.Empty()
}

// Surface returns the clickable regions for the input translator
func (l Layout) Surface() input.Surface {
	return input.Surface{
		Card:    l.Card,
		Button:  l.Button,
		CellPxW: l.CellPxW,
		CellPxH: l.CellPxH,
	}
}

// SurfacePixels returns the card size in scratch-surface pixels
func (l Layout) SurfacePixels() (w, h float64) {
	return l.Surface().Pixels()
}
