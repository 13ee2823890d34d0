package render

import "github.com/gdamore/tcell/v2"

// RGB palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText       = tcell.NewRGBColor(220, 220, 230) // Body text
	RgbMuted      = tcell.NewRGBColor(140, 145, 165) // Hints and captions
	RgbTitle      = tcell.NewRGBColor(255, 200, 80)  // Title gold

	RgbCoinFace = tcell.NewRGBColor(230, 180, 60)  // Coin body
	RgbCoinRim  = tcell.NewRGBColor(160, 110, 30)  // Coin edge
	RgbCoinMark = tcell.NewRGBColor(90, 60, 10)    // Face letter

	RgbCardBg     = tcell.NewRGBColor(245, 240, 225) // Revealed card paper
	RgbCardText   = tcell.NewRGBColor(30, 30, 60)    // Outcome label on the card
	RgbOverlay    = tcell.NewRGBColor(170, 170, 180) // Scratch-off silver
	RgbOverlayDim = tcell.NewRGBColor(120, 120, 130) // Silver texture

	RgbProgressFill  = tcell.NewRGBColor(120, 200, 120) // Progress bar
	RgbProgressTrack = tcell.NewRGBColor(50, 52, 70)

	RgbButtonBg   = tcell.NewRGBColor(100, 150, 255) // Primary button
	RgbButtonText = tcell.NewRGBColor(0, 0, 0)
	RgbButtonBusy = tcell.NewRGBColor(70, 75, 100) // Disabled button while flipping

	RgbToastBg = tcell.NewRGBColor(60, 40, 0) // Dark orange toast
	RgbModalBg = tcell.NewRGBColor(40, 20, 60)
)

// Confetti colors cycle through these
var confettiColors = []tcell.Color{
	tcell.NewRGBColor(255, 80, 80),
	tcell.NewRGBColor(80, 200, 80),
	tcell.NewRGBColor(100, 150, 255),
	tcell.NewRGBColor(255, 255, 0),
	tcell.NewRGBColor(255, 165, 0),
	tcell.NewRGBColor(255, 192, 203),
}

// Styles
var (
	StyleBackground = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	styleTitle      = StyleBackground.Foreground(RgbTitle).Bold(true)
	styleMuted      = StyleBackground.Foreground(RgbMuted)
	styleCoin       = StyleBackground.Foreground(RgbCoinFace)
	styleCoinRim    = StyleBackground.Foreground(RgbCoinRim)
	styleCoinMark   = tcell.StyleDefault.Background(RgbCoinFace).Foreground(RgbCoinMark).Bold(true)
	styleCard       = tcell.StyleDefault.Background(RgbCardBg).Foreground(RgbCardText).Bold(true)
	styleOverlay    = tcell.StyleDefault.Background(RgbOverlay).Foreground(RgbOverlayDim)
	styleFill       = tcell.StyleDefault.Background(RgbProgressFill).Foreground(RgbButtonText)
	styleTrack      = tcell.StyleDefault.Background(RgbProgressTrack).Foreground(RgbText)
	styleButton     = tcell.StyleDefault.Background(RgbButtonBg).Foreground(RgbButtonText).Bold(true)
	styleButtonBusy = tcell.StyleDefault.Background(RgbButtonBusy).Foreground(RgbMuted)
	styleToast      = tcell.StyleDefault.Background(RgbToastBg).Foreground(RgbTitle)
	styleModal      = tcell.StyleDefault.Background(RgbModalBg).Foreground(RgbTitle).Bold(true)
)
