package render

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scratch-toss/constants"
	"github.com/lixenwraith/scratch-toss/engine"
	"github.com/lixenwraith/scratch-toss/reveal"
)

// Labels are the user-facing names shown on screen
type Labels struct {
	Title string
	Heads string
	Tails string
}

// View draws one frame from a reveal snapshot
// It owns only presentation state: stroke history, toast timing and confetti
type View struct {
	labels      Labels
	layout      Layout
	strokes     *StrokeHistory
	strokeWidth float64

	toastFor   time.Duration
	toastUntil time.Time
	lastStage  reveal.Stage

	rng *rand.Rand
}

// NewView creates a view; call SetLayout before drawing
func NewView(labels Labels, strokeWidth float64, toastFor time.Duration) *View {
	return &View{
		labels:      labels,
		strokeWidth: strokeWidth,
		strokes:     NewStrokeHistory(0, 0, strokeWidth, 0, 0),
		toastFor:    toastFor,
		lastStage:   reveal.StageIdle,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetLayout installs a new layout; scratched cells are sized to the new card and cleared
func (v *View) SetLayout(l Layout) {
	v.layout = l
	v.strokes.Resize(l.Card.W, l.Card.H, v.strokeWidth, l.CellPxW, l.CellPxH)
}

// Layout returns the active layout
func (v *View) Layout() Layout {
	return v.layout
}

// Strokes returns the presentation stroke history
func (v *View) Strokes() *StrokeHistory {
	return v.strokes
}

// Stroke records a scratch at card cell (col, row) for the session in snap
func (v *View) Stroke(snap reveal.Snapshot, col, row int) {
	if snap.Stage != reveal.StageScratch {
		return
	}
	v.strokes.Mark(snap.Session, col, row)
}

// Label returns the display name of an outcome
func (v *View) Label(o reveal.Outcome) string {
	switch o {
	case reveal.Heads:
		return v.labels.Heads
	case reveal.Tails:
		return v.labels.Tails
	default:
		return ""
	}
}

// ToastVisible reports whether the scratch hint is on screen at now
func (v *View) ToastVisible(now time.Time) bool {
	return now.Before(v.toastUntil)
}

// observe tracks stage entries that start presentation effects
func (v *View) observe(snap reveal.Snapshot, now time.Time) {
	if snap.Stage == reveal.StageScratch && v.lastStage != reveal.StageScratch {
		v.toastUntil = now.Add(v.toastFor)
	}
	if snap.Stage != reveal.StageScratch {
		v.toastUntil = time.Time{}
	}
	v.strokes.Sync(snap.Session)
	v.lastStage = snap.Stage
}

// Draw renders the full frame for snap onto c
func (v *View) Draw(c Canvas, snap reveal.Snapshot, now time.Time) {
	v.observe(snap, now)

	l := v.layout
	fill(c, 0, 0, l.Width, l.Height, ' ', StyleBackground)

	drawCentered(c, 0, l.Width, l.TitleY, v.labels.Title, styleTitle)
	drawCentered(c, 0, l.Width, l.SubtitleY, v.subtitle(snap), styleMuted)

	if l.TooSmall() {
		drawCentered(c, 0, l.Width, l.Height/2, constants.TextTooSmall, styleMuted)
		return
	}

	switch snap.Stage {
	case reveal.StageIdle, reveal.StageFlipping:
		v.drawCoin(c, snap)
		if snap.Stage == reveal.StageIdle {
			v.drawButton(c, constants.TextTossButton, styleButton)
		} else {
			v.drawButton(c, constants.TextFlipping, styleButtonBusy)
		}

	case reveal.StageScratch, reveal.StageCelebrating:
		celebrating := snap.Stage == reveal.StageCelebrating
		if celebrating {
			v.drawConfetti(c)
		}
		v.drawCard(c, snap)
		v.drawProgress(c, snap)
		v.drawButton(c, constants.TextBackButton, styleButton)
		if v.ToastVisible(now) {
			drawCentered(c, 0, l.Width, l.ToastY, " "+constants.TextScratchToast+" ", styleToast)
		}
		if celebrating {
			v.drawModal(c, snap)
		}
	}
}

func (v *View) subtitle(snap reveal.Snapshot) string {
	switch snap.Stage {
	case reveal.StageFlipping:
		return "The coin is in the air..."
	case reveal.StageScratch:
		return "Scratch the card to reveal the winner"
	case reveal.StageCelebrating:
		return fmt.Sprintf("%s wins the toss!", v.Label(snap.Outcome))
	default:
		return "Press space or click the button to toss"
	}
}

// drawCoin draws the coin ellipse, squashed by rotation and scaled by the bounce
func (v *View) drawCoin(c Canvas, snap reveal.Snapshot) {
	l := v.layout
	p := snap.FlipProgress

	angle := engine.EaseInOut(p) * constants.CoinFlipTurns * 2 * math.Pi
	squash := math.Abs(math.Cos(angle))
	scale := engine.Interpolate3(p, 1, 0.85, 1)

	rx := float64(l.CoinRX) * scale * squash
	ry := float64(l.CoinRY) * scale
	if ry < 1 {
		ry = 1
	}

	// Edge-on coin collapses to a line
	if rx < 0.5 {
		for dy := -int(ry); dy <= int(ry); dy++ {
			c.SetContent(l.CoinX, l.CoinY+dy, '│', nil, styleCoinRim)
		}
		return
	}

	for dy := -int(math.Ceil(ry)); dy <= int(math.Ceil(ry)); dy++ {
		for dx := -int(math.Ceil(rx)); dx <= int(math.Ceil(rx)); dx++ {
			d := (float64(dx)/rx)*(float64(dx)/rx) + (float64(dy)/ry)*(float64(dy)/ry)
			if d > 1 {
				continue
			}
			if d > 0.6 {
				c.SetContent(l.CoinX+dx, l.CoinY+dy, '█', nil, styleCoinRim)
			} else {
				c.SetContent(l.CoinX+dx, l.CoinY+dy, '█', nil, styleCoin)
			}
		}
	}

	if squash > 0.35 {
		c.SetContent(l.CoinX, l.CoinY, v.coinMark(snap, angle), nil, styleCoinMark)
	}
}

// coinMark returns the glyph on the visible face
func (v *View) coinMark(snap reveal.Snapshot, angle float64) rune {
	if snap.Stage == reveal.StageIdle {
		return '?'
	}
	// Faces alternate every half turn
	if int(angle/math.Pi)%2 == 0 {
		return 'H'
	}
	return 'T'
}

// drawCard draws the outcome under the silver overlay, minus the scratched cells
func (v *View) drawCard(c Canvas, snap reveal.Snapshot) {
	card := v.layout.Card
	fill(c, card.X, card.Y, card.W, card.H, ' ', styleCard)

	mid := card.Y + card.H/2
	drawCentered(c, card.X, card.W, mid-1, v.Label(snap.Outcome), styleCard)
	drawCentered(c, card.X, card.W, mid+1, strings.ToUpper(snap.Outcome.String()), styleCard)

	if snap.Stage != reveal.StageScratch {
		return
	}
	for row := 0; row < card.H; row++ {
		for col := 0; col < card.W; col++ {
			if v.strokes.Scratched(col, row) {
				continue
			}
			glyph := '░'
			if (col+row)%3 == 0 {
				glyph = '▒'
			}
			c.SetContent(card.X+col, card.Y+row, glyph, nil, styleOverlay)
		}
	}
}

// drawProgress draws the bar under the card and its caption
func (v *View) drawProgress(c Canvas, snap reveal.Snapshot) {
	l := v.layout
	card := l.Card

	pct := snap.Percent()
	filled := card.W * max(pct, constants.ProgressMinFill) / 100
	if snap.Stage == reveal.StageCelebrating {
		filled = card.W
	}
	fill(c, card.X, l.ProgressY, card.W, 1, ' ', styleTrack)
	fill(c, card.X, l.ProgressY, filled, 1, ' ', styleFill)

	var caption string
	if snap.Stage == reveal.StageCelebrating {
		caption = fmt.Sprintf("Celebrating... heading back in %d seconds", snap.Remaining)
	} else {
		caption = fmt.Sprintf("%d%% revealed", pct)
	}
	drawCentered(c, 0, l.Width, l.CaptionY, caption, styleMuted)
}

func (v *View) drawButton(c Canvas, text string, style tcell.Style) {
	b := v.layout.Button
	fill(c, b.X, b.Y, b.W, b.H, ' ', style)
	drawCentered(c, b.X, b.W, b.Y, text, style)
}

// drawModal draws the winner banner over the card
func (v *View) drawModal(c Canvas, snap reveal.Snapshot) {
	l := v.layout
	w := min(constants.ModalWidth, l.Width-2)
	h := 5
	x := (l.Width - w) / 2
	y := l.Card.Y + (l.Card.H-h)/2

	fill(c, x, y, w, h, ' ', styleModal)
	drawCentered(c, x, w, y+1, "★  ★  ★", styleModal)
	drawCentered(c, x, w, y+2, fmt.Sprintf("%s wins the toss!", v.Label(snap.Outcome)), styleModal)
	drawCentered(c, x, w, y+3, fmt.Sprintf("It landed %s", snap.Outcome), styleModal)
}

var confettiGlyphs = []rune{'*', '+', '•', '✦', '·', '°'}

// drawConfetti scatters a fresh handful of glyphs each frame
func (v *View) drawConfetti(c Canvas) {
	l := v.layout
	for i := 0; i < constants.ConfettiPieces; i++ {
		x := v.rng.Intn(max(l.Width, 1))
		y := constants.ContentTop + v.rng.Intn(max(l.Height-constants.ContentTop-2, 1))
		style := StyleBackground.Foreground(confettiColors[i%len(confettiColors)])
		c.SetContent(x, y, confettiGlyphs[v.rng.Intn(len(confettiGlyphs))], nil, style)
	}
}
