package input

import (
	"github.com/gdamore/tcell/v2"
)

// Translator turns terminal events into semantic actions
// Mouse drags over the card become gesture samples in surface pixels
type Translator struct {
	keys    *KeyTable
	surface Surface
	drag    DragState
}

// NewTranslator creates a translator; nil keys selects the default bindings
func NewTranslator(keys *KeyTable) *Translator {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Translator{keys: keys}
}

// SetSurface installs the regions of a new layout and drops any stroke in progress
func (t *Translator) SetSurface(s Surface) {
	t.surface = s
	t.drag = DragIdle
}

// Surface returns the active regions
func (t *Translator) Surface() Surface {
	return t.surface
}

// Drag returns the current button state
func (t *Translator) Drag() DragState {
	return t.drag
}

// Translate dispatches a tcell event
func (t *Translator) Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.Key(ev.Key(), ev.Rune(), ev.Modifiers())
	case *tcell.EventMouse:
		x, y := ev.Position()
		return t.Mouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		w, h := ev.Size()
		return Action{Type: ActionResize, Width: w, Height: h}
	}
	return Action{}
}

// Key resolves a key press through the key table
func (t *Translator) Key(key tcell.Key, r rune, mod tcell.ModMask) Action {
	// Ctrl+q arrives as a rune with the modifier on some terminals
	if key == tcell.KeyRune && mod&tcell.ModCtrl != 0 && (r == 'q' || r == 'c') {
		return Action{Type: ActionQuit}
	}
	return Action{Type: t.keys.Lookup(key, r)}
}

// Mouse advances the drag state for one mouse report at screen cell (x, y)
func (t *Translator) Mouse(x, y int, buttons tcell.ButtonMask) Action {
	pressed := buttons&tcell.Button1 != 0

	if !pressed {
		t.drag = DragIdle
		return Action{}
	}

	onCard := !t.surface.Card.Empty() && t.surface.Card.Contains(x, y)

	switch t.drag {
	case DragIdle:
		if !t.surface.Button.Empty() && t.surface.Button.Contains(x, y) {
			t.drag = DragElsewhere
			return Action{Type: ActionPress}
		}
		if onCard {
			t.drag = DragScratch
			return t.sample(x, y, true)
		}
		t.drag = DragElsewhere

	case DragScratch, DragOffCard:
		if onCard {
			// Re-entering the card starts a new stroke
			start := t.drag == DragOffCard
			t.drag = DragScratch
			return t.sample(x, y, start)
		}
		t.drag = DragOffCard
	}

	return Action{}
}

func (t *Translator) sample(x, y int, start bool) Action {
	px, py, col, row := t.surface.toPixels(x, y)
	return Action{
		Type:  ActionSample,
		X:     px,
		Y:     py,
		Col:   col,
		Row:   row,
		Start: start,
	}
}
