package input

// DragState tracks the left button across mouse events
type DragState uint8

const (
	DragIdle     DragState = iota // Button up
	DragScratch                   // Pressed over the card, samples flow
	DragOffCard                   // Pressed over the card, pointer left it
	DragElsewhere                 // Pressed outside the card, ignored until release
)
