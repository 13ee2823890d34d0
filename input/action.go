package input

// ActionType discriminates semantic actions
type ActionType uint8

const (
	ActionNone ActionType = iota

	// System-level actions
	ActionQuit   // q, Esc, Ctrl+C
	ActionResize // Terminal resize event

	// Lifecycle
	ActionToss  // Space, Enter, t
	ActionReset // r, b
	ActionPress // Left click on the on-screen button, meaning depends on stage

	// Gesture
	ActionSample // Left button press or drag over the card
)

func (a ActionType) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionResize:
		return "resize"
	case ActionToss:
		return "toss"
	case ActionReset:
		return "reset"
	case ActionPress:
		return "press"
	case ActionSample:
		return "sample"
	default:
		return "none"
	}
}

// Action represents a parsed semantic action
// Pure data struct with no engine dependencies
type Action struct {
	Type ActionType

	// ActionSample: surface-local pixel position and the card cell under the pointer
	X, Y     float64
	Col, Row int
	Start    bool // First sample of a stroke

	// ActionResize: new terminal size in cells
	Width, Height int
}
