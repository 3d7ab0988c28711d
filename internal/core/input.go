package core

// Direction is one of the four grid directions.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists all directions in the order used for neighbor scans.
var Directions = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the (row, col) step for the direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	}
	return 0, 0
}

// DirectionalState holds four independent pressed flags.
// Several may be set at once; opposite pairs cancel when resolved to velocity.
type DirectionalState struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Get returns the flag for a direction.
func (s DirectionalState) Get(d Direction) bool {
	switch d {
	case DirUp:
		return s.Up
	case DirRight:
		return s.Right
	case DirDown:
		return s.Down
	case DirLeft:
		return s.Left
	}
	return false
}

// Set updates the flag for a direction.
func (s *DirectionalState) Set(d Direction, on bool) {
	switch d {
	case DirUp:
		s.Up = on
	case DirRight:
		s.Right = on
	case DirDown:
		s.Down = on
	case DirLeft:
		s.Left = on
	}
}

// Any returns true if at least one direction is pressed.
func (s DirectionalState) Any() bool {
	return s.Up || s.Down || s.Left || s.Right
}

// Action is a semantic key action, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect
	ActionPause
	ActionBack
	ActionRestart
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction maps a movement action to its direction.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	}
	return 0, false
}
