// Package remote carries pre-parsed controller events into the game.
// Device pairing and the wire protocol live outside this package; it only
// sees decoded direction snapshots and button presses.
package remote

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/qmaze/internal/core"
)

// EventType distinguishes direction snapshots from button presses.
type EventType string

const (
	TypeDirection EventType = "direction"
	TypeButton    EventType = "button"
)

// Button names a momentary controller button.
type Button string

const (
	ButtonSelect Button = "select"
	ButtonPause  Button = "pause"
)

// ErrInvalidEvent is returned by Validate for malformed events.
var ErrInvalidEvent = errors.New("remote: invalid event")

// Event is one controller message.
// A direction event reports the full state of all four directions.
type Event struct {
	Type  EventType              `json:"type"`
	State *core.DirectionalState `json:"state,omitempty"`
	Key   Button                 `json:"key,omitempty"`
}

// DirectionEvent builds a direction snapshot event.
func DirectionEvent(state core.DirectionalState) Event {
	return Event{Type: TypeDirection, State: &state}
}

// ButtonEvent builds a button press event.
func ButtonEvent(key Button) Event {
	return Event{Type: TypeButton, Key: key}
}

// Validate checks that the event is one the input layer understands.
func (e Event) Validate() error {
	switch e.Type {
	case TypeDirection:
		if e.State == nil {
			return fmt.Errorf("%w: direction event without state", ErrInvalidEvent)
		}
	case TypeButton:
		if e.Key != ButtonSelect && e.Key != ButtonPause {
			return fmt.Errorf("%w: unknown button %q", ErrInvalidEvent, e.Key)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	return nil
}
