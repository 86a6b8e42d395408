package input

import rl "github.com/gen2brain/raylib-go/raylib"

// EventKind tags the variant held by an Event.
type EventKind int

const (
	MouseMotionEvent EventKind = iota
	ActionEvent
)

func (k EventKind) String() string {
	switch k {
	case MouseMotionEvent:
		return "mouse_motion"
	case ActionEvent:
		return "action"
	}
	return "unknown"
}

// Event is one input event delivered to the scene.
// Relative is set for MouseMotionEvent; Action and Pressed for ActionEvent.
type Event struct {
	Kind     EventKind
	Relative rl.Vector2
	Action   string
	Pressed  bool
}

func MouseMotion(relative rl.Vector2) Event {
	return Event{Kind: MouseMotionEvent, Relative: relative}
}

func ActionPress(action string) Event {
	return Event{Kind: ActionEvent, Action: action, Pressed: true}
}

func ActionRelease(action string) Event {
	return Event{Kind: ActionEvent, Action: action}
}

// IsPressed reports whether ev is a press of action.
func (ev Event) IsPressed(action string) bool {
	return ev.Kind == ActionEvent && ev.Pressed && ev.Action == action
}
