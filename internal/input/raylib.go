package input

import rl "github.com/gen2brain/raylib-go/raylib"

// RaylibSource polls the raylib window once per frame.
type RaylibSource struct {
	actionState
	actions *ActionMap
	events  []Event
}

func NewRaylibSource(actions *ActionMap) *RaylibSource {
	return &RaylibSource{
		actionState: newActionState(),
		actions:     actions,
	}
}

// Poll samples keys and mouse for the current frame. Action events come first
// in action-name order, followed by at most one mouse-motion event.
func (s *RaylibSource) Poll() []Event {
	s.events = s.events[:0]
	for _, name := range s.actions.Actions() {
		down, pressed, released := false, false, false
		for _, b := range s.actions.Bindings(name) {
			down = down || b.down()
			pressed = pressed || b.pressed()
			released = released || b.released()
		}
		s.pressed[name] = down
		if pressed {
			s.justPressed[name] = true
			s.events = append(s.events, ActionPress(name))
		} else if released && !down {
			s.events = append(s.events, ActionRelease(name))
		}
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		s.events = append(s.events, MouseMotion(d))
	}
	return s.events
}

// SetActions swaps the binding table, e.g. after a config reload.
// Held state for actions that no longer exist is dropped.
func (s *RaylibSource) SetActions(actions *ActionMap) {
	s.actions = actions
	s.actionState = newActionState()
}
