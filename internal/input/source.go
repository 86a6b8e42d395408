package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Source answers action queries for the current physics tick.
type Source interface {
	IsActionPressed(action string) bool
	IsActionJustPressed(action string) bool
	// Vector returns (posX-negX, posY-negY) limited to unit length.
	Vector(negX, posX, negY, posY string) rl.Vector2
}

// Poller produces input events once per frame and is told when a physics tick
// has consumed the just-pressed state.
type Poller interface {
	Source
	Poll() []Event
	EndTick()
}

// actionState is the pressed/just-pressed bookkeeping shared by sources.
// Just-pressed flags latch until EndTick so a press is seen by exactly one tick,
// even when a frame runs zero ticks.
type actionState struct {
	pressed     map[string]bool
	justPressed map[string]bool
}

func newActionState() actionState {
	return actionState{
		pressed:     make(map[string]bool),
		justPressed: make(map[string]bool),
	}
}

func (s *actionState) IsActionPressed(action string) bool {
	return s.pressed[action]
}

func (s *actionState) IsActionJustPressed(action string) bool {
	return s.justPressed[action]
}

func (s *actionState) Vector(negX, posX, negY, posY string) rl.Vector2 {
	v := rl.Vector2{
		X: s.strength(posX) - s.strength(negX),
		Y: s.strength(posY) - s.strength(negY),
	}
	if rl.Vector2Length(v) > 1 {
		v = rl.Vector2Normalize(v)
	}
	return v
}

func (s *actionState) strength(action string) float32 {
	if s.pressed[action] {
		return 1
	}
	return 0
}

func (s *actionState) EndTick() {
	clear(s.justPressed)
}

// NoInput is a Source with nothing pressed.
type NoInput struct{}

func (NoInput) IsActionPressed(string) bool         { return false }
func (NoInput) IsActionJustPressed(string) bool     { return false }
func (NoInput) Vector(_, _, _, _ string) rl.Vector2 { return rl.Vector2{} }
