package engine

import "locomotion/internal/input"

// Component is attached to a GameObject and driven by the scene each frame.
// Start runs once before the first update; a non-nil error aborts scene startup.
type Component interface {
	Start() error
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// InputHandler is implemented by components that react to input events.
// The scene delivers every event of a frame before running physics ticks.
type InputHandler interface {
	Input(ev input.Event)
}

// PhysicsProcessor is implemented by components that run on the fixed physics tick.
type PhysicsProcessor interface {
	PhysicsUpdate(delta float32)
}

// Drawable is implemented by components that render in the 3D pass.
type Drawable interface {
	Draw()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() error { return nil }

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
