package engine

import (
	"fmt"
	"strings"

	"locomotion/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	WorldUp = rl.Vector3{X: 0, Y: 1, Z: 0}
	// Forward follows the right-handed convention used by raylib cameras: -Z.
	Forward = rl.Vector3{X: 0, Y: 0, Z: -1}
	Right   = rl.Vector3{X: 1, Y: 0, Z: 0}
)

// Transform is a node's local position, orientation and scale.
// Rotation is a unit quaternion; its rotation matrix is the node's basis.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

func NewTransform() Transform {
	return Transform{
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Basis returns the rotation matrix of the transform.
func (t Transform) Basis() rl.Matrix {
	return rl.QuaternionToMatrix(t.Rotation)
}

// ResetBasis clears the rotational part, keeping position and scale.
func (t *Transform) ResetBasis() {
	t.Rotation = rl.QuaternionIdentity()
}

// RotateObjectLocal rotates around an axis expressed in the node's own frame.
func (t *Transform) RotateObjectLocal(axis rl.Vector3, angle float32) {
	r := rl.QuaternionFromAxisAngle(axis, angle)
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(t.Rotation, r))
}

// Apply rotates v by the transform's orientation.
func (t Transform) Apply(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, t.Rotation)
}

type GameObject struct {
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	// started is set once every component and child has started.
	// startedComponents counts components whose Start already succeeded.
	started           bool
	startedComponents int
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		Name:       name,
		Active:     true,
		Transform:  NewTransform(),
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T any](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// FindComponent searches g and its descendants depth-first.
func FindComponent[T any](g *GameObject) (T, bool) {
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	for _, child := range g.Children {
		if found, ok := FindComponent[T](child); ok {
			return found, true
		}
	}
	var zero T
	return zero, false
}

// Start starts the object's components, then its children. After a failure a
// later call retries from the component that failed.
func (g *GameObject) Start() error {
	if g.started {
		return nil
	}
	for g.startedComponents < len(g.components) {
		if err := g.components[g.startedComponents].Start(); err != nil {
			return fmt.Errorf("start %s: %w", g.Path(), err)
		}
		g.startedComponents++
	}
	for _, child := range g.Children {
		if err := child.Start(); err != nil {
			return err
		}
	}
	g.started = true
	return nil
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
	for _, child := range g.Children {
		child.Update(deltaTime)
	}
}

func (g *GameObject) Input(ev input.Event) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		if h, ok := c.(InputHandler); ok {
			h.Input(ev)
		}
	}
	for _, child := range g.Children {
		child.Input(ev)
	}
}

func (g *GameObject) PhysicsUpdate(delta float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		if p, ok := c.(PhysicsProcessor); ok {
			p.PhysicsUpdate(delta)
		}
	}
	for _, child := range g.Children {
		child.PhysicsUpdate(delta)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	child.setScene(g.Scene)
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			child.setScene(nil)
			return
		}
	}
}

func (g *GameObject) setScene(s *Scene) {
	g.Scene = s
	for _, child := range g.Children {
		child.setScene(s)
	}
}

// FindChild returns the direct child with the given name.
func (g *GameObject) FindChild(name string) *GameObject {
	for _, c := range g.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// GetNode resolves a "/"-separated path relative to g. ".." walks to the parent.
func (g *GameObject) GetNode(path string) (*GameObject, error) {
	node := g
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if node.Parent == nil {
				return nil, fmt.Errorf("%w: %q from %s", ErrNodeNotFound, path, g.Path())
			}
			node = node.Parent
		default:
			next := node.FindChild(part)
			if next == nil {
				return nil, fmt.Errorf("%w: %q from %s", ErrNodeNotFound, path, g.Path())
			}
			node = next
		}
	}
	return node, nil
}

// Path returns the absolute path of g from its root, e.g. "/Player/CameraPivot".
func (g *GameObject) Path() string {
	if g.Parent == nil {
		return "/" + g.Name
	}
	return g.Parent.Path() + "/" + g.Name
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentScale := g.Parent.WorldScale()
	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}
	rotated := rl.Vector3RotateByQuaternion(scaled, g.Parent.WorldRotation())
	return rl.Vector3Add(g.Parent.WorldPosition(), rotated)
}

func (g *GameObject) WorldRotation() rl.Quaternion {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.QuaternionMultiply(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// IsAncestorOf reports whether g is other or one of its ancestors.
func (g *GameObject) IsAncestorOf(other *GameObject) bool {
	for n := other; n != nil; n = n.Parent {
		if n == g {
			return true
		}
	}
	return false
}
