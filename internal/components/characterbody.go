package components

import (
	"locomotion/internal/engine"
	"locomotion/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is the physics capability a movement script drives.
type Body interface {
	Velocity() rl.Vector3
	SetVelocity(v rl.Vector3)
	IsOnFloor() bool
	MoveAndSlide(delta float32)
}

// FloorSnap is how far below its feet the body looks for ground when not rising.
const FloorSnap = 0.02

// CharacterBody moves its GameObject by a velocity, sliding along box colliders.
// The owning object is expected to be a scene root; its local position is moved.
type CharacterBody struct {
	engine.BaseComponent
	Size   rl.Vector3 // collision box, full extents
	Offset rl.Vector3 // box center relative to the object

	velocity rl.Vector3
	onFloor  bool
}

func NewCharacterBody(size rl.Vector3) *CharacterBody {
	return &CharacterBody{Size: size}
}

func (c *CharacterBody) Velocity() rl.Vector3 {
	return c.velocity
}

func (c *CharacterBody) SetVelocity(v rl.Vector3) {
	c.velocity = v
}

// IsOnFloor reports floor contact as of the last MoveAndSlide.
func (c *CharacterBody) IsOnFloor() bool {
	return c.onFloor
}

func (c *CharacterBody) Bounds() physics.AABB {
	g := c.GetGameObject()
	return physics.NewAABBFromCenter(rl.Vector3Add(g.WorldPosition(), c.Offset), c.Size)
}

// MoveAndSlide integrates velocity over delta, one axis at a time (X, Z, then Y).
// A blocked axis has its velocity zeroed, which lets the other axes slide along the surface.
func (c *CharacterBody) MoveAndSlide(delta float32) {
	g := c.GetGameObject()
	if g == nil {
		return
	}
	obstacles := c.obstacles(g)

	c.onFloor = false
	for _, axis := range []physics.Axis{physics.AxisX, physics.AxisZ, physics.AxisY} {
		d := physics.Component(c.velocity, axis) * delta
		travel, blocked := physics.SweepAxis(c.Bounds(), axis, d, obstacles)
		physics.SetComponent(&g.Transform.Position, axis, physics.Component(g.Transform.Position, axis)+travel)
		if blocked {
			physics.SetComponent(&c.velocity, axis, 0)
			if axis == physics.AxisY && d < 0 {
				c.onFloor = true
			}
		}
	}

	if !c.onFloor && c.velocity.Y <= 0 {
		below := c.Bounds().Translate(rl.Vector3{Y: -FloorSnap})
		for _, o := range obstacles {
			if below.Overlaps(o) {
				c.onFloor = true
				break
			}
		}
	}
}

func (c *CharacterBody) obstacles(g *engine.GameObject) []physics.AABB {
	if g.Scene == nil || g.Scene.World == nil {
		return nil
	}
	var boxes []physics.AABB
	for _, obj := range g.Scene.World.GetCollidableObjects() {
		if g.IsAncestorOf(obj) {
			continue
		}
		if col := engine.GetComponent[*BoxCollider](obj); col != nil {
			boxes = append(boxes, col.GetAABB())
		}
	}
	return boxes
}
