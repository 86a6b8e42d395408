package components

import (
	"locomotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera renders from its GameObject's world transform, looking down local -Z.
type Camera struct {
	engine.BaseComponent
	FOV        float32
	Projection rl.CameraProjection
	IsMain     bool // If true, this is the active game camera
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        70.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	pos := g.WorldPosition()
	rot := g.WorldRotation()
	return rl.Camera3D{
		Position:   pos,
		Target:     rl.Vector3Add(pos, rl.Vector3RotateByQuaternion(engine.Forward, rot)),
		Up:         rl.Vector3RotateByQuaternion(engine.WorldUp, rot),
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
