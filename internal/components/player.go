package components

import (
	"fmt"

	"locomotion/internal/engine"
	"locomotion/internal/input"
	"locomotion/internal/logger"
	"locomotion/internal/mathx"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	DefaultSpeed            = 10.0
	DefaultJumpVelocity     = 4.5
	DefaultMouseSensitivity = 0.001
	DefaultPitchMin         = -1.5
	DefaultPitchMax         = 1.2
	DefaultGravity          = 9.8
	DefaultCameraPivot      = "CameraPivot"
)

// PlayerController is a first-person movement script. Mouse motion turns the
// body (yaw) and tilts the camera pivot (pitch); each physics tick it turns the
// movement actions into a velocity for the sibling CharacterBody.
type PlayerController struct {
	engine.BaseComponent
	Speed            float32
	JumpVelocity     float32
	MouseSensitivity float32
	PitchMin         float32 // radians
	PitchMax         float32
	Gravity          float32
	CameraPivotPath  string

	Source input.Source
	Cursor input.Cursor

	Jumped engine.Event
	Looked engine.EventWithArg[rl.Vector2]

	// X is yaw, Y is pitch, both in radians.
	cameraRotation rl.Vector2
	pivot          *engine.GameObject
	body           Body
}

func NewPlayerController() *PlayerController {
	return &PlayerController{
		Speed:            DefaultSpeed,
		JumpVelocity:     DefaultJumpVelocity,
		MouseSensitivity: DefaultMouseSensitivity,
		PitchMin:         DefaultPitchMin,
		PitchMax:         DefaultPitchMax,
		Gravity:          DefaultGravity,
		CameraPivotPath:  DefaultCameraPivot,
	}
}

// Start resets the look angles and resolves the camera pivot and body.
func (p *PlayerController) Start() error {
	g := p.GetGameObject()
	p.cameraRotation = rl.Vector2{}

	if p.PitchMin > p.PitchMax {
		return fmt.Errorf("pitch range [%v, %v] is inverted", p.PitchMin, p.PitchMax)
	}

	pivot, err := g.GetNode(p.CameraPivotPath)
	if err != nil {
		return fmt.Errorf("camera pivot: %w", err)
	}
	// An empty or "." path resolves to the body itself, which cannot pitch independently.
	if pivot == g {
		return fmt.Errorf("camera pivot: %w: %q names %s itself", engine.ErrNodeNotFound, p.CameraPivotPath, g.Path())
	}
	p.pivot = pivot

	body := engine.GetComponent[Body](g)
	if body == nil {
		return fmt.Errorf("%w: %s has no CharacterBody", engine.ErrComponentNotFound, g.Path())
	}
	p.body = body

	if p.Source == nil {
		p.Source = input.NoInput{}
	}
	if p.Cursor == nil {
		p.Cursor = &input.MemoryCursor{}
	}

	logger.For("player").Debug("player ready", "object", g.Path(), "pivot", pivot.Path())
	return nil
}

func (p *PlayerController) Input(ev input.Event) {
	switch ev.Kind {
	case input.ActionEvent:
		if ev.IsPressed(input.ActionCancel) {
			p.Cursor.SetMode(input.CursorVisible)
		} else if ev.IsPressed(input.ActionEnter) {
			p.Cursor.SetMode(input.CursorCaptured)
		}
	case input.MouseMotionEvent:
		p.look(ev.Relative)
	}
}

func (p *PlayerController) look(relative rl.Vector2) {
	if p.pivot == nil {
		return
	}
	mov := rl.Vector2Scale(relative, p.MouseSensitivity)
	p.cameraRotation = rl.Vector2Add(p.cameraRotation, mov)
	p.clampPitch()
	p.orient()
	p.Looked.Invoke(p.cameraRotation)
}

// SetPitchLimits changes the pitch range and pulls the current pitch back
// inside it. An inverted range is rejected and nothing changes.
func (p *PlayerController) SetPitchLimits(lo, hi float32) bool {
	if lo > hi {
		return false
	}
	p.PitchMin, p.PitchMax = lo, hi
	if p.clampPitch() && p.pivot != nil {
		p.orient()
		p.Looked.Invoke(p.cameraRotation)
	}
	return true
}

// clampPitch pins pitch into [PitchMin, PitchMax] and reports whether it moved.
func (p *PlayerController) clampPitch() bool {
	old := p.cameraRotation.Y
	p.cameraRotation.Y = mathx.Clamp(old, p.PitchMin, p.PitchMax)
	return p.cameraRotation.Y != old
}

// orient rebuilds the body and pivot bases from the accumulated yaw and pitch.
func (p *PlayerController) orient() {
	g := p.GetGameObject()
	g.Transform.ResetBasis()
	p.pivot.Transform.ResetBasis()
	g.Transform.RotateObjectLocal(engine.WorldUp, -p.cameraRotation.X)
	p.pivot.Transform.RotateObjectLocal(engine.Right, -p.cameraRotation.Y)
}

func (p *PlayerController) PhysicsUpdate(delta float32) {
	if p.body == nil {
		return
	}
	g := p.GetGameObject()
	velocity := p.body.Velocity()

	if !p.body.IsOnFloor() {
		velocity.Y -= p.Gravity * delta
	}

	// Airborne presses are dropped, not buffered.
	if p.Source.IsActionJustPressed(input.ActionJump) && p.body.IsOnFloor() {
		velocity.Y = p.JumpVelocity
		p.Jumped.Invoke()
	}

	inputDir := p.Source.Vector(input.ActionLeft, input.ActionRight, input.ActionForward, input.ActionBackward)
	var direction rl.Vector3
	if inputDir.X != 0 || inputDir.Y != 0 {
		direction = rl.Vector3Normalize(g.Transform.Apply(rl.Vector3{X: inputDir.X, Z: inputDir.Y}))
	}

	if direction != (rl.Vector3{}) {
		velocity.X = direction.X * p.Speed
		velocity.Z = direction.Z * p.Speed
	} else {
		step := p.Speed * delta
		velocity.X = mathx.MoveToward(velocity.X, 0, step)
		velocity.Z = mathx.MoveToward(velocity.Z, 0, step)
	}

	p.body.SetVelocity(velocity)
	p.body.MoveAndSlide(delta)
}

// CameraRotation returns the accumulated (yaw, pitch) in radians.
func (p *PlayerController) CameraRotation() rl.Vector2 {
	return p.cameraRotation
}

func (p *PlayerController) Pivot() *engine.GameObject {
	return p.pivot
}

func (p *PlayerController) Body() Body {
	return p.body
}

// LookDirection is the pivot's forward vector in world space.
func (p *PlayerController) LookDirection() rl.Vector3 {
	if p.pivot == nil {
		return engine.Forward
	}
	return rl.Vector3RotateByQuaternion(engine.Forward, p.pivot.WorldRotation())
}
