package game

import (
	"fmt"

	"locomotion/internal/engine"
	"locomotion/internal/input"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	flashDuration = 2.0
	lookRange     = 50
)

var (
	colorPanel = rl.NewColor(18, 18, 24, 230)
	colorText  = rl.NewColor(200, 200, 208, 255)
	colorMuted = rl.NewColor(119, 119, 119, 255)
	colorValue = rl.NewColor(167, 139, 250, 255)
)

// HUD is the F1 debug overlay: player state plus live tuning sliders.
type HUD struct {
	Visible bool
	Bounds  rl.Rectangle

	look      rl.Vector2
	message   string
	messageAt float64
}

func NewHUD() *HUD {
	return &HUD{
		Bounds: rl.Rectangle{X: 10, Y: 70, Width: 300, Height: 270},
	}
}

// Init styles raygui. Needs an open window.
func (h *HUD) Init() {
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(28, 28, 38, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(108, 99, 255, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

// SetLook records the latest camera rotation. Wired to PlayerController.Looked.
func (h *HUD) SetLook(rot rl.Vector2) {
	h.look = rot
}

func (h *HUD) Flash(msg string) {
	h.message = msg
	h.messageAt = rl.GetTime()
}

// Consumes reports whether ev belongs to the overlay rather than the scene.
// With the pointer released, mouse motion is for the sliders, and a click on
// the panel must not recapture the cursor.
func (h *HUD) Consumes(ev input.Event, mode input.CursorMode) bool {
	if mode == input.CursorCaptured {
		return false
	}
	switch ev.Kind {
	case input.MouseMotionEvent:
		return true
	case input.ActionEvent:
		return h.Visible && ev.Action == input.ActionEnter && rl.CheckCollisionPointRec(rl.GetMousePosition(), h.Bounds)
	}
	return false
}

func (h *HUD) Draw(g *Game) {
	rl.DrawText("WASD to move, Space to jump, Mouse to look", 10, 10, 20, rl.DarkGray)
	rl.DrawText("Esc releases the mouse, click to capture. F1 debug, F5 save", 10, 35, 16, rl.DarkGray)

	if h.message != "" && rl.GetTime()-h.messageAt < flashDuration {
		rl.DrawText(h.message, 10, int32(rl.GetScreenHeight())-30, 18, rl.Lime)
	}

	if !h.Visible {
		return
	}

	cx, cy := int32(rl.GetScreenWidth()/2), int32(rl.GetScreenHeight()/2)
	rl.DrawLine(cx-6, cy, cx+6, cy, rl.RayWhite)
	rl.DrawLine(cx, cy-6, cx, cy+6, rl.RayWhite)

	p := g.Player
	rl.DrawRectangleRec(h.Bounds, colorPanel)
	x := int32(h.Bounds.X) + 10
	y := int32(h.Bounds.Y) + 10

	rl.DrawFPS(x, y)
	y += 24

	v := p.Body().Velocity()
	pos := p.GetGameObject().WorldPosition()
	lines := []string{
		fmt.Sprintf("Position  (%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z),
		fmt.Sprintf("Velocity  (%.2f, %.2f, %.2f)", v.X, v.Y, v.Z),
		fmt.Sprintf("On floor  %v", p.Body().IsOnFloor()),
		fmt.Sprintf("Yaw %.3f  Pitch %.3f", h.look.X, h.look.Y),
		fmt.Sprintf("Tick %d  Cursor %s", g.Ticks(), g.Cursor.Mode()),
		h.lookTarget(g),
	}
	for _, line := range lines {
		rl.DrawText(line, x, y, 14, colorText)
		y += 18
	}
	y += 6

	labelW := float32(70)
	sliderW := h.Bounds.Width - labelW - 60
	slider := func(label, prop string, value, lo, hi float32, format string) {
		rl.DrawText(label, x, y+3, 14, colorMuted)
		bounds := rl.Rectangle{X: float32(x) + labelW, Y: float32(y), Width: sliderW, Height: 16}
		newVal := gui.Slider(bounds, "", fmt.Sprintf(format, value), value, lo, hi)
		if newVal != value {
			engine.ApplyScriptProperty(p, prop, float64(newVal))
		}
		y += 22
	}
	slider("Speed", "speed", p.Speed, 1, 20, "%.1f")
	slider("Jump", "jumpVelocity", p.JumpVelocity, 1, 10, "%.1f")
	slider("Mouse", "mouseSensitivity", p.MouseSensitivity, 0.0002, 0.005, "%.4f")

	check := rl.Rectangle{X: float32(x), Y: float32(y), Width: 16, Height: 16}
	g.World.ShowColliders = gui.CheckBox(check, "Colliders", g.World.ShowColliders)
	y += 22

	rl.DrawText(fmt.Sprintf("Trace rows %d", g.Trace.Rows()), x, y, 14, colorValue)
}

// lookTarget names the collider under the crosshair.
func (h *HUD) lookTarget(g *Game) string {
	cam := g.World.MainCamera()
	if cam == nil {
		return "Looking at  -"
	}
	origin := cam.GetGameObject().WorldPosition()
	hit, ok := g.World.Raycast(origin, g.Player.LookDirection(), lookRange, g.Player.GetGameObject())
	if !ok {
		return "Looking at  -"
	}
	return fmt.Sprintf("Looking at  %s (%.1f)", hit.GameObject.Name, hit.Distance)
}
