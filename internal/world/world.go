package world

import (
	"locomotion/internal/components"
	"locomotion/internal/engine"
	"locomotion/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	GridSlices  = 40
	GridSpacing = 1.0
)

// World owns the scene and answers collision queries for it.
type World struct {
	Scene *engine.Scene
	// Path is the file the scene was loaded from, used when saving.
	Path string
	// ShowColliders draws collision boxes over the meshes.
	ShowColliders bool
}

func New(name string) *World {
	w := &World{
		Scene: engine.NewScene(name),
	}
	w.Scene.World = w
	return w
}

// Load reads a scene file into a new World. The scene is not started.
func Load(path string) (*World, error) {
	w := New("Main")
	if err := w.LoadScene(path); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) Start() error {
	return w.Scene.Start()
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

// GetCollidableObjects returns every object in the scene with a BoxCollider,
// children included.
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	w.Scene.Walk(func(g *engine.GameObject) {
		if g.Active && engine.GetComponent[*components.BoxCollider](g) != nil {
			result = append(result, g)
		}
	})
	return result
}

// RaycastHit is a physics.RaycastHit with the object that was hit.
type RaycastHit struct {
	physics.RaycastHit
	GameObject *engine.GameObject
}

// Raycast returns the closest box collider along the ray. Colliders on ignore
// and its descendants are skipped.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	var closest RaycastHit
	closest.Distance = maxDistance
	hit := false

	for _, obj := range w.GetCollidableObjects() {
		if ignore != nil && ignore.IsAncestorOf(obj) {
			continue
		}
		box := engine.GetComponent[*components.BoxCollider](obj)
		if h, ok := box.GetAABB().Raycast(origin, direction, maxDistance); ok && h.Distance < closest.Distance {
			closest = RaycastHit{RaycastHit: h, GameObject: obj}
			hit = true
		}
	}
	return closest, hit
}

// MainCamera returns the camera flagged as main, or the first camera found.
func (w *World) MainCamera() *components.Camera {
	var first, main *components.Camera
	w.Scene.Walk(func(g *engine.GameObject) {
		cam := engine.GetComponent[*components.Camera](g)
		if cam == nil {
			return
		}
		if first == nil {
			first = cam
		}
		if cam.IsMain && main == nil {
			main = cam
		}
	})
	if main != nil {
		return main
	}
	return first
}

func (w *World) Player() *components.PlayerController {
	for _, g := range w.Scene.GameObjects {
		if p, ok := engine.FindComponent[*components.PlayerController](g); ok {
			return p
		}
	}
	return nil
}

// Draw renders the ground grid and every Drawable component. Call inside BeginMode3D.
func (w *World) Draw() {
	rl.DrawGrid(GridSlices, GridSpacing)
	w.Scene.Walk(func(g *engine.GameObject) {
		if !g.Active {
			return
		}
		for _, c := range g.Components() {
			if d, ok := c.(engine.Drawable); ok {
				d.Draw()
			}
		}
	})
	if w.ShowColliders {
		w.drawColliders()
	}
}

func (w *World) drawColliders() {
	w.Scene.Walk(func(g *engine.GameObject) {
		if col := engine.GetComponent[*components.BoxCollider](g); col != nil {
			box := col.GetAABB()
			rl.DrawCubeWiresV(box.Center(), box.Size(), rl.Green)
		}
		if body := engine.GetComponent[*components.CharacterBody](g); body != nil {
			box := body.Bounds()
			color := rl.Orange
			if body.IsOnFloor() {
				color = rl.Lime
			}
			rl.DrawCubeWiresV(box.Center(), box.Size(), color)
		}
	})
}
