package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"locomotion/internal/components"
	"locomotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const mainScene = "../../assets/scenes/main.json"

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMainScene(t *testing.T) {
	w, err := Load(mainScene)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	player := w.Player()
	if player == nil {
		t.Fatal("Expected a PlayerController in the scene")
	}
	if player.Pivot() == nil || player.Pivot().Path() != "/Player/CameraPivot" {
		t.Errorf("Expected pivot /Player/CameraPivot, got %v", player.Pivot())
	}

	cam := w.MainCamera()
	if cam == nil {
		t.Fatal("Expected a main camera")
	}
	if got := cam.GetGameObject().Path(); got != "/Player/CameraPivot/Camera" {
		t.Errorf("Expected camera at /Player/CameraPivot/Camera, got %s", got)
	}

	if got := len(w.GetCollidableObjects()); got != 4 {
		t.Errorf("Expected 4 collidable objects, got %d", got)
	}
	if w.Path != mainScene {
		t.Errorf("Expected path %q, got %q", mainScene, w.Path)
	}
}

func TestPlayerRestsOnGround(t *testing.T) {
	w, err := Load(mainScene)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 30; i++ {
		w.Scene.PhysicsUpdate(1.0 / 60)
	}

	player := w.Player()
	if !player.Body().IsOnFloor() {
		t.Error("Expected the player to be on the floor")
	}
	y := player.GetGameObject().Transform.Position.Y
	if y < 0.89 || y > 0.91 {
		t.Errorf("Expected player to rest at y=0.9, got %v", y)
	}
}

func TestSaveSceneRoundTrip(t *testing.T) {
	w, err := Load(mainScene)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w.Player().Speed = 6

	out := filepath.Join(t.TempDir(), "saved.json")
	if err := w.SaveScene(out); err != nil {
		t.Fatalf("SaveScene: %v", err)
	}

	loaded, err := Load(out)
	if err != nil {
		t.Fatalf("Load saved scene: %v", err)
	}
	if loaded.Scene.Name != "Main" {
		t.Errorf("Expected scene name Main, got %q", loaded.Scene.Name)
	}
	if got, want := len(loaded.Scene.GameObjects), len(w.Scene.GameObjects); got != want {
		t.Fatalf("Expected %d roots, got %d", want, got)
	}

	if _, err := loaded.Scene.GetNode("/Player/CameraPivot/Camera"); err != nil {
		t.Errorf("Expected nested camera to survive, got %v", err)
	}
	if p := loaded.Player(); p == nil || p.Speed != 6 {
		t.Errorf("Expected player speed 6 after round trip, got %+v", p)
	}

	crate := loaded.Scene.FindByName("Crate")
	if crate == nil {
		t.Fatal("Expected Crate")
	}
	if crate.Transform.Position != (rl.Vector3{X: 3, Y: 0.5, Z: -4}) {
		t.Errorf("Expected crate position (3, 0.5, -4), got %v", crate.Transform.Position)
	}
	mesh := engine.GetComponent[*components.MeshRenderer](crate)
	if mesh == nil || !mesh.Wireframe || mesh.Color != rl.Brown {
		t.Errorf("Expected brown wireframe mesh, got %+v", mesh)
	}
	if got := crate.Tags; len(got) != 1 || got[0] != "static" {
		t.Errorf("Expected tags [static], got %v", got)
	}

	if err := loaded.Start(); err != nil {
		t.Errorf("Expected saved scene to start, got %v", err)
	}
}

func TestMissingPivotFailsStart(t *testing.T) {
	path := writeScene(t, `{
  "objects": [
    {
      "name": "Player",
      "position": [0, 1, 0],
      "components": [
        {"type": "CharacterBody", "size": [0.6, 1.8, 0.6]},
        {"type": "Script", "name": "PlayerController"}
      ]
    }
  ]
}`)

	w, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	err = w.Start()
	if !errors.Is(err, engine.ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
}

func TestUnknownScriptFailsLoad(t *testing.T) {
	path := writeScene(t, `{"objects": [{"name": "A", "components": [{"type": "Script", "name": "Nope"}]}]}`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error for unknown script")
	}
}

func TestUnknownComponentIsSkipped(t *testing.T) {
	path := writeScene(t, `{"objects": [{"name": "A", "components": [{"type": "Lamp"}]}]}`)
	w, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(w.Scene.GameObjects[0].Components()); got != 0 {
		t.Errorf("Expected no components, got %d", got)
	}
	if w.Scene.GameObjects[0].Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale for unset scale, got %v", w.Scene.GameObjects[0].Transform.Scale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing scene")
	}
}

func TestLookupColor(t *testing.T) {
	if lookupColor("Gold") != rl.Gold {
		t.Error("Expected Gold by name")
	}
	want := rl.Color{R: 0x12, G: 0x34, B: 0x56, A: 0xff}
	if got := lookupColor("#123456ff"); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if lookupColor("nope") != rl.White {
		t.Error("Expected white for unknown color")
	}
	if got := lookupColorName(want); got != "#123456ff" {
		t.Errorf("Expected #123456ff, got %s", got)
	}
}

func TestRaycastFindsWall(t *testing.T) {
	w, err := Load(mainScene)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	player := w.Player()
	eye := w.MainCamera().GetGameObject().WorldPosition()

	hit, ok := w.Raycast(eye, player.LookDirection(), 50, player.GetGameObject())
	if !ok {
		t.Fatal("Expected the look ray to hit something")
	}
	if hit.GameObject.Name != "Wall" {
		t.Errorf("Expected to hit Wall, got %s", hit.GameObject.Name)
	}
	if hit.Distance < 15.49 || hit.Distance > 15.51 {
		t.Errorf("Expected distance 15.5, got %v", hit.Distance)
	}

	if _, ok := w.Raycast(eye, rl.Vector3{Y: 1}, 50, player.GetGameObject()); ok {
		t.Error("Expected nothing above the player")
	}
}
