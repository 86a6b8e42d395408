package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestRaycastHitsNearFace(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{Z: -5}, rl.Vector3{X: 2, Y: 2, Z: 2})

	hit, ok := box.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Distance != 4 {
		t.Errorf("Expected distance 4, got %v", hit.Distance)
	}
	if hit.Normal != (rl.Vector3{Z: 1}) {
		t.Errorf("Expected normal +Z, got %v", hit.Normal)
	}
	if hit.Point != (rl.Vector3{Z: -4}) {
		t.Errorf("Expected point (0, 0, -4), got %v", hit.Point)
	}
}

func TestRaycastMisses(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{Z: -5}, rl.Vector3{X: 2, Y: 2, Z: 2})

	if _, ok := box.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 100); ok {
		t.Error("Expected no hit behind the origin")
	}
	if _, ok := box.Raycast(rl.Vector3{X: 5}, rl.Vector3{Z: -1}, 100); ok {
		t.Error("Expected no hit for a parallel ray outside the slab")
	}
	if _, ok := box.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 3); ok {
		t.Error("Expected no hit beyond max distance")
	}
}

func TestRaycastFromInside(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	hit, ok := box.Raycast(rl.Vector3{}, rl.Vector3{Y: -1}, 10)
	if !ok {
		t.Fatal("Expected a hit from inside")
	}
	if hit.Distance != 1 || hit.Normal != (rl.Vector3{Y: -1}) {
		t.Errorf("Expected far face at distance 1 with normal -Y, got %+v", hit)
	}
}
