package engine

import (
	"errors"
	"testing"

	"locomotion/internal/input"
)

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")
	child := NewGameObject("CameraPivot")
	obj.AddChild(child)

	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject, got %d", len(scene.GameObjects))
	}
	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
	if child.Scene != scene {
		t.Error("Child GameObject.Scene not set")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Player")
	obj2 := NewGameObject("Ground")

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)
	scene.RemoveGameObject(obj1)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject after removal, got %d", len(scene.GameObjects))
	}
	if scene.GameObjects[0] != obj2 {
		t.Error("Wrong GameObject removed")
	}
	if obj1.Scene != nil {
		t.Error("Removed GameObject should have nil scene")
	}
}

func TestSceneGetNode(t *testing.T) {
	scene := NewScene("Test")
	player := NewGameObject("Player")
	pivot := NewGameObject("CameraPivot")
	player.AddChild(pivot)
	scene.AddGameObject(player)

	got, err := scene.GetNode("/Player/CameraPivot")
	if err != nil || got != pivot {
		t.Fatalf("Expected CameraPivot, got %v (err %v)", got, err)
	}

	if _, err := scene.GetNode("/Enemy"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("Test")
	a := NewGameObject("A")
	a.Tags = []string{"solid"}
	b := NewGameObject("B")
	b.Tags = []string{"solid"}
	a.AddChild(b)
	scene.AddGameObject(a)
	scene.AddGameObject(NewGameObject("C"))

	if got := scene.FindByTag("solid"); len(got) != 2 {
		t.Errorf("Expected 2 tagged objects, got %d", len(got))
	}
}

type recorder struct {
	BaseComponent
	events []input.Event
	ticks  []float32
}

func (r *recorder) Input(ev input.Event)        { r.events = append(r.events, ev) }
func (r *recorder) PhysicsUpdate(delta float32) { r.ticks = append(r.ticks, delta) }

func TestSceneDispatchReachesChildren(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	rec := &recorder{}
	child.AddComponent(rec)
	parent.AddChild(child)
	scene.AddGameObject(parent)

	scene.Input(input.Event{Kind: input.ActionEvent, Action: input.ActionJump, Pressed: true})
	scene.PhysicsUpdate(0.5)

	if len(rec.events) != 1 || rec.events[0].Action != input.ActionJump {
		t.Errorf("Expected one jump event, got %v", rec.events)
	}
	if len(rec.ticks) != 1 || rec.ticks[0] != 0.5 {
		t.Errorf("Expected one tick of 0.5, got %v", rec.ticks)
	}

	child.Active = false
	scene.PhysicsUpdate(0.5)
	if len(rec.ticks) != 1 {
		t.Error("Inactive objects should not receive physics ticks")
	}
}

func TestEventListeners(t *testing.T) {
	var e EventWithArg[int]
	total := 0
	id := e.AddListener(func(v int) { total += v })
	e.AddListener(func(v int) { total += 10 * v })

	e.Invoke(1)
	if total != 11 {
		t.Errorf("Expected 11, got %d", total)
	}

	e.RemoveListener(id)
	e.Invoke(1)
	if total != 21 {
		t.Errorf("Expected 21 after removing first listener, got %d", total)
	}

	var plain Event
	fired := false
	plain.AddListener(func() { fired = true })
	plain.Invoke()
	if !fired || plain.GetListenerCount() != 1 {
		t.Error("Plain event listener did not fire")
	}
}
