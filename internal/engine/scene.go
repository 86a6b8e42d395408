package engine

import (
	"fmt"
	"strings"

	"locomotion/internal/input"
)

// Scene owns the root GameObjects. Children are reached through their parents.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	World       WorldAccess
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	g.setScene(s)
	s.GameObjects = append(s.GameObjects, g)
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			g.setScene(nil)
			return
		}
	}
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// GetNode resolves an absolute path such as "/Player/CameraPivot".
func (s *Scene) GetNode(path string) (*GameObject, error) {
	root, rest, _ := strings.Cut(strings.TrimLeft(path, "/"), "/")
	g := s.FindByName(root)
	if g == nil {
		return nil, fmt.Errorf("%w: %q in scene %s", ErrNodeNotFound, path, s.Name)
	}
	return g.GetNode(rest)
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	s.Walk(func(g *GameObject) {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	})
	return result
}

// Walk visits every object in the scene, parents before children.
func (s *Scene) Walk(fn func(g *GameObject)) {
	var visit func(g *GameObject)
	visit = func(g *GameObject) {
		fn(g)
		for _, child := range g.Children {
			visit(child)
		}
	}
	for _, g := range s.GameObjects {
		visit(g)
	}
}

// Start starts every object and stops at the first failure.
func (s *Scene) Start() error {
	for _, g := range s.GameObjects {
		if err := g.Start(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) Input(ev input.Event) {
	for _, g := range s.GameObjects {
		g.Input(ev)
	}
}

func (s *Scene) PhysicsUpdate(delta float32) {
	for _, g := range s.GameObjects {
		g.PhysicsUpdate(delta)
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
