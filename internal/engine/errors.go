package engine

import "errors"

var (
	// ErrNodeNotFound is returned when a node path does not resolve in the scene graph.
	ErrNodeNotFound = errors.New("node not found")
	// ErrComponentNotFound is returned when a required sibling component is missing.
	ErrComponentNotFound = errors.New("component not found")
)
