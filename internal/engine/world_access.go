package engine

// WorldAccess gives components access to world-level queries
// without creating circular import dependencies.
type WorldAccess interface {
	GetCollidableObjects() []*GameObject
}
