// Package mathx holds the scalar helpers the movement code needs on top of raymath.
package mathx

import "cmp"

// MoveToward moves from toward to by at most step. It never overshoots to.
func MoveToward(from, to, step float32) float32 {
	if step <= 0 {
		return from
	}
	if to-from > step {
		return from + step
	}
	if from-to > step {
		return from - step
	}
	return to
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
