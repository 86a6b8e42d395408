package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Skin is the penetration depth below which two boxes count as touching, not overlapping.
const Skin = 1e-4

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3Scale(size, 0.5)
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Translate returns the box moved by offset.
func (a AABB) Translate(offset rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Add(a.Min, offset), Max: rl.Vector3Add(a.Max, offset)}
}

// Overlaps reports penetration deeper than Skin on every axis.
// Boxes sharing a face do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X-Skin && a.Max.X > b.Min.X+Skin &&
		a.Min.Y < b.Max.Y-Skin && a.Max.Y > b.Min.Y+Skin &&
		a.Min.Z < b.Max.Z-Skin && a.Max.Z > b.Min.Z+Skin
}

// Axis indexes the components of a vector.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Component returns v's value along axis.
func Component(v rl.Vector3, axis Axis) float32 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	}
	return v.Z
}

// SetComponent sets v's value along axis.
func SetComponent(v *rl.Vector3, axis Axis, value float32) {
	switch axis {
	case AxisX:
		v.X = value
	case AxisY:
		v.Y = value
	default:
		v.Z = value
	}
}

// SweepAxis moves box by d along one axis and stops it at the first face it
// would cross. It returns the distance actually travelled and whether it was blocked.
func SweepAxis(box AABB, axis Axis, d float32, obstacles []AABB) (float32, bool) {
	if d == 0 {
		return 0, false
	}
	var offset rl.Vector3
	SetComponent(&offset, axis, d)
	moved := box.Translate(offset)

	travel := d
	blocked := false
	for _, o := range obstacles {
		// Obstacles the box already penetrates are ignored so it can move out of them.
		if !moved.Overlaps(o) || box.Overlaps(o) {
			continue
		}
		var limit float32
		if d > 0 {
			limit = Component(o.Min, axis) - Component(box.Max, axis)
			if limit < 0 {
				limit = 0
			}
			if limit < travel {
				travel = limit
			}
		} else {
			limit = Component(o.Max, axis) - Component(box.Min, axis)
			if limit > 0 {
				limit = 0
			}
			if limit > travel {
				travel = limit
			}
		}
		blocked = true
	}
	return travel, blocked
}
