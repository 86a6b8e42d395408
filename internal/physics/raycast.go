package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast intersects a ray with the box using the slab method. direction
// must be normalized. A ray starting inside the box hits its far face.
func (a AABB) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		o := Component(origin, axis)
		d := Component(direction, axis)
		lo := Component(a.Min, axis)
		hi := Component(a.Max, axis)

		if d == 0 {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return RaycastHit{Point: point, Normal: a.faceNormal(point), Distance: t}, true
}

// faceNormal picks the outward normal of the face point lies on.
func (a AABB) faceNormal(point rl.Vector3) rl.Vector3 {
	const epsilon = 0.001
	switch {
	case abs(point.X-a.Min.X) < epsilon:
		return rl.Vector3{X: -1}
	case abs(point.X-a.Max.X) < epsilon:
		return rl.Vector3{X: 1}
	case abs(point.Y-a.Min.Y) < epsilon:
		return rl.Vector3{Y: -1}
	case abs(point.Y-a.Max.Y) < epsilon:
		return rl.Vector3{Y: 1}
	case abs(point.Z-a.Min.Z) < epsilon:
		return rl.Vector3{Z: -1}
	}
	return rl.Vector3{Z: 1}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
