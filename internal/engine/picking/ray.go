// Package picking provides ray casting against bounds, triangles and line
// segments.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top left.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	farWorld := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := farWorld.Sub(nearWorld)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: nearWorld, Direction: dir}
}

func unproject(invViewProj mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := invViewProj.Mul4x1(ndc)
	if p.W() != 0 {
		return p.Vec3().Mul(1 / p.W())
	}
	return p.Vec3()
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. If the ray starts inside the box, the exit
// distance is returned.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// DistanceToSegment returns the shortest distance between the ray and the
// segment a-b, and the ray parameter of the closest point on the ray.
// Closest points behind the ray origin are clamped to the origin.
func (r Ray) DistanceToSegment(a, b mgl32.Vec3) (dist, t float32) {
	seg := b.Sub(a)
	w := r.Origin.Sub(a)

	dd := r.Direction.Dot(r.Direction)
	ds := r.Direction.Dot(seg)
	ss := seg.Dot(seg)
	dw := r.Direction.Dot(w)
	sw := seg.Dot(w)

	denom := dd*ss - ds*ds
	var rayT, segT float32
	if denom < 1e-8 {
		// Parallel
		rayT = 0
		if ss > 0 {
			segT = sw / ss
		}
	} else {
		rayT = (ds*sw - ss*dw) / denom
		segT = (dd*sw - ds*dw) / denom
	}

	segT = mgl32.Clamp(segT, 0, 1)
	if ss > 0 {
		// Re-solve the ray parameter against the clamped segment point.
		rayT = seg.Mul(segT).Sub(w).Dot(r.Direction) / dd
	}
	if rayT < 0 {
		rayT = 0
		if ss > 0 {
			segT = mgl32.Clamp(sw/ss, 0, 1)
		}
	}

	closestRay := r.At(rayT)
	closestSeg := a.Add(seg.Mul(segT))
	return closestRay.Sub(closestSeg).Len(), rayT
}

// triangleEpsilon rejects rays nearly parallel to a triangle.
const triangleEpsilon = 1e-7

// IntersectTriangle tests the ray against triangle (a, b, c) from either
// side (Möller-Trumbore). t is in units of Direction, which need not be
// normalized. Hits behind the origin are misses.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t float32, hit bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Transform returns the ray mapped through m. Direction is not
// renormalized, so distances along the result match distances along r.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

// NewAABB creates an AABB from two corners, ordering each axis.
func NewAABB(a, b mgl32.Vec3) AABB {
	box := AABB{Min: a, Max: b}
	for axis := 0; axis < 3; axis++ {
		if box.Min[axis] > box.Max[axis] {
			box.Min[axis], box.Max[axis] = box.Max[axis], box.Min[axis]
		}
	}
	return box
}

// Corners returns the eight corners of the box.
func (b AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// TransformAABB transforms a local box by m and returns the world-space box
// enclosing all transformed corners.
func TransformAABB(local AABB, m mgl32.Mat4) AABB {
	corners := local.Corners()
	first := mgl32.TransformCoordinate(corners[0], m)
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := mgl32.TransformCoordinate(c, m)
		for axis := 0; axis < 3; axis++ {
			out.Min[axis] = math32.Min(out.Min[axis], p[axis])
			out.Max[axis] = math32.Max(out.Max[axis], p[axis])
		}
	}
	return out
}
