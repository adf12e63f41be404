package shape

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box by center and half extents.
type AABB struct {
	Center  mgl64.Vec2
	Extents mgl64.Vec2
}

// NewAABB creates a box from its center and half extents.
func NewAABB(center, extents mgl64.Vec2) AABB {
	return AABB{Center: center, Extents: extents}
}

// FromMinMax creates the box spanning min to max.
func FromMinMax(min, max mgl64.Vec2) AABB {
	return AABB{
		Center:  min.Add(max).Mul(0.5),
		Extents: max.Sub(min).Mul(0.5),
	}
}

func (a AABB) Min() mgl64.Vec2 {
	return a.Center.Sub(a.Extents)
}

func (a AABB) Max() mgl64.Vec2 {
	return a.Center.Add(a.Extents)
}

// Vertices returns the four corners: min, (max.x, min.y), (min.x, max.y), max.
func (a AABB) Vertices() []mgl64.Vec2 {
	min, max := a.Min(), a.Max()
	return []mgl64.Vec2{
		min,
		{max.X(), min.Y()},
		{min.X(), max.Y()},
		max,
	}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	min, max := a.Min(), a.Max()
	return point.X() >= min.X() && point.X() <= max.X() &&
		point.Y() >= min.Y() && point.Y() <= max.Y()
}

// Overlaps checks if two AABBs overlap, touching included
func (a AABB) Overlaps(other AABB) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := other.Min(), other.Max()
	return aMax.X() >= bMin.X() && aMin.X() <= bMax.X() &&
		aMax.Y() >= bMin.Y() && aMin.Y() <= bMax.Y()
}
