package gjk

import (
	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/internal/vec"
	"github.com/akmonengine/feather2d/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// SupportPoint is a Minkowski difference point that remembers where it came from.
// P == SupportA - SupportB.
type SupportPoint struct {
	P        mgl64.Vec2
	SupportA mgl64.Vec2
	SupportB mgl64.Vec2
}

// DistanceResult describes the separation of two disjoint shapes.
type DistanceResult struct {
	Distance float64
	// Normal is the unit vector from PointA to PointB.
	Normal mgl64.Vec2
	PointA mgl64.Vec2
	PointB mgl64.Vec2
}

// DistanceState is the input of a distance query.
type DistanceState struct {
	ShapeA    shape.ConvexShape
	ShapeB    shape.ConvexShape
	Direction mgl64.Vec2
	Config    config.Distance
}

// NewDistanceState creates a distance query with the default configuration.
func NewDistanceState(a, b shape.ConvexShape) *DistanceState {
	return &DistanceState{
		ShapeA: a,
		ShapeB: b,
		Config: config.Default().Distance,
	}
}

// WithConfig replaces the tolerance and iteration budget of s and returns s.
func (s *DistanceState) WithConfig(cfg config.Distance) *DistanceState {
	s.Config = cfg
	return s
}

// Distance computes the distance and closest points between the shapes of state.
//
// It reports false, leaving dst unspecified, when the shapes overlap or the query
// degenerates (the origin lies on the current simplex feature); run Test and the
// epa package for those. When the iteration budget runs out the best points found
// so far are reported.
func Distance(state *DistanceState, dst *DistanceResult) bool {
	c1, okA := state.ShapeA.Circle()
	c2, okB := state.ShapeB.Circle()
	if okA && okB {
		return circleDistance(c1, c2, dst)
	}

	tolerance := state.Config.Tolerance
	var a, b, c SupportPoint

	state.Direction = state.ShapeB.Center.Sub(state.ShapeA.Center)
	distanceSupport(state.ShapeA, state.ShapeB, state.Direction, &a)
	distanceSupport(state.ShapeA, state.ShapeB, state.Direction.Mul(-1), &b)
	state.Direction = closestPointToOrigin(a.P, b.P, tolerance)

	for i := 0; i < state.Config.MaxIterations; i++ {
		state.Direction = state.Direction.Mul(-1)
		if vec.IsZero(state.Direction) {
			return false
		}

		distanceSupport(state.ShapeA, state.ShapeB, state.Direction, &c)

		if originInTriangle(a.P, b.P, c.P) {
			return false
		}

		// No progress toward the origin: a-b is the closest feature
		dc := c.P.Dot(state.Direction)
		da := a.P.Dot(state.Direction)
		if dc-da < tolerance {
			closestPoints(a, b, dst)
			return true
		}

		// c is closer than a and b, keep whichever of them forms the closer edge with it
		p1 := closestPointToOrigin(a.P, c.P, tolerance)
		p2 := closestPointToOrigin(c.P, b.P, tolerance)
		p1m := p1.LenSqr()
		p2m := p2.LenSqr()

		if p1m < tolerance {
			closestPoints(a, c, dst)
			return true
		} else if p2m < tolerance {
			closestPoints(c, b, dst)
			return true
		}

		if p1m < p2m {
			b = c
			state.Direction = p1
		} else {
			a = c
			state.Direction = p2
		}
	}

	closestPoints(a, b, dst)
	return true
}

// ClosestPoints runs Distance on a fresh default state and returns a new result.
func ClosestPoints(a, b shape.ConvexShape) (DistanceResult, bool) {
	var result DistanceResult
	ok := Distance(NewDistanceState(a, b), &result)
	return result, ok
}

func distanceSupport(a, b shape.ConvexShape, direction mgl64.Vec2, dst *SupportPoint) {
	dst.SupportA = a.Support(direction)
	dst.SupportB = b.Support(direction.Mul(-1))
	dst.P = dst.SupportA.Sub(dst.SupportB)
}

// closestPointToOrigin returns the point of segment a-b closest to the origin.
// Segments shorter than tolerance collapse to a.
func closestPointToOrigin(a, b mgl64.Vec2, tolerance float64) mgl64.Vec2 {
	ab := b.Sub(a)
	ao := a.Mul(-1)
	abs := ab.LenSqr()
	if abs <= tolerance {
		return a
	}

	t := mgl64.Clamp(ao.Dot(ab)/abs, 0, 1)
	return a.Add(ab.Mul(t))
}

// originInTriangle reports whether the origin is strictly inside triangle abc.
func originInTriangle(a, b, c mgl64.Vec2) bool {
	ab := vec.Cross(a, b)
	bc := vec.Cross(b, c)
	ca := vec.Cross(c, a)

	// bc*ca is implied by the other two having the same sign
	return ab*bc > 0 && ca*ab > 0
}

// closestPoints reconstructs the points on the input shapes from segment a-b.
func closestPoints(a, b SupportPoint, dst *DistanceResult) {
	l := b.P.Sub(a.P)

	if vec.IsZero(l) {
		dst.PointA = a.SupportA
		dst.PointB = a.SupportB
	} else {
		lambda := -l.Dot(a.P) / l.LenSqr()
		switch {
		case lambda > 1:
			// Past b: its support points are the closest
			dst.PointA = b.SupportA
			dst.PointB = b.SupportB
		case lambda < 0:
			dst.PointA = a.SupportA
			dst.PointB = a.SupportB
		default:
			// (1 - lambda)*s1 + lambda*s2
			dst.PointA = a.SupportA.Add(b.SupportA.Sub(a.SupportA).Mul(lambda))
			dst.PointB = a.SupportB.Add(b.SupportB.Sub(a.SupportB).Mul(lambda))
		}
	}

	dst.Normal, dst.Distance = vec.Normalize(dst.PointB.Sub(dst.PointA))
}

// circleDistance is the analytic distance between two circles. Touching circles
// count as overlapping.
func circleDistance(c1, c2 *shape.Circle, dst *DistanceResult) bool {
	dir := c2.Center.Sub(c1.Center)
	radii := c1.Radius + c2.Radius
	if dir.LenSqr() <= radii*radii {
		return false
	}

	normal, length := vec.Normalize(dir)
	dst.Distance = length - radii
	dst.Normal = normal
	dst.PointA = c1.Center.Add(normal.Mul(c1.Radius))
	dst.PointB = c2.Center.Sub(normal.Mul(c2.Radius))
	return true
}
