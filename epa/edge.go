package epa

import (
	"math"

	"github.com/akmonengine/feather2d/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// Winding is the rotational order of the polytope vertices, fixed per solve.
type Winding int

const (
	CW Winding = iota
	CCW
)

func (w Winding) String() string {
	if w == CW {
		return "cw"
	}
	return "ccw"
}

// Edge is a polytope boundary segment from P1 to P2.
type Edge struct {
	P1, P2 mgl64.Vec2
	// Normal points away from the polytope interior.
	Normal mgl64.Vec2
	// Distance from the origin to the edge's line, |dot(P1, Normal)|.
	Distance float64
}

// buildEdge creates the edge p1 → p2 whose normal is (p2 - p1) rotated toward
// the outside of a polytope with the given winding.
//
// A zero-length edge has no normal; it is given an infinite distance so the
// polytope never selects it.
func buildEdge(p1, p2 mgl64.Vec2, winding Winding) Edge {
	d := p2.Sub(p1)
	var normal mgl64.Vec2
	switch winding {
	case CW:
		normal = vec.RotateCCW(d)
	case CCW:
		normal = vec.RotateCW(d)
	}

	normal, length := vec.Normalize(normal)
	if length == 0 {
		return Edge{P1: p1, P2: p2, Distance: math.Inf(1)}
	}

	return Edge{
		P1:       p1,
		P2:       p2,
		Normal:   normal,
		Distance: math.Abs(p1.Dot(normal)),
	}
}

// determineWinding returns the sign of the first nonzero cross product between
// consecutive points, CCW when all of them are collinear with the origin.
func determineWinding(points []mgl64.Vec2) Winding {
	for i := range points {
		j := (i + 1) % len(points)
		cross := vec.Cross(points[i], points[j])
		if cross > 0 {
			return CCW
		} else if cross < 0 {
			return CW
		}
	}
	return CCW
}
