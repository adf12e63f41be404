// Package epa implements the Expanding Polytope Algorithm for 2D penetration depth.
//
// EPA is run after gjk.Test detects an intersection. Starting from GJK's terminal
// triangle, it repeatedly splits the polytope edge closest to the origin at the
// Minkowski difference support point along that edge's normal, until the edge
// lies on the true boundary. That edge gives the minimum translation:
//   - Depth: how far the shapes overlap
//   - Normal: the direction, from A outward, to separate them
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
//   - dyn4j: "EPA (Expanding Polytope Algorithm)" (2010)
package epa

import (
	"math"

	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/internal/vec"
	"github.com/akmonengine/feather2d/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Small initial capacity for the polytope, which grows by one edge per iteration.
const polytopeInitialCapacity = 8

// Result is the minimum translation separating two overlapping shapes.
type Result struct {
	Depth float64
	// Normal is a unit vector pointing from shape A outward.
	Normal mgl64.Vec2
}

// State is the EPA state of one overlapping pair. It is mutated by Solve and
// must not be shared between goroutines.
type State struct {
	ShapeA   shape.ConvexShape
	ShapeB   shape.ConvexShape
	Polytope *Polytope
	Winding  Winding
	Config   config.Penetration
}

// NewState builds the initial polytope from the simplex of a GJK state that
// confirmed an intersection.
func NewState(g *gjk.State) *State {
	points := g.Simplex.Slice()
	winding := determineWinding(points)

	polytope := NewPolytope()
	for i := range points {
		j := (i + 1) % len(points)
		polytope.Push(buildEdge(points[i], points[j], winding))
	}

	return &State{
		ShapeA:   g.ShapeA,
		ShapeB:   g.ShapeB,
		Polytope: polytope,
		Winding:  winding,
		Config:   config.Default().Penetration,
	}
}

// WithConfig replaces the epsilon and iteration budget of s and returns s.
func (s *State) WithConfig(cfg config.Penetration) *State {
	s.Config = cfg
	return s
}

// Solve expands the polytope until the closest edge stops moving and writes the
// penetration into dst.
//
// It reports true on convergence. When the iteration budget runs out, dst holds
// the best estimate from the last edge examined and Solve reports false.
// Two circles are solved analytically; if they do not overlap dst is left
// untouched and Solve reports false.
func Solve(state *State, dst *Result) bool {
	c1, okA := state.ShapeA.Circle()
	c2, okB := state.ShapeB.Circle()
	if okA && okB {
		return circleSolve(c1, c2, dst)
	}

	if state.Polytope.Len() == 0 {
		return false
	}

	var edge Edge
	var point mgl64.Vec2
	for i := 0; i < state.Config.MaxIterations; i++ {
		edge = state.Polytope.Peek()
		point = gjk.MinkowskiSupport(state.ShapeA, state.ShapeB, edge.Normal)

		projection := point.Dot(edge.Normal)
		if math.Abs(projection-edge.Distance) < state.Config.Epsilon {
			// The support point does not reach past the edge: it is on the boundary
			dst.Depth = projection
			dst.Normal = edge.Normal
			return true
		}

		expand(state, point)
	}

	if state.Config.MaxIterations <= 0 {
		edge = state.Polytope.Peek()
		point = gjk.MinkowskiSupport(state.ShapeA, state.ShapeB, edge.Normal)
	}
	dst.Depth = point.Dot(edge.Normal)
	dst.Normal = edge.Normal
	return false
}

// Penetration tests a and b with GJK and, when they intersect, solves EPA with
// default settings. It reports false when the shapes are separated.
func Penetration(a, b shape.ConvexShape) (Result, bool) {
	g := gjk.NewState(a, b)
	if !gjk.Test(g) {
		return Result{}, false
	}

	var result Result
	Solve(NewState(g), &result)
	return result, true
}

// expand splits the closest edge a → b into a → point → b.
func expand(state *State, point mgl64.Vec2) {
	edge := state.Polytope.Pop()
	state.Polytope.Push(
		buildEdge(edge.P1, point, state.Winding),
		buildEdge(point, edge.P2, state.Winding),
	)
}

// circleSolve computes the overlap of two circles analytically.
func circleSolve(c1, c2 *shape.Circle, dst *Result) bool {
	dir := c2.Center.Sub(c1.Center)
	radii := c1.Radius + c2.Radius
	if dir.LenSqr() > radii*radii {
		return false
	}

	normal, length := vec.Normalize(dir)
	if length == 0 {
		// Concentric circles, any direction separates them
		normal = vec.Up
	}
	dst.Depth = radii - length
	dst.Normal = normal
	return true
}
