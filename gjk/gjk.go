// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for 2D convex shapes.
//
// Two independent queries live here:
//   - Step/Test answer "do the shapes overlap?" by driving a simplex state machine
//     in Minkowski difference space until it encloses the origin or a separating
//     axis is found. The terminal State of an overlapping pair feeds the epa package.
//   - Distance computes the separation distance, normal and closest points of shapes
//     that do not overlap.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - dyn4j: "GJK - Distance & Closest Points" (2010)
package gjk

import (
	"math"
	"sync"

	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/internal/vec"
	"github.com/akmonengine/feather2d/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// machineEpsilon is the float64 spacing at 1.0.
const machineEpsilon = 2.220446049250313e-16

// Simplex holds up to 3 points in Minkowski difference space, oldest first.
// Size progression: 1 point → 2 points (line) → 3 points (triangle).
type Simplex struct {
	Points [3]mgl64.Vec2
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// Push appends p. It reports false, leaving the simplex untouched, when full.
func (s *Simplex) Push(p mgl64.Vec2) bool {
	if s.Count == len(s.Points) {
		return false
	}
	s.Points[s.Count] = p
	s.Count++
	return true
}

// Remove drops the point at index i, keeping the order of the others.
func (s *Simplex) Remove(i int) {
	copy(s.Points[i:s.Count], s.Points[i+1:s.Count])
	s.Count--
}

// Slice returns the live points.
func (s *Simplex) Slice() []mgl64.Vec2 {
	return s.Points[:s.Count]
}

// Result is the outcome of a single Step.
type Result int

const (
	Working Result = iota
	Intersection
	NoIntersection
)

func (r Result) String() string {
	switch r {
	case Working:
		return "working"
	case Intersection:
		return "intersection"
	case NoIntersection:
		return "no intersection"
	}
	return "unknown"
}

// State is the GJK intersection state for one pair of shapes.
// A State must not be stepped from several goroutines at once.
type State struct {
	ShapeA    shape.ConvexShape
	ShapeB    shape.ConvexShape
	Simplex   Simplex
	Direction mgl64.Vec2
	Config    config.Intersection
}

var StatePool = sync.Pool{
	New: func() interface{} {
		return &State{}
	},
}

// NewState creates a fresh intersection state with the default configuration.
func NewState(a, b shape.ConvexShape) *State {
	s := &State{}
	s.Reset(a, b)
	return s
}

// Reset prepares s for a new query, so pooled states can be reused.
func (s *State) Reset(a, b shape.ConvexShape) {
	s.ShapeA = a
	s.ShapeB = b
	s.Simplex.Reset()
	s.Direction = mgl64.Vec2{}
	s.Config = config.Default().Intersection
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B):
//
//	furthestPoint(A, direction) - furthestPoint(B, -direction)
func MinkowskiSupport(a, b shape.ConvexShape, direction mgl64.Vec2) mgl64.Vec2 {
	supportA := a.Support(direction)
	supportB := b.Support(direction.Mul(-1))
	return supportA.Sub(supportB)
}

// MinkowskiSupportInto writes MinkowskiSupport(a, b, direction) into dst and returns dst.
func MinkowskiSupportInto(a, b shape.ConvexShape, direction mgl64.Vec2, dst *mgl64.Vec2) *mgl64.Vec2 {
	*dst = MinkowskiSupport(a, b, direction)
	return dst
}

// Step advances the state machine by one transition.
//
// Behavior by simplex size:
//   - 0 points: circles are tested analytically; otherwise search toward B from A
//   - 1 point: search back the other way
//   - 2 points: search perpendicular to the segment, toward the origin
//   - 3 points: keep the edge facing the origin, or report the enclosed origin
//
// Every non-terminal transition appends a new support point; if that point does
// not reach the origin along the search direction the shapes are separated.
func Step(state *State) Result {
	switch state.Simplex.Count {
	case 0:
		c1, okA := state.ShapeA.Circle()
		c2, okB := state.ShapeB.Circle()
		if okA && okB {
			if circlesOverlap(c1, c2) {
				return Intersection
			}
			return NoIntersection
		}

		state.Direction = state.ShapeB.Center.Sub(state.ShapeA.Center)
		if state.Direction.LenSqr() < 1e-8 {
			// Coincident centers, any axis will do
			state.Direction = mgl64.Vec2{1, 0}
		}
	case 1:
		state.Direction = state.Direction.Mul(-1)
	case 2:
		line(state)
	case 3:
		if triangle(state) {
			return Intersection
		}
	}

	if addSupport(state) {
		return Working
	}
	return NoIntersection
}

// line points the search direction from segment BA toward the origin.
func line(state *State) {
	b := state.Simplex.Points[0]
	a := state.Simplex.Points[1]
	ba := a.Sub(b)
	bo := b.Mul(-1)

	direction := vec.TripleProduct(ba, bo, ba)
	if direction.LenSqr() <= machineEpsilon {
		// The origin lies on the line: either side is valid
		direction = vec.RotateCCW(ba)
	}
	state.Direction = direction
}

// triangle reports whether the origin is enclosed. Otherwise it drops the vertex
// opposite to the edge facing the origin and aims the search through that edge.
func triangle(state *State) bool {
	c := state.Simplex.Points[0]
	b := state.Simplex.Points[1]
	a := state.Simplex.Points[2] // Most recent point

	ao := a.Mul(-1)
	ab := b.Sub(a)
	ac := c.Sub(a)

	// Edge normals pointing away from the third vertex
	abPerp := vec.TripleProduct(ac, ab, ab)
	acPerp := vec.TripleProduct(ab, ac, ac)

	if abPerp.Dot(ao) > 0 {
		state.Simplex.Remove(0) // drop C
		state.Direction = abPerp
		return false
	}

	if acPerp.Dot(ao) > 0 {
		state.Simplex.Remove(1) // drop B
		state.Direction = acPerp
		return false
	}

	return true
}

// addSupport appends the support point along the current direction and reports
// whether it passes the origin.
func addSupport(state *State) bool {
	point := MinkowskiSupport(state.ShapeA, state.ShapeB, state.Direction)
	if !state.Simplex.Push(point) {
		return false
	}
	return state.Direction.Dot(point) >= 0
}

// Run drives Step until it stops returning Working and returns the final Result.
// On Intersection the simplex holds 3 points enclosing the origin, unless both
// shapes are circles.
//
// Config.MaxIterations bounds the number of steps. When it runs out Run returns
// Working: the pair is undecided, neither overlapping nor separated.
func Run(state *State) Result {
	maxIterations := state.Config.MaxIterations
	if maxIterations <= 0 {
		maxIterations = math.MaxInt
	}

	result := Step(state)
	for i := 1; result == Working && i < maxIterations; i++ {
		result = Step(state)
	}
	return result
}

// Test reports whether the shapes of state intersect. An undecided Run counts
// as no intersection; use Run to tell the two apart.
func Test(state *State) bool {
	return Run(state) == Intersection
}

// Intersect runs Test on a fresh state for a and b.
func Intersect(a, b shape.ConvexShape) bool {
	return Test(NewState(a, b))
}

// circlesOverlap is the analytic test, touching included.
func circlesOverlap(c1, c2 *shape.Circle) bool {
	radii := c1.Radius + c2.Radius
	return c2.Center.Sub(c1.Center).LenSqr() <= radii*radii
}
