// Package shape defines the convex 2D shapes understood by the gjk and epa
// packages, and the support mapping that is their only geometric query.
//
// Shapes are expected to be well formed: circles with a positive radius and
// convex polygons with at least three vertices. Nothing here validates them.
package shape

import (
	"math"

	"github.com/akmonengine/feather2d/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType identifies a Shape implementation.
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypePolygon
)

// Shape is the interface that all convex shapes must implement.
type Shape interface {
	Type() ShapeType
	// Support returns the point of the shape farthest along direction.
	Support(direction mgl64.Vec2) mgl64.Vec2
	// Centroid is the reference point used to seed search directions.
	Centroid() mgl64.Vec2
	ComputeAABB() AABB
}

// Circle is a disc in world space.
type Circle struct {
	Center mgl64.Vec2
	Radius float64
}

func (c *Circle) Type() ShapeType {
	return ShapeTypeCircle
}

func (c *Circle) Support(direction mgl64.Vec2) mgl64.Vec2 {
	return SupportCircle(c, direction)
}

func (c *Circle) Centroid() mgl64.Vec2 {
	return c.Center
}

func (c *Circle) ComputeAABB() AABB {
	return AABB{Center: c.Center, Extents: mgl64.Vec2{c.Radius, c.Radius}}
}

// Polygon is a convex polygon given by its world-space vertices.
// The vertex order only matters for tie-breaking in Support.
type Polygon struct {
	Vertices []mgl64.Vec2
}

func (p *Polygon) Type() ShapeType {
	return ShapeTypePolygon
}

func (p *Polygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	return SupportPolygon(p, direction)
}

// Centroid returns the average of the vertices.
func (p *Polygon) Centroid() mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	if len(p.Vertices) == 0 {
		return sum
	}
	return sum.Mul(1.0 / float64(len(p.Vertices)))
}

func (p *Polygon) ComputeAABB() AABB {
	min := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	max := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, v := range p.Vertices {
		min[0] = math.Min(min[0], v[0])
		min[1] = math.Min(min[1], v[1])
		max[0] = math.Max(max[0], v[0])
		max[1] = math.Max(max[1], v[1])
	}
	return FromMinMax(min, max)
}

// SupportCircle returns center + radius * normalize(direction).
// A zero direction yields the center.
func SupportCircle(c *Circle, direction mgl64.Vec2) mgl64.Vec2 {
	n, _ := vec.Normalize(direction)
	return c.Center.Add(n.Mul(c.Radius))
}

// SupportPolygon scans every vertex and returns the first one maximizing
// dot(vertex, direction).
func SupportPolygon(p *Polygon, direction mgl64.Vec2) mgl64.Vec2 {
	best := 0
	maxDot := math.Inf(-1)
	for i, v := range p.Vertices {
		if d := v.Dot(direction); maxDot < d {
			maxDot = d
			best = i
		}
	}
	return p.Vertices[best]
}

// ConvexShape pairs a shape with the center used to seed GJK searches.
// The support mapping is bound once, through the Shape interface.
type ConvexShape struct {
	Center mgl64.Vec2
	Shape  Shape
}

// NewConvexShape wraps s, using its centroid as the center.
func NewConvexShape(s Shape) ConvexShape {
	return ConvexShape{Center: s.Centroid(), Shape: s}
}

// NewCircle builds a ConvexShape around a new Circle.
func NewCircle(center mgl64.Vec2, radius float64) ConvexShape {
	return NewConvexShape(&Circle{Center: center, Radius: radius})
}

// NewPolygon builds a ConvexShape around a new Polygon. vertices is not copied.
func NewPolygon(vertices ...mgl64.Vec2) ConvexShape {
	return NewConvexShape(&Polygon{Vertices: vertices})
}

// NewBox builds an axis-aligned box polygon from its center and half extents.
func NewBox(center, extents mgl64.Vec2) ConvexShape {
	box := NewAABB(center, extents)
	return ConvexShape{Center: box.Center, Shape: &Polygon{Vertices: box.Vertices()}}
}

// Support returns the farthest point of the wrapped shape along direction.
func (c ConvexShape) Support(direction mgl64.Vec2) mgl64.Vec2 {
	return c.Shape.Support(direction)
}

// SupportInto writes Support(direction) into dst and returns dst.
func (c ConvexShape) SupportInto(direction mgl64.Vec2, dst *mgl64.Vec2) *mgl64.Vec2 {
	*dst = c.Shape.Support(direction)
	return dst
}

// Circle returns the wrapped circle, if the shape is one.
func (c ConvexShape) Circle() (*Circle, bool) {
	circle, ok := c.Shape.(*Circle)
	return circle, ok
}
