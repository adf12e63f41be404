package shape

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec2Equal(a, b mgl64.Vec2, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance
}

func TestSupportCircle(t *testing.T) {
	circle := &Circle{Center: mgl64.Vec2{1, 2}, Radius: 2}

	tests := []struct {
		name      string
		direction mgl64.Vec2
		expected  mgl64.Vec2
	}{
		{"positive x", mgl64.Vec2{1, 0}, mgl64.Vec2{3, 2}},
		{"negative y", mgl64.Vec2{0, -5}, mgl64.Vec2{1, 0}},
		{"diagonal", mgl64.Vec2{1, 1}, mgl64.Vec2{1 + math.Sqrt2, 2 + math.Sqrt2}},
		{"zero direction returns center", mgl64.Vec2{}, mgl64.Vec2{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SupportCircle(circle, tt.direction)
			assert.True(t, vec2Equal(got, tt.expected, 1e-9), "SupportCircle(%v) = %v, want %v", tt.direction, got, tt.expected)
			assert.Equal(t, got, circle.Support(tt.direction))
		})
	}
}

func TestSupportPolygon(t *testing.T) {
	triangle := &Polygon{Vertices: []mgl64.Vec2{{0, 0}, {4, 0}, {0, 3}}}

	tests := []struct {
		name      string
		direction mgl64.Vec2
		expected  mgl64.Vec2
	}{
		{"right", mgl64.Vec2{1, 0}, mgl64.Vec2{4, 0}},
		{"up", mgl64.Vec2{0, 1}, mgl64.Vec2{0, 3}},
		{"down left", mgl64.Vec2{-1, -1}, mgl64.Vec2{0, 0}},
		// (0,0) and (0,3) tie on -x, the first one wins
		{"tie keeps first vertex", mgl64.Vec2{-1, 0}, mgl64.Vec2{0, 0}},
		{"zero direction keeps first vertex", mgl64.Vec2{}, mgl64.Vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SupportPolygon(triangle, tt.direction))
		})
	}
}

func TestConvexShape(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		cs := NewCircle(mgl64.Vec2{5, 5}, 1)
		assert.Equal(t, mgl64.Vec2{5, 5}, cs.Center)

		c, ok := cs.Circle()
		require.True(t, ok)
		assert.Equal(t, 1.0, c.Radius)
		assert.Equal(t, ShapeTypeCircle, cs.Shape.Type())
	})

	t.Run("box", func(t *testing.T) {
		cs := NewBox(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 2})
		assert.Equal(t, mgl64.Vec2{0, 0}, cs.Center)
		assert.Equal(t, ShapeTypePolygon, cs.Shape.Type())

		_, ok := cs.Circle()
		assert.False(t, ok)

		assert.Equal(t, mgl64.Vec2{1, 2}, cs.Support(mgl64.Vec2{1, 1}))

		var dst mgl64.Vec2
		got := cs.SupportInto(mgl64.Vec2{-1, -1}, &dst)
		assert.Same(t, &dst, got)
		assert.Equal(t, mgl64.Vec2{-1, -2}, dst)
	})

	t.Run("polygon center is vertex average", func(t *testing.T) {
		cs := NewPolygon(mgl64.Vec2{0, 0}, mgl64.Vec2{3, 0}, mgl64.Vec2{0, 3})
		assert.True(t, vec2Equal(cs.Center, mgl64.Vec2{1, 1}, 1e-12))
	})
}

func TestComputeAABB(t *testing.T) {
	circle := &Circle{Center: mgl64.Vec2{1, 1}, Radius: 0.5}
	box := circle.ComputeAABB()
	assert.Equal(t, mgl64.Vec2{0.5, 0.5}, box.Min())
	assert.Equal(t, mgl64.Vec2{1.5, 1.5}, box.Max())

	poly := &Polygon{Vertices: []mgl64.Vec2{{-1, 0}, {2, -3}, {0, 4}}}
	box = poly.ComputeAABB()
	assert.Equal(t, mgl64.Vec2{-1, -3}, box.Min())
	assert.Equal(t, mgl64.Vec2{2, 4}, box.Max())
}
