package vec

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCross(t *testing.T) {
	assert.Equal(t, 1.0, Cross(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}))
	assert.Equal(t, -1.0, Cross(mgl64.Vec2{0, 1}, mgl64.Vec2{1, 0}))
	assert.Equal(t, 0.0, Cross(mgl64.Vec2{2, 2}, mgl64.Vec2{-3, -3}))
}

func TestTripleProduct(t *testing.T) {
	// Perpendicular to the x axis, toward (1, 1).
	got := TripleProduct(mgl64.Vec2{2, 0}, mgl64.Vec2{1, 1}, mgl64.Vec2{2, 0})
	assert.InDelta(t, 0.0, got.X(), 1e-12)
	assert.Greater(t, got.Y(), 0.0)

	// Collinear input has no perpendicular component.
	got = TripleProduct(mgl64.Vec2{1, 1}, mgl64.Vec2{2, 2}, mgl64.Vec2{1, 1})
	assert.True(t, IsZero(got))
}

func TestRotate(t *testing.T) {
	assert.Equal(t, mgl64.Vec2{0, 1}, RotateCCW(mgl64.Vec2{1, 0}))
	assert.Equal(t, mgl64.Vec2{0, -1}, RotateCW(mgl64.Vec2{1, 0}))
}

func TestNormalize(t *testing.T) {
	n, l := Normalize(mgl64.Vec2{3, 4})
	assert.InDelta(t, 5.0, l, 1e-12)
	assert.InDelta(t, 0.6, n.X(), 1e-12)
	assert.InDelta(t, 0.8, n.Y(), 1e-12)

	n, l = Normalize(mgl64.Vec2{})
	assert.Equal(t, mgl64.Vec2{}, n)
	assert.Equal(t, 0.0, l)
}
