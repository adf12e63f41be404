// Package vec adds the few 2D operations mgl64.Vec2 does not provide.
package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the fallback normal when a direction cannot be derived.
var Up = mgl64.Vec2{0, 1}

// Cross returns the z component of the 3D cross product of a and b lifted to z=0.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// TripleProduct returns (a × b) × c, computed on z=0 lifts and projected back.
// With a == c it is the component of b perpendicular to a, scaled by |a|².
func TripleProduct(a, b, c mgl64.Vec2) mgl64.Vec2 {
	return a.Vec3(0).Cross(b.Vec3(0)).Cross(c.Vec3(0)).Vec2()
}

// RotateCCW rotates v by +90° about the origin.
func RotateCCW(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// RotateCW rotates v by -90° about the origin.
func RotateCW(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v.Y(), -v.X()}
}

// Normalize returns the unit vector of v and its original length.
// The zero vector normalizes to itself with length 0.
func Normalize(v mgl64.Vec2) (mgl64.Vec2, float64) {
	length := v.Len()
	if length == 0 || math.IsNaN(length) {
		return mgl64.Vec2{}, 0
	}
	return v.Mul(1.0 / length), length
}

// IsZero reports whether v is the zero vector within mgl64's float epsilon.
func IsZero(v mgl64.Vec2) bool {
	return v.ApproxEqual(mgl64.Vec2{})
}
