// Package geom holds the 2D geometry used to place stickers on a container:
// vectors, rotated bounding boxes, containment and the mapping between a
// sticker's local frame and container coordinates.
//
// Angles are in degrees throughout. Functions are pure and total: degenerate
// input has a defined result instead of an error.
package geom

import "math"

// Vec is a 2D point or vector.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v+w.
func (v Vec) Add(w Vec) Vec {
	return Vec{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns v scaled by f.
func (v Vec) Mul(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the Euclidean norm of v.
func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec) IsFinite() bool {
	return finite(v.X) && finite(v.Y)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Normalize returns the unit vector pointing along v, or the zero vector
// when v has no length.
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Rotate returns v rotated by deg degrees about the origin. With y pointing
// down, a positive angle turns clockwise on screen. A zero angle returns v
// untouched.
func (v Vec) Rotate(deg float64) Vec {
	if deg == 0 {
		return v
	}
	sin, cos := sincos(deg)
	return Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perpendicular returns v turned by a quarter: (x, y) -> (-y, x).
func (v Vec) Perpendicular() Vec {
	return Vec{X: -v.Y, Y: v.X}
}

// AngleDegrees returns the angle of v from the positive x axis in
// (-180, 180].
func (v Vec) AngleDegrees() float64 {
	a := Rad2Deg(math.Atan2(v.Y, v.X))
	if a <= -180 {
		a += 360
	}
	return a
}

// Size is the extent of a rectangle.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// Degenerate reports whether either dimension is zero or negative, which
// is how an unmeasured sticker or container shows up.
func (s Size) Degenerate() bool {
	return !(s.W > 0 && s.H > 0)
}

// Center returns the midpoint of a rectangle of this size placed at the
// origin.
func (s Size) Center() Vec {
	return Vec{X: s.W / 2, Y: s.H / 2}
}

// NormalizeAngle folds deg into [0, 360). Non-finite input yields 0.
func NormalizeAngle(deg float64) float64 {
	if !finite(deg) {
		return 0
	}
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// a tiny negative remainder rounds up to 360 after the addition
	if a >= 360 {
		a = 0
	}
	return a
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// sincos returns exact values on the quarter turns so that 90 and 270 swap
// axes without drift.
func sincos(deg float64) (sin, cos float64) {
	switch NormalizeAngle(deg) {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(Deg2Rad(deg))
}
