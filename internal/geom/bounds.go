package geom

import "math"

// HalfExtents returns the half width and half height of the axis-aligned
// box enclosing a size rectangle scaled by scale and rotated by rotation
// degrees about its center. The result is exact for every angle.
func HalfExtents(size Size, scale, rotation float64) Vec {
	hw := size.W * scale / 2
	hh := size.H * scale / 2
	sin, cos := sincos(rotation)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return Vec{
		X: hw*cos + hh*sin,
		Y: hw*sin + hh*cos,
	}
}

// ClampCenter moves candidate so that the rotated, scaled sticker stays
// inside a container placed at the origin. Each axis is handled on its own.
// When the box is wider (or taller) than the container that axis snaps to
// the container midpoint. A degenerate container or sticker leaves
// candidate untouched.
func ClampCenter(candidate Vec, container, size Size, scale, rotation float64) Vec {
	if container.Degenerate() || size.Degenerate() {
		return candidate
	}
	half := HalfExtents(size, scale, rotation)
	return Vec{
		X: clampAxis(candidate.X, half.X, container.W),
		Y: clampAxis(candidate.Y, half.Y, container.H),
	}
}

func clampAxis(v, half, extent float64) float64 {
	lo, hi := half, extent-half
	if lo > hi {
		return extent / 2
	}
	return Clamp(v, lo, hi)
}
