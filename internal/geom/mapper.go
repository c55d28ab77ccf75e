package geom

import "golang.org/x/image/math/f64"

// LocalToContainer maps a point from the sticker's untransformed frame
// (origin at its top-left corner) into container coordinates. The sticker
// is pivoted about its own center: offset from the local center, rotate,
// scale, then move to center.
func LocalToContainer(local, center Vec, size Size, scale, rotation float64) Vec {
	rel := local.Sub(size.Center())
	return center.Add(rel.Rotate(rotation).Mul(scale))
}

// ContainerToLocal inverts LocalToContainer. A zero scale collapses the
// sticker to a point, so every container point maps to the local center.
func ContainerToLocal(p, center Vec, size Size, scale, rotation float64) Vec {
	if scale == 0 {
		return size.Center()
	}
	rel := p.Sub(center).Mul(1 / scale).Rotate(-rotation)
	return rel.Add(size.Center())
}

// Matrix returns the affine transform that renders a sticker of the given
// size: translate by -size/2, scale, rotate, translate to center. Applying
// it to a local point gives the same result as LocalToContainer.
func Matrix(center Vec, size Size, scale, rotation float64) f64.Aff3 {
	sin, cos := sincos(rotation)
	// 0 - x instead of -x keeps a zero entry from printing as -0
	a, b := scale*cos, 0-scale*sin
	d, e := scale*sin, scale*cos
	c := size.Center()
	return f64.Aff3{
		a, b, center.X - (a*c.X + b*c.Y),
		d, e, center.Y - (d*c.X + e*c.Y),
	}
}

// Apply transforms v by m.
func Apply(m f64.Aff3, v Vec) Vec {
	return Vec{
		X: m[0]*v.X + m[1]*v.Y + m[2],
		Y: m[3]*v.X + m[4]*v.Y + m[5],
	}
}
