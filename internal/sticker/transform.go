// Package sticker resolves gestures on sticker overlays into transforms and
// keeps the set of stickers placed on a container.
package sticker

import (
	"golang.org/x/image/math/f64"

	"github.com/example/stickerkit/internal/geom"
)

// Scale bounds used by the editor.
const (
	MinScale = 0.4
	MaxScale = 4.0
)

// Limits bounds the scale a gesture may produce.
type Limits struct {
	MinScale float64
	MaxScale float64
}

// DefaultLimits returns the 0.4 to 4 scale range.
func DefaultLimits() Limits {
	return Limits{MinScale: MinScale, MaxScale: MaxScale}
}

// Clamp limits s to [MinScale, MaxScale].
func (l Limits) Clamp(s float64) float64 {
	return geom.Clamp(s, l.MinScale, l.MaxScale)
}

// Transform places one sticker on the container. Center is in container
// coordinates, Rotation in degrees within [0, 360). Size is the measured
// footprint of the untransformed sticker and is zero until layout reports
// it.
type Transform struct {
	Center   geom.Vec
	Scale    float64
	Rotation float64
	Size     geom.Size
}

// NewTransform returns the placement of a freshly added sticker: unscaled,
// unrotated and centered in the container.
func NewTransform(container geom.Size) Transform {
	return Transform{Center: container.Center(), Scale: 1}
}

// LocalToContainer maps a point from the sticker's local frame into the
// container.
func (t Transform) LocalToContainer(local geom.Vec) geom.Vec {
	return geom.LocalToContainer(local, t.Center, t.Size, t.Scale, t.Rotation)
}

// ContainerToLocal maps a container point into the sticker's local frame.
func (t Transform) ContainerToLocal(p geom.Vec) geom.Vec {
	return geom.ContainerToLocal(p, t.Center, t.Size, t.Scale, t.Rotation)
}

// ContainerDelta converts a displacement reported in the local frame into
// container space.
func (t Transform) ContainerDelta(local geom.Vec) geom.Vec {
	return local.Rotate(t.Rotation).Mul(t.Scale)
}

// HalfExtents returns the half size of the sticker's bounding box.
func (t Transform) HalfExtents() geom.Vec {
	return geom.HalfExtents(t.Size, t.Scale, t.Rotation)
}

// Matrix returns the rendering transform for the sticker.
func (t Transform) Matrix() f64.Aff3 {
	return geom.Matrix(t.Center, t.Size, t.Scale, t.Rotation)
}

// Contain re-clamps the center, for instance after the container was
// resized.
func Contain(t Transform, container geom.Size) Transform {
	t.Center = geom.ClampCenter(t.Center, container, t.Size, t.Scale, t.Rotation)
	return t
}

// Resize records a newly measured footprint and keeps the sticker inside
// the container with it.
func Resize(t Transform, container geom.Size, size geom.Size) Transform {
	if t.Size == size {
		return t
	}
	t.Size = size
	return Contain(t, container)
}

// ready reports whether layout has produced both sizes. Gestures that
// arrive before that are dropped.
func ready(t Transform, container geom.Size) bool {
	return !container.Degenerate() && !t.Size.Degenerate()
}

// scaleAnchor is the bottom-left corner relative to the local center.
func scaleAnchor(size geom.Size) geom.Vec {
	return geom.V(-size.W/2, size.H/2)
}

// rotateAnchor is the bottom-right corner relative to the local center.
func rotateAnchor(size geom.Size) geom.Vec {
	return geom.V(size.W/2, size.H/2)
}
