package sticker

import "github.com/example/stickerkit/internal/geom"

// ScaleGesture is the state of an incremental scale-handle drag. It is
// created by BeginScale when the drag starts and threaded through Step.
type ScaleGesture struct {
	dir    geom.Vec
	base   float64
	radius float64
}

// BeginScale starts an incremental scale gesture on t.
func BeginScale(t Transform) ScaleGesture {
	base := scaleAnchor(t.Size)
	return ScaleGesture{
		dir:    base.Rotate(t.Rotation).Normalize(),
		base:   base.Length(),
		radius: base.Length() * t.Scale,
	}
}

// Step projects a local drag delta onto the handle direction and turns the
// accumulated distance from the center into a scale. The center stays put
// apart from clamping.
func (g ScaleGesture) Step(t Transform, container geom.Size, localDelta geom.Vec, limits Limits) (Transform, ScaleGesture) {
	if !ready(t, container) || g.base == 0 || !localDelta.IsFinite() {
		return t, g
	}
	g.radius += t.ContainerDelta(localDelta).Dot(g.dir)
	scale := limits.Clamp(g.radius / g.base)
	// overshoot past the limits is not remembered
	g.radius = scale * g.base
	t.Center = geom.ClampCenter(t.Center, container, t.Size, scale, t.Rotation)
	t.Scale = scale
	return t, g
}

// RotateGesture is the state of an incremental rotate-handle drag.
type RotateGesture struct {
	base  geom.Vec
	angle float64
}

// BeginRotate starts an incremental rotate gesture on t.
func BeginRotate(t Transform) RotateGesture {
	return RotateGesture{base: rotateAnchor(t.Size), angle: t.Rotation}
}

// Step projects a local drag delta onto the tangent at the handle and
// converts the arc length into an angle.
func (g RotateGesture) Step(t Transform, container geom.Size, localDelta geom.Vec) (Transform, RotateGesture) {
	radius := g.base.Length() * t.Scale
	if !ready(t, container) || radius == 0 || !localDelta.IsFinite() {
		return t, g
	}
	tangent := g.base.Rotate(g.angle).Normalize().Perpendicular()
	arc := t.ContainerDelta(localDelta).Dot(tangent)
	g.angle = geom.NormalizeAngle(g.angle + geom.Rad2Deg(arc/radius))
	t.Center = geom.ClampCenter(t.Center, container, t.Size, t.Scale, g.angle)
	t.Rotation = g.angle
	return t, g
}
