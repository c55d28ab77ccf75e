package sticker

import (
	"math"

	"github.com/example/stickerkit/internal/geom"
)

// scaleGuard keeps the zoom factor finite when a transform was built with
// a zero scale.
const scaleGuard = 1e-6

// Drag moves the sticker by a delta reported in its local frame.
func Drag(t Transform, container geom.Size, localDelta geom.Vec) Transform {
	if !ready(t, container) || !localDelta.IsFinite() {
		return t
	}
	candidate := t.Center.Add(t.ContainerDelta(localDelta))
	t.Center = geom.ClampCenter(candidate, container, t.Size, t.Scale, t.Rotation)
	return t
}

// ScaleHandle resolves a drag on the bottom-left scale handle. The pointer
// is in the local frame. The new scale is the pointer's distance from the
// center relative to the corner's distance at scale 1, and the center is
// moved so the corner sits under the pointer.
func ScaleHandle(t Transform, container geom.Size, localPointer geom.Vec, limits Limits) Transform {
	if !ready(t, container) || !localPointer.IsFinite() {
		return t
	}
	base := scaleAnchor(t.Size)
	baseLen := base.Length()
	if baseLen == 0 {
		return t
	}
	pointer := t.LocalToContainer(localPointer)
	desired := pointer.Sub(t.Center)
	target := t.Scale
	if !desired.IsZero() {
		target = desired.Length() / baseLen
	}
	target = limits.Clamp(target)
	candidate := pointer.Sub(base.Rotate(t.Rotation).Mul(target))
	t.Center = geom.ClampCenter(candidate, container, t.Size, target, t.Rotation)
	t.Scale = target
	return t
}

// RotateHandle resolves a drag on the bottom-right rotate handle. The
// rotation becomes the angle between the pointer and the corner's resting
// direction. The center is re-clamped because the bounding box changes
// with the angle.
func RotateHandle(t Transform, container geom.Size, localPointer geom.Vec) Transform {
	if !ready(t, container) || !localPointer.IsFinite() {
		return t
	}
	pointer := t.LocalToContainer(localPointer)
	vec := pointer.Sub(t.Center)
	if vec.IsZero() {
		return t
	}
	rot := geom.NormalizeAngle(vec.AngleDegrees() - rotateAnchor(t.Size).AngleDegrees())
	t.Center = geom.ClampCenter(t.Center, container, t.Size, t.Scale, rot)
	t.Rotation = rot
	return t
}

// PinchEvent is one step of a combined pan/zoom/rotate gesture. Centroid
// and Pan are in the sticker's local frame, Zoom is multiplicative and
// Rotation is an additive delta in degrees.
type PinchEvent struct {
	Centroid geom.Vec
	Pan      geom.Vec
	Zoom     float64
	Rotation float64
}

// Pinch applies a pan/zoom/rotate step anchored at the gesture centroid:
// the point under the centroid only moves by the explicit pan.
func Pinch(t Transform, container geom.Size, ev PinchEvent, limits Limits) Transform {
	if !ready(t, container) || !ev.Centroid.IsFinite() || !ev.Pan.IsFinite() {
		return t
	}
	// unusable zoom or rotation components contribute nothing
	zoom := ev.Zoom
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		zoom = 1
	}
	turn := ev.Rotation
	if math.IsNaN(turn) || math.IsInf(turn, 0) {
		turn = 0
	}
	target := limits.Clamp(t.Scale * zoom)
	factor := target / math.Max(t.Scale, scaleGuard)
	rot := geom.NormalizeAngle(t.Rotation + turn)

	before := t.LocalToContainer(ev.Centroid)
	afterPan := t.LocalToContainer(ev.Centroid.Add(ev.Pan))
	pan := afterPan.Sub(before)
	arm := t.Center.Sub(before)
	candidate := before.Add(pan).Add(arm.Rotate(turn).Mul(factor))

	t.Center = geom.ClampCenter(candidate, container, t.Size, target, rot)
	t.Scale = target
	t.Rotation = rot
	return t
}
