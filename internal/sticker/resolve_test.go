package sticker

import (
	"math"
	"testing"

	"github.com/example/stickerkit/internal/geom"
)

var container = geom.Sz(400, 300)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxVec(a, b geom.Vec) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func placed(w, h float64) Transform {
	t := NewTransform(container)
	t.Size = geom.Sz(w, h)
	return t
}

func TestNewTransform(t *testing.T) {
	tr := NewTransform(container)
	if tr.Center != geom.V(200, 150) || tr.Scale != 1 || tr.Rotation != 0 {
		t.Fatalf("unexpected default transform %+v", tr)
	}
}

func TestDragConvertsLocalDelta(t *testing.T) {
	tr := placed(100, 40)
	tr.Scale = 2
	if got := tr.ContainerDelta(geom.V(10, 0)); got != geom.V(20, 0) {
		t.Fatalf("ContainerDelta = %v, want (20,0)", got)
	}
	out := Drag(tr, container, geom.V(10, 0))
	if out.Center != geom.V(220, 150) {
		t.Fatalf("dragged center = %v, want (220,150)", out.Center)
	}

	tr.Rotation = 90
	out = Drag(tr, container, geom.V(10, 0))
	if out.Center != geom.V(200, 170) {
		t.Fatalf("rotated drag center = %v, want (200,170)", out.Center)
	}
}

func TestDragClampsToContainer(t *testing.T) {
	tr := placed(100, 40)
	out := Drag(tr, container, geom.V(-1000, -1000))
	if out.Center != geom.V(50, 20) {
		t.Fatalf("clamped center = %v, want (50,20)", out.Center)
	}
}

func TestGesturesDroppedBeforeLayout(t *testing.T) {
	unmeasured := NewTransform(container)
	limits := DefaultLimits()
	if got := Drag(unmeasured, container, geom.V(5, 5)); got != unmeasured {
		t.Fatalf("drag on unmeasured sticker changed it: %+v", got)
	}
	if got := ScaleHandle(unmeasured, container, geom.V(0, 0), limits); got != unmeasured {
		t.Fatalf("scale on unmeasured sticker changed it: %+v", got)
	}
	if got := RotateHandle(unmeasured, container, geom.V(0, 0)); got != unmeasured {
		t.Fatalf("rotate on unmeasured sticker changed it: %+v", got)
	}
	if got := Pinch(unmeasured, container, PinchEvent{Zoom: 2, Rotation: 10}, limits); got != unmeasured {
		t.Fatalf("pinch on unmeasured sticker changed it: %+v", got)
	}
	measured := placed(10, 10)
	if got := Drag(measured, geom.Size{}, geom.V(5, 5)); got != measured {
		t.Fatalf("drag without container changed sticker: %+v", got)
	}
}

func TestScaleHandle(t *testing.T) {
	limits := DefaultLimits()
	tr := placed(100, 40)

	out := ScaleHandle(tr, container, geom.V(0, 40), limits)
	if !approx(out.Scale, 1) || !approxVec(out.Center, tr.Center) {
		t.Fatalf("pointer on the corner changed transform: %+v", out)
	}

	out = ScaleHandle(tr, container, geom.V(-50, 60), limits)
	if !approx(out.Scale, 2) {
		t.Fatalf("scale = %v, want 2", out.Scale)
	}
	if !approxVec(out.Center, geom.V(200, 150)) {
		t.Fatalf("center = %v, want (200,150)", out.Center)
	}
	corner := out.LocalToContainer(geom.V(0, 40))
	if !approxVec(corner, tr.LocalToContainer(geom.V(-50, 60))) {
		t.Fatalf("corner %v is not under the pointer", corner)
	}
}

func TestScaleHandleLimits(t *testing.T) {
	limits := DefaultLimits()
	tr := placed(100, 40)
	out := ScaleHandle(tr, container, geom.V(45, 22), limits)
	if out.Scale != MinScale {
		t.Fatalf("scale = %v, want %v", out.Scale, MinScale)
	}
	out = ScaleHandle(tr, container, geom.V(-5000, 2000), limits)
	if out.Scale != MaxScale {
		t.Fatalf("scale = %v, want %v", out.Scale, MaxScale)
	}
	if out.Scale < limits.MinScale || out.Scale > limits.MaxScale {
		t.Fatalf("scale %v outside limits", out.Scale)
	}
}

func TestScaleHandleAtCenterKeepsScale(t *testing.T) {
	tr := placed(100, 40)
	tr.Scale = 1.5
	out := ScaleHandle(tr, container, geom.V(50, 20), DefaultLimits())
	if out.Scale != 1.5 {
		t.Fatalf("scale = %v, want 1.5", out.Scale)
	}
}

func TestRotateHandle(t *testing.T) {
	tr := placed(100, 100)

	if out := RotateHandle(tr, container, geom.V(100, 100)); !approx(out.Rotation, 0) {
		t.Fatalf("pointer on rotate corner gave %v, want 0", out.Rotation)
	}
	if out := RotateHandle(tr, container, geom.V(0, 100)); !approx(out.Rotation, 90) {
		t.Fatalf("quarter turn gave %v, want 90", out.Rotation)
	}
	if out := RotateHandle(tr, container, geom.V(100, 0)); !approx(out.Rotation, 270) {
		t.Fatalf("counter quarter turn gave %v, want 270", out.Rotation)
	}
	if out := RotateHandle(tr, container, geom.V(50, 50)); out != tr {
		t.Fatalf("pointer at center changed transform: %+v", out)
	}
}

func TestRotateHandleReclampsCenter(t *testing.T) {
	tr := placed(200, 20)
	tr.Center = geom.V(150, 10)
	// a point straight below the center turns the bar upright
	pointer := tr.ContainerToLocal(geom.V(150, 10).Add(geom.V(100, 10).Rotate(90)))
	out := RotateHandle(tr, container, pointer)
	if !approx(out.Rotation, 90) {
		t.Fatalf("rotation = %v, want 90", out.Rotation)
	}
	if !approxVec(out.Center, geom.V(150, 100)) {
		t.Fatalf("center = %v, want (150,100)", out.Center)
	}
}

func TestPinchAroundCenter(t *testing.T) {
	tr := placed(100, 40)
	out := Pinch(tr, container, PinchEvent{Centroid: geom.V(50, 20), Zoom: 2, Rotation: 30}, DefaultLimits())
	if out.Scale != 2 || !approx(out.Rotation, 30) {
		t.Fatalf("scale/rotation = %v/%v, want 2/30", out.Scale, out.Rotation)
	}
	if !approxVec(out.Center, tr.Center) {
		t.Fatalf("center moved to %v", out.Center)
	}
}

func TestPinchKeepsCentroidFixed(t *testing.T) {
	tr := placed(100, 40)
	tr.Rotation = 20
	centroid := geom.V(10, 5)
	before := tr.LocalToContainer(centroid)
	out := Pinch(tr, container, PinchEvent{Centroid: centroid, Zoom: 1.5, Rotation: 15}, DefaultLimits())
	if after := out.LocalToContainer(centroid); !approxVec(after, before) {
		t.Fatalf("centroid moved from %v to %v", before, after)
	}
	if !approx(out.Rotation, 35) || !approx(out.Scale, 1.5) {
		t.Fatalf("unexpected transform %+v", out)
	}
}

func TestPinchPan(t *testing.T) {
	tr := placed(100, 40)
	tr.Scale = 2
	tr.Rotation = 90
	out := Pinch(tr, container, PinchEvent{Centroid: geom.V(50, 20), Pan: geom.V(10, 0), Zoom: 1}, DefaultLimits())
	if !approxVec(out.Center, geom.V(200, 170)) {
		t.Fatalf("center = %v, want (200,170)", out.Center)
	}
}

func TestPinchNormalizesAndClamps(t *testing.T) {
	tr := placed(100, 40)
	tr.Rotation = 350
	out := Pinch(tr, container, PinchEvent{Centroid: geom.V(50, 20), Zoom: 100, Rotation: 20}, DefaultLimits())
	if out.Scale != MaxScale {
		t.Fatalf("scale = %v, want %v", out.Scale, MaxScale)
	}
	if !approx(out.Rotation, 10) {
		t.Fatalf("rotation = %v, want 10", out.Rotation)
	}
	out = Pinch(tr, container, PinchEvent{Centroid: geom.V(50, 20), Zoom: 0}, DefaultLimits())
	if out.Scale != 1 {
		t.Fatalf("zero zoom changed scale to %v", out.Scale)
	}
}

func TestResize(t *testing.T) {
	tr := NewTransform(container)
	tr.Center = geom.V(5, 5)
	out := Resize(tr, container, geom.Sz(100, 40))
	if out.Size != geom.Sz(100, 40) || out.Center != geom.V(50, 20) {
		t.Fatalf("resize = %+v", out)
	}
	out = Resize(tr, geom.Size{}, geom.Sz(100, 40))
	if out.Center != geom.V(5, 5) {
		t.Fatalf("resize without container moved center to %v", out.Center)
	}
}

func TestMatrixAgreesWithMapper(t *testing.T) {
	tr := placed(80, 30)
	tr.Scale = 1.25
	tr.Rotation = 66
	p := geom.V(12, 29)
	if got, want := geom.Apply(tr.Matrix(), p), tr.LocalToContainer(p); !approxVec(got, want) {
		t.Fatalf("matrix = %v, mapper = %v", got, want)
	}
}

func TestRotateHandleNonSquareUsesBottomRightAnchor(t *testing.T) {
	tr := placed(100, 40)
	// the anchor sits at (50, 20) from the center, the bottom-left corner at (-50, 20)
	anchor := geom.Rad2Deg(math.Atan2(20, 50))
	want := 180 - 2*anchor
	if out := RotateHandle(tr, container, geom.V(0, 40)); math.Abs(out.Rotation-want) > 1e-9 {
		t.Fatalf("bottom-left pointer gave %v, want %v", out.Rotation, want)
	}
	if out := RotateHandle(tr, container, geom.V(100, 40)); !approx(out.Rotation, 0) {
		t.Fatalf("bottom-right pointer gave %v, want 0", out.Rotation)
	}
	if out := RotateHandle(tr, container, geom.V(100, 0)); !approx(out.Rotation, 360-2*anchor) {
		t.Fatalf("top-right pointer gave %v, want %v", out.Rotation, 360-2*anchor)
	}
}

func TestResolversIgnoreNonFiniteInput(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tr := placed(100, 40)
	tr.Rotation = 30
	limits := DefaultLimits()

	for _, bad := range []geom.Vec{geom.V(nan, 0), geom.V(0, inf), geom.V(-inf, nan)} {
		if out := Drag(tr, container, bad); out != tr {
			t.Fatalf("drag by %v changed transform to %+v", bad, out)
		}
		if out := ScaleHandle(tr, container, bad, limits); out != tr {
			t.Fatalf("scale handle at %v changed transform to %+v", bad, out)
		}
		if out := RotateHandle(tr, container, bad); out != tr {
			t.Fatalf("rotate handle at %v changed transform to %+v", bad, out)
		}
		if out, _ := BeginScale(tr).Step(tr, container, bad, limits); out != tr {
			t.Fatalf("scale step by %v changed transform to %+v", bad, out)
		}
		if out, _ := BeginRotate(tr).Step(tr, container, bad); out != tr {
			t.Fatalf("rotate step by %v changed transform to %+v", bad, out)
		}
		if out := Pinch(tr, container, PinchEvent{Centroid: bad, Zoom: 2}, limits); out != tr {
			t.Fatalf("pinch at %v changed transform to %+v", bad, out)
		}
	}

	for _, turn := range []float64{nan, inf, -inf} {
		out := Pinch(tr, container, PinchEvent{Centroid: geom.V(50, 20), Zoom: 2, Rotation: turn}, limits)
		if !approx(out.Rotation, 30) {
			t.Fatalf("rotation delta %v moved rotation to %v", turn, out.Rotation)
		}
		if out.Scale != 2 || !approxVec(out.Center, tr.Center) {
			t.Fatalf("rotation delta %v spoiled zoom: %+v", turn, out)
		}
	}
}
