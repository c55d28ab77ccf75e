package gesture

import (
	"math"
	"testing"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/stickerkit/internal/geom"
)

func TestDragTracker(t *testing.T) {
	var d DragTracker
	if _, ok := d.Mouse(mouse.Event{X: 3, Y: 3, Direction: mouse.DirNone}); ok {
		t.Fatal("hover reported a drag step")
	}
	if _, ok := d.Mouse(mouse.Event{X: 3, Y: 3, Button: mouse.ButtonRight, Direction: mouse.DirPress}); ok {
		t.Fatal("right button started a drag")
	}
	step, ok := d.Mouse(mouse.Event{X: 10, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if !ok || step.Phase != DragStart || step.Pointer != geom.V(10, 20) {
		t.Fatalf("unexpected start %+v", step)
	}
	step, ok = d.Mouse(mouse.Event{X: 14, Y: 17, Direction: mouse.DirNone})
	if !ok || step.Phase != DragMove || step.Delta != geom.V(4, -3) {
		t.Fatalf("unexpected move %+v", step)
	}
	step, ok = d.Mouse(mouse.Event{X: 15, Y: 17, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if !ok || step.Phase != DragEnd || step.Delta != geom.V(1, 0) {
		t.Fatalf("unexpected end %+v", step)
	}
	if d.Active() {
		t.Fatal("drag still active after release")
	}
}

func TestPinchTrackerTwoFingers(t *testing.T) {
	var p PinchTracker
	p.Touch(touch.Event{X: 0, Y: 0, Sequence: 1, Type: touch.TypeBegin})
	p.Touch(touch.Event{X: 10, Y: 0, Sequence: 2, Type: touch.TypeBegin})
	if p.Fingers() != 2 {
		t.Fatalf("fingers = %d", p.Fingers())
	}
	if _, ok := p.Touch(touch.Event{X: 50, Y: 50, Sequence: 3, Type: touch.TypeBegin}); ok {
		t.Fatal("third finger produced a step")
	}

	ev, ok := p.Touch(touch.Event{X: 20, Y: 0, Sequence: 2, Type: touch.TypeMove})
	if !ok {
		t.Fatal("move produced no step")
	}
	if ev.Centroid != geom.V(5, 0) || ev.Pan != geom.V(5, 0) || ev.Zoom != 2 || ev.Rotation != 0 {
		t.Fatalf("unexpected zoom step %+v", ev)
	}

	ev, _ = p.Touch(touch.Event{X: 0, Y: 20, Sequence: 2, Type: touch.TypeMove})
	if math.Abs(ev.Rotation-90) > 1e-9 || math.Abs(ev.Zoom-1) > 1e-9 {
		t.Fatalf("unexpected rotate step %+v", ev)
	}
	if ev.Pan != geom.V(-10, 10) {
		t.Fatalf("pan = %v, want (-10,10)", ev.Pan)
	}
}

func TestPinchTrackerSingleFingerPans(t *testing.T) {
	var p PinchTracker
	p.Touch(touch.Event{X: 4, Y: 4, Sequence: 7, Type: touch.TypeBegin})
	ev, ok := p.Touch(touch.Event{X: 6, Y: 1, Sequence: 7, Type: touch.TypeMove})
	if !ok || ev.Pan != geom.V(2, -3) || ev.Zoom != 1 || ev.Rotation != 0 {
		t.Fatalf("unexpected pan step %+v", ev)
	}
	p.Touch(touch.Event{Sequence: 7, Type: touch.TypeEnd})
	if p.Fingers() != 0 {
		t.Fatalf("fingers = %d after end", p.Fingers())
	}
	if _, ok := p.Touch(touch.Event{X: 1, Y: 1, Sequence: 7, Type: touch.TypeMove}); ok {
		t.Fatal("move after end produced a step")
	}
}

func TestWrapDelta(t *testing.T) {
	cases := map[float64]float64{0: 0, 190: -170, -190: 170, 180: 180, -180: 180, 359: -1}
	for in, want := range cases {
		if got := wrapDelta(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("wrapDelta(%v) = %v, want %v", in, got, want)
		}
	}
}
