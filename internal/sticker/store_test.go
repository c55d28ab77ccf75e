package sticker

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/example/stickerkit/internal/geom"
)

func newTestStore(mode Mode) *Store {
	s := NewStore(mode, DefaultLimits())
	s.SetContainer(container)
	return s
}

func TestStoreAddRequiresContainer(t *testing.T) {
	s := NewStore(DefaultMode(), DefaultLimits())
	if id, ok := s.Add("early"); ok || id != uuid.Nil {
		t.Fatalf("add before layout succeeded: %v", id)
	}
	s.SetContainer(container)
	id, ok := s.Add("hello")
	if !ok {
		t.Fatal("add failed")
	}
	st, ok := s.Get(id)
	if !ok || st.Text != "hello" || st.Transform.Center != geom.V(200, 150) || st.Transform.Scale != 1 {
		t.Fatalf("unexpected sticker %+v", st)
	}
	if sel, ok := s.Selected(); !ok || sel != id {
		t.Fatalf("new sticker not selected")
	}
}

func TestStoreRemoveSelectsLast(t *testing.T) {
	s := newTestStore(DefaultMode())
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")
	if !s.Select(b) {
		t.Fatal("select failed")
	}
	if !s.Remove(b) {
		t.Fatal("remove failed")
	}
	if sel, _ := s.Selected(); sel != c {
		t.Fatalf("selected %v, want last remaining %v", sel, c)
	}
	s.Remove(c)
	s.Remove(a)
	if _, ok := s.Selected(); ok {
		t.Fatal("selection left on empty store")
	}
	if s.Remove(a) {
		t.Fatal("removed a missing sticker")
	}
}

func TestStoreSingleModeReplaces(t *testing.T) {
	mode := DefaultMode()
	mode.Multiple = false
	s := newTestStore(mode)
	first, _ := s.Add("first")
	second, _ := s.Add("second")
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if _, ok := s.Get(first); ok {
		t.Fatal("first sticker survived")
	}
	if _, ok := s.Get(second); !ok {
		t.Fatal("second sticker missing")
	}
}

func TestStoreDragAndResize(t *testing.T) {
	s := newTestStore(DefaultMode())
	id, _ := s.Add("x")
	if !s.Drag(id, geom.V(10, 0)) {
		t.Fatal("drag failed")
	}
	st, _ := s.Get(id)
	if st.Transform.Center != geom.V(200, 150) {
		t.Fatalf("drag before measurement moved sticker to %v", st.Transform.Center)
	}
	s.Resize(id, geom.Sz(100, 40))
	s.Drag(id, geom.V(-1000, 0))
	st, _ = s.Get(id)
	if st.Transform.Center != geom.V(50, 150) {
		t.Fatalf("center = %v, want (50,150)", st.Transform.Center)
	}
	if s.Drag(uuid.New(), geom.V(1, 1)) {
		t.Fatal("drag on unknown sticker reported success")
	}
}

func TestStoreModeFiltersGestures(t *testing.T) {
	s := newTestStore(DefaultMode())
	id, _ := s.Add("x")
	s.Resize(id, geom.Sz(100, 100))
	if s.Pinch(id, PinchEvent{Centroid: geom.V(50, 50), Zoom: 2}) {
		t.Fatal("pinch accepted in handles mode")
	}
	if s.BeginHandle(id, HandleScale) {
		t.Fatal("incremental handle accepted in absolute mode")
	}
	if !s.RotateHandle(id, geom.V(0, 100)) {
		t.Fatal("rotate handle rejected")
	}
	st, _ := s.Get(id)
	if !approx(st.Transform.Rotation, 90) {
		t.Fatalf("rotation = %v, want 90", st.Transform.Rotation)
	}

	p := newTestStore(Mode{Gestures: GesturePinch, Multiple: true})
	id, _ = p.Add("y")
	p.Resize(id, geom.Sz(100, 100))
	if p.ScaleHandle(id, geom.V(0, 0)) {
		t.Fatal("scale handle accepted in pinch mode")
	}
	if !p.Pinch(id, PinchEvent{Centroid: geom.V(50, 50), Zoom: 2}) {
		t.Fatal("pinch rejected")
	}
	st, _ = p.Get(id)
	if st.Transform.Scale != 2 {
		t.Fatalf("scale = %v, want 2", st.Transform.Scale)
	}
}

func TestStoreIncrementalHandles(t *testing.T) {
	s := newTestStore(Mode{Gestures: GestureHandles, Handles: HandlesIncremental, Multiple: true})
	id, _ := s.Add("x")
	s.Resize(id, geom.Sz(100, 40))
	if s.StepHandle(id, geom.V(1, 1)) {
		t.Fatal("step without begin accepted")
	}
	if !s.BeginHandle(id, HandleScale) {
		t.Fatal("begin failed")
	}
	s.StepHandle(id, geom.V(-25, 10))
	s.StepHandle(id, geom.V(-25/1.5, 10/1.5))
	st, _ := s.Get(id)
	if !approx(st.Transform.Scale, 2) {
		t.Fatalf("scale = %v, want 2", st.Transform.Scale)
	}
	if !s.EndHandle(id) || s.EndHandle(id) {
		t.Fatal("end handle bookkeeping wrong")
	}
}

func TestStoreSetContainerReclamps(t *testing.T) {
	s := newTestStore(DefaultMode())
	id, _ := s.Add("x")
	s.Resize(id, geom.Sz(100, 40))
	s.Drag(id, geom.V(1000, 1000))
	s.SetContainer(geom.Sz(200, 100))
	st, _ := s.Get(id)
	if st.Transform.Center != geom.V(150, 80) {
		t.Fatalf("center = %v, want (150,80)", st.Transform.Center)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := newTestStore(DefaultMode())
	id, _ := s.Add("x")
	s.Resize(id, geom.Sz(100, 40))
	snap := s.Snapshot()
	s.Drag(id, geom.V(10, 0))
	if snap[0].Transform.Center != geom.V(200, 150) {
		t.Fatalf("snapshot changed with the store: %v", snap[0].Transform.Center)
	}
}

func TestStoreConcurrentSnapshots(t *testing.T) {
	s := newTestStore(DefaultMode())
	id, _ := s.Add("x")
	s.Resize(id, geom.Sz(100, 40))
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Drag(id, geom.V(1, 0))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for _, st := range s.Snapshot() {
				c := st.Transform.Center
				if c.X < 50 || c.X > 350 {
					t.Errorf("snapshot center out of range: %v", c)
					return
				}
			}
		}
	}()
	wg.Wait()
}

func TestStoreUpdate(t *testing.T) {
	s := newTestStore(DefaultMode())
	id, _ := s.Add("x")
	ok := s.Update(id, func(tr Transform) Transform {
		tr.Rotation = 45
		return tr
	})
	if !ok {
		t.Fatal("update failed")
	}
	st, _ := s.Get(id)
	if st.Transform.Rotation != 45 {
		t.Fatalf("rotation = %v, want 45", st.Transform.Rotation)
	}
}

func TestStoreAddHonorsLimits(t *testing.T) {
	for _, limits := range []Limits{{MinScale: 2, MaxScale: 4}, {MinScale: 0.1, MaxScale: 0.5}} {
		s := NewStore(DefaultMode(), limits)
		s.SetContainer(container)
		id, ok := s.Add("big")
		if !ok {
			t.Fatal("add failed")
		}
		s.Resize(id, geom.Sz(100, 40))
		s.Drag(id, geom.V(-1000, -1000))
		s.RotateHandle(id, geom.V(0, 40))

		st, _ := s.Get(id)
		tr := st.Transform
		if tr.Scale < limits.MinScale || tr.Scale > limits.MaxScale {
			t.Fatalf("scale %v outside [%v, %v]", tr.Scale, limits.MinScale, limits.MaxScale)
		}
		if got := geom.ClampCenter(tr.Center, container, tr.Size, tr.Scale, tr.Rotation); got != tr.Center {
			t.Fatalf("center %v not contained, want %v", tr.Center, got)
		}
	}
}
