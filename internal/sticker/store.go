package sticker

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/example/stickerkit/internal/geom"
)

// Sticker is a text label and its placement.
type Sticker struct {
	ID        uuid.UUID
	Text      string
	Transform Transform
}

// HandleKind identifies a corner handle.
type HandleKind int

const (
	HandleScale HandleKind = iota
	HandleRotate
)

func (k HandleKind) String() string {
	if k == HandleRotate {
		return "rotate"
	}
	return "scale"
}

type handleGesture struct {
	kind   HandleKind
	scale  ScaleGesture
	rotate RotateGesture
}

// Store holds the stickers placed on one container in insertion order.
// Every mutation replaces a single entry under the store lock, so a
// Snapshot taken for export never observes a half-applied gesture.
type Store struct {
	mu        sync.Mutex
	mode      Mode
	limits    Limits
	container geom.Size
	order     []uuid.UUID
	items     map[uuid.UUID]Sticker
	handles   map[uuid.UUID]handleGesture
	selected  uuid.UUID
}

// NewStore returns an empty store.
func NewStore(mode Mode, limits Limits) *Store {
	return &Store{
		mode:    mode,
		limits:  limits,
		items:   make(map[uuid.UUID]Sticker),
		handles: make(map[uuid.UUID]handleGesture),
	}
}

// Mode returns the editor mode.
func (s *Store) Mode() Mode {
	return s.mode
}

// Container returns the current container size.
func (s *Store) Container() geom.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.container
}

// SetContainer records the container size and pulls every sticker back
// inside it.
func (s *Store) SetContainer(size geom.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.container == size {
		return
	}
	s.container = size
	for _, id := range s.order {
		st := s.items[id]
		st.Transform = Contain(st.Transform, size)
		s.items[id] = st
	}
	Logger().Info("container changed", "width", size.W, "height", size.H, "stickers", len(s.order))
}

// Add places a new sticker in the middle of the container and selects it.
// It starts unscaled unless the limits exclude 1.
// It is refused until the container size is known. With a single-sticker
// mode the previous sticker is replaced.
func (s *Store) Add(text string) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.container.Degenerate() {
		Logger().Debug("add dropped: container not measured", "text", text)
		return uuid.Nil, false
	}
	if !s.mode.Multiple {
		for _, id := range slices.Clone(s.order) {
			s.removeLocked(id)
		}
	}
	id := uuid.New()
	t := NewTransform(s.container)
	t.Scale = s.limits.Clamp(t.Scale)
	s.items[id] = Sticker{ID: id, Text: text, Transform: Contain(t, s.container)}
	s.order = append(s.order, id)
	s.selected = id
	Logger().Debug("sticker added", "id", id, "text", text)
	return id, true
}

// Remove deletes a sticker. Removing the selected sticker selects the last
// remaining one.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

func (s *Store) removeLocked(id uuid.UUID) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	delete(s.handles, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.selected == id {
		s.selected = uuid.Nil
		if n := len(s.order); n > 0 {
			s.selected = s.order[n-1]
		}
	}
	Logger().Debug("sticker removed", "id", id)
	return true
}

// Get returns a copy of the sticker with the given id.
func (s *Store) Get(id uuid.UUID) (Sticker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[id]
	return st, ok
}

// Len returns the number of stickers.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Selected returns the selected sticker id.
func (s *Store) Selected() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected != uuid.Nil
}

// Select marks id as selected.
func (s *Store) Select(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	s.selected = id
	return true
}

// Snapshot copies every sticker in insertion order.
func (s *Store) Snapshot() []Sticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Sticker, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Update replaces the transform of one sticker with fn's result. It
// reports whether the sticker exists.
func (s *Store) Update(id uuid.UUID, fn func(Transform) Transform) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, func(t Transform, _ geom.Size) Transform { return fn(t) })
}

func (s *Store) apply(id uuid.UUID, fn func(Transform, geom.Size) Transform) bool {
	st, ok := s.items[id]
	if !ok {
		return false
	}
	st.Transform = fn(st.Transform, s.container)
	s.items[id] = st
	return true
}

// Resize records the measured footprint of a sticker.
func (s *Store) Resize(id uuid.UUID, size geom.Size) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, func(t Transform, c geom.Size) Transform { return Resize(t, c, size) })
}

// Drag moves a sticker by a local-frame delta.
func (s *Store) Drag(id uuid.UUID, localDelta geom.Vec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, func(t Transform, c geom.Size) Transform { return Drag(t, c, localDelta) })
}

// ScaleHandle applies an absolute scale-handle pointer position. It is
// ignored unless the store uses absolute handles.
func (s *Store) ScaleHandle(id uuid.UUID, localPointer geom.Vec) bool {
	if !s.accepts("scale-handle", GestureHandles, HandlesAbsolute) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, func(t Transform, c geom.Size) Transform { return ScaleHandle(t, c, localPointer, s.limits) })
}

// RotateHandle applies an absolute rotate-handle pointer position. It is
// ignored unless the store uses absolute handles.
func (s *Store) RotateHandle(id uuid.UUID, localPointer geom.Vec) bool {
	if !s.accepts("rotate-handle", GestureHandles, HandlesAbsolute) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, func(t Transform, c geom.Size) Transform { return RotateHandle(t, c, localPointer) })
}

// BeginHandle starts an incremental handle drag on a sticker, replacing
// any drag already in progress on it.
func (s *Store) BeginHandle(id uuid.UUID, kind HandleKind) bool {
	if !s.accepts("handle-begin", GestureHandles, HandlesIncremental) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.items[id]
	if !ok {
		return false
	}
	g := handleGesture{kind: kind}
	switch kind {
	case HandleScale:
		g.scale = BeginScale(st.Transform)
	case HandleRotate:
		g.rotate = BeginRotate(st.Transform)
	}
	s.handles[id] = g
	return true
}

// StepHandle feeds a local drag delta to the handle drag in progress.
func (s *Store) StepHandle(id uuid.UUID, localDelta geom.Vec) bool {
	if !s.accepts("handle-step", GestureHandles, HandlesIncremental) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.handles[id]
	if !ok {
		Logger().Debug("handle step dropped: no gesture in progress", "id", id)
		return false
	}
	applied := s.apply(id, func(t Transform, c geom.Size) Transform {
		switch g.kind {
		case HandleRotate:
			t, g.rotate = g.rotate.Step(t, c, localDelta)
		default:
			t, g.scale = g.scale.Step(t, c, localDelta, s.limits)
		}
		return t
	})
	if applied {
		s.handles[id] = g
	}
	return applied
}

// EndHandle finishes the handle drag in progress on a sticker.
func (s *Store) EndHandle(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.handles[id]; !ok {
		return false
	}
	delete(s.handles, id)
	return true
}

// Pinch applies a pan/zoom/rotate step. It is ignored unless the store
// uses pinch gestures.
func (s *Store) Pinch(id uuid.UUID, ev PinchEvent) bool {
	if s.mode.Gestures != GesturePinch {
		Logger().Debug("gesture dropped by mode", "gesture", "pinch", "mode", s.mode.Gestures)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(id, func(t Transform, c geom.Size) Transform { return Pinch(t, c, ev, s.limits) })
}

func (s *Store) accepts(gesture string, mode GestureMode, res HandleResolution) bool {
	if s.mode.Gestures == mode && s.mode.Handles == res {
		return true
	}
	Logger().Debug("gesture dropped by mode", "gesture", gesture, "mode", s.mode.Gestures, "handles", s.mode.Handles)
	return false
}
