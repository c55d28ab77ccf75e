package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/stickerkit/internal/gesture"
	"github.com/example/stickerkit/internal/measure"
	"github.com/example/stickerkit/internal/sticker"
)

// Options carries the configured defaults a script may override.
type Options struct {
	Mode   sticker.Mode
	Limits sticker.Limits
	Label  measure.Options
}

// DefaultOptions mirrors the defaults of a fresh configuration.
func DefaultOptions() Options {
	return Options{
		Mode:   sticker.DefaultMode(),
		Limits: sticker.DefaultLimits(),
		Label:  measure.DefaultOptions(),
	}
}

// Result is the outcome of a replay.
type Result struct {
	Store *sticker.Store
	// Dropped counts events the store ignored: gestures before layout,
	// gestures the mode does not accept, steps with no drag in progress.
	Dropped int
	names   map[uuid.UUID]string
}

// Snapshot reports every sticker still on the container.
func (r *Result) Snapshot() Snapshot {
	snap := Snapshot{Container: dimsOf(r.Store.Container()), Dropped: r.Dropped}
	for _, st := range r.Store.Snapshot() {
		tr := st.Transform
		m := tr.Matrix()
		snap.Stickers = append(snap.Stickers, Placement{
			Name:     r.names[st.ID],
			Text:     st.Text,
			Center:   pointOf(tr.Center),
			Scale:    tr.Scale,
			Rotation: tr.Rotation,
			Size:     dimsOf(tr.Size),
			Matrix:   m[:],
		})
	}
	return snap
}

// errPending marks a sticker declared before the container had a size.
var errPending = errors.New("sticker waiting for layout")

type player struct {
	opts    Options
	store   *sticker.Store
	ids     map[string]uuid.UUID
	pending []StickerSpec
	mice    map[uuid.UUID]*gesture.DragTracker
	touches map[uuid.UUID]*gesture.PinchTracker
	dropped int
}

// Replay builds a store from doc and applies its events in order. Stickers
// declared while the container has no size wait until a container event
// gives it one; events aimed at them in the meantime count as dropped.
func Replay(doc *Document, opts Options) (*Result, error) {
	mode, err := overrideMode(opts.Mode, doc.Mode)
	if err != nil {
		return nil, err
	}
	limits := opts.Limits
	if doc.Limits != nil {
		limits = sticker.Limits{MinScale: doc.Limits.MinScale, MaxScale: doc.Limits.MaxScale}
		if !(limits.MinScale > 0) || limits.MinScale > limits.MaxScale {
			return nil, fmt.Errorf("limits %v..%v: %w", limits.MinScale, limits.MaxScale, ErrBadEvent)
		}
	}
	p := &player{
		opts:    opts,
		store:   sticker.NewStore(mode, limits),
		ids:     make(map[string]uuid.UUID),
		mice:    make(map[uuid.UUID]*gesture.DragTracker),
		touches: make(map[uuid.UUID]*gesture.PinchTracker),
	}
	p.store.SetContainer(doc.Container.Size())
	for _, spec := range doc.Stickers {
		if err := p.add(spec); err != nil {
			return nil, fmt.Errorf("sticker %q: %w", spec.Name, err)
		}
	}
	for i, ev := range doc.Events {
		if err := p.apply(ev); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	// a script may stop mid-drag; close handle gestures left open
	for id, tr := range p.mice {
		if tr.Active() {
			p.store.EndHandle(id)
		}
	}
	names := make(map[uuid.UUID]string, len(p.ids))
	for name, id := range p.ids {
		names[id] = name
	}
	return &Result{Store: p.store, Dropped: p.dropped, names: names}, nil
}

func overrideMode(base sticker.Mode, spec ModeSpec) (sticker.Mode, error) {
	m := base
	if spec.Gestures != "" {
		g, err := sticker.ParseGestureMode(spec.Gestures)
		if err != nil {
			return m, fmt.Errorf("mode: %w", err)
		}
		m.Gestures = g
	}
	if spec.Handles != "" {
		h, err := sticker.ParseHandleResolution(spec.Handles)
		if err != nil {
			return m, fmt.Errorf("mode: %w", err)
		}
		m.Handles = h
	}
	if spec.Multiple != nil {
		m.Multiple = *spec.Multiple
	}
	return m, nil
}

func (p *player) add(spec StickerSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("sticker needs a name: %w", ErrBadEvent)
	}
	if _, ok := p.ids[spec.Name]; ok || p.waiting(spec.Name) >= 0 {
		return fmt.Errorf("duplicate sticker name %q: %w", spec.Name, ErrBadEvent)
	}
	id, ok := p.store.Add(spec.Text)
	if !ok {
		p.pending = append(p.pending, spec)
		return nil
	}
	size := spec.Size
	if size == nil {
		measured, err := measure.Label(spec.Text, p.opts.Label)
		if err != nil {
			return fmt.Errorf("measure %q: %w", spec.Text, err)
		}
		d := dimsOf(measured)
		size = &d
	}
	p.store.Resize(id, size.Size())
	p.ids[spec.Name] = id
	// a single-sticker store replaces what was there
	for name, other := range p.ids {
		if _, ok := p.store.Get(other); !ok {
			p.forget(name)
		}
	}
	return nil
}

// waiting returns the index of a pending sticker, or -1.
func (p *player) waiting(name string) int {
	for i, spec := range p.pending {
		if spec.Name == name {
			return i
		}
	}
	return -1
}

// layout records a container size and places the stickers that waited
// for one.
func (p *player) layout(size Dims) error {
	p.store.SetContainer(size.Size())
	if size.Size().Degenerate() {
		return nil
	}
	pending := p.pending
	p.pending = nil
	for _, spec := range pending {
		if err := p.add(spec); err != nil {
			return fmt.Errorf("sticker %q: %w", spec.Name, err)
		}
	}
	return nil
}

func (p *player) forget(name string) {
	id := p.ids[name]
	delete(p.ids, name)
	delete(p.mice, id)
	delete(p.touches, id)
}

func (p *player) lookup(name string) (uuid.UUID, error) {
	if name == "" {
		return uuid.Nil, fmt.Errorf("event has no sticker: %w", ErrBadEvent)
	}
	id, ok := p.ids[name]
	if !ok {
		if p.waiting(name) >= 0 {
			return uuid.Nil, errPending
		}
		return uuid.Nil, fmt.Errorf("%w: %q", ErrUnknownSticker, name)
	}
	return id, nil
}

func (p *player) count(applied bool) {
	if !applied {
		p.dropped++
	}
}

func (p *player) apply(ev Event) error {
	if n := ev.actions(); n != 1 {
		return fmt.Errorf("%d actions in one event: %w", n, ErrBadEvent)
	}
	switch {
	case ev.Add != nil:
		return p.add(*ev.Add)
	case ev.Container != nil:
		return p.layout(*ev.Container)
	case ev.Remove != "":
		if i := p.waiting(ev.Remove); i >= 0 {
			p.pending = append(p.pending[:i], p.pending[i+1:]...)
			return nil
		}
		id, err := p.lookup(ev.Remove)
		if err != nil {
			return err
		}
		p.count(p.store.Remove(id))
		p.forget(ev.Remove)
		return nil
	case ev.Select != "":
		id, err := p.lookup(ev.Select)
		if errors.Is(err, errPending) {
			p.dropped++
			return nil
		}
		if err != nil {
			return err
		}
		p.count(p.store.Select(id))
		return nil
	}

	id, err := p.lookup(ev.Sticker)
	if errors.Is(err, errPending) {
		p.dropped++
		return nil
	}
	if err != nil {
		return err
	}
	switch {
	case ev.Resize != nil:
		p.count(p.store.Resize(id, ev.Resize.Size()))
	case ev.Drag != nil:
		p.count(p.store.Drag(id, ev.Drag.Vec()))
	case ev.ScaleHandle != nil:
		p.count(p.store.ScaleHandle(id, ev.ScaleHandle.Vec()))
	case ev.RotateHandle != nil:
		p.count(p.store.RotateHandle(id, ev.RotateHandle.Vec()))
	case ev.Pinch != nil:
		p.count(p.store.Pinch(id, sticker.PinchEvent{
			Centroid: ev.Pinch.Centroid.Vec(),
			Pan:      ev.Pinch.Pan.Vec(),
			Zoom:     ev.Pinch.Zoom,
			Rotation: ev.Pinch.Rotation,
		}))
	case ev.Handle != nil:
		return p.handle(id, *ev.Handle)
	case ev.Mouse != nil:
		return p.mouse(id, *ev.Mouse)
	case ev.Touch != nil:
		return p.touch(id, *ev.Touch)
	}
	return nil
}

func parseKind(s string) (sticker.HandleKind, error) {
	switch strings.ToLower(s) {
	case "scale":
		return sticker.HandleScale, nil
	case "rotate":
		return sticker.HandleRotate, nil
	}
	return sticker.HandleScale, fmt.Errorf("handle kind %q: %w", s, ErrBadEvent)
}

func (p *player) handle(id uuid.UUID, h HandleSpec) error {
	switch strings.ToLower(h.Phase) {
	case "begin":
		kind, err := parseKind(h.Kind)
		if err != nil {
			return err
		}
		p.count(p.store.BeginHandle(id, kind))
	case "step", "":
		p.count(p.store.StepHandle(id, h.Delta.Vec()))
	case "end":
		p.count(p.store.EndHandle(id))
	default:
		return fmt.Errorf("handle phase %q: %w", h.Phase, ErrBadEvent)
	}
	return nil
}

func (p *player) mouse(id uuid.UUID, m MouseSpec) error {
	e := mouse.Event{X: float32(m.X), Y: float32(m.Y), Button: mouse.ButtonLeft}
	switch strings.ToLower(m.Action) {
	case "press":
		e.Direction = mouse.DirPress
	case "move":
		e.Direction = mouse.DirNone
		e.Button = mouse.ButtonNone
	case "release":
		e.Direction = mouse.DirRelease
	default:
		return fmt.Errorf("mouse action %q: %w", m.Action, ErrBadEvent)
	}
	target := strings.ToLower(m.Target)
	var kind sticker.HandleKind
	switch target {
	case "", "body":
		target = "body"
	case "scale", "rotate":
		kind, _ = parseKind(target)
	default:
		return fmt.Errorf("mouse target %q: %w", m.Target, ErrBadEvent)
	}

	tr := p.mice[id]
	if tr == nil {
		tr = &gesture.DragTracker{}
		p.mice[id] = tr
	}
	step, ok := tr.Mouse(e)
	if !ok {
		p.dropped++
		return nil
	}

	if target == "body" {
		if step.Phase != gesture.DragStart && !step.Delta.IsZero() {
			p.count(p.store.Drag(id, step.Delta))
		}
		return nil
	}
	if p.store.Mode().Handles == sticker.HandlesIncremental {
		switch step.Phase {
		case gesture.DragStart:
			p.count(p.store.BeginHandle(id, kind))
		case gesture.DragMove:
			p.count(p.store.StepHandle(id, step.Delta))
		case gesture.DragEnd:
			if !step.Delta.IsZero() {
				p.count(p.store.StepHandle(id, step.Delta))
			}
			p.count(p.store.EndHandle(id))
		}
		return nil
	}
	if step.Phase == gesture.DragStart {
		return nil
	}
	if kind == sticker.HandleRotate {
		p.count(p.store.RotateHandle(id, step.Pointer))
	} else {
		p.count(p.store.ScaleHandle(id, step.Pointer))
	}
	return nil
}

func (p *player) touch(id uuid.UUID, t TouchSpec) error {
	e := touch.Event{X: float32(t.X), Y: float32(t.Y), Sequence: touch.Sequence(t.Seq)}
	switch strings.ToLower(t.Action) {
	case "begin":
		e.Type = touch.TypeBegin
	case "move":
		e.Type = touch.TypeMove
	case "end":
		e.Type = touch.TypeEnd
	default:
		return fmt.Errorf("touch action %q: %w", t.Action, ErrBadEvent)
	}
	tr := p.touches[id]
	if tr == nil {
		tr = &gesture.PinchTracker{}
		p.touches[id] = tr
	}
	if e.Type == touch.TypeBegin && tr.Fingers() >= 2 {
		// a third finger is ignored by the tracker
		p.dropped++
		return nil
	}
	if ev, ok := tr.Touch(e); ok {
		p.count(p.store.Pinch(id, ev))
	}
	return nil
}
