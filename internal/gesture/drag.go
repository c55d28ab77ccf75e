// Package gesture turns raw pointer events into the drag and pinch steps
// the sticker resolvers consume. Event coordinates are expected in the
// sticker's local frame.
package gesture

import (
	"golang.org/x/mobile/event/mouse"

	"github.com/example/stickerkit/internal/geom"
)

// Phase is the position of a step within a drag.
type Phase int

const (
	DragStart Phase = iota
	DragMove
	DragEnd
)

func (p Phase) String() string {
	switch p {
	case DragStart:
		return "start"
	case DragMove:
		return "move"
	}
	return "end"
}

// Drag is one step of a primary-button drag. Pointer is the current
// position and Delta the motion since the previous step.
type Drag struct {
	Phase   Phase
	Pointer geom.Vec
	Delta   geom.Vec
}

// DragTracker follows a left-button drag across mouse events.
type DragTracker struct {
	active bool
	last   geom.Vec
}

// Active reports whether a drag is in progress.
func (d *DragTracker) Active() bool {
	return d.active
}

// Mouse feeds one event. It reports a step for the press that starts a
// drag, every move while dragging and the release that ends it.
func (d *DragTracker) Mouse(e mouse.Event) (Drag, bool) {
	pos := geom.V(float64(e.X), float64(e.Y))
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return Drag{}, false
		}
		d.active = true
		d.last = pos
		return Drag{Phase: DragStart, Pointer: pos}, true
	case mouse.DirNone:
		if !d.active {
			return Drag{}, false
		}
		delta := pos.Sub(d.last)
		d.last = pos
		return Drag{Phase: DragMove, Pointer: pos, Delta: delta}, true
	case mouse.DirRelease:
		if !d.active || e.Button != mouse.ButtonLeft {
			return Drag{}, false
		}
		delta := pos.Sub(d.last)
		d.active = false
		return Drag{Phase: DragEnd, Pointer: pos, Delta: delta}, true
	}
	return Drag{}, false
}
