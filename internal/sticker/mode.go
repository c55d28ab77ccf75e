package sticker

import (
	"fmt"
	"strings"
)

// GestureMode selects how a sticker is scaled and rotated.
type GestureMode int

const (
	// GestureHandles drags the body to move and uses corner handles to
	// scale and rotate.
	GestureHandles GestureMode = iota
	// GesturePinch uses combined pan/zoom/rotate gestures.
	GesturePinch
)

func (m GestureMode) String() string {
	switch m {
	case GestureHandles:
		return "handles"
	case GesturePinch:
		return "pinch"
	}
	return fmt.Sprintf("GestureMode(%d)", int(m))
}

// ParseGestureMode parses "handles" or "pinch".
func ParseGestureMode(s string) (GestureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "handles", "drag-and-handles", "":
		return GestureHandles, nil
	case "pinch", "pinch-rotate":
		return GesturePinch, nil
	}
	return GestureHandles, fmt.Errorf("unknown gesture mode %q", s)
}

// HandleResolution selects how handle drags turn into scale and rotation.
type HandleResolution int

const (
	// HandlesAbsolute derives scale and rotation from the pointer position
	// on every event.
	HandlesAbsolute HandleResolution = iota
	// HandlesIncremental accumulates projected drag deltas from the start
	// of the gesture.
	HandlesIncremental
)

func (r HandleResolution) String() string {
	switch r {
	case HandlesAbsolute:
		return "absolute"
	case HandlesIncremental:
		return "incremental"
	}
	return fmt.Sprintf("HandleResolution(%d)", int(r))
}

// ParseHandleResolution parses "absolute" or "incremental".
func ParseHandleResolution(s string) (HandleResolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "absolute", "":
		return HandlesAbsolute, nil
	case "incremental":
		return HandlesIncremental, nil
	}
	return HandlesAbsolute, fmt.Errorf("unknown handle mode %q", s)
}

// Mode is the editor configuration. The geometry is the same for every
// mode; only which gestures are accepted changes.
type Mode struct {
	Gestures GestureMode
	Handles  HandleResolution
	Multiple bool
}

// DefaultMode accepts handle gestures resolved from absolute pointer
// positions and allows several stickers.
func DefaultMode() Mode {
	return Mode{Gestures: GestureHandles, Handles: HandlesAbsolute, Multiple: true}
}
