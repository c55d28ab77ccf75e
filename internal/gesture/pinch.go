package gesture

import (
	"golang.org/x/mobile/event/touch"

	"github.com/example/stickerkit/internal/geom"
	"github.com/example/stickerkit/internal/sticker"
)

// PinchTracker derives pan/zoom/rotate steps from up to two touch
// sequences. Further fingers are ignored until one of the two lifts.
type PinchTracker struct {
	seqs []touch.Sequence
	pos  map[touch.Sequence]geom.Vec
}

// Fingers returns the number of tracked touches.
func (p *PinchTracker) Fingers() int {
	return len(p.seqs)
}

// Touch feeds one event and reports a step for every tracked move. With
// a single finger the step is a pure pan.
func (p *PinchTracker) Touch(e touch.Event) (sticker.PinchEvent, bool) {
	if p.pos == nil {
		p.pos = make(map[touch.Sequence]geom.Vec)
	}
	at := geom.V(float64(e.X), float64(e.Y))
	switch e.Type {
	case touch.TypeBegin:
		if _, ok := p.pos[e.Sequence]; ok || len(p.seqs) >= 2 {
			return sticker.PinchEvent{}, false
		}
		p.seqs = append(p.seqs, e.Sequence)
		p.pos[e.Sequence] = at
	case touch.TypeEnd:
		p.drop(e.Sequence)
	case touch.TypeMove:
		if _, ok := p.pos[e.Sequence]; !ok {
			return sticker.PinchEvent{}, false
		}
		before := p.points()
		p.pos[e.Sequence] = at
		return step(before, p.points()), true
	}
	return sticker.PinchEvent{}, false
}

func (p *PinchTracker) drop(seq touch.Sequence) {
	if _, ok := p.pos[seq]; !ok {
		return
	}
	delete(p.pos, seq)
	for i, s := range p.seqs {
		if s == seq {
			p.seqs = append(p.seqs[:i], p.seqs[i+1:]...)
			break
		}
	}
}

func (p *PinchTracker) points() []geom.Vec {
	out := make([]geom.Vec, len(p.seqs))
	for i, s := range p.seqs {
		out[i] = p.pos[s]
	}
	return out
}

// step compares two samples of the same fingers. The centroid is taken
// from the earlier sample.
func step(before, after []geom.Vec) sticker.PinchEvent {
	c0, c1 := centroid(before), centroid(after)
	ev := sticker.PinchEvent{Centroid: c0, Pan: c1.Sub(c0), Zoom: 1}
	if len(before) < 2 {
		return ev
	}
	span0 := before[1].Sub(before[0])
	span1 := after[1].Sub(after[0])
	if span0.IsZero() || span1.IsZero() {
		return ev
	}
	ev.Zoom = span1.Length() / span0.Length()
	ev.Rotation = wrapDelta(span1.AngleDegrees() - span0.AngleDegrees())
	return ev
}

func centroid(pts []geom.Vec) geom.Vec {
	var sum geom.Vec
	for _, p := range pts {
		sum = sum.Add(p)
	}
	if len(pts) == 0 {
		return sum
	}
	return sum.Mul(1 / float64(len(pts)))
}

// wrapDelta folds an angle difference into (-180, 180].
func wrapDelta(d float64) float64 {
	d = geom.NormalizeAngle(d)
	if d > 180 {
		d -= 360
	}
	return d
}
