// Package script replays recorded gesture streams against a sticker store.
// Scripts and the resulting placements are YAML documents.
package script

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/example/stickerkit/internal/geom"
)

var (
	// ErrUnknownSticker is returned when an event names a sticker that was
	// never declared.
	ErrUnknownSticker = errors.New("unknown sticker")
	// ErrBadEvent is returned for events that do not carry exactly one
	// action or carry invalid values.
	ErrBadEvent = errors.New("bad event")
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec converts p.
func (p Point) Vec() geom.Vec { return geom.V(p.X, p.Y) }

func pointOf(v geom.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Dims is a width and height.
type Dims struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Size converts d.
func (d Dims) Size() geom.Size { return geom.Sz(d.Width, d.Height) }

func dimsOf(s geom.Size) Dims { return Dims{Width: s.W, Height: s.H} }

// ModeSpec overrides the configured editor mode. Empty fields keep the
// configured value.
type ModeSpec struct {
	Gestures string `yaml:"gestures,omitempty"`
	Handles  string `yaml:"handles,omitempty"`
	Multiple *bool  `yaml:"multiple,omitempty"`
}

// LimitsSpec overrides the configured scale limits.
type LimitsSpec struct {
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
}

// StickerSpec declares a sticker. Without a size the label is measured.
type StickerSpec struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
	Size *Dims  `yaml:"size,omitempty"`
}

// HandleSpec is one step of an incremental handle drag.
type HandleSpec struct {
	Kind  string `yaml:"kind,omitempty"`  // scale or rotate, needed to begin
	Phase string `yaml:"phase,omitempty"` // begin, step (default) or end
	Delta Point  `yaml:"delta"`
}

// PinchSpec is one pan/zoom/rotate step.
type PinchSpec struct {
	Centroid Point   `yaml:"centroid"`
	Pan      Point   `yaml:"pan"`
	Zoom     float64 `yaml:"zoom"`
	Rotation float64 `yaml:"rotation"`
}

// MouseSpec is a raw mouse event aimed at part of a sticker.
type MouseSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Action string  `yaml:"action"`           // press, move or release
	Target string  `yaml:"target,omitempty"` // body (default), scale or rotate
}

// TouchSpec is a raw touch event.
type TouchSpec struct {
	Seq    int64   `yaml:"seq"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Action string  `yaml:"action"` // begin, move or end
}

// Event is one scripted step. Exactly one action field is set.
type Event struct {
	Sticker string `yaml:"sticker,omitempty"`

	Add          *StickerSpec `yaml:"add,omitempty"`
	Remove       string       `yaml:"remove,omitempty"`
	Select       string       `yaml:"select,omitempty"`
	Container    *Dims        `yaml:"container,omitempty"`
	Resize       *Dims        `yaml:"resize,omitempty"`
	Drag         *Point       `yaml:"drag,omitempty"`
	ScaleHandle  *Point       `yaml:"scale_handle,omitempty"`
	RotateHandle *Point       `yaml:"rotate_handle,omitempty"`
	Handle       *HandleSpec  `yaml:"handle,omitempty"`
	Pinch        *PinchSpec   `yaml:"pinch,omitempty"`
	Mouse        *MouseSpec   `yaml:"mouse,omitempty"`
	Touch        *TouchSpec   `yaml:"touch,omitempty"`
}

func (e Event) actions() int {
	n := 0
	for _, set := range []bool{
		e.Add != nil, e.Remove != "", e.Select != "", e.Container != nil,
		e.Resize != nil, e.Drag != nil, e.ScaleHandle != nil, e.RotateHandle != nil,
		e.Handle != nil, e.Pinch != nil, e.Mouse != nil, e.Touch != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Document is a gesture script.
type Document struct {
	Container Dims          `yaml:"container"`
	Mode      ModeSpec      `yaml:"mode,omitempty"`
	Limits    *LimitsSpec   `yaml:"limits,omitempty"`
	Stickers  []StickerSpec `yaml:"stickers,omitempty"`
	Events    []Event       `yaml:"events,omitempty"`
}

// Load decodes a script. Unknown keys are rejected so typos surface.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &doc, nil
}

// Placement is the reported state of one sticker.
type Placement struct {
	Name     string  `yaml:"name"`
	Text     string  `yaml:"text"`
	Center   Point   `yaml:"center"`
	Scale    float64 `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
	Size     Dims    `yaml:"size"`
	// Matrix is the row-major 2x3 affine mapping the unscaled label onto
	// the container, for whatever composites the result.
	Matrix []float64 `yaml:"matrix,flow"`
}

// Snapshot is the reported state of a replay.
type Snapshot struct {
	Container Dims        `yaml:"container"`
	Dropped   int         `yaml:"dropped"`
	Stickers  []Placement `yaml:"stickers"`
}

// Encode writes s as YAML.
func (s Snapshot) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}
