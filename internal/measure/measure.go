// Package measure reports the footprint of a text sticker before any
// transform is applied.
package measure

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/example/stickerkit/internal/geom"
)

// Options controls the label style.
type Options struct {
	TextSize float64 // points at 72 DPI
	PaddingX float64 // left and right
	PaddingY float64 // top and bottom
}

// DefaultOptions returns the editor's label look: 18pt text in a
// 16x12 padded pill.
func DefaultOptions() Options {
	return Options{TextSize: 18, PaddingX: 16, PaddingY: 12}
}

var (
	parseOnce sync.Once
	parsed    *opentype.Font
	parseErr  error

	// opentype faces are not safe for concurrent use
	mu    sync.Mutex
	faces = map[float64]font.Face{}
)

// faceForSize must be called with mu held.
func faceForSize(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, fmt.Errorf("parse font: %w", parseErr)
	}
	if f, ok := faces[size]; ok {
		return f, nil
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	faces[size] = face
	return face, nil
}

// Text returns the advance width and line height of text.
func Text(text string, size float64) (width, height float64, err error) {
	if size <= 0 {
		size = DefaultOptions().TextSize
	}
	mu.Lock()
	defer mu.Unlock()
	face, err := faceForSize(size)
	if err != nil {
		return 0, 0, err
	}
	m := face.Metrics()
	adv := font.MeasureString(face, text)
	return float64(adv.Ceil()), float64(m.Ascent.Ceil() + m.Descent.Ceil()), nil
}

// Label returns the footprint of a sticker showing text.
func Label(text string, opts Options) (geom.Size, error) {
	w, h, err := Text(text, opts.TextSize)
	if err != nil {
		return geom.Size{}, err
	}
	if text == "" {
		w = 0
	}
	return geom.Sz(
		math.Ceil(w+2*opts.PaddingX),
		math.Ceil(h+2*opts.PaddingY),
	), nil
}
