package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/stickerkit/internal/geom"
	"github.com/example/stickerkit/internal/sticker"
)

// boundsCmd reports the bounding box of a placed sticker, where a
// candidate center would be clamped to and the affine that draws it there.
type boundsCmd struct {
	container string
	size      string
	scale     float64
	rotation  float64
	*root
	fs *flag.FlagSet
}

func (c *boundsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseBoundsCmd(args []string, r *root) (*boundsCmd, error) {
	fs := flag.NewFlagSet("bounds", flag.ExitOnError)
	c := &boundsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.container, "container", "400x300", "container size WxH")
	fs.StringVar(&c.size, "size", "100x50", "sticker size WxH")
	fs.Float64Var(&c.scale, "scale", 1, "sticker scale")
	fs.Float64Var(&c.rotation, "rotation", 0, "sticker rotation in degrees")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if n := fs.NArg(); n != 0 && n != 2 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *boundsCmd) Run() error {
	container, err := parseDims(c.container)
	if err != nil {
		return fmt.Errorf("container: %w", err)
	}
	size, err := parseDims(c.size)
	if err != nil {
		return fmt.Errorf("size: %w", err)
	}
	candidate := container.Center()
	if c.fs.NArg() == 2 {
		x, err := strconv.ParseFloat(c.fs.Arg(0), 64)
		if err != nil {
			return fmt.Errorf("invalid x %q: %w", c.fs.Arg(0), err)
		}
		y, err := strconv.ParseFloat(c.fs.Arg(1), 64)
		if err != nil {
			return fmt.Errorf("invalid y %q: %w", c.fs.Arg(1), err)
		}
		candidate = geom.V(x, y)
	}

	w := c.out()
	t := sticker.Transform{
		Center:   candidate,
		Scale:    c.scale,
		Rotation: geom.NormalizeAngle(c.rotation),
		Size:     size,
	}
	half := t.HalfExtents()
	fmt.Fprintf(w, "half extents: %.2f x %.2f\n", half.X, half.Y)
	writeRange(w, "x", half.X, container.W)
	writeRange(w, "y", half.Y, container.H)
	t = sticker.Contain(t, container)
	fmt.Fprintf(w, "center: (%.2f,%.2f) -> (%.2f,%.2f)\n", candidate.X, candidate.Y, t.Center.X, t.Center.Y)

	m := t.Matrix()
	fmt.Fprintf(w, "matrix: [%.4f %.4f %.2f; %.4f %.4f %.2f]\n", m[0], m[1], m[2], m[3], m[4], m[5])
	corners := []geom.Vec{geom.V(0, 0), geom.V(size.W, 0), geom.V(size.W, size.H), geom.V(0, size.H)}
	fmt.Fprint(w, "corners:")
	for _, p := range corners {
		q := geom.Apply(m, p)
		fmt.Fprintf(w, " (%.2f,%.2f)", q.X, q.Y)
	}
	fmt.Fprintln(w)
	return nil
}

func writeRange(w io.Writer, axis string, half, extent float64) {
	lo, hi := half, extent-half
	if lo > hi {
		fmt.Fprintf(w, "%s range: empty, snapped to %.2f\n", axis, extent/2)
		return
	}
	fmt.Fprintf(w, "%s range: [%.2f, %.2f]\n", axis, lo, hi)
}

// parseDims reads a "WxH" pair such as 400x300.
func parseDims(s string) (geom.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return geom.Size{}, fmt.Errorf("invalid dimensions %q, want WxH", s)
	}
	width, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return geom.Size{}, fmt.Errorf("invalid width %q: %w", ws, err)
	}
	height, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return geom.Size{}, fmt.Errorf("invalid height %q: %w", hs, err)
	}
	return geom.Sz(width, height), nil
}
