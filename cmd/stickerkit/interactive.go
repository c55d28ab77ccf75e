package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/example/stickerkit/internal/geom"
	"github.com/example/stickerkit/internal/measure"
	"github.com/example/stickerkit/internal/sticker"
)

var errNoSelection = errors.New("no sticker selected")

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives a sticker store from typed commands.
type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	execs commandList
	in    io.Reader
	store *sticker.Store
	label measure.Options
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs, in: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *interactiveCmd) init() error {
	if c.store != nil {
		return nil
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	c.store = sticker.NewStore(opts.Mode, opts.Limits)
	c.label = opts.Label
	return nil
}

func (c *interactiveCmd) Run() error {
	if err := c.init(); err != nil {
		return err
	}
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.out(), "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out(), "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command. It reports true when the session should end.
func (c *interactiveCmd) executeLine(line string) (bool, error) {
	args := strings.Fields(strings.TrimSpace(line))
	if len(args) == 0 {
		return false, nil
	}
	w := c.out()
	switch args[0] {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(w, "commands: container W H | add TEXT | list | select ID | remove [ID]")
		fmt.Fprintln(w, "          drag DX DY | scale X Y | rotate X Y | pinch CX CY ZOOM DEG [PX PY] | local X Y")
		return false, nil
	case "container":
		size, err := c.dims(args[1:])
		if err != nil {
			return false, err
		}
		c.store.SetContainer(size)
		return false, c.list(w)
	case "add":
		if len(args) < 2 {
			return false, errors.New("usage: add TEXT")
		}
		return false, c.add(w, strings.Join(args[1:], " "))
	case "list":
		return false, c.list(w)
	case "select":
		if len(args) != 2 {
			return false, errors.New("usage: select ID")
		}
		id, err := c.resolve(args[1])
		if err != nil {
			return false, err
		}
		c.store.Select(id)
		return false, nil
	case "remove":
		id, err := c.target(args[1:])
		if err != nil {
			return false, err
		}
		c.store.Remove(id)
		return false, c.list(w)
	case "drag":
		return false, c.vecCommand(w, args, func(id uuid.UUID, v geom.Vec) bool {
			return c.store.Drag(id, v)
		})
	case "scale":
		return false, c.vecCommand(w, args, func(id uuid.UUID, v geom.Vec) bool {
			return c.handle(id, sticker.HandleScale, v)
		})
	case "rotate":
		return false, c.vecCommand(w, args, func(id uuid.UUID, v geom.Vec) bool {
			return c.handle(id, sticker.HandleRotate, v)
		})
	case "pinch":
		return false, c.pinch(w, args[1:])
	case "local":
		return false, c.local(w, args[1:])
	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *interactiveCmd) add(w io.Writer, text string) error {
	size, err := measure.Label(text, c.label)
	if err != nil {
		return err
	}
	id, ok := c.store.Add(text)
	if !ok {
		return errors.New("container size is not known yet, set it with 'container W H'")
	}
	c.store.Resize(id, size)
	s, _ := c.store.Get(id)
	writeSticker(w, s)
	return nil
}

// handle applies a handle command. Absolute modes read v as the pointer in
// the local frame, incremental modes as a single movement.
func (c *interactiveCmd) handle(id uuid.UUID, kind sticker.HandleKind, v geom.Vec) bool {
	if c.store.Mode().Handles == sticker.HandlesIncremental {
		if !c.store.BeginHandle(id, kind) {
			return false
		}
		defer c.store.EndHandle(id)
		return c.store.StepHandle(id, v)
	}
	if kind == sticker.HandleRotate {
		return c.store.RotateHandle(id, v)
	}
	return c.store.ScaleHandle(id, v)
}

func (c *interactiveCmd) pinch(w io.Writer, args []string) error {
	if len(args) != 4 && len(args) != 6 {
		return errors.New("usage: pinch CX CY ZOOM DEG [PX PY]")
	}
	nums, err := parseFloats(args)
	if err != nil {
		return err
	}
	ev := sticker.PinchEvent{
		Centroid: geom.V(nums[0], nums[1]),
		Zoom:     nums[2],
		Rotation: nums[3],
	}
	if len(nums) == 6 {
		ev.Pan = geom.V(nums[4], nums[5])
	}
	id, err := c.target(nil)
	if err != nil {
		return err
	}
	if !c.store.Pinch(id, ev) {
		return fmt.Errorf("pinch ignored in %s mode", c.store.Mode().Gestures)
	}
	return c.show(w, id)
}

// local prints a container point in the selected sticker's frame, the
// coordinates handle commands expect.
func (c *interactiveCmd) local(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: local X Y")
	}
	nums, err := parseFloats(args)
	if err != nil {
		return err
	}
	id, err := c.target(nil)
	if err != nil {
		return err
	}
	s, ok := c.store.Get(id)
	if !ok {
		return fmt.Errorf("sticker %s not found", id)
	}
	p := s.Transform.ContainerToLocal(geom.V(nums[0], nums[1]))
	fmt.Fprintf(w, "local (%.2f,%.2f)\n", p.X, p.Y)
	return nil
}

func (c *interactiveCmd) vecCommand(w io.Writer, args []string, fn func(uuid.UUID, geom.Vec) bool) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: %s X Y", args[0])
	}
	nums, err := parseFloats(args[1:])
	if err != nil {
		return err
	}
	id, err := c.target(nil)
	if err != nil {
		return err
	}
	if !fn(id, geom.V(nums[0], nums[1])) {
		return fmt.Errorf("%s ignored in %s mode", args[0], c.store.Mode().Gestures)
	}
	return c.show(w, id)
}

// target returns the sticker named in args, or the selection when args is
// empty.
func (c *interactiveCmd) target(args []string) (uuid.UUID, error) {
	if len(args) > 0 {
		return c.resolve(args[0])
	}
	id, ok := c.store.Selected()
	if !ok {
		return uuid.Nil, errNoSelection
	}
	return id, nil
}

// resolve matches a full id or a unique prefix of one.
func (c *interactiveCmd) resolve(prefix string) (uuid.UUID, error) {
	if id, err := uuid.Parse(prefix); err == nil {
		if _, ok := c.store.Get(id); ok {
			return id, nil
		}
	}
	var found []uuid.UUID
	for _, s := range c.store.Snapshot() {
		if strings.HasPrefix(s.ID.String(), strings.ToLower(prefix)) {
			found = append(found, s.ID)
		}
	}
	switch len(found) {
	case 0:
		return uuid.Nil, fmt.Errorf("no sticker matches %q", prefix)
	case 1:
		return found[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%q matches %d stickers", prefix, len(found))
	}
}

func (c *interactiveCmd) dims(args []string) (geom.Size, error) {
	switch len(args) {
	case 1:
		return parseDims(args[0])
	case 2:
		nums, err := parseFloats(args)
		if err != nil {
			return geom.Size{}, err
		}
		return geom.Sz(nums[0], nums[1]), nil
	default:
		return geom.Size{}, errors.New("usage: container W H")
	}
}

func (c *interactiveCmd) show(w io.Writer, id uuid.UUID) error {
	s, ok := c.store.Get(id)
	if !ok {
		return fmt.Errorf("sticker %s not found", id)
	}
	writeSticker(w, s)
	return nil
}

func (c *interactiveCmd) list(w io.Writer) error {
	selected, _ := c.store.Selected()
	for _, s := range c.store.Snapshot() {
		if s.ID == selected {
			fmt.Fprint(w, "* ")
		} else {
			fmt.Fprint(w, "  ")
		}
		writeSticker(w, s)
	}
	return nil
}

func writeSticker(w io.Writer, s sticker.Sticker) {
	t := s.Transform
	fmt.Fprintf(w, "%s\tcenter=(%.2f,%.2f) scale=%.3f rotation=%.2f size=%gx%g\t%q\n",
		s.ID.String()[:8], t.Center.X, t.Center.Y, t.Scale, t.Rotation, t.Size.W, t.Size.H, s.Text)
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}
