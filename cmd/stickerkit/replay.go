package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/stickerkit/internal/script"
)

// replayCmd runs a gesture script and prints where the stickers ended up.
type replayCmd struct {
	file   string
	format string
	*root
	fs *flag.FlagSet
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "gesture script to replay (- for stdin)")
	fs.StringVar(&c.format, "format", "text", "output format (text, yaml)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() > 0 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	c.format = strings.ToLower(c.format)
	if c.format != "text" && c.format != "yaml" {
		return nil, fmt.Errorf("unknown format %q", c.format)
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	var in io.Reader = os.Stdin
	if c.file != "-" {
		f, err := os.Open(c.file)
		if err != nil {
			return fmt.Errorf("open %s: %w", c.file, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Printf("close %s: %v", c.file, cerr)
			}
		}()
		in = f
	}
	doc, err := script.Load(in)
	if err != nil {
		return fmt.Errorf("replay %s: %w", c.file, err)
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	res, err := script.Replay(doc, opts)
	if err != nil {
		return fmt.Errorf("replay %s: %w", c.file, err)
	}
	snap := res.Snapshot()
	if c.format == "yaml" {
		return snap.Encode(c.out())
	}
	writeSnapshot(c.out(), snap)
	return nil
}

func writeSnapshot(w io.Writer, snap script.Snapshot) {
	fmt.Fprintf(w, "container %gx%g, %d stickers, %d dropped events\n",
		snap.Container.Width, snap.Container.Height, len(snap.Stickers), snap.Dropped)
	for _, p := range snap.Stickers {
		fmt.Fprintf(w, "%s\tcenter=(%.2f,%.2f) scale=%.3f rotation=%.2f size=%gx%g\t%q\n",
			p.Name, p.Center.X, p.Center.Y, p.Scale, p.Rotation, p.Size.Width, p.Size.Height, p.Text)
	}
}
