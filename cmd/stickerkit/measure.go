package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/stickerkit/internal/measure"
)

type measureCmd struct {
	textSize float64
	*root
	fs *flag.FlagSet
}

func (c *measureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseMeasureCmd(args []string, r *root) (*measureCmd, error) {
	fs := flag.NewFlagSet("measure", flag.ExitOnError)
	c := &measureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.Float64Var(&c.textSize, "size", 0, "text size in points (default from config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *measureCmd) Run() error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	label := opts.Label
	if c.textSize > 0 {
		label.TextSize = c.textSize
	}
	text := strings.Join(c.fs.Args(), " ")
	size, err := measure.Label(text, label)
	if err != nil {
		return fmt.Errorf("measure %q: %w", text, err)
	}
	fmt.Fprintf(c.out(), "%gx%g\n", size.W, size.H)
	return nil
}
