package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/stickerkit/internal/config"
	"github.com/example/stickerkit/internal/script"
	"github.com/example/stickerkit/internal/sticker"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	config   *config.Config
	gestures string
	handles  string
	verbose  bool
	stdout   io.Writer
	stderr   io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:      flag.NewFlagSet("stickerkit", flag.ExitOnError),
		program: "stickerkit",
		config:  cfg,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.gestures, "gestures", "", "gesture mode (handles, pinch)")
	r.fs.StringVar(&r.handles, "handles", "", "handle resolution (absolute, incremental)")
	r.fs.BoolVar(&r.verbose, "v", false, "log gesture handling to stderr")
	r.fs.Usage = usageFunc(r)
	return r
}

// options resolves the editor settings shared by every subcommand.
func (r *root) options() (script.Options, error) {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	opts := script.Options{Mode: cfg.Mode, Limits: cfg.Limits, Label: cfg.Label}

	gestures := r.gestures
	if gestures == "" {
		gestures = os.Getenv("STICKERKIT_GESTURES")
	}
	if gestures != "" {
		m, err := sticker.ParseGestureMode(gestures)
		if err != nil {
			return opts, err
		}
		opts.Mode.Gestures = m
	}
	handles := r.handles
	if handles == "" {
		handles = os.Getenv("STICKERKIT_HANDLES")
	}
	if handles != "" {
		h, err := sticker.ParseHandleResolution(handles)
		if err != nil {
			return opts, err
		}
		opts.Mode.Handles = h
	}
	return opts, nil
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.verbose {
		sticker.SetLogger(slog.New(slog.NewTextHandler(r.stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "bounds":
		cmd, err = parseBoundsCmd(subArgs, r)
	case "measure":
		cmd, err = parseMeasureCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	if runErr := cmd.Run(); runErr != nil {
		return runErr
	}
	return nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
