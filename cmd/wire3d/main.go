// Command wire3d runs a wireframe scene script.
//
// Usage:
//
//	wire3d [flags] [script]
//
// With no script, or a script named "stdin" or "-", commands are read from
// standard input. The display command opens a window unless -headless is
// given; save writes the framebuffer in the format named by the file's
// extension.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gogpu/wire3d"
	"github.com/gogpu/wire3d/internal/config"
	"github.com/gogpu/wire3d/internal/watch"
	"github.com/gogpu/wire3d/screen"
	"github.com/gogpu/wire3d/script"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stderr)
	stop()
	os.Exit(code)
}

// invocation is a parsed command line.
type invocation struct {
	cfg    config.Config
	script string // "" means standard input
	watch  bool
	logger *slog.Logger
}

func run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) int {
	inv, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "wire3d: %v\n", err)
		return exitUsage
	}
	wire3d.SetLogger(inv.logger)

	job := func(p screen.Presenter) error {
		if inv.watch {
			return watch.New(inv.script, inv.logger).Run(ctx, func() error {
				return runFile(inv, p)
			})
		}
		if inv.script == "" {
			return runScript(inv, stdin, p)
		}
		return runFile(inv, p)
	}

	if inv.cfg.Headless {
		err = job(screen.LogPresenter{Logger: inv.logger})
	} else {
		err = runWindow(ctx, inv.cfg, job)
	}
	if err != nil {
		fmt.Fprintf(stderr, "wire3d: %v\n", err)
		return exitError
	}
	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (invocation, error) {
	fs := flag.NewFlagSet("wire3d", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: wire3d [flags] [script|stdin|-]\n\nflags:\n")
		fs.PrintDefaults()
	}

	def := config.Default()
	var (
		configPath = fs.String("config", "", "TOML or YAML config file")
		width      = fs.Int("width", def.Width, "framebuffer width in pixels")
		height     = fs.Int("height", def.Height, "framebuffer height in pixels")
		step       = fs.Float64("step", def.Step, "parametric step for circles and curves")
		color      = fs.String("color", def.Color, "line colour (#rrggbb)")
		background = fs.String("background", def.Background, "background colour (#rrggbb)")
		strict     = fs.Bool("strict", def.Strict, "abort on the first malformed command")
		headless   = fs.Bool("headless", def.Headless, "do not open a window on display")
		scale      = fs.Int("scale", def.WindowScale, "window zoom factor")
		watchFlag  = fs.Bool("watch", false, "re-run the script whenever it changes")
		verbose    = fs.Bool("v", false, "log display and save")
		debug      = fs.Bool("vv", false, "log every command")
		version    = fs.Bool("version", false, "print the version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return invocation{}, err
	}
	if *version {
		fmt.Fprintf(fs.Output(), "wire3d %s\n", wire3d.Version)
		return invocation{}, flag.ErrHelp
	}
	if fs.NArg() > 1 {
		return invocation{}, fmt.Errorf("too many arguments: %q", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return invocation{}, err
		}
		cfg = loaded
	}

	// Flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "step":
			cfg.Step = *step
		case "color":
			cfg.Color = *color
		case "background":
			cfg.Background = *background
		case "strict":
			cfg.Strict = *strict
		case "headless":
			cfg.Headless = *headless
		case "scale":
			cfg.WindowScale = *scale
		}
	})
	if err := cfg.Validate(); err != nil {
		return invocation{}, err
	}

	inv := invocation{cfg: cfg, watch: *watchFlag}
	switch name := fs.Arg(0); name {
	case "", "stdin", "-":
	default:
		inv.script = name
	}
	if inv.watch && inv.script == "" {
		return invocation{}, errors.New("-watch needs a script file")
	}

	level := slog.LevelWarn
	switch {
	case *debug:
		level = slog.LevelDebug
	case *verbose:
		level = slog.LevelInfo
	}
	inv.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return inv, nil
}

func runFile(inv invocation, p screen.Presenter) error {
	f, err := os.Open(filepath.Clean(inv.script))
	if err != nil {
		return &script.IOError{Op: "open", Path: inv.script, Err: err}
	}
	defer f.Close()
	return runScript(inv, f, p)
}

// runScript interprets r from a fresh state on a freshly cleared screen.
func runScript(inv invocation, r io.Reader, p screen.Presenter) error {
	fg, err := inv.cfg.DrawColor()
	if err != nil {
		return err
	}
	bg, err := inv.cfg.BackgroundColor()
	if err != nil {
		return err
	}

	scr := screen.New(inv.cfg.Width, inv.cfg.Height,
		screen.WithBackground(bg),
		screen.WithPresenter(p),
	)
	in := script.NewInterpreter(script.NewState(), scr,
		script.WithStep(inv.cfg.Step),
		script.WithColor(fg),
		script.WithStrict(inv.cfg.Strict),
		script.WithLogger(inv.logger),
	)
	err = in.Run(r)

	st := in.Stats()
	inv.logger.Info("wire3d: done",
		"executed", st.Executed, "skipped", st.Skipped, "failed", st.Failed,
		"edges", in.State().Edges.Segments())
	return err
}
