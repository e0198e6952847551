package script

import (
	"log/slog"

	"github.com/gogpu/wire3d"
)

// Option configures an Interpreter.
//
// Example:
//
//	in := script.NewInterpreter(nil, scr,
//	    script.WithStep(0.005),
//	    script.WithColor(wire3d.White),
//	)
type Option func(*options)

// options holds optional Interpreter configuration.
type options struct {
	step   float64
	color  wire3d.Color
	strict bool
	logger *slog.Logger
}

// defaultOptions returns the default interpreter options.
func defaultOptions() options {
	return options{
		step:  wire3d.DefaultStep,
		color: wire3d.Magenta,
	}
}

// WithStep sets the parametric step used to tessellate circles and
// curves. Smaller steps give more segments. A step outside (0, 1], or one
// below 1/[wire3d.MaxSamples], makes every circle and curve command fail
// with [wire3d.ErrInvalidStep].
func WithStep(step float64) Option {
	return func(o *options) {
		o.step = step
	}
}

// WithColor sets the colour display and save draw edges in.
// The default is magenta (255, 0, 255).
func WithColor(c wire3d.Color) Option {
	return func(o *options) {
		o.color = c
	}
}

// WithStrict makes the first malformed command abort the run instead of
// being skipped. An invalid rotate axis counts as malformed in strict mode.
// Unknown keywords are skipped either way.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLogger sets the logger. By default the interpreter uses
// [wire3d.Logger].
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
