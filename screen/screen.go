// Package screen rasterises wire3d edge lists onto a framebuffer.
//
// A [Screen] is the [script.Sink] behind the display and save commands:
// points are projected orthographically (z is dropped), with the origin in
// the bottom-left corner and y growing upwards, and each point pair is
// drawn as a one-pixel line.
package screen

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/wire3d"
	"github.com/gogpu/wire3d/script"
)

// DefaultSize is the width and height of a Screen when none is given.
const DefaultSize = 500

// Presenter shows a finished frame, for example in a window.
type Presenter interface {
	Present(img *image.RGBA) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(img *image.RGBA) error

// Present calls f(img).
func (f PresenterFunc) Present(img *image.RGBA) error { return f(img) }

// LogPresenter logs each presented frame instead of showing it.
type LogPresenter struct {
	Logger *slog.Logger // nil means wire3d.Logger()
}

// Present implements Presenter.
func (p LogPresenter) Present(img *image.RGBA) error {
	l := p.Logger
	if l == nil {
		l = wire3d.Logger()
	}
	l.Info("screen: frame ready (headless)", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// Option configures a Screen.
type Option func(*Screen)

// WithBackground sets the colour Clear fills with. The default is black.
func WithBackground(c wire3d.Color) Option {
	return func(s *Screen) {
		s.background = c
	}
}

// WithPresenter sets what Present hands frames to. The default is a
// LogPresenter.
func WithPresenter(p Presenter) Option {
	return func(s *Screen) {
		s.presenter = p
	}
}

// Screen is a framebuffer that implements script.Sink.
type Screen struct {
	pm         *Pixmap
	background wire3d.Color
	presenter  Presenter
}

var _ script.Sink = (*Screen)(nil)

// New creates a cleared screen. Non-positive sizes fall back to DefaultSize.
func New(width, height int, opts ...Option) *Screen {
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}
	s := &Screen{
		pm:         NewPixmap(width, height),
		background: wire3d.Black,
		presenter:  LogPresenter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Clear()
	return s
}

// Pixmap returns the framebuffer.
func (s *Screen) Pixmap() *Pixmap {
	return s.pm
}

// Clear fills the framebuffer with the background colour.
func (s *Screen) Clear() {
	s.pm.Clear(s.background)
}

// DrawSegments draws every point pair of edges in colour c.
func (s *Screen) DrawSegments(edges *wire3d.EdgeList, c wire3d.Color) {
	for p, q := range edges.All() {
		x0, y0 := s.project(p)
		x1, y1 := s.project(q)
		s.pm.DrawLine(x0, y0, x1, y1, c)
	}
}

// project maps a scene point to pixel coordinates, flipping y so that
// scene y grows upwards.
func (s *Screen) project(p wire3d.Point3) (int, int) {
	x := clampCoord(math.Round(p.X))
	y := clampCoord(float64(s.pm.Height()-1) - math.Round(p.Y))
	return x, y
}

// clampCoord keeps far-away points from overflowing int while still
// landing off-screen.
func clampCoord(v float64) int {
	const limit = 1 << 24
	switch {
	case math.IsNaN(v):
		return -limit
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return int(v)
}

// Present hands a snapshot of the framebuffer to the presenter.
func (s *Screen) Present() error {
	if err := s.presenter.Present(s.pm.ToImage()); err != nil {
		return fmt.Errorf("screen: present: %w", err)
	}
	return nil
}

// Persist saves the framebuffer to filename; see Save for formats.
func (s *Screen) Persist(filename string) error {
	return Save(s.pm, filename)
}
