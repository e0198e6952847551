package script

import "github.com/gogpu/wire3d"

// Sink is the raster target behind display and save.
//
// display calls Clear, DrawSegments and Present; save calls Clear,
// DrawSegments and Persist. A Sink is used from a single goroutine.
type Sink interface {
	// Clear resets the raster target.
	Clear()

	// DrawSegments rasterises every consecutive point pair of edges.
	DrawSegments(edges *wire3d.EdgeList, c wire3d.Color)

	// Present shows the raster, e.g. in a window.
	Present() error

	// Persist writes the raster to filename.
	Persist(filename string) error
}

// Discard is a Sink that draws nothing and never fails.
var Discard Sink = discard{}

type discard struct{}

func (discard) Clear()                                      {}
func (discard) DrawSegments(*wire3d.EdgeList, wire3d.Color) {}
func (discard) Present() error                              { return nil }
func (discard) Persist(string) error                        { return nil }
