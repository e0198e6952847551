package wire3d

import (
	"fmt"
	"iter"
)

// EdgeList is an ordered sequence of homogeneous points read pairwise as
// independent line segments. Points are the columns of a 4 x n Matrix.
//
// Every mutation appends points in pairs, so Len is always even.
type EdgeList struct {
	m *Matrix
}

// NewEdgeList creates an empty edge list.
func NewEdgeList() *EdgeList {
	return &EdgeList{m: NewMatrix(4, 0)}
}

// AddEdge appends the segment (x0, y0, z0)-(x1, y1, z1).
func (e *EdgeList) AddEdge(x0, y0, z0, x1, y1, z1 float64) {
	e.m.AppendPoint(x0, y0, z0)
	e.m.AppendPoint(x1, y1, z1)
}

func (e *EdgeList) addSegment(p, q Point3) {
	e.AddEdge(p.X, p.Y, p.Z, q.X, q.Y, q.Z)
}

// Len returns the number of points (twice the number of segments).
func (e *EdgeList) Len() int {
	return e.m.Cols()
}

// Segments returns the number of segments.
func (e *EdgeList) Segments() int {
	return e.m.Cols() / 2
}

// Point returns point i.
func (e *EdgeList) Point(i int) Point3 {
	return e.m.Point(i)
}

// Segment returns the endpoints of segment i.
func (e *EdgeList) Segment(i int) (Point3, Point3) {
	return e.m.Point(2 * i), e.m.Point(2*i + 1)
}

// All iterates over the segments in insertion order.
func (e *EdgeList) All() iter.Seq2[Point3, Point3] {
	return func(yield func(Point3, Point3) bool) {
		for i := range e.Segments() {
			p, q := e.Segment(i)
			if !yield(p, q) {
				return
			}
		}
	}
}

// Apply replaces every point with m × point.
// m must be 4x4.
func (e *EdgeList) Apply(m *Matrix) error {
	if m.Rows() != 4 {
		return fmt.Errorf("%w: %dx%d transform applied to edge list", ErrDimensionMismatch, m.Rows(), m.Cols())
	}
	return Multiply(m, e.m)
}

// Matrix returns the underlying 4 x n point matrix. The edge list keeps
// ownership; callers must not change its shape.
func (e *EdgeList) Matrix() *Matrix {
	return e.m
}

// Reset removes every segment.
func (e *EdgeList) Reset() {
	e.m.truncate()
}
