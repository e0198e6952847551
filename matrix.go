package wire3d

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDimensionMismatch is returned by Multiply when the inner dimensions of
// the operands differ.
var ErrDimensionMismatch = errors.New("wire3d: matrix dimension mismatch")

// Matrix is a rows x cols grid of float64 values.
//
// Storage is column-major: column j occupies data[j*rows : (j+1)*rows].
// Transforms are 4x4; edge lists are 4 x n with one homogeneous point
// [x y z 1] per column, so appending a point only grows the slice.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix creates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("wire3d: negative matrix size %dx%d", rows, cols))
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m
}

// newMatrixRows builds a matrix from row slices. Used by the transform and
// basis constructors where row-major literals read naturally.
func newMatrixRows(rows ...[]float64) *Matrix {
	m := NewMatrix(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, v := range row {
			m.Set(r, c, v)
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) float64 {
	return m.data[c*m.rows+r]
}

// Set stores v at row r, column c.
func (m *Matrix) Set(r, c int, v float64) {
	m.data[c*m.rows+r] = v
}

// AppendPoint appends the homogeneous column [x y z 1].
// It panics if m does not have exactly 4 rows.
func (m *Matrix) AppendPoint(x, y, z float64) {
	if m.rows != 4 {
		panic(fmt.Sprintf("wire3d: AppendPoint on %d-row matrix", m.rows))
	}
	m.data = append(m.data, x, y, z, 1)
	m.cols++
}

// Point returns column c of a 4-row matrix as a 3D point.
// The homogeneous component is not divided out.
func (m *Matrix) Point(c int) Point3 {
	col := m.data[c*m.rows : (c+1)*m.rows]
	return Point3{X: col[0], Y: col[1], Z: col[2]}
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// SetIdentity overwrites a square matrix with the identity in place.
func (m *Matrix) SetIdentity() {
	if m.rows != m.cols {
		panic(fmt.Sprintf("wire3d: SetIdentity on non-square %dx%d matrix", m.rows, m.cols))
	}
	clear(m.data)
	for i := range m.rows {
		m.data[i*m.rows+i] = 1
	}
}

// truncate drops every column, keeping the row count.
func (m *Matrix) truncate() {
	m.data = m.data[:0]
	m.cols = 0
}

// Multiply computes a × b and stores the product in b.
//
// b may have any number of columns; after the call it has a.Rows() rows.
// On a dimension mismatch b is left untouched.
func Multiply(a, b *Matrix) error {
	if a.cols != b.rows {
		return fmt.Errorf("%w: %dx%d × %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := make([]float64, a.rows*b.cols)
	col := make([]float64, b.rows)
	for j := range b.cols {
		copy(col, b.data[j*b.rows:(j+1)*b.rows])
		for i := range a.rows {
			var sum float64
			for k := range a.cols {
				sum += a.data[k*a.rows+i] * col[k]
			}
			out[j*a.rows+i] = sum
		}
	}

	b.rows = a.rows
	b.data = out
	return nil
}

// IsIdentity reports whether m is square and within tol of the identity.
func (m *Matrix) IsIdentity(tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	for c := range m.cols {
		for r := range m.rows {
			want := 0.0
			if r == c {
				want = 1
			}
			if math.Abs(m.At(r, c)-want) > tol {
				return false
			}
		}
	}
	return true
}

// Equal reports whether m and o have the same shape and every element
// differs by at most tol.
func (m *Matrix) Equal(o *Matrix, tol float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if math.Abs(m.data[i]-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := range m.rows {
		for c := range m.cols {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(m.At(r, c), 'g', 6, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
