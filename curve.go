package wire3d

import (
	"errors"
	"fmt"
	"math"
)

// DefaultStep is the parametric step used when none is configured:
// 100 samples per circle or curve.
const DefaultStep = 0.01

// Tessellation errors.
var (
	// ErrInvalidStep is returned for a step that is not in (0, 1] or that
	// needs more than MaxSamples samples.
	ErrInvalidStep = errors.New("wire3d: invalid tessellation step")

	// ErrInvalidBasis is returned for an unknown curve basis.
	ErrInvalidBasis = errors.New("wire3d: invalid curve basis")
)

// Basis selects how AddCurve interprets its four coordinate pairs.
type Basis uint8

const (
	// Hermite reads the pairs as p0, p1 (endpoints) and r0, r1 (tangents
	// at p0 and p1).
	Hermite Basis = iota

	// Bezier reads the pairs as the four cubic Bezier control points.
	Bezier
)

// String returns the basis name.
func (b Basis) String() string {
	switch b {
	case Hermite:
		return "hermite"
	case Bezier:
		return "bezier"
	default:
		return fmt.Sprintf("Basis(%d)", uint8(b))
	}
}

// matrix returns the 4x4 matrix that turns a geometry column into the
// cubic coefficients [a b c d] of a*t^3 + b*t^2 + c*t + d.
func (b Basis) matrix() (*Matrix, error) {
	switch b {
	case Hermite:
		return newMatrixRows(
			[]float64{2, -2, 1, 1},
			[]float64{-3, 3, -2, -1},
			[]float64{0, 0, 1, 0},
			[]float64{1, 0, 0, 0},
		), nil
	case Bezier:
		return newMatrixRows(
			[]float64{-1, 3, -3, 1},
			[]float64{3, -6, 3, 0},
			[]float64{-3, 3, 0, 0},
			[]float64{1, 0, 0, 0},
		), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidBasis, uint8(b))
}

// cubic holds the coefficients of one coordinate of a cubic curve.
type cubic struct {
	a, b, c, d float64
}

func (k cubic) eval(t float64) float64 {
	return ((k.a*t+k.b)*t+k.c)*t + k.d
}

// coefficients computes basis × [g0 g1 g2 g3]^T for one coordinate.
func coefficients(basis *Matrix, g0, g1, g2, g3 float64) cubic {
	geom := NewMatrix(4, 1)
	geom.Set(0, 0, g0)
	geom.Set(1, 0, g1)
	geom.Set(2, 0, g2)
	geom.Set(3, 0, g3)
	// 4x4 × 4x1 cannot mismatch.
	_ = Multiply(basis, geom)
	return cubic{a: geom.At(0, 0), b: geom.At(1, 0), c: geom.At(2, 0), d: geom.At(3, 0)}
}

// MaxSamples bounds floor(1/step), the points generated per circle or
// curve. Smaller steps fail with ErrInvalidStep.
const MaxSamples = 1 << 20

// ValidateStep reports whether step can be used by AddCircle and AddCurve.
func ValidateStep(step float64) error {
	_, err := sampleCount(step)
	return err
}

// sampleCount returns floor(1/step), the number of intervals in [0, 1].
func sampleCount(step float64) (int, error) {
	if !(step > 0 && step <= 1) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}
	// The epsilon keeps 1/0.01 from flooring to 99.
	n := math.Floor(1/step + 1e-9)
	if n > MaxSamples {
		return 0, fmt.Errorf("%w: %v gives more than %d samples", ErrInvalidStep, step, MaxSamples)
	}
	return int(n), nil
}

// AddCircle appends a closed circle of radius r centred on (cx, cy) in the
// plane z = cz. It samples floor(1/step) points evenly around the circle,
// joins consecutive samples, and joins the last sample back to the first.
func (e *EdgeList) AddCircle(cx, cy, cz, r, step float64) error {
	n, err := sampleCount(step)
	if err != nil {
		return err
	}

	at := func(i int) Point3 {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		return Point3{X: cx + r*cos, Y: cy + r*sin, Z: cz}
	}

	first := at(0)
	prev := first
	for i := 1; i < n; i++ {
		p := at(i)
		e.addSegment(prev, p)
		prev = p
	}
	e.addSegment(prev, first)
	return nil
}

// AddCurve appends a cubic curve in the plane z = 0, evaluated at
// t = i/floor(1/step) for i from 0 through floor(1/step).
//
// For Hermite the arguments are x0 y0 x1 y1 rx0 ry0 rx1 ry1: the endpoints
// followed by the tangents. For Bezier they are the four control points.
func (e *EdgeList) AddCurve(x0, y0, x1, y1, x2, y2, x3, y3, step float64, basis Basis) error {
	n, err := sampleCount(step)
	if err != nil {
		return err
	}
	bm, err := basis.matrix()
	if err != nil {
		return err
	}

	kx := coefficients(bm, x0, x1, x2, x3)
	ky := coefficients(bm, y0, y1, y2, y3)

	prev := Point3{X: kx.d, Y: ky.d}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		p := Point3{X: kx.eval(t), Y: ky.eval(t)}
		e.addSegment(prev, p)
		prev = p
	}
	return nil
}
