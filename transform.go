package wire3d

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAxis is returned by ParseAxis for anything other than x, y or z.
var ErrInvalidAxis = errors.New("wire3d: invalid rotation axis")

// Axis names a coordinate axis for rotation.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// ParseAxis parses a single-letter axis name, case-insensitively.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return AxisZ, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Scale creates a 4x4 scaling matrix.
func Scale(sx, sy, sz float64) *Matrix {
	return newMatrixRows(
		[]float64{sx, 0, 0, 0},
		[]float64{0, sy, 0, 0},
		[]float64{0, 0, sz, 0},
		[]float64{0, 0, 0, 1},
	)
}

// Translate creates a 4x4 translation matrix.
func Translate(tx, ty, tz float64) *Matrix {
	return newMatrixRows(
		[]float64{1, 0, 0, tx},
		[]float64{0, 1, 0, ty},
		[]float64{0, 0, 1, tz},
		[]float64{0, 0, 0, 1},
	)
}

// RotateX creates a rotation about the X axis (angle in radians).
func RotateX(theta float64) *Matrix {
	sin, cos := math.Sincos(theta)
	return newMatrixRows(
		[]float64{1, 0, 0, 0},
		[]float64{0, cos, -sin, 0},
		[]float64{0, sin, cos, 0},
		[]float64{0, 0, 0, 1},
	)
}

// RotateY creates a rotation about the Y axis (angle in radians).
func RotateY(theta float64) *Matrix {
	sin, cos := math.Sincos(theta)
	return newMatrixRows(
		[]float64{cos, 0, sin, 0},
		[]float64{0, 1, 0, 0},
		[]float64{-sin, 0, cos, 0},
		[]float64{0, 0, 0, 1},
	)
}

// RotateZ creates a rotation about the Z axis (angle in radians).
func RotateZ(theta float64) *Matrix {
	sin, cos := math.Sincos(theta)
	return newMatrixRows(
		[]float64{cos, -sin, 0, 0},
		[]float64{sin, cos, 0, 0},
		[]float64{0, 0, 1, 0},
		[]float64{0, 0, 0, 1},
	)
}

// Rotate creates a rotation about the given axis (angle in radians).
// Axis values outside AxisX..AxisZ rotate about Z.
func Rotate(axis Axis, theta float64) *Matrix {
	switch axis {
	case AxisX:
		return RotateX(theta)
	case AxisY:
		return RotateY(theta)
	default:
		return RotateZ(theta)
	}
}
