package wire3d

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidColor is returned by ParseHex for malformed colour strings.
var ErrInvalidColor = errors.New("wire3d: invalid color")

// Color is an opaque 8-bit-per-channel RGB colour.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Magenta = Color{255, 0, 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rgb", "#rrggbb" or the same without the leading '#'.
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var v [6]uint8
	switch len(s) {
	case 3:
		for i := range 3 {
			d, ok := hexDigit(s[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
			}
			v[2*i], v[2*i+1] = d, d
		}
	case 6:
		for i := range 6 {
			d, ok := hexDigit(s[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
			}
			v[i] = d
		}
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	return Color{
		R: v[0]<<4 | v[1],
		G: v[2]<<4 | v[3],
		B: v[4]<<4 | v[5],
	}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
