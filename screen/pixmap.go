package screen

import (
	"image"
	"image/color"

	"github.com/gogpu/wire3d"
)

// Pixmap represents a rectangular RGBA pixel buffer with (0, 0) at the
// top-left corner.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel, alpha always 0xff
}

// NewPixmap creates a new pixmap with the given dimensions, filled with
// opaque black.
func NewPixmap(width, height int) *Pixmap {
	p := &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	p.Clear(wire3d.Black)
	return p
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are
// ignored.
func (p *Pixmap) SetPixel(x, y int, c wire3d.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = 0xff
}

// Pixel returns the color of a single pixel, or black when out of bounds.
func (p *Pixmap) Pixel(x, y int) wire3d.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return wire3d.Black
	}
	i := (y*p.width + x) * 4
	return wire3d.Color{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2]}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c wire3d.Color) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = 0xff
	}
}

// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1) inclusive,
// using integer Bresenham stepping. Pixels outside the pixmap are skipped.
func (p *Pixmap) DrawLine(x0, y0, x1, y1 int, c wire3d.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		p.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// ToImage copies the pixmap into a new image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
