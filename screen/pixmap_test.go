package screen

import (
	"testing"

	"github.com/gogpu/wire3d"
)

func TestNewPixmapIsBlack(t *testing.T) {
	pm := NewPixmap(4, 3)
	if pm.Width() != 4 || pm.Height() != 3 {
		t.Fatalf("size = %dx%d", pm.Width(), pm.Height())
	}
	for y := range 3 {
		for x := range 4 {
			if c := pm.Pixel(x, y); c != wire3d.Black {
				t.Fatalf("Pixel(%d, %d) = %+v, want black", x, y, c)
			}
		}
	}
	if a := pm.ToImage().Pix[3]; a != 0xff {
		t.Errorf("alpha = %d, want 255", a)
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	pm := NewPixmap(2, 2)
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		pm.SetPixel(pt[0], pt[1], wire3d.White) // must not panic
	}
	if c := pm.Pixel(5, 5); c != wire3d.Black {
		t.Errorf("out-of-bounds Pixel() = %+v", c)
	}
}

func TestClear(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.Clear(wire3d.Magenta)
	if c := pm.Pixel(2, 2); c != wire3d.Magenta {
		t.Errorf("Pixel(2, 2) = %+v after Clear(magenta)", c)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 1, 2, 4, 2, [][2]int{{1, 2}, {2, 2}, {3, 2}, {4, 2}}},
		{"vertical reversed", 3, 4, 3, 1, [][2]int{{3, 1}, {3, 2}, {3, 3}, {3, 4}}},
		{"diagonal", 0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"anti-diagonal", 3, 0, 0, 3, [][2]int{{3, 0}, {2, 1}, {1, 2}, {0, 3}}},
		{"single point", 2, 2, 2, 2, [][2]int{{2, 2}}},
		{"shallow", 0, 0, 4, 2, [][2]int{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(6, 6)
			pm.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, wire3d.White)

			want := map[[2]int]bool{}
			for _, p := range tt.want {
				want[p] = true
			}
			for y := range 6 {
				for x := range 6 {
					lit := pm.Pixel(x, y) == wire3d.White
					if lit != want[[2]int{x, y}] {
						t.Errorf("pixel (%d, %d) lit = %v, want %v", x, y, lit, !lit)
					}
				}
			}
		})
	}
}

func TestDrawLineClipsOffscreen(t *testing.T) {
	pm := NewPixmap(5, 5)
	pm.DrawLine(-10, 2, 20, 2, wire3d.White)
	for x := range 5 {
		if pm.Pixel(x, 2) != wire3d.White {
			t.Errorf("pixel (%d, 2) not drawn", x)
		}
	}
}

func TestPixmapImageInterface(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(1, 0, wire3d.Magenta)
	r, g, b, a := pm.At(1, 0).RGBA()
	if r != 0xffff || g != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("At(1, 0).RGBA() = %d %d %d %d", r, g, b, a)
	}
	if pm.Bounds().Dx() != 2 || pm.Bounds().Dy() != 2 {
		t.Errorf("Bounds() = %v", pm.Bounds())
	}
}
