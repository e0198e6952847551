//go:build cgo || windows || darwin

package main

import (
	"context"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/wire3d"
	"github.com/gogpu/wire3d/internal/config"
	"github.com/gogpu/wire3d/screen"
)

// runWindow runs job on a goroutine while a desktop window shows the
// frames it presents. It blocks until the window closes, or until job
// finishes without ever presenting a frame.
func runWindow(ctx context.Context, cfg config.Config, job func(screen.Presenter) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := &window{width: cfg.Width, height: cfg.Height, ctx: ctx}
	go func() {
		err := job(w)
		w.finish(err)
	}()

	ebiten.SetWindowTitle("wire3d " + wire3d.Version)
	ebiten.SetWindowSize(cfg.Width*cfg.WindowScale, cfg.Height*cfg.WindowScale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(w); err != nil {
		return err
	}
	return w.result()
}

// window is an ebiten.Game that shows the latest presented frame.
type window struct {
	width, height int
	ctx           context.Context

	mu      sync.Mutex
	frame   *image.RGBA
	dirty   bool
	shown   bool
	done    bool
	err     error
	fbImage *ebiten.Image
}

// Present implements screen.Presenter. It is called from the script
// goroutine.
func (w *window) Present(img *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame = img
	w.dirty = true
	w.shown = true
	return nil
}

func (w *window) finish(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.done = true
	w.err = err
}

func (w *window) result() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	// A script that never displays has nothing to show.
	if w.done && !w.shown {
		return ebiten.Termination
	}
	return nil
}

func (w *window) Draw(dst *ebiten.Image) {
	w.mu.Lock()
	frame, dirty := w.frame, w.dirty
	w.dirty = false
	w.mu.Unlock()

	if frame == nil {
		return
	}
	if dirty {
		b := frame.Bounds()
		if w.fbImage == nil || w.fbImage.Bounds().Dx() != b.Dx() || w.fbImage.Bounds().Dy() != b.Dy() {
			if w.fbImage != nil {
				w.fbImage.Deallocate()
			}
			w.fbImage = ebiten.NewImage(b.Dx(), b.Dy())
		}
		w.fbImage.WritePixels(frame.Pix)
	}
	dst.DrawImage(w.fbImage, nil)
}

func (w *window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}
