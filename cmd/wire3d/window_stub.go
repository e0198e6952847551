//go:build !cgo && !windows && !darwin

package main

import (
	"context"
	"errors"

	"github.com/gogpu/wire3d/internal/config"
	"github.com/gogpu/wire3d/screen"
)

func runWindow(context.Context, config.Config, func(screen.Presenter) error) error {
	return errors.New("window mode requires cgo (build with CGO_ENABLED=1 or run with -headless)")
}
