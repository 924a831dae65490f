// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

// Package fbdev implements a display on a Linux framebuffer device.
package fbdev

import (
	"github.com/pkg/errors"

	"minui.org/display"
)

const DefaultPath = "/dev/fb0"

type Painter struct {
	display.Painter
}

func Open(path string) (*Painter, error) {
	return nil, errors.New("fbdev: not supported on this platform")
}
