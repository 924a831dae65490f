// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"time"

	"minui.org/config"
	"minui.org/display"
	"minui.org/display/fbdev"
	"minui.org/display/headless"
	"minui.org/display/term"
	"minui.org/io/evdev"
	"minui.org/ui"
)

// backend is an open display and its input devices.
type backend struct {
	painter  display.Painter
	querier  evdev.Querier
	headless *headless.Painter
	term     *term.Painter
	devices  []*evdev.Device
}

func openBackend(env *config.Environment) (*backend, error) {
	switch env.Display {
	case "fbdev":
		p, err := fbdev.Open(env.Framebuffer)
		if err != nil {
			return nil, err
		}
		b := &backend{painter: p}
		devs, err := evdev.OpenAll(env.Input)
		if err != nil {
			logger.Printf("W: no input devices: %v", err)
		}
		b.devices = devs
		return b, nil
	case "term":
		s, err := term.NewScreen()
		if err != nil {
			return nil, err
		}
		p, err := term.New(s, env.Width, env.Height)
		if err != nil {
			return nil, err
		}
		return &backend{painter: p, querier: p, term: p}, nil
	case "headless":
		p, err := headless.New(env.Width, env.Height)
		if err != nil {
			return nil, err
		}
		return &backend{painter: p, headless: p}, nil
	}
	return nil, fmt.Errorf("unknown display %q", env.Display)
}

// attach adds the input devices to w and selects the first device
// accepting rumble effects for haptic feedback.
func (b *backend) attach(w *ui.Window, env *config.Environment) {
	if b.term != nil {
		w.AddInputDevice(b.term.InputFd())
	}
	haptics := env.Haptics
	rumble := ui.DefaultRumble
	rumble.Duration = time.Duration(env.HapticDuration) * time.Millisecond
	for _, d := range b.devices {
		if !w.AddInputDevice(d.Fd()) {
			continue
		}
		if haptics && d.Writable() {
			if err := w.AddHapticDevice(d.Fd(), rumble); err == nil {
				debug.Printf("haptic feedback on %s", d.Name())
				haptics = false
			}
		}
	}
}

func (b *backend) Close() error {
	for _, d := range b.devices {
		d.Close()
	}
	return b.painter.Close()
}
