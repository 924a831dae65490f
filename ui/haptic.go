// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"time"

	"github.com/pkg/errors"

	"minui.org/io/evdev"
)

// Haptic is a haptic feedback effect.
type Haptic uint8

const (
	// HapticPress is played when a button is pressed.
	HapticPress Haptic = iota
	hapticCount
)

// Rumble describes a force feedback rumble effect.
type Rumble struct {
	Strong, Weak uint16
	Duration     time.Duration
}

// DefaultRumble is the effect uploaded for every Haptic.
var DefaultRumble = Rumble{Weak: 0x8000, Duration: 100 * time.Millisecond}

type haptics struct {
	fd      int
	effects [hapticCount]int16
}

func newHaptics() haptics {
	return haptics{fd: -1}
}

// AddHapticDevice uploads a rumble effect for every Haptic to fd, an
// evdev device opened for writing. Without an effect the DefaultRumble
// is used. Effects are played on the last device added successfully.
func (w *Window) AddHapticDevice(fd int, effects ...Rumble) error {
	ff, err := w.ff.FFBits(fd)
	if err != nil {
		return errors.Wrap(err, "ui: query force feedback")
	}
	if !ff.IsSet(evdev.FF_RUMBLE) {
		return errors.Errorf("ui: device %d does not support rumble effects", fd)
	}
	h := haptics{fd: fd}
	for i := range h.effects {
		r := DefaultRumble
		if i < len(effects) {
			r = effects[i]
		}
		ms := r.Duration.Milliseconds()
		if ms > 0xffff {
			ms = 0xffff
		}
		id, err := w.ff.UploadRumble(fd, r.Strong, r.Weak, uint16(ms))
		if err != nil {
			return errors.Wrap(err, "ui: upload rumble effect")
		}
		h.effects[i] = id
	}
	w.haptics = h
	return nil
}

// PlayHaptic plays a haptic effect. Without a haptic device it does
// nothing.
func (w *Window) PlayHaptic(e Haptic) {
	if w.haptics.fd < 0 || e >= hapticCount {
		return
	}
	if err := w.ff.PlayEffect(w.haptics.fd, w.haptics.effects[e]); err != nil {
		logger.Printf("W: failed to play haptic effect: %v", err)
	}
}
