// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"golang.org/x/exp/slices"

	"minui.org/io/evdev"
	"minui.org/io/key"
	"minui.org/io/touch"
)

// eventBatch is the number of input events read at once.
const eventBatch = 64

// axis maps a touch panel axis to screen pixels.
type axis struct {
	num, den, offset int
}

func (a axis) scale(v int) int {
	if a.den <= 0 {
		return v
	}
	return (v - a.offset) * a.num / a.den
}

// AddInputDevice reads input events from fd, an evdev device opened in
// non-blocking mode, whenever it is readable. The first multitouch
// device added drives touch input. False is returned if the loop fails
// to watch fd.
func (w *Window) AddInputDevice(fd int) bool {
	if !w.loop.AddNotifierCallback(fd, w.readInput) {
		return false
	}
	if !slices.Contains(w.devices, fd) {
		w.devices = append(w.devices, fd)
	}
	return true
}

// RemoveInputDevice stops reading fd.
func (w *Window) RemoveInputDevice(fd int) {
	i := slices.Index(w.devices, fd)
	if i < 0 {
		return
	}
	w.devices = slices.Delete(w.devices, i, i+1)
	w.loop.RemoveNotifier(fd)
}

func (w *Window) readInput(fd int, events uint32) bool {
	if w.events == nil {
		w.events = make([]evdev.Event, eventBatch)
	}
	for {
		n, err := evdev.ReadEvents(fd, w.events)
		if err != nil {
			logger.Printf("W: input device %d: %v", fd, err)
			w.RemoveInputDevice(fd)
			return true
		}
		for _, e := range w.events[:n] {
			w.InputEvent(fd, e)
		}
		if n < len(w.events) {
			return true
		}
	}
}

// InputEvent processes an event read from the input device fd.
func (w *Window) InputEvent(fd int, e evdev.Event) {
	w.touch.InputEvent(fd, e)
	if ke, ok := key.FromEvdev(e); ok {
		w.keyEvent(ke)
	}
}

// TouchNormalizer returns the normalizer of the touch input of the
// window.
func (w *Window) TouchNormalizer() *touch.Normalizer {
	return w.touch
}

func (w *Window) touchEvent(e touch.Event) {
	if !w.axesReady {
		w.initAxes(w.touch.Fd())
	}
	x, y := w.axes[0].scale(e.X), w.axes[1].scale(e.Y)
	debug.Printf("touch %v at %d,%d", e.Type, x, y)
	switch e.Type {
	case touch.Press:
		w.fingerPressed(x, y)
	case touch.Move:
		w.fingerMoved(x, y)
	case touch.Lift:
		w.fingerLifted(x, y)
	}
}

// initAxes maps the range of the panel axes to the window size.
func (w *Window) initAxes(fd int) {
	w.axesReady = true
	for i, c := range []struct {
		code uint16
		size int
	}{
		{evdev.ABS_MT_POSITION_X, w.width},
		{evdev.ABS_MT_POSITION_Y, w.height},
	} {
		info, err := w.querier.AbsInfo(fd, c.code)
		if err != nil {
			logger.Printf("W: failed to query touch axis %d: %v", c.code, err)
			continue
		}
		w.axes[i] = axis{
			num:    c.size,
			den:    int(info.Maximum - info.Minimum),
			offset: int(info.Minimum),
		}
	}
}

func (w *Window) fingerPressed(x, y int) {
	it := w.FindItemAt(x-w.x, y-w.y, pressMatch)
	w.touchTarget = nil
	var keyDone, inputDone, pressDone bool
	for i := it; i != nil; i = i.parent {
		if !keyDone && i.keyFocusOnPress {
			w.SetKeyFocusItem(i)
			keyDone = true
		}
		if !inputDone && i.inputFocusOnPress {
			w.SetInputFocusItem(i)
			inputDone = true
		}
		if !pressDone && i.canActivate {
			w.setPressed(i)
			w.touchTarget = i
			pressDone = true
		}
	}
}

func (w *Window) fingerMoved(x, y int) {
	if t := w.touchTarget; t != nil && !t.ContainsAbs(x, y) {
		if w.pressed == t {
			w.setPressed(nil)
		}
		w.touchTarget = nil
	}
}

func (w *Window) fingerLifted(x, y int) {
	t := w.touchTarget
	w.touchTarget = nil
	if t == nil || w.pressed != t {
		return
	}
	w.setPressed(nil)
	if t.ContainsAbs(x, y) {
		t.Activate()
	}
}

// Activate calls the Activate method of the delegate if the item can be
// activated.
func (it *Item) Activate() {
	if !it.canActivate {
		return
	}
	if a, ok := it.delegate.(Activator); ok {
		a.Activate()
	}
}

func (w *Window) keyEvent(e key.Event) {
	down := e.State != key.Release
	switch e.Code {
	case key.CodeDown, key.CodeVolumeDown:
		if down {
			w.SetKeyFocusItem(w.NextKeyFocusItem())
		}
	case key.CodeUp, key.CodeVolumeUp:
		if down {
			w.SetKeyFocusItem(w.PreviousKeyFocusItem())
		}
	case key.CodePower:
		if w.flags&PowerButtonDoesntSelect != 0 {
			if w.pressed != nil && w.pressed == w.keyFocus {
				w.setPressed(nil)
			}
			return
		}
		w.selectKey(down)
	case key.CodeEnter, key.CodeOK, key.CodeSelect:
		w.selectKey(down)
	default:
		if down {
			w.KeyPress(e)
		}
	}
}

// selectKey presses the key focus item and activates it on release.
// Without key focus the key is delivered to the input focus item as
// enter.
func (w *Window) selectKey(down bool) {
	f := w.keyFocus
	if f == nil {
		if down {
			w.KeyPress(key.Event{Code: key.CodeEnter, State: key.Press})
		}
		return
	}
	if down {
		w.setPressed(f)
		return
	}
	if w.pressed == f {
		w.setPressed(nil)
		f.Activate()
	}
}

// KeyPress delivers a key press to the input focus item and reports
// whether it was handled.
func (w *Window) KeyPress(e key.Event) bool {
	if w.inputFocus == nil {
		return false
	}
	if h, ok := w.inputFocus.delegate.(KeyHandler); ok {
		return h.KeyPress(e)
	}
	return false
}
