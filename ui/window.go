// SPDX-License-Identifier: Unlicense OR MIT

/*
Package ui implements the retained scene graph of a minui program.

A Window is the root Item of a tree of items. Changing an item
invalidates it, which records the passes the change requires and wakes
the loop through an eventfd. The window then runs, once for any number of
invalidations,

  - the state pass, telling items about focus, press and enabled changes,
  - the layout pass, over the items whose size or children changed,
  - the draw pass, repainting every visible item and presenting the frame.

Items gain key focus, input focus and the pressed state through touch and
key input delivered by the input devices added to the window. An item that
becomes disabled, hidden or detached gives up its focus to the next
eligible item of the window.
*/
package ui

import (
	"image/color"

	"github.com/pkg/errors"

	"minui.org/display"
	"minui.org/internal/logutil"
	"minui.org/io/evdev"
	"minui.org/io/touch"
	"minui.org/loop"
)

var (
	logger = logutil.GetLogger("[ui] ")
	debug  = logutil.GetDebugLogger("[ui] ")
)

// Window is the root item of a scene graph drawn to a display.
type Window struct {
	*Item

	loop    *loop.Loop
	painter display.Painter
	wake    *loop.Wakeup
	querier evdev.Querier
	ff      evdev.ForceFeedback

	color        color.NRGBA
	displayState display.State

	// pending is the union of the invalidations since the last update.
	pending  Invalidation
	signaled bool
	updating bool

	keyFocus   *Item
	inputFocus *Item
	pressed    *Item

	touch       *touch.Normalizer
	touchTarget *Item
	axes        [2]axis
	axesReady   bool

	devices []int
	events  []evdev.Event
	haptics haptics
}

// Option configures a Window.
type Option func(w *Window)

// WithQuerier replaces the ioctl based capability queries of input
// devices.
func WithQuerier(q evdev.Querier) Option {
	return func(w *Window) {
		w.querier = q
	}
}

// WithForceFeedback replaces the ioctl based force feedback of haptic
// devices.
func WithForceFeedback(ff evdev.ForceFeedback) Option {
	return func(w *Window) {
		w.ff = ff
	}
}

// WithBackground sets the color the window is cleared with.
func WithBackground(c color.NRGBA) Option {
	return func(w *Window) {
		w.color = c
	}
}

// NewWindow creates a window covering the screen of p. The window
// updates from callbacks of l.
func NewWindow(l *loop.Loop, p display.Painter, opts ...Option) (*Window, error) {
	w := &Window{
		loop:         l,
		painter:      p,
		querier:      evdev.Kernel{},
		ff:           evdev.Kernel{},
		color:        color.NRGBA{A: 0xff},
		displayState: display.Unknown,
		haptics:      newHaptics(),
	}
	for _, o := range opts {
		o(w)
	}
	wake, err := loop.NewWakeup()
	if err != nil {
		return nil, errors.Wrap(err, "ui: create window")
	}
	if !l.AddNotifierCallback(wake.Fd(), w.wakeupCallback) {
		wake.Close()
		return nil, errors.New("ui: failed to watch the window eventfd")
	}
	w.wake = wake
	w.touch = touch.New(w.touchEvent, w.querier)

	w.Item = NewItem(nil, w)
	w.Item.window = w
	size := p.Size()
	w.Resize(size.X, size.Y)
	w.Invalidate(Draw | Layout | State)
	return w, nil
}

// Close stops the window from updating and releases its eventfd. The
// painter and the input devices are owned by the caller.
func (w *Window) Close() error {
	for _, fd := range w.devices {
		w.loop.RemoveNotifier(fd)
	}
	w.devices = nil
	w.loop.RemoveNotifier(w.wake.Fd())
	return w.wake.Close()
}

// Painter returns the painter of the window.
func (w *Window) Painter() display.Painter {
	return w.painter
}

// Loop returns the loop driving the window.
func (w *Window) Loop() *loop.Loop {
	return w.loop
}

// Draw clears the screen with the background color.
func (w *Window) Draw(p display.Painter, x, y int, opacity float64) {
	p.SetColor(w.color)
	p.Clear()
}

// SetColor sets the background color.
func (w *Window) SetColor(c color.NRGBA) {
	if w.color != c {
		w.color = c
		w.Invalidate(Draw)
	}
}

func (w *Window) Color() color.NRGBA {
	return w.color
}

// KeyFocusItem returns the item with key focus, or nil.
func (w *Window) KeyFocusItem() *Item { return w.keyFocus }

// InputFocusItem returns the item with input focus, or nil.
func (w *Window) InputFocusItem() *Item { return w.inputFocus }

// PressedItem returns the pressed item, or nil.
func (w *Window) PressedItem() *Item { return w.pressed }

// DisplayState returns the last state set with SetDisplayState.
func (w *Window) DisplayState() display.State { return w.displayState }

// SetDisplayState records the power state of the display and powers the
// screen on or off accordingly. Drawing is deferred while the display is
// not drawable.
func (w *Window) SetDisplayState(s display.State) error {
	if w.displayState == s {
		return nil
	}
	old := w.displayState
	w.displayState = s
	debug.Printf("display state %v -> %v", old, s)
	var err error
	if old == display.Unknown || old.IsPoweredOn() != s.IsPoweredOn() {
		err = w.painter.Blank(!s.IsPoweredOn())
	}
	if w.drawable() && w.pending&Draw != 0 {
		w.wakeup()
	}
	return errors.Wrap(err, "ui: set display state")
}

func (w *Window) drawable() bool {
	return w.displayState == display.Unknown || w.displayState.IsDrawable()
}

// schedule records invalidations of the items of the window and wakes
// the loop if they add a pass.
func (w *Window) schedule(flags Invalidation) {
	if w.pending|flags == w.pending {
		return
	}
	w.pending |= flags
	w.wakeup()
}

// wakeup signals the eventfd once per update.
func (w *Window) wakeup() {
	if w.signaled || w.updating {
		return
	}
	w.signaled = true
	w.wake.Signal()
}

func (w *Window) wakeupCallback(fd int, events uint32) bool {
	w.Update()
	return true
}

// Update runs the pending passes. Update is called from the loop after
// the window was invalidated and only needs to be called directly to
// force a synchronous update.
func (w *Window) Update() {
	w.wake.Clear()
	w.signaled = false
	w.updating = true

	flags := w.take(^Invalidation(0))
	if flags&(State|Enabled|InputFocus) != 0 {
		w.updateItems(flags&InputFocus != 0, true, false)
	}
	flags |= w.take(Layout | Draw)
	if flags&Layout != 0 {
		w.layoutItems()
	}
	flags |= w.take(Draw)
	if flags&Draw != 0 {
		if w.drawable() {
			w.drawItems(w.painter, 0, 0, 1)
			if err := w.painter.Flip(); err != nil {
				logger.Printf("W: flip failed: %v", err)
			}
		} else {
			w.pending |= Draw
		}
	}

	w.updating = false
	// Invalidations raised by the passes are handled by the next update.
	if w.pending != 0 && (w.pending != Draw || w.drawable()) {
		w.wakeup()
	}
}

func (w *Window) take(mask Invalidation) Invalidation {
	f := w.pending & mask
	w.pending &^= mask
	return f
}
