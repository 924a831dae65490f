// SPDX-License-Identifier: Unlicense OR MIT

package ui

import "minui.org/display"

// updateItems runs the state pass over the subtree. Enabled is false if
// an ancestor is disabled, cascade is set below an item whose enabled
// state changed.
func (it *Item) updateItems(inputFocus, enabled, cascade bool) {
	if !it.visible && !cascade && it.invalidated&(State|Enabled) == 0 {
		return
	}
	enabled = enabled && it.enabled
	cascade = cascade || it.invalidated&Enabled != 0
	if cascade || it.invalidated&State != 0 ||
		(inputFocus && it.flags&NotifyOnInputFocusChanges != 0) {
		it.updateState(enabled)
	}
	for _, c := range it.children {
		c.updateItems(inputFocus, enabled, cascade)
	}
	// Children may have invalidated the state of their parent.
	if it.invalidated&State != 0 {
		it.updateState(enabled)
	}
}

func (it *Item) updateState(enabled bool) {
	it.invalidated &^= State | Enabled
	if u, ok := it.delegate.(StateUpdater); ok {
		u.UpdateState(enabled)
	}
}

// layoutItems runs the layout pass over the visible items of the
// subtree.
func (it *Item) layoutItems() {
	if !it.visible {
		return
	}
	if it.invalidated&Layout != 0 {
		it.layout()
	}
	for _, c := range it.children {
		c.layoutItems()
	}
	// Resized children invalidate the layout of their parent.
	if it.invalidated&Layout != 0 {
		it.layout()
	}
}

func (it *Item) layout() {
	it.invalidated &^= Layout
	if l, ok := it.delegate.(Layouter); ok {
		l.Layout()
	}
}

// drawItems paints the visible items of the subtree in pre-order. The
// position and opacity are those of the parent.
func (it *Item) drawItems(p display.Painter, x, y int, opacity float64) {
	if !it.visible {
		it.clearDraw()
		return
	}
	x += it.x
	y += it.y
	opacity *= it.opacity
	it.invalidated &^= Draw
	if d, ok := it.delegate.(Drawer); ok {
		d.Draw(p, x, y, opacity)
	}
	for _, c := range it.children {
		c.drawItems(p, x, y, opacity)
	}
}

func (it *Item) clearDraw() {
	it.invalidated &^= Draw
	for _, c := range it.children {
		c.clearDraw()
	}
}
