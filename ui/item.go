// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"golang.org/x/exp/slices"

	"minui.org/display"
	"minui.org/io/key"
)

// Drawer is implemented by item delegates that paint. The position is the
// absolute position of the item and opacity its accumulated opacity.
type Drawer interface {
	Draw(p display.Painter, x, y int, opacity float64)
}

// Layouter is implemented by item delegates that position their children
// after the item or one of its children was resized.
type Layouter interface {
	Layout()
}

// StateUpdater is implemented by item delegates that react to changes of
// their focus, pressed or enabled state. Enabled is false if the item or
// any of its ancestors is disabled.
type StateUpdater interface {
	UpdateState(enabled bool)
}

// Activator is implemented by item delegates that can be activated by a
// tap or by a select key while the item has key focus.
type Activator interface {
	Activate()
}

// KeyHandler is implemented by item delegates that receive key presses
// while they have input focus. KeyPress reports whether the key was
// handled.
type KeyHandler interface {
	KeyPress(e key.Event) bool
}

// ItemFlags are behavioral options of an item.
type ItemFlags uint8

const (
	// NotifyOnInputFocusChanges makes the state pass update the item
	// whenever the input focus item of the window changes.
	NotifyOnInputFocusChanges ItemFlags = 1 << iota
	// PowerButtonDoesntSelect, set on a window, stops the power key from
	// activating the key focus item.
	PowerButtonDoesntSelect
)

// Item is a node of the scene graph. Its position is relative to its
// parent.
//
// An Item owns its children. Removing an item from its parent detaches
// the whole subtree from the window, and every focus held inside it is
// moved elsewhere.
type Item struct {
	x, y          int
	width, height int
	opacity       float64

	enabled           bool
	visible           bool
	canActivate       bool
	keyFocusOnPress   bool
	acceptsKeyFocus   bool
	inputFocusOnPress bool
	acceptsInputFocus bool

	flags       ItemFlags
	invalidated Invalidation

	children []*Item
	parent   *Item
	window   *Window
	delegate any
}

// NewItem returns an item appended to parent, which may be nil. The
// passes call the methods of delegate for each capability interface it
// implements; delegate may be nil.
func NewItem(parent *Item, delegate any) *Item {
	it := &Item{
		opacity:  1,
		enabled:  true,
		visible:  true,
		delegate: delegate,
	}
	if parent != nil {
		parent.AppendChild(it)
	}
	return it
}

// NewActivatable returns an item that takes key focus when pressed and
// can be activated.
func NewActivatable(parent *Item, delegate any) *Item {
	it := NewItem(parent, delegate)
	it.keyFocusOnPress = true
	it.canActivate = true
	it.acceptsKeyFocus = true
	return it
}

// Delegate returns the delegate of the item.
func (it *Item) Delegate() any { return it.delegate }

func (it *Item) Parent() *Item    { return it.parent }
func (it *Item) Window() *Window  { return it.window }
func (it *Item) Children() []*Item { return it.children }

func (it *Item) X() int               { return it.x }
func (it *Item) Y() int               { return it.y }
func (it *Item) Width() int           { return it.width }
func (it *Item) Height() int          { return it.height }
func (it *Item) Opacity() float64     { return it.opacity }
func (it *Item) IsEnabled() bool      { return it.enabled }
func (it *Item) IsVisible() bool      { return it.visible }
func (it *Item) CanActivate() bool    { return it.canActivate }
func (it *Item) KeyFocusOnPress() bool { return it.keyFocusOnPress }
func (it *Item) AcceptsKeyFocus() bool { return it.acceptsKeyFocus }
func (it *Item) InputFocusOnPress() bool {
	return it.inputFocusOnPress
}
func (it *Item) AcceptsInputFocus() bool {
	return it.acceptsInputFocus
}
func (it *Item) ItemFlags() ItemFlags { return it.flags }

// Invalidated returns the pending invalidation flags of the item.
func (it *Item) Invalidated() Invalidation { return it.invalidated }

// IsPressed reports whether the item is pressed, by touch or by a select
// key while it has key focus.
func (it *Item) IsPressed() bool {
	return it.window != nil && it.window.pressed == it
}

// HasKeyFocus reports whether the item has key focus.
func (it *Item) HasKeyFocus() bool {
	return it.window != nil && it.window.keyFocus == it
}

// HasInputFocus reports whether the item has input focus.
func (it *Item) HasInputFocus() bool {
	return it.window != nil && it.window.inputFocus == it
}

func (it *Item) SetX(x int) {
	it.x = x
	it.Invalidate(Draw)
}

func (it *Item) SetY(y int) {
	it.y = y
	it.Invalidate(Draw)
}

// Move moves the item. Moving does not affect the layout of other items.
func (it *Item) Move(x, y int) {
	it.x, it.y = x, y
	it.Invalidate(Draw)
}

func (it *Item) SetWidth(width int) {
	if it.width != width {
		it.width = width
		it.invalidateSize()
	}
}

func (it *Item) SetHeight(height int) {
	if it.height != height {
		it.height = height
		it.invalidateSize()
	}
}

// Resize changes the size of the item, causing a layout of the item, its
// parent and its children.
func (it *Item) Resize(width, height int) {
	if it.width != width || it.height != height {
		it.width, it.height = width, height
		it.invalidateSize()
	}
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (it *Item) SetOpacity(opacity float64) {
	switch {
	case opacity < 0:
		opacity = 0
	case opacity > 1:
		opacity = 1
	}
	if it.opacity != opacity {
		it.opacity = opacity
		it.Invalidate(Draw)
	}
}

// SetEnabled enables or disables the item. A disabled item and its
// descendants receive no input and lose focus.
func (it *Item) SetEnabled(enabled bool) {
	if it.enabled == enabled {
		return
	}
	it.enabled = enabled
	if it.window != nil && !enabled {
		it.window.clearFocus(it, false)
	}
	it.Invalidate(Enabled | Draw)
}

// SetVisible shows or hides the item. A hidden item and its descendants
// are not drawn, receive no input and lose focus.
func (it *Item) SetVisible(visible bool) {
	if it.visible == visible {
		return
	}
	it.visible = visible
	if it.window != nil && !visible {
		it.window.clearFocus(it, false)
	}
	it.Invalidate(Draw)
	it.InvalidateParent(Layout)
}

func (it *Item) SetCanActivate(can bool) {
	if it.canActivate == can {
		return
	}
	it.canActivate = can
	if w := it.window; w != nil && w.pressed == it {
		w.setPressed(nil)
	}
	it.Invalidate(State)
}

// SetKeyFocusOnPress sets whether pressing the item gives it key focus.
// An item not accepting key focus passes it to its first descendant
// that does.
func (it *Item) SetKeyFocusOnPress(focus bool) {
	it.keyFocusOnPress = focus
}

func (it *Item) SetAcceptsKeyFocus(accept bool) {
	if it.acceptsKeyFocus == accept {
		return
	}
	it.acceptsKeyFocus = accept
	if w := it.window; w != nil && !accept && w.keyFocus == it {
		w.setKeyFocus(it.findNext(keyFocusMatch, true, true))
	}
}

func (it *Item) SetInputFocusOnPress(focus bool) {
	it.inputFocusOnPress = focus
}

func (it *Item) SetAcceptsInputFocus(accept bool) {
	if it.acceptsInputFocus == accept {
		return
	}
	it.acceptsInputFocus = accept
	if w := it.window; w != nil && !accept && w.inputFocus == it {
		w.setInputFocus(it.findNext(inputFocusMatch, true, true))
	}
}

func (it *Item) SetItemFlags(flags ItemFlags) {
	it.flags = flags
}

// Contains reports whether the point, relative to the item, is inside
// it.
func (it *Item) Contains(x, y int) bool {
	return x >= 0 && x < it.width && y >= 0 && y < it.height
}

// ContainsAbs reports whether the point in window coordinates is inside
// the item.
func (it *Item) ContainsAbs(x, y int) bool {
	for i := it; i != nil; i = i.parent {
		x -= i.x
		y -= i.y
	}
	return it.Contains(x, y)
}

// IsAncestorOf reports whether it is other or one of its ancestors.
func (it *Item) IsAncestorOf(other *Item) bool {
	for ; other != nil; other = other.parent {
		if other == it {
			return true
		}
	}
	return false
}

// AppendChild makes c the last child of the item, removing it from its
// previous parent.
func (it *Item) AppendChild(c *Item) {
	it.adopt(c, func() { it.children = append(it.children, c) })
}

// PrependChild makes c the first child of the item.
func (it *Item) PrependChild(c *Item) {
	it.adopt(c, func() { it.children = slices.Insert(it.children, 0, c) })
}

// InsertChildBefore inserts c before sibling, which must be a child of
// the item. Otherwise c is appended.
func (it *Item) InsertChildBefore(sibling, c *Item) {
	it.adopt(c, func() {
		i := slices.Index(it.children, sibling)
		if i < 0 {
			i = len(it.children)
		}
		it.children = slices.Insert(it.children, i, c)
	})
}

// InsertChildAfter inserts c after sibling, which must be a child of the
// item. Otherwise c is appended.
func (it *Item) InsertChildAfter(sibling, c *Item) {
	it.adopt(c, func() {
		i := slices.Index(it.children, sibling)
		if i < 0 {
			i = len(it.children) - 1
		}
		it.children = slices.Insert(it.children, i+1, c)
	})
}

// RemoveChild detaches c from the item. Items that are not children are
// ignored.
func (it *Item) RemoveChild(c *Item) {
	if c.parent != it {
		return
	}
	if c.window != nil {
		c.window.clearFocus(c, false)
	}
	it.unlink(c)
	c.parent = nil
	c.setWindow(nil)
	c.Invalidate(Draw | State | Layout)
	it.Invalidate(Draw | Layout)
}

// Destroy removes the item from its parent.
func (it *Item) Destroy() {
	if it.parent != nil {
		it.parent.RemoveChild(it)
	}
}

func (it *Item) unlink(c *Item) {
	if i := slices.Index(it.children, c); i >= 0 {
		it.children = slices.Delete(it.children, i, i+1)
	}
}

// adopt moves c under the item and calls insert to place it in the
// child list.
func (it *Item) adopt(c *Item, insert func()) {
	if c == it || c.IsAncestorOf(it) {
		panic("ui: an item cannot be a child of itself")
	}
	w := it.window
	if c.window != nil && c.window != w {
		c.window.clearFocus(c, false)
	}
	old := c.parent
	if old != nil {
		old.unlink(c)
	}
	insert()
	if old == it {
		c.Invalidate(Draw)
		it.Invalidate(Layout)
		return
	}
	c.parent = it
	flags := c.setWindow(w)
	if w != nil {
		w.schedule(flags)
		w.validateFocus(c)
	}
	c.Invalidate(Draw | State | Layout)
	if old != nil {
		old.Invalidate(Draw | Layout)
	}
}

// setWindow updates the window of the subtree and returns the union of
// its invalidation flags.
func (it *Item) setWindow(w *Window) Invalidation {
	it.window = w
	flags := it.invalidated
	for _, c := range it.children {
		flags |= c.setWindow(w)
	}
	return flags
}
