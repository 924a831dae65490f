// SPDX-License-Identifier: Unlicense OR MIT

package ui

import "strings"

// Invalidation is a set of pending update passes.
type Invalidation uint8

const (
	// Draw repaints the window.
	Draw Invalidation = 1 << iota
	// Layout runs the layout pass over the flagged items.
	Layout
	// State runs the state pass over the flagged items.
	State
	// Enabled marks a change of the enabled state. The state pass updates
	// the flagged item and all of its descendants.
	Enabled
	// InputFocus marks a change of the input focus item. It is only set
	// on windows.
	InputFocus
)

func (f Invalidation) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, n := range []struct {
		f    Invalidation
		name string
	}{
		{Draw, "draw"},
		{Layout, "layout"},
		{State, "state"},
		{Enabled, "enabled"},
		{InputFocus, "inputFocus"},
	} {
		if f&n.f != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Invalidate schedules the passes in flags for the item. Any number of
// invalidations before the next update result in one pass each.
func (it *Item) Invalidate(flags Invalidation) {
	it.invalidated |= flags
	if it.window != nil {
		it.window.schedule(flags)
	}
}

// InvalidateParent invalidates the parent of the item, if any.
func (it *Item) InvalidateParent(flags Invalidation) {
	if it.parent != nil {
		it.parent.Invalidate(flags)
	}
}

func (it *Item) invalidateSize() {
	it.Invalidate(Draw | Layout)
	it.InvalidateParent(Layout)
	for _, c := range it.children {
		c.invalidateLayout()
	}
}

func (it *Item) invalidateLayout() {
	it.Invalidate(Layout)
	for _, c := range it.children {
		c.invalidateLayout()
	}
}

// invalidateFocus is called when the item gains or loses focus or press.
func (it *Item) invalidateFocus() {
	it.Invalidate(Draw | State)
	it.InvalidateParent(State)
}
