// SPDX-License-Identifier: Unlicense OR MIT

package ui

// allowedFocus reports whether the item and all of its ancestors are
// enabled and visible, and the item belongs to the window.
func (w *Window) allowedFocus(it *Item) bool {
	if it.window != w {
		return false
	}
	for i := it; i != nil; i = i.parent {
		if !i.enabled || !i.visible {
			return false
		}
	}
	return true
}

// SetKeyFocusItem gives key focus to it. An item that does not accept key
// focus passes it to its first descendant that does. Key focus is
// cleared if it is nil or the item or one of its ancestors is disabled or
// hidden.
func (w *Window) SetKeyFocusItem(it *Item) {
	w.setKeyFocus(w.focusTarget(it, keyFocusMatch))
}

// SetInputFocusItem gives input focus to it, following the rules of
// SetKeyFocusItem.
func (w *Window) SetInputFocusItem(it *Item) {
	w.setInputFocus(w.focusTarget(it, inputFocusMatch))
}

func (w *Window) focusTarget(it *Item, match MatchFunc) *Item {
	switch {
	case it == nil || !w.allowedFocus(it):
		return nil
	case match(it)&Matched != 0:
		return it
	default:
		return it.FindNextChild(match)
	}
}

func (w *Window) setKeyFocus(it *Item) {
	if w.keyFocus == it {
		return
	}
	if old := w.keyFocus; old != nil {
		old.invalidateFocus()
	}
	w.keyFocus = it
	if it != nil {
		it.invalidateFocus()
	}
}

func (w *Window) setInputFocus(it *Item) {
	if w.inputFocus == it {
		return
	}
	if old := w.inputFocus; old != nil {
		old.invalidateFocus()
	}
	w.inputFocus = it
	if it != nil {
		it.invalidateFocus()
	}
	w.Invalidate(InputFocus)
}

func (w *Window) setPressed(it *Item) {
	if w.pressed == it {
		return
	}
	if old := w.pressed; old != nil {
		old.invalidateFocus()
	}
	w.pressed = it
	if it != nil {
		it.invalidateFocus()
	}
}

// NextKeyFocusItem returns the item following the key focus item in the
// window that accepts key focus, wrapping around at the end. Without a
// key focus item the first eligible item is returned.
func (w *Window) NextKeyFocusItem() *Item {
	if w.keyFocus == nil {
		return w.focusTarget(w.Item, keyFocusMatch)
	}
	return w.keyFocus.FindNextItem(keyFocusMatch, Wrap)
}

// PreviousKeyFocusItem is the counterpart of NextKeyFocusItem.
func (w *Window) PreviousKeyFocusItem() *Item {
	if w.keyFocus == nil {
		if !w.allowedFocus(w.Item) {
			return nil
		}
		if found := w.FindPreviousChild(keyFocusMatch); found != nil {
			return found
		}
		if keyFocusMatch(w.Item)&Matched != 0 {
			return w.Item
		}
		return nil
	}
	return w.keyFocus.FindPreviousItem(keyFocusMatch, Wrap)
}

// clearFocus moves the focus held by it or its descendants to the next
// eligible item of the window and releases their press. The
// descendants of it are candidates only if descend is set.
func (w *Window) clearFocus(it *Item, descend bool) {
	if it.IsAncestorOf(w.pressed) {
		w.setPressed(nil)
	}
	if it.IsAncestorOf(w.touchTarget) {
		w.touchTarget = nil
	}
	if it.IsAncestorOf(w.keyFocus) {
		w.setKeyFocus(it.findNext(keyFocusMatch, descend, true))
	}
	if it.IsAncestorOf(w.inputFocus) {
		w.setInputFocus(it.findNext(inputFocusMatch, descend, true))
	}
}

// validateFocus clears the focus inside it, an item moved within the
// window, if the move made the focus holders ineligible.
func (w *Window) validateFocus(it *Item) {
	for _, f := range []*Item{w.keyFocus, w.inputFocus, w.pressed} {
		if it.IsAncestorOf(f) && !w.allowedFocus(f) {
			w.clearFocus(topIneligible(f), false)
		}
	}
}

// topIneligible returns the outermost disabled or hidden ancestor of it.
func topIneligible(it *Item) *Item {
	top := it
	for i := it; i != nil; i = i.parent {
		if !i.enabled || !i.visible {
			top = i
		}
	}
	return top
}
