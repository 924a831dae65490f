// SPDX-License-Identifier: Unlicense OR MIT

package ui

import "golang.org/x/exp/slices"

// Match is the result of a MatchFunc.
type Match uint8

const (
	// Matched accepts the item.
	Matched Match = 1 << iota
	// SkipChildren excludes the descendants of the item from the search.
	SkipChildren
)

// MatchFunc classifies items during a search.
type MatchFunc func(it *Item) Match

// FindOption modifies a sibling search.
type FindOption uint8

const (
	// Wrap continues a search that reaches the end of the window at the
	// other end.
	Wrap FindOption = 1 << iota
)

// FindItemAt returns the topmost item at the point, relative to the
// item, for which match returns Matched. Children are searched before
// their parent, the last child first. The descendants of an item are
// only searched if the point is inside the item.
func (it *Item) FindItemAt(x, y int, match MatchFunc) *Item {
	r := match(it)
	if r&SkipChildren == 0 && it.Contains(x, y) {
		for i := len(it.children) - 1; i >= 0; i-- {
			c := it.children[i]
			if found := c.FindItemAt(x-c.x, y-c.y, match); found != nil {
				return found
			}
		}
	}
	if r&Matched != 0 && it.Contains(x, y) {
		return it
	}
	return nil
}

// FindNextChild returns the first descendant of the item in pre-order
// that matches.
func (it *Item) FindNextChild(match MatchFunc) *Item {
	for _, c := range it.children {
		r := match(c)
		if r&Matched != 0 {
			return c
		}
		if r&SkipChildren == 0 {
			if found := c.FindNextChild(match); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindPreviousChild returns the last descendant of the item in
// pre-order that matches.
func (it *Item) FindPreviousChild(match MatchFunc) *Item {
	for i := len(it.children) - 1; i >= 0; i-- {
		c := it.children[i]
		r := match(c)
		if r&SkipChildren == 0 {
			if found := c.FindPreviousChild(match); found != nil {
				return found
			}
		}
		if r&Matched != 0 {
			return c
		}
	}
	return nil
}

// FindNextItem returns the first matching item following the item in
// the pre-order of its window, starting with its descendants.
func (it *Item) FindNextItem(match MatchFunc, opts FindOption) *Item {
	return it.findNext(match, true, opts&Wrap != 0)
}

// FindPreviousItem returns the last matching item preceding the item in
// the pre-order of its window.
func (it *Item) FindPreviousItem(match MatchFunc, opts FindOption) *Item {
	if found := it.findPrevious(match); found != nil {
		return found
	}
	if opts&Wrap == 0 {
		return nil
	}
	root := it.root()
	exclude := func(i *Item) Match {
		if i == it {
			return 0
		}
		return match(i)
	}
	r := exclude(root)
	if r&SkipChildren == 0 {
		if found := root.FindPreviousChild(exclude); found != nil {
			return found
		}
	}
	if r&Matched != 0 {
		return root
	}
	return nil
}

// findNext searches the items following the item in pre-order. The
// descendants of the item are only searched if descend is set; the item
// itself never matches.
func (it *Item) findNext(match MatchFunc, descend, wrap bool) *Item {
	if descend && match(it)&SkipChildren == 0 {
		if found := it.FindNextChild(match); found != nil {
			return found
		}
	}
	item := it
	for parent := item.parent; parent != nil; item, parent = parent, parent.parent {
		i := slices.Index(parent.children, item)
		for _, s := range parent.children[i+1:] {
			r := match(s)
			if r&Matched != 0 {
				return s
			}
			if r&SkipChildren == 0 {
				if found := s.FindNextChild(match); found != nil {
					return found
				}
			}
		}
	}
	if !wrap {
		return nil
	}
	root := item
	exclude := func(i *Item) Match {
		switch {
		case i != it:
			return match(i)
		case descend:
			return 0
		default:
			return SkipChildren
		}
	}
	r := exclude(root)
	if r&Matched != 0 {
		return root
	}
	if r&SkipChildren != 0 {
		return nil
	}
	return root.FindNextChild(exclude)
}

func (it *Item) findPrevious(match MatchFunc) *Item {
	item := it
	for parent := item.parent; parent != nil; item, parent = parent, parent.parent {
		i := slices.Index(parent.children, item)
		for j := i - 1; j >= 0; j-- {
			s := parent.children[j]
			r := match(s)
			if r&SkipChildren == 0 {
				if found := s.FindPreviousChild(match); found != nil {
					return found
				}
			}
			if r&Matched != 0 {
				return s
			}
		}
		if match(parent)&Matched != 0 {
			return parent
		}
	}
	return nil
}

func (it *Item) root() *Item {
	for it.parent != nil {
		it = it.parent
	}
	return it
}

func pressMatch(it *Item) Match {
	if !it.enabled || !it.visible {
		return SkipChildren
	}
	if it.canActivate || it.inputFocusOnPress || it.keyFocusOnPress {
		return Matched
	}
	return 0
}

func keyFocusMatch(it *Item) Match {
	if !it.enabled || !it.visible {
		return SkipChildren
	}
	if it.acceptsKeyFocus {
		return Matched
	}
	return 0
}

func inputFocusMatch(it *Item) Match {
	if !it.enabled || !it.visible {
		return SkipChildren
	}
	if it.acceptsInputFocus {
		return Matched
	}
	return 0
}
