// SPDX-License-Identifier: Unlicense OR MIT

package ui

// Guide is an anchor line of an item.
type Guide uint8

const (
	Left Guide = iota
	HorizontalCenter
	Right
	Top
	VerticalCenter
	Bottom
)

func (g Guide) horizontal() bool {
	return g <= Right
}

// position returns the coordinate of the guide in the coordinate space
// of the parent of relativeTo. Items are positioned relative to their
// parent, so the origin of a parent is 0 for its children.
func (it *Item) position(g Guide, relativeTo *Item) int {
	var origin, size int
	if g.horizontal() {
		size = it.width
		if relativeTo.parent != it {
			origin = it.x
		}
	} else {
		size = it.height
		if relativeTo.parent != it {
			origin = it.y
		}
	}
	switch g {
	case Left, Top:
		return origin
	case HorizontalCenter, VerticalCenter:
		return origin + size/2
	default:
		return origin + size
	}
}

// setPosition moves the item so that its guide lies at p.
func (it *Item) setPosition(g Guide, p int) {
	switch g {
	case Left:
		it.SetX(p)
	case HorizontalCenter:
		it.SetX(p - it.width/2)
	case Right:
		it.SetX(p - it.width)
	case Top:
		it.SetY(p)
	case VerticalCenter:
		it.SetY(p - it.height/2)
	case Bottom:
		it.SetY(p - it.height)
	}
}

func checkGuides(a, b Guide) {
	if a.horizontal() != b.horizontal() {
		panic("ui: guides of different axes")
	}
}

// Align moves the item to place its guide at the guide of other, offset
// by margin. Other is the parent or a sibling of the item.
func (it *Item) Align(g Guide, other *Item, otherGuide Guide, margin int) {
	checkGuides(g, otherGuide)
	it.setPosition(g, other.position(otherGuide, it)+margin)
}

// CenterIn centers the item in other, its parent or a sibling.
func (it *Item) CenterIn(other *Item) {
	it.Align(HorizontalCenter, other, HorizontalCenter, 0)
	it.Align(VerticalCenter, other, VerticalCenter, 0)
}

// CenterBetween centers the item between the guides of first and second
// along the axis of the guides.
func (it *Item) CenterBetween(first *Item, firstGuide Guide, second *Item, secondGuide Guide) {
	checkGuides(firstGuide, secondGuide)
	a := first.position(firstGuide, it)
	b := second.position(secondGuide, it)
	if firstGuide.horizontal() {
		it.SetX(a + (b-a-it.width)/2)
	} else {
		it.SetY(a + (b-a-it.height)/2)
	}
}

// HorizontalFill sizes and moves the item to span the width of other,
// less margin on both sides.
func (it *Item) HorizontalFill(other *Item, margin int) {
	it.SetWidth(other.width - 2*margin)
	it.Align(Left, other, Left, margin)
}

// VerticalFill sizes and moves the item to span the height of other,
// less margin on both sides.
func (it *Item) VerticalFill(other *Item, margin int) {
	it.SetHeight(other.height - 2*margin)
	it.Align(Top, other, Top, margin)
}

// Fill makes the item cover other, less margin on all sides.
func (it *Item) Fill(other *Item, margin int) {
	it.HorizontalFill(other, margin)
	it.VerticalFill(other, margin)
}
