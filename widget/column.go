// SPDX-License-Identifier: Unlicense OR MIT

package widget

import "minui.org/ui"

// Column stacks its visible children from the top, Spacing pixels
// apart, and sizes itself to enclose them. The horizontal position of
// the children is left to them.
type Column struct {
	*ui.Item
	Spacing int
}

func NewColumn(parent *ui.Item, spacing int) *Column {
	c := &Column{Spacing: spacing}
	c.Item = ui.NewItem(parent, c)
	return c
}

func (c *Column) Layout() {
	y, width := 0, 0
	first := true
	for _, ch := range c.Children() {
		if !ch.IsVisible() {
			continue
		}
		if !first {
			y += c.Spacing
		}
		first = false
		ch.SetY(y)
		y += ch.Height()
		if r := ch.X() + ch.Width(); r > width {
			width = r
		}
	}
	c.Resize(width, y)
}
