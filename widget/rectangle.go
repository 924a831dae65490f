// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"image/color"

	"minui.org/display"
	"minui.org/ui"
)

// Rectangle is an item filled with a color.
type Rectangle struct {
	*ui.Item
	color color.NRGBA
}

func NewRectangle(parent *ui.Item, c color.NRGBA) *Rectangle {
	r := &Rectangle{color: c}
	r.Item = ui.NewItem(parent, r)
	return r
}

func (r *Rectangle) Color() color.NRGBA {
	return r.color
}

func (r *Rectangle) SetColor(c color.NRGBA) {
	if r.color != c {
		r.color = c
		r.Invalidate(ui.Draw)
	}
}

func (r *Rectangle) Draw(p display.Painter, x, y int, opacity float64) {
	if r.color.A == 0 {
		return
	}
	p.SetColor(display.WithOpacity(r.color, opacity))
	p.FillRect(image.Rect(x, y, x+r.Width(), y+r.Height()))
}

// ProgressBar shows a value in [0, 1] as the filled share of a track.
type ProgressBar struct {
	*ui.Item
	value float64
	track color.NRGBA
	bar   color.NRGBA
}

func NewProgressBar(parent *ui.Item, track, bar color.NRGBA) *ProgressBar {
	b := &ProgressBar{track: track, bar: bar}
	b.Item = ui.NewItem(parent, b)
	return b
}

func (b *ProgressBar) Value() float64 {
	return b.value
}

// SetValue sets the value, clamped to [0, 1].
func (b *ProgressBar) SetValue(v float64) {
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	if b.value != v {
		b.value = v
		b.Invalidate(ui.Draw)
	}
}

func (b *ProgressBar) Draw(p display.Painter, x, y int, opacity float64) {
	w, h := b.Width(), b.Height()
	filled := int(float64(w)*b.value + 0.5)
	p.SetColor(display.WithOpacity(b.track, opacity))
	p.FillRect(image.Rect(x+filled, y, x+w, y+h))
	p.SetColor(display.WithOpacity(b.bar, opacity))
	p.FillRect(image.Rect(x, y, x+filled, y+h))
}
