// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"minui.org/display"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// mask is an alpha mask painted in a single color.
type mask struct {
	alpha *image.Alpha
	color color.NRGBA
	// tinted caches the mask in color.
	tinted *image.NRGBA
}

func (m *mask) setAlpha(a *image.Alpha) {
	m.alpha = a
	m.tinted = nil
}

// setColor reports whether the color changed.
func (m *mask) setColor(c color.NRGBA) bool {
	if m.color == c {
		return false
	}
	m.color = c
	m.tinted = nil
	return true
}

func (m *mask) image() *image.NRGBA {
	if m.tinted == nil && m.alpha != nil {
		b := m.alpha.Bounds()
		m.tinted = image.NewNRGBA(b)
		draw.DrawMask(m.tinted, b, image.NewUniform(m.color), image.Point{}, m.alpha, b.Min, draw.Src)
	}
	return m.tinted
}

func (m *mask) paint(p display.Painter, x, y int, opacity float64) {
	if img := m.image(); img != nil && !img.Rect.Empty() {
		p.Blit(img, image.Pt(x, y), opacity)
	}
}
