// SPDX-License-Identifier: Unlicense OR MIT

package display

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Canvas implements the drawing operations of a Painter on an in memory
// RGBA image. Backends embed a Canvas and implement Flip, Blank and
// Close.
type Canvas struct {
	img   *image.RGBA
	color color.NRGBA
}

// NewCanvas returns a canvas of the given size, cleared to transparent
// black.
func NewCanvas(size image.Point) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rectangle{Max: size}),
		color: color.NRGBA{A: 0xff},
	}
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Size() image.Point {
	return c.img.Rect.Size()
}

func (c *Canvas) SetColor(col color.NRGBA) {
	c.color = col
}

// Color returns the current color.
func (c *Canvas) Color() color.NRGBA {
	return c.color
}

func (c *Canvas) FillRect(r image.Rectangle) {
	r = r.Intersect(c.img.Rect)
	if r.Empty() || c.color.A == 0 {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(c.color), image.Point{}, draw.Over)
}

func (c *Canvas) Blit(src image.Image, dst image.Point, opacity float64) {
	if opacity <= 0 {
		return
	}
	sb := src.Bounds()
	r := sb.Sub(sb.Min).Add(dst)
	if opacity >= 1 {
		draw.Draw(c.img, r, src, sb.Min, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*0xff + 0.5)})
	draw.DrawMask(c.img, r, src, sb.Min, mask, image.Point{}, draw.Over)
}

// Clear replaces every pixel with the current color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(c.color), image.Point{}, draw.Src)
}

// WithOpacity returns col with its alpha multiplied by opacity.
func WithOpacity(col color.NRGBA, opacity float64) color.NRGBA {
	switch {
	case opacity <= 0:
		col.A = 0
	case opacity < 1:
		col.A = uint8(float64(col.A)*opacity + 0.5)
	}
	return col
}
