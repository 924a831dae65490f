// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements an in memory display for rendering a
// window to an image.
package headless

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"

	"minui.org/display"
)

// Op is a recorded drawing operation.
type Op struct {
	Kind    OpKind
	Color   color.NRGBA
	Rect    image.Rectangle
	Opacity float64
}

type OpKind uint8

const (
	OpClear OpKind = iota
	OpFill
	OpBlit
)

// Painter is a headless display. Painted frames become visible to
// Screenshot when flipped.
type Painter struct {
	*display.Canvas
	front  *image.RGBA
	ops    []Op
	frames int
	blank  bool
	closed bool
}

var _ display.Painter = (*Painter)(nil)

// New returns a headless display of the given size.
func New(width, height int) (*Painter, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("headless: invalid size %dx%d", width, height)
	}
	sz := image.Pt(width, height)
	return &Painter{
		Canvas: display.NewCanvas(sz),
		front:  image.NewRGBA(image.Rectangle{Max: sz}),
	}, nil
}

func (p *Painter) FillRect(r image.Rectangle) {
	p.ops = append(p.ops, Op{Kind: OpFill, Color: p.Color(), Rect: r, Opacity: 1})
	p.Canvas.FillRect(r)
}

func (p *Painter) Blit(src image.Image, dst image.Point, opacity float64) {
	b := src.Bounds()
	p.ops = append(p.ops, Op{Kind: OpBlit, Rect: b.Sub(b.Min).Add(dst), Opacity: opacity})
	p.Canvas.Blit(src, dst, opacity)
}

func (p *Painter) Clear() {
	p.ops = append(p.ops, Op{Kind: OpClear, Color: p.Color(), Rect: image.Rectangle{Max: p.Size()}, Opacity: 1})
	p.Canvas.Clear()
}

// Flip makes the painted frame visible to Screenshot.
func (p *Painter) Flip() error {
	if p.closed {
		return errors.New("headless: display closed")
	}
	copy(p.front.Pix, p.Image().Pix)
	p.frames++
	return nil
}

func (p *Painter) Blank(blank bool) error {
	p.blank = blank
	return nil
}

func (p *Painter) Close() error {
	p.closed = true
	return nil
}

// Ops returns the operations painted since the last call to ResetOps.
func (p *Painter) Ops() []Op {
	return p.ops
}

// ResetOps forgets the recorded operations.
func (p *Painter) ResetOps() {
	p.ops = p.ops[:0]
}

// Frames returns the number of flipped frames.
func (p *Painter) Frames() int {
	return p.frames
}

// Blanked reports whether the display is blanked.
func (p *Painter) Blanked() bool {
	return p.blank
}

// Screenshot returns a copy of the last flipped frame.
func (p *Painter) Screenshot() *image.RGBA {
	img := image.NewRGBA(p.front.Rect)
	copy(img.Pix, p.front.Pix)
	return img
}

// SavePNG writes the last flipped frame to a PNG file.
func (p *Painter) SavePNG(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.Screenshot()); err != nil {
		f.Close()
		return errors.Wrap(err, "headless")
	}
	return f.Close()
}
