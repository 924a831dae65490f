// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"minui.org/config"
	"minui.org/display"
	"minui.org/ui"
)

// NewFace returns the Go Regular face at size dp, scaled for the theme.
func NewFace(t *config.Theme, size float32) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "widget: parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(t.Dp(size)),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, errors.Wrap(err, "widget: create face")
}

// Label is a line of text. The label sizes itself to its text.
type Label struct {
	*ui.Item
	mask
	text string
	face font.Face
}

// NewLabel returns a white label of text. A nil face selects the fixed
// 7x13 face.
func NewLabel(parent *ui.Item, text string, face font.Face) *Label {
	if face == nil {
		face = basicfont.Face7x13
	}
	l := &Label{face: face, mask: mask{color: white}}
	l.Item = ui.NewItem(parent, l)
	l.SetText(text)
	return l
}

func (l *Label) Text() string {
	return l.text
}

// SetText replaces the text and resizes the label.
func (l *Label) SetText(text string) {
	if l.text == text && l.alpha != nil {
		return
	}
	l.text = text
	m := l.face.Metrics()
	a := image.NewAlpha(image.Rect(0, 0, font.MeasureString(l.face, text).Ceil(), m.Height.Ceil()))
	d := font.Drawer{
		Dst:  a,
		Src:  image.Opaque,
		Face: l.face,
		Dot:  fixed.Point26_6{Y: m.Ascent},
	}
	d.DrawString(text)
	l.setAlpha(a)
	l.Resize(a.Rect.Dx(), a.Rect.Dy())
	l.Invalidate(ui.Draw)
}

func (l *Label) Color() color.NRGBA {
	return l.color
}

func (l *Label) SetColor(c color.NRGBA) {
	if l.setColor(c) {
		l.Invalidate(ui.Draw)
	}
}

func (l *Label) Draw(p display.Painter, x, y int, opacity float64) {
	l.paint(p, x, y, opacity)
}
