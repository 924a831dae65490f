// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"minui.org/config"
	"minui.org/ui"
)

// Decoration is the content of a button, a *Label or an *Icon.
type Decoration interface {
	SetColor(c color.NRGBA)
	CenterIn(other *ui.Item)
	Width() int
	Height() int
}

// Button is an activatable item showing a decoration, recolored for the
// pressed, disabled and key focus states.
type Button[D Decoration] struct {
	*ui.Item
	Decoration D

	palette     config.Palette
	onActivated func()
}

// NewButton returns a button labelled text. The button is as high as an
// item of the theme and as wide as its label plus padding.
func NewButton(parent *ui.Item, theme *config.Theme, text string, face font.Face) *Button[*Label] {
	b := newButton[*Label](parent, theme)
	b.Decoration = NewLabel(b.Item, text, face)
	b.fit(theme)
	return b
}

// NewIconButton returns a button showing icon.
func NewIconButton(parent *ui.Item, theme *config.Theme, icon image.Image) *Button[*Icon] {
	b := newButton[*Icon](parent, theme)
	b.Decoration = NewIcon(b.Item, icon)
	b.fit(theme)
	return b
}

func newButton[D Decoration](parent *ui.Item, theme *config.Theme) *Button[D] {
	b := &Button[D]{palette: theme.Palette}
	b.Item = ui.NewActivatable(parent, b)
	return b
}

func (b *Button[D]) fit(theme *config.Theme) {
	w := b.Decoration.Width() + 2*theme.PaddingLarge
	h := theme.ItemSizeSmall
	if d := b.Decoration.Height() + 2*theme.PaddingSmall; d > h {
		h = d
	}
	b.Resize(w, h)
}

// OnActivated sets the function called when the button is activated.
func (b *Button[D]) OnActivated(f func()) {
	b.onActivated = f
}

func (b *Button[D]) Palette() config.Palette {
	return b.palette
}

func (b *Button[D]) SetPalette(p config.Palette) {
	b.palette = p
	b.Invalidate(ui.State)
}

func (b *Button[D]) Layout() {
	b.Decoration.CenterIn(b.Item)
}

func (b *Button[D]) UpdateState(enabled bool) {
	switch {
	case b.IsPressed():
		b.Decoration.SetColor(b.palette.Pressed)
	case !enabled:
		b.Decoration.SetColor(b.palette.Disabled)
	case b.HasKeyFocus():
		b.Decoration.SetColor(b.palette.Selected)
	default:
		b.Decoration.SetColor(b.palette.Normal)
	}
}

func (b *Button[D]) Activate() {
	if w := b.Window(); w != nil {
		w.PlayHaptic(ui.HapticPress)
	}
	if b.onActivated != nil {
		b.onActivated()
	}
}
