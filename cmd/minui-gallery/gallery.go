// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"
	"image/color"
	"math"
	"time"

	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/image/font"

	"minui.org/config"
	"minui.org/ui"
	"minui.org/widget"
)

const (
	animationInterval = 200 * time.Millisecond
	progressStep      = 0.1
)

// gallery is the single page of the program: a header with a close
// button, an animated progress bar and a progress bar controlled by two
// buttons.
type gallery struct {
	*ui.Item
	theme *config.Theme

	title     *widget.Label
	close     *widget.Button[*widget.Icon]
	animated  *widget.ProgressBar
	progress  *widget.ProgressBar
	decrement *widget.Button[*widget.Label]
	increment *widget.Button[*widget.Label]
	menu      *widget.Column
}

func newGallery(w *ui.Window, theme *config.Theme, env *config.Environment) (*gallery, error) {
	g := &gallery{theme: theme}
	g.Item = ui.NewItem(w.Item, g)

	face, err := widget.NewFace(theme, 24)
	if err != nil {
		logger.Printf("W: %v, using the fixed font", err)
		face = nil
	}
	g.title = widget.NewLabel(g.Item, "Gallery", face)

	var closeIcon image.Image
	closeIcon, err = widget.LoadImage(widget.IconPath(env, "icon-m-clear"), theme.IconSizeMedium)
	if err != nil {
		debug.Printf("%v, using the built in icon", err)
		if closeIcon, err = widget.RasterizeIconVG(icons.NavigationClose, theme.IconSizeMedium); err != nil {
			return nil, err
		}
	}
	g.close = widget.NewIconButton(g.Item, theme, closeIcon)
	g.close.OnActivated(func() {
		w.Loop().Exit(0)
	})

	track := color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	g.animated = widget.NewProgressBar(g.Item, track, theme.Palette.Pressed)
	g.progress = widget.NewProgressBar(g.Item, track, theme.Palette.Normal)
	g.decrement = g.newButton("-", face, func() { g.step(-1) })
	g.increment = g.newButton("+", face, func() { g.step(1) })

	g.menu = widget.NewColumn(g.Item, theme.PaddingMedium)
	for _, name := range []string{"Controls", "Input", "About"} {
		name := name
		b := widget.NewButton(g.menu.Item, theme, name, face)
		b.OnActivated(func() {
			g.title.SetText(name)
		})
	}

	w.Loop().CreateTimer(animationInterval, g.animate)
	w.SetKeyFocusItem(g.Item)
	g.Invalidate(ui.State)
	return g, nil
}

func (g *gallery) newButton(text string, face font.Face, f func()) *widget.Button[*widget.Label] {
	b := widget.NewButton(g.Item, g.theme, text, face)
	b.OnActivated(f)
	return b
}

// step moves the controlled progress bar by n steps.
func (g *gallery) step(n float64) {
	steps := math.Round(g.progress.Value()/progressStep) + n
	g.progress.SetValue(steps * progressStep)
	g.Invalidate(ui.State)
}

func (g *gallery) animate() {
	v := g.animated.Value() + 0.05
	if v > 1 {
		v = 0
	}
	g.animated.SetValue(v)
}

func (g *gallery) UpdateState(enabled bool) {
	g.decrement.SetEnabled(g.progress.Value() > 0)
	g.increment.SetEnabled(g.progress.Value() < 1)
}

func (g *gallery) Layout() {
	t := g.theme
	g.Fill(g.Window().Item, 0)
	barWidth := g.Width() - 2*t.HorizontalPageMargin

	g.close.Align(ui.Top, g.Item, ui.Top, t.PaddingMedium)
	g.close.Align(ui.Right, g.Item, ui.Right, -t.PaddingMedium)
	g.title.CenterBetween(g.close.Item, ui.Top, g.close.Item, ui.Bottom)
	g.title.Align(ui.Left, g.Item, ui.Left, t.HorizontalPageMargin)

	g.animated.Resize(barWidth, t.PaddingSmall)
	g.animated.Align(ui.Top, g.close.Item, ui.Bottom, t.PaddingLarge)
	g.animated.CenterBetween(g.Item, ui.Left, g.Item, ui.Right)
	g.progress.Resize(barWidth, t.PaddingSmall)
	g.progress.Align(ui.Top, g.animated.Item, ui.Bottom, t.PaddingLarge)
	g.progress.CenterBetween(g.Item, ui.Left, g.Item, ui.Right)

	g.decrement.Align(ui.Top, g.progress.Item, ui.Bottom, t.PaddingMedium)
	g.decrement.Align(ui.Left, g.progress.Item, ui.Left, 0)
	g.increment.Align(ui.Top, g.progress.Item, ui.Bottom, t.PaddingMedium)
	g.increment.Align(ui.Right, g.progress.Item, ui.Right, 0)

	g.menu.Align(ui.Top, g.increment.Item, ui.Bottom, t.PaddingLarge)
	g.menu.Align(ui.Left, g.Item, ui.Left, t.HorizontalPageMargin)
	for _, b := range g.menu.Children() {
		b.Resize(barWidth, b.Height())
	}
}
