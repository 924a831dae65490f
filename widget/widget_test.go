// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/shiny/materialdesign/icons"

	"minui.org/config"
	"minui.org/display/headless"
	"minui.org/io/evdev"
	"minui.org/io/key"
	"minui.org/loop"
	"minui.org/ui"
)

// keyboard reports every device as a plain keyboard.
type keyboard struct{}

func (keyboard) EventTypes(fd int) (evdev.Bits, error) {
	b := evdev.NewBits(evdev.EV_CNT)
	b.Set(evdev.EV_KEY)
	return b, nil
}

func (keyboard) AbsCodes(fd int) (evdev.Bits, error) {
	return evdev.NewBits(evdev.ABS_CNT), nil
}

func (keyboard) AbsInfo(fd int, code uint16) (evdev.AbsInfo, error) {
	return evdev.AbsInfo{}, nil
}

func newWindow(t *testing.T) (*ui.Window, *headless.Painter) {
	t.Helper()
	l, err := loop.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	p, err := headless.New(200, 200)
	if err != nil {
		t.Fatal(err)
	}
	w, err := ui.NewWindow(l, p, ui.WithQuerier(keyboard{}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })
	return w, p
}

func theme() *config.Theme {
	return config.NewTheme(config.Default())
}

func TestLabelSize(t *testing.T) {
	l := NewLabel(nil, "abc", nil)
	if l.Width() != 21 || l.Height() != 13 {
		t.Errorf("label size %dx%d, want 21x13", l.Width(), l.Height())
	}
	l.SetText("")
	if l.Width() != 0 {
		t.Errorf("empty label width %d", l.Width())
	}
}

func TestLabelDraw(t *testing.T) {
	w, p := newWindow(t)
	l := NewLabel(w.Item, "#", nil)
	red := color.NRGBA{R: 0xff, A: 0xff}
	l.SetColor(red)
	l.Move(10, 10)
	w.Update()

	img := p.Screenshot()
	found := false
	for y := 10; y < 10+l.Height(); y++ {
		for x := 10; x < 10+l.Width(); x++ {
			if img.RGBAAt(x, y) == (color.RGBA{R: 0xff, A: 0xff}) {
				found = true
			}
		}
	}
	if !found {
		t.Error("no glyph pixels in the label color")
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{A: 0xff}) {
		t.Errorf("background %v outside the label", got)
	}
}

func TestButtonStates(t *testing.T) {
	th := theme()
	w, _ := newWindow(t)
	b := NewButton(w.Item, th, "OK", nil)
	activated := 0
	b.OnActivated(func() { activated++ })
	w.Update()

	label := b.Decoration
	if label.Color() != th.Palette.Normal {
		t.Errorf("idle color %v", label.Color())
	}
	if label.X() != (b.Width()-label.Width())/2 {
		t.Errorf("label at x %d, not centered in %d", label.X(), b.Width())
	}

	w.SetKeyFocusItem(b.Item)
	w.Update()
	if label.Color() != th.Palette.Selected {
		t.Errorf("focused color %v", label.Color())
	}

	w.InputEvent(3, evdev.Event{Type: evdev.EV_KEY, Code: uint16(key.CodeEnter), Value: 1})
	w.Update()
	if label.Color() != th.Palette.Pressed {
		t.Errorf("pressed color %v", label.Color())
	}
	w.InputEvent(3, evdev.Event{Type: evdev.EV_KEY, Code: uint16(key.CodeEnter), Value: 0})
	w.Update()
	if activated != 1 {
		t.Errorf("activated %d times, want 1", activated)
	}
	if label.Color() != th.Palette.Selected {
		t.Errorf("released color %v", label.Color())
	}

	b.SetEnabled(false)
	w.Update()
	if label.Color() != th.Palette.Disabled {
		t.Errorf("disabled color %v", label.Color())
	}
}

func TestButtonSize(t *testing.T) {
	th := theme()
	b := NewButton(nil, th, "abc", nil)
	if want := 21 + 2*th.PaddingLarge; b.Width() != want {
		t.Errorf("button width %d, want %d", b.Width(), want)
	}
	if b.Height() != th.ItemSizeSmall {
		t.Errorf("button height %d, want %d", b.Height(), th.ItemSizeSmall)
	}
}

func TestColumn(t *testing.T) {
	w, _ := newWindow(t)
	col := NewColumn(w.Item, 2)
	first := NewRectangle(col.Item, color.NRGBA{A: 0xff})
	first.Resize(30, 10)
	hidden := NewRectangle(col.Item, color.NRGBA{A: 0xff})
	hidden.Resize(50, 20)
	hidden.SetVisible(false)
	last := NewRectangle(col.Item, color.NRGBA{A: 0xff})
	last.Move(5, 0)
	last.Resize(40, 5)
	w.Update()

	if first.Y() != 0 || last.Y() != 12 {
		t.Errorf("children at y %d and %d, want 0 and 12", first.Y(), last.Y())
	}
	if col.Width() != 45 || col.Height() != 17 {
		t.Errorf("column size %dx%d, want 45x17", col.Width(), col.Height())
	}

	hidden.SetVisible(true)
	w.Update()
	if last.Y() != 34 || col.Height() != 39 {
		t.Errorf("after showing: last at %d, height %d", last.Y(), col.Height())
	}
}

func TestRectangleDraw(t *testing.T) {
	w, p := newWindow(t)
	w.SetColor(color.NRGBA{A: 0xff})
	r := NewRectangle(w.Item, color.NRGBA{G: 0xff, A: 0xff})
	r.Move(10, 20)
	r.Resize(5, 5)
	r.SetOpacity(0.5)
	w.Update()

	img := p.Screenshot()
	if got := img.RGBAAt(12, 22); got.G < 0x70 || got.G > 0x90 {
		t.Errorf("half transparent fill %v", got)
	}
	if got := img.RGBAAt(15, 22); got.G != 0 {
		t.Errorf("fill outside the rectangle %v", got)
	}
}

func TestProgressBar(t *testing.T) {
	w, p := newWindow(t)
	bar := NewProgressBar(w.Item, color.NRGBA{B: 0xff, A: 0xff}, color.NRGBA{R: 0xff, A: 0xff})
	bar.Resize(100, 4)
	bar.SetValue(1.5)
	if bar.Value() != 1 {
		t.Errorf("value %v, want 1", bar.Value())
	}
	bar.SetValue(0.25)
	w.Update()
	img := p.Screenshot()
	if got := img.RGBAAt(10, 1); got.R != 0xff {
		t.Errorf("filled part %v", got)
	}
	if got := img.RGBAAt(50, 1); got.B != 0xff {
		t.Errorf("track %v", got)
	}
}

func TestIconVG(t *testing.T) {
	ic, err := NewIconVG(nil, icons.NavigationClose, 24)
	if err != nil {
		t.Fatal(err)
	}
	if ic.Width() != 24 || ic.Height() != 24 {
		t.Errorf("icon size %dx%d, want 24x24", ic.Width(), ic.Height())
	}
	opaque := 0
	for _, a := range ic.alpha.Pix {
		if a != 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Error("empty icon")
	}
	if _, err := NewIconVG(nil, []byte("not an icon"), 24); err == nil {
		t.Error("invalid data accepted")
	}
}

func TestLoadIcon(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	path := filepath.Join(t.TempDir(), "icon-m-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	ic, err := LoadIcon(nil, path, 8)
	if err != nil {
		t.Fatal(err)
	}
	if ic.Width() != 16 || ic.Height() != 8 {
		t.Errorf("icon size %dx%d, want 16x8", ic.Width(), ic.Height())
	}
	if _, err := LoadIcon(nil, filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("missing icon loaded")
	}
}

func TestIconPath(t *testing.T) {
	env := config.Default()
	env.IconDir = "/icons/z1.5"
	if got := IconPath(env, "icon-m-back"); got != "/icons/z1.5/icon-m-back.png" {
		t.Errorf("IconPath = %q", got)
	}
}
