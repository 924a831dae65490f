// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/image/draw"

	"minui.org/config"
	"minui.org/display"
	"minui.org/ui"
)

// Icon is an image painted in a single color. Only the alpha channel of
// the source image is kept.
type Icon struct {
	*ui.Item
	mask
}

// NewIcon returns a white icon of the alpha channel of img.
func NewIcon(parent *ui.Item, img image.Image) *Icon {
	i := &Icon{mask: mask{color: white}}
	i.Item = ui.NewItem(parent, i)
	i.SetImage(img)
	return i
}

// NewIconVG returns an icon rasterized from IconVG data, such as the
// icons of golang.org/x/exp/shiny/materialdesign/icons, size pixels wide.
func NewIconVG(parent *ui.Item, data []byte, size int) (*Icon, error) {
	img, err := RasterizeIconVG(data, size)
	if err != nil {
		return nil, err
	}
	return NewIcon(parent, img), nil
}

// IconPath returns the path of the PNG icon name in the icon directory
// of env.
func IconPath(env *config.Environment, name string) string {
	return filepath.Join(env.IconDir, name+".png")
}

// LoadIcon returns an icon decoded from a PNG file. If size is positive
// the image is scaled to size pixels high.
func LoadIcon(parent *ui.Item, path string, size int) (*Icon, error) {
	img, err := LoadImage(path, size)
	if err != nil {
		return nil, err
	}
	return NewIcon(parent, img), nil
}

// LoadImage decodes a PNG file and scales it to size pixels high if size
// is positive.
func LoadImage(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "widget: load icon")
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "widget: decode %s", path)
	}
	if b := img.Bounds(); size > 0 && b.Dy() != size && b.Dy() > 0 {
		scaled := image.NewNRGBA(image.Rect(0, 0, b.Dx()*size/b.Dy(), size))
		draw.CatmullRom.Scale(scaled, scaled.Rect, img, b, draw.Src, nil)
		img = scaled
	}
	return img, nil
}

// SetImage replaces the image and resizes the icon.
func (i *Icon) SetImage(img image.Image) {
	b := img.Bounds()
	a := image.NewAlpha(image.Rectangle{Max: b.Size()})
	draw.Draw(a, a.Rect, img, b.Min, draw.Src)
	i.setAlpha(a)
	i.Resize(a.Rect.Dx(), a.Rect.Dy())
	i.Invalidate(ui.Draw)
}

func (i *Icon) Color() color.NRGBA {
	return i.color
}

func (i *Icon) SetColor(c color.NRGBA) {
	if i.setColor(c) {
		i.Invalidate(ui.Draw)
	}
}

func (i *Icon) Draw(p display.Painter, x, y int, opacity float64) {
	i.paint(p, x, y, opacity)
}

// RasterizeIconVG renders IconVG data to a mask size pixels wide.
func RasterizeIconVG(data []byte, size int) (*image.Alpha, error) {
	m, err := iconvg.DecodeMetadata(data)
	if err != nil {
		return nil, errors.Wrap(err, "widget: decode icon")
	}
	dx, dy := m.ViewBox.AspectRatio()
	img := image.NewAlpha(image.Rectangle{Max: image.Point{X: size, Y: int(float32(size) * dy / dx)}})
	var ico iconvg.Rasterizer
	ico.SetDstImage(img, img.Bounds(), draw.Src)
	m.Palette[0] = color.RGBA{A: 0xff}
	if err := iconvg.Decode(&ico, data, &iconvg.DecodeOptions{Palette: &m.Palette}); err != nil {
		return nil, errors.Wrap(err, "widget: rasterize icon")
	}
	return img, nil
}
