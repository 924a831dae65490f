// SPDX-License-Identifier: Unlicense OR MIT

package fbdev

import (
	"encoding/binary"
	"image"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for framebuffers whose pixel format
// cannot be converted to.
var ErrUnsupportedFormat = errors.New("fbdev: unsupported pixel format")

// bitfield mirrors struct fb_bitfield.
type bitfield struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

// pixelFormat is a true color framebuffer layout.
type pixelFormat struct {
	bpp                     int
	red, green, blue, alpha bitfield
}

func (f pixelFormat) validate() error {
	switch f.bpp {
	case 16, 24, 32:
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%d bits per pixel", f.bpp)
	}
	for _, b := range []bitfield{f.red, f.green, f.blue, f.alpha} {
		if b.Length > 8 || int(b.Offset+b.Length) > f.bpp || b.MSBRight != 0 {
			return errors.Wrapf(ErrUnsupportedFormat, "channel %+v", b)
		}
	}
	return nil
}

func (b bitfield) pack(v uint8) uint32 {
	if b.Length == 0 {
		return 0
	}
	return uint32(v>>(8-b.Length)) << b.Offset
}

// convert copies src into the framebuffer memory dst with the given line
// length. Pixels are stored little endian.
func (f pixelFormat) convert(dst []byte, stride int, src *image.RGBA) {
	bytes := f.bpp / 8
	sz := src.Rect.Size()
	var word [4]byte
	for y := 0; y < sz.Y; y++ {
		row := dst[y*stride:]
		s := src.Pix[y*src.Stride:]
		for x := 0; x < sz.X; x++ {
			p := s[x*4 : x*4+4]
			v := f.red.pack(p[0]) | f.green.pack(p[1]) | f.blue.pack(p[2]) | f.alpha.pack(p[3])
			binary.LittleEndian.PutUint32(word[:], v)
			copy(row[x*bytes:x*bytes+bytes], word[:bytes])
		}
	}
}
