// SPDX-License-Identifier: Unlicense OR MIT

// Package fbdev implements a display on a Linux framebuffer device.
package fbdev

import (
	"image"
	"unsafe"

	"github.com/pkg/errors"
	syscall "golang.org/x/sys/unix"

	"minui.org/display"
	"minui.org/internal/logutil"
)

var logger = logutil.GetLogger("[fbdev] ")

// DefaultPath is the primary framebuffer device.
const DefaultPath = "/dev/fb0"

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
	fbioBlank          = 0x4611

	fbBlankUnblank   = 0
	fbBlankPowerdown = 4

	fbVisualTrueColor = 2
)

// varScreenInfo mirrors struct fb_var_screeninfo.
type varScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp bitfield
	Nonstd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	Timings                  [10]uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

// fixScreenInfo mirrors struct fb_fix_screeninfo.
type fixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Painter paints into a RGBA canvas and copies it to the framebuffer
// memory on Flip.
type Painter struct {
	*display.Canvas
	fd     int
	mem    []byte
	stride int
	format pixelFormat
}

var _ display.Painter = (*Painter)(nil)

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Open maps the framebuffer device at path.
func Open(path string) (*Painter, error) {
	fd, err := syscall.Open(path, syscall.O_RDWR|syscall.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	p, err := newPainter(fd)
	if err != nil {
		syscall.Close(fd)
		return nil, err
	}
	return p, nil
}

func newPainter(fd int) (*Painter, error) {
	var vinfo varScreenInfo
	if err := ioctl(fd, fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		return nil, errors.Wrap(err, "FBIOGET_VSCREENINFO")
	}
	var finfo fixScreenInfo
	if err := ioctl(fd, fbioGetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		return nil, errors.Wrap(err, "FBIOGET_FSCREENINFO")
	}
	if finfo.Visual != fbVisualTrueColor {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "visual %d", finfo.Visual)
	}
	f := pixelFormat{
		bpp:   int(vinfo.BitsPerPixel),
		red:   vinfo.Red,
		green: vinfo.Green,
		blue:  vinfo.Blue,
		alpha: vinfo.Transp,
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	size := image.Pt(int(vinfo.XRes), int(vinfo.YRes))
	if need := int(finfo.LineLength) * size.Y; need > int(finfo.SmemLen) {
		return nil, errors.Errorf("fbdev: %d bytes of video memory, need %d", finfo.SmemLen, need)
	}
	mem, err := syscall.Mmap(fd, 0, int(finfo.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmap framebuffer")
	}
	logger.Printf("I: %s %dx%d, %d bpp", string(finfo.ID[:clen(finfo.ID[:])]), size.X, size.Y, f.bpp)
	return &Painter{
		Canvas: display.NewCanvas(size),
		fd:     fd,
		mem:    mem,
		stride: int(finfo.LineLength),
		format: f,
	}, nil
}

func clen(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// Flip copies the canvas to the visible framebuffer.
func (p *Painter) Flip() error {
	if p.mem == nil {
		return errors.New("fbdev: display closed")
	}
	p.format.convert(p.mem, p.stride, p.Image())
	return nil
}

// Blank powers the panel down or up.
func (p *Painter) Blank(blank bool) error {
	mode := fbBlankUnblank
	if blank {
		mode = fbBlankPowerdown
	}
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(p.fd), fbioBlank, uintptr(mode))
	if errno != 0 {
		return errors.Wrap(errno, "FBIOBLANK")
	}
	return nil
}

func (p *Painter) Close() error {
	if p.mem == nil {
		return nil
	}
	err := syscall.Munmap(p.mem)
	p.mem = nil
	if cerr := syscall.Close(p.fd); err == nil {
		err = cerr
	}
	return err
}
