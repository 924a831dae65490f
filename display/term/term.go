// SPDX-License-Identifier: Unlicense OR MIT

//go:build unix

/*
Package term implements a display previewing a window in a terminal.

Every terminal cell shows two vertically stacked pixels of a scaled down
canvas. Mouse and keyboard input of the terminal is translated into the
events of a synthetic slot based touch panel and a keypad, readable from
InputFd. Arrow keys navigate, enter selects, digits type, 'p' is the power
key and Ctrl-C terminates the process.
*/
package term

import (
	"image"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	syscall "golang.org/x/sys/unix"

	"minui.org/display"
	"minui.org/internal/logutil"
	"minui.org/io/evdev"
	"minui.org/io/key"
)

var logger = logutil.GetLogger("[term] ")

// Painter is a terminal display.
type Painter struct {
	*display.Canvas
	screen tcell.Screen
	// rfd is the read end of the input pipe, wfd the write end.
	rfd, wfd int
	blank    bool
	resized  atomic.Bool
	done     chan struct{}

	// Accessed by the event pump only.
	touching  bool
	trackID   int32
	lastPixel image.Point
}

var (
	_ display.Painter = (*Painter)(nil)
	_ evdev.Querier   = (*Painter)(nil)
)

// NewScreen opens the terminal.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	return s, errors.Wrap(err, "term")
}

// New initializes screen and returns a display with a canvas of the given
// size.
func New(screen tcell.Screen, width, height int) (*Painter, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("term: invalid size %dx%d", width, height)
	}
	var fds [2]int
	if err := syscall.Pipe(fds[:]); err != nil {
		return nil, errors.Wrap(err, "term: input pipe")
	}
	for _, fd := range fds {
		syscall.CloseOnExec(fd)
		if err := syscall.SetNonblock(fd, true); err != nil {
			syscall.Close(fds[0])
			syscall.Close(fds[1])
			return nil, errors.Wrap(err, "term: input pipe")
		}
	}
	if err := screen.Init(); err != nil {
		syscall.Close(fds[0])
		syscall.Close(fds[1])
		return nil, errors.Wrap(err, "term")
	}
	screen.EnableMouse()
	screen.HideCursor()
	p := &Painter{
		Canvas: display.NewCanvas(image.Pt(width, height)),
		screen: screen,
		rfd:    fds[0],
		wfd:    fds[1],
		done:   make(chan struct{}),
	}
	go p.pump()
	return p, nil
}

// InputFd returns the descriptor delivering the synthetic input events.
func (p *Painter) InputFd() int {
	return p.rfd
}

// Flip renders the canvas to the terminal.
func (p *Painter) Flip() error {
	if p.blank {
		return nil
	}
	if p.resized.Swap(false) {
		p.screen.Sync()
	}
	img := p.Image()
	size := img.Rect.Size()
	cols, rows := p.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	for cy := 0; cy < rows; cy++ {
		top := 2 * cy * size.Y / (2 * rows)
		bottom := (2*cy + 1) * size.Y / (2 * rows)
		for cx := 0; cx < cols; cx++ {
			x := cx * size.X / cols
			st := tcell.StyleDefault.
				Foreground(cellColor(img, x, top)).
				Background(cellColor(img, x, bottom))
			p.screen.SetContent(cx, cy, '▀', nil, st)
		}
	}
	p.screen.Show()
	return nil
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blank clears the terminal while the display is blanked.
func (p *Painter) Blank(blank bool) error {
	p.blank = blank
	if blank {
		p.screen.Clear()
		p.screen.Show()
	}
	return nil
}

// Close restores the terminal and closes the input pipe.
func (p *Painter) Close() error {
	if p.screen == nil {
		return nil
	}
	p.screen.Fini()
	<-p.done
	p.screen = nil
	syscall.Close(p.wfd)
	return syscall.Close(p.rfd)
}

func (p *Painter) EventTypes(fd int) (evdev.Bits, error) {
	if fd != p.rfd {
		return evdev.Kernel{}.EventTypes(fd)
	}
	b := evdev.NewBits(evdev.EV_CNT)
	b.Set(evdev.EV_SYN)
	b.Set(evdev.EV_KEY)
	b.Set(evdev.EV_ABS)
	return b, nil
}

func (p *Painter) AbsCodes(fd int) (evdev.Bits, error) {
	if fd != p.rfd {
		return evdev.Kernel{}.AbsCodes(fd)
	}
	b := evdev.NewBits(evdev.ABS_CNT)
	for _, c := range []int{evdev.ABS_MT_SLOT, evdev.ABS_MT_POSITION_X, evdev.ABS_MT_POSITION_Y, evdev.ABS_MT_TRACKING_ID} {
		b.Set(c)
	}
	return b, nil
}

// AbsInfo reports the canvas size as the range of the position axes, so
// that touch coordinates are canvas pixels. The slot state is only
// accurate before the first touch.
func (p *Painter) AbsInfo(fd int, code uint16) (evdev.AbsInfo, error) {
	if fd != p.rfd {
		return evdev.Kernel{}.AbsInfo(fd, code)
	}
	size := p.Size()
	switch code {
	case evdev.ABS_MT_POSITION_X:
		return evdev.AbsInfo{Maximum: int32(size.X)}, nil
	case evdev.ABS_MT_POSITION_Y:
		return evdev.AbsInfo{Maximum: int32(size.Y)}, nil
	case evdev.ABS_MT_TRACKING_ID:
		return evdev.AbsInfo{Value: -1, Minimum: -1, Maximum: 0xffff}, nil
	case evdev.ABS_MT_SLOT:
		return evdev.AbsInfo{}, nil
	}
	return evdev.AbsInfo{}, errors.Wrapf(syscall.EINVAL, "term: axis %#x", code)
}

// pump translates terminal events until the screen is finalized.
func (p *Painter) pump() {
	defer close(p.done)
	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			p.resized.Store(true)
		case *tcell.EventMouse:
			p.mouse(ev)
		case *tcell.EventKey:
			p.key(ev)
		}
	}
}

func (p *Painter) send(evs ...evdev.Event) {
	evs = append(evs, evdev.Event{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT})
	if err := evdev.Write(p.wfd, evs...); err != nil {
		logger.Printf("W: dropped input: %v", err)
	}
}

func abs(code uint16, v int) evdev.Event {
	return evdev.Event{Type: evdev.EV_ABS, Code: code, Value: int32(v)}
}

// pixel maps a terminal cell to the canvas pixel at its center.
func (p *Painter) pixel(cx, cy int) image.Point {
	size := p.Size()
	cols, rows := p.screen.Size()
	if cols <= 0 || rows <= 0 {
		return image.Point{}
	}
	return image.Point{
		X: (2*cx + 1) * size.X / (2 * cols),
		Y: (2*cy + 1) * size.Y / (2 * rows),
	}
}

func (p *Painter) mouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	pt := p.pixel(ev.Position())
	switch {
	case down && !p.touching:
		p.touching = true
		p.trackID++
		p.lastPixel = pt
		p.send(abs(evdev.ABS_MT_SLOT, 0), abs(evdev.ABS_MT_TRACKING_ID, int(p.trackID)),
			abs(evdev.ABS_MT_POSITION_X, pt.X), abs(evdev.ABS_MT_POSITION_Y, pt.Y))
	case down && pt != p.lastPixel:
		p.lastPixel = pt
		p.send(abs(evdev.ABS_MT_POSITION_X, pt.X), abs(evdev.ABS_MT_POSITION_Y, pt.Y))
	case !down && p.touching:
		p.touching = false
		p.send(abs(evdev.ABS_MT_TRACKING_ID, -1))
	}
}

func (p *Painter) key(ev *tcell.EventKey) {
	var code key.Code
	switch ev.Key() {
	case tcell.KeyCtrlC:
		syscall.Kill(os.Getpid(), syscall.SIGTERM)
		return
	case tcell.KeyUp:
		code = key.CodeUp
	case tcell.KeyDown:
		code = key.CodeDown
	case tcell.KeyEnter:
		code = key.CodeEnter
	case tcell.KeyEscape:
		code = key.CodeEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		code = key.CodeBackspace
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == '0':
			code = key.Code0
		case r >= '1' && r <= '9':
			code = key.Code1 + key.Code(r-'1')
		case r == 'p':
			code = key.CodePower
		case r == '+':
			code = key.CodeVolumeUp
		case r == '-':
			code = key.CodeVolumeDown
		default:
			return
		}
	default:
		return
	}
	press := evdev.Event{Type: evdev.EV_KEY, Code: uint16(code), Value: 1}
	p.send(press)
	press.Value = 0
	p.send(press)
}
