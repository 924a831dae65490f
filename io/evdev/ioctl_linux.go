// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"unsafe"

	"github.com/pkg/errors"
	syscall "golang.org/x/sys/unix"
)

const (
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | typ<<8 | nr
}

func eviocgname(size int) uintptr {
	return ioc(iocRead, 'E', 0x06, uintptr(size))
}

func eviocgbit(ev, size int) uintptr {
	return ioc(iocRead, 'E', 0x20+uintptr(ev), uintptr(size))
}

func eviocgabs(abs uint16) uintptr {
	return ioc(iocRead, 'E', 0x40+uintptr(abs), unsafe.Sizeof(AbsInfo{}))
}

var eviocsff = ioc(iocWrite, 'E', 0x80, unsafe.Sizeof(ffEffect{}))

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// bits fetches the bitmap of the given EVIOCGBIT kind. The buffer is
// rounded up to whole longs.
func bits(fd, ev, count int) (Bits, error) {
	n := (count + 8*longSize - 1) / (8 * longSize) * longSize
	b := make(Bits, n)
	if err := ioctl(fd, eviocgbit(ev, n), unsafe.Pointer(&b[0])); err != nil {
		return nil, errors.Wrapf(err, "EVIOCGBIT(%d)", ev)
	}
	return b, nil
}

// EventTypes returns the event types supported by the device.
func EventTypes(fd int) (Bits, error) {
	return bits(fd, 0, EV_CNT)
}

// AbsCodes returns the absolute axes supported by the device.
func AbsCodes(fd int) (Bits, error) {
	return bits(fd, EV_ABS, ABS_CNT)
}

// FFBits returns the force feedback effects supported by the device.
func FFBits(fd int) (Bits, error) {
	return bits(fd, EV_FF, FF_CNT)
}

// GetAbsInfo returns the state of an absolute axis.
func GetAbsInfo(fd int, code uint16) (AbsInfo, error) {
	var info AbsInfo
	if err := ioctl(fd, eviocgabs(code), unsafe.Pointer(&info)); err != nil {
		return AbsInfo{}, errors.Wrapf(err, "EVIOCGABS(%#x)", code)
	}
	return info, nil
}

// Name returns the device name reported by the driver.
func Name(fd int) (string, error) {
	var buf [256]byte
	if err := ioctl(fd, eviocgname(len(buf)), unsafe.Pointer(&buf[0])); err != nil {
		return "", errors.Wrap(err, "EVIOCGNAME")
	}
	for i, c := range buf {
		if c == 0 {
			return string(buf[:i]), nil
		}
	}
	return string(buf[:]), nil
}

// ffEffect mirrors struct ff_effect with the rumble member of the union.
// The union is aligned to a long and sized by the periodic effect, which
// ends in a pointer.
type ffEffect struct {
	Type            uint16
	ID              int16
	Direction       uint16
	TriggerButton   uint16
	TriggerInterval uint16
	ReplayLength    uint16
	ReplayDelay     uint16
	_               uint16
	StrongMagnitude uint16
	WeakMagnitude   uint16
	_               [20 + unsafe.Sizeof(uintptr(0))]byte
}

// UploadRumble uploads a rumble effect lasting length milliseconds and
// returns the effect id assigned by the kernel. The device must have been
// opened for writing.
func UploadRumble(fd int, strong, weak, length uint16) (int16, error) {
	e := ffEffect{
		Type:            FF_RUMBLE,
		ID:              -1,
		ReplayLength:    length,
		StrongMagnitude: strong,
		WeakMagnitude:   weak,
	}
	if err := ioctl(fd, eviocsff, unsafe.Pointer(&e)); err != nil {
		return -1, errors.Wrap(err, "EVIOCSFF")
	}
	return e.ID, nil
}

// PlayEffect starts playback of an uploaded effect.
func PlayEffect(fd int, id int16) error {
	buf := make([]byte, EventSize)
	Encode(buf, Event{Type: EV_FF, Code: uint16(id), Value: 1})
	if _, err := syscall.Write(fd, buf); err != nil {
		return errors.Wrap(err, "play effect")
	}
	return nil
}

// ReadEvents reads the events available on fd into events and returns the
// number read. A non-blocking descriptor without pending events reads
// zero events without error.
func ReadEvents(fd int, events []Event) (int, error) {
	var raw [64 * maxEventSize]byte
	limit := len(raw) / EventSize
	if len(events) < limit {
		limit = len(events)
	}
	n, err := syscall.Read(fd, raw[:limit*EventSize])
	switch {
	case err == syscall.EAGAIN || err == syscall.EINTR:
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "read events")
	}
	count := 0
	for off := 0; off+EventSize <= n; off += EventSize {
		events[count], _ = Decode(raw[off:])
		count++
	}
	return count, nil
}

// Write writes events to fd.
func Write(fd int, events ...Event) error {
	buf := make([]byte, len(events)*EventSize)
	for i, e := range events {
		Encode(buf[i*EventSize:], e)
	}
	if _, err := syscall.Write(fd, buf); err != nil {
		return errors.Wrap(err, "write events")
	}
	return nil
}
