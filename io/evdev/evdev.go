// SPDX-License-Identifier: Unlicense OR MIT

/*
Package evdev reads and writes Linux input events.

The numeric values of the event types and codes are those of the kernel's
linux/input-event-codes.h header. Events are decoded from the native
struct input_event layout of the running platform.
*/
package evdev

import (
	"encoding/binary"
	"time"
	"unsafe"
)

// Event types.
const (
	EV_SYN = 0x00
	EV_KEY = 0x01
	EV_REL = 0x02
	EV_ABS = 0x03
	EV_MSC = 0x04
	EV_FF  = 0x15
	EV_CNT = 0x20
)

// Synchronization codes.
const (
	SYN_REPORT    = 0
	SYN_CONFIG    = 1
	SYN_MT_REPORT = 2
	SYN_DROPPED   = 3
)

// Absolute axis codes.
const (
	ABS_X              = 0x00
	ABS_Y              = 0x01
	ABS_MT_SLOT        = 0x2f
	ABS_MT_POSITION_X  = 0x35
	ABS_MT_POSITION_Y  = 0x36
	ABS_MT_TRACKING_ID = 0x39
	ABS_CNT            = 0x40
)

// Force feedback effect types.
const (
	FF_RUMBLE = 0x50
	FF_CNT    = 0x80
)

// KEY_CNT is the number of key codes.
const KEY_CNT = 0x300

var longSize = int(unsafe.Sizeof(uintptr(0)))

// EventSize is the size in bytes of an encoded event: a struct timeval of
// two longs followed by the 16-bit type, the 16-bit code and the 32-bit
// value.
var EventSize = 2*longSize + 8

// maxEventSize is EventSize on 64-bit platforms.
const maxEventSize = 24

// Event is a single kernel input event.
type Event struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

// Decode decodes the event at the start of b. It reports false if b is
// shorter than EventSize.
func Decode(b []byte) (Event, bool) {
	if len(b) < EventSize {
		return Event{}, false
	}
	var sec, usec int64
	if longSize == 8 {
		sec = int64(binary.LittleEndian.Uint64(b[0:]))
		usec = int64(binary.LittleEndian.Uint64(b[8:]))
	} else {
		sec = int64(int32(binary.LittleEndian.Uint32(b[0:])))
		usec = int64(int32(binary.LittleEndian.Uint32(b[4:])))
	}
	b = b[2*longSize:]
	e := Event{
		Type:  binary.LittleEndian.Uint16(b[0:]),
		Code:  binary.LittleEndian.Uint16(b[2:]),
		Value: int32(binary.LittleEndian.Uint32(b[4:])),
	}
	if sec != 0 || usec != 0 {
		e.Time = time.Unix(sec, usec*int64(time.Microsecond))
	}
	return e, true
}

// Encode encodes e into the start of b, which must hold at least
// EventSize bytes. A zero Time is encoded as zero.
func Encode(b []byte, e Event) {
	_ = b[EventSize-1]
	var sec, usec int64
	if !e.Time.IsZero() {
		sec = e.Time.Unix()
		usec = int64(e.Time.Nanosecond()) / int64(time.Microsecond)
	}
	if longSize == 8 {
		binary.LittleEndian.PutUint64(b[0:], uint64(sec))
		binary.LittleEndian.PutUint64(b[8:], uint64(usec))
	} else {
		binary.LittleEndian.PutUint32(b[0:], uint32(sec))
		binary.LittleEndian.PutUint32(b[4:], uint32(usec))
	}
	b = b[2*longSize:]
	binary.LittleEndian.PutUint16(b[0:], e.Type)
	binary.LittleEndian.PutUint16(b[2:], e.Code)
	binary.LittleEndian.PutUint32(b[4:], uint32(e.Value))
}

// Bits is a capability bitmap as returned by the EVIOCGBIT ioctl. The
// kernel stores the bitmap as an array of longs; on little endian
// platforms its bytes can be indexed directly.
type Bits []byte

// NewBits returns a bitmap large enough for count bits.
func NewBits(count int) Bits {
	return make(Bits, (count+7)/8)
}

// IsSet reports whether bit is set. Bits beyond the bitmap are unset.
func (b Bits) IsSet(bit int) bool {
	i := bit / 8
	if bit < 0 || i >= len(b) {
		return false
	}
	return b[i]&(1<<(bit%8)) != 0
}

// Set sets bit. Bits beyond the bitmap are ignored.
func (b Bits) Set(bit int) {
	if i := bit / 8; bit >= 0 && i < len(b) {
		b[i] |= 1 << (bit % 8)
	}
}

// AbsInfo describes an absolute axis, see struct input_absinfo.
type AbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// Querier queries the capabilities of an input device.
type Querier interface {
	// EventTypes returns the bitmap of event types supported by the
	// device, indexed by EV_* values.
	EventTypes(fd int) (Bits, error)
	// AbsCodes returns the bitmap of supported absolute axes, indexed
	// by ABS_* values.
	AbsCodes(fd int) (Bits, error)
	// AbsInfo returns the current state and range of an absolute axis.
	AbsInfo(fd int, code uint16) (AbsInfo, error)
}

// Kernel queries devices with ioctls.
type Kernel struct{}

func (Kernel) EventTypes(fd int) (Bits, error) {
	return EventTypes(fd)
}

func (Kernel) AbsCodes(fd int) (Bits, error) {
	return AbsCodes(fd)
}

func (Kernel) AbsInfo(fd int, code uint16) (AbsInfo, error) {
	return GetAbsInfo(fd, code)
}

// ForceFeedback drives the force feedback effects of a device.
type ForceFeedback interface {
	// FFBits returns the bitmap of supported effects, indexed by FF_*
	// values.
	FFBits(fd int) (Bits, error)
	// UploadRumble uploads a rumble effect and returns its id. The
	// length is in milliseconds.
	UploadRumble(fd int, strong, weak, length uint16) (int16, error)
	// PlayEffect plays an uploaded effect once.
	PlayEffect(fd int, id int16) error
}

func (Kernel) FFBits(fd int) (Bits, error) {
	return FFBits(fd)
}

func (Kernel) UploadRumble(fd int, strong, weak, length uint16) (int16, error) {
	return UploadRumble(fd, strong, weak, length)
}

func (Kernel) PlayEffect(fd int, id int16) error {
	return PlayEffect(fd, id)
}
