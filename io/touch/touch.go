// SPDX-License-Identifier: Unlicense OR MIT

/*
Package touch turns the multitouch events of a Linux touch panel into a
stream of press, move and lift events for a single finger.

The kernel reports multiple contacts in one of two ways. Protocol A
devices send an anonymous list of contacts in every report, each one
terminated by SYN_MT_REPORT. Protocol B devices assign every contact a
persistent slot and only send the changes of the slots. A Normalizer
detects the protocol of the first multitouch device it sees and tracks the
first finger put down on it until that finger is lifted.
*/
package touch

import (
	"minui.org/internal/logutil"
	"minui.org/io/evdev"
)

var (
	logger = logutil.GetLogger("[touch] ")
	debug  = logutil.GetDebugLogger("[touch] ")
)

// MaxFingers is the number of contacts tracked per report or slot array.
// Contacts beyond it are ignored.
const MaxFingers = 16

// DefaultDragThreshold is the default minimum move distance, in panel
// units.
const DefaultDragThreshold = 3

// Protocol is a multitouch reporting protocol.
type Protocol uint8

const (
	// ProtocolNone is reported before a multitouch device is detected.
	ProtocolNone Protocol = iota
	// ProtocolA is the legacy protocol of anonymous contacts.
	ProtocolA
	// ProtocolB is the slot based protocol.
	ProtocolB
)

// Type of an Event.
type Type uint8

const (
	// Press is reported when the tracked finger touches the panel.
	Press Type = iota
	// Move is reported when the tracked finger moves at least the drag
	// threshold away from the previously reported position.
	Move
	// Lift is reported when the tracked finger leaves the panel.
	Lift
)

// Event is a touch event in panel coordinates.
type Event struct {
	Type Type
	X, Y int
}

// point is a contact. An id of -1 marks an empty entry.
type point struct {
	id, x, y int
}

var emptyPoint = point{id: -1, x: -1, y: -1}

func (p point) filled() bool {
	return p.x != -1 && p.y != -1
}

// Normalizer converts multitouch events to touch Events. A Normalizer
// must only be used from one goroutine.
type Normalizer struct {
	// DragThreshold is the distance the tracked finger must move before
	// a Move is reported.
	DragThreshold int

	emit    func(Event)
	querier evdev.Querier

	protocol Protocol
	// fd is the last probed descriptor.
	fd int

	active point
	prev   point

	// scratch accumulates the contact of a Protocol A report.
	scratch point
	// count is the number of Protocol A contacts in points.
	count int
	// slot is the selected Protocol B slot.
	slot int
	// points holds the contacts of the current Protocol A report, or
	// the Protocol B slots.
	points [MaxFingers]point

	// tracking is set while any finger is down after the tracked finger
	// was adopted.
	tracking bool
	touching bool
	touchID  int
}

// New returns a Normalizer calling emit for every touch event. The
// querier probes devices for multitouch support.
func New(emit func(Event), q evdev.Querier) *Normalizer {
	n := &Normalizer{
		DragThreshold: DefaultDragThreshold,
		emit:          emit,
		querier:       q,
		fd:            -1,
		active:        emptyPoint,
		prev:          emptyPoint,
		scratch:       emptyPoint,
		touchID:       -1,
	}
	for i := range n.points {
		n.points[i] = emptyPoint
	}
	return n
}

// Fd returns the descriptor of the detected multitouch device, or -1.
func (n *Normalizer) Fd() int {
	if n.protocol == ProtocolNone {
		return -1
	}
	return n.fd
}

// Protocol returns the protocol of the detected device.
func (n *Normalizer) Protocol() Protocol {
	return n.protocol
}

// InputEvent processes an event read from fd. Events of devices other
// than the detected multitouch device are ignored.
func (n *Normalizer) InputEvent(fd int, e evdev.Event) {
	if !n.isMultitouch(fd) {
		return
	}
	switch n.protocol {
	case ProtocolA:
		n.handleA(e)
	case ProtocolB:
		n.handleB(e)
	}
}

// isMultitouch probes fd unless it was probed last or a device has
// already been detected.
func (n *Normalizer) isMultitouch(fd int) bool {
	if n.fd != fd && n.protocol == ProtocolNone {
		n.fd = fd
		n.probe(fd)
	}
	return n.fd == fd && n.protocol != ProtocolNone
}

func (n *Normalizer) probe(fd int) {
	types, err := n.querier.EventTypes(fd)
	if err != nil {
		logger.Printf("W: failed to probe event types: %v", err)
		return
	}
	if !types.IsSet(evdev.EV_ABS) {
		return
	}
	codes, err := n.querier.AbsCodes(fd)
	if err != nil {
		logger.Printf("W: failed to probe EV_ABS event codes: %v", err)
		return
	}
	if !codes.IsSet(evdev.ABS_MT_POSITION_X) {
		return
	}
	if !codes.IsSet(evdev.ABS_MT_SLOT) {
		n.protocol = ProtocolA
		debug.Printf("found multitouch protocol A input device")
		return
	}
	n.protocol = ProtocolB
	debug.Printf("found multitouch protocol B input device")

	// Seed the slots with the current device state. No SYN_REPORT
	// follows, so a finger already down is only reported by the next
	// report of the device.
	for _, code := range []uint16{
		evdev.ABS_MT_SLOT,
		evdev.ABS_MT_TRACKING_ID,
		evdev.ABS_MT_POSITION_X,
		evdev.ABS_MT_POSITION_Y,
	} {
		if info, err := n.querier.AbsInfo(fd, code); err == nil {
			n.handleB(evdev.Event{Type: evdev.EV_ABS, Code: code, Value: info.Value})
		}
	}
}

func (n *Normalizer) handleA(e evdev.Event) {
	switch e.Type {
	case evdev.EV_ABS:
		switch e.Code {
		case evdev.ABS_MT_TRACKING_ID:
			n.scratch.id = int(e.Value)
		case evdev.ABS_MT_POSITION_X:
			n.scratch.x = int(e.Value)
		case evdev.ABS_MT_POSITION_Y:
			n.scratch.y = int(e.Value)
		}
	case evdev.EV_SYN:
		switch e.Code {
		case evdev.SYN_MT_REPORT:
			if n.scratch.filled() && n.count < MaxFingers {
				// The tracking id is optional in protocol A. A
				// missing id is good enough for a single finger.
				if n.scratch.id == -1 {
					n.scratch.id = 0
				}
				n.points[n.count] = n.scratch
				n.count++
			}
			n.scratch = emptyPoint
		case evdev.SYN_REPORT:
			n.evaluateA()
		}
	}
}

func (n *Normalizer) handleB(e evdev.Event) {
	switch e.Type {
	case evdev.EV_ABS:
		if e.Code == evdev.ABS_MT_SLOT {
			n.slot = int(e.Value)
			return
		}
		if n.slot < 0 || n.slot >= MaxFingers {
			return
		}
		p := &n.points[n.slot]
		switch e.Code {
		case evdev.ABS_MT_TRACKING_ID:
			p.id = int(e.Value)
		case evdev.ABS_MT_POSITION_X:
			p.x = int(e.Value)
		case evdev.ABS_MT_POSITION_Y:
			p.y = int(e.Value)
		}
	case evdev.EV_SYN:
		if e.Code == evdev.SYN_REPORT {
			n.evaluateB()
		}
	}
}

func (n *Normalizer) evaluateA() {
	touching := false
	if n.tracking {
		// Tracking ends when all fingers are lifted.
		n.tracking = n.count > 0
		if n.touchID != -1 {
			for _, p := range n.points[:n.count] {
				if p.id == n.touchID {
					touching = true
					n.active = p
					break
				}
			}
		}
	} else {
		touching = n.adopt(n.points[:n.count])
	}
	n.count = 0
	n.update(touching)
}

func (n *Normalizer) evaluateB() {
	touching := false
	if n.tracking {
		n.tracking = false
		for _, p := range n.points {
			if p.id == -1 {
				continue
			}
			n.tracking = true
			if p.id == n.touchID {
				touching = true
				n.active = p
				break
			}
		}
	} else {
		touching = n.adopt(n.points[:])
	}
	n.update(touching)
}

// adopt starts tracking the first contact in points.
func (n *Normalizer) adopt(points []point) bool {
	for _, p := range points {
		if p.id == -1 {
			continue
		}
		n.tracking = true
		n.touchID = p.id
		n.active = p
		return true
	}
	return false
}

func (n *Normalizer) update(touching bool) {
	switch {
	case touching && !n.touching:
		n.touching = true
		n.prev = n.active
		n.emit(Event{Type: Press, X: n.active.x, Y: n.active.y})
	case !touching && n.touching:
		n.touching = false
		// Protocol A devices in particular recycle ids, forget the id
		// once its finger is lifted.
		n.touchID = -1
		n.emit(Event{Type: Lift, X: n.active.x, Y: n.active.y})
	case touching:
		dx, dy := n.prev.x-n.active.x, n.prev.y-n.active.y
		if dx*dx+dy*dy >= n.DragThreshold*n.DragThreshold {
			n.prev = n.active
			n.emit(Event{Type: Move, X: n.active.x, Y: n.active.y})
		}
	}
}

func (t Type) String() string {
	switch t {
	case Press:
		return "Press"
	case Move:
		return "Move"
	case Lift:
		return "Lift"
	default:
		panic("invalid Type")
	}
}

func (p Protocol) String() string {
	switch p {
	case ProtocolNone:
		return "None"
	case ProtocolA:
		return "A"
	case ProtocolB:
		return "B"
	default:
		panic("invalid Protocol")
	}
}
