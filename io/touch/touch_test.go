// SPDX-License-Identifier: Unlicense OR MIT

package touch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"minui.org/io/evdev"
)

type device struct {
	types evdev.Bits
	codes evdev.Bits
	abs   map[uint16]int32
	err   error
}

type fakeQuerier struct {
	devices map[int]*device
	probes  []int
}

func (q *fakeQuerier) EventTypes(fd int) (evdev.Bits, error) {
	q.probes = append(q.probes, fd)
	d, ok := q.devices[fd]
	if !ok {
		return nil, errors.New("inappropriate ioctl for device")
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.types, nil
}

func (q *fakeQuerier) AbsCodes(fd int) (evdev.Bits, error) {
	return q.devices[fd].codes, nil
}

func (q *fakeQuerier) AbsInfo(fd int, code uint16) (evdev.AbsInfo, error) {
	v, ok := q.devices[fd].abs[code]
	if !ok {
		return evdev.AbsInfo{}, errors.New("invalid argument")
	}
	return evdev.AbsInfo{Value: v, Maximum: 1080}, nil
}

func touchDevice(slots bool) *device {
	d := &device{
		types: evdev.NewBits(evdev.EV_CNT),
		codes: evdev.NewBits(evdev.ABS_CNT),
		abs:   map[uint16]int32{},
	}
	d.types.Set(evdev.EV_SYN)
	d.types.Set(evdev.EV_ABS)
	d.codes.Set(evdev.ABS_MT_POSITION_X)
	d.codes.Set(evdev.ABS_MT_POSITION_Y)
	d.codes.Set(evdev.ABS_MT_TRACKING_ID)
	if slots {
		d.codes.Set(evdev.ABS_MT_SLOT)
		d.abs[evdev.ABS_MT_SLOT] = 0
		d.abs[evdev.ABS_MT_TRACKING_ID] = -1
	}
	return d
}

func keyboard() *device {
	d := &device{types: evdev.NewBits(evdev.EV_CNT)}
	d.types.Set(evdev.EV_KEY)
	return d
}

type recorder struct {
	events []Event
}

func (r *recorder) emit(e Event) {
	r.events = append(r.events, e)
}

func newNormalizer(devices map[int]*device) (*Normalizer, *recorder, *fakeQuerier) {
	r := new(recorder)
	q := &fakeQuerier{devices: devices}
	return New(r.emit, q), r, q
}

func abs(code uint16, v int32) evdev.Event {
	return evdev.Event{Type: evdev.EV_ABS, Code: code, Value: v}
}

func syn(code uint16) evdev.Event {
	return evdev.Event{Type: evdev.EV_SYN, Code: code}
}

// contact is a finger position; id -1 leaves the tracking id unreported.
type contact struct {
	id, x, y int32
}

// reportA encodes one Protocol A report.
func reportA(contacts ...contact) []evdev.Event {
	var evs []evdev.Event
	for _, c := range contacts {
		if c.id != -1 {
			evs = append(evs, abs(evdev.ABS_MT_TRACKING_ID, c.id))
		}
		evs = append(evs,
			abs(evdev.ABS_MT_POSITION_X, c.x),
			abs(evdev.ABS_MT_POSITION_Y, c.y),
			syn(evdev.SYN_MT_REPORT),
		)
	}
	if len(contacts) == 0 {
		evs = append(evs, syn(evdev.SYN_MT_REPORT))
	}
	return append(evs, syn(evdev.SYN_REPORT))
}

func feed(n *Normalizer, fd int, evs []evdev.Event) {
	for _, e := range evs {
		n.InputEvent(fd, e)
	}
}

func TestProtocolEquivalence(t *testing.T) {
	path := []contact{{5, 100, 200}, {5, 101, 200}, {5, 110, 205}, {5, 110, 230}}
	want := []Event{
		{Press, 100, 200},
		{Move, 110, 205},
		{Move, 110, 230},
		{Lift, 110, 230},
	}

	na, ra, _ := newNormalizer(map[int]*device{3: touchDevice(false)})
	for _, c := range path {
		feed(na, 3, reportA(c))
	}
	feed(na, 3, reportA())
	if na.Protocol() != ProtocolA {
		t.Fatalf("protocol %v, want A", na.Protocol())
	}

	nb, rb, _ := newNormalizer(map[int]*device{3: touchDevice(true)})
	feed(nb, 3, []evdev.Event{
		abs(evdev.ABS_MT_SLOT, 0),
		abs(evdev.ABS_MT_TRACKING_ID, 7),
	})
	prev := contact{-1, -1, -1}
	for _, c := range path {
		if c.x != prev.x {
			nb.InputEvent(3, abs(evdev.ABS_MT_POSITION_X, c.x))
		}
		if c.y != prev.y {
			nb.InputEvent(3, abs(evdev.ABS_MT_POSITION_Y, c.y))
		}
		nb.InputEvent(3, syn(evdev.SYN_REPORT))
		prev = c
	}
	feed(nb, 3, []evdev.Event{abs(evdev.ABS_MT_TRACKING_ID, -1), syn(evdev.SYN_REPORT)})
	if nb.Protocol() != ProtocolB {
		t.Fatalf("protocol %v, want B", nb.Protocol())
	}

	if diff := cmp.Diff(want, ra.events); diff != "" {
		t.Errorf("protocol A events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, rb.events); diff != "" {
		t.Errorf("protocol B events (-want +got):\n%s", diff)
	}
}

func TestDragThreshold(t *testing.T) {
	n, r, _ := newNormalizer(map[int]*device{3: touchDevice(false)})
	feed(n, 3, reportA(contact{1, 10, 10}))
	// 2²+2² is below 3².
	feed(n, 3, reportA(contact{1, 12, 12}))
	// 3²+0² reaches it.
	feed(n, 3, reportA(contact{1, 13, 10}))
	// Distances are measured from the last reported position.
	feed(n, 3, reportA(contact{1, 14, 11}))
	want := []Event{{Press, 10, 10}, {Move, 13, 10}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}

	n.DragThreshold = 0
	feed(n, 3, reportA(contact{1, 14, 11}))
	if got := r.events[len(r.events)-1]; got != (Event{Move, 14, 11}) {
		t.Errorf("zero threshold: last event %+v, want a move", got)
	}
}

func TestProtocolBSeeding(t *testing.T) {
	d := touchDevice(true)
	d.abs[evdev.ABS_MT_SLOT] = 0
	d.abs[evdev.ABS_MT_TRACKING_ID] = 3
	d.abs[evdev.ABS_MT_POSITION_X] = 50
	d.abs[evdev.ABS_MT_POSITION_Y] = 60
	n, r, _ := newNormalizer(map[int]*device{4: d})

	n.InputEvent(4, abs(evdev.ABS_MT_POSITION_X, 55))
	if len(r.events) != 0 {
		t.Fatalf("detection reported %v", r.events)
	}
	n.InputEvent(4, syn(evdev.SYN_REPORT))
	feed(n, 4, []evdev.Event{abs(evdev.ABS_MT_TRACKING_ID, -1), syn(evdev.SYN_REPORT)})
	want := []Event{{Press, 55, 60}, {Lift, 55, 60}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestProtocolBSecondFinger(t *testing.T) {
	n, r, _ := newNormalizer(map[int]*device{3: touchDevice(true)})
	feed(n, 3, []evdev.Event{
		abs(evdev.ABS_MT_SLOT, 0),
		abs(evdev.ABS_MT_TRACKING_ID, 1),
		abs(evdev.ABS_MT_POSITION_X, 10),
		abs(evdev.ABS_MT_POSITION_Y, 10),
		syn(evdev.SYN_REPORT),
		// A second finger is ignored.
		abs(evdev.ABS_MT_SLOT, 1),
		abs(evdev.ABS_MT_TRACKING_ID, 2),
		abs(evdev.ABS_MT_POSITION_X, 500),
		abs(evdev.ABS_MT_POSITION_Y, 500),
		syn(evdev.SYN_REPORT),
		// Lifting the first finger lifts.
		abs(evdev.ABS_MT_SLOT, 0),
		abs(evdev.ABS_MT_TRACKING_ID, -1),
		syn(evdev.SYN_REPORT),
		// The second finger is still down and not adopted.
		abs(evdev.ABS_MT_SLOT, 1),
		abs(evdev.ABS_MT_POSITION_X, 520),
		syn(evdev.SYN_REPORT),
		abs(evdev.ABS_MT_TRACKING_ID, -1),
		syn(evdev.SYN_REPORT),
		// Slots out of range are ignored.
		abs(evdev.ABS_MT_SLOT, MaxFingers),
		abs(evdev.ABS_MT_TRACKING_ID, 9),
		syn(evdev.SYN_REPORT),
		abs(evdev.ABS_MT_SLOT, 0),
		abs(evdev.ABS_MT_TRACKING_ID, 4),
		abs(evdev.ABS_MT_POSITION_X, 30),
		abs(evdev.ABS_MT_POSITION_Y, 40),
		syn(evdev.SYN_REPORT),
	})
	want := []Event{{Press, 10, 10}, {Lift, 10, 10}, {Press, 30, 40}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestProtocolARecycledIDs(t *testing.T) {
	n, r, _ := newNormalizer(map[int]*device{3: touchDevice(false)})
	// Without tracking ids every contact gets id 0.
	feed(n, 3, reportA(contact{-1, 10, 10}))
	feed(n, 3, reportA())
	feed(n, 3, reportA(contact{-1, 40, 40}))
	want := []Event{{Press, 10, 10}, {Lift, 10, 10}, {Press, 40, 40}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestProtocolATrackingEndsWithLastFinger(t *testing.T) {
	n, r, _ := newNormalizer(map[int]*device{3: touchDevice(false)})
	feed(n, 3, reportA(contact{1, 10, 10}))
	feed(n, 3, reportA(contact{1, 10, 10}, contact{2, 90, 90}))
	feed(n, 3, reportA(contact{2, 90, 90}))
	feed(n, 3, reportA(contact{2, 95, 90}))
	feed(n, 3, reportA())
	feed(n, 3, reportA(contact{2, 95, 90}))
	want := []Event{{Press, 10, 10}, {Lift, 10, 10}, {Press, 95, 90}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestProtocolAExcessContacts(t *testing.T) {
	n, r, _ := newNormalizer(map[int]*device{3: touchDevice(false)})
	var contacts []contact
	for i := int32(0); i < MaxFingers+4; i++ {
		contacts = append(contacts, contact{i + 1, 10 * i, 10 * i})
	}
	evs := reportA(contacts...)
	feed(n, 3, evs[:len(evs)-1])
	if n.count != MaxFingers {
		t.Errorf("%d contacts stored, want %d", n.count, MaxFingers)
	}
	feed(n, 3, evs[len(evs)-1:])
	// Incomplete contacts are dropped.
	feed(n, 3, []evdev.Event{
		abs(evdev.ABS_MT_TRACKING_ID, 1),
		abs(evdev.ABS_MT_POSITION_X, 20),
		syn(evdev.SYN_MT_REPORT),
		syn(evdev.SYN_REPORT),
	})
	want := []Event{{Press, 0, 0}, {Lift, 0, 0}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestDetection(t *testing.T) {
	failing := &device{err: errors.New("no such device")}
	n, r, q := newNormalizer(map[int]*device{
		2: keyboard(),
		3: failing,
		4: touchDevice(false),
		5: touchDevice(true),
	})
	if n.Fd() != -1 || n.Protocol() != ProtocolNone {
		t.Fatalf("initial Fd, Protocol = %d, %v", n.Fd(), n.Protocol())
	}
	feed(n, 2, reportA(contact{1, 1, 1}))
	feed(n, 3, reportA(contact{1, 1, 1}))
	if n.Fd() != -1 {
		t.Errorf("Fd = %d after probing non multitouch devices", n.Fd())
	}
	feed(n, 4, reportA(contact{1, 7, 8}))
	feed(n, 5, []evdev.Event{abs(evdev.ABS_MT_SLOT, 0), syn(evdev.SYN_REPORT)})
	if n.Fd() != 4 || n.Protocol() != ProtocolA {
		t.Errorf("Fd, Protocol = %d, %v, want 4, A", n.Fd(), n.Protocol())
	}
	// Each descriptor is probed once while it is the last one seen, and
	// nothing is probed after detection.
	if diff := cmp.Diff([]int{2, 3, 4}, q.probes); diff != "" {
		t.Errorf("probes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Event{{Press, 7, 8}}, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}
