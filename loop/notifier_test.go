// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNotifierFdReuse(t *testing.T) {
	l, p, _ := newTestLoop(t)
	s := new(fakeSource)
	l.SetSource(s)
	before := len(p.added)

	const fd = 42
	if !l.AddNotifier(fd, "A") {
		t.Fatal("AddNotifier failed")
	}
	l.RemoveNotifier(fd)
	if !l.AddNotifier(fd, "B") {
		t.Fatal("AddNotifier failed")
	}

	if got := len(p.added) - before; got != 1 {
		t.Errorf("fd registered %d times with the poller, want 1", got)
	}
	count := 0
	for _, n := range l.notifiers {
		if n.fd == fd {
			count++
		}
	}
	if count != 1 {
		t.Errorf("%d notifier entries for fd, want 1", count)
	}

	p.push(Readiness{Fd: fd, Events: 1})
	pump(l)
	if diff := cmp.Diff([]any{"B"}, s.notified); diff != "" {
		t.Errorf("notified contexts (-want +got):\n%s", diff)
	}
}

func TestRemovedNotifierDropsEvents(t *testing.T) {
	l, p, _ := newTestLoop(t)
	s := new(fakeSource)
	l.SetSource(s)
	calls := 0
	l.AddNotifierCallback(7, func(fd int, events uint32) bool {
		calls++
		return true
	})
	l.AddNotifier(8, "ctx")
	l.RemoveNotifier(7)
	l.RemoveNotifier(8)
	l.RemoveNotifier(9)
	p.push(Readiness{Fd: 7, Events: 1}, Readiness{Fd: 8, Events: 1})
	pump(l)
	if calls != 0 || len(s.notified) != 0 {
		t.Errorf("removed notifiers dispatched: %d callbacks, %d notifications", calls, len(s.notified))
	}
}

func TestNotifierCallbackReceivesEvents(t *testing.T) {
	l, p, _ := newTestLoop(t)
	var got []Readiness
	l.AddNotifierCallback(5, func(fd int, events uint32) bool {
		got = append(got, Readiness{Fd: fd, Events: events})
		return true
	})
	p.push(Readiness{Fd: 5, Events: 0x1}, Readiness{Fd: 6, Events: 0x1})
	p.push(Readiness{Fd: 5, Events: 0x10})
	pump(l)
	want := []Readiness{{Fd: 5, Events: 0x1}, {Fd: 5, Events: 0x10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestAddNotifierFailure(t *testing.T) {
	l, p, _ := newTestLoop(t)
	p.addErr = errors.New("no space left on device")
	if l.AddNotifier(3, "ctx") {
		t.Error("AddNotifier succeeded despite registration failure")
	}
	for _, n := range l.notifiers {
		if n.fd == 3 {
			t.Error("failed registration left a notifier entry")
		}
	}
}
