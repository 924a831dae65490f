// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTimerOrder(t *testing.T) {
	l, _, _ := newTestLoop(t)
	var fired []int
	record := func(id int) func() {
		return func() {
			fired = append(fired, id)
			if len(fired) == 6 {
				l.Exit(0)
			}
		}
	}
	l.CreateTimer(30*time.Millisecond, record(30))
	l.CreateTimer(10*time.Millisecond, record(10))
	l.CreateTimer(20*time.Millisecond, record(20))
	l.Execute()
	// Expirations 10, 20, 20, 30, 30, 40. Equal expirations fire in the
	// order they were queued.
	want := []int{10, 20, 10, 30, 10, 20}
	if diff := cmp.Diff(want, fired); diff != "" {
		t.Errorf("firing order (-want +got):\n%s", diff)
	}
}

func TestTimerRescheduleIsDriftFree(t *testing.T) {
	l, _, clock := newTestLoop(t)
	var expirations []time.Duration
	var times []time.Duration
	l.CreateTimer(100*time.Millisecond, func() {
		times = append(times, clock.Now())
		expirations = append(expirations, l.timers[0].expiration)
		// A slow callback must not delay the following expirations.
		clock.Advance(7 * time.Millisecond)
		if len(times) == 3 {
			l.Exit(0)
		}
	})
	l.Execute()
	want := []time.Duration{200 * time.Millisecond, 300 * time.Millisecond, 400 * time.Millisecond}
	if diff := cmp.Diff(want, expirations); diff != "" {
		t.Errorf("expirations (-want +got):\n%s", diff)
	}
	wantTimes := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	if diff := cmp.Diff(wantTimes, times); diff != "" {
		t.Errorf("firing times (-want +got):\n%s", diff)
	}
}

func TestTimerCatchUp(t *testing.T) {
	l, _, clock := newTestLoop(t)
	calls := 0
	l.CreateTimer(100*time.Millisecond, func() { calls++ })
	clock.Advance(250 * time.Millisecond)
	pump(l)
	if calls != 2 {
		t.Errorf("timer fired %d times, want 2", calls)
	}
	if got, want := l.timers[0].expiration, 300*time.Millisecond; got != want {
		t.Errorf("next expiration at %v, want %v", got, want)
	}
}

func TestCancelTimerIdempotent(t *testing.T) {
	l, _, clock := newTestLoop(t)
	calls := 0
	id := l.CreateTimer(10*time.Millisecond, func() { calls++ })
	l.CancelTimer(id)
	l.CancelTimer(id)
	l.CancelTimer(12345)
	clock.Advance(time.Second)
	pump(l)
	if calls != 0 {
		t.Errorf("cancelled timer fired %d times", calls)
	}
	if len(l.timers) != 0 {
		t.Errorf("%d timers queued after cancel", len(l.timers))
	}
}

func TestTimerCancelsItself(t *testing.T) {
	l, _, clock := newTestLoop(t)
	calls := 0
	var id int
	id = l.CreateTimer(10*time.Millisecond, func() {
		calls++
		l.CancelTimer(id)
	})
	clock.Advance(100 * time.Millisecond)
	pump(l)
	if calls != 1 {
		t.Errorf("timer fired %d times, want 1", calls)
	}
}

func TestTimerIDsArePositiveAndFresh(t *testing.T) {
	l, _, _ := newTestLoop(t)
	seen := make(map[int]bool)
	for i := 0; i < 10; i++ {
		id := l.CreateTimer(time.Second, func() {})
		if id <= 0 || seen[id] {
			t.Fatalf("timer id %d reused or not positive", id)
		}
		seen[id] = true
	}
}

func TestContextTimers(t *testing.T) {
	l, _, clock := newTestLoop(t)
	s := new(fakeSource)
	l.SetSource(s)
	a, b := new(int), new(int)
	l.CreateContextTimer(10*time.Millisecond, a)
	l.CreateContextTimer(15*time.Millisecond, b)
	id := l.CreateTimer(5*time.Millisecond, func() {})
	clock.Advance(16 * time.Millisecond)
	pump(l)
	if diff := cmp.Diff([]any{a, b}, s.expired); diff != "" {
		t.Errorf("expired contexts (-want +got):\n%s", diff)
	}
	l.CancelContextTimer(a)
	l.CancelTimer(id)
	if len(l.timers) != 1 || l.timers[0].ctx != b {
		t.Errorf("unexpected timers after cancel: %+v", l.timers)
	}
}
