// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"time"

	"golang.org/x/exp/slices"
)

// timer is identified either by a positive id, for callback timers, or by
// an opaque context, for timers created on behalf of a Source.
type timer struct {
	id         int
	interval   time.Duration
	expiration time.Duration
	callback   func()
	ctx        any
}

// CreateTimer registers a repeating timer calling f every interval and
// returns its id. The first expiration is one interval from now.
func (l *Loop) CreateTimer(interval time.Duration, f func()) int {
	l.nextTimerID++
	id := l.nextTimerID
	l.insertTimer(timer{
		id:         id,
		interval:   interval,
		expiration: l.clock.Now() + interval,
		callback:   f,
	})
	return id
}

// CancelTimer removes the timer with the given id. Unknown ids are ignored.
func (l *Loop) CancelTimer(id int) {
	l.timers = slices.DeleteFunc(l.timers, func(t timer) bool {
		return t.id == id && t.ctx == nil
	})
}

// CreateContextTimer registers a repeating timer which reports its
// expirations to the attached Source's TimerExpired method with ctx. The
// ctx must be comparable, usually a pointer.
func (l *Loop) CreateContextTimer(interval time.Duration, ctx any) {
	l.insertTimer(timer{
		interval:   interval,
		expiration: l.clock.Now() + interval,
		ctx:        ctx,
	})
}

// CancelContextTimer removes every timer created with ctx.
func (l *Loop) CancelContextTimer(ctx any) {
	l.timers = slices.DeleteFunc(l.timers, func(t timer) bool {
		return t.ctx != nil && t.ctx == ctx
	})
}

// insertTimer keeps the queue ordered by expiration. Timers with equal
// expirations fire in insertion order.
func (l *Loop) insertTimer(t timer) {
	i := slices.IndexFunc(l.timers, func(e timer) bool {
		return t.expiration < e.expiration
	})
	if i < 0 {
		i = len(l.timers)
	}
	l.timers = slices.Insert(l.timers, i, t)
}

// fireTimer pops the earliest timer, requeues it at its next expiration and
// only then invokes it, so a callback cancelling or recreating its own
// timer observes a consistent queue.
func (l *Loop) fireTimer() {
	t := l.timers[0]
	l.timers = slices.Delete(l.timers, 0, 1)

	t.expiration += t.interval
	l.insertTimer(t)

	switch {
	case t.ctx != nil:
		if ts, ok := l.source.(TimerSource); ok {
			ts.TimerExpired(t.ctx)
		}
	case t.callback != nil:
		t.callback()
	}
}
