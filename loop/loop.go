// SPDX-License-Identifier: Unlicense OR MIT

/*
Package loop implements the single threaded event loop that drives a minui
program.

A Loop multiplexes repeating timers, file descriptor readiness, deferred
single shot callbacks and an optional pluggable dispatch Source. Every
callback runs on the goroutine that called Execute, and the loop only ever
suspends inside its readiness wait, so callbacks never race with each
other. Callbacks must not block.

A single iteration of the loop

  - fires the earliest expired timer, after moving its expiration to the
    next interval,
  - runs one queued single shot callback,
  - waits for file descriptor readiness, for no longer than the time until
    the next timer expires, and dispatches the ready descriptors,
  - lets the dispatch Source drain buffered work.

A SIGTERM received by the process is relayed through an eventfd and handled
as an ordinary readiness event; see OnTerminated.
*/
package loop

import (
	"time"

	"minui.org/internal/logutil"
)

var logger = logutil.GetLogger("[loop] ")

// Source is a pluggable dispatch source, typically an IPC client, that
// shares the loop with the user interface.
type Source interface {
	// Notify is called when a descriptor registered with AddNotifier
	// becomes ready. The ctx is the value given to AddNotifier. Notify
	// reports whether the event was handled.
	Notify(fd int, events uint32, ctx any) bool
	// Dispatch processes buffered work and reports whether more work is
	// pending. Pending work makes the next iteration skip waiting.
	Dispatch() bool
}

// TimerSource is implemented by a Source that schedules timers with
// CreateContextTimer.
type TimerSource interface {
	TimerExpired(ctx any)
}

// Loop is the event loop. The zero value is not usable, create loops with
// New.
type Loop struct {
	clock  Clock
	poller Poller

	timers      []timer
	notifiers   []notifier
	singleShots []func()
	nextTimerID int

	source     Source
	terminated func()
	term       *termination

	ready     []Readiness
	forceWake bool
	executing bool
	result    int
}

// Option configures a Loop.
type Option func(l *Loop)

// WithClock replaces the monotonic clock used for timer expirations.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithPoller replaces the epoll based readiness poller.
func WithPoller(p Poller) Option {
	return func(l *Loop) {
		l.poller = p
	}
}

// New creates a loop. An error is returned if the readiness poller cannot be
// created. Failure to install the termination handler is logged and
// otherwise ignored.
func New(opts ...Option) (*Loop, error) {
	l := new(Loop)
	for _, o := range opts {
		o(l)
	}
	if l.clock == nil {
		l.clock = NewMonotonicClock()
	}
	if l.poller == nil {
		p, err := newEpoll()
		if err != nil {
			return nil, err
		}
		l.poller = p
	}
	term, err := newTermination()
	if err != nil {
		logger.Printf("W: termination handler disabled: %v", err)
	} else if !l.AddNotifierCallback(term.Fd(), l.terminatedCallback) {
		term.Close()
	} else {
		l.term = term
	}
	return l, nil
}

// Close releases the resources held by the loop. Close must not be called
// from a loop callback.
func (l *Loop) Close() error {
	if l.term != nil {
		l.term.Close()
		l.term = nil
	}
	return l.poller.Close()
}

// Execute runs the loop until Exit is called or the process is terminated
// and returns the exit code. Calling Execute from a loop callback returns -1
// immediately.
func (l *Loop) Execute() int {
	if l.executing {
		return -1
	}
	l.executing = true
	l.result = 0
	for l.executing {
		l.iterate(true)
	}
	for l.dispatch() {
	}
	return l.result
}

// Exit requests the loop to stop with the given code. Exit has no effect if
// the loop is not running.
func (l *Loop) Exit(code int) {
	if l.executing {
		l.result = code
		l.executing = false
	}
}

// Running reports whether Execute is in progress.
func (l *Loop) Running() bool {
	return l.executing
}

// SingleShot queues f to run once from a later iteration. Single shots run
// in the order they were queued, one per iteration.
func (l *Loop) SingleShot(f func()) {
	l.singleShots = append(l.singleShots, f)
}

// OnTerminated replaces the default termination behavior, exiting with
// status 1, with f.
func (l *Loop) OnTerminated(f func()) {
	l.terminated = f
}

// SetSource attaches the dispatch source. A nil source detaches it.
func (l *Loop) SetSource(s Source) {
	l.source = s
}

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Duration {
	return l.clock.Now()
}

// iterate runs one iteration and reports whether any work was done. A
// non-blocking iteration polls descriptors without waiting.
func (l *Loop) iterate(block bool) bool {
	worked := false
	wait := time.Duration(-1)
	if l.forceWake || !block {
		wait = 0
	}
	l.forceWake = false

	if len(l.timers) > 0 {
		if d := l.timers[0].expiration - l.clock.Now(); d <= 0 {
			l.fireTimer()
			wait = 0
			worked = true
		} else if wait < 0 || d < wait {
			wait = d
		}
	}

	if l.executing && len(l.singleShots) > 0 {
		f := l.singleShots[0]
		l.singleShots[0] = nil
		l.singleShots = l.singleShots[1:]
		f()
		wait = 0
		worked = true
	}

	if l.executing && l.poll(wait) {
		worked = true
	}

	if l.dispatch() {
		l.forceWake = true
		worked = true
	}
	return worked
}

// poll waits for readiness and dispatches the ready descriptors. It reports
// whether any descriptor was ready.
func (l *Loop) poll(timeout time.Duration) bool {
	ready, err := l.poller.Wait(timeout, l.ready[:0])
	if err != nil {
		logger.Printf("W: wait failed: %v", err)
		return false
	}
	l.ready = ready
	for _, r := range ready {
		l.notify(r.Fd, r.Events)
	}
	return len(ready) > 0
}

func (l *Loop) dispatch() bool {
	if l.source == nil {
		return false
	}
	return l.source.Dispatch()
}
