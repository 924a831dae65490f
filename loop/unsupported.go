// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

package loop

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("loop: not supported on this platform")

type epoll struct{}

func newEpoll() (*epoll, error) { return nil, errUnsupported }

func (e *epoll) Add(fd int) error { return errUnsupported }

func (e *epoll) Wait(timeout time.Duration, ready []Readiness) ([]Readiness, error) {
	return ready, errUnsupported
}

func (e *epoll) Close() error { return nil }

// Wakeup is an eventfd used to wake the loop.
type Wakeup struct{}

// NewWakeup is only supported on Linux.
func NewWakeup() (*Wakeup, error) { return nil, errUnsupported }

func (w *Wakeup) Fd() int       { return -1 }
func (w *Wakeup) Signal()       {}
func (w *Wakeup) Clear() uint64 { return 0 }
func (w *Wakeup) Close() error  { return nil }

type termination struct{ *Wakeup }

func newTermination() (*termination, error) { return nil, errUnsupported }

func (l *Loop) terminatedCallback(fd int, events uint32) bool { return false }
