// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"math"
	"time"

	"github.com/pkg/errors"
	syscall "golang.org/x/sys/unix"
)

// Plenty of room for the descriptors of a boot screen.
const maxEvents = 32

type epoll struct {
	fd     int
	events [maxEvents]syscall.EpollEvent
}

func newEpoll() (*epoll, error) {
	fd, err := syscall.EpollCreate1(syscall.EPOLL_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, "loop: epoll_create1")
	}
	return &epoll{fd: fd}, nil
}

func (e *epoll) Add(fd int) error {
	ev := syscall.EpollEvent{
		Events: syscall.EPOLLIN | syscall.EPOLLERR | syscall.EPOLLHUP,
		Fd:     int32(fd),
	}
	if err := syscall.EpollCtl(e.fd, syscall.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return errors.Wrapf(err, "loop: epoll_ctl(%d)", fd)
	}
	return nil
}

func (e *epoll) Wait(timeout time.Duration, ready []Readiness) ([]Readiness, error) {
	n, err := syscall.EpollWait(e.fd, e.events[:], milliseconds(timeout))
	if err == syscall.EINTR {
		return ready, nil
	}
	if err != nil {
		return ready, errors.Wrap(err, "loop: epoll_wait")
	}
	for _, ev := range e.events[:n] {
		ready = append(ready, Readiness{Fd: int(ev.Fd), Events: ev.Events})
	}
	return ready, nil
}

func (e *epoll) Close() error {
	return syscall.Close(e.fd)
}

// milliseconds converts a wait timeout to epoll's resolution. Partial
// milliseconds round up so a pending timer is never polled for early.
func milliseconds(d time.Duration) int {
	if d < 0 {
		return -1
	}
	ms := (d + time.Millisecond - 1) / time.Millisecond
	if ms > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(ms)
}
