// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"encoding/binary"

	"github.com/pkg/errors"
	syscall "golang.org/x/sys/unix"
)

// Wakeup is an eventfd used to wake the loop. Signal may be called from any
// goroutine; a burst of signals is observed as a single readiness event.
type Wakeup struct {
	fd int
}

// NewWakeup creates a non-blocking eventfd.
func NewWakeup() (*Wakeup, error) {
	fd, err := syscall.Eventfd(0, syscall.EFD_NONBLOCK|syscall.EFD_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, "loop: eventfd")
	}
	return &Wakeup{fd: fd}, nil
}

// Fd returns the descriptor to register with AddNotifierCallback.
func (w *Wakeup) Fd() int {
	return w.fd
}

// Signal increments the eventfd counter, making the descriptor readable.
func (w *Wakeup) Signal() {
	w.add(1)
}

func (w *Wakeup) add(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := syscall.Write(w.fd, buf[:]); err != nil && err != syscall.EAGAIN {
		logger.Printf("W: eventfd write failed: %v", err)
	}
}

// Clear reads and resets the counter, returning its value.
func (w *Wakeup) Clear() uint64 {
	var buf [8]byte
	if _, err := syscall.Read(w.fd, buf[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Close closes the eventfd.
func (w *Wakeup) Close() error {
	return syscall.Close(w.fd)
}
