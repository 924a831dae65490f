// SPDX-License-Identifier: Unlicense OR MIT

package loop

import "time"

// Readiness reports the events of a ready descriptor.
type Readiness struct {
	Fd     int
	Events uint32
}

// Poller is the operating system readiness primitive.
type Poller interface {
	// Add watches fd for input readiness.
	Add(fd int) error
	// Wait blocks until a watched descriptor is ready or the timeout
	// expires and appends the ready descriptors to ready. A negative
	// timeout waits indefinitely.
	Wait(timeout time.Duration, ready []Readiness) ([]Readiness, error)
	Close() error
}
