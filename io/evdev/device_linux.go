// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"path/filepath"

	"github.com/pkg/errors"
	syscall "golang.org/x/sys/unix"
)

// DefaultPattern matches the event devices of a typical system.
const DefaultPattern = "/dev/input/event*"

// Device is an open event device.
type Device struct {
	fd       int
	path     string
	name     string
	writable bool
}

// Open opens the event device at path in non-blocking mode. The device is
// opened for writing too when permitted, which force feedback requires.
func Open(path string) (*Device, error) {
	writable := true
	fd, err := syscall.Open(path, syscall.O_RDWR|syscall.O_NONBLOCK|syscall.O_CLOEXEC, 0)
	if err != nil {
		writable = false
		fd, err = syscall.Open(path, syscall.O_RDONLY|syscall.O_NONBLOCK|syscall.O_CLOEXEC, 0)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	d := &Device{fd: fd, path: path, writable: writable}
	if d.name, err = Name(fd); err != nil {
		logger.Printf("W: %s: %v", path, err)
	}
	return d, nil
}

// OpenAll opens every device matching the glob pattern, skipping devices
// that cannot be opened.
func OpenAll(pattern string) ([]*Device, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "evdev")
	}
	var devs []*Device
	for _, p := range paths {
		d, err := Open(p)
		if err != nil {
			debug.Printf("skipping %v", err)
			continue
		}
		devs = append(devs, d)
	}
	return devs, nil
}

// Fd returns the file descriptor of the device.
func (d *Device) Fd() int { return d.fd }

// Path returns the device node path.
func (d *Device) Path() string { return d.path }

// Name returns the device name, or the empty string if the driver did not
// report one.
func (d *Device) Name() string { return d.name }

// Writable reports whether the device was opened for writing.
func (d *Device) Writable() bool { return d.writable }

// ReadEvents reads the pending events of the device.
func (d *Device) ReadEvents(events []Event) (int, error) {
	return ReadEvents(d.fd, events)
}

// Close closes the device.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := syscall.Close(d.fd)
	d.fd = -1
	return err
}
