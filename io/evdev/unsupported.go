// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

package evdev

import "errors"

var errUnsupported = errors.New("evdev: not supported on this platform")

const DefaultPattern = ""

type Device struct{}

func Open(path string) (*Device, error)          { return nil, errUnsupported }
func OpenAll(pattern string) ([]*Device, error)   { return nil, errUnsupported }
func (d *Device) Fd() int                         { return -1 }
func (d *Device) Path() string                    { return "" }
func (d *Device) Name() string                    { return "" }
func (d *Device) Writable() bool                  { return false }
func (d *Device) ReadEvents([]Event) (int, error) { return 0, errUnsupported }
func (d *Device) Close() error                    { return nil }

func EventTypes(fd int) (Bits, error)                 { return nil, errUnsupported }
func AbsCodes(fd int) (Bits, error)                   { return nil, errUnsupported }
func FFBits(fd int) (Bits, error)                     { return nil, errUnsupported }
func GetAbsInfo(fd int, code uint16) (AbsInfo, error) { return AbsInfo{}, errUnsupported }
func Name(fd int) (string, error)                     { return "", errUnsupported }
func ReadEvents(fd int, events []Event) (int, error)  { return 0, errUnsupported }
func Write(fd int, events ...Event) error             { return errUnsupported }

func UploadRumble(fd int, strong, weak, length uint16) (int16, error) {
	return -1, errUnsupported
}

func PlayEffect(fd int, id int16) error { return errUnsupported }
