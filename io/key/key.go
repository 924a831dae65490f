// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements key codes and key events.
package key

import (
	"fmt"

	"minui.org/io/evdev"
)

// Code is a Linux key code.
type Code uint16

const (
	CodeEscape     Code = 1
	Code1          Code = 2
	Code2          Code = 3
	Code3          Code = 4
	Code4          Code = 5
	Code5          Code = 6
	Code6          Code = 7
	Code7          Code = 8
	Code8          Code = 9
	Code9          Code = 10
	Code0          Code = 11
	CodeBackspace  Code = 14
	CodeEnter      Code = 28
	CodeUp         Code = 103
	CodeDown       Code = 108
	CodeVolumeDown Code = 114
	CodeVolumeUp   Code = 115
	CodePower      Code = 116
	CodeOK         Code = 0x160
	CodeSelect     Code = 0x161
	CodeNumeric0   Code = 0x200
	CodeNumeric9   Code = 0x209
)

// State is the state of a key during an event.
type State uint8

const (
	// Release is the state of a key that has been released.
	Release State = iota
	// Press is the state of a pressed key.
	Press
	// Repeat is the state of a key held down long enough to auto
	// repeat.
	Repeat
)

// An Event is generated when a key changes state.
type Event struct {
	Code  Code
	State State
	// Char is the character of a digit key, or zero.
	Char rune
}

// Name is the display name of a key.
type Name string

const (
	NameUpArrow        Name = "↑"
	NameDownArrow      Name = "↓"
	NameEnter          Name = "⌤"
	NameEscape         Name = "⎋"
	NameDeleteBackward Name = "⌫"
	NameVolumeUp       Name = "VolumeUp"
	NameVolumeDown     Name = "VolumeDown"
	NamePower          Name = "Power"
	NameOK             Name = "OK"
	NameSelect         Name = "Select"
)

// FromEvdev converts an EV_KEY input event. It reports false for events of
// other types.
func FromEvdev(e evdev.Event) (Event, bool) {
	if e.Type != evdev.EV_KEY {
		return Event{}, false
	}
	c := Code(e.Code)
	ke := Event{Code: c, State: Release}
	switch e.Value {
	case 0:
	case 2:
		ke.State = Repeat
	default:
		ke.State = Press
	}
	ke.Char, _ = Char(c)
	return ke, true
}

// Char returns the character of a digit key.
func Char(c Code) (rune, bool) {
	switch {
	case c >= Code1 && c <= Code9:
		return '1' + rune(c-Code1), true
	case c == Code0:
		return '0', true
	case c >= CodeNumeric0 && c <= CodeNumeric9:
		return '0' + rune(c-CodeNumeric0), true
	}
	return 0, false
}

// Name returns the display name of the key.
func (c Code) Name() Name {
	switch c {
	case CodeUp:
		return NameUpArrow
	case CodeDown:
		return NameDownArrow
	case CodeEnter:
		return NameEnter
	case CodeEscape:
		return NameEscape
	case CodeBackspace:
		return NameDeleteBackward
	case CodeVolumeUp:
		return NameVolumeUp
	case CodeVolumeDown:
		return NameVolumeDown
	case CodePower:
		return NamePower
	case CodeOK:
		return NameOK
	case CodeSelect:
		return NameSelect
	}
	if r, ok := Char(c); ok {
		return Name(r)
	}
	return Name(fmt.Sprintf("Key%d", uint16(c)))
}

func (c Code) String() string {
	return string(c.Name())
}

// IsDigit reports whether the key types a digit.
func (c Code) IsDigit() bool {
	_, ok := Char(c)
	return ok
}

func (s State) String() string {
	switch s {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Repeat:
		return "Repeat"
	default:
		panic("invalid State")
	}
}
