// SPDX-License-Identifier: Unlicense OR MIT

package key

import (
	"testing"

	"minui.org/io/evdev"
)

func TestChar(t *testing.T) {
	tests := []struct {
		Code Code
		Char rune
		OK   bool
	}{
		{Code1, '1', true},
		{Code9, '9', true},
		{Code0, '0', true},
		{CodeNumeric0, '0', true},
		{CodeNumeric0 + 7, '7', true},
		{CodeNumeric9, '9', true},
		{CodeEnter, 0, false},
		{CodeBackspace, 0, false},
		{CodeNumeric9 + 1, 0, false},
	}
	for _, tst := range tests {
		r, ok := Char(tst.Code)
		if r != tst.Char || ok != tst.OK {
			t.Errorf("Char(%d) = %q, %v, want %q, %v", tst.Code, r, ok, tst.Char, tst.OK)
		}
	}
}

func TestNames(t *testing.T) {
	tests := map[Code]string{
		CodePower:    "Power",
		CodeUp:       "↑",
		Code0:        "0",
		CodeNumeric9: "9",
		Code(400):    "Key400",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("Code(%d).String() = %q, want %q", uint16(c), got, want)
		}
	}
}

func TestFromEvdev(t *testing.T) {
	tests := []struct {
		In  evdev.Event
		Out Event
		OK  bool
	}{
		{evdev.Event{Type: evdev.EV_KEY, Code: uint16(Code5), Value: 1}, Event{Code: Code5, State: Press, Char: '5'}, true},
		{evdev.Event{Type: evdev.EV_KEY, Code: uint16(CodePower), Value: 0}, Event{Code: CodePower, State: Release}, true},
		{evdev.Event{Type: evdev.EV_KEY, Code: uint16(CodeDown), Value: 2}, Event{Code: CodeDown, State: Repeat}, true},
		{evdev.Event{Type: evdev.EV_ABS, Code: evdev.ABS_MT_SLOT}, Event{}, false},
	}
	for _, tst := range tests {
		e, ok := FromEvdev(tst.In)
		if e != tst.Out || ok != tst.OK {
			t.Errorf("FromEvdev(%+v) = %+v, %v, want %+v, %v", tst.In, e, ok, tst.Out, tst.OK)
		}
	}
}
