// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"testing"
	"time"
)

func TestEventEncoding(t *testing.T) {
	e := Event{
		Time:  time.Unix(1700000000, 250000*int64(time.Microsecond)),
		Type:  EV_ABS,
		Code:  ABS_MT_TRACKING_ID,
		Value: -1,
	}
	buf := make([]byte, EventSize)
	Encode(buf, e)
	got, ok := Decode(buf)
	if !ok {
		t.Fatal("Decode failed")
	}
	if !got.Time.Equal(e.Time) || got.Type != e.Type || got.Code != e.Code || got.Value != e.Value {
		t.Errorf("Decode(Encode(%+v)) = %+v", e, got)
	}
	if longSize == 8 {
		if EventSize != 24 {
			t.Errorf("EventSize = %d, want 24", EventSize)
		}
		// type, code and value follow the 16 byte timeval.
		if buf[16] != EV_ABS || buf[18] != ABS_MT_TRACKING_ID || buf[20] != 0xff {
			t.Errorf("unexpected layout % x", buf)
		}
	}
}

func TestDecodeShort(t *testing.T) {
	if _, ok := Decode(make([]byte, EventSize-1)); ok {
		t.Error("decoded a truncated event")
	}
}

func TestZeroTime(t *testing.T) {
	buf := make([]byte, EventSize)
	Encode(buf, Event{Type: EV_SYN})
	e, _ := Decode(buf)
	if !e.Time.IsZero() {
		t.Errorf("zero timestamp decoded as %v", e.Time)
	}
}

func TestBits(t *testing.T) {
	b := NewBits(ABS_CNT)
	if len(b) != 8 {
		t.Fatalf("len(NewBits(ABS_CNT)) = %d, want 8", len(b))
	}
	b.Set(ABS_MT_SLOT)
	b.Set(ABS_MT_POSITION_X)
	b.Set(1000)
	tests := []struct {
		bit  int
		want bool
	}{
		{ABS_MT_SLOT, true},
		{ABS_MT_POSITION_X, true},
		{ABS_MT_POSITION_Y, false},
		{ABS_X, false},
		{-1, false},
		{1000, false},
	}
	for _, test := range tests {
		if got := b.IsSet(test.bit); got != test.want {
			t.Errorf("IsSet(%#x) = %v, want %v", test.bit, got, test.want)
		}
	}
	// Byte 5 holds bits 40-47, ABS_MT_SLOT is bit 47.
	if b[5] != 0x80 {
		t.Errorf("b[5] = %#x, want 0x80", b[5])
	}
}
