// SPDX-License-Identifier: Unlicense OR MIT

/*
Package display defines the boundary between the scene graph and a pixel
backend.

The draw pass of a window paints through a Painter. Coordinates are
absolute device pixels with the origin at the top left corner of the
screen. Backends implement Painter on top of an RGBA Canvas and copy it
to the device in Flip.
*/
package display

import (
	"image"
	"image/color"
)

// Painter is a pixel backend.
type Painter interface {
	// Size returns the size of the screen in pixels.
	Size() image.Point
	// SetColor sets the color of FillRect and Clear.
	SetColor(c color.NRGBA)
	// FillRect blends the current color over r.
	FillRect(r image.Rectangle)
	// Blit blends src, with its alpha multiplied by opacity, over the
	// screen with src.Bounds().Min placed at dst.
	Blit(src image.Image, dst image.Point, opacity float64)
	// Clear fills the whole screen with the current color.
	Clear()
	// Flip presents the painted frame.
	Flip() error
	// Blank powers the screen off or on.
	Blank(blank bool) error
	// Close releases the backend.
	Close() error
}

// State is the power state of the display.
type State int8

const (
	// Unknown is the state before the display is first blanked or
	// unblanked.
	Unknown State = iota - 1
	// Off is a powered off display.
	Off
	// On is a display in normal mode.
	On
	// Doze is a powered display in an updatable low power mode.
	Doze
	// DozeSuspend is a powered display in a static low power mode.
	DozeSuspend
)

// IsPoweredOn reports whether the display is powered in state s.
func (s State) IsPoweredOn() bool {
	switch s {
	case On, Doze, DozeSuspend:
		return true
	}
	return false
}

// IsDrawable reports whether the display accepts new frames in state s.
func (s State) IsDrawable() bool {
	switch s {
	case On, Doze:
		return true
	}
	return false
}

func (s State) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Off:
		return "Off"
	case On:
		return "On"
	case Doze:
		return "Doze"
	case DozeSuspend:
		return "DozeSuspend"
	default:
		panic("invalid State")
	}
}
