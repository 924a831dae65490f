// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements thin compositions of ui items: filled
// rectangles, progress bars, text labels, icons and buttons decorated
// with a label or an icon.
//
// Labels and icons are alpha masks painted in a single color, so a button
// shows its state by recoloring its decoration.
package widget
