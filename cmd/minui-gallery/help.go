// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The minui-gallery command shows the minui controls.

Usage:

	minui-gallery [flags]

The gallery runs on the Linux framebuffer with the touch panel and keys of
the device, in a terminal with the mouse as the touch panel and the arrow
and enter keys, or headless, rendering one frame to a PNG file.

The flags are:

	-config file
		read the environment from a .yaml, .yml or .toml file.
	-display backend
		fbdev, term or headless. The default is taken from the
		environment.
	-o file
		the PNG file written by the headless display. The default is
		gallery.png.
	-debug
		enable debug logging.

The environment variables MINUI_PIXEL_RATIO, MINUI_SIZE_CATEGORY and
MINUI_ICON_DIR override the configuration file.
`
