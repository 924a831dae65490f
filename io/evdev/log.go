// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import "minui.org/internal/logutil"

var (
	logger = logutil.GetLogger("[evdev] ")
	debug  = logutil.GetDebugLogger("[evdev] ")
)
