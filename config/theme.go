// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"image/color"

	"minui.org/unit"
)

// Palette holds the foreground colors of an item in its states.
type Palette struct {
	Normal   color.NRGBA
	Disabled color.NRGBA
	Selected color.NRGBA
	Pressed  color.NRGBA
}

// Theme holds the metrics of the user interface, in device pixels.
type Theme struct {
	unit.Metric
	SizeCategory SizeCategory
	Palette      Palette
	Background   color.NRGBA

	ItemSizeExtraSmall int
	ItemSizeSmall      int
	ItemSizeMedium     int
	ItemSizeLarge      int
	ItemSizeExtraLarge int
	ItemSizeHuge       int

	IconSizeExtraSmall int
	IconSizeSmall      int
	IconSizeSmallPlus  int
	IconSizeMedium     int
	IconSizeLarge      int
	IconSizeExtraLarge int
	IconSizeLauncher   int

	ButtonWidthSmall  int
	ButtonWidthMedium int
	ButtonWidthLarge  int

	PaddingSmall         int
	PaddingMedium        int
	PaddingLarge         int
	HorizontalPageMargin int
}

// NewTheme returns the theme of env.
func NewTheme(env *Environment) *Theme {
	m := unit.Metric{PxPerDp: float32(env.PixelRatio)}
	t := &Theme{
		Metric:       m,
		SizeCategory: env.SizeCategory,
		Background:   color.NRGBA(env.Background),
		Palette: Palette{
			Normal:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Disabled: color.NRGBA{R: 60, G: 60, B: 60, A: 255},
			Selected: color.NRGBA{R: 180, G: 180, B: 180, A: 255},
			Pressed:  color.NRGBA(env.Accent),
		},

		ItemSizeExtraSmall: m.Dp(70),
		ItemSizeSmall:      m.Dp(80),
		ItemSizeMedium:     m.Dp(100),
		ItemSizeLarge:      m.Dp(110),
		ItemSizeExtraLarge: m.Dp(135),
		ItemSizeHuge:       m.Dp(180),

		IconSizeExtraSmall: m.Dp(24),
		IconSizeSmall:      m.Dp(32),
		IconSizeSmallPlus:  m.Dp(48),
		IconSizeMedium:     m.Dp(64),
		IconSizeLarge:      m.Dp(96),
		IconSizeExtraLarge: m.Dp(128),
		IconSizeLauncher:   m.Dp(86),

		ButtonWidthSmall:  m.Dp(234),
		ButtonWidthMedium: m.Dp(292),
		ButtonWidthLarge:  m.Dp(444),

		PaddingSmall:  m.Dp(6),
		PaddingMedium: m.Dp(12),
		PaddingLarge:  m.Dp(24),
	}
	t.HorizontalPageMargin = t.PaddingLarge
	if t.SizeCategory >= Large {
		t.HorizontalPageMargin *= 2
	}
	return t
}
