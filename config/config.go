// SPDX-License-Identifier: Unlicense OR MIT

/*
Package config builds the Environment shared by a minui program.

The Environment is built once at startup, in order, from

  - the defaults,
  - an optional YAML (.yaml, .yml) or TOML (.toml) file,
  - the name of the icon directory, which has the form z<ratio>[-<category>],
    for example z1.5 or z2.0-large, after resolving symbolic links,
  - the environment variables MINUI_PIXEL_RATIO, MINUI_SIZE_CATEGORY and
    LANG.

MINUI_ICON_DIR replaces the icon directory of the file.
*/
package config

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"minui.org/internal/logutil"
)

var logger = logutil.GetLogger("[config] ")

// DefaultIconDir is the icon directory used when none is configured.
const DefaultIconDir = "/usr/share/minui/images/default"

// Environment variables.
const (
	EnvIconDir      = "MINUI_ICON_DIR"
	EnvPixelRatio   = "MINUI_PIXEL_RATIO"
	EnvSizeCategory = "MINUI_SIZE_CATEGORY"
	EnvLang         = "LANG"
)

// SizeCategory is the screen size profile of a device.
type SizeCategory int

const (
	Small SizeCategory = iota
	Medium
	Large
	ExtraLarge
)

var categoryNames = [...]string{"small", "medium", "large", "extraLarge"}

func (c SizeCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("SizeCategory(%d)", int(c))
	}
	return categoryNames[c]
}

func parseCategory(s string) (SizeCategory, bool) {
	for i, n := range categoryNames {
		if s == n {
			return SizeCategory(i), true
		}
	}
	return 0, false
}

func (c *SizeCategory) UnmarshalText(text []byte) error {
	v, ok := parseCategory(string(text))
	if !ok {
		return errors.Errorf("unknown size category %q", text)
	}
	*c = v
	return nil
}

func (c SizeCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Color is a color given by a CSS color name or as #rrggbb or #rrggbbaa.
type Color color.NRGBA

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = Color(v)
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	b := []byte{c.R, c.G, c.B}
	if c.A != 0xff {
		b = append(b, c.A)
	}
	return []byte("#" + hex.EncodeToString(b)), nil
}

// ParseColor parses a color name or hexadecimal color.
func ParseColor(s string) (color.NRGBA, error) {
	if h, ok := strings.CutPrefix(s, "#"); ok {
		b, err := hex.DecodeString(h)
		if err != nil || (len(b) != 3 && len(b) != 4) {
			return color.NRGBA{}, errors.Errorf("invalid color %q", s)
		}
		c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
		if len(b) == 4 {
			c.A = b[3]
		}
		return c, nil
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.NRGBA{}, errors.Errorf("unknown color %q", s)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// Environment holds the settings of a program.
type Environment struct {
	// Locale is the language and territory, for example en_US.
	Locale       string       `yaml:"locale" toml:"locale"`
	PixelRatio   float64      `yaml:"pixel_ratio" toml:"pixel_ratio"`
	SizeCategory SizeCategory `yaml:"size_category" toml:"size_category"`
	IconDir      string       `yaml:"icon_dir" toml:"icon_dir"`

	// Display selects the backend: fbdev, term or headless.
	Display     string `yaml:"display" toml:"display"`
	Framebuffer string `yaml:"framebuffer" toml:"framebuffer"`
	// Input is a glob matching the input devices.
	Input string `yaml:"input" toml:"input"`
	// Width and Height size the term and headless displays.
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`

	Background Color `yaml:"background" toml:"background"`
	Accent     Color `yaml:"accent" toml:"accent"`

	// Haptics enables vibration feedback on key presses.
	Haptics bool `yaml:"haptics" toml:"haptics"`
	// HapticDuration is the length of the key press effect in
	// milliseconds.
	HapticDuration int  `yaml:"haptic_duration" toml:"haptic_duration"`
	Debug          bool `yaml:"debug" toml:"debug"`
}

// Default returns the default Environment.
func Default() *Environment {
	return &Environment{
		Locale:         "en_US",
		PixelRatio:     1,
		SizeCategory:   Medium,
		IconDir:        DefaultIconDir,
		Display:        "fbdev",
		Framebuffer:    "/dev/fb0",
		Input:          "/dev/input/event*",
		Width:          540,
		Height:         960,
		Background:     Color{A: 0xff},
		Accent:         Color{R: 127, G: 223, B: 255, A: 255},
		Haptics:        true,
		HapticDuration: 100,
	}
}

// Load builds the Environment from the file at path, which may be empty,
// and the variables returned by getenv.
func Load(path string, getenv func(string) string) (*Environment, error) {
	env := Default()
	if path != "" {
		if err := env.readFile(path); err != nil {
			return nil, err
		}
	}
	if dir := getenv(EnvIconDir); dir != "" {
		env.IconDir = dir
	}
	env.applyIconDir()

	if s := getenv(EnvPixelRatio); s != "" {
		if r, err := strconv.ParseFloat(s, 64); err == nil && r != 0 {
			env.PixelRatio = r
		} else {
			logger.Printf("W: ignoring %s=%q", EnvPixelRatio, s)
		}
	}
	if s := getenv(EnvSizeCategory); s != "" {
		if c, ok := parseCategory(s); ok {
			env.SizeCategory = c
		} else {
			logger.Printf("W: ignoring %s=%q", EnvSizeCategory, s)
		}
	}
	if s := getenv(EnvLang); s != "" {
		if len(s) > 5 {
			s = s[:5]
		}
		env.Locale = s
	}
	if env.PixelRatio <= 0 {
		return nil, errors.Errorf("config: invalid pixel ratio %g", env.PixelRatio)
	}
	return env, nil
}

func (env *Environment) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(env); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrapf(err, "config: %s", path)
		}
	case ".toml":
		md, err := toml.Decode(string(data), env)
		if err != nil {
			return errors.Wrapf(err, "config: %s", path)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return errors.Errorf("config: %s: unknown keys %v", path, undec)
		}
	default:
		return errors.Errorf("config: %s: unknown format %q", path, ext)
	}
	return nil
}

// applyIconDir takes the pixel ratio and size category from the name of
// the icon directory.
func (env *Environment) applyIconDir() {
	dir := env.IconDir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	ratio, category, ok := ParseIconDir(filepath.Base(dir))
	if !ok {
		return
	}
	env.PixelRatio = ratio
	if c, ok := parseCategory(category); ok {
		env.SizeCategory = c
	}
}

// ParseIconDir parses an icon directory name of the form
// z<ratio>[-<category>].
func ParseIconDir(name string) (ratio float64, category string, ok bool) {
	rest, found := strings.CutPrefix(name, "z")
	if !found {
		return 0, "", false
	}
	rest, category, _ = strings.Cut(rest, "-")
	ratio, err := strconv.ParseFloat(rest, 64)
	if err != nil || ratio <= 0 {
		return 0, "", false
	}
	return ratio, category, true
}
