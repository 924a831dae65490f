// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"minui.org/config"
	"minui.org/display"
	"minui.org/internal/logutil"
	"minui.org/loop"
	"minui.org/ui"
)

var (
	configFile  = flag.String("config", "", "configuration file (.yaml, .yml or .toml)")
	displayName = flag.String("display", "", "display backend (fbdev, term, headless)")
	destPath    = flag.String("o", "gallery.png", "output file of the headless display")
	debugLog    = flag.Bool("debug", false, "enable debug logging")
)

var (
	logger = logutil.GetLogger("[gallery] ")
	debug  = logutil.GetDebugLogger("[gallery] ")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	// Timestamps are only useful when the log goes to a file or journal.
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		logutil.SetFlags(0)
	} else {
		logutil.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
	code, err := mainErr()
	if err != nil {
		fmt.Fprintf(os.Stderr, "minui-gallery: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func mainErr() (int, error) {
	env, err := config.Load(*configFile, os.Getenv)
	if err != nil {
		return 1, err
	}
	if *displayName != "" {
		env.Display = *displayName
	}
	if env.Debug || *debugLog {
		logutil.SetDebug(true)
	}

	l, err := loop.New()
	if err != nil {
		return 1, err
	}
	defer l.Close()

	b, err := openBackend(env)
	if err != nil {
		return 1, err
	}
	defer b.Close()

	theme := config.NewTheme(env)
	opts := []ui.Option{ui.WithBackground(theme.Background)}
	if b.querier != nil {
		opts = append(opts, ui.WithQuerier(b.querier))
	}
	w, err := ui.NewWindow(l, b.painter, opts...)
	if err != nil {
		return 1, err
	}
	defer w.Close()
	b.attach(w, env)

	if _, err := newGallery(w, theme, env); err != nil {
		return 1, err
	}
	if err := w.SetDisplayState(display.On); err != nil {
		logger.Printf("W: %v", err)
	}

	if b.headless != nil {
		w.Update()
		if err := b.headless.SavePNG(*destPath); err != nil {
			return 1, err
		}
		return 0, nil
	}
	return l.Execute(), nil
}
