// SPDX-License-Identifier: Unlicense OR MIT

// Package logutil provides the loggers shared by the minui packages.
//
// Every package obtains its loggers once at init time:
//
//	var logger = logutil.GetLogger("[loop] ")
//
// Output can be redirected at any later point with SetOutput; loggers
// already handed out follow the redirection.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

type switchWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *switchWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

func (w *switchWriter) set(out io.Writer) {
	w.mu.Lock()
	w.out = out
	w.mu.Unlock()
}

var (
	out     = &switchWriter{out: os.Stderr}
	debug   = &switchWriter{out: io.Discard}
	flagsMu sync.Mutex
	loggers []*log.Logger
	flags   = log.LstdFlags
)

// Discard is a Logger that ignores all loggings.
var Discard = log.New(io.Discard, "", 0)

// GetLogger returns a logger for errors and warnings with the given prefix.
func GetLogger(prefix string) *log.Logger {
	return register(out, prefix)
}

// GetDebugLogger returns a logger whose output is discarded unless debug
// logging has been enabled with SetDebug.
func GetDebugLogger(prefix string) *log.Logger {
	return register(debug, prefix)
}

// SetOutput redirects the output of all loggers.
func SetOutput(w io.Writer) {
	debugMu.Lock()
	defer debugMu.Unlock()
	out.set(w)
	if debugEnabled {
		debug.set(w)
	}
}

var (
	debugMu      sync.Mutex
	debugEnabled bool
)

// SetDebug enables or disables the output of debug loggers.
func SetDebug(enabled bool) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugEnabled = enabled
	if enabled {
		out.mu.Lock()
		w := out.out
		out.mu.Unlock()
		debug.set(w)
	} else {
		debug.set(io.Discard)
	}
}

// SetFlags changes the output flags of all loggers, see log.SetFlags.
func SetFlags(f int) {
	flagsMu.Lock()
	defer flagsMu.Unlock()
	flags = f
	for _, l := range loggers {
		l.SetFlags(f)
	}
}

func register(w io.Writer, prefix string) *log.Logger {
	flagsMu.Lock()
	defer flagsMu.Unlock()
	l := log.New(w, prefix, flags)
	loggers = append(loggers, l)
	return l
}
