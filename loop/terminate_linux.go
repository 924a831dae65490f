// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"os"
	"os/signal"

	syscall "golang.org/x/sys/unix"
)

// termination relays SIGTERM into an eventfd. The relay goroutine does
// nothing but write to the descriptor; the loop handles the readiness event
// like any other.
type termination struct {
	*Wakeup
	signals chan os.Signal
	done    chan struct{}
}

func newTermination() (*termination, error) {
	w, err := NewWakeup()
	if err != nil {
		return nil, err
	}
	t := &termination{
		Wakeup:  w,
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	signal.Notify(t.signals, syscall.SIGTERM)
	go func() {
		defer close(t.done)
		for range t.signals {
			t.Signal()
		}
	}()
	return t, nil
}

func (t *termination) Close() error {
	signal.Stop(t.signals)
	close(t.signals)
	<-t.done
	return t.Wakeup.Close()
}

func (l *Loop) terminatedCallback(fd int, events uint32) bool {
	if l.term == nil || l.term.Clear() == 0 {
		return false
	}
	if l.terminated != nil {
		l.terminated()
	} else {
		l.Exit(1)
	}
	return true
}
