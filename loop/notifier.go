// SPDX-License-Identifier: Unlicense OR MIT

package loop

// NotifierFunc handles readiness of a descriptor. The events are epoll event
// flags. The result reports whether the event was handled.
type NotifierFunc func(fd int, events uint32) bool

type notifier struct {
	fd       int
	ctx      any
	callback NotifierFunc
}

// AddNotifier watches fd for readiness and reports readiness to the attached
// Source's Notify method with ctx.
//
// A descriptor is registered with the operating system once. Adding an fd
// that is already known, for example because it was removed and the number
// has since been reused, replaces the context of the existing entry. False
// is returned only if the operating system registration fails.
func (l *Loop) AddNotifier(fd int, ctx any) bool {
	return l.addNotifier(fd, ctx, nil)
}

// AddNotifierCallback watches fd for readiness and calls f when it is ready.
// Re-registration follows the rules of AddNotifier.
func (l *Loop) AddNotifierCallback(fd int, f NotifierFunc) bool {
	return l.addNotifier(fd, nil, f)
}

func (l *Loop) addNotifier(fd int, ctx any, f NotifierFunc) bool {
	for i := range l.notifiers {
		if n := &l.notifiers[i]; n.fd == fd {
			n.ctx = ctx
			n.callback = f
			return true
		}
	}
	if err := l.poller.Add(fd); err != nil {
		logger.Printf("W: failed to watch fd %d: %v", fd, err)
		return false
	}
	l.notifiers = append(l.notifiers, notifier{fd: fd, ctx: ctx, callback: f})
	return true
}

// RemoveNotifier stops delivering readiness of fd. The operating system
// registration is kept so that adding the descriptor again is cheap; events
// arriving in the meantime are dropped.
func (l *Loop) RemoveNotifier(fd int) {
	for i := range l.notifiers {
		if n := &l.notifiers[i]; n.fd == fd {
			n.ctx = nil
			n.callback = nil
			return
		}
	}
}

func (l *Loop) notify(fd int, events uint32) {
	for i := range l.notifiers {
		n := l.notifiers[i]
		if n.fd != fd {
			continue
		}
		switch {
		case n.callback != nil:
			n.callback(fd, events)
		case n.ctx != nil && l.source != nil:
			l.source.Notify(fd, events, n.ctx)
		}
		return
	}
}
