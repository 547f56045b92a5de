package engine

import "time"

// DefaultNotificationTimeout is how long a failure banner stays visible.
const DefaultNotificationTimeout = 3 * time.Second

// Notification is the transient failure banner. The zero value means no
// banner is shown.
type Notification struct {
	Kind    Kind
	Message string
}

// Visible reports whether the banner should be shown.
func (n Notification) Visible() bool {
	return n.Message != ""
}

// Notification returns the current banner.
func (e *Engine) Notification() Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.note
}

// Dismiss hides the banner and cancels its timer.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	e.clearNoteLocked()
	e.mu.Unlock()
	e.changed()
}

// notify replaces the banner and restarts the auto-clear timer.
func (e *Engine) notify(kind Kind) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.clearNoteLocked()
	e.note = Notification{Kind: kind, Message: kind.Message()}
	gen := e.noteGen
	e.noteTimer = time.AfterFunc(e.timeout, func() { e.expire(gen) })
	e.mu.Unlock()
	e.changed()
}

// expire clears the banner unless a newer one replaced it meanwhile.
func (e *Engine) expire(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.noteGen {
		e.mu.Unlock()
		return
	}
	e.note = Notification{}
	e.noteTimer = nil
	e.mu.Unlock()
	e.changed()
}

// clearNoteLocked stops the pending timer and invalidates its callback.
func (e *Engine) clearNoteLocked() {
	e.noteGen++
	if e.noteTimer != nil {
		e.noteTimer.Stop()
		e.noteTimer = nil
	}
	e.note = Notification{}
}
