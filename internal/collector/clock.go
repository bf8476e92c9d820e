package collector

import (
	"sync"
	"time"
)

// Terminator lets the event loop wake a collector's inter-tick sleep
// promptly instead of waiting out the full interval, per spec.md §4.7's
// termination design: a mutex-guarded bool plus a close-once channel so
// any number of goroutines can select on done until Terminate fires.
type Terminator struct {
	mu        sync.Mutex
	terminate bool
	done      chan struct{}
	once      sync.Once
}

// NewTerminator returns a ready-to-use Terminator.
func NewTerminator() *Terminator {
	return &Terminator{done: make(chan struct{})}
}

// Terminate marks the terminator tripped and wakes every waiter exactly
// once, regardless of how many times it's called.
func (t *Terminator) Terminate() {
	t.once.Do(func() {
		t.mu.Lock()
		t.terminate = true
		t.mu.Unlock()
		close(t.done)
	})
}

// Terminated reports whether Terminate has been called.
func (t *Terminator) Terminated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.terminate
}

// Sleep blocks for d or until Terminate is called, whichever comes
// first, returning true if it was woken early by Terminate.
func (t *Terminator) Sleep(d time.Duration) (terminated bool) {
	select {
	case <-time.After(d):
		return false
	case <-t.done:
		return true
	}
}
