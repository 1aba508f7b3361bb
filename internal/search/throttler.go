// Package search turns a stream of query edits into delayed search calls.
package search

import (
	"sync"
	"time"
)

// DefaultDelay is how long the query must stay unchanged before a search runs.
const DefaultDelay = 500 * time.Millisecond

// Throttler owns a single pending timer. Each OnQueryChange replaces the
// timer that has not fired yet, so a burst of edits yields one search for
// the last text in the burst.
//
// Results are not sequenced: a slow earlier search can still finish after
// a later one.
type Throttler struct {
	delay time.Duration
	fn    func(text string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	closed  bool
	wg      sync.WaitGroup
}

func NewThrottler(delay time.Duration, fn func(text string)) *Throttler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Throttler{delay: delay, fn: fn}
}

// OnQueryChange schedules a search for text and cancels the previous one if
// it has not fired. It never blocks on the search itself.
func (t *Throttler) OnQueryChange(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.stopLocked()

	t.pending = text
	t.wg.Add(1)
	t.timer = time.AfterFunc(t.delay, func() {
		defer t.wg.Done()
		t.fn(text)
	})
}

// Flush runs the pending search, if any, on the calling goroutine instead
// of waiting for the delay.
func (t *Throttler) Flush() {
	t.mu.Lock()
	if t.timer == nil || !t.timer.Stop() {
		t.timer = nil
		t.mu.Unlock()
		return
	}
	t.timer = nil
	text := t.pending
	t.mu.Unlock()

	defer t.wg.Done()
	t.fn(text)
}

// Close drops any pending search and waits for a running one to return.
// Later OnQueryChange calls are ignored.
func (t *Throttler) Close() {
	t.mu.Lock()
	t.closed = true
	t.stopLocked()
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Throttler) stopLocked() {
	if t.timer != nil && t.timer.Stop() {
		t.wg.Done()
	}
	t.timer = nil
}
