// Package timingtest supplies a deterministic, manually-driven Clock and
// DelayFactory so package timing's operators can be exercised without a real
// timer, in the spirit of the teacher's injectable time.Time sources
// (internal/networking's BandwidthRegulator, internal/http's
// SlidingWindowLimiter).
package timingtest

import (
	"sync"

	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/timing"
)

// ManualClock is a timing.Clock whose Now() only advances when Advance is
// called, for deterministic timing() tests.
type ManualClock struct {
	mu    sync.Mutex
	nanos int64
}

// NewManualClock constructs a clock starting at nanosecond 0.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now implements timing.Clock.
func (c *ManualClock) Now() timing.Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return timing.NewInstant(c.nanos)
}

// Advance moves the clock forward by nanos.
func (c *ManualClock) Advance(nanos int64) {
	c.mu.Lock()
	c.nanos += nanos
	c.mu.Unlock()
}

// completable is a manually-fired timing.Completable; Fire makes the next
// Poll (and any previously registered waker) report ready.
type completable struct {
	mu    sync.Mutex
	ready bool
	waker reactor.Waker
}

func newCompletable() *completable {
	return &completable{}
}

// Poll implements timing.Completable.
func (c *completable) Poll(waker reactor.Waker) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return true
	}
	c.waker = waker
	return false
}

// Fire marks the handle ready and wakes whatever waker was last registered.
func (c *completable) Fire() {
	c.mu.Lock()
	c.ready = true
	w := c.waker
	c.waker = nil
	c.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

// FakeDelayFactory is a timing.DelayFactory[T] under direct test control: each
// call to the factory function records the trigger value and returns a new
// handle; the test fires handles (by index, in arming order) to simulate
// timer elapse.
type FakeDelayFactory[T any] struct {
	mu       sync.Mutex
	Triggers []T
	handles  []*completable
}

// NewFakeDelayFactory constructs an empty factory.
func NewFakeDelayFactory[T any]() *FakeDelayFactory[T] {
	return &FakeDelayFactory[T]{}
}

// Factory returns the DelayFactory function to hand to a timing operator.
func (f *FakeDelayFactory[T]) Factory() timing.DelayFactory[T] {
	return func(trigger T) timing.Completable {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.Triggers = append(f.Triggers, trigger)
		h := newCompletable()
		f.handles = append(f.handles, h)
		return h
	}
}

// Armed reports how many timers have been armed so far.
func (f *FakeDelayFactory[T]) Armed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handles)
}

// Fire completes the handle armed at the given index (0 = first arm call).
func (f *FakeDelayFactory[T]) Fire(index int) {
	f.mu.Lock()
	h := f.handles[index]
	f.mu.Unlock()
	h.Fire()
}

// FireLatest completes the most recently armed handle.
func (f *FakeDelayFactory[T]) FireLatest() {
	f.mu.Lock()
	n := len(f.handles)
	f.mu.Unlock()
	if n == 0 {
		return
	}
	f.Fire(n - 1)
}
