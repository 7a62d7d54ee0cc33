// Package timing implements spec §4.4's timer-driven operators: debounce,
// throttle (leading/trailing/all), sample, delay, delay_every, and timing.
// All of them share one external collaborator, a DelayFactory, deliberately
// left abstract per spec §6 — production code wires it to a real timer
// (package timing/timingtest supplies a deterministic fake for tests).
package timing

import "github.com/kestrel-stream/reactor"

// Completable is a one-shot handle that becomes ready exactly once, polled
// alongside the upstream in the same cooperative round (spec §4.4).
type Completable interface {
	Poll(waker reactor.Waker) bool // true once ready; sticky thereafter
}

// DelayFactory arms a new Completable for a given trigger value. T is the
// type of the value that justified arming the timer (the buffered item for
// debounce, the item for throttle, nothing meaningful for delay).
type DelayFactory[T any] func(trigger T) Completable

// Clock supplies the wall-clock source injected into timing(), per spec §6.
type Clock interface {
	Now() Instant
}

// Instant is an opaque timestamp; only subtraction via Clock implementations
// is meaningful, never direct construction outside a Clock.
type Instant struct {
	nanos int64
}

// NewInstant constructs an Instant from a monotonic nanosecond count. Clock
// implementations use this; ordinary callers never need to.
func NewInstant(nanos int64) Instant { return Instant{nanos: nanos} }

// Sub returns i-u as a duration in nanoseconds.
func (i Instant) Sub(u Instant) int64 { return i.nanos - u.nanos }

// debounce buffers the most recent item(s) and flushes once an armed timer
// elapses without being re-armed, per spec §4.4.
type debounce[T any] struct {
	upstream reactor.Pullable[T]
	factory  DelayFactory[T]
	buffered T
	have     bool
	timer    Completable
	upDone   bool
}

// Debounce re-arms f(buffered) on every upstream item; when the timer
// elapses without a newer item superseding it, the buffered item flushes.
func Debounce[T any](upstream reactor.Pullable[T], f DelayFactory[T]) reactor.Pullable[T] {
	d := &debounce[T]{upstream: upstream, factory: f}
	return reactor.PullFunc[T](d.poll)
}

func (d *debounce[T]) poll(waker reactor.Waker) reactor.Result[T] {
	if !d.upDone {
		res := d.upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			d.buffered = v
			d.have = true
			d.timer = d.factory(v)
		} else if res.IsDone() {
			d.upDone = true
			if d.have {
				v := d.buffered
				d.have = false
				return reactor.Item(v)
			}
			return reactor.Done[T]()
		}
	}

	if d.have && d.timer != nil && d.timer.Poll(waker) {
		v := d.buffered
		d.have = false
		d.timer = nil
		return reactor.Item(v)
	}

	if d.upDone && !d.have {
		return reactor.Done[T]()
	}
	return reactor.Pending[T]()
}

// throttleMode selects which of the three throttle variants a throttleOp runs.
type throttleMode uint8

const (
	throttleLeading throttleMode = iota
	throttleTrailing
	throttleAll
)

type throttleOp[T any] struct {
	upstream reactor.Pullable[T]
	factory  DelayFactory[T]
	mode     throttleMode

	armed    bool
	timer    Completable
	leading  T
	trailing T
	haveTr   bool
	upDone   bool
}

// Throttle implements leading-edge throttle(f): emits an item immediately if
// no timer is armed, then drops items until the timer elapses.
func Throttle[T any](upstream reactor.Pullable[T], f DelayFactory[T]) reactor.Pullable[T] {
	op := &throttleOp[T]{upstream: upstream, factory: f, mode: throttleLeading}
	return reactor.PullFunc[T](op.poll)
}

// ThrottleTrailing implements throttle_trailing(f): arms on the first item of
// a window and emits the most recently seen item once the window elapses.
func ThrottleTrailing[T any](upstream reactor.Pullable[T], f DelayFactory[T]) reactor.Pullable[T] {
	op := &throttleOp[T]{upstream: upstream, factory: f, mode: throttleTrailing}
	return reactor.PullFunc[T](op.poll)
}

// ThrottleAll implements throttle_all(f): emits the leading item immediately
// and, if a later trailing item differs, also emits it once the window elapses.
func ThrottleAll[T any](upstream reactor.Pullable[T], f DelayFactory[T], equal func(a, b T) bool) reactor.Pullable[T] {
	op := &throttleOp[T]{upstream: upstream, factory: f, mode: throttleAll}
	return reactor.PullFunc[T](func(waker reactor.Waker) reactor.Result[T] {
		return op.pollAll(waker, equal)
	})
}

func (t *throttleOp[T]) poll(waker reactor.Waker) reactor.Result[T] {
	if !t.upDone {
		res := t.upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			switch t.mode {
			case throttleLeading:
				if !t.armed {
					t.armed = true
					t.timer = t.factory(v)
					item := v
					return reactor.Item(item)
				}
				// dropped while armed
			case throttleTrailing:
				if !t.armed {
					t.armed = true
					t.timer = t.factory(v)
				}
				t.trailing = v
				t.haveTr = true
			}
		} else if res.IsDone() {
			t.upDone = true
		}
	}

	if t.armed && t.timer != nil && t.timer.Poll(waker) {
		t.armed = false
		t.timer = nil
		if t.mode == throttleTrailing && t.haveTr {
			v := t.trailing
			t.haveTr = false
			return reactor.Item(v)
		}
	}

	if t.upDone && !t.armed {
		return reactor.Done[T]()
	}
	return reactor.Pending[T]()
}

func (t *throttleOp[T]) pollAll(waker reactor.Waker, equal func(a, b T) bool) reactor.Result[T] {
	if !t.upDone {
		res := t.upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			if !t.armed {
				t.armed = true
				t.timer = t.factory(v)
				t.leading = v
				t.trailing = v
				t.haveTr = false
				return reactor.Item(v)
			}
			t.trailing = v
			t.haveTr = true
		} else if res.IsDone() {
			t.upDone = true
		}
	}

	if t.armed && t.timer != nil && t.timer.Poll(waker) {
		t.armed = false
		t.timer = nil
		if t.haveTr && !equal(t.trailing, t.leading) {
			v := t.trailing
			t.haveTr = false
			return reactor.Item(v)
		}
		t.haveTr = false
	}

	if t.upDone && !t.armed {
		return reactor.Done[T]()
	}
	return reactor.Pending[T]()
}

// sample holds the most recently seen upstream item, emitting it whenever
// sampler fires, per spec §4.4.
type sample[T, S any] struct {
	upstream reactor.Pullable[T]
	sampler  reactor.Pullable[S]
	latest   T
	have     bool
	upDone   bool
}

// Sample drains upstream opportunistically every round and emits the latest
// buffered value whenever sampler produces an item.
func Sample[T, S any](upstream reactor.Pullable[T], sampler reactor.Pullable[S]) reactor.Pullable[T] {
	s := &sample[T, S]{upstream: upstream, sampler: sampler}
	return reactor.PullFunc[T](s.poll)
}

func (s *sample[T, S]) poll(waker reactor.Waker) reactor.Result[T] {
	if !s.upDone {
		res := s.upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			s.latest = v
			s.have = true
		} else if res.IsDone() {
			s.upDone = true
		}
	}

	samp := s.sampler.Poll(waker)
	if _, ok := samp.Value(); ok {
		if s.have {
			v := s.latest
			s.have = false
			return reactor.Item(v)
		}
		if s.upDone {
			return reactor.Done[T]()
		}
		return reactor.Pending[T]()
	}
	if samp.IsDone() {
		return reactor.Done[T]()
	}
	if s.upDone && !s.have {
		return reactor.Done[T]()
	}
	return reactor.Pending[T]()
}

// delay applies a one-shot initial delay via f() before passing items through
// unchanged, per spec §4.4.
type delay[T any] struct {
	upstream reactor.Pullable[T]
	factory  func() Completable
	timer    Completable
	elapsed  bool
}

// Delay suppresses all upstream items until a one-shot timer armed via f()
// elapses, after which items pass through unmodified. f() is not called at
// construction: the timer is armed on the stream's first poll, so it starts
// counting from when the stream is actually driven, not when it's built.
func Delay[T any](upstream reactor.Pullable[T], f func() Completable) reactor.Pullable[T] {
	d := &delay[T]{upstream: upstream, factory: f}
	return reactor.PullFunc[T](d.poll)
}

func (d *delay[T]) poll(waker reactor.Waker) reactor.Result[T] {
	if !d.elapsed {
		if d.timer == nil {
			d.timer = d.factory()
		}
		if !d.timer.Poll(waker) {
			return reactor.Pending[T]()
		}
		d.elapsed = true
	}
	return d.upstream.Poll(waker)
}

// Timed wraps a value with the timestamp it was emitted at and the interval
// since the previous emission (spec §4.4's timing()).
type Timed[T any] struct {
	Value    T
	At       Instant
	Interval *int64 // nil for the first item
}

type timing[T any] struct {
	upstream reactor.Pullable[T]
	clock    Clock
	prev     Instant
	havePrev bool
}

// Timing wraps each upstream item into a Timed record, timestamping it with
// clock.Now() and computing the interval since the previous emission.
func Timing[T any](upstream reactor.Pullable[T], clock Clock) reactor.Pullable[Timed[T]] {
	t := &timing[T]{upstream: upstream, clock: clock}
	return reactor.PullFunc[Timed[T]](t.poll)
}

func (t *timing[T]) poll(waker reactor.Waker) reactor.Result[Timed[T]] {
	res := t.upstream.Poll(waker)
	v, ok := res.Value()
	if !ok {
		if res.IsDone() {
			return reactor.Done[Timed[T]]()
		}
		return reactor.Pending[Timed[T]]()
	}
	now := t.clock.Now()
	out := Timed[T]{Value: v, At: now}
	if t.havePrev {
		iv := now.Sub(t.prev)
		out.Interval = &iv
	}
	t.prev = now
	t.havePrev = true
	return reactor.Item(out)
}

// delayEvery opens an armed timer per upstream item and emits items in
// upstream order once their timer elapses, optionally capping the number of
// simultaneously armed timers (spec §4.4).
type delayEvery[T any] struct {
	upstream    reactor.Pullable[T]
	factory     DelayFactory[T]
	concurrency int // 0 means unbounded

	pending []pendingDelay[T]
	upDone  bool
}

type pendingDelay[T any] struct {
	value T
	timer Completable
}

// DelayEvery arms f(item) for every upstream item; items emerge downstream in
// upstream order once their own timer elapses. concurrency<=0 means unbounded
// simultaneously-armed timers; otherwise upstream polling pauses at the cap.
func DelayEvery[T any](upstream reactor.Pullable[T], f DelayFactory[T], concurrency int) reactor.Pullable[T] {
	d := &delayEvery[T]{upstream: upstream, factory: f, concurrency: concurrency}
	return reactor.PullFunc[T](d.poll)
}

func (d *delayEvery[T]) poll(waker reactor.Waker) reactor.Result[T] {
	if !d.upDone && (d.concurrency <= 0 || len(d.pending) < d.concurrency) {
		res := d.upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			d.pending = append(d.pending, pendingDelay[T]{value: v, timer: d.factory(v)})
		} else if res.IsDone() {
			d.upDone = true
		}
	}

	// All armed timers run concurrently and must each be polled so they can
	// make progress, but items still only emit in upstream order: only the
	// head's readiness can produce output.
	headReady := false
	for i := range d.pending {
		ready := d.pending[i].timer.Poll(waker)
		if i == 0 && ready {
			headReady = true
		}
	}
	if headReady {
		v := d.pending[0].value
		d.pending = d.pending[1:]
		return reactor.Item(v)
	}

	if d.upDone && len(d.pending) == 0 {
		return reactor.Done[T]()
	}
	return reactor.Pending[T]()
}
