package timing_test

import (
	"testing"

	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/timing"
	"github.com/kestrel-stream/reactor/timing/timingtest"
)

func TestDebounceFlushesOnTimerElapse(t *testing.T) {
	fake := timingtest.NewFakeDelayFactory[int]()
	// upstream yields 1, 2, 3 and then stays pending (it never completes), so
	// only the timer can flush the buffered item.
	items := []int{1, 2, 3}
	upstream := reactor.PullFunc[int](func(reactor.Waker) reactor.Result[int] {
		if len(items) == 0 {
			return reactor.Pending[int]()
		}
		v := items[0]
		items = items[1:]
		return reactor.Item(v)
	})
	p := timing.Debounce[int](upstream, fake.Factory())

	//1.- all three items buffer/re-arm before any timer fires.
	for i := 0; i < 3; i++ {
		if res := p.Poll(reactor.NoopWaker); !res.IsPending() {
			t.Fatalf("expected pending while buffering, got %+v", res)
		}
	}
	if fake.Armed() != 3 {
		t.Fatalf("expected 3 re-arms, got %d", fake.Armed())
	}
	//2.- firing the latest timer flushes the last buffered item (3).
	fake.FireLatest()
	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v != 3 {
		t.Fatalf("expected flushed value 3, got %+v", res)
	}
}

func TestDebounceFlushesOnUpstreamCompletion(t *testing.T) {
	fake := timingtest.NewFakeDelayFactory[int]()
	upstream := reactor.FromSlice([]int{7})
	p := timing.Debounce[int](upstream, fake.Factory())

	p.Poll(reactor.NoopWaker) // buffers 7, arms timer
	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v != 7 {
		t.Fatalf("expected flush-on-completion of 7, got %+v", res)
	}
	if res := p.Poll(reactor.NoopWaker); !res.IsDone() {
		t.Fatalf("expected done after flush, got %+v", res)
	}
}

func TestThrottleLeadingDropsWhileArmed(t *testing.T) {
	fake := timingtest.NewFakeDelayFactory[int]()
	upstream := reactor.FromSlice([]int{1, 2, 3})
	p := timing.Throttle[int](upstream, fake.Factory())

	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v != 1 {
		t.Fatalf("expected leading item 1, got %+v", res)
	}
	//2.- items 2 and 3 dropped while armed; upstream then exhausts, but the
	// operator stays open until its own timer elapses.
	if res := p.Poll(reactor.NoopWaker); !res.IsPending() {
		t.Fatalf("expected drop, got %+v", res)
	}
	if res := p.Poll(reactor.NoopWaker); !res.IsPending() {
		t.Fatalf("expected drop, got %+v", res)
	}
	if res := p.Poll(reactor.NoopWaker); !res.IsPending() {
		t.Fatalf("expected pending: upstream exhausted but timer still armed, got %+v", res)
	}
	fake.FireLatest()
	if res := p.Poll(reactor.NoopWaker); !res.IsDone() {
		t.Fatalf("expected done once the timer elapses with no trailing item, got %+v", res)
	}
}

func TestThrottleTrailingEmitsLatestOnElapse(t *testing.T) {
	fake := timingtest.NewFakeDelayFactory[int]()
	upstream := reactor.FromSlice([]int{1, 2, 3})
	p := timing.ThrottleTrailing[int](upstream, fake.Factory())

	for i := 0; i < 3; i++ {
		p.Poll(reactor.NoopWaker)
	}
	fake.FireLatest()
	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v != 3 {
		t.Fatalf("expected trailing value 3, got %+v", res)
	}
}

func TestSampleEmitsLatestOnSamplerTick(t *testing.T) {
	upstream := reactor.FromSlice([]int{1, 2, 3})
	tick := 0
	sampler := reactor.PullFunc[struct{}](func(reactor.Waker) reactor.Result[struct{}] {
		tick++
		if tick == 2 {
			return reactor.Item(struct{}{})
		}
		return reactor.Pending[struct{}]()
	})
	p := timing.Sample[int, struct{}](upstream, sampler)

	//1.- first poll: upstream yields 1, sampler pending -> no emission yet.
	if res := p.Poll(reactor.NoopWaker); !res.IsPending() {
		t.Fatalf("expected pending, got %+v", res)
	}
	//2.- second poll: upstream yields 2 (latest=2), sampler ticks -> emits 2.
	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v != 2 {
		t.Fatalf("expected sampled value 2, got %+v", res)
	}
}

func TestDelayGatesUntilTimerElapses(t *testing.T) {
	fake := timingtest.NewFakeDelayFactory[struct{}]()
	upstream := reactor.FromSlice([]int{1})
	p := timing.Delay[int](upstream, func() timing.Completable { return fake.Factory()(struct{}{}) })

	//1.- the timer must not be armed before the stream is ever polled.
	if fake.Armed() != 0 {
		t.Fatalf("expected timer armed only on first poll, got %d arms before any poll", fake.Armed())
	}
	if res := p.Poll(reactor.NoopWaker); !res.IsPending() {
		t.Fatalf("expected gated pending, got %+v", res)
	}
	if fake.Armed() != 1 {
		t.Fatalf("expected exactly 1 arm after first poll, got %d", fake.Armed())
	}
	fake.FireLatest()
	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v != 1 {
		t.Fatalf("expected item 1 after delay elapses, got %+v", res)
	}
	//2.- subsequent polls must not re-arm the one-shot timer.
	if fake.Armed() != 1 {
		t.Fatalf("expected timer to remain armed exactly once, got %d", fake.Armed())
	}
}

func TestTimingComputesIntervals(t *testing.T) {
	clock := timingtest.NewManualClock()
	upstream := reactor.FromSlice([]int{1, 2})
	p := timing.Timing[int](upstream, clock)

	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v.Interval != nil {
		t.Fatalf("expected first item with nil interval, got %+v", v)
	}
	clock.Advance(500)
	res = p.Poll(reactor.NoopWaker)
	v, ok = res.Value()
	if !ok || v.Interval == nil || *v.Interval != 500 {
		t.Fatalf("expected second item with interval 500, got %+v", v)
	}
}

func TestDelayEveryPreservesUpstreamOrder(t *testing.T) {
	fake := timingtest.NewFakeDelayFactory[int]()
	upstream := reactor.FromSlice([]int{1, 2})
	p := timing.DelayEvery[int](upstream, fake.Factory(), 0)

	p.Poll(reactor.NoopWaker) // arms timer for 1
	p.Poll(reactor.NoopWaker) // arms timer for 2

	//1.- firing the second timer first must not emit out of order.
	fake.Fire(1)
	if res := p.Poll(reactor.NoopWaker); !res.IsPending() {
		t.Fatalf("expected pending: head item 1 not yet elapsed, got %+v", res)
	}
	//2.- now fire the first timer: item 1 emits, then item 2 immediately follows.
	fake.Fire(0)
	res := p.Poll(reactor.NoopWaker)
	v, ok := res.Value()
	if !ok || v != 1 {
		t.Fatalf("expected item 1, got %+v", res)
	}
	res = p.Poll(reactor.NoopWaker)
	v, ok = res.Value()
	if !ok || v != 2 {
		t.Fatalf("expected item 2, got %+v", res)
	}
}
