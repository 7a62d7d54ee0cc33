package subject

import (
	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/internal/broadcast"
)

// eventify wraps a plain Pullable[T] into a Pullable[Event[T]], boxing each
// item as it comes off the upstream. Share* operators multiplex one upstream
// across many subscribers, and subscribers of a broadcast buffer always
// receive Event[T] (spec §3), so every item crossing into a Buffer is boxed
// exactly once, at the point it is first pulled from upstream — never once
// per subscriber.
func eventify[T any](upstream reactor.Pullable[T]) reactor.Pullable[reactor.Event[T]] {
	return reactor.PullFunc[reactor.Event[T]](func(w reactor.Waker) reactor.Result[reactor.Event[T]] {
		res := upstream.Poll(w)
		if v, ok := res.Value(); ok {
			return reactor.Item(reactor.NewEvent(v))
		}
		if res.IsDone() {
			return reactor.Done[reactor.Event[T]]()
		}
		return reactor.Pending[reactor.Event[T]]()
	})
}

// Share adapts any Pullable into a broadcast Observable with Publish
// semantics: cloning the Observable is the only way to obtain a second
// subscriber, and subscribers created after an item was delivered do not
// observe it.
func Share[T any](upstream reactor.Pullable[T]) *Observable[T] {
	buf := broadcast.NewFromUpstream[reactor.Event[T]](broadcast.Policy{Mode: broadcast.ReplayNone}, eventify(upstream))
	return newObservable(buf)
}

// ShareBehavior adapts any Pullable into a broadcast Observable with Behavior
// semantics: every subscriber immediately observes the most recently
// delivered item once at least one has arrived.
func ShareBehavior[T any](upstream reactor.Pullable[T]) *Observable[T] {
	buf := broadcast.NewFromUpstream[reactor.Event[T]](broadcast.Policy{Mode: broadcast.ReplayLast1}, eventify(upstream))
	return newObservable(buf)
}

// ShareReplay adapts any Pullable into a broadcast Observable with Replay
// semantics, retaining up to capHint items (all items when capHint < 0).
// capHint == 0 is treated as equivalent to Share: nothing is replayed.
func ShareReplay[T any](upstream reactor.Pullable[T], capHint int) *Observable[T] {
	mode := broadcast.ReplayAllUpTo
	if capHint == 0 {
		mode = broadcast.ReplayNone
	}
	if capHint < 0 {
		capHint = 0
	}
	buf := broadcast.NewFromUpstream[reactor.Event[T]](broadcast.Policy{Mode: mode, Cap: capHint}, eventify(upstream))
	return newObservable(buf)
}
