// Package ops implements the trivial operators named in spec §9: start_with,
// end_with, pairwise, distinct, distinct_until_changed, inspect_done,
// materialize, and dematerialize. Mechanical once the core (package reactor,
// internal/broadcast, subject, combine, switching, timing, buffering) is in
// place, as the spec's scope note says.
package ops

import "github.com/kestrel-stream/reactor"

// StartWith prepends items to upstream's sequence.
func StartWith[T any](upstream reactor.Pullable[T], items ...T) reactor.Pullable[T] {
	i := 0
	return reactor.PullFunc[T](func(waker reactor.Waker) reactor.Result[T] {
		if i < len(items) {
			v := items[i]
			i++
			return reactor.Item(v)
		}
		return upstream.Poll(waker)
	})
}

// EndWith appends items once upstream completes.
func EndWith[T any](upstream reactor.Pullable[T], items ...T) reactor.Pullable[T] {
	upDone := false
	i := 0
	return reactor.PullFunc[T](func(waker reactor.Waker) reactor.Result[T] {
		if !upDone {
			res := upstream.Poll(waker)
			if v, ok := res.Value(); ok {
				return reactor.Item(v)
			}
			if res.IsDone() {
				upDone = true
			} else {
				return reactor.Pending[T]()
			}
		}
		if i < len(items) {
			v := items[i]
			i++
			return reactor.Item(v)
		}
		return reactor.Done[T]()
	})
}

// Pair holds two consecutive upstream items.
type Pair[T any] struct {
	Prev T
	Cur  T
}

// Pairwise emits (previous, current) for each item after the first.
func Pairwise[T any](upstream reactor.Pullable[T]) reactor.Pullable[Pair[T]] {
	var prev T
	have := false
	return reactor.PullFunc[Pair[T]](func(waker reactor.Waker) reactor.Result[Pair[T]] {
		for {
			res := upstream.Poll(waker)
			v, ok := res.Value()
			if !ok {
				if res.IsDone() {
					return reactor.Done[Pair[T]]()
				}
				return reactor.Pending[Pair[T]]()
			}
			if !have {
				prev = v
				have = true
				continue
			}
			out := Pair[T]{Prev: prev, Cur: v}
			prev = v
			return reactor.Item(out)
		}
	})
}

// Distinct suppresses items that have already been seen (by key). keyOf
// extracts the comparable membership key; identity is the common case
// (Distinct(upstream, func(v T) T { return v })) for comparable T.
func Distinct[T any, K comparable](upstream reactor.Pullable[T], keyOf func(T) K) reactor.Pullable[T] {
	seen := make(map[K]struct{})
	return reactor.PullFunc[T](func(waker reactor.Waker) reactor.Result[T] {
		for {
			res := upstream.Poll(waker)
			v, ok := res.Value()
			if !ok {
				if res.IsDone() {
					return reactor.Done[T]()
				}
				return reactor.Pending[T]()
			}
			k := keyOf(v)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			return reactor.Item(v)
		}
	})
}

// DistinctUntilChanged suppresses an item equal to the immediately preceding
// one (spec §8 invariant 6: no two adjacent outputs are equal).
func DistinctUntilChanged[T comparable](upstream reactor.Pullable[T]) reactor.Pullable[T] {
	var prev T
	have := false
	return reactor.PullFunc[T](func(waker reactor.Waker) reactor.Result[T] {
		for {
			res := upstream.Poll(waker)
			v, ok := res.Value()
			if !ok {
				if res.IsDone() {
					return reactor.Done[T]()
				}
				return reactor.Pending[T]()
			}
			if have && v == prev {
				continue
			}
			prev = v
			have = true
			return reactor.Item(v)
		}
	})
}

// InspectDone invokes onDone exactly once, the moment upstream first yields
// Done; otherwise passes items through unchanged.
func InspectDone[T any](upstream reactor.Pullable[T], onDone func()) reactor.Pullable[T] {
	fired := false
	return reactor.PullFunc[T](func(waker reactor.Waker) reactor.Result[T] {
		res := upstream.Poll(waker)
		if res.IsDone() && !fired {
			fired = true
			onDone()
		}
		return res
	})
}

// Notification is the materialized form of one Pullable event: either an item
// or the terminal signal, never both (spec §8 invariant 7: materialize ∘
// dematerialize = id).
type Notification[T any] struct {
	Done  bool
	Value T
}

// Materialize turns upstream's item/terminal events into a stream of
// Notification values, itself terminating (with no explicit terminal
// Notification repeated) immediately after emitting the Done notification.
func Materialize[T any](upstream reactor.Pullable[T]) reactor.Pullable[Notification[T]] {
	emittedDone := false
	return reactor.PullFunc[Notification[T]](func(waker reactor.Waker) reactor.Result[Notification[T]] {
		if emittedDone {
			return reactor.Done[Notification[T]]()
		}
		res := upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			return reactor.Item(Notification[T]{Value: v})
		}
		if res.IsDone() {
			emittedDone = true
			return reactor.Item(Notification[T]{Done: true})
		}
		return reactor.Pending[Notification[T]]()
	})
}

// Dematerialize inverts Materialize: a Done notification terminates the
// stream; other notifications unwrap to their carried value.
func Dematerialize[T any](upstream reactor.Pullable[Notification[T]]) reactor.Pullable[T] {
	return reactor.PullFunc[T](func(waker reactor.Waker) reactor.Result[T] {
		res := upstream.Poll(waker)
		n, ok := res.Value()
		if !ok {
			if res.IsDone() {
				return reactor.Done[T]()
			}
			return reactor.Pending[T]()
		}
		if n.Done {
			return reactor.Done[T]()
		}
		return reactor.Item(n.Value)
	})
}
