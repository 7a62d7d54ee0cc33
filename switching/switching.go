// Package switching implements spec §4.3's switch_map, race, and
// with_latest_from — operators whose correctness hinges on ordering between
// an element stream and a second, dynamically-changing Pullable.
package switching

import "github.com/kestrel-stream/reactor"

// switchMap holds the current inner stream produced by f applied to the most
// recent upstream item, per spec §4.3.
type switchMap[T, U any] struct {
	upstream reactor.Pullable[T]
	f        func(T) reactor.Pullable[U]
	inner    reactor.Pullable[U]
	upDone   bool
}

// SwitchMap replaces the active inner stream every time upstream produces a
// new item, dropping whatever the previous inner was doing. Terminal once
// upstream is done and there is no live inner.
func SwitchMap[T, U any](upstream reactor.Pullable[T], f func(T) reactor.Pullable[U]) reactor.Pullable[U] {
	s := &switchMap[T, U]{upstream: upstream, f: f}
	return reactor.PullFunc[U](s.poll)
}

func (s *switchMap[T, U]) poll(waker reactor.Waker) reactor.Result[U] {
	for {
		// gotNew records that upstream yielded an item this pass rather than
		// suspending, so it must be polled again before returning Pending.
		gotNew := false
		if !s.upDone {
			res := s.upstream.Poll(waker)
			if v, ok := res.Value(); ok {
				s.inner = s.f(v)
				gotNew = true
			} else if res.IsDone() {
				s.upDone = true
			}
		}

		if s.inner != nil {
			res := s.inner.Poll(waker)
			if v, ok := res.Value(); ok {
				return reactor.Item(v)
			}
			if res.IsDone() {
				s.inner = nil
			} else if !gotNew {
				return reactor.Pending[U]()
			}
		}

		if s.upDone && s.inner == nil {
			return reactor.Done[U]()
		}
		if !gotNew {
			return reactor.Pending[U]()
		}
	}
}

// raceState tracks which side (if any) has won.
type raceState uint8

const (
	raceUndecided raceState = iota
	raceWonA
	raceWonB
)

type race[T any] struct {
	a, b  reactor.Pullable[T]
	state raceState
	first bool
}

// Race polls both a and b exactly once on the first call; the first to yield
// an item wins and is polled exclusively thereafter, per spec §4.3.
func Race[T any](a, b reactor.Pullable[T]) reactor.Pullable[T] {
	r := &race[T]{a: a, b: b}
	return reactor.PullFunc[T](r.poll)
}

func (r *race[T]) poll(waker reactor.Waker) reactor.Result[T] {
	switch r.state {
	case raceWonA:
		return r.a.Poll(waker)
	case raceWonB:
		return r.b.Poll(waker)
	}

	ra := r.a.Poll(waker)
	rb := r.b.Poll(waker)
	if v, ok := ra.Value(); ok {
		r.state = raceWonA
		return reactor.Item(v)
	}
	aDone := ra.IsDone()

	if v, ok := rb.Value(); ok {
		r.state = raceWonB
		return reactor.Item(v)
	}
	bDone := rb.IsDone()

	switch {
	case aDone && bDone:
		return reactor.Done[T]()
	case aDone:
		r.state = raceWonB
		return reactor.Pending[T]()
	case bDone:
		r.state = raceWonA
		return reactor.Pending[T]()
	default:
		return reactor.Pending[T]()
	}
}

// withLatestFrom maintains latestOther, continuously refreshed by opportunistic,
// non-blocking polls of other.
type withLatestFrom[T, U, R any] struct {
	upstream    reactor.Pullable[T]
	other       reactor.Pullable[U]
	otherDone   bool
	combine     func(T, U) R
	latestOther U
	haveOther   bool
}

// WithLatestFrom emits combine(x, y) whenever upstream produces x and other
// has most recently produced some y; upstream items observed before other's
// first value are dropped, per spec §4.3.
func WithLatestFrom[T, U, R any](upstream reactor.Pullable[T], other reactor.Pullable[U], combine func(T, U) R) reactor.Pullable[R] {
	w := &withLatestFrom[T, U, R]{upstream: upstream, other: other, combine: combine}
	return reactor.PullFunc[R](w.poll)
}

func (w *withLatestFrom[T, U, R]) poll(waker reactor.Waker) reactor.Result[R] {
	if !w.otherDone {
		res := w.other.Poll(waker)
		if v, ok := res.Value(); ok {
			w.latestOther = v
			w.haveOther = true
		} else if res.IsDone() {
			w.otherDone = true
		}
	}

	res := w.upstream.Poll(waker)
	if v, ok := res.Value(); ok {
		if !w.haveOther {
			return reactor.Pending[R]()
		}
		return reactor.Item(w.combine(v, w.latestOther))
	}
	if res.IsDone() {
		return reactor.Done[R]()
	}
	return reactor.Pending[R]()
}
