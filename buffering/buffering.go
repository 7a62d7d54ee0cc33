// Package buffering implements spec §4.5's buffer and window operators, both
// driven by an asynchronous predicate over the accumulated items so far.
package buffering

import (
	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/internal/broadcast"
	"github.com/kestrel-stream/reactor/subject"
)

// Predicate is polled after every accumulated item; it resolves to a boolean
// asynchronously, mirroring the DelayFactory/Completable shape used by
// package timing but specialised to a yes/no flush decision.
type Predicate[T any] interface {
	// Poll is called once per round while a decision is outstanding. accum is
	// the items accumulated so far in the current window; count is len(accum).
	// Returns (decided, flush). The operator holds one Predicate for its whole
	// lifetime and never resets or replaces it; an implementation that keeps
	// state across decisions has to reset that state itself after reporting
	// decided.
	Poll(waker reactor.Waker, accum []T, count int) (decided bool, flush bool)
}

// PredicateFunc adapts a plain function to Predicate, for stateless predicates
// that decide synchronously (decided is always true).
type PredicateFunc[T any] func(accum []T, count int) bool

// Poll implements Predicate.
func (f PredicateFunc[T]) Poll(_ reactor.Waker, accum []T, count int) (bool, bool) {
	return true, f(accum, count)
}

type bufferOp[T any] struct {
	upstream reactor.Pullable[T]
	pred     Predicate[T]
	accum    []T
	upDone   bool
}

// Buffer accumulates upstream items into a slice; after each item, pred is
// consulted and once it resolves true, the slice is emitted and reset. A
// non-empty trailing buffer is flushed once when upstream completes.
func Buffer[T any](upstream reactor.Pullable[T], pred Predicate[T]) reactor.Pullable[[]T] {
	b := &bufferOp[T]{upstream: upstream, pred: pred}
	return reactor.PullFunc[[]T](b.poll)
}

func (b *bufferOp[T]) poll(waker reactor.Waker) reactor.Result[[]T] {
	if !b.upDone {
		res := b.upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			b.accum = append(b.accum, v)
		} else if res.IsDone() {
			b.upDone = true
			if len(b.accum) > 0 {
				out := b.accum
				b.accum = nil
				return reactor.Item(out)
			}
			return reactor.Done[[]T]()
		}
	}

	if len(b.accum) > 0 {
		decided, flush := b.pred.Poll(waker, b.accum, len(b.accum))
		if decided && flush {
			out := b.accum
			b.accum = nil
			return reactor.Item(out)
		}
	}

	if b.upDone && len(b.accum) == 0 {
		return reactor.Done[[]T]()
	}
	return reactor.Pending[[]T]()
}

// windowOp produces a stream-of-streams; each inner window is an Observable
// backed by an ephemeral Publish-policy broadcast buffer (spec §4.5: "simple
// FIFO to a single consumer").
type windowOp[T any] struct {
	upstream reactor.Pullable[T]
	pred     Predicate[T]

	accum       []T
	cur         *broadcast.Buffer[reactor.Event[T]]
	curObs      *subject.Observable[T]
	emittedCur  bool
	outerClosed bool
	upDone      bool
}

// Window produces an Observable[T] per window, opening a new one on the next
// upstream item after pred resolves true for the current window. Upstream
// completion closes the current inner, then terminates the outer.
func Window[T any](upstream reactor.Pullable[T], pred Predicate[T]) reactor.Pullable[*subject.Observable[T]] {
	w := &windowOp[T]{upstream: upstream, pred: pred}
	return reactor.PullFunc[*subject.Observable[T]](w.poll)
}

func (w *windowOp[T]) openWindow() {
	w.cur = broadcast.New[reactor.Event[T]](broadcast.Policy{Mode: broadcast.ReplayNone})
	// Subscribe before any item can be pushed: a ReplayNone subscriber
	// created after a push would skip straight past it.
	w.curObs = subject.NewObservableFromBuffer[T](w.cur)
	w.accum = nil
	w.emittedCur = false
}

func (w *windowOp[T]) poll(waker reactor.Waker) reactor.Result[*subject.Observable[T]] {
	if w.outerClosed {
		return reactor.Done[*subject.Observable[T]]()
	}

	if w.cur == nil {
		w.openWindow()
	}

	if !w.upDone {
		res := w.upstream.Poll(waker)
		if v, ok := res.Value(); ok {
			w.accum = append(w.accum, v)
			w.cur.Push(reactor.NewEvent(v))
		} else if res.IsDone() {
			w.upDone = true
			w.cur.Close()
			w.outerClosed = true
		}
	}

	if !w.emittedCur && !w.outerClosed && len(w.accum) > 0 {
		w.emittedCur = true
		return reactor.Item(w.curObs)
	}

	if !w.upDone && len(w.accum) > 0 {
		decided, flush := w.pred.Poll(waker, w.accum, len(w.accum))
		if decided && flush {
			w.cur.Close()
			w.openWindow()
			// The next inner Observable is emitted once the next upstream
			// item arrives and is pushed into the freshly opened window,
			// per spec §4.5 ("open a new one on the next upstream item").
		}
	}

	if w.outerClosed {
		return reactor.Done[*subject.Observable[T]]()
	}
	return reactor.Pending[*subject.Observable[T]]()
}
