package subject

import (
	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/internal/broadcast"
)

// Observable is a subscriber handle onto a broadcast buffer shared by a
// Subject or a share* operator (Share, ShareBehavior, ShareReplay in this
// package). It implements
// reactor.Pullable[reactor.Event[T]]. Cloning an Observable obtains a second,
// independent subscriber with its own cursor positioned per the buffer's
// replay policy; dropping one (Close) retires its cursor.
type Observable[T any] struct {
	buf *broadcast.Buffer[reactor.Event[T]]
	id  uint64
}

func newObservable[T any](buf *broadcast.Buffer[reactor.Event[T]]) *Observable[T] {
	return &Observable[T]{buf: buf, id: buf.Subscribe()}
}

// NewObservableFromBuffer wraps an existing internal/broadcast.Buffer as a new
// subscriber Observable. Exported for other core packages (e.g. buffering's
// window operator) that construct their own ephemeral buffers but still want
// to hand callers the standard Observable handle.
func NewObservableFromBuffer[T any](buf *broadcast.Buffer[reactor.Event[T]]) *Observable[T] {
	return newObservable(buf)
}

// Poll implements reactor.Pullable.
func (o *Observable[T]) Poll(waker reactor.Waker) reactor.Result[reactor.Event[T]] {
	return o.buf.Poll(o.id, waker)
}

// Clone obtains a new, independently-paced subscriber onto the same buffer.
func (o *Observable[T]) Clone() *Observable[T] {
	return newObservable(o.buf)
}

// Close retires this subscriber's cursor. Safe to call more than once.
func (o *Observable[T]) Close() {
	o.buf.Unsubscribe(o.id)
}

var _ reactor.Pullable[reactor.Event[int]] = (*Observable[int])(nil)
