// Package subject implements the externally-driven reactive sources described
// in spec §3/§6: PublishSubject, BehaviorSubject, and ReplaySubject, plus the
// Observable subscriber handle shared by Subjects and the share* family of
// operators (share.go).
package subject

import (
	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/internal/broadcast"
)

// Subject owns exactly one broadcast buffer and exposes the producer-side API:
// Next, Close, Subscribe. T is the payload type; Subjects always emit
// Event[T] to subscribers (spec §3).
type Subject[T any] struct {
	buf *broadcast.Buffer[reactor.Event[T]]
}

// Next publishes a value to every current and future subscriber (subject to
// each one's replay policy). No-op after Close.
func (s *Subject[T]) Next(v T) {
	s.buf.Push(reactor.NewEvent(v))
}

// Close marks the subject terminal. Already-published events still drain to
// each subscriber before it observes Done.
func (s *Subject[T]) Close() {
	s.buf.Close()
}

// Subscribe returns a new Observable handle with its cursor positioned per the
// subject's replay policy.
func (s *Subject[T]) Subscribe() *Observable[T] {
	return newObservable(s.buf)
}

// NewPublishSubject constructs a Subject whose subscribers only observe
// events published after they subscribe.
func NewPublishSubject[T any]() *Subject[T] {
	return &Subject[T]{buf: broadcast.New[reactor.Event[T]](broadcast.Policy{Mode: broadcast.ReplayNone})}
}

// NewBehaviorSubject constructs a Subject seeded with an initial value; every
// subscriber immediately observes the most recently published value (seed or
// later), per spec §3.
func NewBehaviorSubject[T any](seed T) *Subject[T] {
	s := &Subject[T]{buf: broadcast.New[reactor.Event[T]](broadcast.Policy{Mode: broadcast.ReplayLast1})}
	s.Next(seed)
	return s
}

// NewReplaySubject constructs a Subject that retains up to capHint events for
// replay to new subscribers, or all events when capHint <= 0 (the Go
// encoding of spec §3's optional "Replay(cap?)" — no cap means unbounded
// retention).
func NewReplaySubject[T any](capHint int) *Subject[T] {
	if capHint < 0 {
		capHint = 0
	}
	return &Subject[T]{buf: broadcast.New[reactor.Event[T]](broadcast.Policy{Mode: broadcast.ReplayAllUpTo, Cap: capHint})}
}
