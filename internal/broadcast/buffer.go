// Package broadcast implements the multiplex point described in spec §3/§4.1:
// a single upstream (either driven externally by a Subject's Push/Close calls,
// or pulled lazily from an upstream Pullable for share*) fanned out to 1..N
// independently-paced subscribers, each tracked by a sequence cursor.
//
// The design is adapted from the teacher's internal/events.Stream (sequence
// numbers, per-subscriber pending/lastAck bookkeeping, retention eviction) but
// generalised from game event envelopes to an arbitrary item type, and
// reworked from a push/channel delivery model to the poll/Waker model defined
// in package reactor.
package broadcast

import (
	"sync"

	"github.com/kestrel-stream/reactor"
)

// ReplayMode selects how a Buffer retains and replays items to new subscribers.
type ReplayMode uint8

const (
	// ReplayNone: new subscribers skip past — they only observe items
	// published after they subscribe (PublishSubject).
	ReplayNone ReplayMode = iota
	// ReplayLast1: the buffer retains exactly the most recently published
	// item; new subscribers resume from it (BehaviorSubject).
	ReplayLast1
	// ReplayAllUpTo: the buffer retains the last Cap items (or all items when
	// Cap <= 0); new subscribers resume from the oldest retained item
	// (ReplaySubject).
	ReplayAllUpTo
)

// Policy controls retention and the initial cursor position of new subscribers.
type Policy struct {
	Mode ReplayMode
	Cap  int
}

// cursor tracks one subscriber's read position and the waker it last handed
// the buffer, to be invoked once more data might be available.
type cursor struct {
	next  uint64
	waker reactor.Waker
}

// Buffer is the shared multiplex point. I is the item type flowing through it
// (Event[T] for Subjects/share, or T for plain internal use).
type Buffer[I any] struct {
	mu       sync.Mutex
	policy   Policy
	upstream reactor.Pullable[I] // nil when externally driven (Subject mode)

	nextSeq        uint64
	oldestRetained uint64
	order          []uint64
	items          map[uint64]I

	subs      map[uint64]*cursor
	nextSubID uint64

	terminal   bool
	driverHeld bool
}

// New constructs a Buffer with no upstream; items arrive via Push/Close
// (Subject mode).
func New[I any](policy Policy) *Buffer[I] {
	return &Buffer[I]{
		policy: policy,
		items:  make(map[uint64]I),
		subs:   make(map[uint64]*cursor),
	}
}

// NewFromUpstream constructs a Buffer that lazily pulls from upstream,
// electing one subscriber at a time as the driver (share*, §4.1).
func NewFromUpstream[I any](policy Policy, upstream reactor.Pullable[I]) *Buffer[I] {
	b := New[I](policy)
	b.upstream = upstream
	return b
}

// Subscribe registers a new subscriber and returns its id, with the cursor
// positioned per the buffer's replay policy.
func (b *Buffer[I]) Subscribe() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSubID
	b.nextSubID++

	var start uint64
	switch b.policy.Mode {
	case ReplayNone:
		start = b.nextSeq
	default: // ReplayLast1, ReplayAllUpTo
		if len(b.order) > 0 {
			start = b.order[0]
		} else {
			start = b.nextSeq
		}
	}
	b.subs[id] = &cursor{next: start}
	return id
}

// Unsubscribe retires a subscriber id, allowing its retained items to be
// evicted once no other cursor references them.
func (b *Buffer[I]) Unsubscribe(id uint64) {
	b.mu.Lock()
	delete(b.subs, id)
	b.enforceRetentionLocked()
	b.mu.Unlock()
}

// Push appends an externally-produced item (Subject mode). No-op once the
// buffer is terminal.
func (b *Buffer[I]) Push(v I) {
	b.mu.Lock()
	if b.terminal {
		b.mu.Unlock()
		return
	}
	wakers := b.appendLocked(v)
	b.mu.Unlock()
	wakeAll(wakers)
}

// Close marks the buffer terminal (Subject mode). Pending events already
// appended still drain normally; after drain every cursor observes Done.
func (b *Buffer[I]) Close() {
	b.mu.Lock()
	if b.terminal {
		b.mu.Unlock()
		return
	}
	b.terminal = true
	wakers := b.collectWakersLocked()
	b.mu.Unlock()
	wakeAll(wakers)
}

// appendLocked assigns the next sequence number to v, stores it, applies the
// retention policy, and returns the set of subscriber wakers to notify once
// the lock is released (spec §5: never hold the guard while invoking wakers).
func (b *Buffer[I]) appendLocked(v I) []reactor.Waker {
	seq := b.nextSeq
	b.nextSeq++
	b.items[seq] = v
	b.order = append(b.order, seq)
	b.enforceRetentionLocked()
	return b.collectWakersLocked()
}

func (b *Buffer[I]) collectWakersLocked() []reactor.Waker {
	wakers := make([]reactor.Waker, 0, len(b.subs))
	for _, c := range b.subs {
		if c.waker != nil {
			wakers = append(wakers, c.waker)
			c.waker = nil
		}
	}
	return wakers
}

func wakeAll(wakers []reactor.Waker) {
	for _, w := range wakers {
		w.Wake()
	}
}

// enforceRetentionLocked applies the buffer's policy, evicting items that no
// longer need to be retained and fast-forwarding cursors per spec's eviction
// invariant (§3).
func (b *Buffer[I]) enforceRetentionLocked() {
	switch b.policy.Mode {
	case ReplayNone:
		b.evictUnreferencedLocked()
	case ReplayLast1:
		b.evictAllButLastLocked()
	case ReplayAllUpTo:
		b.evictOverCapLocked()
	}
	if len(b.order) > 0 {
		b.oldestRetained = b.order[0]
	} else {
		b.oldestRetained = b.nextSeq
	}
}

// evictUnreferencedLocked drops items once every cursor has read past them
// (Publish policy: nothing is replayed, so retention exists only to let
// already-subscribed, slower cursors catch up).
func (b *Buffer[I]) evictUnreferencedLocked() {
	min := b.nextSeq
	for _, c := range b.subs {
		if c.next < min {
			min = c.next
		}
	}
	idx := 0
	for idx < len(b.order) && b.order[idx] < min {
		delete(b.items, b.order[idx])
		idx++
	}
	if idx > 0 {
		b.order = append([]uint64(nil), b.order[idx:]...)
	}
}

// evictAllButLastLocked keeps only the most recent item (Behavior policy) and
// fast-forwards any cursor still pointing at an evicted, older item.
func (b *Buffer[I]) evictAllButLastLocked() {
	if len(b.order) <= 1 {
		return
	}
	keep := b.order[len(b.order)-1]
	for _, seq := range b.order[:len(b.order)-1] {
		delete(b.items, seq)
	}
	b.order = []uint64{keep}
	for _, c := range b.subs {
		if c.next < keep {
			c.next = keep
		}
	}
}

// evictOverCapLocked retains at most policy.Cap items (Replay(cap) policy;
// Cap<=0 means unbounded) and fast-forwards cursors past deliberately
// evicted items.
func (b *Buffer[I]) evictOverCapLocked() {
	limit := b.policy.Cap
	if limit <= 0 || len(b.order) <= limit {
		return
	}
	cut := len(b.order) - limit
	for _, seq := range b.order[:cut] {
		delete(b.items, seq)
	}
	b.order = append([]uint64(nil), b.order[cut:]...)
	newMin := b.order[0]
	for _, c := range b.subs {
		if c.next < newMin {
			c.next = newMin
		}
	}
}

// producerWaker returns a Waker that, when invoked, wakes every subscriber
// currently registered — so that whichever subscriber next polls will attempt
// to re-drive the upstream (§4.1: the buffer itself has no thread of control
// other than subscriber polls).
func (b *Buffer[I]) producerWaker() reactor.Waker {
	return reactor.WakerFunc(func() {
		b.mu.Lock()
		wakers := b.collectWakersLocked()
		b.mu.Unlock()
		wakeAll(wakers)
	})
}

// Poll implements the per-subscriber poll protocol from spec §4.1.
func (b *Buffer[I]) Poll(id uint64, waker reactor.Waker) reactor.Result[I] {
	b.mu.Lock()

	c, ok := b.subs[id]
	if !ok {
		b.mu.Unlock()
		return reactor.Done[I]()
	}

	// Step 2: fast-forward a cursor left behind by deliberate eviction.
	if c.next < b.oldestRetained {
		c.next = b.oldestRetained
	}

	// Step 1: terminal and caught up.
	if b.terminal && c.next >= b.nextSeq {
		b.mu.Unlock()
		return reactor.Done[I]()
	}

	// Step 3: an item is already available for this cursor.
	if c.next < b.nextSeq {
		v := b.items[c.next]
		c.next++
		b.enforceRetentionLocked()
		b.mu.Unlock()
		return reactor.Item(v)
	}

	// Step 4: nothing ready. Register the waker; if no driver is in flight
	// and we have an upstream to drive, become the driver for one poll.
	c.waker = waker
	if b.upstream == nil {
		b.mu.Unlock()
		return reactor.Pending[I]()
	}
	if b.driverHeld {
		b.mu.Unlock()
		return reactor.Pending[I]()
	}
	b.driverHeld = true
	b.mu.Unlock()

	res := b.upstream.Poll(b.producerWaker())

	b.mu.Lock()
	b.driverHeld = false
	if res.IsPending() {
		b.mu.Unlock()
		return reactor.Pending[I]()
	}
	if v, got := res.Value(); got {
		wakers := b.appendLocked(v)
		// Deliver directly to this subscriber if it is still registered and
		// its cursor now points at the freshly appended item.
		var out reactor.Result[I]
		if c2, still := b.subs[id]; still && c2.next < b.nextSeq {
			val := b.items[c2.next]
			c2.next++
			b.enforceRetentionLocked()
			out = reactor.Item(val)
		} else {
			out = reactor.Pending[I]()
		}
		b.mu.Unlock()
		wakeAll(wakers)
		return out
	}
	b.terminal = true
	wakers := b.collectWakersLocked()
	b.mu.Unlock()
	wakeAll(wakers)
	return reactor.Done[I]()
}

// Len reports the number of retained items, for tests and diagnostics.
func (b *Buffer[I]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// SubscriberCount reports the number of active subscribers.
func (b *Buffer[I]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
