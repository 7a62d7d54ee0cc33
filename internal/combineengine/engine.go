// Package combineengine implements the type-erased N-ary join engines behind
// package combine. Go generics have no variadic type parameter, so the
// exported package defines one small, strongly-typed wrapper per arity
// (2..9) around these two shared, []any-based engines.
package combineengine

import "github.com/kestrel-stream/reactor"

// pollable erases reactor.Pullable[T] to a uniform any-valued poll so the
// engines can hold a slice of heterogeneous upstreams.
type pollable func(reactor.Waker) (val any, done bool, pending bool)

// Erase adapts a concrete reactor.Pullable[T] to the engine's pollable shape.
func Erase[T any](p reactor.Pullable[T]) pollable {
	return func(w reactor.Waker) (any, bool, bool) {
		res := p.Poll(w)
		if v, ok := res.Value(); ok {
			return v, false, false
		}
		if res.IsDone() {
			return nil, true, false
		}
		return nil, false, true
	}
}

// CombineLatest implements spec §4.2's CombineLatest-N over n erased
// upstreams. Its Poll returns a snapshot tuple ([]any of length n) each round
// every slot holds a value and at least one was updated that round.
type CombineLatest struct {
	ups     []pollable
	has     []bool
	done    []bool
	updated []bool
	slots   []any
}

func NewCombineLatest(ups ...pollable) *CombineLatest {
	n := len(ups)
	return &CombineLatest{
		ups:     ups,
		has:     make([]bool, n),
		done:    make([]bool, n),
		updated: make([]bool, n),
		slots:   make([]any, n),
	}
}

func (c *CombineLatest) Poll(waker reactor.Waker) (tuple []any, isDone bool, isPending bool) {
	allDone := true
	for i, up := range c.ups {
		if c.done[i] {
			continue
		}
		allDone = false
		v, d, pending := up(waker)
		if pending {
			continue
		}
		if d {
			c.done[i] = true
			if !c.has[i] {
				return nil, true, false
			}
			continue
		}
		c.slots[i] = v
		c.has[i] = true
		c.updated[i] = true
	}

	ready := true
	anyUpdated := false
	for i := range c.ups {
		if !c.has[i] {
			ready = false
		}
		if c.updated[i] {
			anyUpdated = true
		}
	}

	if ready && anyUpdated {
		out := make([]any, len(c.slots))
		copy(out, c.slots)
		for i := range c.updated {
			c.updated[i] = false
		}
		return out, false, false
	}

	stillOpen := false
	for i := range c.ups {
		if !c.done[i] {
			stillOpen = true
		}
	}
	if !stillOpen {
		return nil, true, false
	}
	_ = allDone
	return nil, false, true
}

// Zip implements spec §4.2's Zip-N over n erased upstreams: a per-upstream
// FIFO queue, draining one item from each to emit a tuple once every queue
// is non-empty.
type Zip struct {
	ups    []pollable
	done   []bool
	queues [][]any
}

func NewZip(ups ...pollable) *Zip {
	n := len(ups)
	return &Zip{
		ups:    ups,
		done:   make([]bool, n),
		queues: make([][]any, n),
	}
}

func (z *Zip) Poll(waker reactor.Waker) (tuple []any, isDone bool, isPending bool) {
	for i, up := range z.ups {
		if z.done[i] || len(z.queues[i]) > 0 {
			continue
		}
		v, d, pending := up(waker)
		if pending {
			continue
		}
		if d {
			z.done[i] = true
			if len(z.queues[i]) == 0 {
				return nil, true, false
			}
			continue
		}
		z.queues[i] = append(z.queues[i], v)
	}

	ready := true
	for i := range z.ups {
		if len(z.queues[i]) == 0 {
			ready = false
			break
		}
	}
	if ready {
		out := make([]any, len(z.queues))
		for i := range z.queues {
			out[i] = z.queues[i][0]
			z.queues[i] = z.queues[i][1:]
		}
		return out, false, false
	}

	allDone := true
	anyEmptyDone := false
	for i := range z.ups {
		if !z.done[i] {
			allDone = false
		} else if len(z.queues[i]) == 0 {
			anyEmptyDone = true
		}
	}
	if allDone || anyEmptyDone {
		return nil, true, false
	}
	return nil, false, true
}
