// Package combine implements spec §4.2's CombineLatest-N and Zip-N for
// N in [2,9], as thin strongly-typed wrappers over the shared, []any-based
// engines in internal/combineengine — Go generics have no variadic type
// parameter, so each arity gets its own tuple struct and constructor.
package combine

import (
	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/internal/combineengine"
)

// Tuple2 holds one emission of a 2-ary combinator.
type Tuple2[T1 any, T2 any] struct {
	V1 T1
	V2 T2
}

// Tuple3 holds one emission of a 3-ary combinator.
type Tuple3[T1 any, T2 any, T3 any] struct {
	V1 T1
	V2 T2
	V3 T3
}

// Tuple4 holds one emission of a 4-ary combinator.
type Tuple4[T1 any, T2 any, T3 any, T4 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
}

// Tuple5 holds one emission of a 5-ary combinator.
type Tuple5[T1 any, T2 any, T3 any, T4 any, T5 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
}

// Tuple6 holds one emission of a 6-ary combinator.
type Tuple6[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
}

// Tuple7 holds one emission of a 7-ary combinator.
type Tuple7[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
}

// Tuple8 holds one emission of a 8-ary combinator.
type Tuple8[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any, T8 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
	V8 T8
}

// Tuple9 holds one emission of a 9-ary combinator.
type Tuple9[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any, T8 any, T9 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
	V8 T8
	V9 T9
}

// CombineLatest2 joins 2 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest2[T1 any, T2 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2]) reactor.Pullable[Tuple2[T1, T2]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2))
	return reactor.PullFunc[Tuple2[T1, T2]](func(w reactor.Waker) reactor.Result[Tuple2[T1, T2]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple2[T1, T2]]()
		}
		if isDone {
			return reactor.Done[Tuple2[T1, T2]]()
		}
		return reactor.Item(Tuple2[T1, T2]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
		})
	})
}

// Zip2 joins 2 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip2[T1 any, T2 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2]) reactor.Pullable[Tuple2[T1, T2]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2))
	return reactor.PullFunc[Tuple2[T1, T2]](func(w reactor.Waker) reactor.Result[Tuple2[T1, T2]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple2[T1, T2]]()
		}
		if isDone {
			return reactor.Done[Tuple2[T1, T2]]()
		}
		return reactor.Item(Tuple2[T1, T2]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
		})
	})
}

// CombineLatest3 joins 3 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest3[T1 any, T2 any, T3 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3]) reactor.Pullable[Tuple3[T1, T2, T3]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3))
	return reactor.PullFunc[Tuple3[T1, T2, T3]](func(w reactor.Waker) reactor.Result[Tuple3[T1, T2, T3]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple3[T1, T2, T3]]()
		}
		if isDone {
			return reactor.Done[Tuple3[T1, T2, T3]]()
		}
		return reactor.Item(Tuple3[T1, T2, T3]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
		})
	})
}

// Zip3 joins 3 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip3[T1 any, T2 any, T3 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3]) reactor.Pullable[Tuple3[T1, T2, T3]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3))
	return reactor.PullFunc[Tuple3[T1, T2, T3]](func(w reactor.Waker) reactor.Result[Tuple3[T1, T2, T3]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple3[T1, T2, T3]]()
		}
		if isDone {
			return reactor.Done[Tuple3[T1, T2, T3]]()
		}
		return reactor.Item(Tuple3[T1, T2, T3]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
		})
	})
}

// CombineLatest4 joins 4 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest4[T1 any, T2 any, T3 any, T4 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4]) reactor.Pullable[Tuple4[T1, T2, T3, T4]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4))
	return reactor.PullFunc[Tuple4[T1, T2, T3, T4]](func(w reactor.Waker) reactor.Result[Tuple4[T1, T2, T3, T4]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple4[T1, T2, T3, T4]]()
		}
		if isDone {
			return reactor.Done[Tuple4[T1, T2, T3, T4]]()
		}
		return reactor.Item(Tuple4[T1, T2, T3, T4]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
		})
	})
}

// Zip4 joins 4 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip4[T1 any, T2 any, T3 any, T4 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4]) reactor.Pullable[Tuple4[T1, T2, T3, T4]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4))
	return reactor.PullFunc[Tuple4[T1, T2, T3, T4]](func(w reactor.Waker) reactor.Result[Tuple4[T1, T2, T3, T4]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple4[T1, T2, T3, T4]]()
		}
		if isDone {
			return reactor.Done[Tuple4[T1, T2, T3, T4]]()
		}
		return reactor.Item(Tuple4[T1, T2, T3, T4]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
		})
	})
}

// CombineLatest5 joins 5 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest5[T1 any, T2 any, T3 any, T4 any, T5 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5]) reactor.Pullable[Tuple5[T1, T2, T3, T4, T5]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5))
	return reactor.PullFunc[Tuple5[T1, T2, T3, T4, T5]](func(w reactor.Waker) reactor.Result[Tuple5[T1, T2, T3, T4, T5]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple5[T1, T2, T3, T4, T5]]()
		}
		if isDone {
			return reactor.Done[Tuple5[T1, T2, T3, T4, T5]]()
		}
		return reactor.Item(Tuple5[T1, T2, T3, T4, T5]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
		})
	})
}

// Zip5 joins 5 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip5[T1 any, T2 any, T3 any, T4 any, T5 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5]) reactor.Pullable[Tuple5[T1, T2, T3, T4, T5]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5))
	return reactor.PullFunc[Tuple5[T1, T2, T3, T4, T5]](func(w reactor.Waker) reactor.Result[Tuple5[T1, T2, T3, T4, T5]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple5[T1, T2, T3, T4, T5]]()
		}
		if isDone {
			return reactor.Done[Tuple5[T1, T2, T3, T4, T5]]()
		}
		return reactor.Item(Tuple5[T1, T2, T3, T4, T5]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
		})
	})
}

// CombineLatest6 joins 6 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest6[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6]) reactor.Pullable[Tuple6[T1, T2, T3, T4, T5, T6]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6))
	return reactor.PullFunc[Tuple6[T1, T2, T3, T4, T5, T6]](func(w reactor.Waker) reactor.Result[Tuple6[T1, T2, T3, T4, T5, T6]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple6[T1, T2, T3, T4, T5, T6]]()
		}
		if isDone {
			return reactor.Done[Tuple6[T1, T2, T3, T4, T5, T6]]()
		}
		return reactor.Item(Tuple6[T1, T2, T3, T4, T5, T6]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
		})
	})
}

// Zip6 joins 6 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip6[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6]) reactor.Pullable[Tuple6[T1, T2, T3, T4, T5, T6]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6))
	return reactor.PullFunc[Tuple6[T1, T2, T3, T4, T5, T6]](func(w reactor.Waker) reactor.Result[Tuple6[T1, T2, T3, T4, T5, T6]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple6[T1, T2, T3, T4, T5, T6]]()
		}
		if isDone {
			return reactor.Done[Tuple6[T1, T2, T3, T4, T5, T6]]()
		}
		return reactor.Item(Tuple6[T1, T2, T3, T4, T5, T6]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
		})
	})
}

// CombineLatest7 joins 7 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest7[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6], s7 reactor.Pullable[T7]) reactor.Pullable[Tuple7[T1, T2, T3, T4, T5, T6, T7]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6), combineengine.Erase[T7](s7))
	return reactor.PullFunc[Tuple7[T1, T2, T3, T4, T5, T6, T7]](func(w reactor.Waker) reactor.Result[Tuple7[T1, T2, T3, T4, T5, T6, T7]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple7[T1, T2, T3, T4, T5, T6, T7]]()
		}
		if isDone {
			return reactor.Done[Tuple7[T1, T2, T3, T4, T5, T6, T7]]()
		}
		return reactor.Item(Tuple7[T1, T2, T3, T4, T5, T6, T7]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
			V7: tuple[6].(T7),
		})
	})
}

// Zip7 joins 7 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip7[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6], s7 reactor.Pullable[T7]) reactor.Pullable[Tuple7[T1, T2, T3, T4, T5, T6, T7]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6), combineengine.Erase[T7](s7))
	return reactor.PullFunc[Tuple7[T1, T2, T3, T4, T5, T6, T7]](func(w reactor.Waker) reactor.Result[Tuple7[T1, T2, T3, T4, T5, T6, T7]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple7[T1, T2, T3, T4, T5, T6, T7]]()
		}
		if isDone {
			return reactor.Done[Tuple7[T1, T2, T3, T4, T5, T6, T7]]()
		}
		return reactor.Item(Tuple7[T1, T2, T3, T4, T5, T6, T7]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
			V7: tuple[6].(T7),
		})
	})
}

// CombineLatest8 joins 8 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest8[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any, T8 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6], s7 reactor.Pullable[T7], s8 reactor.Pullable[T8]) reactor.Pullable[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6), combineengine.Erase[T7](s7), combineengine.Erase[T8](s8))
	return reactor.PullFunc[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]](func(w reactor.Waker) reactor.Result[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]]()
		}
		if isDone {
			return reactor.Done[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]]()
		}
		return reactor.Item(Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
			V7: tuple[6].(T7),
			V8: tuple[7].(T8),
		})
	})
}

// Zip8 joins 8 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip8[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any, T8 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6], s7 reactor.Pullable[T7], s8 reactor.Pullable[T8]) reactor.Pullable[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6), combineengine.Erase[T7](s7), combineengine.Erase[T8](s8))
	return reactor.PullFunc[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]](func(w reactor.Waker) reactor.Result[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]]()
		}
		if isDone {
			return reactor.Done[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]]()
		}
		return reactor.Item(Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
			V7: tuple[6].(T7),
			V8: tuple[7].(T8),
		})
	})
}

// CombineLatest9 joins 9 upstreams under spec §4.2's CombineLatest-N rule:
// a tuple is emitted whenever every slot holds a value and at least one was
// updated that round.
func CombineLatest9[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any, T8 any, T9 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6], s7 reactor.Pullable[T7], s8 reactor.Pullable[T8], s9 reactor.Pullable[T9]) reactor.Pullable[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]] {
	eng := combineengine.NewCombineLatest(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6), combineengine.Erase[T7](s7), combineengine.Erase[T8](s8), combineengine.Erase[T9](s9))
	return reactor.PullFunc[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]](func(w reactor.Waker) reactor.Result[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]]()
		}
		if isDone {
			return reactor.Done[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]]()
		}
		return reactor.Item(Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
			V7: tuple[6].(T7),
			V8: tuple[7].(T8),
			V9: tuple[8].(T9),
		})
	})
}

// Zip9 joins 9 upstreams under spec §4.2's Zip-N rule: per-upstream FIFO
// queues, emitting a tuple once every queue is non-empty.
func Zip9[T1 any, T2 any, T3 any, T4 any, T5 any, T6 any, T7 any, T8 any, T9 any](s1 reactor.Pullable[T1], s2 reactor.Pullable[T2], s3 reactor.Pullable[T3], s4 reactor.Pullable[T4], s5 reactor.Pullable[T5], s6 reactor.Pullable[T6], s7 reactor.Pullable[T7], s8 reactor.Pullable[T8], s9 reactor.Pullable[T9]) reactor.Pullable[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]] {
	eng := combineengine.NewZip(combineengine.Erase[T1](s1), combineengine.Erase[T2](s2), combineengine.Erase[T3](s3), combineengine.Erase[T4](s4), combineengine.Erase[T5](s5), combineengine.Erase[T6](s6), combineengine.Erase[T7](s7), combineengine.Erase[T8](s8), combineengine.Erase[T9](s9))
	return reactor.PullFunc[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]](func(w reactor.Waker) reactor.Result[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]] {
		tuple, isDone, isPending := eng.Poll(w)
		if isPending {
			return reactor.Pending[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]]()
		}
		if isDone {
			return reactor.Done[Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]]()
		}
		return reactor.Item(Tuple9[T1, T2, T3, T4, T5, T6, T7, T8, T9]{
			V1: tuple[0].(T1),
			V2: tuple[1].(T2),
			V3: tuple[2].(T3),
			V4: tuple[3].(T4),
			V5: tuple[4].(T5),
			V6: tuple[5].(T6),
			V7: tuple[6].(T7),
			V8: tuple[7].(T8),
			V9: tuple[8].(T9),
		})
	})
}

