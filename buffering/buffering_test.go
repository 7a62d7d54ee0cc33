package buffering

import (
	"testing"

	"github.com/kestrel-stream/reactor"
	"github.com/kestrel-stream/reactor/subject"
)

func countPredicate[T any](n int) Predicate[T] {
	return PredicateFunc[T](func(accum []T, count int) bool { return count >= n })
}

func nextBufferItem(t *testing.T, p reactor.Pullable[[]int]) ([]int, bool) {
	t.Helper()
	for i := 0; i < 16; i++ {
		res := p.Poll(reactor.NoopWaker)
		if v, ok := res.Value(); ok {
			return v, true
		}
		if res.IsDone() {
			return nil, false
		}
	}
	t.Fatalf("buffer did not produce an item or done within 16 polls")
	return nil, false
}

func TestBufferFlushesEveryN(t *testing.T) {
	upstream := reactor.FromSlice([]int{1, 2, 3, 4, 5})
	p := Buffer[int](upstream, countPredicate[int](2))

	v, ok := nextBufferItem(t, p)
	if !ok || len(v) != 2 || v[0] != 1 || v[1] != 2 {
		t.Fatalf("expected [1 2], got %+v ok=%v", v, ok)
	}
	v, ok = nextBufferItem(t, p)
	if !ok || len(v) != 2 || v[0] != 3 || v[1] != 4 {
		t.Fatalf("expected [3 4], got %+v ok=%v", v, ok)
	}
	//1.- trailing partial buffer [5] flushes once on upstream completion.
	v, ok = nextBufferItem(t, p)
	if !ok || len(v) != 1 || v[0] != 5 {
		t.Fatalf("expected trailing [5], got %+v ok=%v", v, ok)
	}
	_, ok = nextBufferItem(t, p)
	if ok {
		t.Fatalf("expected done after trailing flush")
	}
}

func drainWindowed(t *testing.T, upstream reactor.Pullable[int], windowSize int) [][]int {
	t.Helper()
	p := Window[int](upstream, countPredicate[int](windowSize))
	var out [][]int
	var curObs *subject.Observable[int]

	drainCurrent := func() {
		if curObs == nil {
			return
		}
		idx := len(out) - 1
		for {
			r := curObs.Poll(reactor.NoopWaker)
			ev, ok := r.Value()
			if !ok {
				return
			}
			out[idx] = append(out[idx], ev.Value())
		}
	}

	for i := 0; i < 64; i++ {
		res := p.Poll(reactor.NoopWaker)
		if v, ok := res.Value(); ok {
			out = append(out, nil)
			curObs = v
			drainCurrent()
			continue
		}
		if res.IsDone() {
			break
		}
		drainCurrent()
	}
	return out
}

func TestWindowCount3Scenario(t *testing.T) {
	//1.- window count=3 over 0..=8 -> three windows of three items each,
	// matching the spec's enumerated-window-index scenario content.
	upstream := reactor.FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7, 8})
	got := drainWindowed(t, upstream, 3)

	want := [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}
	if len(got) != len(want) {
		t.Fatalf("expected %d windows, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("window %d: expected %v, got %v", i, want[i], got[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("window %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	}
}
