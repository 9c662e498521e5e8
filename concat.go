package rx

import (
	"slices"
	"sync/atomic"

	"github.com/AnatoleLucet/rx/disposable"
)

// Concat subscribes to sources one at a time, forwarding each one's values in
// order and moving to the next when the current one completes. It completes
// after the last source, and stops at the first error.
//
// At most one source is subscribed at any time: the downstream observer tracks
// only the live source's upstream, and the previous one is released the moment
// Concat moves on.
func Concat[T any](sources ...Observable[T]) *BaseObservable[T, concatStrategy[T]] {
	return MakeObservable[T](concatStrategy[T]{sources: slices.Clone(sources)})
}

type concatStrategy[T any] struct {
	sources []Observable[T]
}

func (s concatStrategy[T]) Subscribe(observer Observer[T]) {
	state := &concatState[T]{
		sources:    s.sources,
		downstream: observer,
		current:    disposable.NewSerial(),
	}
	observer.SetUpstream(state.current)

	state.drain()
}

const (
	concatIdle int32 = iota
	concatSubscribing
	concatCompletedWhileSubscribing
)

type concatState[T any] struct {
	sources    []Observable[T]
	next       int
	downstream Observer[T]

	// upstream of the live source, swapped on every move
	current *disposable.Serial

	stage atomic.Int32
}

// drain subscribes to the remaining sources. Sources that complete while they
// are being subscribed are handled by looping here rather than by recursion.
func (s *concatState[T]) drain() {
	for {
		if s.downstream.IsDisposed() {
			return
		}

		s.current.Set(nil)

		if s.next == len(s.sources) {
			s.downstream.OnCompleted()
			return
		}

		source := s.sources[s.next]
		s.next++

		s.stage.Store(concatSubscribing)
		source.Subscribe(NewBaseObserver[T](&concatInner[T]{state: s}))

		if s.stage.CompareAndSwap(concatSubscribing, concatIdle) {
			// still running, its completion will call drain
			return
		}
	}
}

type concatInner[T any] struct {
	state *concatState[T]
}

func (c *concatInner[T]) OnNext(v T) { c.state.downstream.OnNext(v) }

func (c *concatInner[T]) OnError(err error) { c.state.downstream.OnError(err) }

func (c *concatInner[T]) OnCompleted() {
	if c.state.stage.CompareAndSwap(concatSubscribing, concatCompletedWhileSubscribing) {
		return
	}
	c.state.drain()
}

func (c *concatInner[T]) IsDisposed() bool { return c.state.downstream.IsDisposed() }

func (c *concatInner[T]) SetUpstream(d disposable.Disposable) { c.state.current.Set(d) }
