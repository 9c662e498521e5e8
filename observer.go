package rx

import (
	"sync/atomic"

	"github.com/AnatoleLucet/rx/disposable"
	"github.com/AnatoleLucet/rx/schedulers"
)

// Observer consumes one subscription: zero or more OnNext, then at most one
// OnError or OnCompleted. Once terminated or disposed it ignores everything.
type Observer[T any] interface {
	OnNext(v T)
	OnError(err error)
	OnCompleted()

	// IsDisposed reports whether the observer still wants signals.
	// Producers check it before doing work.
	IsDisposed() bool

	// SetUpstream registers the resource the producer uses for this
	// subscription, so that disposing the observer releases it. A second call
	// replaces (and releases) the previous upstream.
	SetUpstream(d disposable.Disposable)
}

// ObserverStrategy is what an observer does with each signal. It has the
// Observer method set but none of the protocol guarantees; BaseObserver adds them.
type ObserverStrategy[T any] interface {
	OnNext(v T)
	OnError(err error)
	OnCompleted()
	IsDisposed() bool
	SetUpstream(d disposable.Disposable)
}

// BaseObserver enforces the protocol around a strategy: nothing is delivered
// after a terminal signal or disposal, and the first terminal signal wins even
// if the producer misbehaves.
//
// S is the concrete strategy type, so the strategy is stored inline. Use
// AsDynamic when the concrete type can't be named.
type BaseObserver[T any, S ObserverStrategy[T]] struct {
	strategy S
	stopped  atomic.Bool
}

// NewBaseObserver wraps strategy.
func NewBaseObserver[T any, S ObserverStrategy[T]](strategy S) *BaseObserver[T, S] {
	return &BaseObserver[T, S]{strategy: strategy}
}

func (o *BaseObserver[T, S]) OnNext(v T) {
	if !o.IsDisposed() {
		o.strategy.OnNext(v)
	}
}

func (o *BaseObserver[T, S]) OnError(err error) {
	if o.strategy.IsDisposed() || !o.stopped.CompareAndSwap(false, true) {
		return
	}
	o.strategy.OnError(err)
}

func (o *BaseObserver[T, S]) OnCompleted() {
	if o.strategy.IsDisposed() || !o.stopped.CompareAndSwap(false, true) {
		return
	}
	o.strategy.OnCompleted()
}

func (o *BaseObserver[T, S]) IsDisposed() bool {
	return o.stopped.Load() || o.strategy.IsDisposed()
}

// SetUpstream disposes d right away if the observer is already done.
func (o *BaseObserver[T, S]) SetUpstream(d disposable.Disposable) {
	if d == nil {
		return
	}
	if o.IsDisposed() {
		d.Dispose()
		return
	}
	o.strategy.SetUpstream(d)
}

// AsDynamic returns a copyable, type-erased handle sharing this observer.
func (o *BaseObserver[T, S]) AsDynamic() DynamicObserver[T] {
	return DynamicObserver[T]{observer: o}
}

// LambdaObserver is the observer built from plain callbacks by NewObserver.
type LambdaObserver[T any] = BaseObserver[T, *lambdaStrategy[T]]

// NewObserver builds an observer from callbacks. A nil onNext ignores values,
// a nil onError panics with *UnhandledError, a nil onCompleted does nothing.
// The tracked upstream is released on the terminal signal.
func NewObserver[T any](onNext func(T), onError func(error), onCompleted func()) *LambdaObserver[T] {
	return NewBaseObserver[T](&lambdaStrategy[T]{
		onNext:      onNext,
		onError:     onError,
		onCompleted: onCompleted,
		upstream:    disposable.NewSerial(),
	})
}

type lambdaStrategy[T any] struct {
	onNext      func(T)
	onError     func(error)
	onCompleted func()

	upstream *disposable.Serial
}

func (l *lambdaStrategy[T]) OnNext(v T) {
	if l.onNext != nil {
		l.onNext(v)
	}
}

func (l *lambdaStrategy[T]) OnError(err error) {
	l.upstream.Dispose()
	if l.onError == nil {
		panic(&schedulers.UnhandledError{Err: err})
	}
	l.onError(err)
}

func (l *lambdaStrategy[T]) OnCompleted() {
	l.upstream.Dispose()
	if l.onCompleted != nil {
		l.onCompleted()
	}
}

func (l *lambdaStrategy[T]) IsDisposed() bool { return l.upstream.IsDisposed() }

func (l *lambdaStrategy[T]) SetUpstream(d disposable.Disposable) { l.upstream.Set(d) }

// externalStrategy ties an observer to a caller-provided disposable:
// disposing it stops delivery and releases the upstream.
type externalStrategy[T any] struct {
	inner    Observer[T]
	external disposable.Wrapper
	upstream *disposable.Serial
}

func withExternal[T any](d disposable.Wrapper, inner Observer[T]) *BaseObserver[T, *externalStrategy[T]] {
	upstream := disposable.NewSerial()
	d.Add(upstream)

	return NewBaseObserver[T](&externalStrategy[T]{
		inner:    inner,
		external: d,
		upstream: upstream,
	})
}

func (e *externalStrategy[T]) OnNext(v T) { e.inner.OnNext(v) }

func (e *externalStrategy[T]) OnError(err error) {
	e.external.Dispose()
	e.upstream.Dispose()
	e.inner.OnError(err)
}

func (e *externalStrategy[T]) OnCompleted() {
	e.external.Dispose()
	e.upstream.Dispose()
	e.inner.OnCompleted()
}

func (e *externalStrategy[T]) IsDisposed() bool {
	return e.external.IsDisposed() || e.upstream.IsDisposed() || e.inner.IsDisposed()
}

func (e *externalStrategy[T]) SetUpstream(d disposable.Disposable) { e.upstream.Set(d) }
