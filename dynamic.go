package rx

import "github.com/AnatoleLucet/rx/disposable"

// DynamicObserver is a type-erased observer. It is a small value: copies share
// the one heap-allocated observer they were made from, which stays alive as
// long as any copy does.
//
// Every signal costs an interface call and a pointer chase more than calling a
// concrete BaseObserver, so convert only where concrete types can't be named,
// e.g. to keep an observer for later use.
type DynamicObserver[T any] struct {
	observer Observer[T]
}

// ToDynamic erases observer's type. Observers that don't enforce the protocol
// themselves are wrapped in a BaseObserver first.
func ToDynamic[T any](observer Observer[T]) DynamicObserver[T] {
	switch o := observer.(type) {
	case DynamicObserver[T]:
		return o
	case interface{ AsDynamic() DynamicObserver[T] }:
		return o.AsDynamic()
	default:
		return NewBaseObserver[T](observer).AsDynamic()
	}
}

func (d DynamicObserver[T]) OnNext(v T) { d.observer.OnNext(v) }

func (d DynamicObserver[T]) OnError(err error) { d.observer.OnError(err) }

func (d DynamicObserver[T]) OnCompleted() { d.observer.OnCompleted() }

// IsDisposed reports true for the zero DynamicObserver.
func (d DynamicObserver[T]) IsDisposed() bool {
	return d.observer == nil || d.observer.IsDisposed()
}

func (d DynamicObserver[T]) SetUpstream(up disposable.Disposable) { d.observer.SetUpstream(up) }

func (d DynamicObserver[T]) AsDynamic() DynamicObserver[T] { return d }

// DynamicObservable is a type-erased observable, shared by copies the same way
// DynamicObserver is.
type DynamicObservable[T any] struct {
	source Observable[T]
}

// FromObservable erases source's type.
func FromObservable[T any](source Observable[T]) DynamicObservable[T] {
	if d, ok := source.(DynamicObservable[T]); ok {
		return d
	}
	return DynamicObservable[T]{source: source}
}

// Subscribe does nothing for a disposed observer or a zero DynamicObservable.
func (d DynamicObservable[T]) Subscribe(observer Observer[T]) {
	if d.source == nil {
		return
	}
	Subscribe(d.source, observer)
}

func (d DynamicObservable[T]) SubscribeFunc(onNext func(T), onError func(error), onCompleted func()) {
	d.Subscribe(NewObserver(onNext, onError, onCompleted))
}

func (d DynamicObservable[T]) SubscribeWith(w disposable.Wrapper, observer Observer[T]) disposable.Wrapper {
	return SubscribeWith[T](d, w, observer)
}

func (d DynamicObservable[T]) SubscribeFuncWith(w disposable.Wrapper, onNext func(T), onError func(error), onCompleted func()) disposable.Wrapper {
	return SubscribeWith[T](d, w, NewObserver(onNext, onError, onCompleted))
}

func (d DynamicObservable[T]) AsDynamic() DynamicObservable[T] { return d }
