package rx

import "github.com/AnatoleLucet/rx/disposable"

// Observable produces values for the observers subscribed to it.
//
// After Subscribe returns the observable has either started pushing to the
// observer or stopped for good without doing so.
type Observable[T any] interface {
	Subscribe(observer Observer[T])
}

// ObservableStrategy is how an observable performs a subscription.
// BaseObservable skips it for observers that are already disposed.
type ObservableStrategy[T any] interface {
	Subscribe(observer Observer[T])
}

// BaseObservable is an observable with its strategy stored inline.
// Sources and operators return it; AsDynamic erases the strategy type.
type BaseObservable[T any, S ObservableStrategy[T]] struct {
	strategy S
}

// MakeObservable wraps strategy.
func MakeObservable[T any, S ObservableStrategy[T]](strategy S) *BaseObservable[T, S] {
	return &BaseObservable[T, S]{strategy: strategy}
}

// Subscribe starts a subscription. It does nothing if observer is disposed.
func (o *BaseObservable[T, S]) Subscribe(observer Observer[T]) {
	if observer == nil || observer.IsDisposed() {
		return
	}
	o.strategy.Subscribe(observer)
}

// SubscribeFunc subscribes an observer built from callbacks, see NewObserver.
func (o *BaseObservable[T, S]) SubscribeFunc(onNext func(T), onError func(error), onCompleted func()) {
	o.Subscribe(NewObserver(onNext, onError, onCompleted))
}

// SubscribeWith attaches d to observer, subscribes and returns d so the caller
// can cancel early. If d or observer is already disposed nothing is subscribed.
func (o *BaseObservable[T, S]) SubscribeWith(d disposable.Wrapper, observer Observer[T]) disposable.Wrapper {
	return SubscribeWith[T](o, d, observer)
}

// SubscribeFuncWith is SubscribeWith for an observer built from callbacks.
func (o *BaseObservable[T, S]) SubscribeFuncWith(d disposable.Wrapper, onNext func(T), onError func(error), onCompleted func()) disposable.Wrapper {
	return SubscribeWith[T](o, d, NewObserver(onNext, onError, onCompleted))
}

// AsDynamic returns a copyable, type-erased handle sharing this observable.
func (o *BaseObservable[T, S]) AsDynamic() DynamicObservable[T] {
	return DynamicObservable[T]{source: o}
}

// Subscribe subscribes observer to source unless observer is disposed.
func Subscribe[T any](source Observable[T], observer Observer[T]) {
	if observer == nil || observer.IsDisposed() {
		return
	}
	source.Subscribe(observer)
}

// SubscribeWith is the free-function form of BaseObservable.SubscribeWith,
// usable with any Observable.
func SubscribeWith[T any](source Observable[T], d disposable.Wrapper, observer Observer[T]) disposable.Wrapper {
	if d.IsDisposed() || observer == nil || observer.IsDisposed() {
		return d
	}

	source.Subscribe(withExternal(d, observer))
	return d
}

// ObservableFunc adapts a plain function to ObservableStrategy.
type ObservableFunc[T any] func(observer Observer[T])

func (f ObservableFunc[T]) Subscribe(observer Observer[T]) { f(observer) }
