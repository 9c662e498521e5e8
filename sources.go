package rx

import (
	"slices"
	"time"

	"github.com/AnatoleLucet/rx/schedulers"
)

// Create returns an observable that runs subscribe for every observer.
// The observer handed to subscribe enforces the protocol, and a panic in
// subscribe is delivered as a *PanicError.
func Create[T any](subscribe func(observer Observer[T])) *BaseObservable[T, createStrategy[T]] {
	return MakeObservable[T](createStrategy[T]{subscribe: subscribe})
}

type createStrategy[T any] struct {
	subscribe func(Observer[T])
}

func (s createStrategy[T]) Subscribe(observer Observer[T]) {
	safe := NewBaseObserver[T](observer)
	defer func() {
		if r := recover(); r != nil {
			safe.OnError(recovered(r))
		}
	}()
	s.subscribe(safe)
}

// Just emits values in order on the subscribing goroutine, then completes.
func Just[T any](values ...T) *BaseObservable[T, justStrategy[T]] {
	return MakeObservable[T](justStrategy[T]{values: slices.Clone(values)})
}

type justStrategy[T any] struct {
	values []T
}

func (s justStrategy[T]) Subscribe(observer Observer[T]) {
	for _, v := range s.values {
		if observer.IsDisposed() {
			return
		}
		observer.OnNext(v)
	}
	observer.OnCompleted()
}

// JustOn emits values through a worker of scheduler, one task run per value.
func JustOn[T any](scheduler schedulers.Scheduler, values ...T) *BaseObservable[T, justOnStrategy[T]] {
	return MakeObservable[T](justOnStrategy[T]{scheduler: scheduler, values: slices.Clone(values)})
}

type justOnStrategy[T any] struct {
	scheduler schedulers.Scheduler
	values    []T
}

func (s justOnStrategy[T]) Subscribe(observer Observer[T]) {
	worker := s.scheduler.CreateWorker()
	if d := worker.Disposable(); !d.IsEmpty() {
		observer.SetUpstream(d.Get())
	}

	i := 0
	worker.Schedule(0, observer, func() (time.Duration, bool) {
		if i == len(s.values) {
			observer.OnCompleted()
			return 0, false
		}
		observer.OnNext(s.values[i])
		i++
		return 0, true
	})
}

// Empty completes without values.
func Empty[T any]() *BaseObservable[T, ObservableFunc[T]] {
	return MakeObservable[T](ObservableFunc[T](func(observer Observer[T]) {
		observer.OnCompleted()
	}))
}

// Never emits nothing and never terminates.
func Never[T any]() *BaseObservable[T, ObservableFunc[T]] {
	return MakeObservable[T](ObservableFunc[T](func(Observer[T]) {}))
}

// Throw terminates with err without values.
func Throw[T any](err error) *BaseObservable[T, ObservableFunc[T]] {
	return MakeObservable[T](ObservableFunc[T](func(observer Observer[T]) {
		observer.OnError(err)
	}))
}

// Defer calls factory for every subscription and subscribes to the result.
// A panicking factory or a nil result is reported through OnError.
func Defer[T any](factory func() Observable[T]) *BaseObservable[T, deferStrategy[T]] {
	return MakeObservable[T](deferStrategy[T]{factory: factory})
}

type deferStrategy[T any] struct {
	factory func() Observable[T]
}

func (s deferStrategy[T]) Subscribe(observer Observer[T]) {
	source, err := s.make()
	if err != nil {
		observer.OnError(err)
		return
	}
	source.Subscribe(observer)
}

func (s deferStrategy[T]) make() (source Observable[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()

	source = s.factory()
	if source == nil {
		return nil, ErrNilObservable
	}
	return source, nil
}

// Interval emits 0, 1, 2, ... every period on a worker of scheduler.
// It never completes; dispose the subscription to stop it.
func Interval(period time.Duration, scheduler schedulers.Scheduler) *BaseObservable[int, intervalStrategy] {
	return MakeObservable[int](intervalStrategy{period: period, scheduler: scheduler})
}

type intervalStrategy struct {
	period    time.Duration
	scheduler schedulers.Scheduler
}

func (s intervalStrategy) Subscribe(observer Observer[int]) {
	worker := s.scheduler.CreateWorker()
	if d := worker.Disposable(); !d.IsEmpty() {
		observer.SetUpstream(d.Get())
	}

	n := 0
	worker.Schedule(s.period, observer, func() (time.Duration, bool) {
		observer.OnNext(n)
		n++
		return s.period, true
	})
}

// Timer emits 0 after delay on a worker of scheduler, then completes.
func Timer(delay time.Duration, scheduler schedulers.Scheduler) *BaseObservable[int, timerStrategy] {
	return MakeObservable[int](timerStrategy{delay: delay, scheduler: scheduler})
}

type timerStrategy struct {
	delay     time.Duration
	scheduler schedulers.Scheduler
}

func (s timerStrategy) Subscribe(observer Observer[int]) {
	worker := s.scheduler.CreateWorker()
	if d := worker.Disposable(); !d.IsEmpty() {
		observer.SetUpstream(d.Get())
	}

	worker.Schedule(s.delay, observer, schedulers.Once(func() {
		observer.OnNext(0)
		observer.OnCompleted()
	}))
}
