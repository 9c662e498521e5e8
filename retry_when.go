package rx

import (
	"sync/atomic"
	"time"

	"github.com/AnatoleLucet/rx/disposable"
	"github.com/AnatoleLucet/rx/schedulers"
)

// RetryWhen resubscribes to source whenever it fails, if the observable
// returned by notifier for that error emits.
//
// The first value of the notifier observable triggers the resubscription. If
// it completes first the result completes, if it fails the result fails with
// its error, and a panicking notifier is reported as a *PanicError. Completion
// of source is forwarded as is: retries only happen on errors.
//
// Resubscriptions go through a current-thread worker, so any number of
// synchronous retries runs as a loop instead of a growing call stack.
func RetryWhen[T, N any](source Observable[T], notifier func(err error) Observable[N]) *BaseObservable[T, retryWhenStrategy[T, N]] {
	return RetryWhenOn(source, schedulers.CurrentThread{}, notifier)
}

// RetryWhenOn is RetryWhen with resubscriptions scheduled on scheduler.
func RetryWhenOn[T, N any](source Observable[T], scheduler schedulers.Scheduler, notifier func(err error) Observable[N]) *BaseObservable[T, retryWhenStrategy[T, N]] {
	return MakeObservable[T](retryWhenStrategy[T, N]{
		source:    source,
		scheduler: scheduler,
		notifier:  notifier,
	})
}

// Retry resubscribes to source up to n times after errors. The error that
// exceeds the budget is forwarded.
func Retry[T any](source Observable[T], n int) *BaseObservable[T, ObservableFunc[T]] {
	return MakeObservable[T](ObservableFunc[T](func(observer Observer[T]) {
		left := n
		retryWhenStrategy[T, struct{}]{
			source:    source,
			scheduler: schedulers.CurrentThread{},
			notifier: func(err error) Observable[struct{}] {
				if left <= 0 {
					return Throw[struct{}](err)
				}
				left--
				return Just(struct{}{})
			},
		}.Subscribe(observer)
	}))
}

type retryWhenStrategy[T, N any] struct {
	source    Observable[T]
	scheduler schedulers.Scheduler
	notifier  func(error) Observable[N]
}

func (s retryWhenStrategy[T, N]) Subscribe(observer Observer[T]) {
	state := &retryState[T, N]{
		strategy:   s,
		downstream: observer,
		worker:     s.scheduler.CreateWorker(),
		sourceUp:   disposable.NewSerial(),
		notifierUp: disposable.NewSerial(),
	}
	observer.SetUpstream(disposable.NewComposite(state.sourceUp, state.notifierUp, state.worker.Disposable().Get()))

	state.worker.Schedule(0, observer, state.attempt)
}

type retryState[T, N any] struct {
	strategy   retryWhenStrategy[T, N]
	downstream Observer[T]
	worker     schedulers.Worker

	sourceUp   *disposable.Serial
	notifierUp *disposable.Serial

	// true while an attempt is subscribing to source; a retry requested in
	// that window is returned as the attempt's resubmission instead of scheduled
	inside atomic.Bool
}

func (s *retryState[T, N]) attempt() (time.Duration, bool) {
	s.notifierUp.Set(nil)
	s.sourceUp.Set(nil)

	s.inside.Store(true)
	s.subscribe()

	if s.inside.Swap(false) {
		return 0, false
	}
	return 0, true
}

func (s *retryState[T, N]) subscribe() {
	defer func() {
		if r := recover(); r != nil {
			s.inside.Store(true)
			s.downstream.OnError(recovered(r))
		}
	}()

	s.strategy.source.Subscribe(NewBaseObserver[T](&retryInner[T, N]{state: s}))
}

func (s *retryState[T, N]) retry() {
	if s.inside.CompareAndSwap(true, false) {
		return
	}
	s.worker.Schedule(0, s.downstream, s.attempt)
}

func (s *retryState[T, N]) onSourceError(err error) {
	notifications, nerr := s.notifications(err)
	if nerr != nil {
		s.downstream.OnError(nerr)
		return
	}

	notifications.Subscribe(NewBaseObserver[N](&retryNotifier[T, N]{state: s}))
}

func (s *retryState[T, N]) notifications(err error) (source Observable[N], nerr error) {
	defer func() {
		if r := recover(); r != nil {
			nerr = recovered(r)
		}
	}()

	source = s.strategy.notifier(err)
	if source == nil {
		return nil, ErrNilObservable
	}
	return source, nil
}

type retryInner[T, N any] struct {
	state *retryState[T, N]
}

func (r *retryInner[T, N]) OnNext(v T) { r.state.downstream.OnNext(v) }

func (r *retryInner[T, N]) OnError(err error) { r.state.onSourceError(err) }

func (r *retryInner[T, N]) OnCompleted() { r.state.downstream.OnCompleted() }

func (r *retryInner[T, N]) IsDisposed() bool { return r.state.downstream.IsDisposed() }

func (r *retryInner[T, N]) SetUpstream(d disposable.Disposable) { r.state.sourceUp.Set(d) }

type retryNotifier[T, N any] struct {
	state *retryState[T, N]
	fired atomic.Bool
}

// OnNext reacts to the first value only and drops the notifier subscription.
func (r *retryNotifier[T, N]) OnNext(N) {
	if !r.fired.CompareAndSwap(false, true) {
		return
	}
	r.state.notifierUp.Set(nil)
	r.state.retry()
}

func (r *retryNotifier[T, N]) OnError(err error) { r.state.downstream.OnError(err) }

func (r *retryNotifier[T, N]) OnCompleted() { r.state.downstream.OnCompleted() }

func (r *retryNotifier[T, N]) IsDisposed() bool {
	return r.fired.Load() || r.state.downstream.IsDisposed()
}

func (r *retryNotifier[T, N]) SetUpstream(d disposable.Disposable) { r.state.notifierUp.Set(d) }
