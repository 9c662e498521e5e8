// Package rx is a push-based event-processing engine.
//
// Observables push values, then at most one error or completion, to observers.
// Work that needs timing goes through a schedulers.Worker, and everything a
// subscription holds is released through the disposable graph: disposing the
// disposable returned by SubscribeWith cancels the whole chain, including
// pending scheduled work.
//
//	d := rx.Concat[int](rx.Just(1, 2), rx.Just(3)).SubscribeFuncWith(
//		disposable.NewWrapper(),
//		func(v int) { fmt.Println(v) },
//		func(err error) { log.Println(err) },
//		func() { fmt.Println("done") },
//	)
//	defer d.Dispose()
package rx

import (
	"errors"

	"github.com/AnatoleLucet/rx/schedulers"
)

// PanicError is delivered through OnError when a user callback panics.
type PanicError = schedulers.PanicError

// UnhandledError is the panic value raised when an error reaches an observer
// built without an error callback.
type UnhandledError = schedulers.UnhandledError

// ErrNilObservable is reported when a factory returns a nil observable.
var ErrNilObservable = errors.New("rx: factory returned a nil observable")

// recovered turns a recovered panic value into an error for OnError.
// Unhandled errors keep unwinding.
func recovered(r any) error {
	if _, ok := r.(*UnhandledError); ok {
		panic(r)
	}
	return schedulers.NewPanicError(r)
}
