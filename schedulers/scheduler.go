// Package schedulers decides where and when scheduled work runs.
//
// A Schedulable returns whether it wants to run again and after how long, so
// "repeat until told otherwise" loops (periodic sources, retries) reuse one
// task instead of scheduling themselves recursively.
package schedulers

import (
	"time"

	"github.com/AnatoleLucet/rx/disposable"
)

// Schedulable is a unit of work. When repeat is true the same work is queued
// again to run after the returned duration.
type Schedulable func() (again time.Duration, repeat bool)

// Guard tells a worker whether the work it was given is still wanted.
// Observers are guards.
type Guard interface {
	IsDisposed() bool
}

// errorSink is implemented by guards that can receive the panic of their task.
type errorSink interface {
	OnError(err error)
}

// Worker is an execution context bound to a concurrency strategy.
type Worker interface {
	// Schedule runs fn after delay. It never fails and returns nothing: the
	// effect is only visible through fn. Work whose guard is disposed is dropped.
	Schedule(delay time.Duration, guard Guard, fn Schedulable)

	// Disposable is the worker's own lifetime. It is empty for workers that
	// hold no resources.
	Disposable() disposable.Wrapper
}

// Scheduler creates workers.
type Scheduler interface {
	CreateWorker() Worker
}

// Once adapts fn to a Schedulable that runs a single time.
func Once(fn func()) Schedulable {
	return func() (time.Duration, bool) {
		fn()
		return 0, false
	}
}

// run invokes fn, turning a panic into a *PanicError handed to the guard.
// An *UnhandledError is let through: it is how observers without an error
// callback report a fatal defect.
func (c *config) run(worker string, guard Guard, fn Schedulable) (again time.Duration, repeat bool) {
	var (
		perr  *PanicError
		start time.Time
	)
	if c.metrics != nil {
		start = time.Now()
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*UnhandledError); ok {
					panic(r)
				}
				perr = newPanicError(r)
			}
		}()
		again, repeat = fn()
	}()

	if c.metrics != nil {
		c.metrics.RecordDuration(metricTaskDuration, time.Since(start), c.labels(worker))
		c.metrics.IncrementCounter(metricTasksExecuted, c.labels(worker))
	}

	if perr != nil {
		c.log().Error("scheduled task panicked", "scheduler", c.name, "worker", worker, "panic", perr.Value)
		if c.metrics != nil {
			c.metrics.IncrementCounter(metricTaskPanics, c.labels(worker))
		}
		if sink, ok := guard.(errorSink); ok {
			sink.OnError(perr)
		}
		return 0, false
	}

	return again, repeat
}

func (c *config) dropped(worker string) {
	if c.metrics != nil {
		c.metrics.IncrementCounter(metricTasksDropped, c.labels(worker))
	}
}
