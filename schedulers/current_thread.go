package schedulers

import (
	"time"

	"github.com/AnatoleLucet/rx/disposable"
	"github.com/AnatoleLucet/rx/internal/gls"
)

// CurrentThread queues work on the goroutine that calls Schedule.
//
// The first Schedule on a goroutine owns the queue and drains it before
// returning. Scheduling from inside a running task only enqueues, so nested
// scheduling never grows the call stack. Tasks run in time order, ties in
// the order they were scheduled.
//
// The zero value is ready to use.
type CurrentThread struct {
	cfg config
}

// NewCurrentThread returns a CurrentThread scheduler configured by opts.
func NewCurrentThread(opts ...Option) CurrentThread {
	return CurrentThread{cfg: newConfig("current_thread", opts)}
}

func (s CurrentThread) CreateWorker() Worker {
	cfg := s.cfg
	if cfg.name == "" {
		cfg.name = "current_thread"
	}
	return &currentThreadWorker{cfg: &cfg}
}

// IsQueueOwned reports whether a current-thread queue is being drained on the
// calling goroutine, i.e. whether Schedule would only enqueue.
func IsQueueOwned() bool {
	return drains.Get() != nil
}

type drainState struct {
	queue *queue

	// last time read from the clock, so already due tasks never sleep
	lastNow time.Time
}

var drains gls.Slot[drainState]

func (st *drainState) now() time.Time {
	st.lastNow = time.Now()
	return st.lastNow
}

func (st *drainState) sleepUntil(at time.Time) {
	if !at.After(st.lastNow) {
		return
	}

	now := time.Now()
	if at.After(now) {
		time.Sleep(at.Sub(now))
		st.lastNow = at
		return
	}
	st.lastNow = now
}

type currentThreadWorker struct {
	cfg *config
}

func (w *currentThreadWorker) Disposable() disposable.Wrapper {
	return disposable.Wrapper{}
}

func (w *currentThreadWorker) Schedule(delay time.Duration, guard Guard, fn Schedulable) {
	if st := drains.Get(); st != nil {
		if guard.IsDisposed() {
			w.cfg.dropped("")
			return
		}
		st.queue.push(st.now().Add(delay), guard, fn)
		return
	}

	st := &drainState{queue: newQueue()}
	drains.Set(st)
	defer drains.Delete()

	// run inline while nothing else is pending and no real delay is asked for
	for delay <= 0 && st.queue.empty() {
		if guard.IsDisposed() {
			w.cfg.dropped("")
			w.drain(st)
			return
		}

		again, repeat := w.cfg.run("", guard, fn)
		if !repeat {
			w.drain(st)
			return
		}
		delay = again
	}

	if guard.IsDisposed() {
		w.cfg.dropped("")
	} else {
		st.queue.push(st.now().Add(delay), guard, fn)
	}
	w.drain(st)
}

func (w *currentThreadWorker) drain(st *drainState) {
	for !st.queue.empty() {
		if w.cfg.metrics != nil {
			w.cfg.metrics.RecordValue(metricQueueDepth, float64(st.queue.len()), w.cfg.labels(""))
		}

		t := st.queue.pop()
		if t.guard.IsDisposed() {
			w.cfg.dropped("")
			continue
		}

		st.sleepUntil(t.at)

		var again time.Duration
		repeat := true
		for {
			if again > 0 && !t.guard.IsDisposed() {
				time.Sleep(again)
			}

			if t.guard.IsDisposed() {
				repeat = false
			} else {
				again, repeat = w.cfg.run("", t.guard, t.fn)
			}

			if !repeat || !st.queue.empty() {
				break
			}
		}

		if repeat {
			st.queue.pushTask(t, st.now().Add(again))
		}
	}
}
