package schedulers

import (
	"time"

	"github.com/AnatoleLucet/rx/disposable"
)

// Immediate runs work inline on the calling goroutine without any queue.
// Resubmissions loop in place, so a task that keeps asking to run again never
// grows the stack. A positive delay blocks the caller.
//
// The zero value is ready to use.
type Immediate struct {
	cfg config
}

// NewImmediate returns an Immediate scheduler configured by opts.
func NewImmediate(opts ...Option) Immediate {
	return Immediate{cfg: newConfig("immediate", opts)}
}

func (s Immediate) CreateWorker() Worker {
	cfg := s.cfg
	if cfg.name == "" {
		cfg.name = "immediate"
	}
	return &immediateWorker{cfg: &cfg}
}

type immediateWorker struct {
	cfg *config
}

func (w *immediateWorker) Disposable() disposable.Wrapper {
	return disposable.Wrapper{}
}

func (w *immediateWorker) Schedule(delay time.Duration, guard Guard, fn Schedulable) {
	for {
		if guard.IsDisposed() {
			w.cfg.dropped("")
			return
		}

		if delay > 0 {
			time.Sleep(delay)
			if guard.IsDisposed() {
				w.cfg.dropped("")
				return
			}
		}

		again, repeat := w.cfg.run("", guard, fn)
		if !repeat {
			return
		}
		delay = again
	}
}
