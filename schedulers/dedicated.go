package schedulers

import (
	"sync"
	"time"

	fifo "github.com/eapache/queue"
	"github.com/google/uuid"

	"github.com/AnatoleLucet/rx/disposable"
)

// Dedicated gives every worker its own goroutine with its own time-ordered
// queue. Work scheduled on one worker never runs concurrently with itself.
//
// The goroutine exits once the worker has nothing left to do and is started
// again by the next Schedule. Disposing the worker drops all pending work.
//
// The zero value is ready to use.
type Dedicated struct {
	cfg config
}

// NewDedicated returns a Dedicated scheduler configured by opts.
func NewDedicated(opts ...Option) Dedicated {
	return Dedicated{cfg: newConfig("dedicated", opts)}
}

func (s Dedicated) CreateWorker() Worker {
	cfg := s.cfg
	if cfg.name == "" {
		cfg.name = "dedicated"
	}

	w := &dedicatedWorker{
		cfg:     &cfg,
		id:      uuid.NewString(),
		mailbox: fifo.New(),
		wake:    make(chan struct{}, 1),
	}
	w.life = disposable.FromFunc(w.notify)

	return w
}

type dedicatedWorker struct {
	cfg  *config
	id   string
	life *disposable.Func

	mu      sync.Mutex
	mailbox *fifo.Queue // *task posted from any goroutine, drained by the worker goroutine
	running bool

	wake chan struct{}
}

func (w *dedicatedWorker) Disposable() disposable.Wrapper {
	return disposable.Wrap(w.life)
}

func (w *dedicatedWorker) Schedule(delay time.Duration, guard Guard, fn Schedulable) {
	if w.life.IsDisposed() || guard.IsDisposed() {
		w.cfg.dropped(w.id)
		return
	}

	t := &task{at: time.Now().Add(delay), guard: guard, fn: fn}

	w.mu.Lock()
	w.mailbox.Add(t)
	start := !w.running
	w.running = true
	w.mu.Unlock()

	if start {
		go w.loop()
		return
	}
	w.notify()
}

func (w *dedicatedWorker) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// collect moves posted tasks into q. It reports false, and marks the worker
// stopped, when there is nothing left to run.
func (w *dedicatedWorker) collect(q *queue) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for w.mailbox.Length() > 0 {
		t := w.mailbox.Remove().(*task)
		q.pushTask(t, t.at)
	}

	if w.life.IsDisposed() {
		if n := q.len(); n > 0 {
			w.cfg.log().Debug("worker disposed, dropping pending tasks", "worker", w.id, "tasks", n)
		}
		w.running = false
		return false
	}

	if q.empty() {
		w.running = false
		return false
	}

	return true
}

func (w *dedicatedWorker) loop() {
	w.cfg.log().Debug("worker started", "scheduler", w.cfg.name, "worker", w.id)
	defer w.cfg.log().Debug("worker stopped", "scheduler", w.cfg.name, "worker", w.id)

	q := newQueue()
	for w.collect(q) {
		if w.cfg.metrics != nil {
			w.cfg.metrics.RecordValue(metricQueueDepth, float64(q.len()), w.cfg.labels(w.id))
		}

		t := q.peek()
		if t.guard.IsDisposed() {
			q.pop()
			w.cfg.dropped(w.id)
			continue
		}

		if wait := time.Until(t.at); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-w.wake:
				// something earlier may have been posted, or the worker was disposed
				timer.Stop()
				continue
			}
		}

		q.pop()
		if t.guard.IsDisposed() {
			// disposed while waiting for its time point
			w.cfg.dropped(w.id)
			continue
		}

		again, repeat := w.cfg.run(w.id, t.guard, t.fn)
		if repeat && !t.guard.IsDisposed() {
			q.pushTask(t, time.Now().Add(again))
		}
	}
}
