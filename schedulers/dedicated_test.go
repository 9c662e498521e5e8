package schedulers

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/rx/internal/gls"
	"github.com/AnatoleLucet/rx/logging"
)

func TestDedicated(t *testing.T) {
	t.Run("runs on another goroutine", func(t *testing.T) {
		w := Dedicated{}.CreateWorker()
		caller := gls.ID()
		done := make(chan int64)

		w.Schedule(0, &guard{}, Once(func() { done <- gls.ID() }))

		assert.NotEqual(t, caller, <-done)
	})

	t.Run("runs in time order", func(t *testing.T) {
		w := Dedicated{}.CreateWorker()
		g := &guard{}

		var mu sync.Mutex
		log := []string{}
		var wg sync.WaitGroup
		wg.Add(3)
		add := func(s string) Schedulable {
			return Once(func() {
				mu.Lock()
				log = append(log, s)
				mu.Unlock()
				wg.Done()
			})
		}

		w.Schedule(30*time.Millisecond, g, add("late"))
		w.Schedule(10*time.Millisecond, g, add("soon"))
		w.Schedule(0, g, add("now"))
		wg.Wait()

		assert.Equal(t, []string{"now", "soon", "late"}, log)
	})

	t.Run("nested schedule runs after the current task", func(t *testing.T) {
		w := Dedicated{}.CreateWorker()
		g := &guard{}
		log := make(chan string, 3)

		w.Schedule(0, g, Once(func() {
			log <- "outer start"
			w.Schedule(0, g, Once(func() { log <- "inner" }))
			log <- "outer end"
		}))

		assert.Equal(t, "outer start", <-log)
		assert.Equal(t, "outer end", <-log)
		assert.Equal(t, "inner", <-log)
	})

	t.Run("resubmits", func(t *testing.T) {
		w := Dedicated{}.CreateWorker()
		done := make(chan struct{})
		calls := 0

		w.Schedule(0, &guard{}, func() (time.Duration, bool) {
			calls++
			if calls == 100 {
				close(done)
				return 0, false
			}
			return time.Microsecond, true
		})

		<-done
		assert.Equal(t, 100, calls)
	})

	t.Run("disposing the worker drops pending work", func(t *testing.T) {
		w := Dedicated{}.CreateWorker()
		ran := make(chan struct{}, 1)

		w.Schedule(time.Hour, &guard{}, Once(func() { ran <- struct{}{} }))
		w.Disposable().Dispose()
		w.Schedule(0, &guard{}, Once(func() { ran <- struct{}{} }))

		assert.True(t, w.Disposable().IsDisposed())
		assert.Never(t, func() bool { return len(ran) > 0 }, 20*time.Millisecond, time.Millisecond)
	})

	t.Run("guard disposed during the delay drops the task", func(t *testing.T) {
		metrics := newRecordingMetrics()
		w := NewDedicated(WithMetrics(metrics)).CreateWorker()
		g := &guard{}
		ran := make(chan struct{}, 1)

		w.Schedule(50*time.Millisecond, g, Once(func() { ran <- struct{}{} }))
		time.Sleep(10 * time.Millisecond)
		g.Dispose()

		assert.Never(t, func() bool { return len(ran) > 0 }, 150*time.Millisecond, 5*time.Millisecond)
		assert.Equal(t, 1, metrics.counter(metricTasksDropped))
	})

	t.Run("restarts after going idle", func(t *testing.T) {
		w := Dedicated{}.CreateWorker()
		done := make(chan struct{})

		w.Schedule(0, &guard{}, Once(func() { done <- struct{}{} }))
		<-done

		dw := w.(*dedicatedWorker)
		require.Eventually(t, func() bool {
			dw.mu.Lock()
			defer dw.mu.Unlock()
			return !dw.running
		}, time.Second, time.Millisecond)

		w.Schedule(0, &guard{}, Once(func() { done <- struct{}{} }))
		<-done
	})

	t.Run("panic goes to the guard", func(t *testing.T) {
		metrics := newRecordingMetrics()
		w := NewDedicated(WithLogger(logging.Discard), WithMetrics(metrics), WithName("io")).CreateWorker()
		g := &guard{}

		w.Schedule(0, g, Once(func() { panic(errBoom) }))

		require.Eventually(t, func() bool { return len(g.errs()) == 1 }, time.Second, time.Millisecond)
		assert.ErrorIs(t, g.errs()[0], errBoom)
		assert.Equal(t, 1, metrics.counter(metricTaskPanics))
	})
}
