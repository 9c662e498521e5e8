package rx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/rx/disposable"
	"github.com/AnatoleLucet/rx/schedulers"
)

func TestSources(t *testing.T) {
	t.Run("just", func(t *testing.T) {
		r := &recorder[string]{}
		Just("a", "b").Subscribe(r.observer())

		values, _, completions := r.snapshot()
		assert.Equal(t, []string{"a", "b"}, values)
		assert.Equal(t, 1, completions)
	})

	t.Run("just copies its values", func(t *testing.T) {
		values := []int{1, 2}
		source := Just(values...)
		values[0] = 9

		var got []int
		source.SubscribeFunc(func(v int) { got = append(got, v) }, nil, nil)
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("just on a scheduler", func(t *testing.T) {
		r := &recorder[int]{}
		JustOn(schedulers.Immediate{}, 1, 2, 3).Subscribe(r.observer())

		values, _, completions := r.snapshot()
		assert.Equal(t, []int{1, 2, 3}, values)
		assert.Equal(t, 1, completions)
	})

	t.Run("just on a dedicated worker stops when disposed", func(t *testing.T) {
		d := disposable.NewWrapper()
		seen := make(chan int, 10)

		JustOn(schedulers.Dedicated{}, 1, 2, 3).SubscribeFuncWith(d, func(v int) {
			seen <- v
			d.Dispose()
		}, nil, nil)

		assert.Equal(t, 1, <-seen)
		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, seen)
	})

	t.Run("empty", func(t *testing.T) {
		r := &recorder[int]{}
		Empty[int]().Subscribe(r.observer())

		values, errs, completions := r.snapshot()
		assert.Empty(t, values)
		assert.Empty(t, errs)
		assert.Equal(t, 1, completions)
	})

	t.Run("never", func(t *testing.T) {
		r := &recorder[int]{}
		Never[int]().Subscribe(r.observer())

		assert.False(t, r.terminated())
	})

	t.Run("throw", func(t *testing.T) {
		r := &recorder[int]{}
		Throw[int](errBoom).Subscribe(r.observer())

		_, errs, completions := r.snapshot()
		assert.Equal(t, []error{errBoom}, errs)
		assert.Zero(t, completions)
	})

	t.Run("create recovers panics", func(t *testing.T) {
		r := &recorder[int]{}
		Create(func(o Observer[int]) {
			o.OnNext(1)
			panic("create")
		}).Subscribe(r.observer())

		values, errs, _ := r.snapshot()
		assert.Equal(t, []int{1}, values)
		require.Len(t, errs, 1)

		var perr *PanicError
		require.ErrorAs(t, errs[0], &perr)
		assert.Equal(t, "create", perr.Value)
		assert.NotEmpty(t, perr.Stack)
	})

	t.Run("create enforces the protocol", func(t *testing.T) {
		r := &recorder[int]{}
		Create(func(o Observer[int]) {
			o.OnCompleted()
			o.OnNext(1)
			o.OnError(errBoom)
		}).Subscribe(r.observer())

		values, errs, completions := r.snapshot()
		assert.Empty(t, values)
		assert.Empty(t, errs)
		assert.Equal(t, 1, completions)
	})

	t.Run("defer runs the factory per subscription", func(t *testing.T) {
		calls := 0
		source := Defer(func() Observable[int] {
			calls++
			return Just(calls)
		})

		var got []int
		source.SubscribeFunc(func(v int) { got = append(got, v) }, nil, nil)
		source.SubscribeFunc(func(v int) { got = append(got, v) }, nil, nil)

		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("defer reports a nil observable", func(t *testing.T) {
		r := &recorder[int]{}
		Defer(func() Observable[int] { return nil }).Subscribe(r.observer())

		_, errs, _ := r.snapshot()
		assert.Equal(t, []error{ErrNilObservable}, errs)
	})

	t.Run("defer reports a panicking factory", func(t *testing.T) {
		r := &recorder[int]{}
		Defer(func() Observable[int] { panic(errBoom) }).Subscribe(r.observer())

		_, errs, _ := r.snapshot()
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], errBoom)
	})

	t.Run("interval", func(t *testing.T) {
		d := disposable.NewWrapper()
		seen := make(chan int, 100)

		Interval(time.Millisecond, schedulers.Dedicated{}).SubscribeFuncWith(d, func(v int) {
			seen <- v
			if v == 2 {
				d.Dispose()
			}
		}, nil, nil)

		for want := range 3 {
			select {
			case got := <-seen:
				assert.Equal(t, want, got)
			case <-time.After(timeout):
				t.Fatal("interval stalled")
			}
		}

		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, seen)
	})

	t.Run("interval on the current thread runs until disposed", func(t *testing.T) {
		d := disposable.NewWrapper()
		var got []int

		Interval(0, schedulers.CurrentThread{}).SubscribeFuncWith(d, func(v int) {
			got = append(got, v)
			if v == 4 {
				d.Dispose()
			}
		}, nil, nil)

		assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	})

	t.Run("timer", func(t *testing.T) {
		r := &recorder[int]{}
		start := time.Now()

		Timer(10*time.Millisecond, schedulers.Dedicated{}).Subscribe(r.observer())

		require.Eventually(t, r.terminated, timeout, tick)
		values, _, completions := r.snapshot()
		assert.Equal(t, []int{0}, values)
		assert.Equal(t, 1, completions)
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("disposed timer never fires", func(t *testing.T) {
		r := &recorder[int]{}
		d := Timer(10*time.Millisecond, schedulers.Dedicated{}).SubscribeWith(disposable.NewWrapper(), r.observer())

		d.Dispose()
		time.Sleep(30 * time.Millisecond)
		assert.False(t, r.terminated())
	})
}
