package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/rx/disposable"
)

func TestBaseObserver(t *testing.T) {
	t.Run("first terminal signal wins", func(t *testing.T) {
		r := &recorder[int]{}
		o := r.observer()

		o.OnNext(1)
		o.OnCompleted()
		o.OnError(errBoom)
		o.OnCompleted()
		o.OnNext(2)

		values, errs, completions := r.snapshot()
		assert.Equal(t, []int{1}, values)
		assert.Empty(t, errs)
		assert.Equal(t, 1, completions)
		assert.True(t, o.IsDisposed())
	})

	t.Run("error then completion", func(t *testing.T) {
		r := &recorder[int]{}
		o := r.observer()

		o.OnError(errBoom)
		o.OnCompleted()

		_, errs, completions := r.snapshot()
		assert.Equal(t, []error{errBoom}, errs)
		assert.Zero(t, completions)
	})

	t.Run("terminal signal releases the upstream", func(t *testing.T) {
		up := disposable.New()
		o := NewObserver[int](nil, nil, nil)

		o.SetUpstream(up)
		assert.False(t, up.IsDisposed())

		o.OnCompleted()
		assert.True(t, up.IsDisposed())
	})

	t.Run("new upstream replaces the old one", func(t *testing.T) {
		first, second := disposable.New(), disposable.New()
		o := NewObserver[int](nil, nil, nil)

		o.SetUpstream(first)
		o.SetUpstream(second)

		assert.True(t, first.IsDisposed())
		assert.False(t, second.IsDisposed())
	})

	t.Run("upstream set after termination is disposed", func(t *testing.T) {
		up := disposable.New()
		o := NewObserver[int](nil, nil, nil)

		o.OnCompleted()
		o.SetUpstream(up)

		assert.True(t, up.IsDisposed())
	})

	t.Run("missing error callback panics with the error", func(t *testing.T) {
		o := NewObserver[int](nil, nil, nil)

		defer func() {
			r := recover()
			require.NotNil(t, r)
			unhandled, ok := r.(*UnhandledError)
			require.True(t, ok, "panic value is %T", r)
			assert.ErrorIs(t, unhandled, errBoom)
		}()
		o.OnError(errBoom)
	})

	t.Run("unhandled error is not turned into a panic error", func(t *testing.T) {
		assert.Panics(t, func() {
			Create(func(o Observer[int]) { o.OnNext(1) }).Subscribe(
				NewObserver(func(int) { panic(&UnhandledError{Err: errBoom}) }, nil, nil),
			)
		})
	})

	t.Run("strategy disposal stops delivery", func(t *testing.T) {
		s := &countingStrategy{}
		o := NewBaseObserver[int](s)

		o.OnNext(1)
		s.Dispose()
		o.OnNext(2)
		o.OnCompleted()

		assert.Equal(t, 1, s.next)
		assert.Zero(t, s.completed)
		assert.True(t, o.IsDisposed())
	})
}

type countingStrategy struct {
	disposable.Flag
	next      int
	completed int
}

func (s *countingStrategy) OnNext(int) { s.next++ }

func (s *countingStrategy) OnError(error) {}

func (s *countingStrategy) OnCompleted() { s.completed++ }

func (s *countingStrategy) SetUpstream(disposable.Disposable) {}
