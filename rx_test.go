package rx

import (
	"errors"
	"sync"
	"time"
)

var errBoom = errors.New("boom")

const (
	timeout = 2 * time.Second
	tick    = time.Millisecond
)

// recorder collects the signals of one subscription.
type recorder[T any] struct {
	mu          sync.Mutex
	values      []T
	errs        []error
	completions int
}

func (r *recorder[T]) observer() *LambdaObserver[T] {
	return NewObserver(
		func(v T) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.values = append(r.values, v)
		},
		func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
		func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completions++
		},
	)
}

func (r *recorder[T]) snapshot() ([]T, []error, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...), append([]error(nil), r.errs...), r.completions
}

func (r *recorder[T]) terminated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)+r.completions > 0
}
