// Package gls keeps per-goroutine state for code that needs a "thread local"
// (the current-thread scheduler's queue).
package gls

// Slot holds at most one *T per goroutine.
// The zero value is ready to use.
//
// Only the goroutine that stored a value may read, replace or delete it, so the
// value itself needs no locking.
type Slot[T any] struct {
	slot
}

// Get returns the calling goroutine's value, or nil.
func (s *Slot[T]) Get() *T {
	v, ok := s.load()
	if !ok {
		return nil
	}

	return v.(*T)
}

// Set stores v for the calling goroutine.
func (s *Slot[T]) Set(v *T) {
	s.store(v)
}

// Delete forgets the calling goroutine's value.
func (s *Slot[T]) Delete() {
	s.remove()
}
