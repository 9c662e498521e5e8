//go:build wasm

package gls

// goid has no wasm port, so the whole program shares one value. This holds as
// long as code owning the slot doesn't block and let another goroutine run.
type slot struct {
	value any
}

func (s *slot) load() (any, bool) {
	return s.value, s.value != nil
}

func (s *slot) store(v any) {
	s.value = v
}

func (s *slot) remove() {
	s.value = nil
}

// ID always returns 1 on wasm.
func ID() int64 {
	return 1
}
