//go:build !wasm

package gls

import (
	"sync"

	"github.com/petermattis/goid"
)

type slot struct {
	values sync.Map // goroutine id -> value
}

func (s *slot) load() (any, bool) {
	return s.values.Load(ID())
}

func (s *slot) store(v any) {
	s.values.Store(ID(), v)
}

func (s *slot) remove() {
	s.values.Delete(ID())
}

// ID returns the id of the calling goroutine.
func ID() int64 {
	return goid.Get()
}
