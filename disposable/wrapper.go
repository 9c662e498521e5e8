package disposable

import (
	"sync"
	"weak"
)

type holder struct {
	d Disposable

	// children added through a Wrapper whose target can't own them
	mu    sync.Mutex
	extra *Composite
}

func (h *holder) dispose() {
	h.d.Dispose()

	h.mu.Lock()
	extra := h.extra
	h.mu.Unlock()

	if extra != nil {
		extra.Dispose()
	}
}

// Wrapper is an optionally empty handle to a disposable shared by many holders.
// Copies of a Wrapper refer to the same holder. The zero Wrapper is empty and
// reports itself as disposed.
type Wrapper struct {
	h *holder
}

// Wrap returns a Wrapper around d. A nil d gives the empty Wrapper.
func Wrap(d Disposable) Wrapper {
	if d == nil {
		return Wrapper{}
	}
	return Wrapper{h: &holder{d: d}}
}

// NewWrapper wraps a fresh Composite, so upstreams added later are owned by it.
func NewWrapper() Wrapper {
	return Wrap(NewComposite())
}

// IsEmpty reports whether the wrapper refers to nothing.
func (w Wrapper) IsEmpty() bool { return w.h == nil }

// Get returns the wrapped disposable, or nil.
func (w Wrapper) Get() Disposable {
	if w.h == nil {
		return nil
	}
	return w.h.d
}

func (w Wrapper) IsDisposed() bool {
	return w.h == nil || w.h.d.IsDisposed()
}

func (w Wrapper) Dispose() {
	if w.h != nil {
		w.h.dispose()
	}
}

// Add makes child's lifetime end with the wrapped disposable.
//
// If the target is a Container the child is added to it. Otherwise the child is
// kept beside the target and disposed when the target is disposed through any
// Wrapper copy. Adding to an empty or disposed wrapper disposes child.
func (w Wrapper) Add(child Disposable) {
	if child == nil {
		return
	}
	if w.IsDisposed() {
		child.Dispose()
		return
	}

	if c, ok := w.h.d.(Container); ok {
		c.Add(child)
		return
	}

	w.h.mu.Lock()
	if w.h.extra == nil {
		w.h.extra = NewComposite()
	}
	extra := w.h.extra
	w.h.mu.Unlock()

	extra.Add(child)
	if w.h.d.IsDisposed() {
		extra.Dispose()
	}
}

// Weak returns a back-reference that does not keep the wrapper's holder alive.
func (w Wrapper) Weak() Weak {
	if w.h == nil {
		return Weak{}
	}
	return Weak{p: weak.Make(w.h)}
}

// Weak is a non-owning reference to a Wrapper, used to check whether a resource
// still exists without extending its life.
type Weak struct {
	p weak.Pointer[holder]
}

// Lock returns a strong Wrapper if any holder is still alive, or the empty one.
func (w Weak) Lock() Wrapper {
	return Wrapper{h: w.p.Value()}
}

// IsDisposed reports whether the target is gone or disposed.
func (w Weak) IsDisposed() bool {
	return w.Lock().IsDisposed()
}
