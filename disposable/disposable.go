// Package disposable tracks resource lifetimes.
//
// A Disposable is released at most once; releasing it again is a no-op.
// Composites own a dynamic set of children and release them together,
// Serial holds a single replaceable child and Wrapper shares one disposable
// between many holders.
package disposable

import "sync/atomic"

// Disposable is a resource that can be released exactly once.
type Disposable interface {
	// Dispose releases the resource. It is idempotent and safe for concurrent use.
	Dispose()

	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool
}

// Container is a disposable that can own children.
// Adding a child to a disposed container disposes the child.
type Container interface {
	Disposable
	Add(child Disposable) Key
	Remove(key Key) Disposable
}

// drainer lets a disposal loop take over the children of a disposable
// instead of calling Dispose on it, so chains are released iteratively.
type drainer interface {
	Disposable

	// markDisposed flips the disposable to disposed and reports whether this call did it.
	markDisposed() bool

	// detach returns the current children and forgets them.
	detach() []Disposable
}

// Flag is the plain disposable: a one-way active/disposed switch.
type Flag struct {
	disposed atomic.Bool
}

// New returns an active Flag.
func New() *Flag {
	return &Flag{}
}

// Disposed returns a Flag that is already disposed.
func Disposed() *Flag {
	f := &Flag{}
	f.disposed.Store(true)
	return f
}

func (f *Flag) Dispose() { f.disposed.Store(true) }

func (f *Flag) IsDisposed() bool { return f.disposed.Load() }

// Func runs a callback the first time it is disposed.
type Func struct {
	fn       func()
	disposed atomic.Bool
}

// FromFunc returns a disposable that calls fn once on disposal.
func FromFunc(fn func()) *Func {
	return &Func{fn: fn}
}

func (f *Func) Dispose() {
	if f.disposed.CompareAndSwap(false, true) && f.fn != nil {
		f.fn()
	}
}

func (f *Func) IsDisposed() bool { return f.disposed.Load() }

// disposeAll disposes every disposable in stack. Children of drainers are pushed
// on the same stack, so nesting depth never turns into call depth.
func disposeAll(stack []Disposable) {
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]

		if dr, ok := d.(drainer); ok {
			if dr.markDisposed() {
				stack = append(stack, dr.detach()...)
			}
			continue
		}

		d.Dispose()
	}
}
