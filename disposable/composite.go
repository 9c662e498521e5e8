package disposable

import (
	"sync"
	"sync/atomic"
)

// Key identifies a child inside a Composite.
// The zero Key refers to nothing.
type Key struct {
	index int
	gen   uint32
}

// IsZero reports whether k refers to nothing.
func (k Key) IsZero() bool { return k.gen == 0 }

type slot struct {
	d   Disposable
	gen uint32 // bumped every time the slot is reused, so stale keys never match
}

// Composite owns a dynamic set of child disposables.
//
// Children live in an arena indexed by Key, guarded by a single mutex, which
// keeps Add, Remove and Dispose O(1) amortized and safe for concurrent use.
// Disposing the composite disposes every current child exactly once.
type Composite struct {
	mu       sync.Mutex
	disposed atomic.Bool

	slots []slot
	free  []int
	live  int
}

// NewComposite returns an active composite owning children.
func NewComposite(children ...Disposable) *Composite {
	c := &Composite{}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

// Add takes ownership of child. If the composite is already disposed the child
// is disposed immediately and the zero Key is returned.
func (c *Composite) Add(child Disposable) Key {
	if child == nil {
		return Key{}
	}

	c.mu.Lock()
	if c.disposed.Load() {
		c.mu.Unlock()
		child.Dispose()
		return Key{}
	}

	var i int
	if n := len(c.free); n > 0 {
		i = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.slots = append(c.slots, slot{})
		i = len(c.slots) - 1
	}

	c.slots[i].d = child
	c.slots[i].gen++
	c.live++
	key := Key{index: i, gen: c.slots[i].gen}
	c.mu.Unlock()

	return key
}

// Remove stops owning the child behind key and returns it without disposing it.
// It returns nil if key no longer refers to a child.
func (c *Composite) Remove(key Key) Disposable {
	if key.IsZero() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if key.index >= len(c.slots) {
		return nil
	}

	s := &c.slots[key.index]
	if s.gen != key.gen || s.d == nil {
		return nil
	}

	child := s.d
	s.d = nil
	c.free = append(c.free, key.index)
	c.live--

	return child
}

// Get returns the child behind key, or nil.
func (c *Composite) Get(key Key) Disposable {
	if key.IsZero() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if key.index >= len(c.slots) || c.slots[key.index].gen != key.gen {
		return nil
	}
	return c.slots[key.index].d
}

// Len returns the number of children currently owned.
func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Clear disposes all current children but keeps the composite active.
func (c *Composite) Clear() {
	disposeAll(c.detach())
}

func (c *Composite) Dispose() {
	if c.markDisposed() {
		disposeAll(c.detach())
	}
}

func (c *Composite) IsDisposed() bool { return c.disposed.Load() }

func (c *Composite) markDisposed() bool {
	return c.disposed.CompareAndSwap(false, true)
}

func (c *Composite) detach() []Disposable {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == 0 {
		return nil
	}

	children := make([]Disposable, 0, c.live)
	for i := range c.slots {
		if c.slots[i].d != nil {
			children = append(children, c.slots[i].d)
			c.slots[i].d = nil
			c.free = append(c.free, i)
		}
	}
	c.live = 0

	return children
}
