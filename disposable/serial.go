package disposable

import "sync"

// Serial holds at most one child. Setting a new child disposes the previous one,
// so two children are never owned at the same time.
type Serial struct {
	mu  sync.Mutex
	set Composite
	key Key
}

// NewSerial returns an empty, active Serial.
func NewSerial() *Serial {
	return &Serial{}
}

// Set replaces the current child with d and disposes the old one.
// A nil d only releases the current child. If the serial is disposed,
// d is disposed immediately.
func (s *Serial) Set(d Disposable) {
	s.mu.Lock()
	old := s.set.Remove(s.key)
	s.key = s.set.Add(d)
	s.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
}

// Get returns the current child, or nil.
func (s *Serial) Get() Disposable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Get(s.key)
}

func (s *Serial) Dispose() { s.set.Dispose() }

func (s *Serial) IsDisposed() bool { return s.set.IsDisposed() }

func (s *Serial) markDisposed() bool { return s.set.markDisposed() }

func (s *Serial) detach() []Disposable { return s.set.detach() }
