package schedulers

import (
	"fmt"
	"runtime"
)

// PanicError wraps a recovered panic value together with the goroutine
// stack trace captured at the point of the panic.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// NewPanicError captures the current stack for a recovered value.
func NewPanicError(v any) *PanicError {
	return newPanicError(v)
}

// UnhandledError is the panic value raised when an error reaches an observer
// that has no error callback. Workers never recover it.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string {
	return "rx: unhandled error: " + e.Err.Error()
}

func (e *UnhandledError) Unwrap() error { return e.Err }
