package entity

import (
	"fmt"
	"io"
	"runtime"
)

const redacted = "[REDACTED]"

// Zeroizable is a value whose backing memory can be copied and overwritten.
type Zeroizable[T any] interface {
	Clone() T
	Zeroize()
}

// Secret holds a sensitive value. Printing, formatting and JSON/text encoding all
// render "[REDACTED]"; the inner value is only reachable through ExposeSecret.
//
// Destroy wipes the value deterministically. A runtime cleanup also wipes it once
// the Secret becomes unreachable, but the garbage collector gives no timing
// guarantee and cannot wipe copies made outside the Secret (request bodies, strings
// derived from ExposeSecret). Callers that need the wipe must call Destroy.
//
// A value returned by ExposeSecret must not outlive the Secret it came from.
type Secret[T Zeroizable[T]] struct {
	value T
}

// NewSecret takes ownership of value.
func NewSecret[T Zeroizable[T]](value T) *Secret[T] {
	s := &Secret[T]{value: value}
	runtime.AddCleanup(s, func(v T) { v.Zeroize() }, value)
	return s
}

// ExposeSecret returns the wrapped value. Call it only at the boundary that needs
// the plaintext.
func (s *Secret[T]) ExposeSecret() T {
	return s.value
}

// Clone returns an independent wrapped copy.
func (s *Secret[T]) Clone() *Secret[T] {
	if s == nil {
		return nil
	}
	return NewSecret(s.value.Clone())
}

// Destroy overwrites the wrapped value. The Secret stays usable but holds a zero value.
func (s *Secret[T]) Destroy() {
	if s == nil {
		return
	}
	s.value.Zeroize()
}

func (s *Secret[T]) String() string { return redacted }

func (s *Secret[T]) GoString() string { return redacted }

// Format keeps every fmt verb, including %#v and %+v, from reaching the value.
func (s *Secret[T]) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

func (s *Secret[T]) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

func (s *Secret[T]) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
