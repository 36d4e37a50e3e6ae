// Package clock provides a tiny time abstraction.
//
// Anything that checks expiry should depend on the Clocker interface instead
// of calling time.Now() directly, so tests can advance time deterministically.
package clock

import "time"

// Clocker is the injected time source.
type Clocker interface {
	Now() time.Time
}

// SystemClocker is the production clock backed by the wall clock.
type SystemClocker struct{}

// New returns a SystemClocker that reads the current system time.
func New() *SystemClocker {
	return &SystemClocker{}
}

// Now returns the current system time.
func (*SystemClocker) Now() time.Time {
	return time.Now()
}
