// Package uid provides ID generation behind small interfaces so callers can
// be tested with fixed IDs.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}
