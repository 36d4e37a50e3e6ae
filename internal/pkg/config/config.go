// Package config exposes runtime configuration behind a small interface so
// modules never touch the underlying provider directly.
package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values. Implementations return zero
// values for missing keys; callers that need hard requirements validate at
// startup.
type Config interface {
	io.Closer

	// GetString retrieves the value for key as a string.
	GetString(key string) string

	// GetBool retrieves the value for key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value for key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value for key as an int32.
	GetInt32(key string) int32

	// GetFloat64 retrieves the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value for key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetHour retrieves the value for key as a duration in hours.
	GetHour(key string) time.Duration

	// GetArray retrieves the value for key as a string slice.
	// The value is stored comma separated: <element1>,<element2>,...
	GetArray(key string) []string
}
